// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bls12377_test

import (
	"testing"

	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/stretchr/testify/require"
)

func TestZetaIsPrimitiveCubeRoot(t *testing.T) {
	var zeta2, sum fr.Element
	zeta2.Mul(&bls12377.Zeta, &bls12377.Zeta)
	sum.Add(&zeta2, &bls12377.Zeta)
	sum.Add(&sum, &fr.One)
	require.True(t, sum.IsZero())
	require.False(t, bls12377.Zeta.Equal(fr.One))
}

func TestHaloNDeterministic(t *testing.T) {
	x, err := fr.Random(nil)
	require.NoError(t, err)
	bits := x.ToCanonicalBitSet(256)

	a := bls12377.HaloN(bits, 128)
	b := bls12377.HaloN(bits, 128)
	require.True(t, a.Equal(b))
}

func TestHaloNRequiresEvenBits(t *testing.T) {
	x, err := fr.Random(nil)
	require.NoError(t, err)
	bits := x.ToCanonicalBitSet(256)
	require.Panics(t, func() { bls12377.HaloN(bits, 127) })
}
