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
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/stretchr/testify/require"
)

func TestScalarToBaseRoundTrip(t *testing.T) {
	x, err := fr.Random(nil)
	require.NoError(t, err)

	base := bls12377.ConvertScalarToBase(x)
	back, ok := bls12377.TryConvertBaseToScalar(base)
	require.True(t, ok)
	require.True(t, x.Equal(back))
}

func TestBaseToScalarRejectsOutOfRange(t *testing.T) {
	// fp.Modulus is far larger than fr.Modulus; its canonical value
	// minus one certainly doesn't fit in Fr.
	m := fp.Modulus
	m[0]--
	var big fp.Element
	big.SetCanonical(m)

	_, ok := bls12377.TryConvertBaseToScalar(big)
	require.False(t, ok)
}
