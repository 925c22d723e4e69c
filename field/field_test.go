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

package field_test

import (
	"math/big"
	"testing"

	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/mengsuenyan/plonky/field"
	"github.com/stretchr/testify/require"
)

func decimalFromLimbs(limbs []uint64) string {
	words := make([]big.Word, len(limbs))
	for i, l := range limbs {
		words[i] = big.Word(l)
	}
	var b big.Int
	b.SetBits(words)
	return b.String()
}

func TestFieldMatchesFrModulus(t *testing.T) {
	F, err := field.NewField("fr", "Element", decimalFromLimbs(fr.Modulus[:]))
	require.NoError(t, err)
	require.Equal(t, 4, F.NbWords)
	require.Equal(t, 253, F.NbBits)
	require.True(t, F.SqrtTonelliShanks,
		"BLS12-377's scalar field has 2-adicity 47, too large for the q=3(mod4) or Atkin shortcuts")
	for i, limb := range fr.Modulus {
		require.Equal(t, limb, F.Q[i])
	}
}

func TestFieldMatchesFpModulus(t *testing.T) {
	F, err := field.NewField("fp", "Element", decimalFromLimbs(fp.Modulus[:]))
	require.NoError(t, err)
	require.Equal(t, 6, F.NbWords)
	for i, limb := range fp.Modulus {
		require.Equal(t, limb, F.Q[i])
	}
}

func TestFieldRejectsUnparsableModulus(t *testing.T) {
	_, err := field.NewField("x", "Element", "not-a-number")
	require.Error(t, err)
}

func TestFieldRejectsSmallModulus(t *testing.T) {
	_, err := field.NewField("tiny", "Element", "7")
	require.Error(t, err)
}
