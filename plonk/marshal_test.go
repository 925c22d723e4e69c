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

package plonk

import (
	"bytes"
	"testing"

	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/stretchr/testify/require"
)

func TestVerificationKeyRoundTrip(t *testing.T) {
	vk := &VerificationKey{
		SelectorCommitments: []bls12377.G1{scalarMulGen(2), bls12377.Identity()},
		SigmaCommitments:    []bls12377.G1{scalarMulGen(3), scalarMulGen(4), scalarMulGen(5)},
		DegreeLog:           4,
		DegreePow:           16,
		SecurityBits:        128,
		SubgroupGenerator:   fr.Generator,
	}

	var buf bytes.Buffer
	n, err := vk.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	var got VerificationKey
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, vk.DegreeLog, got.DegreeLog)
	require.Equal(t, vk.DegreePow, got.DegreePow)
	require.Equal(t, vk.SecurityBits, got.SecurityBits)
	require.True(t, vk.SubgroupGenerator.Equal(got.SubgroupGenerator))
	require.Len(t, got.SelectorCommitments, len(vk.SelectorCommitments))
	for i := range vk.SelectorCommitments {
		require.True(t, vk.SelectorCommitments[i].Equal(got.SelectorCommitments[i]))
	}
	require.Len(t, got.SigmaCommitments, len(vk.SigmaCommitments))
	for i := range vk.SigmaCommitments {
		require.True(t, vk.SigmaCommitments[i].Equal(got.SigmaCommitments[i]))
	}
}

func TestVerificationKeyReadFromRejectsTruncatedInput(t *testing.T) {
	var got VerificationKey
	_, err := got.ReadFrom(bytes.NewReader([]byte{0, 0, 0, 0}))
	require.Error(t, err)
}
