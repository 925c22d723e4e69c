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

package fiatshamir_test

import (
	"testing"

	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/mengsuenyan/plonky/fiatshamir"
	"github.com/stretchr/testify/require"
)

func TestTranscriptIsDeterministic(t *testing.T) {
	t1 := fiatshamir.New(128)
	t1.ObserveAffinePoint(bls12377.Generator)
	c1 := t1.GetChallenge()

	t2 := fiatshamir.New(128)
	t2.ObserveAffinePoint(bls12377.Generator)
	c2 := t2.GetChallenge()

	require.True(t, c1.Equal(c2))
}

func TestTranscriptDivergesOnDifferentMessages(t *testing.T) {
	var other bls12377.G1
	other.Double(&bls12377.Generator)

	t1 := fiatshamir.New(128)
	t1.ObserveAffinePoint(bls12377.Generator)
	c1 := t1.GetChallenge()

	t2 := fiatshamir.New(128)
	t2.ObserveAffinePoint(other)
	c2 := t2.GetChallenge()

	require.False(t, c1.Equal(c2))
}

func TestSuccessiveChallengesDiffer(t *testing.T) {
	tr := fiatshamir.New(128)
	tr.ObserveAffinePoint(bls12377.Generator)
	a, b := tr.Get2Challenges()
	require.False(t, a.Equal(b))
}

func TestInfinityDistinctFromZeroCoordinates(t *testing.T) {
	t1 := fiatshamir.New(128)
	t1.ObserveAffinePoint(bls12377.Identity())
	c1 := t1.GetChallenge()

	t2 := fiatshamir.New(128)
	t2.ObserveAffinePoint(bls12377.FromAffine(fp.Element{}, fp.Element{}))
	c2 := t2.GetChallenge()

	require.False(t, c1.Equal(c2))
}

func TestPowersAndReduceWithPowers(t *testing.T) {
	var alpha fr.Element
	alpha.SetUint64(3)

	powers := fiatshamir.Powers(alpha, 4)
	require.True(t, powers[0].Equal(fr.One))
	var want fr.Element
	want.SetUint64(27)
	require.True(t, powers[3].Equal(want))

	v := make([]fr.Element, 4)
	for i := range v {
		v[i].SetUint64(uint64(i + 1))
	}
	// 1 + 2*3 + 3*9 + 4*27 = 1 + 6 + 27 + 108 = 142
	got := fiatshamir.ReduceWithPowers(v, alpha)
	var wantReduced fr.Element
	wantReduced.SetUint64(142)
	require.True(t, got.Equal(wantReduced))
}
