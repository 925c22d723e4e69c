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

func TestGeneratorOnCurve(t *testing.T) {
	require.True(t, bls12377.Generator.IsOnCurve())
	require.True(t, bls12377.Generator.InSubgroup())
}

func TestIdentityIsAdditiveIdentity(t *testing.T) {
	p := bls12377.Generator
	id := bls12377.Identity()

	var sum bls12377.G1
	sum.Add(&p, &id)
	require.True(t, sum.Equal(p))

	sum.Add(&id, &p)
	require.True(t, sum.Equal(p))
}

func TestAddNegationIsIdentity(t *testing.T) {
	p := bls12377.Generator
	var negP, sum bls12377.G1
	negP.Neg(&p)
	sum.Add(&p, &negP)
	require.True(t, sum.IsIdentity())
}

func TestDoubleMatchesAdd(t *testing.T) {
	p := bls12377.Generator
	var viaAdd, viaDouble bls12377.G1
	viaAdd.Add(&p, &p)
	viaDouble.Double(&p)
	require.True(t, viaAdd.Equal(viaDouble))
}

func TestAdditionCommutesAndAssociates(t *testing.T) {
	var p, q, r bls12377.G1
	p.ScalarMul(&bls12377.Generator, [4]uint64{3, 0, 0, 0})
	q.ScalarMul(&bls12377.Generator, [4]uint64{5, 0, 0, 0})
	r.ScalarMul(&bls12377.Generator, [4]uint64{7, 0, 0, 0})

	var pq, qp bls12377.G1
	pq.Add(&p, &q)
	qp.Add(&q, &p)
	require.True(t, pq.Equal(qp))

	var pqr1, qr, pqr2 bls12377.G1
	pqr1.Add(&pq, &r)
	qr.Add(&q, &r)
	pqr2.Add(&p, &qr)
	require.True(t, pqr1.Equal(pqr2))
}

func TestScalarMulLaws(t *testing.T) {
	p := bls12377.Generator

	var zero bls12377.G1
	zero.ScalarMul(&p, [4]uint64{0, 0, 0, 0})
	require.True(t, zero.IsIdentity())

	var one bls12377.G1
	one.ScalarMul(&p, [4]uint64{1, 0, 0, 0})
	require.True(t, one.Equal(p))

	a := [4]uint64{11, 0, 0, 0}
	b := [4]uint64{13, 0, 0, 0}
	var aP, bP, sumP fr.Element
	aP.SetCanonical(a)
	bP.SetCanonical(b)
	sumP.Add(&aP, &bP)

	var aG, bG, abG, sumG bls12377.G1
	aG.ScalarMul(&p, a)
	bG.ScalarMul(&p, b)
	abG.Add(&aG, &bG)
	sumG.ScalarMul(&p, sumP.ToCanonical())
	require.True(t, abG.Equal(sumG))
}

func TestIncompleteAdditionXEqualsNegX(t *testing.T) {
	p := bls12377.Generator
	var negP, sum bls12377.G1
	negP.Neg(&p)
	sum.Add(&p, &negP)
	require.True(t, sum.IsIdentity(), "P + (-P) must be the identity, not P")
}

func TestCofactorClearingLandsInSubgroup(t *testing.T) {
	p := bls12377.Generator
	var doubled bls12377.G1
	doubled.Double(&p)
	require.True(t, doubled.IsOnCurve())

	var cleared bls12377.G1
	cleared.ClearCofactor(&doubled)
	require.True(t, cleared.InSubgroup())
}
