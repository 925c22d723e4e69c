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

// Package bls12377 implements the BLS12-377 G1 group in projective
// (Jacobian-free, standard projective) coordinates, plus the
// multi-scalar-multiplication table used by the PLONK verifier.
package bls12377

import (
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// B is the curve coefficient in y^2 = x^3 + B. A is zero (short
// Weierstrass with a=0), so it is not represented.
var B = func() fp.Element {
	var b fp.Element
	b.SetUint64(1)
	return b
}()

// Cofactor is the index of the prime-order subgroup in the full
// BLS12-377 G1 point group, as a little-endian limb integer.
var Cofactor = [2]uint64{0x0, 0x170b5d4430000000}

// G1 is a point on the BLS12-377 curve in standard projective
// coordinates (x:y:z), representing the affine point (x/z, y/z) for
// z != 0, and the point at infinity for z == 0.
type G1 struct {
	X, Y, Z fp.Element
}

// Generator is the standard BLS12-377 G1 generator, taken from the
// curve parameterization (Zexe's bls12_377 g1 module).
var Generator = func() G1 {
	var x, y, one fp.Element
	x.SetCanonical([6]uint64{
		16913744964559301103, 15368556899747051854, 1766117802562276188,
		9625632955764130235, 14482558415983345492, 38360719421606503,
	})
	y.SetCanonical([6]uint64{
		18267407496658063014, 14050735190463568154, 7861080240934101765,
		13654829720422732505, 2262864599444352708, 112953283799166719,
	})
	one.SetUint64(1)
	return G1{X: x, Y: y, Z: one}
}()

// Identity returns the point at infinity, the group's additive
// identity.
func Identity() G1 {
	return G1{}
}

// IsIdentity reports whether p is the point at infinity.
func (p G1) IsIdentity() bool {
	return p.Z.IsZero()
}

// Affine returns p's affine coordinates (x/z, y/z) and infinity=false,
// or the zero value and infinity=true if p is the point at infinity.
func (p G1) Affine() (x, y fp.Element, infinity bool) {
	if p.IsIdentity() {
		return fp.Element{}, fp.Element{}, true
	}
	zInv, _ := new(fp.Element).Inverse(&p.Z)
	x.Mul(&p.X, zInv)
	y.Mul(&p.Y, zInv)
	return x, y, false
}

// FromAffine builds a projective point from affine coordinates.
func FromAffine(x, y fp.Element) G1 {
	var one fp.Element
	one.SetUint64(1)
	return G1{X: x, Y: y, Z: one}
}

// Add sets z to p+q and returns z. It implements the 1998
// Cohen–Miyaji–Ono projective addition formula
// (hyperelliptic.org/EFD/g1p/data/shortw/projective/addition/add-1998-cmo-2),
// extended to handle p == q (by delegating to Double) and p == -q (by
// returning the identity) since the textbook formula is only complete
// for points whose x-coordinates differ. The reference this module was
// distilled from has a bug here: it returns p unchanged when x1 == -x2
// instead of the identity.
func (z *G1) Add(p, q *G1) *G1 {
	if p.IsIdentity() {
		*z = *q
		return z
	}
	if q.IsIdentity() {
		*z = *p
		return z
	}

	var y1z2, x1z2, z1z2, y2z1, x2z1 fp.Element
	y1z2.Mul(&p.Y, &q.Z)
	x1z2.Mul(&p.X, &q.Z)
	z1z2.Mul(&p.Z, &q.Z)
	y2z1.Mul(&q.Y, &p.Z)
	x2z1.Mul(&q.X, &p.Z)

	var sameX, sameY fp.Element
	sameX.Sub(&x1z2, &x2z1)
	sameY.Sub(&y1z2, &y2z1)

	if sameX.IsZero() {
		if sameY.IsZero() {
			return z.Double(p)
		}
		*z = G1{}
		return z
	}

	var u, uu, v, vv, vvv, r, a fp.Element
	u.Sub(&y2z1, &y1z2)
	uu.Square(&u)
	v.Sub(&x2z1, &x1z2)
	vv.Square(&v)
	vvv.Mul(&v, &vv)
	r.Mul(&vv, &x1z2)

	var twoR fp.Element
	twoR.Double(&r)
	a.Mul(&uu, &z1z2)
	a.Sub(&a, &vvv)
	a.Sub(&a, &twoR)

	var x3, y3, z3, rMinusA, t fp.Element
	x3.Mul(&v, &a)
	rMinusA.Sub(&r, &a)
	y3.Mul(&u, &rMinusA)
	t.Mul(&vvv, &y1z2)
	y3.Sub(&y3, &t)
	z3.Mul(&vvv, &z1z2)

	z.X, z.Y, z.Z = x3, y3, z3
	return z
}

// Double sets z to 2*p and returns z. It implements the 2007
// Bernstein–Lange projective doubling formula
// (hyperelliptic.org/EFD/g1p/data/shortw/projective/doubling/dbl-2007-bl).
func (z *G1) Double(p *G1) *G1 {
	if p.IsIdentity() {
		*z = G1{}
		return z
	}
	var w, s fp.Element
	w.Square(&p.X)
	w.Mul(&w, &three)
	s.Mul(&p.Y, &p.Z)
	if s.IsZero() {
		*z = G1{}
		return z
	}

	var ss, sss, r, b fp.Element
	ss.Square(&s)
	sss.Mul(&s, &ss)
	r.Mul(&p.Y, &s)
	b.Mul(&p.X, &r)

	var eightB, h fp.Element
	eightB.Double(&b)
	eightB.Double(&eightB)
	eightB.Double(&eightB)
	h.Square(&w)
	h.Sub(&h, &eightB)

	var x3, fourB, y3, eightRR, z3 fp.Element
	x3.Mul(&h, &s)
	x3.Double(&x3)

	fourB.Double(&b)
	fourB.Double(&fourB)
	y3.Sub(&fourB, &h)
	y3.Mul(&w, &y3)
	eightRR.Square(&r)
	eightRR.Double(&eightRR)
	eightRR.Double(&eightRR)
	eightRR.Double(&eightRR)
	y3.Sub(&y3, &eightRR)

	z3.Mul(&sss, &eight)

	z.X, z.Y, z.Z = x3, y3, z3
	return z
}

var (
	three = func() fp.Element { var e fp.Element; e.SetUint64(3); return e }()
	eight = func() fp.Element { var e fp.Element; e.SetUint64(8); return e }()
)

// Neg sets z = -p and returns z.
func (z *G1) Neg(p *G1) *G1 {
	z.X = p.X
	z.Z = p.Z
	z.Y.Neg(&p.Y)
	return z
}

// Equal reports whether p and q represent the same projective point,
// up to the z-scaling ambiguity: p == q iff x1*z2 == x2*z1 and
// y1*z2 == y2*z1 (or both are the identity).
func (p G1) Equal(q G1) bool {
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() == q.IsIdentity()
	}
	var l, r fp.Element
	l.Mul(&p.X, &q.Z)
	r.Mul(&q.X, &p.Z)
	if !l.Equal(r) {
		return false
	}
	l.Mul(&p.Y, &q.Z)
	r.Mul(&q.Y, &p.Z)
	return l.Equal(r)
}

// IsOnCurve reports whether p satisfies y^2*z == x^3 + B*z^3 (the
// homogenized curve equation), which holds trivially for the identity.
func (p G1) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	var lhs, rhs, z2, z3, x3 fp.Element
	lhs.Square(&p.Y)
	lhs.Mul(&lhs, &p.Z)

	x3.Square(&p.X)
	x3.Mul(&x3, &p.X)
	z2.Square(&p.Z)
	z3.Mul(&z2, &p.Z)
	rhs.Mul(&B, &z3)
	rhs.Add(&rhs, &x3)
	return lhs.Equal(rhs)
}

// ScalarMul sets z = [k]p for k given in canonical little-endian limb
// form, using right-to-left (least-significant bit first)
// double-and-add over k's bits, and returns z.
func (z *G1) ScalarMul(p *G1, k [4]uint64) *G1 {
	acc := G1{}
	g := *p
	for _, limb := range k {
		for j := 0; j < 64; j++ {
			if (limb>>uint(j))&1 != 0 {
				acc.Add(&acc, &g)
			}
			g.Double(&g)
		}
	}
	*z = acc
	return z
}

// ScalarMulFr sets z = [k]p for a scalar field element k, and returns
// z.
func (z *G1) ScalarMulFr(p *G1, k fr.Element) *G1 {
	return z.ScalarMul(p, k.ToCanonical())
}

// InSubgroup reports whether p lies in the prime-order (r) subgroup:
// p must be on the curve and [r]p must be the identity. The identity
// itself passes. BLS12-377's G1 has cofactor
// > 1, so IsOnCurve alone is not sufficient for membership in the
// subgroup the verifier operates over.
func (p G1) InSubgroup() bool {
	if !p.IsOnCurve() {
		return false
	}
	var rp G1
	rp.ScalarMul(&p, fr.Modulus)
	return rp.IsIdentity()
}

// ClearCofactor sets z = [Cofactor]p and returns z, projecting an
// on-curve point into the prime-order subgroup.
func (z *G1) ClearCofactor(p *G1) *G1 {
	return z.ScalarMul(p, [4]uint64{Cofactor[0], Cofactor[1], 0, 0})
}
