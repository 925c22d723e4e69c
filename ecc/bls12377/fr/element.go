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

// Package fr provides arithmetic over the BLS12-377 scalar field, in
// Montgomery form.
package fr

import (
	"crypto/rand"
	"errors"
	"io"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// Element is an element of the BLS12-377 scalar field, stored in
// Montgomery representation: the four little-endian 64-bit limbs hold
// x*R mod Modulus, where R = 2**256 mod Modulus. The stored value is
// always strictly less than Modulus.
type Element struct {
	limbs [4]uint64
}

// Modulus is the order of the scalar field:
// 8444461749428370424248824938781546531375899335154063827935233455917409239041
var Modulus = [4]uint64{725501752471715841, 6461107452199829505, 6968279316240510977, 1345280370688173398}

// rSquare is R^2 mod Modulus, used by SetCanonical to move a value into
// Montgomery form.
var rSquare = [4]uint64{2726216793283724667, 14712177743343147295, 12091039717619697043, 81024008013859129}

// rCube is R^3 mod Modulus, used to restore Montgomery form after the
// raw-integer modular inverse computed by Inverse.
var rCube = [4]uint64{7656847007262524748, 7083357369969088153, 12818756329091487507, 432872940405820890}

// mu = -Modulus^-1 mod 2^64, the Montgomery reduction constant.
const mu uint64 = 725501752471715839

// TwoAdicity is the largest s such that 2^s divides Modulus-1.
const TwoAdicity = 47

// t = (Modulus-1) / 2^TwoAdicity, stored in Montgomery form.
var tExponent = Element{limbs: [4]uint64{725501752471715841, 6461107452199829505, 6968279316240510977, 1345280370688042326}}

// Zero, One, Two, Three and Generator are the Montgomery-form
// representations of the canonical values 0, 1, 2, 3 and a
// multiplicative generator of the full group.
var (
	Zero      = Element{}
	One       = Element{limbs: [4]uint64{9015221291577245683, 8239323489949974514, 1646089257421115374, 958099254763297437}}
	Two       = Element{limbs: [4]uint64{17304940830682775525, 10017539527700119523, 14770643272311271387, 570918138838421475}}
	Three     = Element{limbs: [4]uint64{7147916296078753751, 11795755565450264533, 9448453213491875784, 183737022913545514}}
	Generator = Element{limbs: [4]uint64{2984901390528151251, 10561528701063790279, 5476750214495080041, 898978044469942640}}
)

// ErrDivisionByZero is returned by Div/Inverse-dependent operations
// when the divisor is zero. For a verifier consuming only public
// challenges, hitting this indicates either that ζ collided with the
// evaluation domain H (probability < 2^-120) or a coding bug — see
// spec §7, stratum 3.
var ErrDivisionByZero = errors.New("fr: division by zero")

// SetCanonical sets z to the Montgomery image of the little-endian
// limb integer c, which must already be reduced (c < Modulus).
func (z *Element) SetCanonical(c [4]uint64) *Element {
	z.limbs = montMul(c, rSquare)
	return z
}

// SetUint64 sets z to the Montgomery image of n.
func (z *Element) SetUint64(n uint64) *Element {
	return z.SetCanonical([4]uint64{n, 0, 0, 0})
}

// ToCanonical returns the canonical little-endian limb integer
// represented by z.
func (z Element) ToCanonical() [4]uint64 {
	return montMul(z.limbs, [4]uint64{1, 0, 0, 0})
}

// IsZero reports whether z is the additive identity.
func (z Element) IsZero() bool {
	return z.limbs == [4]uint64{}
}

// Equal reports whether z and x represent the same field element.
// Equality is bitwise on the (canonical) Montgomery limbs.
func (z Element) Equal(x Element) bool {
	return z.limbs == x.limbs
}

// Add sets z = x + y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	sum, carry := add4(x.limbs, y.limbs)
	if carry != 0 || cmp4(sum, Modulus) >= 0 {
		sum = sub4(sum, Modulus)
	}
	z.limbs = sum
	return z
}

// Sub sets z = x - y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	if cmp4(x.limbs, y.limbs) < 0 {
		// Underflow: compute x + (-y), which is < Modulus.
		var negY Element
		negY.Neg(y)
		sum, _ := add4(x.limbs, negY.limbs)
		z.limbs = sum
	} else {
		z.limbs = sub4(x.limbs, y.limbs)
	}
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	if x.IsZero() {
		z.limbs = [4]uint64{}
	} else {
		z.limbs = sub4(Modulus, x.limbs)
	}
	return z
}

// Mul sets z = x*y and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	z.limbs = montMul(x.limbs, y.limbs)
	return z
}

// Square sets z = x*x and returns z.
func (z *Element) Square(x *Element) *Element {
	return z.Mul(x, x)
}

// Inverse sets z to the multiplicative inverse of x and returns z, ok.
// ok is false iff x is zero, in which case z is left at zero.
func (z *Element) Inverse(x *Element) (zz *Element, ok bool) {
	if x.IsZero() {
		z.limbs = [4]uint64{}
		return z, false
	}
	// z = x^-1 * R. We invert the raw limbs (x.limbs = x*R as an
	// integer) via the modular inverse, giving (x*R)^-1 = x^-1*R^-1,
	// then multiply by R^3 in Montgomery form: M(x^-1*R^-1, R^3) =
	// x^-1*R^-1*R^3*R^-1 = x^-1*R.
	inv := invModOdd(x.limbs, Modulus)
	z.limbs = montMul(inv, rCube)
	return z, true
}

// Div sets z = x/y. It returns ErrDivisionByZero if y is zero.
func (z *Element) Div(x, y *Element) error {
	yInv, ok := new(Element).Inverse(y)
	if !ok {
		return ErrDivisionByZero
	}
	z.Mul(x, yInv)
	return nil
}

// Exp sets z = base^power, where power is given in canonical
// (little-endian limb) form, and returns z. Squaring proceeds from
// the least-significant bit and stops once the highest set bit of
// power has been consumed — the exponent here is always public
// (a Fiat-Shamir challenge or a fixed circuit degree), so this
// early exit leaks no secret-dependent timing, per spec §5.
func (z *Element) Exp(base Element, power [4]uint64) *Element {
	nbits := numBits(power)
	current := base
	product := One
	for i, limb := range power {
		for j := 0; j < 64; j++ {
			bitIndex := i*64 + j
			if bitIndex == nbits {
				*z = product
				return z
			}
			if (limb>>uint(j))&1 != 0 {
				product.Mul(&product, &current)
			}
			current.Square(&current)
		}
	}
	*z = product
	return z
}

// ExpUint64 sets z = base^power and returns z.
func (z *Element) ExpUint64(base Element, power uint64) *Element {
	return z.Exp(base, [4]uint64{power, 0, 0, 0})
}

// NumBits returns the one-indexed position of the highest set bit of
// z's canonical integer value, or 0 if z is zero.
func (z Element) NumBits() int {
	return numBits(z.ToCanonical())
}

func numBits(c [4]uint64) int {
	n := 0
	for i, limb := range c {
		if limb != 0 {
			n = i*64 + (64 - bits.LeadingZeros64(limb))
		}
	}
	return n
}

// PrimitiveRootOfUnity returns a primitive 2^k-th root of unity, for
// 0 <= k <= TwoAdicity.
func PrimitiveRootOfUnity(k int) Element {
	if k < 0 || k > TwoAdicity {
		panic("fr: root of unity order out of range")
	}
	var baseRoot Element
	baseRoot.Exp(Generator, tExponent.ToCanonical())
	var root Element
	root.ExpUint64(baseRoot, uint64(1)<<uint(TwoAdicity-k))
	return root
}

// Random draws four CSPRNG-sourced limbs and masks the top four bits
// of the high limb so the result is < 2^252 < Modulus. This is biased
// (not uniform in [0, Modulus)): values in [2^252, Modulus) are never
// produced. It is intended for test-vector generation only; see spec §9 "rand bias". Production
// code sampling a uniform Fr element should rejection-sample instead.
func Random(rnd io.Reader) (Element, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var buf [32]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return Element{}, err
	}
	var limbs [4]uint64
	for i := 0; i < 4; i++ {
		limbs[i] = leUint64(buf[i*8 : i*8+8])
	}
	limbs[3] >>= 4
	var z Element
	z.limbs = limbs
	return z, nil
}

func leUint64(b []byte) uint64 {
	var x uint64
	for i := 7; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x
}

// ToCanonicalBitSet returns the little-endian boolean expansion of
// z's canonical integer value, of length n (n must be >= 253). It is
// the concrete form of the spec's Fr::to_canonical_bool_vec, consumed
// by the Halo endomorphism map (halo_n) and the IPA challenge-inverse
// step.
func (z Element) ToCanonicalBitSet(n int) *bitset.BitSet {
	c := z.ToCanonical()
	bs := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		limb := c[i/64]
		if (limb>>uint(i%64))&1 != 0 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// Bytes returns the big-endian 32-byte encoding of z's canonical
// integer value, the wire format used by WriteTo.
func (z Element) Bytes() [32]byte {
	c := z.ToCanonical()
	var out [32]byte
	for i := 0; i < 4; i++ {
		limb := c[i]
		for j := 0; j < 8; j++ {
			out[31-(i*8+j)] = byte(limb >> uint(8*j))
		}
	}
	return out
}

// SetBytes sets z to the big-endian byte string b reduced modulo
// Modulus, via Horner's rule, and returns z. b may represent an
// integer of any length and any magnitude — this is the field
// conversion route used to fold a base-field (Fq) challenge digest
// into a scalar-field (Fr) value. Unlike SetCanonicalBytes, it never
// rejects its input.
func (z *Element) SetBytes(b []byte) *Element {
	acc := Zero
	var digit, shifted Element
	for _, bb := range b {
		shifted.Mul(&acc, &byteBase)
		digit.SetUint64(uint64(bb))
		acc.Add(&shifted, &digit)
	}
	*z = acc
	return z
}

var byteBase = func() Element { var e Element; e.SetUint64(256); return e }()

// SetCanonicalBytes parses the big-endian 32-byte string b as a field
// element, returning ok=false (and leaving z unmodified) if b encodes
// an integer >= Modulus. This is the validating entry point for
// untrusted wire data: VerificationKey.ReadFrom uses it for the
// subgroup generator.
func (z *Element) SetCanonicalBytes(b []byte) (zz *Element, ok bool) {
	if len(b) != 32 {
		return z, false
	}
	var c [4]uint64
	for i := 0; i < 4; i++ {
		c[i] = beUint64(b[32-(i+1)*8 : 32-i*8])
	}
	if cmp4(c, Modulus) >= 0 {
		return z, false
	}
	return z.SetCanonical(c), true
}

func beUint64(b []byte) uint64 {
	var x uint64
	for i := 0; i < 8; i++ {
		x = x<<8 | uint64(b[i])
	}
	return x
}

// InnerProduct returns sum_i a[i]*b[i]. len(a) must equal len(b).
func InnerProduct(a, b []Element) Element {
	var acc, tmp Element
	for i := range a {
		tmp.Mul(&a[i], &b[i])
		acc.Add(&acc, &tmp)
	}
	return acc
}
