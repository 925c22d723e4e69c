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

// Package fp provides arithmetic over the BLS12-377 base field, in
// Montgomery form. Its only consumer is ecc/bls12377, which uses it to
// represent G1 affine/projective coordinates.
package fp

import (
	"crypto/rand"
	"errors"
	"io"
)

// Element is an element of the BLS12-377 base field, stored in
// Montgomery representation: the six little-endian 64-bit limbs hold
// x*R mod Modulus, where R = 2**384 mod Modulus. The stored value is
// always strictly less than Modulus.
type Element struct {
	limbs [6]uint64
}

// Modulus is the BLS12-377 base field prime:
// 258664426012969094010652733694893533536393512754914660539884262666720468348340822774968888139573360124440321458177
var Modulus = [6]uint64{9586122913090633729, 1660523435060625408, 2230234197602682880, 1883307231910630287, 14284016967150029115, 121098312706494698}

// rSquare is R^2 mod Modulus, used by SetCanonical to move a value into
// Montgomery form.
var rSquare = [6]uint64{13224372171368877346, 227991066186625457, 2496666625421784173, 13825906835078366124, 9475172226622360569, 30958721782860680}

// rCube is R^3 mod Modulus, used to restore Montgomery form after the
// raw-integer modular inverse computed by Inverse.
var rCube = [6]uint64{6349885463227391520, 16505482940020594053, 3163973454937060627, 7650090842119774734, 4571808961100582073, 73846176275226021}

// mu = -Modulus^-1 mod 2^64, the Montgomery reduction constant.
const mu uint64 = 9586122913090633727

// Zero and One are the Montgomery-form representations of the
// canonical values 0 and 1.
var (
	Zero = Element{}
	One  = Element{limbs: rRaw()}
)

func rRaw() [6]uint64 {
	var z Element
	z.SetCanonical([6]uint64{1, 0, 0, 0, 0, 0})
	return z.limbs
}

// ErrDivisionByZero is returned by Div/Inverse-dependent operations
// when the divisor is zero.
var ErrDivisionByZero = errors.New("fp: division by zero")

// SetCanonical sets z to the Montgomery image of the little-endian
// limb integer c, which must already be reduced (c < Modulus).
func (z *Element) SetCanonical(c [6]uint64) *Element {
	z.limbs = montMul(c, rSquare)
	return z
}

// SetUint64 sets z to the Montgomery image of n.
func (z *Element) SetUint64(n uint64) *Element {
	return z.SetCanonical([6]uint64{n, 0, 0, 0, 0, 0})
}

// ToCanonical returns the canonical little-endian limb integer
// represented by z.
func (z Element) ToCanonical() [6]uint64 {
	return montMul(z.limbs, [6]uint64{1, 0, 0, 0, 0, 0})
}

// IsZero reports whether z is the additive identity.
func (z Element) IsZero() bool {
	return z.limbs == [6]uint64{}
}

// Equal reports whether z and x represent the same field element.
func (z Element) Equal(x Element) bool {
	return z.limbs == x.limbs
}

// Add sets z = x + y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	sum, carry := add6(x.limbs, y.limbs)
	if carry != 0 || cmp6(sum, Modulus) >= 0 {
		sum = sub6(sum, Modulus)
	}
	z.limbs = sum
	return z
}

// Sub sets z = x - y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	if cmp6(x.limbs, y.limbs) < 0 {
		var negY Element
		negY.Neg(y)
		sum, _ := add6(x.limbs, negY.limbs)
		z.limbs = sum
	} else {
		z.limbs = sub6(x.limbs, y.limbs)
	}
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	if x.IsZero() {
		z.limbs = [6]uint64{}
	} else {
		z.limbs = sub6(Modulus, x.limbs)
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

// Double sets z = x + x and returns z.
func (z *Element) Double(x *Element) *Element {
	return z.Add(x, x)
}

// Inverse sets z to the multiplicative inverse of x and returns z, ok.
// ok is false iff x is zero, in which case z is left at zero.
func (z *Element) Inverse(x *Element) (zz *Element, ok bool) {
	if x.IsZero() {
		z.limbs = [6]uint64{}
		return z, false
	}
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
// (little-endian limb) form, and returns z.
func (z *Element) Exp(base Element, power [6]uint64) *Element {
	current := base
	product := One
	for _, limb := range power {
		for j := 0; j < 64; j++ {
			if (limb>>uint(j))&1 != 0 {
				product.Mul(&product, &current)
			}
			current.Square(&current)
		}
	}
	*z = product
	return z
}

// Random draws six CSPRNG-sourced limbs and masks the top bits so the
// result is strictly less than Modulus, retrying on overflow. This is
// intended for test-vector generation only.
func Random(rnd io.Reader) (Element, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	for {
		var buf [48]byte
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return Element{}, err
		}
		var limbs [6]uint64
		for i := 0; i < 6; i++ {
			limbs[i] = leUint64(buf[i*8 : i*8+8])
		}
		limbs[5] &= (1 << 59) - 1
		if cmp6(limbs, Modulus) < 0 {
			var z Element
			z.SetCanonical(limbs)
			return z, nil
		}
	}
}

func leUint64(b []byte) uint64 {
	var x uint64
	for i := 7; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x
}

// Bytes returns the big-endian 48-byte encoding of z's canonical
// integer value, the wire format used by WriteTo.
func (z Element) Bytes() [48]byte {
	c := z.ToCanonical()
	var out [48]byte
	for i := 0; i < 6; i++ {
		limb := c[i]
		for j := 0; j < 8; j++ {
			out[47-(i*8+j)] = byte(limb >> uint(8*j))
		}
	}
	return out
}

// SetBytes sets z to the Montgomery image of the big-endian byte
// string b reduced modulo Modulus, via Horner's rule, and returns z.
// b may represent an integer larger than Modulus (e.g. a hash
// digest). The transcript does not use it: GetChallenge reduces its
// digest with fr.Element.SetBytes instead.
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

// SetCanonicalBytes parses the big-endian 48-byte string b as a field
// element, returning ok=false (and leaving z unmodified) if b encodes
// an integer >= Modulus. This is the validating entry point for
// untrusted wire data (the point coordinates VerificationKey.ReadFrom
// decodes).
func (z *Element) SetCanonicalBytes(b []byte) (zz *Element, ok bool) {
	if len(b) != 48 {
		return z, false
	}
	var c [6]uint64
	for i := 0; i < 6; i++ {
		c[i] = beUint64(b[48-(i+1)*8 : 48-i*8])
	}
	if cmp6(c, Modulus) >= 0 {
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
