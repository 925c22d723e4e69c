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

package bls12377

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// Zeta is a primitive cube root of unity in Fr (zeta^2+zeta+1 = 0 mod
// r). BLS12-377 G1 has a=0, which gives it the efficient endomorphism
// phi(x,y) = (beta*x, y) for a matching cube root beta in Fq; Zeta is
// its Fr-side eigenvalue, used by HaloN to fold a full-width scalar
// into the short exponent the Halo endomorphism trick multiplies by.
var Zeta = func() fr.Element {
	var z fr.Element
	z.SetCanonical([4]uint64{725501752471715840, 4981570305181876225, 0, 0})
	return z
}()

// HaloN computes the Halo endomorphism short-scalar map: it consumes
// the leading n bits of bits (least-significant first, as produced by
// fr.Element.ToCanonicalBitSet) two at a time, from the most
// significant pair down to the least, and folds them into a Horner-style
// accumulator seeded at 2. Each pair (b0, b1) contributes a signed unit
// (+-1) or, when b1 is set, that unit scaled by Zeta instead of 1 — the
// same two-bit-per-step recurrence used throughout the Halo/Bulletproofs
// literature to let a single scalar multiplication stand in for two
// half-width ones. n must be even.
func HaloN(bits *bitset.BitSet, n int) fr.Element {
	if n%2 != 0 {
		panic("bls12377: HaloN requires an even number of bits")
	}
	acc := fr.Two
	for i := n - 2; i >= 0; i -= 2 {
		b0 := bits.Test(uint(i))
		b1 := bits.Test(uint(i + 1))

		acc.Add(&acc, &acc)

		term := fr.One
		if b1 {
			term = Zeta
		}
		if !b0 {
			term.Neg(&term)
		}
		acc.Add(&acc, &term)
	}
	return acc
}
