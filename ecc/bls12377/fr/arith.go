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

package fr

import "math/bits"

// cmp4 returns -1, 0 or 1 as a <,==,> b, comparing as 256-bit
// little-endian integers.
func cmp4(a, b [4]uint64) int {
	for i := 3; i >= 0; i-- {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// add4 returns a+b and the final carry out of the top limb. The sum
// itself may exceed Modulus; callers reduce afterward.
func add4(a, b [4]uint64) (sum [4]uint64, carry uint64) {
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return
}

// sub4 returns a-b, assuming a >= b.
func sub4(a, b [4]uint64) [4]uint64 {
	var diff [4]uint64
	var borrow uint64
	for i := 0; i < 4; i++ {
		diff[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return diff
}

// montMul computes the CIOS (coarsely integrated operand scanning)
// Montgomery product a*b*R^-1 mod Modulus. See Algorithm 2 of
// https://eprint.iacr.org/2017/1057.pdf.
//
// The running accumulator c has 5 limbs; i is treated as the rotating
// least-significant digit so no explicit shift of c is needed between
// outer iterations.
func montMul(a, b [4]uint64) [4]uint64 {
	var c [5]uint64

	for i := 0; i < 4; i++ {
		// c += a[i] * b, position i is the rotating low digit.
		var carry uint64
		for j := 0; j < 4; j++ {
			idx := (i + j) % 5
			hi, lo := bits.Mul64(a[i], b[j])
			s, c0 := bits.Add64(c[idx], lo, 0)
			s, c1 := bits.Add64(s, carry, 0)
			c[idx] = s
			carry = hi + c0 + c1
		}
		c[(i+4)%5] += carry

		// q = mu * c[i] mod 2^64.
		q := mu * c[i]

		// c += q * Modulus.
		carry = 0
		for j := 0; j < 4; j++ {
			idx := (i + j) % 5
			hi, lo := bits.Mul64(q, Modulus[j])
			s, c0 := bits.Add64(c[idx], lo, 0)
			s, c1 := bits.Add64(s, carry, 0)
			c[idx] = s
			carry = hi + c0 + c1
		}
		c[(i+4)%5] += carry
		// c[i] is now 0 by construction of q.
	}

	result := [4]uint64{c[4], c[0], c[1], c[2]}
	if cmp4(result, Modulus) >= 0 {
		result = sub4(result, Modulus)
	}
	return result
}

// invModOdd computes the modular inverse of a (as a raw little-endian
// limb integer, 0 <= a < m) modulo the odd modulus m, using the binary
// (Stein's) extended GCD. a must be nonzero.
func invModOdd(a, m [4]uint64) [4]uint64 {
	u, v := a, m
	var x1, x2 [4]uint64
	x1[0] = 1

	for cmp4(u, [4]uint64{1, 0, 0, 0}) != 0 && cmp4(v, [4]uint64{1, 0, 0, 0}) != 0 {
		for isEven(u) {
			u = div2(u)
			if isEven(x1) {
				x1 = div2(x1)
			} else {
				sum, carry := add4(x1, m)
				x1 = div2WithCarry(sum, carry)
			}
		}
		for isEven(v) {
			v = div2(v)
			if isEven(x2) {
				x2 = div2(x2)
			} else {
				sum, carry := add4(x2, m)
				x2 = div2WithCarry(sum, carry)
			}
		}
		if cmp4(u, v) >= 0 {
			u = sub4(u, v)
			x1 = subMod(x1, x2, m)
		} else {
			v = sub4(v, u)
			x2 = subMod(x2, x1, m)
		}
	}
	if cmp4(u, [4]uint64{1, 0, 0, 0}) == 0 {
		return reduceMod(x1, m)
	}
	return reduceMod(x2, m)
}

func isEven(a [4]uint64) bool {
	return a[0]&1 == 0
}

// div2 divides a by two, treating it as an unsigned 256-bit integer
// with no carry-in from a preceding addition.
func div2(a [4]uint64) [4]uint64 {
	return div2WithCarry(a, 0)
}

// div2WithCarry divides the 257-bit value (carry:a) by two.
func div2WithCarry(a [4]uint64, carry uint64) [4]uint64 {
	var r [4]uint64
	next := carry
	for i := 3; i >= 0; i-- {
		r[i] = (a[i] >> 1) | (next << 63)
		next = a[i] & 1
	}
	return r
}

// subMod returns a-b mod m, where a and b are each already < m.
func subMod(a, b, m [4]uint64) [4]uint64 {
	if cmp4(a, b) >= 0 {
		return sub4(a, b)
	}
	return sub4(m, sub4(b, a))
}

func reduceMod(a, m [4]uint64) [4]uint64 {
	for cmp4(a, m) >= 0 {
		a = sub4(a, m)
	}
	return a
}
