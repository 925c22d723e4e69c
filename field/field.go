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

// Package field independently re-derives, for an arbitrary prime
// modulus, the handful of facts gnark-crypto's field-code generator
// computes before choosing a square-root algorithm: word/bit width and
// which of the three standard branches (q ≡ 3 mod 4, Atkin's q ≡ 5 mod
// 8, or Tonelli-Shanks) applies. ecc/bls12377/fr and ecc/bls12377/fp
// hand-specialize their arithmetic for two fixed moduli rather than
// going through a generator, so this package backs a consistency check
// instead: field_test.go feeds both moduli back through NewField and
// asserts the independently-derived NbWords/NbBits/Q agree with the
// hand-written constants, and that the Tonelli-Shanks branch NewField
// selects matches what fr's TwoAdicity = 47 implies.
package field

import (
	"errors"
	"math/big"
)

var (
	errUnsupportedModulus = errors.New("field: unsupported modulus, must be prime with size > 64 bits")
	errParseModulus       = errors.New("field: can't parse modulus")
)

// Field holds the word/bit width and square-root algorithm selection
// derived from a prime modulus.
type Field struct {
	ModulusBig *big.Int
	NbWords    int
	NbBits     int
	Q          []uint64

	// Exactly one of SqrtQ3Mod4, SqrtAtkin, SqrtTonelliShanks is true,
	// selected by the modulus's residue class mod 4 and mod 8.
	SqrtQ3Mod4        bool
	SqrtAtkin         bool
	SqrtTonelliShanks bool

	// SqrtE, SqrtS hold the Tonelli-Shanks decomposition q-1 = 2^E * S
	// (S odd), populated only when SqrtTonelliShanks is true.
	SqrtE uint64
	SqrtS []uint64
}

// NewField parses modulus (a base-10 string) and derives its word/bit
// width and square-root algorithm class.
func NewField(packageName, elementName, modulus string) (*Field, error) {
	var bModulus big.Int
	if _, ok := bModulus.SetString(modulus, 10); !ok {
		return nil, errParseModulus
	}

	F := &Field{ModulusBig: new(big.Int).Set(&bModulus)}
	F.NbBits = bModulus.BitLen()
	F.NbWords = len(bModulus.Bits())
	if F.NbWords < 2 {
		return nil, errUnsupportedModulus
	}
	F.Q = toUint64Slice(&bModulus, F.NbWords)

	var qMod big.Int
	qMod.SetUint64(4)
	if qMod.Mod(&bModulus, &qMod).Cmp(big.NewInt(3)) == 0 {
		// q ≡ 3 (mod 4): z ≡ ± x^((q+1)/4) (mod q).
		F.SqrtQ3Mod4 = true
		return F, nil
	}

	qMod.SetUint64(8)
	if qMod.Mod(&bModulus, &qMod).Cmp(big.NewInt(5)) == 0 {
		// q ≡ 5 (mod 8): Atkin's algorithm.
		F.SqrtAtkin = true
		return F, nil
	}

	// q ≡ 1 (mod 8): Tonelli-Shanks. Write q-1 = 2^e * s, s odd.
	F.SqrtTonelliShanks = true
	var s big.Int
	s.Sub(&bModulus, big.NewInt(1))
	e := s.TrailingZeroBits()
	s.Rsh(&s, e)
	F.SqrtE = uint64(e)
	F.SqrtS = toUint64Slice(&s)

	return F, nil
}

func toUint64Slice(b *big.Int, nbWords ...int) (s []uint64) {
	if len(nbWords) > 0 && nbWords[0] > len(b.Bits()) {
		s = make([]uint64, nbWords[0])
	} else {
		s = make([]uint64, len(b.Bits()))
	}
	for i, v := range b.Bits() {
		s[i] = uint64(v)
	}
	return
}
