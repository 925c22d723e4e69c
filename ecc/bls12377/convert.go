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
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// TryConvertBaseToScalar lifts a base-field (Fq) element into the
// scalar field (Fr), succeeding iff e's canonical integer value fits
// in [0, fr.Modulus). Because |Fq| > |Fr|, this is a lossy mapping in
// general: an Fq element drawn uniformly at random fits in Fr's range
// with probability roughly 2^-124 for BLS12-377 (spec §9 "Challenge
// domain conversion"). fiatshamir.Transcript.GetChallenge does not
// draw that way — it reduces into Fr before lifting back to Fq — so
// every challenge this package's verifier actually calls this
// function on converts; a caller that instead hands it an arbitrary
// Fq value (as the round-trip tests do) sees the full lossy behavior.
func TryConvertBaseToScalar(e fp.Element) (fr.Element, bool) {
	c := e.ToCanonical()
	for i := 4; i < 6; i++ {
		if c[i] != 0 {
			return fr.Element{}, false
		}
	}
	var low [4]uint64
	copy(low[:], c[:4])
	var out fr.Element
	for i := 3; i >= 0; i-- {
		if low[i] < fr.Modulus[i] {
			out.SetCanonical(low)
			return out, true
		}
		if low[i] > fr.Modulus[i] {
			return fr.Element{}, false
		}
	}
	// low == fr.Modulus exactly: not canonical in Fr.
	return fr.Element{}, false
}

// ConvertScalarToBase lifts a scalar-field (Fr) element back into the
// base field (Fq) by zero-extending its canonical limbs. This
// direction is never lossy: fr.Modulus < fp.Modulus, so every Fr value
// fits canonically in Fq.
func ConvertScalarToBase(e fr.Element) fp.Element {
	c := e.ToCanonical()
	var wide [6]uint64
	copy(wide[:4], c[:])
	var out fp.Element
	out.SetCanonical(wide)
	return out
}
