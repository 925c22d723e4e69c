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

package fiatshamir

import "github.com/mengsuenyan/plonky/ecc/bls12377/fr"

// Powers returns [1, alpha, alpha^2, ..., alpha^(n-1)].
func Powers(alpha fr.Element, n int) []fr.Element {
	out := make([]fr.Element, n)
	if n == 0 {
		return out
	}
	out[0] = fr.One
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &alpha)
	}
	return out
}

// ReduceWithPowers returns v[0] + v[1]*alpha + v[2]*alpha^2 + ... via
// Horner's rule, evaluated from the highest-degree term down so it
// needs no separate powers table.
func ReduceWithPowers(v []fr.Element, alpha fr.Element) fr.Element {
	var acc fr.Element
	for i := len(v) - 1; i >= 0; i-- {
		acc.Mul(&acc, &alpha)
		acc.Add(&acc, &v[i])
	}
	return acc
}
