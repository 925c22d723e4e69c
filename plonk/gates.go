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

package plonk

import "github.com/mengsuenyan/plonky/ecc/bls12377/fr"

// ConstraintEvaluator evaluates a circuit's gate constraint
// polynomials at a challenge point ζ, given the local row's selector
// ("constants") and wire openings and the two neighboring rows' wire
// openings (used by gates that reference adjacent rows, e.g. rotation
// gates). Spec leaves evaluate_all_constraints as an external
// collaborator: this is the interface the verifier calls through, not
// a production gate catalog.
type ConstraintEvaluator interface {
	EvaluateAll(constants, local, right, below []fr.Element) []fr.Element
}

// ArithMulGate is the smallest gate set that exercises the verifier's
// quotient-identity plumbing: a single multiplication constraint
// q_M * (wire0*wire1 - wire2), i.e. the circuit wire0*wire1 = wire2.
// constants[0] holds q_M.
type ArithMulGate struct{}

// EvaluateAll returns a single constraint evaluation:
// constants[0] * (local[0]*local[1] - local[2]).
func (ArithMulGate) EvaluateAll(constants, local, right, below []fr.Element) []fr.Element {
	var product, diff, out fr.Element
	product.Mul(&local[0], &local[1])
	diff.Sub(&product, &local[2])
	out.Mul(&constants[0], &diff)
	return []fr.Element{out}
}
