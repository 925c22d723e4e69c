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

import (
	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// VerificationKey holds the read-only public parameters of a circuit:
// selector and sigma polynomial commitments, the evaluation domain's
// size, and the transcript security parameter. It is both the
// verifier's in-memory circuit description and the persisted layout
// named in spec §6 — see marshal.go for WriteTo/ReadFrom.
type VerificationKey struct {
	// SelectorCommitments are commitments to the gate-constant
	// ("constants") polynomials, c_constants in the reference.
	SelectorCommitments []bls12377.G1
	// SigmaCommitments are commitments to the copy-constraint
	// permutation polynomials, c_s_sigmas in the reference.
	SigmaCommitments []bls12377.G1
	// DegreeLog is k, where the evaluation domain H has order d = 2^k.
	DegreeLog int
	// DegreePow is d = 2^DegreeLog, cached to avoid recomputing it on
	// every verification.
	DegreePow int
	// SecurityBits is the Fiat–Shamir / halo_n security parameter, 128
	// in the reference.
	SecurityBits int
	// SubgroupGenerator is g, the generator of H.
	SubgroupGenerator fr.Element
}

// Degree returns d = 2^DegreeLog.
func (vk *VerificationKey) Degree() int {
	return vk.DegreePow
}

// SubgroupShifter returns the i-th copy-constraint coset multiplier
// k_i, a fixed value distinct per i in [0, NumRoutedWires) that, when
// multiplied by a domain element, lands in a coset of H disjoint from
// every other wire's coset (CosetShifter's k_0 = 1 gives H itself). Spec leaves get_subgroup_shift as
// an external collaborator; this is the one concrete implementation
// exercised by this module.
type SubgroupShifter interface {
	Shift(i int) fr.Element
}

// CosetShifter implements SubgroupShifter using the conventional PLONK
// choice k_i = g^i for a fixed non-H coset generator g (the field's
// full-group generator, which is outside H because H's order divides
// r-1 but g generates the whole multiplicative group).
type CosetShifter struct{}

// Shift returns fr.Generator^i.
func (CosetShifter) Shift(i int) fr.Element {
	var z fr.Element
	return *z.ExpUint64(fr.Generator, uint64(i))
}
