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

// Package plonk implements the verifier side of a PLONK-style
// zero-knowledge proof system over BLS12-377 with a Halo/IPA
// polynomial commitment scheme.
package plonk

import (
	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
)

// NumWires is the number of wire columns per gate.
const NumWires = 3

// NumRoutedWires is the number of wire columns participating in the
// copy-constraint permutation argument. The toy circuit this module
// exercises routes all three wires.
const NumRoutedWires = 3

// OpeningSet is the bundle of polynomial evaluations at a single
// point consumed by the quotient check and, reduced with the other
// opening sets, by the IPA verification.
type OpeningSet struct {
	Constants []fr.Element
	Sigmas    []fr.Element
	Wires     []fr.Element
	PlonkZ    fr.Element
	PlonkT    []fr.Element
}

// Flatten returns the opening set's elements in the fixed order the
// transcript absorbs them and the IPA inner product is taken over:
// constants, sigmas, wires, z, then the quotient chunks.
func (os OpeningSet) Flatten() []fr.Element {
	out := make([]fr.Element, 0, len(os.Constants)+len(os.Sigmas)+len(os.Wires)+1+len(os.PlonkT))
	out = append(out, os.Constants...)
	out = append(out, os.Sigmas...)
	out = append(out, os.Wires...)
	out = append(out, os.PlonkZ)
	out = append(out, os.PlonkT...)
	return out
}

// Proof is the bundle of commitments, opening evaluations and IPA
// reduction data the prover sends the verifier.
type Proof struct {
	CWires  []bls12377.G1
	CPlonkZ bls12377.G1
	CPlonkT []bls12377.G1

	OPublicInputs []OpeningSet
	OLocal        OpeningSet
	ORight        OpeningSet
	OBelow        OpeningSet

	HaloL []bls12377.G1
	HaloR []bls12377.G1
	HaloG bls12377.G1
}

// AllOpeningSets returns every opening set in the proof, in the
// deterministic order the transcript absorbs and the IPA reduces
// them: the public-input gate openings, then local, right, below.
func (p *Proof) AllOpeningSets() []OpeningSet {
	sets := make([]OpeningSet, 0, len(p.OPublicInputs)+3)
	sets = append(sets, p.OPublicInputs...)
	sets = append(sets, p.OLocal, p.ORight, p.OBelow)
	return sets
}

// AllAffinePoints returns every G1 point carried by the proof, in the
// order CheckProofParameters validates them.
func (p *Proof) AllAffinePoints() []bls12377.G1 {
	out := make([]bls12377.G1, 0, len(p.CWires)+1+len(p.CPlonkT)+len(p.HaloL)+len(p.HaloR)+1)
	out = append(out, p.CWires...)
	out = append(out, p.CPlonkZ)
	out = append(out, p.CPlonkT...)
	out = append(out, p.HaloL...)
	out = append(out, p.HaloR...)
	out = append(out, p.HaloG)
	return out
}
