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

// Package fiatshamir implements the transcript (Challenger) the PLONK
// verifier draws its challenges from. Spec places the transcript hash
// construction itself out of scope as an external collaborator — the
// verifier only requires bit-for-bit agreement with whatever the
// prover used — so this is one concrete, self-consistent
// implementation rather than a pinned wire protocol.
//
// Unlike the reference's Halo curve cycle (where the base and scalar
// fields are nearly the same size, so a base-field challenge fits
// canonically into the scalar field with overwhelming probability),
// BLS12-377's base field is ~124 bits wider than its scalar field. A
// challenge squeezed uniformly over the full base field would fit in
// the scalar field with probability ~2^-124, so GetChallenge instead
// reduces the digest directly into Fr (the range the verifier's
// TryConvertBaseToScalar must land in) and lifts the result into Fq
// for the return value and for re-absorption; it always converts back
// to the same Fr value it started from.
package fiatshamir

import (
	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fp"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"golang.org/x/crypto/blake2b"
)

// Transcript is a sponge-style Fiat–Shamir absorber over blake2b. Each
// Observe* call folds new data into the running state; each
// GetChallenge call squeezes a field element out of the state and
// chains the digest back in, so no two challenges in a session (or
// across sessions with differing prior messages) ever coincide
// without an identical transcript history.
type Transcript struct {
	state        [64]byte
	securityBits int
}

// New creates a transcript bound to the given security parameter (in
// bits). securityBits does not change the hash primitive; it is
// retained for callers (the PLONK verifier's halo_n step) that need to
// know how many leading challenge bits the endomorphism map consumes.
func New(securityBits int) *Transcript {
	return &Transcript{securityBits: securityBits}
}

// SecurityBits returns the security parameter the transcript was
// constructed with.
func (t *Transcript) SecurityBits() int {
	return t.securityBits
}

func (t *Transcript) absorb(domain byte, data []byte) {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err) // blake2b.New512 only errors on an oversized key, which we never pass
	}
	h.Write(t.state[:])
	h.Write([]byte{domain})
	h.Write(data)
	copy(t.state[:], h.Sum(nil))
}

// ObserveAffinePoint absorbs a single G1 point, distinguishing the
// point at infinity from any affine point (including one whose
// coordinates happen to be zero).
func (t *Transcript) ObserveAffinePoint(p bls12377.G1) *Transcript {
	x, y, infinity := p.Affine()
	if infinity {
		t.absorb('O', nil)
		return t
	}
	xb := x.Bytes()
	yb := y.Bytes()
	t.absorb('P', append(xb[:], yb[:]...))
	return t
}

// ObserveAffinePoints absorbs each point of ps in order.
func (t *Transcript) ObserveAffinePoints(ps []bls12377.G1) *Transcript {
	for _, p := range ps {
		t.ObserveAffinePoint(p)
	}
	return t
}

// ObserveElement absorbs a single base-field element.
func (t *Transcript) ObserveElement(e fp.Element) *Transcript {
	b := e.Bytes()
	t.absorb('E', b[:])
	return t
}

// GetChallenge squeezes the next challenge out of the transcript,
// returned as an Fq element for re-absorption but reduced into Fr's
// range first: the digest is Horner-reduced mod fr.Modulus, then
// lifted into Fq, so it always converts canonically back to Fr via
// bls12377.TryConvertBaseToScalar. The digest that produced it is
// folded back into the state so a second call never reproduces the
// same challenge.
func (t *Transcript) GetChallenge() fp.Element {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	h.Write(t.state[:])
	h.Write([]byte{'C'})
	digest := h.Sum(nil)
	copy(t.state[:], digest)

	var scalar fr.Element
	scalar.SetBytes(digest)
	return bls12377.ConvertScalarToBase(scalar)
}

// Get2Challenges draws two challenges in sequence.
func (t *Transcript) Get2Challenges() (a, b fp.Element) {
	return t.GetChallenge(), t.GetChallenge()
}

// Get3Challenges draws three challenges in sequence.
func (t *Transcript) Get3Challenges() (a, b, c fp.Element) {
	return t.GetChallenge(), t.GetChallenge(), t.GetChallenge()
}
