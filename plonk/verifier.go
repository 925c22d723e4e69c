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

// cf the Halo paper (https://eprint.iacr.org/2019/1021.pdf) sections
// 3-4 for the IPA/endomorphism machinery this file implements the
// verifier side of.
package plonk

import (
	"errors"
	"os"

	"github.com/mengsuenyan/plonky/ecc/bls12377"
	"github.com/mengsuenyan/plonky/ecc/bls12377/fr"
	"github.com/mengsuenyan/plonky/fiatshamir"
	"github.com/rs/zerolog"
)

// SecurityBits is the Fiat-Shamir / halo_n security parameter used
// throughout this package, matching the reference's SECURITY_BITS.
const SecurityBits = 128

// MSM window errors and improbable-challenge errors are stratum-1
// (malformed input / environment) failures per spec §7: the caller
// handed the verifier something it cannot even evaluate, as opposed to
// a proof that evaluates to false.
var (
	// ErrInvalidCommitment is returned by CheckProofParameters when a
	// proof carries a G1 point that is not a valid member of the
	// prime-order subgroup.
	ErrInvalidCommitment = errors.New("plonk: proof commitment is not a valid subgroup point")
	// ErrHaloLengthMismatch is returned when halo_l and halo_r have
	// different lengths.
	ErrHaloLengthMismatch = errors.New("plonk: halo_l and halo_r have different lengths")
	// ErrImprobableChallenge is returned when a base-field challenge
	// does not fit canonically into the scalar field. Per spec §9,
	// this has probability < 2^-120 for an honest transcript and
	// indicates either a coding bug or a malicious prover.
	ErrImprobableChallenge = errors.New("plonk: improbable base-to-scalar challenge conversion failure")
)

// ipaU is the fixed verifier generator used in the IPA reduction (spec
// §4.4 step 9's U), distinct from the commitment basis so that the
// scalar opening term cannot be confused with a linear combination of
// the committed polynomials.
var ipaU = func() bls12377.G1 {
	var u bls12377.G1
	u.ScalarMul(&bls12377.Generator, [4]uint64{7, 0, 0, 0})
	return u
}()

// msmWindow is the default bucket width passed to bls12377.Precompute.
const msmWindow = 8

// Option configures a Verifier.
type Option func(*verifierConfig)

type verifierConfig struct {
	logger    zerolog.Logger
	msmWindow int
}

func defaultConfig() verifierConfig {
	return verifierConfig{
		logger:    zerolog.New(os.Stderr).With().Timestamp().Str("component", "plonk.Verifier").Logger(),
		msmWindow: msmWindow,
	}
}

// WithLogger overrides the zerolog.Logger a Verifier reports challenge
// derivation (Debug) and rejected-proof (Warn) events to.
func WithLogger(l zerolog.Logger) Option {
	return func(c *verifierConfig) { c.logger = l }
}

// WithMSMWindow overrides the bucket-window width used by the internal
// multi-scalar-multiplication table.
func WithMSMWindow(w int) Option {
	return func(c *verifierConfig) {
		if w >= 1 {
			c.msmWindow = w
		}
	}
}

// Verifier checks PLONK proofs against a fixed VerificationKey. It is
// safe for concurrent use: VerifyProofCircuit neither mutates the
// Verifier nor the Proof/VerificationKey it is given (spec §5).
type Verifier struct {
	vk          *VerificationKey
	constraints ConstraintEvaluator
	shifter     SubgroupShifter
	cfg         verifierConfig
}

// NewVerifier builds a Verifier for vk, delegating gate-constraint
// evaluation and copy-constraint coset shifts to constraints and
// shifter (spec §6's external collaborators).
func NewVerifier(vk *VerificationKey, constraints ConstraintEvaluator, shifter SubgroupShifter, opts ...Option) *Verifier {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Verifier{vk: vk, constraints: constraints, shifter: shifter, cfg: cfg}
}

// VerifyProofCircuit runs the full PLONK verification flow of spec
// §4.4 against publicInputs and proof. It returns (false, nil) for any
// algebraic check failure — a normal, non-error rejection — and a
// non-nil error only when the proof itself is malformed or the
// environment fails (spec §7).
func (v *Verifier) VerifyProofCircuit(publicInputs []fr.Element, proof *Proof) (bool, error) {
	if err := CheckProofParameters(proof); err != nil {
		return false, err
	}

	if !verifyPublicInputs(publicInputs, proof) {
		v.cfg.logger.Warn().Msg("public inputs do not match opening set")
		return false, nil
	}

	ch, err := getChallenges(proof, SecurityBits)
	if err != nil {
		return false, err
	}
	v.cfg.logger.Debug().Msg("derived Fiat-Shamir challenges")

	degree := v.vk.Degree()
	zetaPowD := new(fr.Element).ExpUint64(ch.zeta, uint64(degree))
	var zOfZeta fr.Element
	zOfZeta.Sub(zetaPowD, &fr.One)

	var degreeFr fr.Element
	degreeFr.SetUint64(uint64(degree))
	var zetaMinus1, denom fr.Element
	zetaMinus1.Sub(&ch.zeta, &fr.One)
	denom.Mul(&degreeFr, &zetaMinus1)
	var lagrange1 fr.Element
	if err := lagrange1.Div(&zOfZeta, &denom); err != nil {
		return false, err
	}

	zX := proof.OLocal.PlonkZ
	zGX := proof.ORight.PlonkZ

	var vanishingZ1Term fr.Element
	{
		var zXMinus1 fr.Element
		zXMinus1.Sub(&zX, &fr.One)
		vanishingZ1Term.Mul(&lagrange1, &zXMinus1)
	}

	fPrime := fr.One
	gPrime := fr.One
	for i := 0; i < NumRoutedWires; i++ {
		kI := v.shifter.Shift(i)
		var sID, betaSID, betaSSigma, fPart, gPart fr.Element
		sID.Mul(&kI, &ch.zeta)
		betaSID.Mul(&ch.beta, &sID)
		betaSSigma.Mul(&ch.beta, &proof.OLocal.Sigmas[i])

		fPart.Add(&proof.OLocal.Wires[i], &betaSID)
		fPart.Add(&fPart, &ch.gamma)
		gPart.Add(&proof.OLocal.Wires[i], &betaSSigma)
		gPart.Add(&gPart, &ch.gamma)

		fPrime.Mul(&fPrime, &fPart)
		gPrime.Mul(&gPrime, &gPart)
	}
	var vanishingShiftTerm, fPrimeZx, gPrimeZgx fr.Element
	fPrimeZx.Mul(&fPrime, &zX)
	gPrimeZgx.Mul(&gPrime, &zGX)
	vanishingShiftTerm.Sub(&fPrimeZx, &gPrimeZgx)

	constraintTerms := v.constraints.EvaluateAll(
		proof.OLocal.Constants, proof.OLocal.Wires, proof.ORight.Wires, proof.OBelow.Wires,
	)

	vanishingTerms := make([]fr.Element, 0, 2+len(constraintTerms))
	vanishingTerms = append(vanishingTerms, vanishingZ1Term, vanishingShiftTerm)
	vanishingTerms = append(vanishingTerms, constraintTerms...)

	reduced := fiatshamir.ReduceWithPowers(vanishingTerms, ch.alpha)
	var computedTOpening fr.Element
	if err := computedTOpening.Div(&reduced, &zOfZeta); err != nil {
		return false, err
	}
	purportedTOpening := fiatshamir.ReduceWithPowers(proof.OLocal.PlonkT, *zetaPowD)

	if !computedTOpening.Equal(purportedTOpening) {
		v.cfg.logger.Warn().Msg("quotient opening mismatch")
		return false, nil
	}

	ok, err := v.verifyAllIPAs(proof, ch)
	if err != nil {
		return false, err
	}
	if !ok {
		v.cfg.logger.Warn().Msg("IPA verification failed")
		return false, nil
	}
	return true, nil
}

// CheckProofParameters validates the stratum-1 structural invariants
// of proof (spec §7): every commitment is a valid subgroup point, and
// halo_l/halo_r have equal length. It does not touch the algebraic
// content of the proof.
func CheckProofParameters(proof *Proof) error {
	for _, p := range proof.AllAffinePoints() {
		if !p.InSubgroup() {
			return ErrInvalidCommitment
		}
	}
	if len(proof.HaloL) != len(proof.HaloR) {
		return ErrHaloLengthMismatch
	}
	return nil
}

func verifyPublicInputs(publicInputs []fr.Element, proof *Proof) bool {
	for i, pi := range publicInputs {
		openingSet := i / NumWires
		wire := i % NumWires
		if openingSet >= len(proof.OPublicInputs) {
			return false
		}
		if !pi.Equal(proof.OPublicInputs[openingSet].Wires[wire]) {
			return false
		}
	}
	return true
}

type challenges struct {
	beta, gamma, alpha, zeta, v, u, x fr.Element
	ipa                               []fr.Element
}

// getChallenges replays the transcript of spec §4.4 step 3, converting
// every base-field challenge into Fr via TryConvertBaseToScalar.
func getChallenges(proof *Proof, securityBits int) (*challenges, error) {
	t := fiatshamir.New(securityBits)

	t.ObserveAffinePoints(proof.CWires)
	betaBF, gammaBF := t.Get2Challenges()
	beta, ok := bls12377.TryConvertBaseToScalar(betaBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}
	gamma, ok := bls12377.TryConvertBaseToScalar(gammaBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}

	t.ObserveAffinePoint(proof.CPlonkZ)
	alphaBF := t.GetChallenge()
	alpha, ok := bls12377.TryConvertBaseToScalar(alphaBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}

	t.ObserveAffinePoints(proof.CPlonkT)
	zetaBF := t.GetChallenge()
	zeta, ok := bls12377.TryConvertBaseToScalar(zetaBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}

	for _, set := range proof.AllOpeningSets() {
		for _, f := range set.Flatten() {
			t.ObserveElement(bls12377.ConvertScalarToBase(f))
		}
	}
	vBF, uBF, xBF := t.Get3Challenges()
	v, ok := bls12377.TryConvertBaseToScalar(vBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}
	u, ok := bls12377.TryConvertBaseToScalar(uBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}
	x, ok := bls12377.TryConvertBaseToScalar(xBF)
	if !ok {
		return nil, ErrImprobableChallenge
	}

	ipa := make([]fr.Element, len(proof.HaloL))
	for i := range proof.HaloL {
		t.ObserveAffinePoints([]bls12377.G1{proof.HaloL[i], proof.HaloR[i]})
		lBF := t.GetChallenge()
		lScalar, ok := bls12377.TryConvertBaseToScalar(lBF)
		if !ok {
			return nil, ErrImprobableChallenge
		}
		ipa[i] = lScalar
	}

	return &challenges{beta: beta, gamma: gamma, alpha: alpha, zeta: zeta, v: v, u: u, x: x, ipa: ipa}, nil
}

// verifyAllIPAs implements spec §4.4 step 9: it reduces every
// commitment in the proof (plus the circuit's selector/sigma
// commitments) and every opening set to a single claimed opening via
// halo_n-weighted combinations, then defers to verifyIPA for the final
// Bulletproofs-style folding check.
func (v *Verifier) verifyAllIPAs(proof *Proof, ch *challenges) (bool, error) {
	cAll := make([]bls12377.G1, 0, len(v.vk.SelectorCommitments)+len(v.vk.SigmaCommitments)+len(proof.CWires)+1+len(proof.CPlonkT))
	cAll = append(cAll, v.vk.SelectorCommitments...)
	cAll = append(cAll, v.vk.SigmaCommitments...)
	cAll = append(cAll, proof.CWires...)
	cAll = append(cAll, proof.CPlonkZ)
	cAll = append(cAll, proof.CPlonkT...)

	powersOfU := fiatshamir.Powers(ch.u, len(cAll))
	actualScalars := make([]fr.Element, len(powersOfU))
	for i, p := range powersOfU {
		actualScalars[i] = bls12377.HaloN(p.ToCanonicalBitSet(256), SecurityBits)
	}

	table := bls12377.Precompute(cAll, v.cfg.msmWindow)
	cReduction, err := table.ExecuteParallel(actualScalars)
	if err != nil {
		return false, err
	}

	openingSets := proof.AllOpeningSets()
	openingSetReductions := make([]fr.Element, len(openingSets))
	for i, set := range openingSets {
		flat := set.Flatten()
		if len(flat) != len(actualScalars) {
			return false, ErrInvalidCommitment
		}
		openingSetReductions[i] = fr.InnerProduct(flat, actualScalars)
	}
	reducedOpening := fiatshamir.ReduceWithPowers(openingSetReductions, ch.v)

	return v.verifyIPA(proof, cReduction, reducedOpening, ch.x, ch.ipa)
}

// verifyIPA completes the Bulletproofs-style folding check the
// reference implementation left as a todo!(): it computes P' = p +
// [n(x)]U*c, re-derives the folded commitment Q from halo_l/halo_r and
// the IPA challenges (and their halo_n'd inverses), and checks that
// P'+Q reproduces the prover's claimed final commitment halo_g.
func (v *Verifier) verifyIPA(proof *Proof, p bls12377.G1, c, x fr.Element, ipaChallenges []fr.Element) (bool, error) {
	nX := bls12377.HaloN(x.ToCanonicalBitSet(256), SecurityBits)
	var uPrime bls12377.G1
	uPrime.ScalarMulFr(&ipaU, nX)

	var uNxC bls12377.G1
	uNxC.ScalarMulFr(&uPrime, c)

	var pPrime bls12377.G1
	pPrime.Add(&p, &uNxC)

	points := make([]bls12377.G1, 0, 2*len(proof.HaloL))
	points = append(points, proof.HaloL...)
	points = append(points, proof.HaloR...)

	scalars := make([]fr.Element, 0, 2*len(ipaChallenges))
	scalars = append(scalars, ipaChallenges...)
	for _, chal := range ipaChallenges {
		inv, ok := new(fr.Element).Inverse(&chal)
		if !ok {
			return false, fr.ErrDivisionByZero
		}
		scalars = append(scalars, bls12377.HaloN(inv.ToCanonicalBitSet(256), SecurityBits))
	}

	table := bls12377.Precompute(points, v.cfg.msmWindow)
	q, err := table.ExecuteParallel(scalars)
	if err != nil {
		return false, err
	}

	var folded bls12377.G1
	folded.Add(&pPrime, &q)
	return folded.Equal(proof.HaloG), nil
}

// VerifyProofCircuit is the package-level convenience entry point
// mirroring the reference's free function of the same name: it builds
// a one-shot Verifier over vk and delegates.
func VerifyProofCircuit(publicInputs []fr.Element, proof *Proof, vk *VerificationKey, constraints ConstraintEvaluator, shifter SubgroupShifter, opts ...Option) (bool, error) {
	return NewVerifier(vk, constraints, shifter, opts...).VerifyProofCircuit(publicInputs, proof)
}
