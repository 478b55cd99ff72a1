// Package proofs implements the sigma-protocol zero-knowledge proofs used by TOS's shielded
// (UNO) transactions: ShieldCommitmentProof and CiphertextValidityProof attest that a freshly
// built commitment or ciphertext was constructed correctly relative to public parameters;
// CommitmentEqProof and BalanceProof attest that two encrypted/committed values are equal
// without revealing either. Every proof is made non-interactive via a merlin.Transcript: the
// prover commits to random blinding points, the transcript's Fiat-Shamir challenge stands in for
// the verifier's random coin, and the response scalars tie the commitment to the witness.
package proofs

import (
	"crypto/rand"
	"errors"

	"github.com/tos-network/gtos-sub001/hazmat/merlin"
	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/hazmat/scalar"
)

// Transcript labels, verbatim protocol constants shared with every implementation of this
// scheme; none of these strings may be altered without breaking interoperability.
const (
	LabelDomSep     = "dom-sep"
	LabelYH         = "Y_H"
	LabelYP         = "Y_P"
	LabelY0         = "Y_0"
	LabelY1         = "Y_1"
	LabelY2         = "Y_2"
	LabelZS         = "z_s"
	LabelZX         = "z_x"
	LabelZR         = "z_r"
	LabelChallenge  = "c"
	LabelFinalize   = "w"
	LabelAmount     = "amount"
	LabelSourceCT   = "source_ct"

	DomainShield        = "shield-commitment-proof"
	DomainValidity      = "validity-proof"
	DomainEquality      = "equality-proof"
	DomainNewCommitment = "new-commitment-proof"
	DomainOwnership     = "ownership-proof"
	DomainBalance       = "balance-proof"
)

// challengeScalar draws a 64-byte challenge under label and reduces it mod ℓ, matching the
// reference merlin_challenge_scalar helper exactly.
func challengeScalar(t *merlin.Transcript, label string) scalar.Scalar {
	var wide [64]byte
	t.ChallengeBytes(label, wide[:])
	var s scalar.Scalar
	s.SetUniformBytes(wide[:])
	return s
}

// randomScalar draws a fresh uniform scalar mod ℓ from the system CSPRNG, for use as a sigma
// protocol's blinding nonce. Unlike a Pedersen opening or private key, a nonce landing on zero
// with probability ~2^-252 is not separately checked: it degenerates the corresponding Y to the
// identity without weakening soundness, so the reference implementation does not guard against
// it either.
func randomScalar() (scalar.Scalar, error) {
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		return scalar.Scalar{}, err
	}
	var s scalar.Scalar
	s.SetUniformBytes(wide[:])
	return s, nil
}

func amountToScalar(amount uint64) scalar.Scalar {
	var wide [64]byte
	for i := 0; i < 8; i++ {
		wide[i] = byte(amount >> (8 * i))
	}
	var s scalar.Scalar
	s.SetUniformBytes(wide[:])
	return s
}

func amountBE(amount uint64) [8]byte {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(amount >> (8 * i))
	}
	return b
}

func scalarMul(n *scalar.Scalar, p *ristretto255.Point) ristretto255.Point {
	b := n.Bytes()
	var out ristretto255.Point
	out.ScalarMul(&b, p)
	return out
}

// ShieldCommitmentProof proves knowledge of r such that C − v·G = r·H and D = r·P, without
// revealing r. It is used when shielding a public amount v into a commitment C with decryption
// handle D for a receiver holding P.
type ShieldCommitmentProof struct {
	YH ristretto255.Point
	YP ristretto255.Point
	Z  scalar.Scalar
}

// ShieldProofSize is the encoded length of a ShieldCommitmentProof: Y_H || Y_P || z.
const ShieldProofSize = 96

// Bytes returns the canonical 96-byte encoding.
func (p *ShieldCommitmentProof) Bytes() [ShieldProofSize]byte {
	var out [ShieldProofSize]byte
	yh, yp, z := p.YH.Encode(), p.YP.Encode(), p.Z.Bytes()
	copy(out[0:32], yh[:])
	copy(out[32:64], yp[:])
	copy(out[64:96], z[:])
	return out
}

// SetBytes decodes a ShieldCommitmentProof, rejecting any non-canonical scalar or any encoding
// that does not name valid Ristretto255 points. Returns nil on failure.
func (p *ShieldCommitmentProof) SetBytes(b []byte) *ShieldCommitmentProof {
	if len(b) != ShieldProofSize {
		return nil
	}
	if p.YH.Decode(b[0:32]) == nil {
		return nil
	}
	if p.YP.Decode(b[32:64]) == nil {
		return nil
	}
	if scalar.SetCanonicalBytes(&p.Z, b[64:96]) == nil {
		return nil
	}
	return p
}

// ProveShieldCommitment proves knowledge of the opening r behind commitment C = amount*G + r*H
// and handle D = r*P, appending the proof's transcript messages to t (which the caller must
// already have appended the statement's public context to, if any, before calling).
func ProveShieldCommitment(t *merlin.Transcript, r *scalar.Scalar, p *ristretto255.Point) (*ShieldCommitmentProof, error) {
	k, err := randomScalar()
	if err != nil {
		return nil, err
	}

	yh := scalarMul(&k, ristretto255.BlindingBase())
	yp := scalarMul(&k, p)

	t.AppendMessage(LabelDomSep, []byte(DomainShield))
	yhBytes, ypBytes := yh.Encode(), yp.Encode()
	t.AppendMessage(LabelYH, yhBytes[:])
	t.AppendMessage(LabelYP, ypBytes[:])

	c := challengeScalar(t, LabelChallenge)
	_ = challengeScalar(t, LabelFinalize) // drawn and discarded, matching the reference verifier

	var cr, z scalar.Scalar
	cr.Multiply(&c, r)
	z.Add(&k, &cr)

	return &ShieldCommitmentProof{YH: yh, YP: yp, Z: z}, nil
}

// VerifyShieldCommitment checks proof against commitment C, handle D, receiver public key P and
// public amount, appending the same transcript messages a prover would have.
func VerifyShieldCommitment(t *merlin.Transcript, proof *ShieldCommitmentProof, commitment, handle, p *ristretto255.Point, amount uint64) bool {
	t.AppendMessage(LabelDomSep, []byte(DomainShield))
	yhBytes, ypBytes := proof.YH.Encode(), proof.YP.Encode()
	t.AppendMessage(LabelYH, yhBytes[:])
	t.AppendMessage(LabelYP, ypBytes[:])

	c := challengeScalar(t, LabelChallenge)
	_ = challengeScalar(t, LabelFinalize)

	amountScalar := amountToScalar(amount)
	amountG := scalarMul(&amountScalar, ristretto255.Base())

	var cMinusAG ristretto255.Point
	cMinusAG.Sub(commitment, &amountG)

	zBytes := proof.Z.Bytes()
	var lhs1 ristretto255.Point
	lhs1.ScalarMul(&zBytes, ristretto255.BlindingBase())

	cBytes := c.Bytes()

	var cTimesRH ristretto255.Point
	cTimesRH.ScalarMul(&cBytes, &cMinusAG)
	var rhs1Point ristretto255.Point
	rhs1Point.Add(&proof.YH, &cTimesRH)
	if !lhs1.Equal(&rhs1Point) {
		return false
	}

	var lhs2 ristretto255.Point
	lhs2.ScalarMul(&zBytes, p)

	var cTimesD ristretto255.Point
	cTimesD.ScalarMul(&cBytes, handle)
	var rhs2 ristretto255.Point
	rhs2.Add(&proof.YP, &cTimesD)

	return lhs2.Equal(&rhs2)
}

// CiphertextValidityProofSizeT0 and CiphertextValidityProofSizeT1 are the encoded proof lengths
// for the receiver-only (unshield) and sender-and-receiver (UNO transfer) variants.
const (
	CiphertextValidityProofSizeT0 = 128
	CiphertextValidityProofSizeT1 = 160
)

// CiphertextValidityProof proves that a ciphertext (C, D_receiver, [D_sender]) was built
// correctly: C = x*G + r*H, D_receiver = r*P_receiver, and — when HasY2 is set (the T1 variant,
// used for a UNO-to-UNO transfer rather than a T0 unshield) — D_sender = r*P_sender as well.
type CiphertextValidityProof struct {
	Y0, Y1, Y2 ristretto255.Point
	HasY2      bool
	Zr, Zx     scalar.Scalar
}

// Bytes returns the canonical encoding: 128 bytes for T0, 160 for T1.
func (p *CiphertextValidityProof) Bytes() []byte {
	y0, y1 := p.Y0.Encode(), p.Y1.Encode()
	zr, zx := p.Zr.Bytes(), p.Zx.Bytes()

	var out []byte
	out = append(out, y0[:]...)
	out = append(out, y1[:]...)
	if p.HasY2 {
		y2 := p.Y2.Encode()
		out = append(out, y2[:]...)
	}
	out = append(out, zr[:]...)
	out = append(out, zx[:]...)
	return out
}

// SetBytes decodes a CiphertextValidityProof. txVersionT1 selects whether a trailing Y_2 field
// is present (160 bytes total) or absent (128 bytes total). Returns nil on failure.
func (p *CiphertextValidityProof) SetBytes(b []byte, txVersionT1 bool) *CiphertextValidityProof {
	want := CiphertextValidityProofSizeT0
	if txVersionT1 {
		want = CiphertextValidityProofSizeT1
	}
	if len(b) < want {
		return nil
	}

	off := 0
	if p.Y0.Decode(b[off:off+32]) == nil {
		return nil
	}
	off += 32
	if p.Y1.Decode(b[off:off+32]) == nil {
		return nil
	}
	off += 32

	if txVersionT1 {
		p.HasY2 = true
		if p.Y2.Decode(b[off:off+32]) == nil {
			return nil
		}
		off += 32
	} else {
		p.HasY2 = false
	}

	if scalar.SetCanonicalBytes(&p.Zr, b[off:off+32]) == nil {
		return nil
	}
	off += 32
	if scalar.SetCanonicalBytes(&p.Zx, b[off:off+32]) == nil {
		return nil
	}
	return p
}

// ProveCiphertextValidity proves the commitment/handle(s) built from opening r and amount x are
// well formed. Pass senderPub == nil for the T0 (unshield) variant; a non-nil senderPub produces
// the T1 variant with an additional Y_2/D_sender check.
func ProveCiphertextValidity(t *merlin.Transcript, x, r *scalar.Scalar, receiverPub, senderPub *ristretto255.Point) (*CiphertextValidityProof, error) {
	kx, err := randomScalar()
	if err != nil {
		return nil, err
	}
	kr, err := randomScalar()
	if err != nil {
		return nil, err
	}

	kxG := scalarMul(&kx, ristretto255.Base())
	krH := scalarMul(&kr, ristretto255.BlindingBase())
	var y0 ristretto255.Point
	y0.Add(&kxG, &krH)

	y1 := scalarMul(&kr, receiverPub)

	proof := &CiphertextValidityProof{Y0: y0, Y1: y1}

	t.AppendMessage(LabelDomSep, []byte(DomainValidity))
	y0Bytes, y1Bytes := y0.Encode(), y1.Encode()
	t.AppendMessage(LabelY0, y0Bytes[:])
	t.AppendMessage(LabelY1, y1Bytes[:])

	if senderPub != nil {
		y2 := scalarMul(&kr, senderPub)
		proof.Y2 = y2
		proof.HasY2 = true
		y2Bytes := y2.Encode()
		t.AppendMessage(LabelY2, y2Bytes[:])
	}

	c := challengeScalar(t, LabelChallenge)
	_ = challengeScalar(t, LabelFinalize)

	var cr, crr, cx, cxx scalar.Scalar
	cr.Multiply(&c, r)
	crr.Add(&kr, &cr)
	cx.Multiply(&c, x)
	cxx.Add(&kx, &cx)

	proof.Zr = crr
	proof.Zx = cxx
	return proof, nil
}

// VerifyCiphertextValidity checks proof against commitment C, receiver handle D_receiver,
// receiver public key, and — for the T1 variant — sender handle D_sender and sender public key.
func VerifyCiphertextValidity(
	t *merlin.Transcript,
	proof *CiphertextValidityProof,
	commitment, receiverHandle, receiverPub *ristretto255.Point,
	senderHandle, senderPub *ristretto255.Point,
) bool {
	if receiverHandle == nil || receiverPub == nil {
		return false
	}

	t.AppendMessage(LabelDomSep, []byte(DomainValidity))
	y0Bytes, y1Bytes := proof.Y0.Encode(), proof.Y1.Encode()
	t.AppendMessage(LabelY0, y0Bytes[:])
	t.AppendMessage(LabelY1, y1Bytes[:])
	if proof.HasY2 {
		y2Bytes := proof.Y2.Encode()
		t.AppendMessage(LabelY2, y2Bytes[:])
	}

	c := challengeScalar(t, LabelChallenge)
	_ = challengeScalar(t, LabelFinalize)

	zxBytes, zrBytes := proof.Zx.Bytes(), proof.Zr.Bytes()
	cBytes := c.Bytes()

	var zxG, zrH, lhs0 ristretto255.Point
	zxG.ScalarMul(&zxBytes, ristretto255.Base())
	zrH.ScalarMul(&zrBytes, ristretto255.BlindingBase())
	lhs0.Add(&zxG, &zrH)

	var cC, rhs0 ristretto255.Point
	cC.ScalarMul(&cBytes, commitment)
	rhs0.Add(&proof.Y0, &cC)
	if !lhs0.Equal(&rhs0) {
		return false
	}

	var zrPr, cDr, rhs1 ristretto255.Point
	zrPr.ScalarMul(&zrBytes, receiverPub)
	cDr.ScalarMul(&cBytes, receiverHandle)
	rhs1.Add(&proof.Y1, &cDr)
	if !zrPr.Equal(&rhs1) {
		return false
	}

	if proof.HasY2 {
		if senderHandle == nil || senderPub == nil {
			return false
		}
		var zrPs, cDs, rhs2 ristretto255.Point
		zrPs.ScalarMul(&zrBytes, senderPub)
		cDs.ScalarMul(&cBytes, senderHandle)
		rhs2.Add(&proof.Y2, &cDs)
		if !zrPs.Equal(&rhs2) {
			return false
		}
	}

	return true
}

// CommitmentEqProofSize is the encoded length of a CommitmentEqProof: Y_0 || Y_1 || Y_2 || z_s
// || z_x || z_r.
const CommitmentEqProofSize = 192

// CommitmentEqProof proves that an ElGamal ciphertext (sourceCommitment, sourceHandle) under
// public key pSrc and a Pedersen commitment destCommitment hide the same value, without
// revealing the value, the source secret key, or the destination opening.
//
// The three underlying statements — knowledge of the source secret key (P_src = sk^-1*H),
// correct decryption of the source ciphertext to x, and correct construction of the destination
// commitment to the same x — share the blinding nonces k_x (between the second and third) and
// k_s (between the first and second), which is what ties "the value decrypted from the source"
// to "the value committed at the destination" without a separate range or value proof. The
// verifier checks all three at once via an 11-term multi-scalar multiplication rather than three
// separate point equalities, using a second challenge w to combine them (Verify only; the
// prover never needs w).
type CommitmentEqProof struct {
	Y0, Y1, Y2 ristretto255.Point
	Zs, Zx, Zr scalar.Scalar
}

// Bytes returns the canonical 192-byte encoding.
func (p *CommitmentEqProof) Bytes() [CommitmentEqProofSize]byte {
	var out [CommitmentEqProofSize]byte
	y0, y1, y2 := p.Y0.Encode(), p.Y1.Encode(), p.Y2.Encode()
	zs, zx, zr := p.Zs.Bytes(), p.Zx.Bytes(), p.Zr.Bytes()
	copy(out[0:32], y0[:])
	copy(out[32:64], y1[:])
	copy(out[64:96], y2[:])
	copy(out[96:128], zs[:])
	copy(out[128:160], zx[:])
	copy(out[160:192], zr[:])
	return out
}

// SetBytes decodes a CommitmentEqProof. Returns nil on failure.
func (p *CommitmentEqProof) SetBytes(b []byte) *CommitmentEqProof {
	if len(b) < CommitmentEqProofSize {
		return nil
	}
	if p.Y0.Decode(b[0:32]) == nil {
		return nil
	}
	if p.Y1.Decode(b[32:64]) == nil {
		return nil
	}
	if p.Y2.Decode(b[64:96]) == nil {
		return nil
	}
	if scalar.SetCanonicalBytes(&p.Zs, b[96:128]) == nil {
		return nil
	}
	if scalar.SetCanonicalBytes(&p.Zx, b[128:160]) == nil {
		return nil
	}
	if scalar.SetCanonicalBytes(&p.Zr, b[160:192]) == nil {
		return nil
	}
	return p
}

// ProveCommitmentEq proves that the source ciphertext (decryptable by skSrc to value x) and the
// destination commitment (opened by rDest to the same value x) agree. domain selects which
// statement this proof instance is attesting to (DomainEquality for a standalone equality
// check, DomainNewCommitment / DomainOwnership for the same sigma protocol used in those
// application contexts) — it is appended as the proof's dom-sep value, so proofs built under
// one domain never verify under another.
func ProveCommitmentEq(
	t *merlin.Transcript,
	domain string,
	skSrc, x, rDest *scalar.Scalar,
	pSrc, dSrc *ristretto255.Point,
) (*CommitmentEqProof, error) {
	ks, err := randomScalar()
	if err != nil {
		return nil, err
	}
	kx, err := randomScalar()
	if err != nil {
		return nil, err
	}
	kr, err := randomScalar()
	if err != nil {
		return nil, err
	}

	y0 := scalarMul(&ks, pSrc)

	kxG := scalarMul(&kx, ristretto255.Base())
	ksD := scalarMul(&ks, dSrc)
	var y1 ristretto255.Point
	y1.Add(&kxG, &ksD)

	krH := scalarMul(&kr, ristretto255.BlindingBase())
	var y2 ristretto255.Point
	y2.Add(&kxG, &krH)

	t.AppendMessage(LabelDomSep, []byte(domain))
	y0Bytes, y1Bytes, y2Bytes := y0.Encode(), y1.Encode(), y2.Encode()
	t.AppendMessage(LabelY0, y0Bytes[:])
	t.AppendMessage(LabelY1, y1Bytes[:])
	t.AppendMessage(LabelY2, y2Bytes[:])

	c := challengeScalar(t, LabelChallenge)

	var cSk, zs, cX, zx, cR, zr scalar.Scalar
	cSk.Multiply(&c, skSrc)
	zs.Add(&ks, &cSk)
	cX.Multiply(&c, x)
	zx.Add(&kx, &cX)
	cR.Multiply(&c, rDest)
	zr.Add(&kr, &cR)

	zsBytes, zxBytes, zrBytes := zs.Bytes(), zx.Bytes(), zr.Bytes()
	t.AppendMessage(LabelZS, zsBytes[:])
	t.AppendMessage(LabelZX, zxBytes[:])
	t.AppendMessage(LabelZR, zrBytes[:])

	return &CommitmentEqProof{Y0: y0, Y1: y1, Y2: y2, Zs: zs, Zx: zx, Zr: zr}, nil
}

// VerifyCommitmentEq checks proof against the source public key, the source ElGamal ciphertext
// (commitment || handle, 64 bytes), and the destination Pedersen commitment (32 bytes).
func VerifyCommitmentEq(t *merlin.Transcript, domain string, proof *CommitmentEqProof, pSrc *ristretto255.Point, sourceCiphertext, destCommitment []byte) bool {
	if len(sourceCiphertext) != 64 || len(destCommitment) != 32 {
		return false
	}

	var cSrc, dSrc, cDest ristretto255.Point
	if cSrc.Decode(sourceCiphertext[:32]) == nil {
		return false
	}
	if dSrc.Decode(sourceCiphertext[32:]) == nil {
		return false
	}
	if cDest.Decode(destCommitment) == nil {
		return false
	}

	t.AppendMessage(LabelDomSep, []byte(domain))
	y0Bytes, y1Bytes, y2Bytes := proof.Y0.Encode(), proof.Y1.Encode(), proof.Y2.Encode()
	t.AppendMessage(LabelY0, y0Bytes[:])
	t.AppendMessage(LabelY1, y1Bytes[:])
	t.AppendMessage(LabelY2, y2Bytes[:])

	c := challengeScalar(t, LabelChallenge)

	zsBytes, zxBytes, zrBytes := proof.Zs.Bytes(), proof.Zx.Bytes(), proof.Zr.Bytes()
	t.AppendMessage(LabelZS, zsBytes[:])
	t.AppendMessage(LabelZX, zxBytes[:])
	t.AppendMessage(LabelZR, zrBytes[:])

	w := challengeScalar(t, LabelFinalize)

	var ww scalar.Scalar
	ww.Multiply(&w, &w)

	var negC, negOne, negW, negWW scalar.Scalar
	negC.Negate(&c)
	var one scalar.Scalar
	one.One()
	negOne.Negate(&one)
	negW.Negate(&w)
	negWW.Negate(&ww)

	var wZx, wZs, wC, wwZx, wwZr, wwC, negWC, negWWC scalar.Scalar
	wZx.Multiply(&w, &proof.Zx)
	wZs.Multiply(&w, &proof.Zs)
	wC.Multiply(&w, &c)
	wwZx.Multiply(&ww, &proof.Zx)
	wwZr.Multiply(&ww, &proof.Zr)
	wwC.Multiply(&ww, &c)
	negWC.Negate(&wC)
	negWWC.Negate(&wwC)

	scalars := []*scalar.Scalar{&proof.Zs, &negC, &negOne, &wZx, &wZs, &negWC, &negW, &wwZx, &wwZr, &negWWC, &negWW}
	points := []*ristretto255.Point{
		pSrc, ristretto255.BlindingBase(), &proof.Y0,
		ristretto255.Base(), &dSrc, &cSrc,
		&proof.Y1,
		ristretto255.Base(), ristretto255.BlindingBase(), &cDest,
		&proof.Y2,
	}

	scalarBytes := make([]*[32]byte, len(scalars))
	for i, s := range scalars {
		b := s.Bytes()
		scalarBytes[i] = &b
	}

	var check ristretto255.Point
	check.MultiScalarMul(scalarBytes, points)
	return check.IsZero()
}

// BalanceProofSize is the encoded length of a BalanceProof: an 8-byte big-endian amount followed
// by a CommitmentEqProof.
const BalanceProofSize = 8 + CommitmentEqProofSize

// BalanceProof proves that an ElGamal ciphertext encrypts exactly a publicly known amount — no
// more, no less — by showing that subtracting Encrypt(pk, amount, opening=1) from it yields a
// ciphertext equal (via CommitmentEqProof) to a commitment to zero under the same fixed opening.
type BalanceProof struct {
	Amount uint64
	Eq     CommitmentEqProof
}

// Bytes returns the canonical encoding: amount as 8 big-endian bytes, then the CommitmentEqProof.
func (p *BalanceProof) Bytes() [BalanceProofSize]byte {
	var out [BalanceProofSize]byte
	be := amountBE(p.Amount)
	copy(out[:8], be[:])
	eq := p.Eq.Bytes()
	copy(out[8:], eq[:])
	return out
}

// SetBytes decodes a BalanceProof. Returns nil on failure.
func (p *BalanceProof) SetBytes(b []byte) *BalanceProof {
	if len(b) < BalanceProofSize {
		return nil
	}
	p.Amount = 0
	for i := 0; i < 8; i++ {
		p.Amount = p.Amount<<8 | uint64(b[i])
	}
	if p.Eq.SetBytes(b[8:]) == nil {
		return nil
	}
	return p
}

// balanceOpeningOne is the fixed opening (scalar 1) the reference implementation uses both to
// re-encrypt the public amount for cancellation and to build the zero destination commitment.
func balanceOpeningOne() scalar.Scalar {
	var one scalar.Scalar
	one.One()
	return one
}

// ProveBalance proves that srcCiphertext (an ElGamal ciphertext under pk, decryptable with sk)
// encrypts exactly amount. skSrc is the private key that decrypts srcCiphertext.
func ProveBalance(skSrc *scalar.Scalar, pk *ristretto255.Point, srcCiphertext *[64]byte, amount uint64) (*BalanceProof, error) {
	opening := balanceOpeningOne()
	openingPK := scalarMul(&opening, pk)

	var srcHandle ristretto255.Point
	if srcHandle.Decode(srcCiphertext[32:]) == nil {
		return nil, errBadCiphertext
	}

	var zeroedHandle ristretto255.Point
	zeroedHandle.Sub(&srcHandle, &openingPK)

	t := merlin.New(DomainBalance)
	t.AppendMessage(LabelDomSep, []byte(DomainBalance))
	be := amountBE(amount)
	t.AppendMessage(LabelAmount, be[:])
	t.AppendMessage(LabelSourceCT, srcCiphertext[:])

	var zero scalar.Scalar
	eq, err := ProveCommitmentEq(t, DomainEquality, skSrc, &zero, &opening, pk, &zeroedHandle)
	if err != nil {
		return nil, err
	}

	return &BalanceProof{Amount: amount, Eq: *eq}, nil
}

var errBadCiphertext = errors.New("proofs: invalid ciphertext encoding")

// VerifyBalance checks proof against the claimed source public key and source ciphertext.
func VerifyBalance(pk *ristretto255.Point, srcCiphertext *[64]byte, proof *BalanceProof) bool {
	opening := balanceOpeningOne()

	amountScalar := amountToScalar(proof.Amount)
	amountG := scalarMul(&amountScalar, ristretto255.Base())
	openingH := scalarMul(&opening, ristretto255.BlindingBase())
	var amountCommitment ristretto255.Point
	amountCommitment.Add(&amountG, &openingH)
	openingPK := scalarMul(&opening, pk)

	var srcCommitment, srcHandle ristretto255.Point
	if srcCommitment.Decode(srcCiphertext[:32]) == nil {
		return false
	}
	if srcHandle.Decode(srcCiphertext[32:]) == nil {
		return false
	}

	var zeroedCommitment, zeroedHandle ristretto255.Point
	zeroedCommitment.Sub(&srcCommitment, &amountCommitment)
	zeroedHandle.Sub(&srcHandle, &openingPK)

	var zeroedCT [64]byte
	zc, zh := zeroedCommitment.Encode(), zeroedHandle.Encode()
	copy(zeroedCT[:32], zc[:])
	copy(zeroedCT[32:], zh[:])

	destCommitment := scalarMul(&opening, ristretto255.BlindingBase())
	destCommitmentBytes := destCommitment.Encode()

	t := merlin.New(DomainBalance)
	t.AppendMessage(LabelDomSep, []byte(DomainBalance))
	be := amountBE(proof.Amount)
	t.AppendMessage(LabelAmount, be[:])
	t.AppendMessage(LabelSourceCT, srcCiphertext[:])

	return VerifyCommitmentEq(t, DomainEquality, &proof.Eq, pk, zeroedCT[:], destCommitmentBytes[:])
}
