package proofs_test

import (
	"testing"

	"github.com/tos-network/gtos-sub001/hazmat/merlin"
	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/hazmat/scalar"
	"github.com/tos-network/gtos-sub001/schemes/proofs"
)

func testScalar(b byte) scalar.Scalar {
	var wide [64]byte
	wide[0] = b
	var s scalar.Scalar
	s.SetUniformBytes(wide[:])
	return s
}

// testKeypair returns a private scalar sk and its public point P = sk^-1 * H, the same relation
// schemes/sig and schemes/elgamal use.
func testKeypair(b byte) (scalar.Scalar, ristretto255.Point) {
	sk := testScalar(b)
	var skInv scalar.Scalar
	skInv.Invert(&sk)
	skInvBytes := skInv.Bytes()
	var pk ristretto255.Point
	pk.ScalarMulConstTime(&skInvBytes, ristretto255.BlindingBase())
	return sk, pk
}

func amountPoint(amount uint64) ristretto255.Point {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(amount >> (8 * i))
	}
	var p ristretto255.Point
	p.ScalarMul(&b, ristretto255.Base())
	return p
}

func openingPoint(r *scalar.Scalar, base *ristretto255.Point) ristretto255.Point {
	rBytes := r.Bytes()
	var p ristretto255.Point
	p.ScalarMul(&rBytes, base)
	return p
}

func TestShieldCommitmentProofRoundTrip(t *testing.T) {
	_, receiverPub := testKeypair(1)
	r := testScalar(2)
	const amount = 42

	aG := amountPoint(amount)
	rH := openingPoint(&r, ristretto255.BlindingBase())
	var commitment ristretto255.Point
	commitment.Add(&aG, &rH)
	handle := openingPoint(&r, &receiverPub)

	pt := merlin.New(proofs.DomainShield)
	proof, err := proofs.ProveShieldCommitment(pt, &r, &receiverPub)
	if err != nil {
		t.Fatal(err)
	}

	vt := merlin.New(proofs.DomainShield)
	if !proofs.VerifyShieldCommitment(vt, proof, &commitment, &handle, &receiverPub, amount) {
		t.Error("VerifyShieldCommitment rejected a valid proof")
	}

	vt2 := merlin.New(proofs.DomainShield)
	if proofs.VerifyShieldCommitment(vt2, proof, &commitment, &handle, &receiverPub, amount+1) {
		t.Error("VerifyShieldCommitment accepted a proof against the wrong amount")
	}

	tampered := *proof
	tampered.Z.Add(&tampered.Z, &tampered.Z)
	vt3 := merlin.New(proofs.DomainShield)
	if proofs.VerifyShieldCommitment(vt3, &tampered, &commitment, &handle, &receiverPub, amount) {
		t.Error("VerifyShieldCommitment accepted a tampered proof")
	}
}

func TestShieldCommitmentProofBytesRoundTrip(t *testing.T) {
	_, receiverPub := testKeypair(3)
	r := testScalar(4)

	pt := merlin.New(proofs.DomainShield)
	proof, err := proofs.ProveShieldCommitment(pt, &r, &receiverPub)
	if err != nil {
		t.Fatal(err)
	}

	enc := proof.Bytes()
	var decoded proofs.ShieldCommitmentProof
	if decoded.SetBytes(enc[:]) == nil {
		t.Fatal("SetBytes failed to decode a valid encoding")
	}
	if decoded.Bytes() != enc {
		t.Error("decode(encode(proof)) != proof")
	}

	enc[95] |= 0xf0 // z's top byte >= 0xf0 puts z far above l
	var corrupt proofs.ShieldCommitmentProof
	if corrupt.SetBytes(enc[:]) != nil {
		t.Error("SetBytes should reject a non-canonical scalar encoding")
	}
}

func ciphertextValidityFixture(withSender bool) (x, r scalar.Scalar, receiverPub, senderPub ristretto255.Point, commitment, receiverHandle, senderHandle ristretto255.Point) {
	x = testScalar(5)
	r = testScalar(6)
	_, receiverPub = testKeypair(7)

	xG := openingPoint(&x, ristretto255.Base())
	rH := openingPoint(&r, ristretto255.BlindingBase())
	commitment.Add(&xG, &rH)
	receiverHandle = openingPoint(&r, &receiverPub)

	if withSender {
		_, senderPub = testKeypair(8)
		senderHandle = openingPoint(&r, &senderPub)
	}
	return
}

func TestCiphertextValidityProofT0RoundTrip(t *testing.T) {
	x, r, receiverPub, _, commitment, receiverHandle, _ := ciphertextValidityFixture(false)

	pt := merlin.New(proofs.DomainValidity)
	proof, err := proofs.ProveCiphertextValidity(pt, &x, &r, &receiverPub, nil)
	if err != nil {
		t.Fatal(err)
	}
	if proof.HasY2 {
		t.Fatal("T0 proof should not carry Y2")
	}

	vt := merlin.New(proofs.DomainValidity)
	if !proofs.VerifyCiphertextValidity(vt, proof, &commitment, &receiverHandle, &receiverPub, nil, nil) {
		t.Error("VerifyCiphertextValidity rejected a valid T0 proof")
	}

	enc := proof.Bytes()
	if len(enc) != proofs.CiphertextValidityProofSizeT0 {
		t.Errorf("T0 proof encoded to %d bytes, want %d", len(enc), proofs.CiphertextValidityProofSizeT0)
	}

	var decoded proofs.CiphertextValidityProof
	if decoded.SetBytes(enc, false) == nil {
		t.Fatal("SetBytes failed to decode a valid T0 encoding")
	}

	vt2 := merlin.New(proofs.DomainValidity)
	tampered := *proof
	tampered.Zx.Add(&tampered.Zx, &tampered.Zx)
	if proofs.VerifyCiphertextValidity(vt2, &tampered, &commitment, &receiverHandle, &receiverPub, nil, nil) {
		t.Error("VerifyCiphertextValidity accepted a tampered T0 proof")
	}
}

func TestCiphertextValidityProofT1RoundTrip(t *testing.T) {
	x, r, receiverPub, senderPub, commitment, receiverHandle, senderHandle := ciphertextValidityFixture(true)

	pt := merlin.New(proofs.DomainValidity)
	proof, err := proofs.ProveCiphertextValidity(pt, &x, &r, &receiverPub, &senderPub)
	if err != nil {
		t.Fatal(err)
	}
	if !proof.HasY2 {
		t.Fatal("T1 proof should carry Y2")
	}

	vt := merlin.New(proofs.DomainValidity)
	if !proofs.VerifyCiphertextValidity(vt, proof, &commitment, &receiverHandle, &receiverPub, &senderHandle, &senderPub) {
		t.Error("VerifyCiphertextValidity rejected a valid T1 proof")
	}

	enc := proof.Bytes()
	if len(enc) != proofs.CiphertextValidityProofSizeT1 {
		t.Errorf("T1 proof encoded to %d bytes, want %d", len(enc), proofs.CiphertextValidityProofSizeT1)
	}

	// A T1 proof checked without the sender's handle/key must fail closed.
	vt2 := merlin.New(proofs.DomainValidity)
	if proofs.VerifyCiphertextValidity(vt2, proof, &commitment, &receiverHandle, &receiverPub, nil, nil) {
		t.Error("VerifyCiphertextValidity accepted a T1 proof with no sender fields supplied")
	}
}

func TestCommitmentEqProofRoundTrip(t *testing.T) {
	skSrc, pSrc := testKeypair(9)
	x := testScalar(10)
	rDest := testScalar(11)

	rSrc := testScalar(12)
	xG := openingPoint(&x, ristretto255.Base())
	rSrcH := openingPoint(&rSrc, ristretto255.BlindingBase())
	var cSrc ristretto255.Point
	cSrc.Add(&xG, &rSrcH)
	dSrc := openingPoint(&rSrc, &pSrc)

	rDestH := openingPoint(&rDest, ristretto255.BlindingBase())
	var cDest ristretto255.Point
	cDest.Add(&xG, &rDestH)

	pt := merlin.New(proofs.DomainEquality)
	proof, err := proofs.ProveCommitmentEq(pt, proofs.DomainEquality, &skSrc, &x, &rDest, &pSrc, &dSrc)
	if err != nil {
		t.Fatal(err)
	}

	var srcCT [64]byte
	cb, db := cSrc.Encode(), dSrc.Encode()
	copy(srcCT[:32], cb[:])
	copy(srcCT[32:], db[:])
	destBytes := cDest.Encode()

	vt := merlin.New(proofs.DomainEquality)
	if !proofs.VerifyCommitmentEq(vt, proofs.DomainEquality, proof, &pSrc, srcCT[:], destBytes[:]) {
		t.Error("VerifyCommitmentEq rejected a valid proof")
	}

	vt2 := merlin.New(proofs.DomainEquality)
	tampered := *proof
	tampered.Zs.Add(&tampered.Zs, &tampered.Zs)
	if proofs.VerifyCommitmentEq(vt2, proofs.DomainEquality, &tampered, &pSrc, srcCT[:], destBytes[:]) {
		t.Error("VerifyCommitmentEq accepted a tampered proof")
	}

	vt3 := merlin.New(proofs.DomainEquality)
	if proofs.VerifyCommitmentEq(vt3, proofs.DomainOwnership, proof, &pSrc, srcCT[:], destBytes[:]) {
		t.Error("VerifyCommitmentEq accepted a proof under the wrong domain")
	}
}

func TestCommitmentEqProofBytesRoundTrip(t *testing.T) {
	skSrc, pSrc := testKeypair(13)
	x := testScalar(14)
	rDest := testScalar(15)
	rSrc := testScalar(16)
	dSrc := openingPoint(&rSrc, &pSrc)

	pt := merlin.New(proofs.DomainEquality)
	proof, err := proofs.ProveCommitmentEq(pt, proofs.DomainEquality, &skSrc, &x, &rDest, &pSrc, &dSrc)
	if err != nil {
		t.Fatal(err)
	}

	enc := proof.Bytes()
	var decoded proofs.CommitmentEqProof
	if decoded.SetBytes(enc[:]) == nil {
		t.Fatal("SetBytes failed to decode a valid encoding")
	}
	if decoded.Bytes() != enc {
		t.Error("decode(encode(proof)) != proof")
	}
}

// TestBalanceProofRoundTrip follows the worked example: a keypair (sk, P), amount v = 1000,
// source_ct = Encrypt(P, v, opening=1). ProveBalance/VerifyBalance must accept the matching
// proof and reject it once any of {amount, source_ct byte, proof byte} changes.
func TestBalanceProofRoundTrip(t *testing.T) {
	sk, pk := testKeypair(17)
	const amount = 1000

	opening := testScalar(0)
	opening.One()
	vG := amountPoint(amount)
	oneH := openingPoint(&opening, ristretto255.BlindingBase())
	var srcCommitment ristretto255.Point
	srcCommitment.Add(&vG, &oneH)
	srcHandle := openingPoint(&opening, &pk)

	var srcCT [64]byte
	cb, hb := srcCommitment.Encode(), srcHandle.Encode()
	copy(srcCT[:32], cb[:])
	copy(srcCT[32:], hb[:])

	proof, err := proofs.ProveBalance(&sk, &pk, &srcCT, amount)
	if err != nil {
		t.Fatal(err)
	}

	if !proofs.VerifyBalance(&pk, &srcCT, proof) {
		t.Fatal("VerifyBalance rejected a valid proof")
	}

	wrongAmount := *proof
	wrongAmount.Amount++
	if proofs.VerifyBalance(&pk, &srcCT, &wrongAmount) {
		t.Error("VerifyBalance accepted a proof claiming the wrong amount")
	}

	tamperedCT := srcCT
	tamperedCT[0] ^= 1
	if proofs.VerifyBalance(&pk, &tamperedCT, proof) {
		t.Error("VerifyBalance accepted a proof against a tampered source ciphertext")
	}

	tamperedProof := *proof
	tamperedProof.Eq.Zx.Add(&tamperedProof.Eq.Zx, &tamperedProof.Eq.Zx)
	if proofs.VerifyBalance(&pk, &srcCT, &tamperedProof) {
		t.Error("VerifyBalance accepted a tampered proof")
	}
}

func TestBalanceProofBytesRoundTrip(t *testing.T) {
	sk, pk := testKeypair(18)
	const amount = 7

	opening := testScalar(0)
	opening.One()
	vG := amountPoint(amount)
	oneH := openingPoint(&opening, ristretto255.BlindingBase())
	var srcCommitment ristretto255.Point
	srcCommitment.Add(&vG, &oneH)
	srcHandle := openingPoint(&opening, &pk)

	var srcCT [64]byte
	cb, hb := srcCommitment.Encode(), srcHandle.Encode()
	copy(srcCT[:32], cb[:])
	copy(srcCT[32:], hb[:])

	proof, err := proofs.ProveBalance(&sk, &pk, &srcCT, amount)
	if err != nil {
		t.Fatal(err)
	}

	enc := proof.Bytes()
	var decoded proofs.BalanceProof
	if decoded.SetBytes(enc[:]) == nil {
		t.Fatal("SetBytes failed to decode a valid encoding")
	}
	if decoded.Amount != amount {
		t.Errorf("decoded amount = %d, want %d", decoded.Amount, amount)
	}
	if decoded.Bytes() != enc {
		t.Error("decode(encode(proof)) != proof")
	}
}
