// Package sig implements TOS's inverted-key Schnorr-variant signature scheme over Ristretto255.
//
// Unlike textbook Schnorr, the public key is the *inverse* of the private scalar applied to the
// fixed generator H: PK = sk^-1 * H. A signature carries the challenge scalar e and the response
// scalar s rather than a commitment point and a response; the verifier recovers the prover's
// commitment R = s*H + (-e)*PK and checks it hashes back to e. This inversion is why signatures
// cannot be produced from a known PK alone (the signer must know sk to compute sk^-1), and why
// batch verification degenerates to sequential verification: R depends on e and s individually
// for each signature, so there is no shared linear combination across signatures to exploit.
package sig

import (
	"crypto/subtle"

	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/hazmat/scalar"
	"github.com/tos-network/gtos-sub001/hazmat/sha3"
)

// Size is the length of an encoded signature in bytes: a 32-byte challenge scalar e followed by
// a 32-byte response scalar s.
const Size = 64

// Signature is a TOS Schnorr-variant signature.
type Signature struct {
	E scalar.Scalar
	S scalar.Scalar
}

// Bytes returns the canonical 64-byte encoding of sig: e || s.
func (sig *Signature) Bytes() [Size]byte {
	var out [Size]byte
	e := sig.E.Bytes()
	s := sig.S.Bytes()
	copy(out[:32], e[:])
	copy(out[32:], s[:])
	return out
}

// SetBytes decodes a 64-byte signature, rejecting either half if it is not a canonical scalar
// encoding. Returns nil (sig left unspecified) on any error.
func (sig *Signature) SetBytes(b []byte) *Signature {
	if len(b) != Size {
		return nil
	}
	if scalar.SetCanonicalBytes(&sig.E, b[:32]) == nil {
		return nil
	}
	if scalar.SetCanonicalBytes(&sig.S, b[32:]) == nil {
		return nil
	}
	return sig
}

// PublicKey derives the public key PK = sk^-1 * H for the given private scalar. Returns nil if
// sk is zero, since zero has no inverse.
func PublicKey(sk *scalar.Scalar) *ristretto255.Point {
	if sk.IsZero() == 1 {
		return nil
	}
	var skInv scalar.Scalar
	skInv.Invert(sk)
	skInvBytes := skInv.Bytes()
	return new(ristretto255.Point).ScalarMulConstTime(&skInvBytes, ristretto255.BlindingBase())
}

// hashToScalar computes e = SHA3-512(pubkey || message || point) mod ℓ, exactly as the reference
// at_schnorr_hash_to_scalar does.
func hashToScalar(pubkey, message, point []byte) scalar.Scalar {
	h := sha3.New512()
	_, _ = h.Write(pubkey)
	_, _ = h.Write(message)
	_, _ = h.Write(point)
	var wide [64]byte
	_, _ = h.Read(wide[:])
	var e scalar.Scalar
	e.SetUniformBytes(wide[:])
	return e
}

// SignDeterministic signs message under sk using the caller-supplied nonce k, which must be
// nonzero. This is the core of the scheme; Sign wraps it with a randomly generated k. Exposing
// this entry point lets callers hedge the nonce (mix in their own randomness alongside a
// deterministic derivation) rather than trusting a single RNG draw.
func SignDeterministic(sk *scalar.Scalar, pk *ristretto255.Point, message []byte, k *scalar.Scalar) *Signature {
	if sk.IsZero() == 1 || k.IsZero() == 1 {
		return nil
	}

	kBytes := k.Bytes()
	r := new(ristretto255.Point).ScalarMulConstTime(&kBytes, ristretto255.BlindingBase())
	rBytes := r.Encode()

	pkBytes := pk.Encode()
	e := hashToScalar(pkBytes[:], message, rBytes[:])

	var skInv, skInvE, s scalar.Scalar
	skInv.Invert(sk)
	skInvE.Multiply(&skInv, &e)
	s.Add(&skInvE, k)

	return &Signature{E: e, S: s}
}

// Sign signs message under sk, drawing a fresh random nonce from rand (which must supply at
// least 32 bytes of entropy; wide-reducing 32 bytes mod ℓ, as the reference implementation
// does, rather than requiring a full 64-byte draw).
func Sign(sk *scalar.Scalar, pk *ristretto255.Point, message []byte, rand []byte) *Signature {
	var wide [64]byte
	copy(wide[:32], rand)
	var k scalar.Scalar
	k.SetUniformBytes(wide[:])
	if k.IsZero() == 1 {
		return nil
	}
	return SignDeterministic(sk, pk, message, &k)
}

// Verify reports whether sig is a valid signature over message under the public key encoded by
// pkBytes.
func Verify(pkBytes []byte, message []byte, sig *Signature) bool {
	pk := new(ristretto255.Point).Decode(pkBytes)
	if pk == nil {
		return false
	}

	var negE scalar.Scalar
	negE.Negate(&sig.E)

	sBytes := sig.S.Bytes()
	negEBytes := negE.Bytes()

	r := new(ristretto255.Point).MultiScalarMul(
		[]*[32]byte{&sBytes, &negEBytes},
		[]*ristretto255.Point{ristretto255.BlindingBase(), pk},
	)
	rBytes := r.Encode()

	ePrime := hashToScalar(pkBytes, message, rBytes[:])

	eBytes := sig.E.Bytes()
	ePrimeBytes := ePrime.Bytes()
	return subtle.ConstantTimeCompare(eBytes[:], ePrimeBytes[:]) == 1
}

// VerifyBatch verifies n signatures, sharing the blinding generator's decompression across all
// of them. Because the verification equation recomputes R = s*H + (-e)*PK independently for
// every (sig, pk, msg) triple before the equation can even be formed, there is no linear
// combination across entries to amortize: this is sequential verification with one shared
// constant, not a true batch-verification speedup. It returns false as soon as any signature
// fails, and true only if every signature in the batch is valid (including the vacuous n == 0
// case).
func VerifyBatch(pks [][]byte, messages [][]byte, sigs []*Signature) bool {
	n := len(sigs)
	if len(pks) != n || len(messages) != n {
		return false
	}
	// The shared H generator is decoded once, at ristretto255 package initialization; each
	// Verify call's ristretto255.BlindingBase() only copies that decoded point.
	for i := 0; i < n; i++ {
		if !Verify(pks[i], messages[i], sigs[i]) {
			return false
		}
	}
	return true
}
