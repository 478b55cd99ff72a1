// Package elgamal implements the Pedersen commitment / twisted-ElGamal object algebra used to
// shield transaction amounts: a commitment C = amount*G + r*H hides the amount behind the
// Pedersen blinding generator H, and a decryption handle D = r*PK lets the holder of the
// corresponding private key recover amount*G (and, via an out-of-band discrete-log search over
// the expected range, the amount itself) without learning r.
//
// The commitment and handle are both Ristretto255 group elements; every public key is itself
// the inverse-scalar image PK = sk^-1 * H used by the signature scheme in schemes/sig, so the
// same keypair signs and receives shielded amounts.
package elgamal

import (
	"crypto/rand"
	"errors"

	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/hazmat/scalar"
)

// Size is the length of an encoded ciphertext in bytes: a 32-byte commitment followed by a
// 32-byte handle.
const Size = 64

// ErrOpeningExhausted is returned when eight attempts at drawing a nonzero opening scalar from
// the system RNG all produced zero, which does not happen in practice but is checked anyway
// since the reference implementation checks it.
var ErrOpeningExhausted = errors.New("elgamal: failed to generate a nonzero opening after 8 attempts")

// Opening is the blinding scalar r used to construct a Pedersen commitment or ElGamal handle.
type Opening = scalar.Scalar

// PrivateKey is an ElGamal decryption key: an opening-shaped scalar used both as a Pedersen
// opening (when generating one's own keypair) and as the scalar that undoes a handle.
type PrivateKey = scalar.Scalar

// PublicKey is PK = sk^-1 * H, the inverse-scalar image of a private key under the Pedersen
// blinding generator.
type PublicKey struct {
	point ristretto255.Point
}

// Bytes returns the canonical encoding of pk.
func (pk *PublicKey) Bytes() [32]byte { return pk.point.Encode() }

// SetBytes decodes a public key from its canonical encoding. Returns nil on failure.
func (pk *PublicKey) SetBytes(b []byte) *PublicKey {
	if pk.point.Decode(b) == nil {
		return nil
	}
	return pk
}

// Ciphertext is a twisted-ElGamal ciphertext over a Pedersen commitment: Commitment hides the
// amount, Handle lets the corresponding private key strip the blinding factor.
type Ciphertext struct {
	Commitment ristretto255.Point
	Handle     ristretto255.Point
}

// Bytes returns the canonical 64-byte encoding: Commitment || Handle.
func (ct *Ciphertext) Bytes() [Size]byte {
	var out [Size]byte
	c := ct.Commitment.Encode()
	d := ct.Handle.Encode()
	copy(out[:32], c[:])
	copy(out[32:], d[:])
	return out
}

// SetBytes decodes a ciphertext from its canonical 64-byte encoding. Returns nil (ct left
// unspecified) on failure.
func (ct *Ciphertext) SetBytes(b []byte) *Ciphertext {
	if len(b) != Size {
		return nil
	}
	if ct.Commitment.Decode(b[:32]) == nil {
		return nil
	}
	if ct.Handle.Decode(b[32:]) == nil {
		return nil
	}
	return ct
}

// SetZero sets ct to the additive identity ciphertext (both components the group identity).
func (ct *Ciphertext) SetZero() *Ciphertext {
	ct.Commitment.Set(ristretto255.Identity())
	ct.Handle.Set(ristretto255.Identity())
	return ct
}

// Add sets ct = a + b, componentwise. The sum of two ciphertexts encrypting x and y under the
// same key decrypts to x + y: this is the homomorphic property the shielded-balance arithmetic
// relies on.
func (ct *Ciphertext) Add(a, b *Ciphertext) *Ciphertext {
	ct.Commitment.Add(&a.Commitment, &b.Commitment)
	ct.Handle.Add(&a.Handle, &b.Handle)
	return ct
}

// Sub sets ct = a - b, componentwise.
func (ct *Ciphertext) Sub(a, b *Ciphertext) *Ciphertext {
	ct.Commitment.Sub(&a.Commitment, &b.Commitment)
	ct.Handle.Sub(&a.Handle, &b.Handle)
	return ct
}

// amountScalarBytes encodes a uint64 amount as a little-endian 32-byte scalar, matching the
// reference implementation's amount-to-scalar conversion exactly (the high 24 bytes are zero).
func amountScalarBytes(amount uint64) [32]byte {
	var out [32]byte
	for i := 0; i < 8; i++ {
		out[i] = byte(amount >> (8 * i))
	}
	return out
}

// AddAmount sets ct = in + amount*G on the commitment only; the handle is left unchanged, since
// adding a known public amount doesn't change who can decrypt the ciphertext.
func (ct *Ciphertext) AddAmount(in *Ciphertext, amount uint64) *Ciphertext {
	b := amountScalarBytes(amount)
	var amountG ristretto255.Point
	amountG.ScalarMul(&b, ristretto255.Base())
	ct.Commitment.Add(&in.Commitment, &amountG)
	ct.Handle.Set(&in.Handle)
	return ct
}

// SubAmount sets ct = in - amount*G on the commitment only; the handle is left unchanged.
func (ct *Ciphertext) SubAmount(in *Ciphertext, amount uint64) *Ciphertext {
	b := amountScalarBytes(amount)
	var amountG ristretto255.Point
	amountG.ScalarMul(&b, ristretto255.Base())
	ct.Commitment.Sub(&in.Commitment, &amountG)
	ct.Handle.Set(&in.Handle)
	return ct
}

// AddScalar sets ct = in + s*G on the commitment only; the handle is left unchanged. s must be
// a canonical scalar encoding.
func (ct *Ciphertext) AddScalar(in *Ciphertext, s *scalar.Scalar) *Ciphertext {
	sBytes := s.Bytes()
	var sG ristretto255.Point
	sG.ScalarMul(&sBytes, ristretto255.Base())
	ct.Commitment.Add(&in.Commitment, &sG)
	ct.Handle.Set(&in.Handle)
	return ct
}

// SubScalar sets ct = in - s*G on the commitment only; the handle is left unchanged.
func (ct *Ciphertext) SubScalar(in *Ciphertext, s *scalar.Scalar) *Ciphertext {
	sBytes := s.Bytes()
	var sG ristretto255.Point
	sG.ScalarMul(&sBytes, ristretto255.Base())
	ct.Commitment.Sub(&in.Commitment, &sG)
	ct.Handle.Set(&in.Handle)
	return ct
}

// MulScalar sets ct = s*in, scaling both the commitment and the handle by s.
func (ct *Ciphertext) MulScalar(in *Ciphertext, s *scalar.Scalar) *Ciphertext {
	sBytes := s.Bytes()
	ct.Commitment.ScalarMul(&sBytes, &in.Commitment)
	ct.Handle.ScalarMul(&sBytes, &in.Handle)
	return ct
}

// GenerateOpening draws a fresh nonzero Pedersen opening from the system CSPRNG, retrying up to
// eight times (as the reference implementation does) before giving up: a 64-byte wide draw is
// reduced mod ℓ, and the vanishingly unlikely all-zero reduction is the only case that retries.
func GenerateOpening() (*Opening, error) {
	var wide [64]byte
	var o Opening
	for attempt := 0; attempt < 8; attempt++ {
		if _, err := rand.Read(wide[:]); err != nil {
			return nil, err
		}
		o.SetUniformBytes(wide[:])
		if o.IsZero() == 0 {
			return &o, nil
		}
	}
	return nil, ErrOpeningExhausted
}

// NewCommitment builds a Pedersen commitment to amount under the given opening: C = amount*G +
// r*H.
func NewCommitment(amount uint64, opening *Opening) *ristretto255.Point {
	amtBytes := amountScalarBytes(amount)
	rBytes := opening.Bytes()

	var amountG, openingH ristretto255.Point
	amountG.ScalarMul(&amtBytes, ristretto255.Base())
	openingH.ScalarMul(&rBytes, ristretto255.BlindingBase())

	var c ristretto255.Point
	c.Add(&amountG, &openingH)
	return &c
}

// PublicKeyFromPrivate derives PK = sk^-1 * H. Returns nil if sk is zero.
func PublicKeyFromPrivate(sk *PrivateKey) *PublicKey {
	if sk.IsZero() == 1 {
		return nil
	}
	var skInv scalar.Scalar
	skInv.Invert(sk)
	skInvBytes := skInv.Bytes()

	var pk PublicKey
	pk.point.ScalarMulConstTime(&skInvBytes, ristretto255.BlindingBase())
	return &pk
}

// GenerateKeypair draws a fresh private key the same way GenerateOpening does (a private key
// and a Pedersen opening share the same shape: a nonzero scalar mod ℓ), and derives its public
// key.
func GenerateKeypair() (*PrivateKey, *PublicKey, error) {
	sk, err := GenerateOpening()
	if err != nil {
		return nil, nil, err
	}
	pk := PublicKeyFromPrivate(sk)
	return sk, pk, nil
}

// DecryptHandle computes the handle D = r*PK for a given opening and recipient public key, the
// component of EncryptWithOpening that depends on the recipient.
func DecryptHandle(pk *PublicKey, opening *Opening) *ristretto255.Point {
	rBytes := opening.Bytes()
	var d ristretto255.Point
	d.ScalarMul(&rBytes, &pk.point)
	return &d
}

// EncryptWithOpening encrypts amount to pk using the given opening, returning the resulting
// ciphertext.
func EncryptWithOpening(pk *PublicKey, amount uint64, opening *Opening) *Ciphertext {
	var ct Ciphertext
	ct.Commitment = *NewCommitment(amount, opening)
	ct.Handle = *DecryptHandle(pk, opening)
	return &ct
}

// Encrypt encrypts amount to pk under a freshly generated opening, returning both the
// ciphertext and the opening (the caller needs the opening to later prove statements about the
// ciphertext, e.g. in a CiphertextValidityProof).
func Encrypt(pk *PublicKey, amount uint64) (*Ciphertext, *Opening, error) {
	opening, err := GenerateOpening()
	if err != nil {
		return nil, nil, err
	}
	return EncryptWithOpening(pk, amount, opening), opening, nil
}

// DecryptToPoint strips the blinding factor from ct using sk, returning amount*G. Recovering
// amount itself requires an out-of-band discrete-log search over the (small, application-bounded)
// range of valid amounts; that search is a concern of the caller, not this package.
func DecryptToPoint(sk *PrivateKey, ct *Ciphertext) (*ristretto255.Point, error) {
	if sk.IsZero() == 1 {
		return nil, errors.New("elgamal: private key must be nonzero")
	}
	skBytes := sk.Bytes()
	var secretHandle, msgPoint ristretto255.Point
	secretHandle.ScalarMulConstTime(&skBytes, &ct.Handle)
	msgPoint.Sub(&ct.Commitment, &secretHandle)
	return &msgPoint, nil
}
