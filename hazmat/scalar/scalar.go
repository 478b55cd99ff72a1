// Package scalar implements the prime scalar field F_ℓ, where ℓ is the order of the
// Ristretto255 / Ed25519 prime-order subgroup:
//
//	ℓ = 2^252 + 27742317777372353535851937790883648493
//
// Externally every scalar is a canonical 32-byte little-endian integer in [0, ℓ). Internally
// this package reduces modulo ℓ using math/big: the reference scalar-field implementations in
// the surrounding ecosystem (filippo.io/edwards25519's Scalar, which gtank/ristretto255 wraps)
// are generated by fiat-crypto and are impractical to hand-author correctly; math/big gives an
// auditable, unambiguously correct reduction at a performance cost this module's non-goals
// (no SIMD commitment, no wire format beyond RFC 8032/Ristretto255) don't rule out.
package scalar

import (
	"crypto/subtle"
	"math/big"
)

// Size is the canonical encoding length of a scalar, in bytes.
const Size = 32

var ell, _ = new(big.Int).SetString("27742317777372353535851937790883648493", 10)

// ellMinus2 is the public exponent Invert raises x to (Fermat's little theorem: x^(ℓ-2) = x^-1
// mod ℓ, since ℓ is prime). Its bit pattern drives the square-and-multiply loop in Invert, so the
// sequence of operations Invert performs is the same for every x — unlike big.Int.ModInverse's
// binary GCD, which branches on the bits of x itself.
var ellMinus2 = new(big.Int)

func init() {
	// ell = 2^252 + 27742317777372353535851937790883648493
	two252 := new(big.Int).Lsh(big.NewInt(1), 252)
	ell.Add(ell, two252)
	ellMinus2.Sub(ell, big.NewInt(2))
}

// Scalar is an element of F_ℓ. The zero value is the scalar 0.
type Scalar struct {
	v big.Int // always reduced into [0, ell)
}

// Zero sets z = 0 and returns z.
func (z *Scalar) Zero() *Scalar { z.v.SetInt64(0); return z }

// One sets z = 1 and returns z.
func (z *Scalar) One() *Scalar { z.v.SetInt64(1); return z }

// Set sets z = x and returns z.
func (z *Scalar) Set(x *Scalar) *Scalar { z.v.Set(&x.v); return z }

// SetCanonicalBytes decodes a 32-byte little-endian scalar, rejecting any encoding that is not
// strictly less than ℓ. Returns nil (and leaves z unmodified) if the encoding is non-canonical
// or the wrong length.
func SetCanonicalBytes(z *Scalar, b []byte) *Scalar {
	if len(b) != Size {
		return nil
	}
	var be [Size]byte
	reverse(be[:], b)
	v := new(big.Int).SetBytes(be[:])
	if v.Cmp(ell) >= 0 {
		return nil
	}
	z.v.Set(v)
	return z
}

// IsCanonical reports whether the 32-byte little-endian encoding b represents a value strictly
// less than ℓ. It performs no allocation beyond the comparison and does not mutate any Scalar.
func IsCanonical(b []byte) bool {
	if len(b) != Size {
		return false
	}
	var be [Size]byte
	reverse(be[:], b)
	return new(big.Int).SetBytes(be[:]).Cmp(ell) < 0
}

// SetUniformBytes reduces a 64-byte (or longer) little-endian wide value modulo ℓ, as used for
// nonce derivation and Fiat-Shamir challenges. Input shorter than 64 bytes is rejected.
func (z *Scalar) SetUniformBytes(b []byte) *Scalar {
	if len(b) < 64 {
		panic("scalar: SetUniformBytes requires at least 64 bytes")
	}
	be := make([]byte, len(b))
	reverse(be, b)
	v := new(big.Int).SetBytes(be)
	z.v.Mod(v, ell)
	return z
}

// Bytes returns the canonical 32-byte little-endian encoding of z.
func (z *Scalar) Bytes() [Size]byte {
	var out [Size]byte
	be := z.v.Bytes()
	// big.Int.Bytes is big-endian, zero-padded on neither side; right-align then reverse.
	var tmp [Size]byte
	copy(tmp[Size-len(be):], be)
	reverse(out[:], tmp[:])
	return out
}

// Equal returns 1 if z == x, else 0, in constant time over the encoded forms.
func (z *Scalar) Equal(x *Scalar) int {
	a, b := z.Bytes(), x.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:])
}

// IsZero returns 1 if z == 0, else 0.
func (z *Scalar) IsZero() int {
	return subtle.ConstantTimeCompare(z.v.Bytes(), nil)
}

// Add sets z = x + y mod ℓ.
func (z *Scalar) Add(x, y *Scalar) *Scalar {
	z.v.Add(&x.v, &y.v)
	z.v.Mod(&z.v, ell)
	return z
}

// Sub sets z = x - y mod ℓ.
func (z *Scalar) Sub(x, y *Scalar) *Scalar {
	z.v.Sub(&x.v, &y.v)
	z.v.Mod(&z.v, ell)
	return z
}

// Negate sets z = -x mod ℓ.
func (z *Scalar) Negate(x *Scalar) *Scalar {
	z.v.Neg(&x.v)
	z.v.Mod(&z.v, ell)
	return z
}

// Multiply sets z = x * y mod ℓ.
func (z *Scalar) Multiply(x, y *Scalar) *Scalar {
	z.v.Mul(&x.v, &y.v)
	z.v.Mod(&z.v, ell)
	return z
}

// Invert sets z = x^-1 mod ℓ via Fermat's little theorem (z = x^(ℓ-2)), using fixed
// square-and-multiply over the public exponent ellMinus2 — the same addition-chain shape as the
// field layer's Invert, adapted to ℓ's bit pattern rather than the field prime's. This scheme is
// called directly on private keys (PublicKey, SignDeterministic, PublicKeyFromPrivate), so the
// instruction sequence must not depend on x: big.Int.ModInverse's binary GCD takes
// secret-dependent branches and is unsuitable here. If x == 0, Invert sets z = 0.
func (z *Scalar) Invert(x *Scalar) *Scalar {
	if x.v.Sign() == 0 {
		z.v.SetInt64(0)
		return z
	}

	var result, base Scalar
	result.One()
	base.Set(x)

	for i := ellMinus2.BitLen() - 1; i >= 0; i-- {
		result.Multiply(&result, &result)
		if ellMinus2.Bit(i) == 1 {
			result.Multiply(&result, &base)
		}
	}

	z.Set(&result)
	return z
}

func reverse(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}
