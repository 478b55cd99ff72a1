package sha3

import "crypto/subtle"

// Domain-separated SHA3 padding, per FIPS 202 §6.1: 0110 appended to the message, followed by
// the multi-rate padding 10*1. The low two bits of the first padding byte (0x06) are the SHA3
// domain suffix; this is not the raw Keccak padding (0x01).
const sha3Pad = 0x06

// Size256 and Size512 are the SHA3-256 and SHA3-512 digest sizes in bytes.
const (
	Size256 = 32
	Size512 = 64
)

// Rate256 and Rate512 are the SHA3-256 and SHA3-512 sponge rates in bytes (1600 bits minus
// twice the security strength).
const (
	Rate256 = 136
	Rate512 = 72
)

// State is an incremental SHA3 sponge instance. The zero value is not usable; construct one
// with New256 or New512.
type State struct {
	s         [200]byte
	pos       int
	rate      int
	size      int
	squeezing bool
}

// New256 returns a State for computing a SHA3-256 digest.
func New256() *State { return &State{rate: Rate256, size: Size256} }

// New512 returns a State for computing a SHA3-512 digest.
func New512() *State { return &State{rate: Rate512, size: Size512} }

// Reset zeros the sponge state, preserving the configured rate and output size.
func (h *State) Reset() {
	clear(h.s[:])
	h.pos = 0
	h.squeezing = false
}

// Size returns the digest size in bytes.
func (h *State) Size() int { return h.size }

// BlockSize returns the sponge rate in bytes.
func (h *State) BlockSize() int { return h.rate }

// Write absorbs p into the sponge state, applying the permutation whenever a full block of
// rate bytes has accumulated. Write must not be called after Read; Sum leaves the state
// absorbing, so Write may follow it.
func (h *State) Write(p []byte) (int, error) {
	if h.squeezing {
		panic("sha3: Write after digest finalized")
	}
	n := len(p)
	for len(p) > 0 {
		w := min(h.rate-h.pos, len(p))
		xorInPlace(h.s[h.pos:h.pos+w], p[:w])
		h.pos += w
		p = p[w:]
		if h.pos == h.rate {
			keccakF1600Bytes(&h.s)
			h.pos = 0
		}
	}
	return n, nil
}

// finalize applies the SHA3 domain-separated padding and runs the permutation once more,
// entering squeezing mode. It is idempotent once squeezing.
func (h *State) finalize() {
	if h.squeezing {
		return
	}
	h.s[h.pos] ^= sha3Pad
	h.s[h.rate-1] ^= 0x80
	keccakF1600Bytes(&h.s)
	h.pos = 0
	h.squeezing = true
}

// Read squeezes output from the sponge into p, finalizing on the first call. Unlike a
// hash.Hash's Sum, Read consumes the digest incrementally and can be called repeatedly to
// extend output, matching the sponge's native squeeze operation.
func (h *State) Read(p []byte) (int, error) {
	h.finalize()
	n := len(p)
	for len(p) > 0 {
		if h.pos == h.rate {
			keccakF1600Bytes(&h.s)
			h.pos = 0
		}
		r := copy(p, h.s[h.pos:h.rate])
		h.pos += r
		p = p[r:]
	}
	return n, nil
}

// Sum appends the digest to b and returns the result, without modifying the receiver's state
// for any in-progress absorption (it operates on a clone).
func (h *State) Sum(b []byte) []byte {
	clone := *h
	out := make([]byte, clone.size)
	_, _ = clone.Read(out)
	return append(b, out...)
}

// Clone returns an independent copy of the sponge state.
func (h *State) Clone() *State {
	clone := *h
	return &clone
}

// Equal compares two States in constant time. Two states are equal if they have the same
// rate, output size, absorbing/squeezing mode, and internal bytes.
func (h *State) Equal(other *State) bool {
	if h.rate != other.rate || h.size != other.size || h.squeezing != other.squeezing {
		return false
	}
	return subtle.ConstantTimeCompare(h.s[:], other.s[:]) == 1
}

// Sum256 computes the SHA3-256 digest of data in one shot.
func Sum256(data []byte) [Size256]byte {
	h := New256()
	_, _ = h.Write(data)
	var out [Size256]byte
	_, _ = h.Read(out[:])
	return out
}

// Sum512 computes the SHA3-512 digest of data in one shot.
func Sum512(data []byte) [Size512]byte {
	h := New512()
	_, _ = h.Write(data)
	var out [Size512]byte
	_, _ = h.Read(out[:])
	return out
}

func xorInPlace(dst, src []byte) {
	for i := range src {
		dst[i] ^= src[i]
	}
}
