// Package merlin implements a Merlin-style Fiat-Shamir transcript: a keyed sponge that absorbs
// labeled protocol messages and squeezes labeled challenge bytes, giving every proof system in
// schemes/proofs a uniform, domain-separated way to turn an interactive sigma protocol into a
// non-interactive one.
//
// This is a purpose-built transcript, not a generic protocol framework: every frame carries an
// explicit label and length, mirroring the original Merlin (STROBE-based) construction, but the
// underlying permutation is the same SHA3 sponge state used everywhere else in this module rather
// than STROBE's Keccak-f[1600]-based framing.
package merlin

import "github.com/tos-network/gtos-sub001/hazmat/sha3"

// Transcript is a Merlin-style Fiat-Shamir transcript. The zero value is not usable; construct
// one with New.
type Transcript struct {
	h *sha3.State
}

// New starts a fresh transcript, domain-separated by label so that transcripts for distinct
// protocols (or distinct proof instances within a protocol) never collide.
func New(label string) *Transcript {
	t := &Transcript{h: sha3.New256()}
	t.writeFrame("dom-sep", []byte(label))
	return t
}

// AppendMessage absorbs a labeled message into the transcript. Use this for every public value
// a proof's verification equation depends on: commitments, ciphertexts, statement parameters,
// and the prover's first-round messages.
func (t *Transcript) AppendMessage(label string, data []byte) {
	t.writeFrame(label, data)
}

// ChallengeBytes squeezes n labeled pseudorandom bytes out of the transcript. The label is
// absorbed before squeezing, so two challenges drawn with different labels (even at the same
// point in an otherwise identical transcript) are independent. The bytes are squeezed from a copy
// of the sponge and then absorbed back into the transcript under the same label, so the
// transcript stays open: ChallengeBytes may be called more than once, AppendMessage may follow
// it, and every later challenge depends on every earlier one. Clone the transcript if further
// branching is required.
func (t *Transcript) ChallengeBytes(label string, out []byte) {
	t.writeFrame(label, leUint64(uint64(len(out))))
	_, _ = t.h.Clone().Read(out)
	t.writeFrame(label, out)
}

// writeFrame absorbs label_len || label || data_len || data, each length a little-endian
// uint64, so that no two distinct (label, data) pairs ever serialize to the same byte string.
func (t *Transcript) writeFrame(label string, data []byte) {
	_, _ = t.h.Write(leUint64(uint64(len(label))))
	_, _ = t.h.Write([]byte(label))
	_, _ = t.h.Write(leUint64(uint64(len(data))))
	_, _ = t.h.Write(data)
}

func leUint64(x uint64) []byte {
	var b [8]byte
	for i := range b {
		b[i] = byte(x)
		x >>= 8
	}
	return b[:]
}

// Clone returns an independent copy of the transcript's current state. Branching a transcript
// this way lets a single prover run several independent sub-proofs from a shared prefix without
// one sub-proof's challenges affecting another's.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{h: t.h.Clone()}
}
