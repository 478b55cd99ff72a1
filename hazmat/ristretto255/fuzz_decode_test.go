package ristretto255_test

import (
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"

	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/internal/testdata"
)

// FuzzDecode checks that Decode never panics on arbitrary 32-byte inputs, and that whenever it
// succeeds, re-encoding the decoded point reproduces the same canonical bytes it accepted — the
// canonicality spec.md §4.D requires of every accepted Ristretto255 encoding.
func FuzzDecode(f *testing.F) {
	drbg := testdata.New("ristretto255 decode fuzz")
	for range 20 {
		f.Add(drbg.Data(32))
	}
	var zero [32]byte
	f.Add(zero[:])

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}
		buf, err := tp.GetBytes()
		if err != nil || len(buf) != 32 {
			t.Skip(err)
		}

		var p ristretto255.Point
		if p.Decode(buf) == nil {
			return
		}

		reEnc := p.Encode()
		if string(reEnc[:]) != string(buf) {
			t.Fatalf("Decode accepted a non-canonical encoding: input %x re-encodes as %x", buf, reEnc)
		}
	})
}
