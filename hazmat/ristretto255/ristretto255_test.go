package ristretto255

import (
	"bytes"
	"testing"
)

func TestDecodeIdentityIsZero(t *testing.T) {
	var zero [32]byte
	p := new(Point).Decode(zero[:])
	if p == nil {
		t.Fatal("decode of the all-zero encoding should succeed")
	}
	if !p.IsZero() {
		t.Fatal("decode(00...0) should be the group identity")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var seed [64]byte
	for i := range seed {
		seed[i] = byte(i*13 + 1)
	}
	p := HashToCurve(seed[:])
	enc := p.Encode()
	q := new(Point).Decode(enc[:])
	if q == nil || !p.Equal(q) {
		t.Fatal("decode(encode(p)) != p")
	}
}

func TestRejectsNonCanonical(t *testing.T) {
	var buf [32]byte
	for i := range buf {
		buf[i] = 0xff
	}
	if new(Point).Decode(buf[:]) != nil {
		t.Fatal("expected rejection of a non-canonical encoding")
	}
}

func TestBaseAndBlindingBaseDecode(t *testing.T) {
	if Base().IsZero() {
		t.Fatal("base point decoded as identity")
	}
	if BlindingBase().IsZero() {
		t.Fatal("blinding base point decoded as identity")
	}
	if Base().Equal(BlindingBase()) {
		t.Fatal("G and H must be distinct generators")
	}
}

func TestHashToCurveDeterministic(t *testing.T) {
	var seed [64]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	p1 := HashToCurve(seed[:])
	p2 := HashToCurve(seed[:])
	if !p1.Equal(p2) {
		t.Fatal("hash_to_curve must be deterministic across calls")
	}
}

func TestMapToCurveZeroNotIdentity(t *testing.T) {
	var zero [32]byte
	p := MapToCurve(zero[:])
	if p.IsZero() {
		t.Fatal("map_to_curve(0) must not be the identity")
	}
}

func TestScalarMulZeroAndOne(t *testing.T) {
	var zero, one [32]byte
	one[0] = 1

	g := Base()
	var r Point
	r.ScalarMulConstTime(&zero, g)
	if !r.IsZero() {
		t.Fatal("0*G != identity")
	}

	r.ScalarMulConstTime(&one, g)
	if !r.Equal(g) {
		t.Fatal("1*G != G")
	}
}

func TestEncodeBaseMatchesBaseBytes(t *testing.T) {
	enc := Base().Encode()
	want := BaseBytes()
	if !bytes.Equal(enc[:], want[:]) {
		t.Fatal("encode(decode(G-bytes)) must round-trip to the same canonical bytes")
	}
}
