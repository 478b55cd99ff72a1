package ristretto255

// baseBytes is the canonical encoding of the Ristretto255 base point G.
var baseBytes = [32]byte{
	0xe2, 0xf2, 0xae, 0x0a, 0x6a, 0xbc, 0x4e, 0x71,
	0xa8, 0x84, 0xa9, 0x61, 0xc5, 0x00, 0x51, 0x5f,
	0x58, 0xe3, 0x0b, 0x6a, 0xa5, 0x82, 0xdd, 0x8d,
	0xb6, 0xa6, 0x59, 0x45, 0xe0, 0x8d, 0x2d, 0x76,
}

// blindingBaseBytes is the canonical encoding of H, the fixed Pedersen/Schnorr generator used in
// place of the curve base point by the signature scheme and the commitment algebra.
var blindingBaseBytes = [32]byte{
	0x8c, 0x92, 0x40, 0xb4, 0x56, 0xa9, 0xe6, 0xdc,
	0x65, 0xc3, 0x77, 0xa1, 0x04, 0x8d, 0x74, 0x5f,
	0x94, 0xa0, 0x8c, 0xdb, 0x7f, 0x44, 0xcb, 0xcd,
	0x7b, 0x46, 0xf3, 0x40, 0x48, 0x87, 0x11, 0x34,
}

var (
	basePoint         = mustDecode(baseBytes)
	blindingBasePoint = mustDecode(blindingBaseBytes)
)

func mustDecode(b [32]byte) *Point {
	p := new(Point).Decode(b[:])
	if p == nil {
		panic("ristretto255: invalid fixed generator encoding")
	}
	return p
}

// Base returns the distinguished Ristretto255 base point G.
func Base() *Point { return new(Point).Set(basePoint) }

// BlindingBase returns the fixed generator H used as the signature scheme's public-key base and
// as the blinding generator in Pedersen commitments.
func BlindingBase() *Point { return new(Point).Set(blindingBasePoint) }

// BaseBytes returns the canonical encoding of G.
func BaseBytes() [32]byte { return baseBytes }

// BlindingBaseBytes returns the canonical encoding of H.
func BlindingBaseBytes() [32]byte { return blindingBaseBytes }
