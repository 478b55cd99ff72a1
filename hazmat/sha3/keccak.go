// Package sha3 implements the Keccak-f[1600] permutation and the SHA3-256 / SHA3-512 sponge
// constructions defined by NIST FIPS 202.
//
// The sponge is absorb/squeeze over a 1600-bit (200-byte) state of 25 64-bit lanes, using the
// SHA3 domain-separated padding (0x06 ... 0x80), not the raw Keccak padding (0x01 ... 0x80).
package sha3

import "math/bits"

// rc holds the 24 round constants for Keccak-f[1600], as specified by FIPS 202 Algorithm 6.
var rc = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotc holds the per-lane rotation offsets for the ρ step, indexed [x][y] in the FIPS 202
// lane-numbering convention.
var rotc = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// keccakF1600 applies the full 24-round Keccak-f[1600] permutation to a 25-lane state.
func keccakF1600(a *[25]uint64) {
	var b [5][5]uint64
	var c [5]uint64
	var d [5]uint64

	for round := 0; round < 24; round++ {
		// θ: column parity and rotate-by-one XOR.
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// ρ and π: per-lane rotation followed by the lane permutation.
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y][(2*x+3*y)%5] = bits.RotateLeft64(a[x+5*y], int(rotc[x][y]))
			}
		}

		// χ: row-wise non-linear mixing over GF(2).
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				a[x+5*y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
			}
		}

		// ι: XOR the round constant into lane (0,0).
		a[0] ^= rc[round]
	}
}

// keccakF1600Bytes interprets state as 25 little-endian uint64 lanes, runs keccakF1600, and
// writes the result back in place.
func keccakF1600Bytes(state *[200]byte) {
	var lanes [25]uint64
	for i := range lanes {
		lanes[i] = leUint64(state[i*8:])
	}
	keccakF1600(&lanes)
	for i, l := range lanes {
		putLeUint64(state[i*8:], l)
	}
}

func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLeUint64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
