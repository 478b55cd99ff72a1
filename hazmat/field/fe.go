// Package field implements constant-time arithmetic in the prime field F_p, where
// p = 2^255 - 19. It backs the twisted-Edwards curve and Ristretto255 group layers.
//
// This is the portable scalar backend: a single canonical radix-2^51, 5-limb representation.
// The contract (serialization, equality, reduction) is identical across any backend an
// implementation might add (4-/8-way SIMD radix-2^25.5, AVX-512 IFMA radix-2^43); this package
// is the one canonical layout chosen for this module. See the mulN/sqrN doc comments for how a
// SIMD backend would widen the same contract to independent lanes.
package field

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// Elem is an element of F_p = F_{2^255-19}.
//
// Internally, an element t represents the integer
//
//	t.l0 + t.l1*2^51 + t.l2*2^102 + t.l3*2^153 + t.l4*2^204
//
// Between calls, limbs are allowed to carry a bounded excess above 2^51 (the AddNR/SubNR
// contract); every Mul/Square/Bytes call fully reduces its output before
// returning. The zero value is the valid field element 0.
type Elem struct {
	l0, l1, l2, l3, l4 uint64
}

const maskLow51 uint64 = (1 << 51) - 1

// Zero sets z = 0 and returns z.
func (z *Elem) Zero() *Elem { *z = Elem{}; return z }

// One sets z = 1 and returns z.
func (z *Elem) One() *Elem { *z = Elem{1, 0, 0, 0, 0}; return z }

// Set sets z = x and returns z.
func (z *Elem) Set(x *Elem) *Elem { *z = *x; return z }

// carryPropagate performs a single, full carry chain across all five limbs, bringing each limb
// below 2^51 at the cost of at most one extra reduction step on l0 (the 19x wraparound of the
// top limb).
func (z *Elem) carryPropagate() *Elem {
	c0 := z.l0 >> 51
	c1 := z.l1 >> 51
	c2 := z.l2 >> 51
	c3 := z.l3 >> 51
	c4 := z.l4 >> 51

	z.l0 = z.l0&maskLow51 + 19*c4
	z.l1 = z.l1&maskLow51 + c0
	z.l2 = z.l2&maskLow51 + c1
	z.l3 = z.l3&maskLow51 + c2
	z.l4 = z.l4&maskLow51 + c3

	return z
}

// reduce fully reduces z modulo p, producing a canonical representative in [0, p).
func (z *Elem) reduce() *Elem {
	z.carryPropagate()

	// z is now < 2^255 + 2^13*19. If z >= 2^255 - 19, adding 19 overflows bit 255 in every
	// limb's carry chain; c ends up 1 in that case and 0 otherwise.
	c := (z.l0 + 19) >> 51
	c = (z.l1 + c) >> 51
	c = (z.l2 + c) >> 51
	c = (z.l3 + c) >> 51
	c = (z.l4 + c) >> 51

	z.l0 += 19 * c
	z.l1 += z.l0 >> 51
	z.l0 &= maskLow51
	z.l2 += z.l1 >> 51
	z.l1 &= maskLow51
	z.l3 += z.l2 >> 51
	z.l2 &= maskLow51
	z.l4 += z.l3 >> 51
	z.l3 &= maskLow51
	z.l4 &= maskLow51

	return z
}

// Add sets z = x + y, fully reduced.
func (z *Elem) Add(x, y *Elem) *Elem {
	z.AddNR(x, y)
	return z.carryPropagate()
}

// AddNR sets z = x + y without a final carry propagation. The result is accepted by Mul, Square,
// and a subsequent Add/Sub, but must not be serialized with Bytes without first going through
// Add, Sub, Mul, or Square.
func (z *Elem) AddNR(x, y *Elem) *Elem {
	z.l0 = x.l0 + y.l0
	z.l1 = x.l1 + y.l1
	z.l2 = x.l2 + y.l2
	z.l3 = x.l3 + y.l3
	z.l4 = x.l4 + y.l4
	return z
}

// Sub sets z = x - y, fully reduced.
func (z *Elem) Sub(x, y *Elem) *Elem {
	z.SubNR(x, y)
	return z.carryPropagate()
}

// SubNR sets z = x - y without a final carry propagation; see AddNR.
func (z *Elem) SubNR(x, y *Elem) *Elem {
	// Add 2p's limb decomposition first so the subtraction cannot underflow a uint64.
	z.l0 = (x.l0 + 0xFFFFFFFFFFFDA) - y.l0
	z.l1 = (x.l1 + 0xFFFFFFFFFFFFE) - y.l1
	z.l2 = (x.l2 + 0xFFFFFFFFFFFFE) - y.l2
	z.l3 = (x.l3 + 0xFFFFFFFFFFFFE) - y.l3
	z.l4 = (x.l4 + 0xFFFFFFFFFFFFE) - y.l4
	return z
}

// Neg sets z = -x, fully reduced.
func (z *Elem) Neg(x *Elem) *Elem {
	var zero Elem
	return z.Sub(&zero, x)
}

// Mul121666 sets z = 121666 * x, the Montgomery ladder's a24 constant, fully reduced.
func (z *Elem) Mul121666(x *Elem) *Elem {
	const a24 = 121666
	x0lo, x0hi := mul51(x.l0, a24)
	x1lo, x1hi := mul51(x.l1, a24)
	x2lo, x2hi := mul51(x.l2, a24)
	x3lo, x3hi := mul51(x.l3, a24)
	x4lo, x4hi := mul51(x.l4, a24)
	z.l0 = x0lo + 19*x4hi
	z.l1 = x1lo + x0hi
	z.l2 = x2lo + x1hi
	z.l3 = x3lo + x2hi
	z.l4 = x4lo + x3hi
	return z.carryPropagate()
}

func mul51(a uint64, b uint32) (lo, hi uint64) {
	mh, ml := bits.Mul64(a, uint64(b))
	lo = ml & maskLow51
	hi = (mh << 13) | (ml >> 51)
	return
}

// SetBytes decodes a 32-byte little-endian encoding into z. Bit 255 (the top bit of byte 31) is
// masked off, and values in [2^255-19, 2^255) are accepted and reduced modulo p, per the field
// deserialization contract: decode never fails.
func (z *Elem) SetBytes(x []byte) *Elem {
	_ = x[31]
	z.l0 = binary.LittleEndian.Uint64(x[0:8]) & maskLow51
	z.l1 = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51
	z.l2 = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51
	z.l3 = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51
	z.l4 = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51
	return z
}

// Bytes returns the canonical 32-byte little-endian encoding of z. Bit 255 of the result is
// always zero.
func (z *Elem) Bytes() [32]byte {
	t := *z
	t.reduce()

	var out [32]byte
	var buf [8]byte
	for i, l := range [5]uint64{t.l0, t.l1, t.l2, t.l3, t.l4} {
		bitOff := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitOff%8))
		for j, bb := range buf {
			off := bitOff/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= bb
		}
	}
	return out
}

// Equal returns 1 if z == x, else 0, in constant time.
func (z *Elem) Equal(x *Elem) int {
	a, b := z.Bytes(), x.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:])
}

// IsZero returns 1 if z == 0, else 0, in constant time.
func (z *Elem) IsZero() int {
	var zero Elem
	return z.Equal(&zero)
}

// Sign returns the low bit of z's canonical representative (0 or 1).
func (z *Elem) Sign() int {
	b := z.Bytes()
	return int(b[0] & 1)
}

func mask64(cond int) uint64 { return ^(uint64(cond) - 1) }

// If sets z = a if cond == 1, or z = b if cond == 0, in constant time. cond must be 0 or 1.
func (z *Elem) If(cond int, a, b *Elem) *Elem {
	m := mask64(cond)
	z.l0 = (m & a.l0) | (^m & b.l0)
	z.l1 = (m & a.l1) | (^m & b.l1)
	z.l2 = (m & a.l2) | (^m & b.l2)
	z.l3 = (m & a.l3) | (^m & b.l3)
	z.l4 = (m & a.l4) | (^m & b.l4)
	return z
}

// CondSwap conditionally swaps z and x in constant time when cond == 1, and leaves both
// unchanged when cond == 0.
func CondSwap(z, x *Elem, cond int) {
	m := mask64(cond)
	t := m & (z.l0 ^ x.l0)
	z.l0 ^= t
	x.l0 ^= t
	t = m & (z.l1 ^ x.l1)
	z.l1 ^= t
	x.l1 ^= t
	t = m & (z.l2 ^ x.l2)
	z.l2 ^= t
	x.l2 ^= t
	t = m & (z.l3 ^ x.l3)
	z.l3 ^= t
	x.l3 ^= t
	t = m & (z.l4 ^ x.l4)
	z.l4 ^= t
	x.l4 ^= t
}

// Abs sets z = |x|, choosing the representative with Sign() == 0.
func (z *Elem) Abs(x *Elem) *Elem {
	var neg Elem
	neg.Neg(x)
	return z.If(x.Sign(), &neg, x)
}

// NegAbs sets z = -|x|, the representative of x with Sign() == 1 (or zero if x is zero).
func (z *Elem) NegAbs(x *Elem) *Elem {
	var neg Elem
	neg.Neg(x)
	return z.If(x.Sign(), x, &neg)
}

// Mul sets z = x * y, fully reduced.
func (z *Elem) Mul(x, y *Elem) *Elem {
	mulGeneric(z, x, y)
	return z
}

// Square sets z = x * x, fully reduced.
func (z *Elem) Square(x *Elem) *Elem {
	mulGeneric(z, x, x)
	return z
}

// Mul2 performs two independent multiplications in parallel lanes: z[i] = x[i] * y[i]. It is the
// batched-operation contract an 4-/8-way SIMD backend would widen to more lanes; the portable
// backend here satisfies the contract with a sequential loop. Output slots must not alias each
// other or their inputs.
func Mul2(z *[2]Elem, x, y *[2]Elem) {
	for i := range z {
		z[i].Mul(&x[i], &y[i])
	}
}

// Mul3 is Mul2 widened to three lanes.
func Mul3(z *[3]Elem, x, y *[3]Elem) {
	for i := range z {
		z[i].Mul(&x[i], &y[i])
	}
}

// Mul4 is Mul2 widened to four lanes.
func Mul4(z *[4]Elem, x, y *[4]Elem) {
	for i := range z {
		z[i].Mul(&x[i], &y[i])
	}
}

// Square2 is the squaring analogue of Mul2.
func Square2(z *[2]Elem, x *[2]Elem) {
	for i := range z {
		z[i].Square(&x[i])
	}
}

// Square3 is the squaring analogue of Mul3.
func Square3(z *[3]Elem, x *[3]Elem) {
	for i := range z {
		z[i].Square(&x[i])
	}
}

// Square4 is the squaring analogue of Mul4.
func Square4(z *[4]Elem, x *[4]Elem) {
	for i := range z {
		z[i].Square(&x[i])
	}
}

// mulGeneric computes z = x*y mod p via schoolbook multiplication over the five 51-bit limbs,
// folding the high half back in with the 2^255 = 19 reduction identity, then carry-propagating.
func mulGeneric(z, x, y *Elem) {
	// Widen y's limbs by 19 where the schoolbook product would otherwise need a term at or
	// above 2^255; this lets every partial product reduce mod p as it's accumulated.
	x0, x1, x2, x3, x4 := x.l0, x.l1, x.l2, x.l3, x.l4
	y0, y1, y2, y3, y4 := y.l0, y.l1, y.l2, y.l3, y.l4

	y1_19 := y1 * 19
	y2_19 := y2 * 19
	y3_19 := y3 * 19
	y4_19 := y4 * 19

	var r0lo, r0hi, r1lo, r1hi, r2lo, r2hi, r3lo, r3hi, r4lo, r4hi uint64

	addMul := func(lo, hi *uint64, a, b uint64) {
		h, l := bits.Mul64(a, b)
		nl, c := bits.Add64(*lo, l, 0)
		*lo = nl
		*hi += h + c
	}

	addMul(&r0lo, &r0hi, x0, y0)
	addMul(&r0lo, &r0hi, x1, y4_19)
	addMul(&r0lo, &r0hi, x2, y3_19)
	addMul(&r0lo, &r0hi, x3, y2_19)
	addMul(&r0lo, &r0hi, x4, y1_19)

	addMul(&r1lo, &r1hi, x0, y1)
	addMul(&r1lo, &r1hi, x1, y0)
	addMul(&r1lo, &r1hi, x2, y4_19)
	addMul(&r1lo, &r1hi, x3, y3_19)
	addMul(&r1lo, &r1hi, x4, y2_19)

	addMul(&r2lo, &r2hi, x0, y2)
	addMul(&r2lo, &r2hi, x1, y1)
	addMul(&r2lo, &r2hi, x2, y0)
	addMul(&r2lo, &r2hi, x3, y4_19)
	addMul(&r2lo, &r2hi, x4, y3_19)

	addMul(&r3lo, &r3hi, x0, y3)
	addMul(&r3lo, &r3hi, x1, y2)
	addMul(&r3lo, &r3hi, x2, y1)
	addMul(&r3lo, &r3hi, x3, y0)
	addMul(&r3lo, &r3hi, x4, y4_19)

	addMul(&r4lo, &r4hi, x0, y4)
	addMul(&r4lo, &r4hi, x1, y3)
	addMul(&r4lo, &r4hi, x2, y2)
	addMul(&r4lo, &r4hi, x3, y1)
	addMul(&r4lo, &r4hi, x4, y0)

	// Each r_i is a 128-bit accumulator representing the coefficient of 2^(51*i); shift the
	// low 51 bits off into the limb and carry the rest (shifted by 13 to align radixes) up.
	// Every carry is taken from its own 128-bit accumulator before any limb is updated, so no
	// carry is added into a 64-bit low word where it could overflow.
	c0 := shiftDown(r0hi, r0lo)
	c1 := shiftDown(r1hi, r1lo)
	c2 := shiftDown(r2hi, r2lo)
	c3 := shiftDown(r3hi, r3lo)
	c4 := shiftDown(r4hi, r4lo)

	// The top carry folds back into l0 via the 2^255 = 19 identity; then propagate once more.
	z.l0 = r0lo&maskLow51 + 19*c4
	z.l1 = r1lo&maskLow51 + c0
	z.l2 = r2lo&maskLow51 + c1
	z.l3 = r3lo&maskLow51 + c2
	z.l4 = r4lo&maskLow51 + c3
	z.carryPropagate()
}

// shiftDown returns floor((hi<<64 + lo) / 2^51), i.e. the bits at or above position 51.
func shiftDown(hi, lo uint64) uint64 {
	return (hi << 13) | (lo >> 51)
}
