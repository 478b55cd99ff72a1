package edwards25519

// scalarBits extracts bit i (0 = LSB) of a canonical 32-byte little-endian scalar.
func scalarBit(s *[32]byte, i int) int {
	return int((s[i/8] >> uint(i%8)) & 1)
}

// ScalarMul sets z = n*p using variable-time MSB-first double-and-add over the 256-bit
// canonical scalar n. Suitable only when n is public (e.g. signature verification); for secret
// scalars use ScalarMulConstTime.
func (z *Point) ScalarMul(n *[32]byte, p *Point) *Point {
	acc := Identity()
	for i := 255; i >= 0; i-- {
		acc.Double(acc)
		if scalarBit(n, i) == 1 {
			acc.Add(acc, p)
		}
	}
	return z.Set(acc)
}

// ScalarMulConstTime sets z = n*p without branching or making memory accesses that depend on
// the bits of n. Each bit iteration always performs both the "add p" and "don't add p"
// computation and selects between them with a constant-time field Select, rather than skipping
// the addition on a zero bit.
func (z *Point) ScalarMulConstTime(n *[32]byte, p *Point) *Point {
	acc := Identity()
	var withAdd Point
	for i := 255; i >= 0; i-- {
		acc.Double(acc)
		withAdd.Add(acc, p)
		condSelectPoint(acc, &withAdd, acc, scalarBit(n, i))
	}
	return z.Set(acc)
}

// condSelectPoint sets z = a if cond == 1 else b, across all four coordinates, in constant
// time. z may alias b but must not alias a.
func condSelectPoint(z, a, b *Point, cond int) {
	z.X.If(cond, &a.X, &b.X)
	z.Y.If(cond, &a.Y, &b.Y)
	z.Z.If(cond, &a.Z, &b.Z)
	z.T.If(cond, &a.T, &b.T)
}

// DoubleScalarMulBase sets z = n1*a + n2*base, using an interleaved variable-time double-and-add
// over both scalars simultaneously (one pass of doublings shared between the two terms).
func (z *Point) DoubleScalarMulBase(n1 *[32]byte, a *Point, n2 *[32]byte, base *Point) *Point {
	acc := Identity()
	for i := 255; i >= 0; i-- {
		acc.Double(acc)
		if scalarBit(n1, i) == 1 {
			acc.Add(acc, a)
		}
		if scalarBit(n2, i) == 1 {
			acc.Add(acc, base)
		}
	}
	return z.Set(acc)
}

// MultiScalarMul sets z = sum(n[i] * p[i]) via the naive method: one ScalarMul per term,
// accumulated. len(n) must equal len(p).
func (z *Point) MultiScalarMul(n []*[32]byte, p []*Point) *Point {
	acc := Identity()
	var term Point
	for i := range n {
		term.ScalarMul(n[i], p[i])
		acc.Add(acc, &term)
	}
	return z.Set(acc)
}

const strausWindow = 4
const strausTableSize = 1 << strausWindow // 16

// MultiScalarMulStraus sets z = sum(n[i] * p[i]) using Straus-Yao interleaved windowed
// multi-exponentiation with a 4-bit window, processing all k terms in lockstep over 64
// 4-bit windows (MSB first). For k outside [4, 32] this falls back to MultiScalarMul; the
// cutoff is a performance policy, not a correctness requirement, and the result is always
// bitwise identical to the naive computation.
func (z *Point) MultiScalarMulStraus(n []*[32]byte, p []*Point) *Point {
	k := len(n)
	if k < 4 || k > 32 {
		return z.MultiScalarMul(n, p)
	}

	// Precompute {j*p[i] : j in [0, 16)} for each of the k points, in the (Y-X, Y+X, k*T)
	// representation so the per-window addition skips one multiplication.
	var tables [32][strausTableSize]precomp
	for i := 0; i < k; i++ {
		var acc Point
		acc.Set(Identity())
		tables[i][0].fromPoint(&acc)
		for j := 1; j < strausTableSize; j++ {
			acc.Add(&acc, p[i])
			tables[i][j].fromPoint(&acc)
		}
	}

	acc := Identity()
	for w := 63; w >= 0; w-- {
		if w != 63 {
			for b := 0; b < strausWindow; b++ {
				acc.Double(acc)
			}
		}
		for i := 0; i < k; i++ {
			win := windowAt(n[i], w)
			if win == 0 {
				continue
			}
			acc.addPrecomp(acc, &tables[i][win])
		}
	}
	return z.Set(acc)
}

// windowAt extracts the w-th 4-bit window (0 = least significant window) from a canonical
// 32-byte little-endian scalar.
func windowAt(n *[32]byte, w int) int {
	bitOff := w * strausWindow
	byteOff := bitOff / 8
	shift := uint(bitOff % 8)
	lo := uint16(n[byteOff])
	var hi uint16
	if byteOff+1 < len(n) {
		hi = uint16(n[byteOff+1])
	}
	v := (lo | hi<<8) >> shift
	return int(v & (strausTableSize - 1))
}
