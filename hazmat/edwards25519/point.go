// Package edwards25519 implements the twisted-Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2  (mod p)
//
// in extended projective coordinates (X:Y:Z:T) with the invariant X*T = Y*Z, per Hisil, Wong,
// Carter and Dawson, "Twisted Edwards Curves Revisited" (https://eprint.iacr.org/2008/522). It
// is the curve layer beneath the Ristretto255 quotient group.
package edwards25519

import "github.com/tos-network/gtos-sub001/hazmat/field"

// Point is a point on the twisted-Edwards curve in extended coordinates. The zero value is NOT
// a valid point (it would represent 0/0); use Identity to construct the group identity.
type Point struct {
	X, Y, Z, T field.Elem
}

// precomp is the (Y-X, Y+X, k*T) representation used for the inner loop of scalar
// multiplication and Straus multi-scalar multiplication, eliminating one multiplication per
// addition. It is internal to the scalar-mul tables; it is never returned across this
// package's API boundary.
type precomp struct {
	YminusX, YplusX, KT field.Elem
}

// fromPoint affine-normalizes p (Z becomes 1) and sets t to its precomp representation. addPrecomp
// relies on the table entries having Z == 1 so it can skip a multiplication by b.Z.
func (t *precomp) fromPoint(p *Point) *precomp {
	var a Point
	a.Set(p)
	a.intoAffine()
	t.YminusX.Sub(&a.Y, &a.X)
	t.YplusX.Add(&a.Y, &a.X)
	t.KT.Mul(&a.T, field.K())
	return t
}

// Identity returns the group identity (0, 1, 1, 0).
func Identity() *Point {
	var p Point
	p.Y.One()
	p.Z.One()
	return &p
}

// Set sets z = x and returns z.
func (z *Point) Set(x *Point) *Point { *z = *x; return z }

// IsIdentity reports whether z is the group identity, by comparing X == 0 and Y == Z.
func (z *Point) IsIdentity() bool {
	var yz field.Elem
	yz.Sub(&z.Y, &z.Z)
	return z.X.IsZero() == 1 && yz.IsZero() == 1
}

// Equal reports whether z and x represent the same projective point, via cross-multiplication
// (x1*z2 == x2*z1 and y1*z2 == y2*z1), which is well defined even for non-normalized Z.
func (z *Point) Equal(x *Point) bool {
	var l, r field.Elem
	l.Mul(&z.X, &x.Z)
	r.Mul(&x.X, &z.Z)
	xEq := l.Equal(&r)

	l.Mul(&z.Y, &x.Z)
	r.Mul(&x.Y, &z.Z)
	yEq := l.Equal(&r)

	return xEq&yEq == 1
}

// Add sets z = a + b using the complete (unified) twisted-Edwards addition law, and returns z.
// Because a = -1 for this curve, the formula is complete: it is correct for any inputs,
// including a == b (doubling) and either operand equal to the identity.
func (z *Point) Add(a, b *Point) *Point {
	var A, B, C, D, E, F, G, H field.Elem
	var t1, t2 field.Elem

	A.Mul(t1.Sub(&a.Y, &a.X), t2.Sub(&b.Y, &b.X))
	B.Mul(t1.Add(&a.Y, &a.X), t2.Add(&b.Y, &b.X))
	C.Mul(t1.Mul(&a.T, &b.T), field.K())
	D.Mul(t1.Add(&a.Z, &a.Z), &b.Z)

	E.Sub(&B, &A)
	F.Sub(&D, &C)
	G.Add(&D, &C)
	H.Add(&B, &A)

	z.X.Mul(&E, &F)
	z.Y.Mul(&G, &H)
	z.Z.Mul(&F, &G)
	z.T.Mul(&E, &H)
	return z
}

// addPrecomp sets z = a + b where b is given in its precomp representation (Y-X, Y+X, k*T)
// and has Z implicitly 1. This is the inner step of base-point table lookups.
func (z *Point) addPrecomp(a *Point, b *precomp) *Point {
	var A, B, C, D, E, F, G, H field.Elem
	var t1 field.Elem

	A.Mul(t1.Sub(&a.Y, &a.X), &b.YminusX)
	B.Mul(t1.Add(&a.Y, &a.X), &b.YplusX)
	C.Mul(&a.T, &b.KT)
	D.Add(&a.Z, &a.Z)

	E.Sub(&B, &A)
	F.Sub(&D, &C)
	G.Add(&D, &C)
	H.Add(&B, &A)

	z.X.Mul(&E, &F)
	z.Y.Mul(&G, &H)
	z.Z.Mul(&F, &G)
	z.T.Mul(&E, &H)
	return z
}

// Double sets z = a + a using the dedicated doubling formula "dbl-2008-hwcd" (4M + 4S),
// cheaper than a general Add call, and returns z.
func (z *Point) Double(a *Point) *Point {
	var A, B, C, D, E, G, F, H field.Elem
	var xPlusY, xpy2 field.Elem

	A.Square(&a.X)
	B.Square(&a.Y)
	C.Square(&a.Z)
	C.Add(&C, &C) // C = 2*Z^2

	D.Neg(&A) // a = -1, so the curve-parameter term D = a*A = -A

	xPlusY.Add(&a.X, &a.Y)
	xpy2.Square(&xPlusY)
	E.Sub(&xpy2, &A)
	E.Sub(&E, &B)

	G.Add(&D, &B) // G = B - A
	F.Sub(&G, &C)
	H.Sub(&D, &B) // H = -(A + B)

	z.X.Mul(&E, &F)
	z.Y.Mul(&G, &H)
	z.Z.Mul(&F, &G)
	z.T.Mul(&E, &H)
	return z
}

// Negate sets z = -a (negate X and T) and returns z.
func (z *Point) Negate(a *Point) *Point {
	z.X.Neg(&a.X)
	z.Y.Set(&a.Y)
	z.Z.Set(&a.Z)
	z.T.Neg(&a.T)
	return z
}

// Sub sets z = a - b and returns z.
func (z *Point) Sub(a, b *Point) *Point {
	var negB Point
	negB.Negate(b)
	return z.Add(a, &negB)
}

// DoubleN sets z = 2^n * a by chaining n dedicated doublings, and returns z.
func (z *Point) DoubleN(a *Point, n int) *Point {
	z.Set(a)
	for i := 0; i < n; i++ {
		z.Double(z)
	}
	return z
}

// intoAffine normalizes z so that Z == 1, setting X, Y to the affine x, y and T = X*Y.
func (z *Point) intoAffine() *Point {
	var zInv field.Elem
	zInv.Invert(&z.Z)
	z.X.Mul(&z.X, &zInv)
	z.Y.Mul(&z.Y, &zInv)
	z.Z.One()
	z.T.Mul(&z.X, &z.Y)
	return z
}

// Bytes returns the RFC 8032 §5.1.2 compressed encoding of z: the affine y-coordinate in
// little-endian, with the sign of x XORed into the top bit.
func (z *Point) Bytes() [32]byte {
	var a Point
	a.Set(z)
	a.intoAffine()

	out := a.Y.Bytes()
	out[31] ^= byte(a.X.Sign()) << 7
	return out
}

// SetBytes decodes an RFC 8032 compressed point. It returns nil (z is left unspecified) if the
// bytes do not decode to a valid curve point.
func (z *Point) SetBytes(b []byte) *Point {
	if len(b) != 32 {
		return nil
	}
	signBit := int(b[31] >> 7)

	var yBytes [32]byte
	copy(yBytes[:], b)
	yBytes[31] &= 0x7f

	var y field.Elem
	y.SetBytes(yBytes[:])

	// u = y^2 - 1, v = d*y^2 + 1; x^2 = u/v.
	var y2, u, v, x field.Elem
	y2.Square(&y)
	u.Sub(&y2, field.One())
	v.Mul(field.D(), &y2)
	v.Add(&v, field.One())

	if field.SqrtRatio(&x, &u, &v) == 0 {
		return nil
	}

	// Choose the root whose sign matches the encoded sign bit.
	var negX field.Elem
	negX.Neg(&x)
	x.If(x.Sign()^signBit, &negX, &x)

	z.X = x
	z.Y = y
	z.Z.One()
	z.T.Mul(&x, &y)
	return z
}
