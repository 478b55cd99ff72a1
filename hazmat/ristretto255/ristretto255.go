// Package ristretto255 implements the Ristretto255 prime-order group: a quotient of the
// twisted-Edwards curve's 8-torsion-poisoned point group down to a clean, cofactor-1 group.
//
// ScalarMul and MultiScalarMul are variable-time and must only be given public scalars.
// ScalarMulConstTime and ScalarBaseMul use the edwards25519 package's constant-time ladder and
// are the ones to use on secret scalars.
package ristretto255

import (
	"github.com/tos-network/gtos-sub001/hazmat/edwards25519"
	"github.com/tos-network/gtos-sub001/hazmat/field"
)

// Point is an element of the Ristretto255 group, represented internally by one of the (many)
// curve points in its equivalence class.
type Point struct {
	inner edwards25519.Point
}

// Identity returns the group identity element.
func Identity() *Point {
	var p Point
	p.inner.Set(edwards25519.Identity())
	return &p
}

// Set sets z = x and returns z.
func (z *Point) Set(x *Point) *Point { z.inner.Set(&x.inner); return z }

// Add sets z = a + b and returns z.
func (z *Point) Add(a, b *Point) *Point { z.inner.Add(&a.inner, &b.inner); return z }

// Sub sets z = a - b and returns z.
func (z *Point) Sub(a, b *Point) *Point { z.inner.Sub(&a.inner, &b.inner); return z }

// Negate sets z = -a and returns z.
func (z *Point) Negate(a *Point) *Point { z.inner.Negate(&a.inner); return z }

// ScalarMul sets z = n*p, in variable time. n must be public.
func (z *Point) ScalarMul(n *[32]byte, p *Point) *Point {
	z.inner.ScalarMul(n, &p.inner)
	return z
}

// ScalarMulConstTime sets z = n*p without branching or memory access patterns dependent on n.
func (z *Point) ScalarMulConstTime(n *[32]byte, p *Point) *Point {
	z.inner.ScalarMulConstTime(n, &p.inner)
	return z
}

// ScalarBaseMul sets z = n*G, where G is the distinguished Ristretto255 base point, using the
// constant-time ladder.
func (z *Point) ScalarBaseMul(n *[32]byte) *Point {
	return z.ScalarMulConstTime(n, Base())
}

// MultiScalarMul sets z = sum(n[i] * p[i]), in variable time, using Straus-Yao interleaved
// multi-exponentiation when there are enough terms to amortize its table-building cost. Every
// n[i] must be public; this is a verification-equation primitive, never used on secret scalars.
func (z *Point) MultiScalarMul(n []*[32]byte, p []*Point) *Point {
	inner := make([]*edwards25519.Point, len(p))
	for i := range p {
		inner[i] = &p[i].inner
	}
	var acc edwards25519.Point
	acc.MultiScalarMulStraus(n, inner)
	z.inner.Set(&acc)
	return z
}

// IsZero reports whether z equals the group identity.
func (z *Point) IsZero() bool { return z.Equal(Identity()) }

// Equal reports whether z and x name the same Ristretto255 group element. Per
// https://ristretto.group/details/equality.html, two extended-coordinate representatives p, q of
// the same class satisfy x_p*y_q == x_q*y_p or x_p*x_q == y_p*y_q (whichever curve point in each
// equivalence class was chosen internally is irrelevant to this check).
func (z *Point) Equal(x *Point) bool {
	zx, zy, _, _ := coords(&z.inner)
	xx, xy, _, _ := coords(&x.inner)

	var l, r field.Elem
	l.Mul(&zx, &xy)
	r.Mul(&xx, &zy)
	xEq := l.Equal(&r)

	l.Mul(&zx, &xx)
	r.Mul(&zy, &xy)
	yEq := l.Equal(&r)

	return xEq|yEq == 1
}

func coords(p *edwards25519.Point) (x, y, z, t field.Elem) {
	return p.X, p.Y, p.Z, p.T
}

// Encode returns the canonical 32-byte encoding of z, per
// https://ristretto.group/formulas/encoding.html. Every group element has exactly one canonical
// encoding, regardless of which curve point currently represents it internally.
func (z *Point) Encode() [32]byte {
	x, y, zc, t := coords(&z.inner)

	var u1, tmp0, tmp1 field.Elem
	tmp0.Add(&zc, &y)
	tmp1.Sub(&zc, &y)
	u1.Mul(&tmp0, &tmp1)

	var u2 field.Elem
	u2.Mul(&x, &y)

	var u2Sq, invSqrt field.Elem
	u2Sq.Square(&u2)
	tmp1.Mul(&u1, &u2Sq)
	field.SqrtRatio(&invSqrt, field.One(), &tmp1)

	var den1, den2 field.Elem
	den1.Mul(&invSqrt, &u1)
	den2.Mul(&invSqrt, &u2)

	var zInv field.Elem
	zInv.Mul(&den1, &den2)
	zInv.Mul(&zInv, &t)

	var ix, iy field.Elem
	ix.Mul(&x, field.SqrtM1())
	iy.Mul(&y, field.SqrtM1())

	var enchantedDenominator field.Elem
	enchantedDenominator.Mul(&den1, field.InvSqrtAMinusD())

	var rotateElem field.Elem
	rotateElem.Mul(&t, &zInv)
	rotate := rotateElem.Sign()

	var outX, outY field.Elem
	outX.If(rotate, &iy, &x)
	outY.If(rotate, &ix, &y)

	var denInv field.Elem
	denInv.If(rotate, &enchantedDenominator, &den2)

	var xTimesZInv field.Elem
	isNeg := xTimesZInv.Mul(&outX, &zInv).Sign()
	var negY field.Elem
	negY.Neg(&outY)
	outY.If(isNeg, &negY, &outY)

	var s, zMinusY field.Elem
	zMinusY.Sub(&zc, &outY)
	s.Mul(&zMinusY, &denInv)
	s.Abs(&s)

	return s.Bytes()
}

// Decode decodes a canonical 32-byte encoding into z, rejecting every non-canonical encoding and
// every byte string that does not name a valid Ristretto255 element
// (https://ristretto.group/formulas/decoding.html). Returns nil (z left unspecified) on failure.
func (z *Point) Decode(buf []byte) *Point {
	if len(buf) != 32 {
		return nil
	}

	var s field.Elem
	s.SetBytes(buf)

	// Reject non-canonical encodings and any s with the sign bit set.
	sBytes := s.Bytes()
	canonical := true
	for i := range sBytes {
		if sBytes[i] != buf[i] {
			canonical = false
			break
		}
	}
	if !canonical || buf[0]&1 == 1 {
		return nil
	}

	var ss field.Elem
	ss.Square(&s)

	var u1, u2 field.Elem
	u1.Sub(field.One(), &ss)
	u2.Add(field.One(), &ss)

	var u2Sq field.Elem
	u2Sq.Square(&u2)

	// v = -(d * u1^2) - u2^2
	var v field.Elem
	v.Square(&u1)
	v.Mul(&v, field.D())
	v.Neg(&v)
	v.Sub(&v, &u2Sq)

	var tmp1, invSq field.Elem
	tmp1.Mul(&v, &u2Sq)
	wasSquare := field.SqrtRatio(&invSq, field.One(), &tmp1)

	var denX, denY field.Elem
	denX.Mul(&invSq, &u2)
	denY.Mul(&invSq, &denX)
	denY.Mul(&denY, &v)

	var x, y, t field.Elem
	x.Mul(field.Two(), &s)
	x.Mul(&x, &denX)
	x.Abs(&x)

	y.Mul(&u1, &denY)
	t.Mul(&x, &y)

	if wasSquare == 0 || t.Sign() == 1 || y.IsZero() == 1 {
		return nil
	}

	z.inner.X = x
	z.inner.Y = y
	z.inner.Z = *field.One()
	z.inner.T = t
	return z
}
