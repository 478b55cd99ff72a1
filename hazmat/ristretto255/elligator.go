package ristretto255

import "github.com/tos-network/gtos-sub001/hazmat/field"

// MapToCurve implements the Elligator2 map from 32 uniformly random bytes to a Ristretto255
// group element. Unlike HashToCurve, this does not behave as a random oracle (distinct inputs
// can map to related outputs); it is the internal building block HashToCurve composes twice.
func MapToCurve(buf []byte) *Point {
	var r0 field.Elem
	r0.SetBytes(buf)

	var r field.Elem
	r.Square(&r0)
	r.Mul(field.SqrtM1(), &r)

	var u field.Elem
	u.Add(&r, field.One())
	u.Mul(&u, field.OneMinusDSq())

	var negOne, rTimesD, v, rPlusD field.Elem
	negOne.Neg(field.One())
	rTimesD.Mul(&r, field.D())
	v.Sub(&negOne, &rTimesD)
	rPlusD.Add(&r, field.D())
	v.Mul(&v, &rPlusD)

	var s field.Elem
	wasSquare := field.SqrtRatio(&s, &u, &v)

	var sPrime field.Elem
	sPrime.Mul(&s, &r0)
	sPrime.NegAbs(&sPrime)

	var c field.Elem
	s.If(wasSquare, &s, &sPrime)
	c.If(wasSquare, &negOne, &r)

	var n, rMinus1 field.Elem
	rMinus1.Sub(&r, field.One())
	n.Mul(&c, &rMinus1)
	n.Mul(&n, field.DMinusOneSq())
	n.Sub(&n, &v)

	var s2, w0, w1, w2, w3 field.Elem
	s2.Square(&s)
	w0.Mul(&s, &v)
	w0.Add(&w0, &w0)
	w1.Mul(&n, field.SqrtADMinus1())
	w2.Sub(field.One(), &s2)
	w3.Add(field.One(), &s2)

	p := new(Point)
	p.inner.X.Mul(&w0, &w3)
	p.inner.Y.Mul(&w2, &w1)
	p.inner.Z.Mul(&w1, &w3)
	p.inner.T.Mul(&w0, &w2)
	return p
}

// HashToCurve maps 64 uniformly random bytes (e.g. a hash digest) to a Ristretto255 group
// element, behaving as a random oracle: distinct inputs yield independent-looking points, and no
// structural relationship between inputs can be exploited in the outputs.
func HashToCurve(s []byte) *Point {
	p1 := MapToCurve(s[0:32])
	p2 := MapToCurve(s[32:64])
	return new(Point).Add(p1, p2)
}
