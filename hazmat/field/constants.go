package field

// Named field constants used by the curve and Ristretto255 layers. d and sqrt(-1) are fixed
// literals; everything else here is computed once, at package initialization, from those two
// with the field operations and the exponentiation primitives (Pow22523/SqrtRatio/Invert).

var (
	feZero = new(Elem)
	feOne  = new(Elem).One()
	feTwo  = new(Elem).Add(feOne, feOne)

	// feD is the twisted-Edwards curve parameter d = -121665/121666 mod p, per RFC 8032 §5.1.
	feD = mustSetBytes([32]byte{
		0xa3, 0x78, 0x59, 0x13, 0xca, 0x4d, 0xeb, 0x75,
		0xab, 0xd8, 0x41, 0x41, 0x4d, 0x0a, 0x70, 0x00,
		0x98, 0xe8, 0x79, 0x77, 0x79, 0x40, 0xc7, 0x8c,
		0x73, 0xfe, 0x6f, 0x2b, 0xee, 0x6c, 0x03, 0x52,
	})

	// feSqrtM1 is a square root of -1 mod p, i.e. 2^((p-1)/4).
	feSqrtM1 = &Elem{1718705420411056, 234908883556509,
		2233514472574048, 2117202627021982, 765476049583133}

	feK = new(Elem).Add(feD, feD) // k = 2d, used by the precomputed-point representation.

	feOneMinusDSq = new(Elem) // 1 - d^2
	feDMinusOneSq = new(Elem) // (d - 1)^2
	feInvSqrtAMD  = new(Elem) // 1/sqrt(a - d), a = -1
	feSqrtADMinus1 = new(Elem) // sqrt(a*d - 1)
)

func init() {
	var negOne, d2, dMinus1, aMinusD, adMinus1 Elem
	negOne.Neg(feOne)

	d2.Square(feD)
	feOneMinusDSq.Sub(feOne, &d2)

	dMinus1.Sub(feD, feOne)
	feDMinusOneSq.Square(&dMinus1)

	aMinusD.Sub(&negOne, feD)
	SqrtRatio(feInvSqrtAMD, feOne, &aMinusD)

	adMinus1.Sub(new(Elem).Neg(feD), feOne) // a*d - 1 = -d - 1
	SqrtRatio(feSqrtADMinus1, &adMinus1, feOne)
}

func mustSetBytes(b [32]byte) *Elem {
	return new(Elem).SetBytes(b[:])
}

// Zero returns a fresh field element equal to 0.
func Zero() *Elem { return new(Elem).Zero() }

// One returns a fresh field element equal to 1.
func One() *Elem { return new(Elem).One() }

// Two returns a fresh field element equal to 2.
func Two() *Elem { return new(Elem).Set(feTwo) }

// D returns the twisted-Edwards curve parameter d.
func D() *Elem { return new(Elem).Set(feD) }

// K returns 2*d.
func K() *Elem { return new(Elem).Set(feK) }

// SqrtM1 returns a square root of -1.
func SqrtM1() *Elem { return new(Elem).Set(feSqrtM1) }

// sqrtM1 is the unexported accessor used internally by SqrtRatio before init() has necessarily
// run for every other constant; feSqrtM1 itself is a plain var and is always ready.
func sqrtM1() *Elem { return feSqrtM1 }

// OneMinusDSq returns 1 - d^2.
func OneMinusDSq() *Elem { return new(Elem).Set(feOneMinusDSq) }

// DMinusOneSq returns (d - 1)^2.
func DMinusOneSq() *Elem { return new(Elem).Set(feDMinusOneSq) }

// InvSqrtAMinusD returns 1/sqrt(a - d) where a = -1.
func InvSqrtAMinusD() *Elem { return new(Elem).Set(feInvSqrtAMD) }

// SqrtADMinus1 returns sqrt(a*d - 1) where a = -1.
func SqrtADMinus1() *Elem { return new(Elem).Set(feSqrtADMinus1) }
