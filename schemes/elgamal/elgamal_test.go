package elgamal_test

import (
	"testing"

	"github.com/tos-network/gtos-sub001/hazmat/ristretto255"
	"github.com/tos-network/gtos-sub001/hazmat/scalar"
	"github.com/tos-network/gtos-sub001/schemes/elgamal"
)

func fixedOpening(b byte) *elgamal.Opening {
	var wide [64]byte
	wide[0] = b
	var o elgamal.Opening
	o.SetUniformBytes(wide[:])
	return &o
}

func TestGenerateKeypairRoundTrip(t *testing.T) {
	sk, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	if pk == nil {
		t.Fatal("GenerateKeypair returned a nil public key")
	}
	derived := elgamal.PublicKeyFromPrivate(sk)
	if derived.Bytes() != pk.Bytes() {
		t.Error("PublicKeyFromPrivate(sk) must match the public key returned by GenerateKeypair")
	}
}

func TestEncryptDecryptToPoint(t *testing.T) {
	sk, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	const amount = 1000
	ct, _, err := elgamal.Encrypt(pk, amount)
	if err != nil {
		t.Fatal(err)
	}

	point, err := elgamal.DecryptToPoint(sk, ct)
	if err != nil {
		t.Fatal(err)
	}

	var amtBytes [32]byte
	amtBytes[0] = amount & 0xff
	amtBytes[1] = amount >> 8
	want := new(ristretto255.Point).ScalarMul(&amtBytes, ristretto255.Base())
	if !point.Equal(want) {
		t.Error("DecryptToPoint(sk, Encrypt(pk, amount)) != amount*G")
	}
}

func TestCiphertextBytesRoundTrip(t *testing.T) {
	_, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	ct := elgamal.EncryptWithOpening(pk, 42, fixedOpening(9))
	enc := ct.Bytes()

	var decoded elgamal.Ciphertext
	if decoded.SetBytes(enc[:]) == nil {
		t.Fatal("SetBytes failed to decode a valid ciphertext encoding")
	}
	if decoded.Bytes() != enc {
		t.Error("decode(encode(ct)) != ct")
	}
}

func TestHomomorphicAdd(t *testing.T) {
	_, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	r1, r2 := fixedOpening(1), fixedOpening(2)
	ct1 := elgamal.EncryptWithOpening(pk, 10, r1)
	ct2 := elgamal.EncryptWithOpening(pk, 20, r2)

	var sum elgamal.Ciphertext
	sum.Add(ct1, ct2)

	var rSum scalar.Scalar
	rSum.Add(r1, r2)
	want := elgamal.EncryptWithOpening(pk, 30, &rSum)

	if sum.Bytes() != want.Bytes() {
		t.Error("Enc(10) + Enc(20) must equal Enc(30) under the summed opening")
	}
}

func TestAddAmountLeavesHandleUnchanged(t *testing.T) {
	_, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	ct := elgamal.EncryptWithOpening(pk, 5, fixedOpening(3))

	var bumped elgamal.Ciphertext
	bumped.AddAmount(ct, 7)

	if bumped.Handle.Encode() != ct.Handle.Encode() {
		t.Error("AddAmount must leave the handle unchanged")
	}

	var back elgamal.Ciphertext
	back.SubAmount(&bumped, 7)
	if back.Bytes() != ct.Bytes() {
		t.Error("SubAmount must invert AddAmount")
	}
}

func TestMulScalarScalesBothComponents(t *testing.T) {
	_, pk, err := elgamal.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	opening := fixedOpening(4)
	ct := elgamal.EncryptWithOpening(pk, 6, opening)

	var two scalar.Scalar
	two.Set(new(scalar.Scalar).One())
	two.Add(&two, &two)

	var scaled elgamal.Ciphertext
	scaled.MulScalar(ct, &two)

	var rScaled scalar.Scalar
	rScaled.Multiply(opening, &two)
	want := elgamal.EncryptWithOpening(pk, 12, &rScaled)

	if scaled.Bytes() != want.Bytes() {
		t.Error("MulScalar(ct, 2) must equal re-encrypting 2*amount under 2*opening")
	}
}

func TestDecryptToPointRejectsZeroKey(t *testing.T) {
	var zero scalar.Scalar
	var ct elgamal.Ciphertext
	ct.SetZero()
	if _, err := elgamal.DecryptToPoint(&zero, &ct); err == nil {
		t.Error("DecryptToPoint should reject a zero private key")
	}
}

func TestPublicKeyFromPrivateRejectsZero(t *testing.T) {
	var zero scalar.Scalar
	if elgamal.PublicKeyFromPrivate(&zero) != nil {
		t.Error("PublicKeyFromPrivate(0) should be nil")
	}
}
