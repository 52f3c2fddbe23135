// Package ed448 implements Ed448-Goldilocks EdDSA (RFC 8032 §5.2),
// grounded on _examples/original_source/curve448/api/lc_ed448.h's API
// shape: 57-byte secret and public keys, a 114-byte signature, and a
// prehashed ph variant alongside pure sign/verify. The header only
// describes the API surface (lc_ed448_keypair/sign/verify and their ph
// counterparts); no curve arithmetic source exists anywhere in the
// example pack, so the field and point arithmetic below is this
// module's own from-scratch construction against RFC 8032's published
// curve parameters, not a port of an existing implementation.
package ed448

import "math/big"

// p is the Goldilocks prime 2^448 - 2^224 - 1.
var fieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 448)
	t := new(big.Int).Lsh(big.NewInt(1), 224)
	p.Sub(p, t)
	p.Sub(p, big.NewInt(1))
	return p
}()

// curveD is Ed448's Edwards curve coefficient, d = -39081 mod p.
var curveD = new(big.Int).Mod(big.NewInt(-39081), fieldPrime)

func fieldAdd(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), fieldPrime)
}

func fieldSub(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), fieldPrime)
}

func fieldMul(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), fieldPrime)
}

func fieldInv(a *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, fieldPrime)
}

// fieldSqrt returns a square root of a mod p, relying on p ≡ 3 (mod 4)
// so that a^((p+1)/4) is always a valid candidate; the caller must
// check the result squares back to a, since not every field element
// has a square root.
func fieldSqrt(a *big.Int) *big.Int {
	exp := new(big.Int).Add(fieldPrime, big.NewInt(1))
	exp.Rsh(exp, 2)
	return new(big.Int).Exp(a, exp, fieldPrime)
}
