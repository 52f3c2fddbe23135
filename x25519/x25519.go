// Package x25519 wraps golang.org/x/crypto/curve25519's scalar
// multiplication behind a Keygen/SharedSecret capability,
// self-test-gated exactly like every other primitive in this module
// (internal/selftest). The curve's own field arithmetic is
// mathematical internals this package deliberately leaves out of
// scope — it is a narrow collaborator around an external curve
// implementation, grounded on
// original_source/curve25519/src/x25519.c's own shape
// (lc_x25519_keypair/lc_x25519_ss, each gated by its own KAT before
// the real operation runs).
package x25519

import (
	"golang.org/x/crypto/curve25519"

	"github.com/kzall0c/leancrypto/drbg"
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

const (
	SecretKeySize    = 32
	PublicKeySize    = 32
	SharedSecretSize = 32
)

// PrivateKey and PublicKey are plain byte arrays rather than opaque
// structs: x25519.c's own lc_x25519_sk/lc_x25519_pk are nothing more
// than fixed-size byte buffers, and nothing in this package's
// operations needs more structure than that.
type PrivateKey [SecretKeySize]byte
type PublicKey [PublicKeySize]byte
type SharedSecret [SharedSecretSize]byte

// Keygen draws a fresh secret key from rng (fast-key-erasure output,
// per the DRBG family in package drbg) and derives the matching public
// key via scalar multiplication against the curve's base point,
// mirroring x25519.c's lc_x25519_keypair: the RNG fills the secret key
// directly, with no hashing or clamping step of its own, since
// X25519's own scalar-decoding already clamps the low/high bits.
func Keygen(rng drbg.RNG) (PublicKey, PrivateKey, error) {
	if err := selftest.Run(selftest.X25519Keygen, func() bool {
		pk, err := keygenNoCheck(x25519KATSecretKey)
		return err == nil && pk == x25519KATPublicKey
	}); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}

	var sk PrivateKey
	rng.Generate(sk[:], nil)
	pk, err := keygenNoCheck(sk)
	if err != nil {
		sidechannel.Wipe(sk[:])
		return PublicKey{}, PrivateKey{}, err
	}
	return pk, sk, nil
}

func keygenNoCheck(sk PrivateKey) (PublicKey, error) {
	pkBytes, err := curve25519.X25519(sk[:], curve25519.Basepoint)
	if err != nil {
		return PublicKey{}, err
	}
	var pk PublicKey
	copy(pk[:], pkBytes)
	return pk, nil
}

// ComputeSharedSecret computes the X25519 Diffie-Hellman shared secret
// between sk and the peer's pk, mirroring x25519.c's lc_x25519_ss.
func ComputeSharedSecret(sk PrivateKey, pk PublicKey) (SharedSecret, error) {
	if err := selftest.Run(selftest.X25519SharedSecret, func() bool {
		ss, err := sharedSecretNoCheck(x25519KATScalar, x25519KATBasePoint)
		return err == nil && ss == x25519KATSharedSecret
	}); err != nil {
		return SharedSecret{}, err
	}
	return sharedSecretNoCheck(sk, pk)
}

func sharedSecretNoCheck(sk PrivateKey, pk PublicKey) (SharedSecret, error) {
	ssBytes, err := curve25519.X25519(sk[:], pk[:])
	if err != nil {
		return SharedSecret{}, err
	}
	var ss SharedSecret
	copy(ss[:], ssBytes)
	return ss, nil
}

// x25519KATSecretKey/PublicKey is libsodium's ed25519_convert.exp
// vector, transcribed verbatim from x25519.c's own lc_x25519_keypair_selftest.
var (
	x25519KATSecretKey = PrivateKey{
		0x80, 0x52, 0x03, 0x03, 0x76, 0xd4, 0x71, 0x12,
		0xbe, 0x7f, 0x73, 0xed, 0x7a, 0x01, 0x92, 0x93,
		0xdd, 0x12, 0xad, 0x91, 0x0b, 0x65, 0x44, 0x55,
		0x79, 0x8b, 0x46, 0x67, 0xd7, 0x3d, 0xe1, 0x66,
	}
	x25519KATPublicKey = PublicKey{
		0xf1, 0x81, 0x4f, 0x0e, 0x8f, 0xf1, 0x04, 0x3d,
		0x8a, 0x44, 0xd2, 0x5b, 0xab, 0xff, 0x3c, 0xed,
		0xca, 0xe6, 0xc2, 0x2c, 0x3e, 0xda, 0xa4, 0x8f,
		0x85, 0x7a, 0xe7, 0x0d, 0xe2, 0xba, 0xae, 0x50,
	}
)

// x25519KATScalar/BasePoint/SharedSecret is libsodium's scalarmult7.c
// vector (variable p1 and out1), transcribed verbatim from x25519.c's
// own lc_x25519_ss_selftest.
var (
	x25519KATScalar = PrivateKey{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	x25519KATBasePoint = PublicKey{
		0x72, 0x20, 0xf0, 0x09, 0x89, 0x30, 0xa7, 0x54,
		0x74, 0x8b, 0x7d, 0xdc, 0xb4, 0x3e, 0xf7, 0x5a,
		0x0d, 0xbf, 0x3a, 0x0d, 0x26, 0x38, 0x1a, 0xf4,
		0xeb, 0xa4, 0xa9, 0x8e, 0xaa, 0x9b, 0x4e, 0xea,
	}
	x25519KATSharedSecret = SharedSecret{
		0x03, 0xad, 0x40, 0x80, 0xc2, 0x91, 0x0b, 0x5e,
		0x0b, 0xe2, 0x2f, 0x6c, 0x5f, 0x7c, 0x7e, 0x08,
		0xe6, 0x42, 0x46, 0x2e, 0xf0, 0xec, 0x93, 0xa6,
		0x54, 0xc5, 0xc3, 0x4d, 0xc9, 0x5b, 0x55, 0x6d,
	}
)
