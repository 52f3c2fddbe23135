package x25519

import (
	"bytes"
	"testing"

	"github.com/kzall0c/leancrypto/drbg"
)

func TestKeygenKAT(t *testing.T) {
	pk, err := keygenNoCheck(x25519KATSecretKey)
	if err != nil {
		t.Fatalf("keygenNoCheck: %v", err)
	}
	if pk != x25519KATPublicKey {
		t.Fatalf("got %x, want %x", pk, x25519KATPublicKey)
	}
}

func TestSharedSecretKAT(t *testing.T) {
	ss, err := sharedSecretNoCheck(x25519KATScalar, x25519KATBasePoint)
	if err != nil {
		t.Fatalf("sharedSecretNoCheck: %v", err)
	}
	if ss != x25519KATSharedSecret {
		t.Fatalf("got %x, want %x", ss, x25519KATSharedSecret)
	}
}

func TestKeygenAndSharedSecretAgree(t *testing.T) {
	rng := drbg.NewChaCha20DRNG()
	rng.Reseed([]byte("x25519 keygen test seed"), nil)

	alicePub, aliceSec, err := Keygen(rng)
	if err != nil {
		t.Fatalf("Keygen (alice): %v", err)
	}
	bobPub, bobSec, err := Keygen(rng)
	if err != nil {
		t.Fatalf("Keygen (bob): %v", err)
	}
	if alicePub == bobPub {
		t.Fatal("two independent Keygen calls produced the same public key")
	}

	aliceShared, err := ComputeSharedSecret(aliceSec, bobPub)
	if err != nil {
		t.Fatalf("ComputeSharedSecret (alice): %v", err)
	}
	bobShared, err := ComputeSharedSecret(bobSec, alicePub)
	if err != nil {
		t.Fatalf("ComputeSharedSecret (bob): %v", err)
	}
	if !bytes.Equal(aliceShared[:], bobShared[:]) {
		t.Fatalf("shared secrets disagree: %x != %x", aliceShared, bobShared)
	}
}
