package ed448

import (
	"bytes"
	"testing"

	"github.com/kzall0c/leancrypto/drbg"
)

func TestExpandKAT(t *testing.T) {
	_, pub := expand(ed448KATSeed)
	if pub != ed448KATPublicKey {
		t.Fatalf("got %x, want %x", pub, ed448KATPublicKey)
	}
}

func TestSignVerifyKAT(t *testing.T) {
	sig, err := signNoCheck(ed448KATSeed, ed448KATMessage, nil, 0)
	if err != nil {
		t.Fatalf("signNoCheck: %v", err)
	}
	if sig != ed448KATSignature {
		t.Fatalf("got %x, want %x", sig, ed448KATSignature)
	}
	if !verifyNoCheck(ed448KATPublicKey, ed448KATMessage, nil, ed448KATSignature, 0) {
		t.Fatal("verifyNoCheck rejected the known-answer signature")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	if verifyNoCheck(ed448KATPublicKey, append(append([]byte{}, ed448KATMessage...), 'x'), nil, ed448KATSignature, 0) {
		t.Fatal("verify accepted a signature over a different message")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	tampered := ed448KATSignature
	tampered[0] ^= 0x01
	if verifyNoCheck(ed448KATPublicKey, ed448KATMessage, nil, tampered, 0) {
		t.Fatal("verify accepted a tampered signature")
	}
}

func TestKeygenSignVerifyRoundTrip(t *testing.T) {
	rng := drbg.NewChaCha20DRNG()
	rng.Reseed([]byte("ed448 round trip test seed"), nil)

	pub, sk, err := Keygen(rng)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	msg := []byte("a message signed end to end")
	sig, err := Sign(sk, msg, nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(pub, msg, nil, sig) {
		t.Fatal("Verify rejected a signature produced by Sign over the matching Keygen key pair")
	}
}

func TestSignVerifyWithContext(t *testing.T) {
	rng := drbg.NewChaCha20DRNG()
	rng.Reseed([]byte("ed448 context test seed"), nil)
	pub, sk, err := Keygen(rng)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	msg := []byte("context-bound message")
	ctxA := []byte("context A")
	ctxB := []byte("context B")

	sig, err := Sign(sk, msg, ctxA)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(pub, msg, ctxA, sig) {
		t.Fatal("Verify rejected a signature checked with its own signing context")
	}
	if Verify(pub, msg, ctxB, sig) {
		t.Fatal("Verify accepted a signature checked against a different context")
	}
}

func TestSignPHVerifyPHRoundTrip(t *testing.T) {
	rng := drbg.NewChaCha20DRNG()
	rng.Reseed([]byte("ed448ph round trip test seed"), nil)
	pub, sk, err := Keygen(rng)
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	prehashed := bytes.Repeat([]byte{0xab}, 64) // stand-in SHA-512 digest
	sig, err := SignPH(sk, prehashed, nil)
	if err != nil {
		t.Fatalf("SignPH: %v", err)
	}
	if !VerifyPH(pub, prehashed, nil, sig) {
		t.Fatal("VerifyPH rejected a signature produced by SignPH")
	}
	if Verify(pub, prehashed, nil, sig) {
		t.Fatal("a prehashed signature must not verify under the pure (phflag=0) path")
	}
}

func TestDecodeEncodePointRoundTrip(t *testing.T) {
	p, ok := decodePoint(encodePoint(basePoint))
	if !ok {
		t.Fatal("decodePoint rejected the base point's own encoding")
	}
	if p.x.Cmp(basePoint.x) != 0 || p.y.Cmp(basePoint.y) != 0 {
		t.Fatal("decoded base point does not match the original")
	}
}

func TestScalarMultByGroupOrderIsIdentity(t *testing.T) {
	p := scalarMult(groupOrder, basePoint)
	if p.x.Cmp(identity.x) != 0 || p.y.Cmp(identity.y) != 0 {
		t.Fatal("groupOrder * B must be the identity point")
	}
}
