package pqc

import (
	"errors"
	"testing"
)

func TestUnimplementedKEMReturnsErrNotImplemented(t *testing.T) {
	if _, _, err := MLKEM768.Encapsulate(make([]byte, MLKEM768.PublicKeySize())); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("got %v, want ErrNotImplemented", err)
	}
	if _, _, err := MLKEM768.Keygen(); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("got %v, want ErrNotImplemented", err)
	}
}

func TestUnimplementedSignerReturnsErrNotImplemented(t *testing.T) {
	if _, err := MLDSA65.Sign(nil, nil, nil); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("got %v, want ErrNotImplemented", err)
	}
	if MLDSA65.Verify(nil, nil, nil, nil) {
		t.Fatal("an unimplemented Signer must never report a signature as valid")
	}
}

func TestRegisteredSizesAreStandardsCompliant(t *testing.T) {
	if MLKEM768.SharedSecretSize() != 32 {
		t.Fatalf("ML-KEM-768 shared secret size = %d, want 32", MLKEM768.SharedSecretSize())
	}
	if MLDSA44.Name() != "ML-DSA-44" {
		t.Fatalf("got %q, want ML-DSA-44", MLDSA44.Name())
	}
}
