package sym

import (
	"bytes"
	"testing"

	"github.com/kzall0c/leancrypto/internal/selftest"
)

func TestAESFIPS197WorkedExample(t *testing.T) {
	a, err := NewAES(aesKATKey)
	if err != nil {
		t.Fatalf("NewAES: %v", err)
	}
	out := make([]byte, 16)
	a.Encrypt(out, aesKATPlaintext)
	if !bytes.Equal(out, aesKATCiphertext) {
		t.Fatalf("got %x, want %x", out, aesKATCiphertext)
	}
}

func TestAESDecryptRoundTrip(t *testing.T) {
	a, err := NewAES(aesKATKey)
	if err != nil {
		t.Fatalf("NewAES: %v", err)
	}
	out := make([]byte, 16)
	a.Decrypt(out, aesKATCiphertext)
	if !bytes.Equal(out, aesKATPlaintext) {
		t.Fatalf("got %x, want %x", out, aesKATPlaintext)
	}
}

func TestAESKeySizes(t *testing.T) {
	for _, n := range []int{16, 24, 32} {
		key := make([]byte, n)
		if _, err := NewAES(key); err != nil {
			t.Fatalf("NewAES with %d-byte key: %v", n, err)
		}
	}
}

func TestAESRejectsBadKeySize(t *testing.T) {
	if _, err := NewAES(make([]byte, 7)); err == nil {
		t.Fatal("expected an error for an invalid AES key length")
	}
}

func TestAESZeroWipesKeyAndBlock(t *testing.T) {
	a, err := NewAES(aesKATKey)
	if err != nil {
		t.Fatalf("NewAES: %v", err)
	}
	a.Zero()
	for _, b := range a.key {
		if b != 0 {
			t.Fatal("Zero must wipe the retained key bytes")
		}
	}
	if a.block != nil {
		t.Fatal("Zero must drop the block cipher")
	}
}

func TestAESSelfTestIDDistinctFromAESGCM(t *testing.T) {
	if selftest.AES == selftest.AESGCM {
		t.Fatal("raw AES and AES-GCM must not share a self-test slot")
	}
}

func TestAESBlockExposesCipherBlock(t *testing.T) {
	a, err := NewAES(aesKATKey)
	if err != nil {
		t.Fatalf("NewAES: %v", err)
	}
	if a.Block() == nil {
		t.Fatal("Block() must return a non-nil cipher.Block")
	}
	if a.BlockSize() != 16 {
		t.Fatalf("BlockSize() = %d, want 16", a.BlockSize())
	}
}
