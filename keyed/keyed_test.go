package keyed

import (
	"bytes"
	"testing"

	lchash "github.com/kzall0c/leancrypto/hash"
)

func TestHMACKAT(t *testing.T) {
	h := NewHMAC(func() lchash.Hash { return lchash.NewSHA3_256() }, hmacKATKey)
	h.Write(hmacKATMsg)
	got := h.Sum(nil)
	if !bytes.Equal(got, hmacKATTag) {
		t.Fatalf("got %x, want %x", got, hmacKATTag)
	}
}

func TestHMACLongKeyReduction(t *testing.T) {
	longKey := kmacKeyRamp(200)
	h := NewHMAC(func() lchash.Hash { return lchash.NewSHA3_256() }, longKey)
	h.Write([]byte("message under a long key"))
	if len(h.Sum(nil)) != 32 {
		t.Fatal("HMAC-SHA3-256 digest must be 32 bytes regardless of key length")
	}
}

func TestHMACResetMatchesFreshInstance(t *testing.T) {
	newHash := func() lchash.Hash { return lchash.NewSHA3_256() }
	msg := []byte("some message")

	h := NewHMAC(newHash, hmacKATKey)
	h.Write([]byte("garbage that will be discarded"))
	h.Reset()
	h.Write(msg)
	got := h.Sum(nil)

	fresh := NewHMAC(newHash, hmacKATKey)
	fresh.Write(msg)
	want := fresh.Sum(nil)

	if !bytes.Equal(got, want) {
		t.Fatalf("Reset did not reproduce a fresh instance's digest: %x != %x", got, want)
	}
}

func TestKMAC128Sample1(t *testing.T) {
	m := NewKMAC128(kmacKATKey, nil, 32)
	m.Write(kmacKATMsg)
	got := m.Sum(nil)
	if !bytes.Equal(got, kmac128KATTag) {
		t.Fatalf("got %x, want %x", got, kmac128KATTag)
	}
}

func TestKMACXOFSetDigestSize(t *testing.T) {
	m := NewKMAC128(kmacKATKey, nil, 0)
	m.Write(kmacKATMsg)
	m.SetDigestSize(64)
	out := m.Sum(nil)
	if len(out) != 64 {
		t.Fatalf("XOF digest length = %d, want 64", len(out))
	}
}

func TestKMACFixedOutputRejectsSetDigestSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling SetDigestSize on a fixed-output KMAC")
		}
	}()
	m := NewKMAC128(kmacKATKey, nil, 32)
	m.SetDigestSize(16)
}

func TestKMAC256Constructs(t *testing.T) {
	m := NewKMAC256(kmacKATKey, []byte("custom"), 32)
	m.Write(kmacKATMsg)
	if len(m.Sum(nil)) != 32 {
		t.Fatal("KMAC256 digest must honor the requested digestBytes")
	}
}
