package aead

import (
	"bytes"
	"testing"
)

func TestAESGCMNISTTestCase1(t *testing.T) {
	a, err := NewAESGCM(aesGCMKATKey)
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	got := a.Seal(nil, aesGCMKATNonce, nil, nil)
	if !bytes.Equal(got, aesGCMKATTag) {
		t.Fatalf("got %x, want %x", got, aesGCMKATTag)
	}
}

func TestAESGCMRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	a, err := NewAESGCM(key)
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	nonce := make([]byte, a.NonceSize())
	plaintext := []byte("attack at dawn")
	aad := []byte("header")

	sealed := a.Seal(nil, nonce, plaintext, aad)
	opened, err := a.Open(nil, nonce, sealed, aad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("got %q, want %q", opened, plaintext)
	}
}

func TestAESGCMReusableAcrossNonces(t *testing.T) {
	key := make([]byte, 16)
	a, err := NewAESGCM(key)
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	n1 := make([]byte, a.NonceSize())
	n2 := make([]byte, a.NonceSize())
	n2[0] = 1

	c1 := a.Seal(nil, n1, []byte("first message"), nil)
	c2 := a.Seal(nil, n2, []byte("second message"), nil)
	if bytes.Equal(c1, c2) {
		t.Fatal("distinct nonces on the same instance must not produce identical ciphertexts")
	}

	p1, err := a.Open(nil, n1, c1, nil)
	if err != nil || string(p1) != "first message" {
		t.Fatalf("Open(n1): %v, %q", err, p1)
	}
	p2, err := a.Open(nil, n2, c2, nil)
	if err != nil || string(p2) != "second message" {
		t.Fatalf("Open(n2): %v, %q", err, p2)
	}
}

func TestAESGCMTamperedTagFails(t *testing.T) {
	key := make([]byte, 16)
	a, err := NewAESGCM(key)
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	nonce := make([]byte, a.NonceSize())
	sealed := a.Seal(nil, nonce, []byte("message"), nil)
	sealed[len(sealed)-1] ^= 0xff

	if _, err := a.Open(nil, nonce, sealed, nil); err != ErrAuthFailed {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestAESGCMWithNonceSize(t *testing.T) {
	key := make([]byte, 16)
	a, err := NewAESGCMWithNonceSize(key, 16)
	if err != nil {
		t.Fatalf("NewAESGCMWithNonceSize: %v", err)
	}
	if a.NonceSize() != 16 {
		t.Fatalf("NonceSize() = %d, want 16", a.NonceSize())
	}
	testAEADRoundTrip(t, "gcm-16-byte-nonce", a)
}

func TestAESGCMWithTagSize(t *testing.T) {
	key := make([]byte, 16)
	a, err := NewAESGCMWithTagSize(key, 12)
	if err != nil {
		t.Fatalf("NewAESGCMWithTagSize: %v", err)
	}
	if a.Overhead() != 12 {
		t.Fatalf("Overhead() = %d, want 12", a.Overhead())
	}
	testAEADRoundTrip(t, "gcm-12-byte-tag", a)
}

func testAEADRoundTrip(t *testing.T, name string, a AEAD) {
	t.Run(name, func(t *testing.T) {
		nonce := make([]byte, a.NonceSize())
		for i := range nonce {
			nonce[i] = byte(i)
		}
		plaintext := []byte("the quick brown fox jumps over the lazy dog")
		aad := []byte("associated data")

		sealed := a.Seal(nil, nonce, plaintext, aad)
		if len(sealed) != len(plaintext)+a.Overhead() {
			t.Fatalf("sealed length %d, want %d", len(sealed), len(plaintext)+a.Overhead())
		}
		opened, err := a.Open(nil, nonce, sealed, aad)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(opened, plaintext) {
			t.Fatalf("got %q, want %q", opened, plaintext)
		}

		tampered := append([]byte(nil), sealed...)
		tampered[0] ^= 0x01
		if _, err := a.Open(nil, nonce, tampered, aad); err != ErrAuthFailed {
			t.Fatalf("tampered ciphertext: got %v, want ErrAuthFailed", err)
		}

		if _, err := a.Open(nil, nonce, sealed, []byte("wrong aad")); err != ErrAuthFailed {
			t.Fatalf("wrong AAD: got %v, want ErrAuthFailed", err)
		}
	})
}

func testAEADEmptyInputs(t *testing.T, name string, a AEAD) {
	t.Run(name, func(t *testing.T) {
		nonce := make([]byte, a.NonceSize())
		sealed := a.Seal(nil, nonce, nil, nil)
		if len(sealed) != a.Overhead() {
			t.Fatalf("sealed length %d, want %d (tag only)", len(sealed), a.Overhead())
		}
		opened, err := a.Open(nil, nonce, sealed, nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if len(opened) != 0 {
			t.Fatalf("got %d bytes of plaintext, want 0", len(opened))
		}
	})
}

func TestHashAEADRoundTrip(t *testing.T) {
	a := NewHashAEAD([]byte("a test key for hash-aead"))
	testAEADRoundTrip(t, "hash-aead", a)
	testAEADEmptyInputs(t, "hash-aead", a)
}

func TestKMACAEADRoundTrip(t *testing.T) {
	a := NewKMACAEAD([]byte("a test key for kmac-aead"))
	testAEADRoundTrip(t, "kmac-aead", a)
	testAEADEmptyInputs(t, "kmac-aead", a)
}

func TestKMACAEADLongPlaintext(t *testing.T) {
	a := NewKMACAEAD([]byte("another kmac-aead key"))
	nonce := make([]byte, a.NonceSize())
	plaintext := bytes.Repeat([]byte("0123456789abcdef"), 20) // spans many 8-byte duplex blocks, no partial tail
	aad := bytes.Repeat([]byte("x"), 37)                      // spans full chunks plus a partial tail

	sealed := a.Seal(nil, nonce, plaintext, aad)
	opened, err := a.Open(nil, nonce, sealed, aad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatal("long plaintext/AAD round trip mismatch")
	}
}

func TestHashAEADShortCiphertextRejected(t *testing.T) {
	a := NewHashAEAD([]byte("short ciphertext test key"))
	nonce := make([]byte, a.NonceSize())
	if _, err := a.Open(nil, nonce, []byte{0x01}, nil); err != ErrAuthFailed {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

// aeadStream is what every construction in this package implements: the
// one-shot capability plus both halves of the incremental API.
type aeadStream interface {
	AEAD
	Encryptor
	Decryptor
}

// testAEADStreamMatchesOneShot drives the incremental API by hand, in
// deliberately uneven chunks (including a zero-length chunk), and
// checks that it produces exactly the same ciphertext/tag and the same
// recovered plaintext as Seal/Open on the same instance.
func testAEADStreamMatchesOneShot(t *testing.T, name string, a aeadStream) {
	t.Run(name, func(t *testing.T) {
		nonce := make([]byte, a.NonceSize())
		for i := range nonce {
			nonce[i] = byte(i + 1)
		}
		aad := []byte("streamed associated data, long enough to span a chunk boundary")
		plaintext := []byte("the quick brown fox jumps over the lazy dog, several times over, to span many chunks of varying size")
		chunkSizes := []int{1, 0, 2, 5, 7, 16, 3, 11}

		oneShot := a.Seal(nil, nonce, plaintext, aad)

		a.EncInit(nonce, aad)
		var streamed []byte
		p := plaintext
		for _, n := range chunkSizes {
			if n > len(p) {
				n = len(p)
			}
			streamed = a.EncUpdate(streamed, p[:n])
			p = p[n:]
		}
		streamed = a.EncUpdate(streamed, p)
		streamed = a.EncFinal(streamed)

		if !bytes.Equal(streamed, oneShot) {
			t.Fatalf("streamed encryption diverged from Seal:\ngot  %x\nwant %x", streamed, oneShot)
		}

		oneShotOpen, err := a.Open(nil, nonce, oneShot, aad)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}

		body := streamed[:len(streamed)-a.Overhead()]
		tag := streamed[len(streamed)-a.Overhead():]

		a.DecInit(nonce, aad)
		var streamedOpen []byte
		c := body
		for _, n := range chunkSizes {
			if n > len(c) {
				n = len(c)
			}
			streamedOpen = a.DecUpdate(streamedOpen, c[:n])
			c = c[n:]
		}
		streamedOpen = a.DecUpdate(streamedOpen, c)
		streamedOpen, err = a.DecFinal(streamedOpen, tag)
		if err != nil {
			t.Fatalf("DecFinal: %v", err)
		}

		if !bytes.Equal(streamedOpen, plaintext) {
			t.Fatalf("streamed decryption diverged from plaintext:\ngot  %q\nwant %q", streamedOpen, plaintext)
		}
		if !bytes.Equal(streamedOpen, oneShotOpen) {
			t.Fatal("streamed and one-shot decryption must recover identical plaintext")
		}
	})
}

func TestAESGCMStreamMatchesOneShot(t *testing.T) {
	a, err := NewAESGCM(make([]byte, 32))
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	testAEADStreamMatchesOneShot(t, "aesgcm", a)
}

func TestHashAEADStreamMatchesOneShot(t *testing.T) {
	a := NewHashAEAD([]byte("a streaming hash-aead key"))
	testAEADStreamMatchesOneShot(t, "hashaead", a)
}

func TestKMACAEADStreamMatchesOneShot(t *testing.T) {
	a := NewKMACAEAD([]byte("a streaming kmac-aead key"))
	testAEADStreamMatchesOneShot(t, "kmacaead", a)
}

// testAEADZeroThenEncInitPanics checks that Zero renders an instance
// unusable: EncInit after Zero must panic, since Zero resets phase to
// fresh and only keyed/finalized may start a new session.
func testAEADZeroThenEncInitPanics(t *testing.T, name string, a aeadStream) {
	t.Run(name, func(t *testing.T) {
		a.Zero()
		defer func() {
			if recover() == nil {
				t.Fatal("EncInit after Zero must panic")
			}
		}()
		a.EncInit(make([]byte, a.NonceSize()), nil)
	})
}

func TestAESGCMZero(t *testing.T) {
	a, err := NewAESGCM(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	testAEADZeroThenEncInitPanics(t, "aesgcm", a)
}

func TestHashAEADZero(t *testing.T) {
	a := NewHashAEAD([]byte("a zero test key for hash-aead"))
	testAEADZeroThenEncInitPanics(t, "hashaead", a)
}

func TestKMACAEADZero(t *testing.T) {
	a := NewKMACAEAD([]byte("a zero test key for kmac-aead"))
	testAEADZeroThenEncInitPanics(t, "kmacaead", a)
}

func TestEncInitBeforeFinalPanics(t *testing.T) {
	a, err := NewAESGCM(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewAESGCM: %v", err)
	}
	nonce := make([]byte, a.NonceSize())
	a.EncInit(nonce, nil)
	a.EncUpdate(nil, []byte("partial"))

	defer func() {
		if recover() == nil {
			t.Fatal("EncInit called mid-session (before EncFinal) must panic")
		}
	}()
	a.EncInit(nonce, nil)
}
