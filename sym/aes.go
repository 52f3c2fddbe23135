package sym

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

// AES wraps crypto/aes.NewCipher behind the Sym capability, gated by
// a self-test run before any block cipher is handed to a higher
// construction (aead.AESGCM, drbg's fast-key-erasure block-cipher
// path).
type AES struct {
	block cipher.Block
	key   []byte
}

func newAESNoCheck(key []byte) (*AES, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &AES{block: block, key: append([]byte(nil), key...)}, nil
}

// NewAES constructs an AES instance for a 128-, 192-, or 256-bit key.
func NewAES(key []byte) (*AES, error) {
	if err := selftest.Run(selftest.AES, func() bool {
		a, err := newAESNoCheck(aesKATKey)
		if err != nil {
			return false
		}
		var out [16]byte
		a.Encrypt(out[:], aesKATPlaintext)
		return sliceEqual(out[:], aesKATCiphertext)
	}); err != nil {
		return nil, err
	}
	return newAESNoCheck(key)
}

func (a *AES) BlockSize() int { return a.block.BlockSize() }
func (a *AES) KeySize() int   { return len(a.key) }

func (a *AES) Encrypt(dst, src []byte) { a.block.Encrypt(dst, src) }
func (a *AES) Decrypt(dst, src []byte) { a.block.Decrypt(dst, src) }

// Block exposes the underlying cipher.Block so package aead can drive
// crypto/cipher.NewGCM directly instead of duplicating GCM's GHASH
// machinery — GCM is a mode of operation around AES, not a property of
// AES itself, and belongs in the AEAD state machine, not here.
func (a *AES) Block() cipher.Block { return a.block }

// Zero wipes the retained raw key bytes and drops the block cipher.
// crypto/aes.NewCipher expands the key into round keys held inside an
// opaque cipher.Block with no exported wipe path, so after Zero this
// instance is done for good; construct a fresh one with NewAES to keep
// going.
func (a *AES) Zero() {
	sidechannel.Wipe(a.key)
	a.block = nil
}

func sliceEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FIPS-197 Appendix C.1's AES-128 example vector: key 000102030405060708090a0b0c0d0e0f,
// plaintext 00112233445566778899aabbccddeeff, ciphertext 69c4e0d86a7b0430d8cdb78070b4c55a.
var (
	aesKATKey        = mustHexSym("000102030405060708090a0b0c0d0e0f")
	aesKATPlaintext  = mustHexSym("00112233445566778899aabbccddeeff")
	aesKATCiphertext = mustHexSym("69c4e0d86a7b0430d8cdb78070b4c55a")
)
