package aead

import (
	"crypto/subtle"

	"github.com/kzall0c/leancrypto/drbg"
	lchash "github.com/kzall0c/leancrypto/hash"
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
	"github.com/kzall0c/leancrypto/keyed"
)

const (
	hashAEADNonceSize = 16
	hashAEADTagSize   = 32
	hashAEADKeySize   = 32
)

// HashAEAD is a generic Encrypt-then-MAC construction: a
// hash-parameterized DRBG (KMAC-DRNG, built on the same sponge as
// the rest of package hash) supplies the keystream, and a second,
// independent key pulled from the same master key authenticates
// additional data and ciphertext via HMAC-SHA3-256. The MAC never
// sees the plaintext directly, only the bytes that end up on the
// wire: the MAC covers ciphertext only, while AAD is authenticated
// but never encrypted.
//
// KMAC-DRNG's fast-key-erasure Generate has no position-independent
// keystream: the bytes it returns depend on how many bytes were asked
// for in that call, not just on how many bytes came before. That rules
// out releasing ciphertext before the total plaintext length is known,
// so EncUpdate/DecUpdate buffer plaintext/ciphertext exactly like
// AESGCM does, and the keystream XOR runs once in EncFinal/DecFinal.
// HMAC's running Write has no such restriction, so nonce and
// additionalData are absorbed into the tag as soon as EncInit/DecInit
// runs rather than waiting for Final.
type HashAEAD struct {
	keystreamKey [hashAEADKeySize]byte
	macKey       []byte
	phase        phase
	mac          *keyed.HMAC
	nonce        []byte
	buf          []byte
}

func newHashAEADNoCheck(key []byte) *HashAEAD {
	rng := drbg.NewKMACDRNG()
	rng.Reseed(key, []byte("hash-aead set_key"))

	var ks [hashAEADKeySize]byte
	rng.Generate(ks[:], nil)
	mac := make([]byte, hashAEADKeySize)
	rng.Generate(mac, nil)
	rng.Zero()

	return &HashAEAD{keystreamKey: ks, macKey: mac, phase: phaseKeyed}
}

// NewHashAEAD constructs a hash-based AEAD instance keyed by key. The
// self-test round-trips a fixed plaintext through Seal/Open rather
// than comparing against a literal ciphertext, so it checks that the
// construction is self-consistent, not that it reproduces a published
// vector.
func NewHashAEAD(key []byte) *HashAEAD {
	if err := selftest.Run(selftest.HashAEAD, func() bool {
		a := newHashAEADNoCheck(hashAEADKATKey)
		sealed := a.Seal(nil, hashAEADKATNonce, hashAEADKATPlaintext, hashAEADKATAAD)
		opened, err := a.Open(nil, hashAEADKATNonce, sealed, hashAEADKATAAD)
		return err == nil && sliceEqualAEAD(opened, hashAEADKATPlaintext)
	}); err != nil {
		panic(err)
	}
	return newHashAEADNoCheck(key)
}

func (a *HashAEAD) NonceSize() int { return hashAEADNonceSize }
func (a *HashAEAD) Overhead() int  { return hashAEADTagSize }

func (a *HashAEAD) keystream(nonce []byte, n int) []byte {
	rng := drbg.NewKMACDRNG()
	rng.Reseed(a.keystreamKey[:], nonce)
	ks := make([]byte, n)
	rng.Generate(ks, nil)
	rng.Zero()
	return ks
}

// Seal runs EncInit/EncUpdate/EncFinal in one call.
func (a *HashAEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	a.EncInit(nonce, additionalData)
	out := a.EncUpdate(dst, plaintext)
	return a.EncFinal(out)
}

// Open returns ErrAuthFailed (never a partial plaintext) on tag
// mismatch.
func (a *HashAEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < hashAEADTagSize {
		return nil, ErrAuthFailed
	}
	split := len(ciphertext) - hashAEADTagSize
	a.DecInit(nonce, additionalData)
	out := a.DecUpdate(dst, ciphertext[:split])
	return a.DecFinal(out, ciphertext[split:])
}

// EncInit starts the tag's HMAC over nonce||additionalData right
// away, ahead of knowing how much plaintext EncUpdate will receive.
func (a *HashAEAD) EncInit(nonce, additionalData []byte) {
	if a.phase != phaseKeyed && a.phase != phaseFinalized {
		phaseViolation("EncInit")
	}
	a.nonce = append(a.nonce[:0], nonce...)
	a.mac = keyed.NewHMAC(func() lchash.Hash { return lchash.NewSHA3_256() }, a.macKey)
	a.mac.Write(nonce)
	a.mac.Write(additionalData)
	a.buf = a.buf[:0]
	a.phase = phaseAbsorbingAAD
}

// EncUpdate buffers plaintext; no ciphertext is available until
// EncFinal generates the keystream over the whole message.
func (a *HashAEAD) EncUpdate(dst, plaintext []byte) []byte {
	if a.phase == phaseAbsorbingAAD {
		a.phase = phaseCrypting
	}
	if a.phase != phaseCrypting {
		phaseViolation("EncUpdate")
	}
	a.buf = append(a.buf, plaintext...)
	return dst
}

// EncFinal generates the keystream over the buffered plaintext, XORs
// it into ciphertext, feeds that ciphertext into the already-running
// HMAC, and appends ciphertext||tag to dst.
func (a *HashAEAD) EncFinal(dst []byte) []byte {
	if a.phase != phaseCrypting && a.phase != phaseAbsorbingAAD {
		phaseViolation("EncFinal")
	}
	ks := a.keystream(a.nonce, len(a.buf))
	ciphertext := make([]byte, len(a.buf))
	for i := range a.buf {
		ciphertext[i] = a.buf[i] ^ ks[i]
	}
	sidechannel.Wipe(ks)
	sidechannel.Wipe(a.buf)
	a.buf = a.buf[:0]

	a.mac.Write(ciphertext)
	tag := a.mac.Sum(nil)

	dst = append(dst, ciphertext...)
	dst = append(dst, tag...)
	a.phase = phaseFinalized
	return dst
}

// DecInit mirrors EncInit. ciphertext fed via DecUpdate must exclude
// the trailing tag; pass the tag itself to DecFinal.
func (a *HashAEAD) DecInit(nonce, additionalData []byte) {
	if a.phase != phaseKeyed && a.phase != phaseFinalized {
		phaseViolation("DecInit")
	}
	a.nonce = append(a.nonce[:0], nonce...)
	a.mac = keyed.NewHMAC(func() lchash.Hash { return lchash.NewSHA3_256() }, a.macKey)
	a.mac.Write(nonce)
	a.mac.Write(additionalData)
	a.buf = a.buf[:0]
	a.phase = phaseAbsorbingAAD
}

// DecUpdate buffers ciphertext; no plaintext is available until
// DecFinal verifies the tag.
func (a *HashAEAD) DecUpdate(dst, ciphertext []byte) []byte {
	if a.phase == phaseAbsorbingAAD {
		a.phase = phaseCrypting
	}
	if a.phase != phaseCrypting {
		phaseViolation("DecUpdate")
	}
	a.buf = append(a.buf, ciphertext...)
	return dst
}

// DecFinal feeds the buffered ciphertext into the running HMAC and
// compares the result against tag before decrypting anything,
// returning ErrAuthFailed without writing any plaintext bytes on
// mismatch.
func (a *HashAEAD) DecFinal(dst, tag []byte) ([]byte, error) {
	if a.phase != phaseCrypting && a.phase != phaseAbsorbingAAD {
		phaseViolation("DecFinal")
	}
	a.mac.Write(a.buf)
	wantTag := a.mac.Sum(nil)

	if subtle.ConstantTimeCompare(tag, wantTag) != 1 {
		sidechannel.Wipe(a.buf)
		a.buf = a.buf[:0]
		a.phase = phaseFinalized
		return nil, ErrAuthFailed
	}

	ks := a.keystream(a.nonce, len(a.buf))
	plaintext := make([]byte, len(a.buf))
	for i := range a.buf {
		plaintext[i] = a.buf[i] ^ ks[i]
	}
	sidechannel.Wipe(ks)
	sidechannel.Wipe(a.buf)
	a.buf = a.buf[:0]
	a.phase = phaseFinalized
	return append(dst, plaintext...), nil
}

// Zero wipes both retained keys and any buffered plaintext/ciphertext,
// and drops the running HMAC instance.
func (a *HashAEAD) Zero() {
	sidechannel.Wipe(a.keystreamKey[:])
	sidechannel.Wipe(a.macKey)
	sidechannel.Wipe(a.buf)
	sidechannel.Wipe(a.nonce)
	a.mac = nil
	a.phase = phaseFresh
}

var (
	hashAEADKATKey       = []byte("hash-aead known-answer master key")
	hashAEADKATNonce     = mustHexAEAD("000102030405060708090a0b0c0d0e0f")
	hashAEADKATPlaintext = []byte("hash-aead known-answer plaintext")
	hashAEADKATAAD       = []byte("hash-aead known-answer aad")
)
