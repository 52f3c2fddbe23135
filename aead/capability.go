// Package aead implements three AEAD constructions — AES-GCM, a
// generic hash-based Encrypt-then-MAC mode, and a KMAC-based mode —
// behind one state machine: every session drives a pass through
// fresh -> keyed -> absorbing AAD -> encrypting/decrypting ->
// finalized, one-way at every arrow within that session (the keyed
// instance itself is reusable across many sessions with different
// nonces, exactly like crypto/cipher.AEAD). The one-shot Seal/Open
// methods are thin wrappers over EncInit/EncUpdate/EncFinal and
// DecInit/DecUpdate/DecFinal, so a caller driving the incremental API
// by hand and a caller using Seal/Open always produce identical
// ciphertext and tag bytes. The tag is only ever compared in constant
// time.
package aead

import "errors"

// ErrAuthFailed is returned by Open/DecFinal when the computed tag
// does not match the one supplied by the caller; no plaintext is ever
// returned alongside this error.
var ErrAuthFailed = errors.New("aead: message authentication failed")

// phase tracks where a construction sits in the incremental Enc/Dec
// lifecycle: fresh (never keyed, unreachable once a constructor has
// run) -> keyed (ready to start a session) -> absorbingAAD ->
// crypting -> finalized. A session's Final call leaves the instance
// finalized, from which the next session can start with a different
// nonce.
type phase uint8

const (
	phaseFresh phase = iota
	phaseKeyed
	phaseAbsorbingAAD
	phaseCrypting
	phaseFinalized
)

func phaseViolation(op string) {
	panic("aead: " + op + " called out of sequence")
}

// AEAD is the one-shot capability every construction in this package
// exposes, matching the shape of the standard library's
// crypto/cipher.AEAD so instances can be dropped into code that
// already expects that interface. Zero wipes all key/state material;
// the instance is unusable afterward.
type AEAD interface {
	NonceSize() int
	Overhead() int
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	Zero()
}

// Encryptor is the incremental half of the encryption side: EncInit
// starts a session over a nonce and associated data, EncUpdate feeds
// plaintext and returns however many ciphertext bytes the
// construction can release so far, and EncFinal closes the session
// and returns the authentication tag appended to dst. Calling these
// out of sequence (EncUpdate before EncInit, EncInit again before the
// previous session's EncFinal) panics, the same way this module's
// other malformed-call-site violations do.
type Encryptor interface {
	EncInit(nonce, additionalData []byte)
	EncUpdate(dst, plaintext []byte) []byte
	EncFinal(dst []byte) []byte
}

// Decryptor is the incremental half of the decryption side. DecUpdate
// may release plaintext bytes before the tag has been checked —
// exactly like every other streaming AEAD decryption API — so a
// caller must not act irreversibly on that plaintext until DecFinal
// returns a nil error.
type Decryptor interface {
	DecInit(nonce, additionalData []byte)
	DecUpdate(dst, ciphertext []byte) []byte
	DecFinal(dst, tag []byte) ([]byte, error)
}
