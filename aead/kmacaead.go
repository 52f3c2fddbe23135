package aead

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
	"github.com/kzall0c/leancrypto/internal/sponge"
)

const (
	kmacAEADNonceSize = 16
	kmacAEADTagSize   = 16
	kmacAEADRate      = 136 // bytepad width used only for the keying prologue
)

// KMACAEAD duplexes plaintext directly through a KMAC-keyed
// Keccak-f[1600] state, the same absorb/duplex/extract discipline an
// Ascon-128 AEAD runs over its own 5-lane Ascon-p state, just against
// the wider 25-lane permutation: key and nonce go in through package
// internal/sponge's bytepad/encode_string helpers (the same ones
// package keyed's KMAC uses), additional data is duplexed into lane 0
// ahead of the plaintext with a domain-separating bit flip in between,
// and the tag falls out of lanes 3/4 after one last key-remixed
// permutation, lane 0 standing in for Ascon's s[0] and lanes 1/2 for
// its s[3]/s[4] key-mix targets.
//
// The duplex loop processes input 8 bytes at a time with one
// permutation per full chunk, so EncUpdate/DecUpdate can release
// output incrementally instead of buffering the way AESGCM has to:
// pending holds the 0-7 leftover bytes between calls, and EncFinal/
// DecFinal run the same partial-block handling the one-shot loop used
// to run on its last iteration.
type KMACAEAD struct {
	key     []byte
	lanes   [25]uint64
	phase   phase
	pending []byte
}

func newKMACAEADNoCheck(key []byte) *KMACAEAD {
	return &KMACAEAD{key: append([]byte(nil), key...), phase: phaseKeyed}
}

// NewKMACAEAD constructs a KMAC-based AEAD instance keyed by key. Like
// HashAEAD, the self-test round-trips Seal/Open instead of comparing
// against a literal ciphertext, since this is a construction original
// to this module (names the family but, unlike AES-GCM, does
// not pin a byte-exact wire format to check against).
func NewKMACAEAD(key []byte) *KMACAEAD {
	if err := selftest.Run(selftest.KMACAEAD, func() bool {
		a := newKMACAEADNoCheck(kmacAEADKATKey)
		sealed := a.Seal(nil, kmacAEADKATNonce, kmacAEADKATPlaintext, kmacAEADKATAAD)
		opened, err := a.Open(nil, kmacAEADKATNonce, sealed, kmacAEADKATAAD)
		return err == nil && sliceEqualAEAD(opened, kmacAEADKATPlaintext)
	}); err != nil {
		panic(err)
	}
	return newKMACAEADNoCheck(key)
}

func (a *KMACAEAD) NonceSize() int { return kmacAEADNonceSize }
func (a *KMACAEAD) Overhead() int  { return kmacAEADTagSize }

// keyedLanes runs KMAC's two-stage bytepad(N="KMAC", S=nonce) then
// bytepad(key) prologue over a fresh Keccak-f1600 sponge and hands
// back the raw lane array, permuted once more so the duplex phase
// starts from a state as thoroughly mixed as KMAC's own Sum would
// have left it.
func (a *KMACAEAD) keyedLanes(nonce []byte) *[25]uint64 {
	var s sponge.State
	s.Init(sponge.Params{
		Permutation:  sponge.KeccakF1600,
		Rate:         kmacAEADRate,
		PadByte:      0x04,
		FinalHighBit: true,
	})

	count := sponge.BytePadPrefix(&s, kmacAEADRate)
	count += sponge.EncodeString(&s, []byte("KMAC"))
	count += sponge.EncodeString(&s, nonce)
	sponge.ZeroPad(&s, kmacAEADRate, count)

	count = sponge.BytePadPrefix(&s, kmacAEADRate)
	count += sponge.EncodeString(&s, a.key)
	sponge.ZeroPad(&s, kmacAEADRate, count)

	lanes := s.Lanes()
	sponge.KeccakF1600(lanes)
	return lanes
}

// absorbAdditionalData runs 8-byte chunks of ad through lane 0, one
// permutation per chunk, single-bit pad on the final (possibly empty)
// partial chunk — the AAD half of the same duplex loop EncUpdate/
// DecUpdate run over plaintext/ciphertext below.
func absorbAdditionalData(lanes *[25]uint64, ad []byte) {
	if len(ad) == 0 {
		return
	}
	for len(ad) >= 8 {
		lanes[0] ^= binary.BigEndian.Uint64(ad)
		ad = ad[8:]
		sponge.KeccakF1600(lanes)
	}
	if len(ad) > 0 {
		var buf [8]byte
		n := copy(buf[:], ad)
		buf[n] |= 0x80
		lanes[0] ^= binary.BigEndian.Uint64(buf[:])
	} else {
		lanes[0] ^= 0x80 << 56
	}
	sponge.KeccakF1600(lanes)
}

// duplexEncryptChunk XORs one full 8-byte plaintext block into lane 0,
// extracts the result as ciphertext, and permutes once — one iteration
// of the encryption duplex loop.
func duplexEncryptChunk(lanes *[25]uint64, plaintext, ciphertext []byte) {
	lanes[0] ^= binary.BigEndian.Uint64(plaintext)
	binary.BigEndian.PutUint64(ciphertext, lanes[0])
	sponge.KeccakF1600(lanes)
}

// duplexEncryptFinal handles the trailing 0-7 byte partial block: no
// permutation follows, since nothing further will be absorbed into
// this state before finalization remixes the key in.
func duplexEncryptFinal(lanes *[25]uint64, plaintext, ciphertext []byte) {
	if len(plaintext) > 0 {
		var buf [8]byte
		n := copy(buf[:], plaintext)
		buf[n] |= 0x80
		lanes[0] ^= binary.BigEndian.Uint64(buf[:])
		var out [8]byte
		binary.BigEndian.PutUint64(out[:], lanes[0])
		copy(ciphertext, out[:n])
	} else {
		lanes[0] ^= 0x80 << 56
	}
}

// duplexDecryptChunk is duplexEncryptChunk's inverse: the received
// ciphertext block becomes the new lane 0 value directly (absorbing
// what was received), and plaintext is recovered from the XOR against
// the old value before the overwrite.
func duplexDecryptChunk(lanes *[25]uint64, ciphertext, plaintext []byte) {
	x := binary.BigEndian.Uint64(ciphertext)
	binary.BigEndian.PutUint64(plaintext, x^lanes[0])
	lanes[0] = x
	sponge.KeccakF1600(lanes)
}

// duplexDecryptFinal is duplexEncryptFinal's inverse for the trailing
// 0-7 byte partial block.
func duplexDecryptFinal(lanes *[25]uint64, ciphertext, plaintext []byte) {
	if len(ciphertext) > 0 {
		var old [8]byte
		binary.BigEndian.PutUint64(old[:], lanes[0])
		for i := range plaintext {
			plaintext[i] = ciphertext[i] ^ old[i]
		}
		var x uint64
		for i, b := range plaintext {
			x |= uint64(b) << (56 - 8*i)
		}
		x |= 0x80 << (56 - 8*len(ciphertext))
		lanes[0] ^= x
	} else {
		lanes[0] ^= 0x80 << 56
	}
}

// remixKey XORs the first two 8-byte halves of the key into lanes 1
// and 2 before the finalizing permutation. A key shorter than 16 bytes
// pads with zeros; longer keys are folded by XOR in 16-byte strides so
// every key byte still influences the tag.
func remixKey(lanes *[25]uint64, key []byte) {
	var k [16]byte
	for i, b := range key {
		k[i%16] ^= b
	}
	lanes[1] ^= binary.BigEndian.Uint64(k[0:8])
	lanes[2] ^= binary.BigEndian.Uint64(k[8:16])
}

func tagFromLanes(lanes *[25]uint64) [16]byte {
	var tag [16]byte
	binary.BigEndian.PutUint64(tag[0:8], lanes[3])
	binary.BigEndian.PutUint64(tag[8:16], lanes[4])
	return tag
}

// Seal runs EncInit/EncUpdate/EncFinal in one call.
func (a *KMACAEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	a.EncInit(nonce, additionalData)
	out := a.EncUpdate(dst, plaintext)
	return a.EncFinal(out)
}

// Open returns ErrAuthFailed (never a partial plaintext) on tag
// mismatch.
func (a *KMACAEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < kmacAEADTagSize {
		return nil, ErrAuthFailed
	}
	split := len(ciphertext) - kmacAEADTagSize
	a.DecInit(nonce, additionalData)
	out := a.DecUpdate(dst, ciphertext[:split])
	return a.DecFinal(out, ciphertext[split:])
}

// EncInit keys the duplex state from nonce, absorbs additionalData
// immediately (unlike AESGCM, this construction's duplex has no reason
// to defer AAD absorption to EncFinal), and flips lane 4's low bit to
// separate the AAD phase from the plaintext phase that follows.
func (a *KMACAEAD) EncInit(nonce, additionalData []byte) {
	if a.phase != phaseKeyed && a.phase != phaseFinalized {
		phaseViolation("EncInit")
	}
	a.lanes = *a.keyedLanes(nonce)
	absorbAdditionalData(&a.lanes, additionalData)
	a.lanes[4] ^= 1
	a.pending = a.pending[:0]
	a.phase = phaseAbsorbingAAD
}

// EncUpdate buffers plaintext until 8 bytes are available, then runs
// the duplex loop a chunk at a time, returning ciphertext as soon as
// each chunk's permutation completes.
func (a *KMACAEAD) EncUpdate(dst, plaintext []byte) []byte {
	if a.phase == phaseAbsorbingAAD {
		a.phase = phaseCrypting
	}
	if a.phase != phaseCrypting {
		phaseViolation("EncUpdate")
	}
	a.pending = append(a.pending, plaintext...)
	var c [8]byte
	for len(a.pending) >= 8 {
		duplexEncryptChunk(&a.lanes, a.pending[:8], c[:])
		dst = append(dst, c[:]...)
		n := copy(a.pending, a.pending[8:])
		a.pending = a.pending[:n]
	}
	return dst
}

// EncFinal runs the trailing partial block through duplexEncryptFinal,
// remixes the key in, and appends the resulting tag to dst.
func (a *KMACAEAD) EncFinal(dst []byte) []byte {
	if a.phase != phaseCrypting && a.phase != phaseAbsorbingAAD {
		phaseViolation("EncFinal")
	}
	tail := make([]byte, len(a.pending))
	duplexEncryptFinal(&a.lanes, a.pending, tail)
	dst = append(dst, tail...)
	sidechannel.Wipe(a.pending)
	a.pending = a.pending[:0]

	remixKey(&a.lanes, a.key)
	sponge.KeccakF1600(&a.lanes)
	tag := tagFromLanes(&a.lanes)
	dst = append(dst, tag[:]...)

	a.phase = phaseFinalized
	return dst
}

// DecInit mirrors EncInit. ciphertext fed via DecUpdate must exclude
// the trailing tag; pass the tag itself to DecFinal.
func (a *KMACAEAD) DecInit(nonce, additionalData []byte) {
	if a.phase != phaseKeyed && a.phase != phaseFinalized {
		phaseViolation("DecInit")
	}
	a.lanes = *a.keyedLanes(nonce)
	absorbAdditionalData(&a.lanes, additionalData)
	a.lanes[4] ^= 1
	a.pending = a.pending[:0]
	a.phase = phaseAbsorbingAAD
}

// DecUpdate releases plaintext a chunk at a time, ahead of DecFinal's
// tag check — a caller must not act irreversibly on it until DecFinal
// returns a nil error, same as every other streaming AEAD decryption.
func (a *KMACAEAD) DecUpdate(dst, ciphertext []byte) []byte {
	if a.phase == phaseAbsorbingAAD {
		a.phase = phaseCrypting
	}
	if a.phase != phaseCrypting {
		phaseViolation("DecUpdate")
	}
	a.pending = append(a.pending, ciphertext...)
	var p [8]byte
	for len(a.pending) >= 8 {
		duplexDecryptChunk(&a.lanes, a.pending[:8], p[:])
		dst = append(dst, p[:]...)
		n := copy(a.pending, a.pending[8:])
		a.pending = a.pending[:n]
	}
	return dst
}

// DecFinal recovers the trailing partial block, remixes the key in,
// and compares the resulting tag against tag in constant time,
// returning ErrAuthFailed (and withholding that last partial block)
// on mismatch.
func (a *KMACAEAD) DecFinal(dst, tag []byte) ([]byte, error) {
	if a.phase != phaseCrypting && a.phase != phaseAbsorbingAAD {
		phaseViolation("DecFinal")
	}
	tail := make([]byte, len(a.pending))
	duplexDecryptFinal(&a.lanes, a.pending, tail)
	sidechannel.Wipe(a.pending)
	a.pending = a.pending[:0]

	remixKey(&a.lanes, a.key)
	sponge.KeccakF1600(&a.lanes)
	computed := tagFromLanes(&a.lanes)

	a.phase = phaseFinalized
	if subtle.ConstantTimeCompare(computed[:], tag) != 1 {
		return nil, ErrAuthFailed
	}
	return append(dst, tail...), nil
}

// Zero wipes the retained key, the duplex lane state, and any
// leftover buffered bytes.
func (a *KMACAEAD) Zero() {
	sidechannel.Wipe(a.key)
	sidechannel.Wipe(a.pending)
	for i := range a.lanes {
		a.lanes[i] = 0
	}
	a.phase = phaseFresh
}

var (
	kmacAEADKATKey       = []byte("kmac-aead known-answer master key")
	kmacAEADKATNonce     = mustHexAEAD("101112131415161718191a1b1c1d1e1f")
	kmacAEADKATPlaintext = []byte("kmac-aead known-answer plaintext")
	kmacAEADKATAAD       = []byte("kmac-aead known-answer aad")
)
