package drbg

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

// ChaCha20DRNG is grounded directly on original_source/drng/src/chacha20_drng.c:
// the DRNG's entire state is one ChaCha20 key plus a three-word
// "nonce" that chacha20_drng.c calls counter[1..3] — the real 32-bit
// block counter (counter[0]) is left untouched forever, since the RFC
// leaves its initial value undefined and the reference only relies on
// the nonce words for per-update uniqueness. Seeding XORs seed bytes
// into the key in KeySize-sized chunks, running an update between
// chunks so later chunks depend on earlier ones (a ChaCha20 CBC-MAC of
// the seed, in the source's own words). Generate emits whole 64-byte
// ChaCha20 blocks, then folds the last block generated back into the
// key and deterministically increments the nonce words.
type ChaCha20DRNG struct {
	key    [32]byte
	nonce  [3]uint32 // counter[1..3] in the C source
	block  uint32    // the untouched counter[0]
	seeded bool
}

const (
	cc20KeySize   = 32
	cc20BlockSize = 64
)

func newChaCha20DRNGNoCheck() *ChaCha20DRNG {
	return &ChaCha20DRNG{}
}

// NewChaCha20DRNG constructs a ChaCha20-DRNG in its zero state. The
// self-test reproduces chacha20_drng.c's own selftest: with an
// all-zero key, all-zero nonce, and block counter 0, the first block
// generated is a fixed known value, since ChaCha20 of an all-zero key
// and nonce is itself a deterministic function.
func NewChaCha20DRNG() *ChaCha20DRNG {
	if err := selftest.Run(selftest.ChaCha20DRNG, func() bool {
		d := newChaCha20DRNGNoCheck()
		out := make([]byte, cc20KeySize)
		d.Generate(out, nil)
		return sliceEqualDRBG(out, cc20ZeroStateKAT)
	}); err != nil {
		panic(err)
	}
	return newChaCha20DRNGNoCheck()
}

func (d *ChaCha20DRNG) cipher() *chacha20.Cipher {
	var nonceBytes [12]byte
	binary.LittleEndian.PutUint32(nonceBytes[0:4], d.nonce[0])
	binary.LittleEndian.PutUint32(nonceBytes[4:8], d.nonce[1])
	binary.LittleEndian.PutUint32(nonceBytes[8:12], d.nonce[2])
	c, err := chacha20.NewUnauthenticatedCipher(d.key[:], nonceBytes[:])
	if err != nil {
		panic("drbg: chacha20 cipher construction: " + err.Error())
	}
	c.SetCounter(d.block)
	return c
}

// incrementNonce deterministically advances the nonce words, carrying
// between them exactly as RFC 7539 §4's example increments a counter.
func (d *ChaCha20DRNG) incrementNonce() {
	d.nonce[0]++
	if d.nonce[0] == 0 {
		d.nonce[1]++
		if d.nonce[1] == 0 {
			d.nonce[2]++
		}
	}
}

// generateBlock produces one raw 64-byte ChaCha20 block from the
// current key/nonce/block-counter and advances the nonce. It never
// touches the key itself — callers decide whether the block's bytes
// become caller-visible output, key material, or both.
func (d *ChaCha20DRNG) generateBlock() [cc20BlockSize]byte {
	var block [cc20BlockSize]byte
	c := d.cipher()
	c.XORKeyStream(block[:], block[:]) // block[:] is the keystream itself
	d.incrementNonce()
	return block
}

// foldKey is the fast-key-erasure step: usedBytes is how many of
// block's leading bytes were already handed to the caller as output.
// If at least KeySize bytes of the block remain unreturned, those
// unreturned bytes are XORed into the key (mirroring
// chacha20_drng.c's "used_words <= KEY_SIZE_WORDS" fast path, since
// bytes the caller never saw are safe to reuse as key material). If
// the caller consumed more than BlockSize-KeySize bytes, no unreturned
// bytes remain, so a fresh, independent block is generated and XORed
// into the key wholesale instead — reusing already-released output
// bytes as the new key would let whoever holds that output predict
// all future output too.
func (d *ChaCha20DRNG) foldKey(block [cc20BlockSize]byte, usedBytes int) {
	if usedBytes <= cc20BlockSize-cc20KeySize {
		for i := 0; i < cc20KeySize; i++ {
			d.key[i] ^= block[usedBytes+i]
		}
		return
	}
	fresh := d.generateBlock()
	for i := 0; i < cc20KeySize; i++ {
		d.key[i] ^= fresh[i]
	}
	sidechannel.Wipe(fresh[:])
}

// Reseed XORs seed into the key in KeySize-sized chunks, running a
// fresh-block fold between chunks to break dependencies between them.
// additional is folded in the same way immediately afterward.
func (d *ChaCha20DRNG) Reseed(seed, additional []byte) {
	d.seeded = true
	for _, buf := range [][]byte{seed, additional} {
		for len(buf) > 0 {
			todo := cc20KeySize
			if todo > len(buf) {
				todo = len(buf)
			}
			for i := 0; i < todo; i++ {
				d.key[i] ^= buf[i]
			}
			fresh := d.generateBlock()
			for i := 0; i < cc20KeySize; i++ {
				d.key[i] ^= fresh[i]
			}
			sidechannel.Wipe(fresh[:])
			buf = buf[todo:]
		}
	}
}

// Generate fills out with ChaCha20-DRNG output. additional input is
// not supported by the reference construction's generate path beyond
// what Reseed already folded in, so it is ignored here (the C source
// has no equivalent parameter on lc_cc20_drng_generate).
func (d *ChaCha20DRNG) Generate(out, additional []byte) {
	_ = additional
	for len(out) > 0 {
		todo := cc20BlockSize
		if todo > len(out) {
			todo = len(out)
		}
		block := d.generateBlock()
		copy(out[:todo], block[:todo])
		d.foldKey(block, todo)
		out = out[todo:]
	}
}

// Zero wipes the key and resets the nonce, block counter, and seeded
// flag, matching chacha20_drng.c's zeroization on instance teardown.
func (d *ChaCha20DRNG) Zero() {
	sidechannel.Wipe(d.key[:])
	d.nonce = [3]uint32{}
	d.block = 0
	d.seeded = false
}

func sliceEqualDRBG(a, b []byte) bool {
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

// cc20ZeroStateKAT is chacha20_drng.c's own cc20_drng_selftest expected
// block: 32 bytes of ChaCha20-DRNG output from the all-zero state.
var cc20ZeroStateKAT = mustHexDRBG("76b8e0ada0f13d90405d6ae55386bd28bdd219b8a08ded1aa836efcc8b770dc7")
