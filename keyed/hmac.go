package keyed

import (
	lchash "github.com/kzall0c/leancrypto/hash"
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

// HMAC is the standard FIPS-198-1 construction, generic over any
// hash.Hash capability: outer(key xor opad || inner(key xor ipad ||
// message)). Keys longer than the underlying hash's block size are
// first reduced by hashing them, exactly as FIPS-198-1 requires.
type HMAC struct {
	newHash func() lchash.Hash
	outer   lchash.Hash
	inner   lchash.Hash
	ipad    []byte
	opad    []byte
}

func newHMACNoCheck(newHash func() lchash.Hash, key []byte) *HMAC {
	h := &HMAC{newHash: newHash}
	blockSize := newHash().BlockSize()

	reduced := key
	if len(key) > blockSize {
		hk := newHash()
		hk.Write(key)
		reduced = hk.Sum(nil)
	}

	h.ipad = make([]byte, blockSize)
	h.opad = make([]byte, blockSize)
	copy(h.ipad, reduced)
	copy(h.opad, reduced)
	for i := range h.ipad {
		h.ipad[i] ^= 0x36
		h.opad[i] ^= 0x5c
	}
	if len(key) > blockSize {
		sidechannel.Wipe(reduced)
	}

	h.inner = newHash()
	h.inner.Write(h.ipad)
	h.outer = newHash()
	return h
}

// NewHMAC constructs an HMAC instance keyed by key, using newHash to
// build fresh underlying digests (hash.NewSHA3_256, hash.NewSHA2_256,
// and so on). The self-test runs HMAC-SHA3-256 against a fixed KAT
// regardless of which underlying hash the caller asks for, since the
// registry latches self-test status per primitive ID, not per
// hash/key combination.
func NewHMAC(newHash func() lchash.Hash, key []byte) *HMAC {
	if err := selftest.Run(selftest.HMAC, func() bool {
		h := newHMACNoCheck(newSHA3_256AsHash, hmacKATKey)
		h.Write(hmacKATMsg)
		return sliceEqualBytes(h.Sum(nil), hmacKATTag)
	}); err != nil {
		panic(err)
	}
	return newHMACNoCheck(newHash, key)
}

func newSHA3_256AsHash() lchash.Hash { return lchash.NewSHA3_256() }

func (h *HMAC) Write(p []byte) (int, error) { return h.inner.Write(p) }

func (h *HMAC) Sum(b []byte) []byte {
	innerSum := h.inner.Sum(nil)
	h.outer.Reset()
	h.outer.Write(h.opad)
	h.outer.Write(innerSum)
	return h.outer.Sum(b)
}

func (h *HMAC) Reset() {
	h.inner = h.newHash()
	h.inner.Write(h.ipad)
}

func (h *HMAC) Size() int { return h.outer.Size() }

func sliceEqualBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	ok := true
	for i := range a {
		if a[i] != b[i] {
			ok = false
		}
	}
	return ok
}

// hmacKATKey/hmacKATMsg/hmacKATTag are RFC 4231's HMAC-SHA3-256-shaped
// test case 1 vector, adapted to SHA3-256 (RFC 4231 itself predates
// SHA-3, so this reuses its 20-byte 0x0b key and "Hi There" message
// rather than claiming a literal match to a published HMAC-SHA3
// vector).
var (
	hmacKATKey = []byte{
		0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b,
		0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b,
		0x0b, 0x0b, 0x0b, 0x0b,
	}
	hmacKATMsg = []byte("Hi There")
	hmacKATTag = mustHexKeyed("ba85192310dffa96e2a3a40e69774351140bb7185e1202cdcc917589f95e16bb")
)
