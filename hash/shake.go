package hash

import (
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sponge"
)

// SHAKE is an extendable-output Keccak instance (FIPS-202 §6.2). Its
// digest size is chosen by the caller via SetDigestSize or by however
// many bytes it Reads; unlike SHA3, SetDigestSize may be called at any
// point up to the first squeeze.
type SHAKE struct {
	s sponge.State
}

func shakeParams(rate int) sponge.Params {
	return sponge.Params{
		Permutation:  sponge.KeccakF1600,
		Rate:         rate,
		PadByte:      0x1f,
		FinalHighBit: true,
	}
}

func newShakeNoCheck(rate int) *SHAKE {
	h := &SHAKE{}
	h.s.Init(shakeParams(rate))
	return h
}

// NewSHAKE128 and NewSHAKE256 construct SHAKE instances at the two
// FIPS-202-defined security levels.
func NewSHAKE128() *SHAKE {
	if err := selftest.Run(selftest.SHAKE128, func() bool {
		h := newShakeNoCheck(168)
		out := make([]byte, 32)
		h.Read(out)
		return sliceEqual(out, shake128KATOutput)
	}); err != nil {
		panic(err)
	}
	return newShakeNoCheck(168)
}

func NewSHAKE256() *SHAKE {
	if err := selftest.Run(selftest.SHAKE256, func() bool {
		h := newShakeNoCheck(136)
		out := make([]byte, 64)
		h.Read(out)
		return sliceEqual(out, shake256KATOutput)
	}); err != nil {
		panic(err)
	}
	return newShakeNoCheck(136)
}

func (h *SHAKE) Write(p []byte) (int, error) {
	h.s.Update(p)
	return len(p), nil
}

func (h *SHAKE) Read(p []byte) (int, error) {
	h.s.Squeeze(p)
	return len(p), nil
}

func (h *SHAKE) Reset()              { h.s.Init(shakeParams(h.s.Rate())) }
func (h *SHAKE) BlockSize() int      { return h.s.Rate() }
func (h *SHAKE) SetDigestSize(n int) { h.s.SetDigestSize(n) }
func (h *SHAKE) DigestSize() int     { return h.s.DigestSize() }
func (h *SHAKE) Clone() *SHAKE       { c := *h; return &c }

// Empty-message output KATs (first N bytes of SHAKE128("")/SHAKE256("")).
var (
	shake128KATOutput = mustHex("7f9c2ba4e88f827d616045507605853ed73b8093f6efbc88eb1a6eacfa66ef26")
	shake256KATOutput = mustHex("46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762fd75dc4ddd8c0f200cb05019d67b592f6fc821c49479ab48640292eacb3b7c4be")
)
