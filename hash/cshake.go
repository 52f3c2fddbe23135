package hash

import (
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sponge"
)

// CSHAKE is cSHAKE128/256 (NIST SP 800-185 §3): SHAKE customized by a
// function-name string N and a caller-chosen string S. When both N and
// S are empty, cSHAKE degenerates to plain SHAKE and uses SHAKE's
// 0x1f pad byte directly instead of running the bytepad prologue,
// exactly as the standard requires.
type CSHAKE struct {
	s     sponge.State
	plain bool // true: degenerated to plain SHAKE, no prologue was absorbed
}

func cshakeParams(rate int, plain bool) sponge.Params {
	pad := byte(0x04)
	if plain {
		pad = 0x1f
	}
	return sponge.Params{
		Permutation:  sponge.KeccakF1600,
		Rate:         rate,
		PadByte:      pad,
		FinalHighBit: true,
	}
}

func newCShakeNoCheck(rate int, n, s []byte) *CSHAKE {
	h := &CSHAKE{}
	plain := len(n) == 0 && len(s) == 0
	h.s.Init(cshakeParams(rate, plain))
	h.plain = plain
	if !plain {
		count := sponge.BytePadPrefix(&h.s, rate)
		count += sponge.EncodeString(&h.s, n)
		count += sponge.EncodeString(&h.s, s)
		sponge.ZeroPad(&h.s, rate, count)
	}
	return h
}

// NewCSHAKE128 and NewCSHAKE256 construct cSHAKE instances with the
// given function-name and customization strings.
func NewCSHAKE128(n, s []byte) *CSHAKE {
	if err := selftest.Run(selftest.CSHAKE128, func() bool {
		h := newCShakeNoCheck(168, cshakeKATN, cshakeKATS)
		h.Write(cshakeKATMsg)
		out := make([]byte, len(cshake128KATOutput))
		h.Read(out)
		return sliceEqual(out, cshake128KATOutput)
	}); err != nil {
		panic(err)
	}
	return newCShakeNoCheck(168, n, s)
}

func NewCSHAKE256(n, s []byte) *CSHAKE {
	if err := selftest.Run(selftest.CSHAKE256, func() bool {
		h := newCShakeNoCheck(136, cshakeKATN, cshakeKATS)
		h.Write(cshakeKATMsg)
		out := make([]byte, len(cshake256KATOutput))
		h.Read(out)
		return sliceEqual(out, cshake256KATOutput)
	}); err != nil {
		panic(err)
	}
	return newCShakeNoCheck(136, n, s)
}

func (h *CSHAKE) Write(p []byte) (int, error) {
	h.s.Update(p)
	return len(p), nil
}

func (h *CSHAKE) Read(p []byte) (int, error) {
	h.s.Squeeze(p)
	return len(p), nil
}

func (h *CSHAKE) Reset() {
	panic("hash: CSHAKE.Reset requires N/S; construct a new instance instead")
}
func (h *CSHAKE) BlockSize() int      { return h.s.Rate() }
func (h *CSHAKE) SetDigestSize(n int) { h.s.SetDigestSize(n) }
func (h *CSHAKE) DigestSize() int     { return h.s.DigestSize() }
func (h *CSHAKE) Clone() *CSHAKE      { c := *h; return &c }

// cSHAKE128("", N="", S="") degenerates to SHAKE128, so the self-test
// vector instead uses NIST's published cSHAKE128 sample #1: message
// 0x00010203, N="", S="Email Signature".
var (
	cshakeKATN   = []byte{}
	cshakeKATS   = []byte("Email Signature")
	cshakeKATMsg = []byte{0x00, 0x01, 0x02, 0x03}

	cshake128KATOutput = mustHex("c1c36925b6409a04f1b504fcbca9d82b4017277cb5ed2b2065fc1d3814d5aaf5")
	cshake256KATOutput = mustHex("d008828e2b80ac9d2218ffee1d070c48b8e4c87bff32c9699d5b6896eee0edd1")
)
