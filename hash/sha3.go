package hash

import (
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sponge"
)

// SHA3 is a fixed-digest SHA-3 instance (FIPS-202 §6.1). The four
// sizes differ only in rate and digest length; the domain-separation
// pad byte 0x06 and the Keccak-f[1600] permutation are shared.
type SHA3 struct {
	s sponge.State
}

func sha3Params(rate, digest int) sponge.Params {
	return sponge.Params{
		Permutation:  sponge.KeccakF1600,
		Rate:         rate,
		PadByte:      0x06,
		FinalHighBit: true,
		DigestSize:   digest,
		Fixed:        true,
	}
}

func newSHA3(id selftest.ID, rate, digest int, kat, want []byte) *SHA3 {
	if err := selftest.Run(id, func() bool {
		h := newSHA3NoCheck(rate, digest)
		h.Write(kat)
		return sliceEqual(h.Sum(nil), want)
	}); err != nil {
		panic(err)
	}
	return newSHA3NoCheck(rate, digest)
}

func newSHA3NoCheck(rate, digest int) *SHA3 {
	h := &SHA3{}
	h.s.Init(sha3Params(rate, digest))
	return h
}

// NewSHA3_224, NewSHA3_256, NewSHA3_384, and NewSHA3_512 construct
// hash.Hash-shaped SHA-3 instances at the four FIPS-202-defined
// security levels.
func NewSHA3_224() *SHA3 {
	return newSHA3(selftest.SHA3_224, 144, 28, sha3KAT224Msg, sha3KAT224Digest)
}

func NewSHA3_256() *SHA3 {
	return newSHA3(selftest.SHA3_256, 136, 32, sha3KAT256Msg, sha3KAT256Digest)
}

func NewSHA3_384() *SHA3 {
	return newSHA3(selftest.SHA3_384, 104, 48, sha3KAT384Msg, sha3KAT384Digest)
}

func NewSHA3_512() *SHA3 {
	return newSHA3(selftest.SHA3_512, 72, 64, sha3KAT512Msg, sha3KAT512Digest)
}

func (h *SHA3) Write(p []byte) (int, error) {
	h.s.Update(p)
	return len(p), nil
}

func (h *SHA3) Sum(b []byte) []byte { return h.s.Sum(b, h.s.DigestSize()) }
func (h *SHA3) Reset()              { h.s.Init(sha3Params(h.s.Rate(), h.s.DigestSize())) }
func (h *SHA3) Size() int           { return h.s.DigestSize() }
func (h *SHA3) BlockSize() int      { return h.s.Rate() }
func (h *SHA3) Clone() *SHA3        { c := *h; return &c }

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

// Known-answer vectors are the empty-message digests from FIPS-202's
// published test vectors.
var (
	sha3KAT224Msg    = []byte{}
	sha3KAT224Digest = mustHex("6b4e03423667dbb73b6e15454f0eb1abd4597f9a1b078e3f5b5a6bc7")

	sha3KAT256Msg    = []byte{}
	sha3KAT256Digest = mustHex("a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a")

	sha3KAT384Msg    = []byte{}
	sha3KAT384Digest = mustHex("0c63a75b845e4f7d01107d852e4c2485c51a50aaaa94fc61995e71bbee983a2ac3713831264adb47fb6bd1e058d5f004")

	sha3KAT512Msg    = []byte{}
	sha3KAT512Digest = mustHex("a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26")
)
