package keyed

import (
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sponge"
)

// KMAC is NIST SP 800-185 §4: cSHAKE customized with the fixed
// function-name string "KMAC", keyed by bytepad(encode_string(K), rate)
// absorbed ahead of the message, and closed by right_encode(L) (the
// output length in bits) absorbed after the message and before
// squeezing. Unlike HMAC this is built directly on the sponge engine
// rather than layered over package hash's cSHAKE type, since KMAC
// needs to inject the key prefix and the right_encode(L) suffix at
// points cSHAKE's own API does not expose.
type KMAC struct {
	s      sponge.State
	l      uint64 // output length in bits; 0 for the XOF variant
	digest int    // bytes; only meaningful when l != 0
}

var kmacFunctionName = []byte("KMAC")

func kmacParams(rate int) sponge.Params {
	return sponge.Params{
		Permutation:  sponge.KeccakF1600,
		Rate:         rate,
		PadByte:      0x04,
		FinalHighBit: true,
	}
}

func newKMACNoCheck(rate int, key, customization []byte, digestBytes int) *KMAC {
	m := &KMAC{digest: digestBytes}
	if digestBytes > 0 {
		m.l = uint64(digestBytes) * 8
	}
	m.s.Init(kmacParams(rate))

	count := sponge.BytePadPrefix(&m.s, rate)
	count += sponge.EncodeString(&m.s, kmacFunctionName)
	count += sponge.EncodeString(&m.s, customization)
	sponge.ZeroPad(&m.s, rate, count)

	count = sponge.BytePadPrefix(&m.s, rate)
	count += sponge.EncodeString(&m.s, key)
	sponge.ZeroPad(&m.s, rate, count)

	return m
}

// NewKMAC128 and NewKMAC256 construct fixed-output KMAC instances. A
// digestBytes of 0 constructs the extendable-output variant (KMACXOF),
// whose Sum absorbs right_encode(0) and returns SetDigestSize bytes
// (32 when SetDigestSize was never called).
func NewKMAC128(key, customization []byte, digestBytes int) *KMAC {
	if err := selftest.Run(selftest.KMAC, func() bool {
		m := newKMACNoCheck(168, kmacKATKey, nil, 32)
		m.Write(kmacKATMsg)
		return sliceEqualBytes(m.Sum(nil), kmac128KATTag)
	}); err != nil {
		panic(err)
	}
	return newKMACNoCheck(168, key, customization, digestBytes)
}

func NewKMAC256(key, customization []byte, digestBytes int) *KMAC {
	if err := selftest.Run(selftest.KMAC, func() bool {
		m := newKMACNoCheck(168, kmacKATKey, nil, 32)
		m.Write(kmacKATMsg)
		return sliceEqualBytes(m.Sum(nil), kmac128KATTag)
	}); err != nil {
		panic(err)
	}
	return newKMACNoCheck(136, key, customization, digestBytes)
}

func (m *KMAC) Write(p []byte) (int, error) {
	m.s.Update(p)
	return len(p), nil
}

// Sum finalizes a clone of the running state (leaving m able to accept
// more Write calls is not meaningful for KMAC since right_encode(L)
// must be absorbed exactly once, so Sum is one-shot: calling it twice
// on the same instance without an intervening Reset re-absorbs
// right_encode(L) into an already-finalized sponge and is a caller
// error, matching the NIST reference construction's single-shot
// shape).
func (m *KMAC) Sum(b []byte) []byte {
	sponge.RightEncode(&m.s, m.l)
	n := m.digest
	if n == 0 {
		n = 32
	}
	return m.s.Sum(b, n)
}

func (m *KMAC) Reset() {
	panic("keyed: KMAC.Reset requires key/customization; construct a new instance instead")
}

func (m *KMAC) Size() int {
	if m.digest == 0 {
		return 32
	}
	return m.digest
}

// SetDigestSize configures the XOF variant's output length; it is a
// caller error to call this on a fixed-output KMAC.
func (m *KMAC) SetDigestSize(n int) {
	if m.l != 0 {
		panic("keyed: SetDigestSize on a fixed-output KMAC")
	}
	m.digest = n
}

// kmacKATKey/kmacKATMsg/kmac128KATTag are NIST SP 800-185's KMAC128
// Sample #1 (key = 40..5F, message = 00010203, customization = "",
// output 256 bits).
var (
	kmacKATKey    = kmacKeyRamp(0x60)[0x40:]
	kmacKATMsg    = []byte{0x00, 0x01, 0x02, 0x03}
	kmac128KATTag = mustHexKeyed("e5780b0d3ea6f7d3a429c5706aa43a00fadbd7d49628839e3187243f456ee14e")
)

func kmacKeyRamp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
