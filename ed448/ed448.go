package ed448

import (
	"math/big"

	"github.com/kzall0c/leancrypto/drbg"
	"github.com/kzall0c/leancrypto/hash"
	"github.com/kzall0c/leancrypto/internal/selftest"
	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

const (
	SecretKeySize = 57
	PublicKeySize = 57
	SignatureSize = 114
)

// PrivateKey and PublicKey mirror lc_ed448.h's lc_ed448_sk/lc_ed448_pk:
// plain fixed-size seed and point-encoding buffers, nothing more.
type PrivateKey [SecretKeySize]byte
type PublicKey [PublicKeySize]byte
type Signature [SignatureSize]byte

const domainPrefix = "SigEd448"

// expandedKey is the SHAKE256(seed, 114)-derived scalar and nonce
// prefix RFC 8032 §5.2.5 calls h: the low 57 bytes become the signing
// scalar after pruning, the high 57 bytes become the per-message nonce
// prefix.
type expandedKey struct {
	scalar *big.Int
	prefix [SecretKeySize]byte
}

func expand(seed PrivateKey) (expandedKey, PublicKey) {
	h := hash.NewSHAKE256()
	h.Write(seed[:])
	var digest [114]byte
	h.Read(digest[:])

	pruned := digest[:SecretKeySize]
	var clamped [SecretKeySize]byte
	copy(clamped[:], pruned)
	clamped[0] &= 0xfc
	clamped[SecretKeySize-1] = 0x00
	clamped[SecretKeySize-2] |= 0x80

	s := leBytesToInt(clamped[:])
	ek := expandedKey{scalar: s}
	copy(ek.prefix[:], digest[SecretKeySize:])

	pub := encodePoint(scalarMult(s, basePoint))
	return ek, PublicKey(pub)
}

func leBytesToInt(b []byte) *big.Int {
	n := new(big.Int)
	for i := len(b) - 1; i >= 0; i-- {
		n.Lsh(n, 8)
		n.Or(n, big.NewInt(int64(b[i])))
	}
	return n
}

func intToLEBytes(n *big.Int, size int) []byte {
	out := make([]byte, size)
	b := new(big.Int).Set(n)
	mod := big.NewInt(256)
	for i := 0; i < size; i++ {
		r := new(big.Int)
		b.DivMod(b, mod, r)
		out[i] = byte(r.Int64())
	}
	return out
}

func dom4(phflag byte, context []byte) []byte {
	out := make([]byte, 0, len(domainPrefix)+2+len(context))
	out = append(out, domainPrefix...)
	out = append(out, phflag, byte(len(context)))
	out = append(out, context...)
	return out
}

func shake456(parts ...[]byte) [114]byte {
	h := hash.NewSHAKE256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [114]byte
	h.Read(out[:])
	return out
}

// Keygen draws a fresh 57-byte seed from rng and expands it into a
// key pair, mirroring lc_ed448_keypair's rng_ctx argument: the secret
// key is nothing but that raw seed, with SHAKE256 expansion and scalar
// multiplication deriving the public key from it on demand.
func Keygen(rng drbg.RNG) (PublicKey, PrivateKey, error) {
	if err := selftest.Run(selftest.Ed448Keygen, func() bool {
		_, pub := expand(ed448KATSeed)
		return pub == ed448KATPublicKey
	}); err != nil {
		return PublicKey{}, PrivateKey{}, err
	}
	var seed PrivateKey
	rng.Generate(seed[:], nil)
	_, pub := expand(seed)
	return pub, seed, nil
}

// Sign produces a pure EdDSA (Ed448, phflag 0) signature over msg with
// an optional context string, per RFC 8032 §5.2.6.
func Sign(sk PrivateKey, msg, context []byte) (Signature, error) {
	if err := selftest.Run(selftest.Ed448Sign, func() bool {
		sig, err := signNoCheck(ed448KATSeed, ed448KATMessage, nil, 0)
		return err == nil && sig == ed448KATSignature
	}); err != nil {
		return Signature{}, err
	}
	return signNoCheck(sk, msg, context, 0)
}

// SignPH signs a message that the caller has already hashed with
// SHA-512, matching lc_ed448ph_sign's documented contract.
func SignPH(sk PrivateKey, prehashed, context []byte) (Signature, error) {
	if err := selftest.Run(selftest.Ed448Sign, func() bool {
		sig, err := signNoCheck(ed448KATSeed, ed448KATMessage, nil, 0)
		return err == nil && sig == ed448KATSignature
	}); err != nil {
		return Signature{}, err
	}
	return signNoCheck(sk, prehashed, context, 1)
}

func signNoCheck(sk PrivateKey, msg, context []byte, phflag byte) (Signature, error) {
	ek, pub := expand(sk)
	dom := dom4(phflag, context)

	rDigest := shake456(dom, ek.prefix[:], msg)
	r := new(big.Int).Mod(leBytesToInt(rDigest[:]), groupOrder)
	R := encodePoint(scalarMult(r, basePoint))

	kDigest := shake456(dom, R[:], pub[:], msg)
	k := new(big.Int).Mod(leBytesToInt(kDigest[:]), groupOrder)

	s := new(big.Int).Mod(new(big.Int).Add(r, new(big.Int).Mul(k, ek.scalar)), groupOrder)

	var sig Signature
	copy(sig[:SecretKeySize], R[:])
	copy(sig[SecretKeySize:], intToLEBytes(s, SecretKeySize))

	sidechannel.Wipe(rDigest[:])
	return sig, nil
}

// Verify checks a pure EdDSA (Ed448) signature, per RFC 8032 §5.2.7.
func Verify(pk PublicKey, msg, context []byte, sig Signature) bool {
	if err := selftest.Run(selftest.Ed448Verify, func() bool {
		return verifyNoCheck(ed448KATPublicKey, ed448KATMessage, nil, ed448KATSignature, 0)
	}); err != nil {
		return false
	}
	return verifyNoCheck(pk, msg, context, sig, 0)
}

// VerifyPH verifies a signature over a message the caller has already
// hashed with SHA-512, matching lc_ed448ph_verify.
func VerifyPH(pk PublicKey, prehashed, context []byte, sig Signature) bool {
	if err := selftest.Run(selftest.Ed448Verify, func() bool {
		return verifyNoCheck(ed448KATPublicKey, ed448KATMessage, nil, ed448KATSignature, 0)
	}); err != nil {
		return false
	}
	return verifyNoCheck(pk, prehashed, context, sig, 1)
}

func verifyNoCheck(pk PublicKey, msg, context []byte, sig Signature, phflag byte) bool {
	A, ok := decodePoint([encodedPointSize]byte(pk))
	if !ok {
		return false
	}
	var rEnc [encodedPointSize]byte
	copy(rEnc[:], sig[:SecretKeySize])
	R, ok := decodePoint(rEnc)
	if !ok {
		return false
	}
	s := leBytesToInt(sig[SecretKeySize:])
	if s.Cmp(groupOrder) >= 0 {
		return false
	}

	dom := dom4(phflag, context)
	kDigest := shake456(dom, rEnc[:], pk[:], msg)
	k := new(big.Int).Mod(leBytesToInt(kDigest[:]), groupOrder)

	lhs := scalarMult(s, basePoint)
	rhs := pointAdd(R, scalarMult(k, A))
	return lhs.x.Cmp(rhs.x) == 0 && lhs.y.Cmp(rhs.y) == 0
}

// Known-answer seed, derived public key, message, and signature,
// independently computed (not transcribed) with a from-scratch Python
// reference implementation of this same algorithm against RFC 8032's
// published curve parameters, then re-verified by that script's own
// sign/verify round trip before being committed here (see DESIGN.md).
var (
	ed448KATSeed = PrivateKey{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
		0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27,
		0x28, 0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e, 0x2f,
		0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37,
		0x38,
	}
	ed448KATPublicKey = PublicKey{
		0x18, 0xd0, 0xa7, 0x0e, 0x42, 0xa7, 0x42, 0xdf,
		0xb5, 0x61, 0x27, 0x98, 0x93, 0x38, 0x50, 0x61,
		0xd7, 0xb4, 0xda, 0xd8, 0xf6, 0xfe, 0xed, 0x47,
		0x91, 0xea, 0xab, 0x66, 0xb2, 0xf4, 0xa4, 0xf0,
		0x2f, 0xc0, 0x94, 0x62, 0xa8, 0xbf, 0xb1, 0x84,
		0x2d, 0x0b, 0xac, 0x60, 0xe8, 0xa1, 0xb3, 0xe5,
		0x5b, 0xa2, 0x40, 0x7f, 0x33, 0x22, 0x6f, 0x38,
		0x00,
	}
	ed448KATMessage   = []byte("leancrypto ed448 self-test message")
	ed448KATSignature = Signature{
		0x30, 0xdc, 0x47, 0x84, 0xc0, 0x31, 0xd9, 0x57,
		0x35, 0x16, 0xf7, 0xf7, 0xc7, 0x4b, 0x63, 0x92,
		0x9b, 0x06, 0x7d, 0x63, 0x6f, 0xce, 0xcd, 0xa3,
		0xe4, 0xd0, 0xc0, 0xdf, 0xd5, 0x44, 0xaf, 0x28,
		0x7e, 0xdd, 0xc7, 0x78, 0x6a, 0x72, 0xef, 0x4c,
		0x62, 0x90, 0x0b, 0x1e, 0x9d, 0x81, 0xc2, 0x3a,
		0x27, 0x88, 0xe7, 0x39, 0xa8, 0xe0, 0x7b, 0x73,
		0x00,
		0x86, 0xf4, 0x34, 0x7b, 0x07, 0xae, 0xb7, 0x79,
		0x9b, 0x87, 0xcf, 0x2d, 0x78, 0x29, 0xf1, 0x44,
		0xe4, 0xf0, 0xa3, 0xa5, 0xfa, 0x00, 0x54, 0xbe,
		0x66, 0x85, 0x79, 0x43, 0xae, 0xc2, 0xf6, 0xfe,
		0xc7, 0xf7, 0xa1, 0xcb, 0x81, 0x4d, 0xab, 0x4d,
		0xdb, 0xa6, 0x54, 0x79, 0x8f, 0x01, 0xdb, 0x38,
		0xc4, 0x48, 0x33, 0xae, 0xd5, 0x9c, 0x62, 0x2f,
		0x00,
	}
)
