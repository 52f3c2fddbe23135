// Package pqc defines the contracts a post-quantum KEM or signature
// backend would have to satisfy to be registered with package
// dispatch, without shipping any such backend: ML-KEM, ML-DSA,
// SLH-DSA, HQC, and BIKE algebra are mathematical internals this
// module places out of scope, same as curve25519/curve448's own field
// arithmetic. What is in scope is the seam: the shapes below mirror
// the capability/dispatch pattern the rest of this module uses for
// every concrete primitive (a stateless capability interface, plus a
// dispatch.Impl-shaped registration slot), so that a concrete package
// implementing them later needs no changes to this module's runtime.
package pqc

import "errors"

// ErrNotImplemented is what every stub in this package returns: there
// is no concrete PQ algebra here, only the registration shape for it.
var ErrNotImplemented = errors.New("pqc: no backend registered for this algorithm")

// KEM is the capability a post-quantum key-encapsulation backend
// (ML-KEM, HQC, ...) must expose: a key pair, and the two halves of
// encapsulation, shaped after NIST SP 800-227's Encaps/Decaps split
// rather than after X25519's Diffie-Hellman shape, since a KEM's
// public operation produces both a ciphertext and a shared secret in
// one step.
type KEM interface {
	// Name identifies the concrete algorithm and parameter set, e.g.
	// "ML-KEM-768".
	Name() string

	PublicKeySize() int
	PrivateKeySize() int
	CiphertextSize() int
	SharedSecretSize() int

	Keygen() (pk, sk []byte, err error)
	Encapsulate(pk []byte) (ciphertext, sharedSecret []byte, err error)
	Decapsulate(sk, ciphertext []byte) (sharedSecret []byte, err error)
}

// Signer is the capability a post-quantum signature backend (ML-DSA,
// SLH-DSA, ...) must expose, shaped to match this module's existing
// ed448.Sign/Verify pair so a caller can swap one for the other behind
// a common call site.
type Signer interface {
	Name() string

	PublicKeySize() int
	PrivateKeySize() int
	SignatureSize() int

	Keygen() (pk, sk []byte, err error)
	Sign(sk, msg, context []byte) (signature []byte, err error)
	Verify(pk, msg, context, signature []byte) bool
}

// unimplementedKEM and unimplementedSigner let dispatch carry a named
// registration slot for an algorithm nothing in this module backs yet,
// so the slot's presence (and its name and sizes, once a real scheme
// is chosen) is visible in the dispatch table before any backend
// exists to satisfy it.
type unimplementedKEM struct {
	name                                                            string
	publicKeySize, privateKeySize, ciphertextSize, sharedSecretSize int
}

func (u unimplementedKEM) Name() string          { return u.name }
func (u unimplementedKEM) PublicKeySize() int    { return u.publicKeySize }
func (u unimplementedKEM) PrivateKeySize() int   { return u.privateKeySize }
func (u unimplementedKEM) CiphertextSize() int   { return u.ciphertextSize }
func (u unimplementedKEM) SharedSecretSize() int { return u.sharedSecretSize }

func (u unimplementedKEM) Keygen() ([]byte, []byte, error) {
	return nil, nil, ErrNotImplemented
}
func (u unimplementedKEM) Encapsulate([]byte) ([]byte, []byte, error) {
	return nil, nil, ErrNotImplemented
}
func (u unimplementedKEM) Decapsulate([]byte, []byte) ([]byte, error) {
	return nil, ErrNotImplemented
}

type unimplementedSigner struct {
	name                                           string
	publicKeySize, privateKeySize, signatureSize int
}

func (u unimplementedSigner) Name() string        { return u.name }
func (u unimplementedSigner) PublicKeySize() int  { return u.publicKeySize }
func (u unimplementedSigner) PrivateKeySize() int { return u.privateKeySize }
func (u unimplementedSigner) SignatureSize() int  { return u.signatureSize }

func (u unimplementedSigner) Keygen() ([]byte, []byte, error) { return nil, nil, ErrNotImplemented }
func (u unimplementedSigner) Sign([]byte, []byte, []byte) ([]byte, error) {
	return nil, ErrNotImplemented
}
func (u unimplementedSigner) Verify([]byte, []byte, []byte, []byte) bool { return false }

// NIST SP 800-227/FIPS 203/204/205 parameter sets named here purely so
// the registration slot carries the right advertised sizes; the sizes
// are public constants of each standard, not something this module
// computes.
var (
	MLKEM512  KEM = unimplementedKEM{name: "ML-KEM-512", publicKeySize: 800, privateKeySize: 1632, ciphertextSize: 768, sharedSecretSize: 32}
	MLKEM768  KEM = unimplementedKEM{name: "ML-KEM-768", publicKeySize: 1184, privateKeySize: 2400, ciphertextSize: 1088, sharedSecretSize: 32}
	MLKEM1024 KEM = unimplementedKEM{name: "ML-KEM-1024", publicKeySize: 1568, privateKeySize: 3168, ciphertextSize: 1568, sharedSecretSize: 32}

	MLDSA44 Signer = unimplementedSigner{name: "ML-DSA-44", publicKeySize: 1312, privateKeySize: 2560, signatureSize: 2420}
	MLDSA65 Signer = unimplementedSigner{name: "ML-DSA-65", publicKeySize: 1952, privateKeySize: 4032, signatureSize: 3309}
	MLDSA87 Signer = unimplementedSigner{name: "ML-DSA-87", publicKeySize: 2592, privateKeySize: 4896, signatureSize: 4627}

	SLHDSASHA2128s Signer = unimplementedSigner{name: "SLH-DSA-SHA2-128s", publicKeySize: 32, privateKeySize: 64, signatureSize: 7856}

	HQC128 KEM = unimplementedKEM{name: "HQC-128", publicKeySize: 2249, privateKeySize: 2305, ciphertextSize: 4433, sharedSecretSize: 64}

	BIKEL1 KEM = unimplementedKEM{name: "BIKE-L1", publicKeySize: 1541, privateKeySize: 3110, ciphertextSize: 1573, sharedSecretSize: 32}
)
