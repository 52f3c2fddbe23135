// Package sym provides the Sym capability: a keyed
// block cipher that can encrypt/decrypt single blocks, used as the
// lower layer under package aead's AES-GCM construction. It has no
// counter-mode keystream of its own.
//
// AES itself is delegated to crypto/aes rather than reimplemented: it
// is the one block cipher where writing a portable, constant-time
// implementation by hand is a well known foot-gun (table-based S-box
// lookups leak timing through the cache unless written in bitsliced
// form), and every third-party Go crypto library in this module's
// dependency pack that touches AES delegates block operations to
// crypto/aes for exactly that reason — see DESIGN.md. This package's
// own contribution is the capability interface and the self-test gate
// layered on top of it.
package sym

// Sym is satisfied by a keyed block cipher. Zero wipes the retained
// key material; the underlying crypto/aes.Block's own precomputed
// round keys are not exposed for wiping, so Zero renders the instance
// permanently unusable rather than merely unseeded.
type Sym interface {
	BlockSize() int
	KeySize() int
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
	Zero()
}
