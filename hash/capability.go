// Package hash binds the sponge engine in internal/sponge to concrete
// permutations, rates, padding bytes, and digest policies, producing
// the Hash capability: SHA-3, SHAKE, cSHAKE, the
// Ascon hash family, and (as a thin adapter over the standard library,
// since it is not sponge-based) SHA-2.
//
// Every constructor here runs its primitive's self-test exactly once
// per process via internal/selftest before returning a usable
// instance; a failed self-test makes the primitive permanently
// unusable.
package hash

import "io"

// Hash is the fixed-digest half of the capability: write message
// bytes, then read out a digest. It is satisfied by the standard
// library's hash.Hash (Reset/Size/BlockSize/Write/Sum), spelled out
// here so this package does not need to import "hash" just to name
// the shape.
type Hash interface {
	io.Writer
	Sum(b []byte) []byte
	Reset()
	Size() int
	BlockSize() int
}

// XOF is the extendable-output half of the capability: the digest
// length is chosen by the caller, either up front via SetDigestSize or
// by reading an arbitrary number of bytes.
type XOF interface {
	io.Writer
	io.Reader
	Reset()
	BlockSize() int
	SetDigestSize(n int)
	DigestSize() int
}

// Cloner is implemented by variants that support snapshotting their
// state (needed by CXOF's fixed-prologue optimization and by tests
// that want to resume a hash from a checkpoint).
type Cloner[T any] interface {
	Clone() T
}
