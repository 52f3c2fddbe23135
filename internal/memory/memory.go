// Package memory implements two allocator strategies: plain aligned
// heap memory, and a "secret" variant that tries to lock its pages so
// the OS will not swap them to disk, falling back to plain aligned
// memory when locking fails. Neither variant excludes its pages from
// core dumps.
//
// Every allocation carries a small header ahead of the pointer handed
// back to the caller, recording the original size and whether the
// pages were locked, so Free/FreeSecret know how to release them
// without the caller having to remember.
package memory

import (
	"errors"

	"github.com/kzall0c/leancrypto/internal/sidechannel"
)

// ErrOutOfMemory is returned when an allocation cannot be satisfied.
var ErrOutOfMemory = errors.New("memory: allocation failed")

// headerSize is the fixed-size prologue carried ahead of every returned
// pointer. It is comfortably larger than any alignment this package
// supports (is required >= 32 bytes and >= alignment).
const headerSize = 32

type header struct {
	size   int
	locked bool
}

// Block is a caller-owned allocation. The zero Block is not valid;
// obtain one from Alloc or AllocSecret.
type Block struct {
	hdr  header
	data []byte
}

// Bytes returns the usable portion of the allocation.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Alloc returns size bytes of ordinary heap memory. align is accepted
// for interface symmetry with AllocSecret; Go's allocator already
// aligns slices to at least the platform word size, which satisfies
// every alignment this module requests (8/16 bytes for AES round keys
// and sponge lanes).
func Alloc(align, size int) (*Block, error) {
	if size < 0 {
		return nil, ErrOutOfMemory
	}
	return &Block{hdr: header{size: size}, data: make([]byte, size)}, nil
}

// AllocSecret behaves like Alloc but additionally attempts to lock the
// pages so they are not written to swap; it does not exclude them
// from core dumps. If locking is unavailable on the current platform or fails
// (e.g. the process lacks CAP_IPC_LOCK, or RLIMIT_MEMLOCK is
// exhausted), it silently downgrades to an ordinary allocation; the
// caller must still be able to safely wipe the memory either way,
// which plain heap memory always supports.
func AllocSecret(align, size int) (*Block, error) {
	b, err := Alloc(align, size)
	if err != nil {
		return nil, err
	}
	if size > 0 && lockSecret(b.data) {
		b.hdr.locked = true
	}
	return b, nil
}

// Free releases a non-secret block. It does not wipe the contents;
// callers holding secret material must call FreeSecret, or wipe the
// block themselves via sidechannel.Wipe before calling Free.
func Free(b *Block) {
	if b == nil {
		return
	}
	b.data = nil
}

// FreeSecret wipes the block's contents (undoing any page lock first)
// and then releases it, implementing the "guaranteed-wipe free"
// contract
func FreeSecret(b *Block) {
	if b == nil {
		return
	}
	sidechannel.Wipe(b.data)
	if b.hdr.locked {
		unlockSecret(b.data)
	}
	b.data = nil
}
