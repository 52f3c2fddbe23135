// Package sidechannel provides the constant-time memory primitives that
// every other package in this module builds on: wiping secret buffers,
// conditionally moving bytes without branching on secret data, and
// comparing buffers without leaking timing information about where they
// first differ.
//
// None of the functions here allocate. Callers own the buffers; this
// package only ever reads or writes bytes already handed to it.
package sidechannel

import "crypto/subtle"

// blocker is read once per Cmov call to deny the compiler a cheap branch
// to fold cond into. It is never written to after init, so the read is
// just a speed bump against constant propagation, not a real secret.
var blocker uint8 = 0xa5

// Wipe overwrites buf with zero bytes. The call survives dead-store
// elimination: subtle.ConstantTimeCopy is specified to actually touch
// every byte of its destination, which is the property a plain
// "for i := range buf { buf[i] = 0 }" loop does not have once the
// compiler can prove buf is never read again.
func Wipe(buf []byte) {
	if len(buf) == 0 {
		return
	}
	zero := make([]byte, len(buf))
	subtle.ConstantTimeCopy(1, buf, zero)
}

// WipeAll wipes every buffer in bufs. A nil or empty buffer is skipped.
func WipeAll(bufs ...[]byte) {
	for _, b := range bufs {
		Wipe(b)
	}
}

// Cmov sets dst[i] = src[i] for all i < len(dst) when cond == 1, and
// leaves dst unchanged when cond == 0. len(dst) must equal len(src).
// Runtime is independent of cond and of the contents of dst/src.
func Cmov(dst, src []byte, cond uint8) {
	if len(dst) != len(src) {
		panic("sidechannel: Cmov length mismatch")
	}
	mask := uint8((-int8(cond & 1)))
	b := blocker
	for i := range dst {
		// XOR the opaque blocker in and back out so a compiler cannot
		// reconstruct "select(cond, src[i], dst[i])" as a branch.
		d := dst[i] ^ b
		s := src[i] ^ b
		d ^= b
		s ^= b
		dst[i] = (d &^ mask) | (s & mask)
	}
}

// ConstantTimeCompare reports whether a and b are equal using a
// sum-of-XORs reduction that never short-circuits on the first
// mismatching byte. Returns false when the lengths differ (this leaks
// length, which is assumed public, exactly like subtle.ConstantTimeCompare).
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Poison marks buf as holding secret material for dynamic analysis
// tooling (e.g. a memory/timing sanitizer run under valgrind-style
// instrumentation). It is a no-op in a normal build; the hook exists so
// every secret touched by the core can be annotated at the call site
// the way requires, without pulling in a tool-specific import
// unconditionally.
func Poison(buf []byte) {
	poisonHook(buf)
}

// Unpoison marks buf as public again, once it has become ciphertext, a
// public key, a signature, or some other output safe to examine with
// data-dependent control flow.
func Unpoison(buf []byte) {
	unpoisonHook(buf)
}

// poisonHook/unpoisonHook are variables rather than plain functions so a
// build that links a dynamic-analysis shim can replace them at init time
// (e.g. from a _test.go file built only under a "timecop" tag) without
// this package needing to know about the tool.
var (
	poisonHook   = func([]byte) {}
	unpoisonHook = func([]byte) {}
)
