// Package keyed builds two keyed-function capabilities on top of the
// primitives in package hash: HMAC, layered generically over any
// fixed-digest Hash, and KMAC, layered directly over the sponge
// engine the same way cSHAKE is — higher constructions writing
// directly into sponge state.
package keyed

// MAC is the capability both HMAC and KMAC expose: absorb a message,
// then produce a tag. Unlike hash.Hash, a MAC is born keyed and cannot
// be reset to an unkeyed state.
type MAC interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
	Size() int
}
