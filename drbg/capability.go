// Package drbg implements the three deterministic random-bit
// generators — ChaCha20-DRNG, KMAC-DRNG, and XDRBG —
// all built around the same fast-key-erasure discipline: every
// generate call derives a replacement key before it releases a single
// byte of output, so recovering the output never recovers a key that
// could reproduce it ("the next key is always computed and
// stored before any output derived from the current state is
// released").
package drbg

// RNG is the capability every DRBG in this package exposes: seed it
// with caller-supplied entropy (optionally contributing a
// personalization/customization string), then pull bytes. Zero wipes
// all key/state material and resets the instance to its never-seeded
// state; Reseed must be called again before Generate produces output
// backed by fresh entropy.
type RNG interface {
	Reseed(seed, additional []byte)
	Generate(out, additional []byte)
	Zero()
}
