package aead

import "encoding/hex"

// mustHexAEAD decodes a literal hex string used to embed a
// known-answer vector in source; it panics on malformed input, which
// would be a bug in this package, not a runtime condition callers can
// hit.
func mustHexAEAD(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("aead: malformed KAT literal: " + err.Error())
	}
	return b
}
