package keyed

import "encoding/hex"

// mustHexKeyed decodes a literal hex string used to embed a
// known-answer vector in source; it panics on malformed input, which
// would be a bug in this package, not a runtime condition callers can
// hit.
func mustHexKeyed(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("keyed: malformed KAT literal: " + err.Error())
	}
	return b
}
