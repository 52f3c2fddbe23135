package dispatch

import (
	"github.com/kzall0c/leancrypto/aead"
	"github.com/kzall0c/leancrypto/sym"
)

// Keyed primitives (AES, AES-GCM, and the AEAD families that wrap
// them) take a caller-supplied key on every construction, so there is
// no single instance for a Table to hand back the way there is for
// SHA3_256() or ChaCha20DRNG(). What IS cacheable is the one-time
// choice of which table entry satisfies the process's CPU features and
// passes its self-test gate.
// These tables probe with a synthetic key purely to trigger that gate,
// discard the probe instance, and leave real construction — with the
// caller's real key — to the wrapper function below.

var aesProbeKey = make([]byte, 16)

var aesTable = NewTable(
	Impl[struct{}]{Name: "aes/aesni", Require: MaskAESNI, New: func() (struct{}, error) {
		_, err := sym.NewAES(aesProbeKey)
		return struct{}{}, err
	}},
	Impl[struct{}]{Name: "aes/armaes", Require: MaskARMAES, New: func() (struct{}, error) {
		_, err := sym.NewAES(aesProbeKey)
		return struct{}{}, err
	}},
	Impl[struct{}]{Name: "aes/portable", Require: 0, New: func() (struct{}, error) {
		_, err := sym.NewAES(aesProbeKey)
		return struct{}{}, err
	}},
)

var aesGCMTable = NewTable(
	Impl[struct{}]{Name: "aes-gcm/aesni", Require: MaskAESNI, New: func() (struct{}, error) {
		_, err := aead.NewAESGCM(aesProbeKey)
		return struct{}{}, err
	}},
	Impl[struct{}]{Name: "aes-gcm/armaes", Require: MaskARMAES, New: func() (struct{}, error) {
		_, err := aead.NewAESGCM(aesProbeKey)
		return struct{}{}, err
	}},
	Impl[struct{}]{Name: "aes-gcm/portable", Require: 0, New: func() (struct{}, error) {
		_, err := aead.NewAESGCM(aesProbeKey)
		return struct{}{}, err
	}},
)

// AES constructs an AES instance with key after confirming the
// dispatch table's winning entry passed its self-test gate, returning
// that entry's name alongside the usual (*sym.AES, error) pair.
func AES(key []byte) (*sym.AES, string, error) {
	_, name, err := aesTable.Get()
	if err != nil {
		return nil, "", err
	}
	a, err := sym.NewAES(key)
	return a, name, err
}

// AESGCM is AES's counterpart for the AEAD runtime (C10).
func AESGCM(key []byte) (*aead.AESGCM, string, error) {
	_, name, err := aesGCMTable.Get()
	if err != nil {
		return nil, "", err
	}
	a, err := aead.NewAESGCM(key)
	return a, name, err
}
