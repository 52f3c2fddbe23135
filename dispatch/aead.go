package dispatch

import "github.com/kzall0c/leancrypto/aead"

var hashAEADProbeKey = []byte("dispatch hash-aead probe key")
var kmacAEADProbeKey = []byte("dispatch kmac-aead probe key")

var hashAEADTable = NewTable(
	Impl[struct{}]{Name: "hash-aead/avx2", Require: MaskAVX2, New: func() (struct{}, error) {
		return struct{}{}, probeHashAEAD()
	}},
	Impl[struct{}]{Name: "hash-aead/portable", Require: 0, New: func() (struct{}, error) {
		return struct{}{}, probeHashAEAD()
	}},
)

var kmacAEADTable = NewTable(
	Impl[struct{}]{Name: "kmac-aead/avx2", Require: MaskAVX2, New: func() (struct{}, error) {
		return struct{}{}, probeKMACAEAD()
	}},
	Impl[struct{}]{Name: "kmac-aead/portable", Require: 0, New: func() (struct{}, error) {
		return struct{}{}, probeKMACAEAD()
	}},
)

// probeHashAEAD and probeKMACAEAD exist only to trigger their
// primitive's self-test gate for the table's first Get(): both
// constructors panic rather than return an error on a latched-failed
// gate, which probe() in table.go already knows how to turn back into
// a plain error.
func probeHashAEAD() error {
	aead.NewHashAEAD(hashAEADProbeKey)
	return nil
}

func probeKMACAEAD() error {
	aead.NewKMACAEAD(kmacAEADProbeKey)
	return nil
}

func HashAEAD(key []byte) (*aead.HashAEAD, string, error) {
	_, name, err := hashAEADTable.Get()
	if err != nil {
		return nil, "", err
	}
	return aead.NewHashAEAD(key), name, nil
}

func KMACAEAD(key []byte) (*aead.KMACAEAD, string, error) {
	_, name, err := kmacAEADTable.Get()
	if err != nil {
		return nil, "", err
	}
	return aead.NewKMACAEAD(key), name, nil
}
