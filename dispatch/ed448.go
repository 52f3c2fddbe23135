package dispatch

import (
	"github.com/kzall0c/leancrypto/drbg"
	"github.com/kzall0c/leancrypto/ed448"
)

var ed448KeygenProbe = NewTable(
	Impl[struct{}]{Name: "ed448-keygen/avx2", Require: MaskAVX2, New: probeEd448Keygen},
	Impl[struct{}]{Name: "ed448-keygen/armneon", Require: MaskARMNEON, New: probeEd448Keygen},
	Impl[struct{}]{Name: "ed448-keygen/portable", Require: 0, New: probeEd448Keygen},
)

func probeEd448Keygen() (struct{}, error) {
	rng := drbg.NewChaCha20DRNG()
	_, _, err := ed448.Keygen(rng)
	return struct{}{}, err
}

// Ed448Keygen runs the dispatch selection once and then generates a
// real key pair using rng.
func Ed448Keygen(rng drbg.RNG) (ed448.PublicKey, ed448.PrivateKey, string, error) {
	_, name, err := ed448KeygenProbe.Get()
	if err != nil {
		return ed448.PublicKey{}, ed448.PrivateKey{}, "", err
	}
	pk, sk, err := ed448.Keygen(rng)
	return pk, sk, name, err
}
