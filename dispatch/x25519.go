package dispatch

import (
	"github.com/kzall0c/leancrypto/drbg"
	"github.com/kzall0c/leancrypto/x25519"
)

var x25519KeygenProbe = NewTable(
	Impl[struct{}]{Name: "x25519-keygen/avx2", Require: MaskAVX2, New: probeX25519Keygen},
	Impl[struct{}]{Name: "x25519-keygen/armneon", Require: MaskARMNEON, New: probeX25519Keygen},
	Impl[struct{}]{Name: "x25519-keygen/portable", Require: 0, New: probeX25519Keygen},
)

func probeX25519Keygen() (struct{}, error) {
	rng := drbg.NewChaCha20DRNG()
	_, _, err := x25519.Keygen(rng)
	return struct{}{}, err
}

// X25519Keygen runs the dispatch selection once and then generates a
// real key pair using rng.
func X25519Keygen(rng drbg.RNG) (x25519.PublicKey, x25519.PrivateKey, string, error) {
	_, name, err := x25519KeygenProbe.Get()
	if err != nil {
		return x25519.PublicKey{}, x25519.PrivateKey{}, "", err
	}
	pk, sk, err := x25519.Keygen(rng)
	return pk, sk, name, err
}
