package dispatch

import "github.com/kzall0c/leancrypto/drbg"

var chacha20DRNGTable = NewTable(
	Impl[drbg.RNG]{Name: "chacha20-drng/avx2", Require: MaskAVX2, New: func() (drbg.RNG, error) { return drbg.NewChaCha20DRNG(), nil }},
	Impl[drbg.RNG]{Name: "chacha20-drng/armneon", Require: MaskARMNEON, New: func() (drbg.RNG, error) { return drbg.NewChaCha20DRNG(), nil }},
	Impl[drbg.RNG]{Name: "chacha20-drng/portable", Require: 0, New: func() (drbg.RNG, error) { return drbg.NewChaCha20DRNG(), nil }},
)

var kmacDRNGTable = NewTable(
	Impl[drbg.RNG]{Name: "kmac-drng/avx2", Require: MaskAVX2, New: func() (drbg.RNG, error) { return drbg.NewKMACDRNG(), nil }},
	Impl[drbg.RNG]{Name: "kmac-drng/portable", Require: 0, New: func() (drbg.RNG, error) { return drbg.NewKMACDRNG(), nil }},
)

var xdrbg128Table = NewTable(
	Impl[drbg.RNG]{Name: "xdrbg128/armaes", Require: MaskARMAES, New: func() (drbg.RNG, error) { return drbg.NewXDRBG128(), nil }},
	Impl[drbg.RNG]{Name: "xdrbg128/portable", Require: 0, New: func() (drbg.RNG, error) { return drbg.NewXDRBG128(), nil }},
)

var xdrbg256Table = NewTable(
	Impl[drbg.RNG]{Name: "xdrbg256/avx2", Require: MaskAVX2, New: func() (drbg.RNG, error) { return drbg.NewXDRBG256(), nil }},
	Impl[drbg.RNG]{Name: "xdrbg256/portable", Require: 0, New: func() (drbg.RNG, error) { return drbg.NewXDRBG256(), nil }},
)

var xdrbg512Table = NewTable(
	Impl[drbg.RNG]{Name: "xdrbg512/avx2", Require: MaskAVX2, New: func() (drbg.RNG, error) { return drbg.NewXDRBG512(), nil }},
	Impl[drbg.RNG]{Name: "xdrbg512/portable", Require: 0, New: func() (drbg.RNG, error) { return drbg.NewXDRBG512(), nil }},
)

func ChaCha20DRNG() (drbg.RNG, string, error) { return chacha20DRNGTable.Get() }
func KMACDRNG() (drbg.RNG, string, error)     { return kmacDRNGTable.Get() }
func XDRBG128() (drbg.RNG, string, error)     { return xdrbg128Table.Get() }
func XDRBG256() (drbg.RNG, string, error)     { return xdrbg256Table.Get() }
func XDRBG512() (drbg.RNG, string, error)     { return xdrbg512Table.Get() }
