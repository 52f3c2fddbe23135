package dispatch

import lchash "github.com/kzall0c/leancrypto/hash"

// Each table below names an "accelerated" slot gated on the ISA
// extension a real vectorized Keccak-f[1600]/SHA-2 back-end would
// need, ahead of the portable entry package hash already ships. See
// table.go's package comment for why both slots call the same
// constructor today.

var sha3_224Table = NewTable(
	Impl[lchash.Hash]{Name: "sha3-224/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA3_224(), nil }},
	Impl[lchash.Hash]{Name: "sha3-224/armsha3", Require: MaskARMSHA3, New: func() (lchash.Hash, error) { return lchash.NewSHA3_224(), nil }},
	Impl[lchash.Hash]{Name: "sha3-224/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA3_224(), nil }},
)

var sha3_256Table = NewTable(
	Impl[lchash.Hash]{Name: "sha3-256/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA3_256(), nil }},
	Impl[lchash.Hash]{Name: "sha3-256/armsha3", Require: MaskARMSHA3, New: func() (lchash.Hash, error) { return lchash.NewSHA3_256(), nil }},
	Impl[lchash.Hash]{Name: "sha3-256/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA3_256(), nil }},
)

var sha3_384Table = NewTable(
	Impl[lchash.Hash]{Name: "sha3-384/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA3_384(), nil }},
	Impl[lchash.Hash]{Name: "sha3-384/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA3_384(), nil }},
)

var sha3_512Table = NewTable(
	Impl[lchash.Hash]{Name: "sha3-512/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA3_512(), nil }},
	Impl[lchash.Hash]{Name: "sha3-512/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA3_512(), nil }},
)

var shake128Table = NewTable(
	Impl[lchash.XOF]{Name: "shake128/avx2", Require: MaskAVX2, New: func() (lchash.XOF, error) { return lchash.NewSHAKE128(), nil }},
	Impl[lchash.XOF]{Name: "shake128/portable", Require: 0, New: func() (lchash.XOF, error) { return lchash.NewSHAKE128(), nil }},
)

var shake256Table = NewTable(
	Impl[lchash.XOF]{Name: "shake256/avx2", Require: MaskAVX2, New: func() (lchash.XOF, error) { return lchash.NewSHAKE256(), nil }},
	Impl[lchash.XOF]{Name: "shake256/portable", Require: 0, New: func() (lchash.XOF, error) { return lchash.NewSHAKE256(), nil }},
)

var asconHash256Table = NewTable(
	Impl[lchash.Hash]{Name: "ascon-hash256/armaes", Require: MaskARMAES, New: func() (lchash.Hash, error) { return lchash.NewAsconHash256(), nil }},
	Impl[lchash.Hash]{Name: "ascon-hash256/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewAsconHash256(), nil }},
)

var asconXOF128Table = NewTable(
	Impl[lchash.XOF]{Name: "ascon-xof128/armaes", Require: MaskARMAES, New: func() (lchash.XOF, error) { return lchash.NewAsconXOF128(), nil }},
	Impl[lchash.XOF]{Name: "ascon-xof128/portable", Require: 0, New: func() (lchash.XOF, error) { return lchash.NewAsconXOF128(), nil }},
)

var sha2_256Table = NewTable(
	Impl[lchash.Hash]{Name: "sha2-256/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA2_256(), nil }},
	Impl[lchash.Hash]{Name: "sha2-256/armsha2", Require: MaskARMSHA2, New: func() (lchash.Hash, error) { return lchash.NewSHA2_256(), nil }},
	Impl[lchash.Hash]{Name: "sha2-256/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA2_256(), nil }},
)

var sha2_512Table = NewTable(
	Impl[lchash.Hash]{Name: "sha2-512/avx2", Require: MaskAVX2, New: func() (lchash.Hash, error) { return lchash.NewSHA2_512(), nil }},
	Impl[lchash.Hash]{Name: "sha2-512/armsha2", Require: MaskARMSHA2, New: func() (lchash.Hash, error) { return lchash.NewSHA2_512(), nil }},
	Impl[lchash.Hash]{Name: "sha2-512/portable", Require: 0, New: func() (lchash.Hash, error) { return lchash.NewSHA2_512(), nil }},
)

// SHA3_224, SHA3_256, SHA3_384, SHA3_512, SHAKE128, SHAKE256,
// AsconHash256, AsconXOF128, SHA2_256, and SHA2_512 return a
// dispatch-selected instance of their primitive plus the name of the
// table entry chosen, or ErrNoImplementation/selftest failure wrapped
// from the losing entries if every candidate was rejected.
func SHA3_224() (lchash.Hash, string, error) { return sha3_224Table.Get() }
func SHA3_256() (lchash.Hash, string, error) { return sha3_256Table.Get() }
func SHA3_384() (lchash.Hash, string, error) { return sha3_384Table.Get() }
func SHA3_512() (lchash.Hash, string, error) { return sha3_512Table.Get() }
func SHAKE128() (lchash.XOF, string, error)  { return shake128Table.Get() }
func SHAKE256() (lchash.XOF, string, error)  { return shake256Table.Get() }
func AsconHash256() (lchash.Hash, string, error) { return asconHash256Table.Get() }
func AsconXOF128() (lchash.XOF, string, error)   { return asconXOF128Table.Get() }
func SHA2_256() (lchash.Hash, string, error) { return sha2_256Table.Get() }
func SHA2_512() (lchash.Hash, string, error) { return sha2_512Table.Get() }
