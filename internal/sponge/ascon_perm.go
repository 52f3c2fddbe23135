package sponge

import "math/bits"

// asconRC holds the 12 round constants of the Ascon permutation
// (Ascon v1.2 / NIST SP 800-232 §2.6.1, table 4). pN-round variants
// use the last N constants of this table: p12 uses all of them, p8 the last 8, p6
// the last 6.
var asconRC = [12]uint64{
	0x00000000000000f0,
	0x00000000000000e1,
	0x00000000000000d2,
	0x00000000000000c3,
	0x00000000000000b4,
	0x00000000000000a5,
	0x0000000000000096,
	0x0000000000000087,
	0x0000000000000078,
	0x0000000000000069,
	0x000000000000005a,
	0x000000000000004b,
}

// AsconP returns a Permutation running the last rounds constants of
// the Ascon round function over lanes[0:5], leaving lanes[5:25]
// untouched. It is how the generic 25-lane sponge.State hosts a
// permutation whose native state is only 320 bits.
func AsconP(rounds int) Permutation {
	rc := asconRC[len(asconRC)-rounds:]
	return func(lanes *[25]uint64) {
		asconRound(lanes, rc)
	}
}

// AsconP12, AsconP8, and AsconP6 are the permutation depths used by
// Ascon's hash (p12 throughout), and by its AEAD duplex construction
// for the initialization/finalization round (p12) versus the
// per-block round (p8 for Ascon-128a, p6 for Ascon-128).
var (
	AsconP12 = AsconP(12)
	AsconP8  = AsconP(8)
	AsconP6  = AsconP(6)
)

func asconRound(lanes *[25]uint64, rc []uint64) {
	x0, x1, x2, x3, x4 := lanes[0], lanes[1], lanes[2], lanes[3], lanes[4]

	for _, r := range rc {
		x2 ^= r

		x0 ^= x4
		x4 ^= x3
		x2 ^= x1

		t0 := ^x0
		t1 := ^x1
		t2 := ^x2
		t3 := ^x3
		t4 := ^x4

		t0 &= x1
		t1 &= x2
		t2 &= x3
		t3 &= x4
		t4 &= x0

		x0 ^= t1
		x1 ^= t2
		x2 ^= t3
		x3 ^= t4
		x4 ^= t0

		x1 ^= x0
		x0 ^= x4
		x3 ^= x2
		x2 = ^x2

		x0 = x0 ^ bits.RotateLeft64(x0, -19) ^ bits.RotateLeft64(x0, -28)
		x1 = x1 ^ bits.RotateLeft64(x1, -61) ^ bits.RotateLeft64(x1, -39)
		x2 = x2 ^ bits.RotateLeft64(x2, -1) ^ bits.RotateLeft64(x2, -6)
		x3 = x3 ^ bits.RotateLeft64(x3, -10) ^ bits.RotateLeft64(x3, -17)
		x4 = x4 ^ bits.RotateLeft64(x4, -7) ^ bits.RotateLeft64(x4, -41)
	}

	lanes[0], lanes[1], lanes[2], lanes[3], lanes[4] = x0, x1, x2, x3, x4
}
