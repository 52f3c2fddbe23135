package sponge

import "math/bits"

// KeccakF1600 is the standard 24-round Keccak-f[1600] permutation
// (FIPS-202 §3.3), written as a per-round loop like the Ascon
// permutation in ascon_perm.go so the two back-ends read as one
// family even though their internal step mappings differ.
func KeccakF1600(lanes *[25]uint64) {
	for round := 0; round < 24; round++ {
		keccakRound(lanes, keccakRC[round])
	}
}

var keccakRC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotation offsets for rho, indexed [x][y] with x,y in 0..4 (x + 5y is
// the lane index used throughout).
var keccakRot = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

func keccakRound(lanes *[25]uint64, rc uint64) {
	var a [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] = lanes[x+5*y]
		}
	}

	// theta
	var c [5]uint64
	for x := 0; x < 5; x++ {
		c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
	}
	var d [5]uint64
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] ^= d[x]
		}
	}

	// rho + pi
	var b [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			b[y][(2*x+3*y)%5] = bits.RotateLeft64(a[x][y], keccakRot[x][y])
		}
	}

	// chi
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
		}
	}

	// iota
	a[0][0] ^= rc

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			lanes[x+5*y] = a[x][y]
		}
	}
}
