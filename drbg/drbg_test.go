package drbg

import (
	"bytes"
	"testing"
)

func TestChaCha20DRNGZeroStateKAT(t *testing.T) {
	d := NewChaCha20DRNG()
	out := make([]byte, cc20KeySize)
	d.Generate(out, nil)
	if !bytes.Equal(out, cc20ZeroStateKAT) {
		t.Fatalf("got %x, want %x", out, cc20ZeroStateKAT)
	}
}

func TestChaCha20DRNGReseedChangesOutput(t *testing.T) {
	a := NewChaCha20DRNG()
	outA := make([]byte, 32)
	a.Generate(outA, nil)

	b := NewChaCha20DRNG()
	b.Reseed([]byte("some seed material"), nil)
	outB := make([]byte, 32)
	b.Generate(outB, nil)

	if bytes.Equal(outA, outB) {
		t.Fatal("reseeding must change the generator's output")
	}
}

func TestChaCha20DRNGFastKeyErasure(t *testing.T) {
	d := NewChaCha20DRNG()
	first := make([]byte, 64)
	d.Generate(first, nil)
	second := make([]byte, 64)
	d.Generate(second, nil)
	if bytes.Equal(first, second) {
		t.Fatal("successive Generate calls must not repeat output")
	}
}

func TestKMACDRNGZeroStateKAT(t *testing.T) {
	d := NewKMACDRNG()
	out := make([]byte, 32)
	d.Generate(out, nil)
	if !bytes.Equal(out, kmacDRNGZeroStateKAT) {
		t.Fatalf("got %x, want %x", out, kmacDRNGZeroStateKAT)
	}
}

func TestKMACDRNGLargeRequestChunking(t *testing.T) {
	d := NewKMACDRNG()
	out := make([]byte, kmacDRNGMaxChunk+1000)
	d.Generate(out, nil)

	d2 := NewKMACDRNG()
	out2 := make([]byte, kmacDRNGMaxChunk+1000)
	d2.Generate(out2, nil)

	if !bytes.Equal(out, out2) {
		t.Fatal("two freshly constructed generators must produce identical output for identical calls")
	}
}

func TestXDRBGVariantsProduceKeySizedV(t *testing.T) {
	for _, tc := range []struct {
		name string
		new  func() *XDRBG
		size int
	}{
		{"128", NewXDRBG128, 16},
		{"256", NewXDRBG256, 32},
		{"512", NewXDRBG512, 64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.new()
			d.Reseed(xdrbgKATSeed, nil)
			out := make([]byte, tc.size)
			d.Generate(out, nil)
			if len(out) != tc.size {
				t.Fatalf("got %d bytes, want %d", len(out), tc.size)
			}
			if len(d.v) != tc.size {
				t.Fatalf("len(V) = %d, want %d", len(d.v), tc.size)
			}
		})
	}
}

func TestXDRBGGenerateNeverRepeats(t *testing.T) {
	d := NewXDRBG256()
	d.Reseed(xdrbgKATSeed, nil)
	a := make([]byte, 48)
	d.Generate(a, nil)
	b := make([]byte, 48)
	d.Generate(b, nil)
	if bytes.Equal(a, b) {
		t.Fatal("successive Generate calls must not repeat output")
	}
}

func TestChaCha20DRNGZeroWipesState(t *testing.T) {
	d := NewChaCha20DRNG()
	d.Reseed([]byte("seed material"), nil)
	d.Zero()
	if d.key != [32]byte{} || d.nonce != [3]uint32{} || d.block != 0 || d.seeded {
		t.Fatal("Zero must wipe key, nonce, block counter, and seeded flag")
	}
}

func TestKMACDRNGZeroWipesState(t *testing.T) {
	d := NewKMACDRNG()
	d.Reseed([]byte("seed material"), nil)
	d.Zero()
	if d.key != [kmacDRNGKeySize]byte{} || d.seeded {
		t.Fatal("Zero must wipe key and seeded flag")
	}
}

func TestXDRBGZeroWipesState(t *testing.T) {
	d := NewXDRBG256()
	d.Reseed(xdrbgKATSeed, nil)
	before := append([]byte(nil), d.v...)
	d.Zero()
	if bytes.Equal(before, d.v) {
		t.Fatal("Zero must change v, not leave it untouched")
	}
	for _, b := range d.v {
		if b != 0 {
			t.Fatal("Zero must wipe v to all zeros")
		}
	}
	if d.hasV {
		t.Fatal("Zero must reset hasV")
	}
}

func TestRNGInterfaceSatisfiedByAllThreeDRNGs(t *testing.T) {
	var _ RNG = NewChaCha20DRNG()
	var _ RNG = NewKMACDRNG()
	var _ RNG = NewXDRBG256()
}

func TestXDRBGChunkedGenerateMatchesUnchunked(t *testing.T) {
	d := NewXDRBG256()
	d.Reseed(xdrbgKATSeed, nil)
	full := make([]byte, xdrbgChunkMax+100)
	d.Generate(full, nil)

	d2 := NewXDRBG256()
	d2.Reseed(xdrbgKATSeed, nil)
	first := make([]byte, xdrbgChunkMax)
	d2.Generate(first, nil)
	rest := make([]byte, 100)
	d2.Generate(rest, nil)

	if !bytes.Equal(full[:xdrbgChunkMax], first) || !bytes.Equal(full[xdrbgChunkMax:], rest) {
		t.Fatal("splitting one Generate call across the chunk boundary must not change the output stream")
	}
}
