package hash

import (
	"bytes"
	"testing"
)

func TestSHA3EmptyMessage(t *testing.T) {
	cases := []struct {
		name string
		new  func() interface{ Sum([]byte) []byte }
		want []byte
	}{
		{"224", func() interface{ Sum([]byte) []byte } { return NewSHA3_224() }, sha3KAT224Digest},
		{"256", func() interface{ Sum([]byte) []byte } { return NewSHA3_256() }, sha3KAT256Digest},
		{"384", func() interface{ Sum([]byte) []byte } { return NewSHA3_384() }, sha3KAT384Digest},
		{"512", func() interface{ Sum([]byte) []byte } { return NewSHA3_512() }, sha3KAT512Digest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.new().Sum(nil)
			if !bytes.Equal(got, c.want) {
				t.Fatalf("got %x, want %x", got, c.want)
			}
		})
	}
}

func TestSHAKEEmptyMessage(t *testing.T) {
	h := NewSHAKE128()
	out := make([]byte, len(shake128KATOutput))
	h.Read(out)
	if !bytes.Equal(out, shake128KATOutput) {
		t.Fatalf("SHAKE128: got %x, want %x", out, shake128KATOutput)
	}

	h2 := NewSHAKE256()
	out2 := make([]byte, len(shake256KATOutput))
	h2.Read(out2)
	if !bytes.Equal(out2, shake256KATOutput) {
		t.Fatalf("SHAKE256: got %x, want %x", out2, shake256KATOutput)
	}
}

func TestSHAKEArbitraryDigestSize(t *testing.T) {
	h := NewSHAKE256()
	h.SetDigestSize(200)
	out := make([]byte, 200)
	h.Read(out)
	if !bytes.Equal(out[:len(shake256KATOutput)], shake256KATOutput) {
		t.Fatal("first bytes of a longer squeeze must match the shorter KAT prefix")
	}
}

func TestCSHAKESample(t *testing.T) {
	h := NewCSHAKE128(cshakeKATN, cshakeKATS)
	h.Write(cshakeKATMsg)
	out := make([]byte, len(cshake128KATOutput))
	h.Read(out)
	if !bytes.Equal(out, cshake128KATOutput) {
		t.Fatalf("cSHAKE128: got %x, want %x", out, cshake128KATOutput)
	}

	h2 := NewCSHAKE256(cshakeKATN, cshakeKATS)
	h2.Write(cshakeKATMsg)
	out2 := make([]byte, len(cshake256KATOutput))
	h2.Read(out2)
	if !bytes.Equal(out2, cshake256KATOutput) {
		t.Fatalf("cSHAKE256: got %x, want %x", out2, cshake256KATOutput)
	}
}

func TestCSHAKEDegeneratesToSHAKE(t *testing.T) {
	c := NewCSHAKE256(nil, nil)
	s := NewSHAKE256()
	msg := []byte("degenerate case")
	c.Write(msg)
	s.Write(msg)
	a := make([]byte, 32)
	b := make([]byte, 32)
	c.Read(a)
	s.Read(b)
	if !bytes.Equal(a, b) {
		t.Fatalf("cSHAKE256 with empty N/S must match SHAKE256: %x != %x", a, b)
	}
}

func TestAsconHash256Empty(t *testing.T) {
	h := NewAsconHash256()
	got := h.Sum(nil)
	if !bytes.Equal(got, asconHash256KATEmpty) {
		t.Fatalf("got %x, want %x", got, asconHash256KATEmpty)
	}
}

func TestSHA2EmptyMessage(t *testing.T) {
	h := NewSHA2_256()
	if got := h.Sum(nil); !bytes.Equal(got, sha256EmptyKAT) {
		t.Fatalf("SHA2-256: got %x, want %x", got, sha256EmptyKAT)
	}
	h2 := NewSHA2_512()
	if got := h2.Sum(nil); !bytes.Equal(got, sha512EmptyKAT) {
		t.Fatalf("SHA2-512: got %x, want %x", got, sha512EmptyKAT)
	}
}

func TestSHA2Clone(t *testing.T) {
	h := NewSHA2_256()
	h.Write([]byte("part one"))
	clone := h.Clone()
	clone.Write([]byte("part two"))
	h.Write([]byte("part two"))
	if !bytes.Equal(h.Sum(nil), clone.Sum(nil)) {
		t.Fatal("clone diverged from original after writing the same suffix")
	}
}

func TestHashReset(t *testing.T) {
	h := NewSHA3_256()
	h.Write([]byte("some data"))
	h.Reset()
	if got := h.Sum(nil); !bytes.Equal(got, sha3KAT256Digest) {
		t.Fatalf("after Reset, got %x, want empty-message digest %x", got, sha3KAT256Digest)
	}
}
