// Package sponge implements the absorb/squeeze state machine
// shared by every Keccak-derived hash/XOF variant this
// module ships (SHA-3, SHAKE, cSHAKE, KMAC) and by the Ascon-based
// hash/XOF variants, over a pluggable permutation function. The
// package never decides what a variant's rate, padding byte, or
// digest size should be — that is each variant's job in the `hash`
// package; this package only runs the state machine once those are
// fixed.
//
// The byte-level Add/Extract/Permute entry points exist so higher
// constructions — cSHAKE's customization-string prologue, KMAC's key
// prefix — can write directly into the state instead of round-tripping
// through Write/Read, exactly as is required.
package sponge

import "encoding/binary"

// Permutation mutates a 25-lane state in place. Keccak-f[1600] uses all
// 25 lanes; Ascon-p uses only the first 5 (sponge state is
// defined with a fixed 25-lane array precisely so one engine can host
// either).
type Permutation func(lanes *[25]uint64)

// phase tracks which side of the one-way absorb->squeeze transition a
// State is on.
type phase uint8

const (
	absorbing phase = iota
	squeezing
)

// State is the sponge automaton A zero State is not
// valid; call Init before any other method.
type State struct {
	lanes [25]uint64

	permute Permutation
	rate    int // bytes exposed to input/output per permutation
	lanes64 int // rate/8, number of 64-bit lanes touched per block

	// padByte is XORed into the state at the current partial-block
	// offset when finalize runs. finalHighBit additionally XORs 0x80
	// into the last byte of the block (FIPS-202 "pad10*1"); Ascon's
	// simple single-bit pad sets padByte=0x01 and finalHighBit=false
	// since its one pad byte already reaches the block boundary.
	padByte      byte
	finalHighBit bool

	msgLen     uint64 // bytes absorbed since the last Init, mod rate tracked via offset
	phase      phase
	offset     int // bytes delivered/consumed in the current block
	digestSize int // 0 means extendable (XOF); fixed means Init locks this
	fixedSize  bool
	bigEndian  bool // Ascon loads/stores lane bytes big-endian; Keccak-derived variants are little-endian
}

// Params fixes the shape of a sponge instance. Rate and permutation
// never change after Init (: "no entry point outside init
// may change them").
type Params struct {
	Permutation  Permutation
	Rate         int // bytes
	PadByte      byte
	FinalHighBit bool
	DigestSize   int  // bytes; 0 for an XOF
	Fixed        bool // true: SetDigestSize is forbidden
	BigEndian    bool // Ascon's byte order; false for every Keccak-f[1600] variant
}

// Init resets s to the empty-absorbing state described by p. The
// underlying lane array is zeroed; callers that need a non-zero
// starting state (cSHAKE's customization prologue, Ascon's IV) write
// it with AddBytes/SetLanes immediately after Init.
func (s *State) Init(p Params) {
	if p.Rate <= 0 || p.Rate%8 != 0 || p.Rate > 25*8 {
		panic("sponge: invalid rate")
	}
	s.lanes = [25]uint64{}
	s.permute = p.Permutation
	s.rate = p.Rate
	s.lanes64 = p.Rate / 8
	s.padByte = p.PadByte
	s.finalHighBit = p.FinalHighBit
	s.digestSize = p.DigestSize
	s.fixedSize = p.Fixed
	s.bigEndian = p.BigEndian
	s.msgLen = 0
	s.phase = absorbing
	s.offset = 0
}

// SetLanes XORs raw 64-bit lanes into the state. Used by variants that
// need to seed an initialization vector before absorbing any message
// bytes (Ascon's domain-separated IV).
func (s *State) SetLanes(values ...uint64) {
	for i, v := range values {
		if i >= 25 {
			break
		}
		s.lanes[i] ^= v
	}
}

// Permute runs the configured permutation once, independent of the
// absorb/squeeze bookkeeping. Exposed for constructions (Ascon's AEAD
// duplexing) that interleave permutation calls with raw lane access.
func (s *State) Permute() {
	s.permute(&s.lanes)
}

// Lanes exposes the raw 25-lane array so a duplex AEAD construction
// can take over state management after using this package's
// bytepad/encode_string prologue to key it — a direct XOR across
// whichever prefix of the lane array the configured permutation
// actually uses, rather than routing every byte through Update/Squeeze.
func (s *State) Lanes() *[25]uint64 { return &s.lanes }

// Rate returns the configured rate in bytes.
func (s *State) Rate() int { return s.rate }

// Update absorbs data into the state. It is only valid in the
// absorbing phase; calling it once squeezing has started is undefined.
func (s *State) Update(data []byte) {
	if s.phase != absorbing {
		panic("sponge: Update called after squeeze has started")
	}
	s.absorbBytes(data)
	s.msgLen += uint64(len(data))
}

// AddBytes absorbs raw bytes without advancing msgLen bookkeeping
// beyond what absorbBytes itself does. It is the byte-level primitive
// constructions like cSHAKE's bytepad prologue use so their framing
// bytes are absorbed exactly like message bytes, without counting
// against the caller-visible Update semantics.
func (s *State) AddBytes(data []byte) {
	if s.phase != absorbing {
		panic("sponge: AddBytes called after squeeze has started")
	}
	s.absorbBytes(data)
}

func (s *State) absorbBytes(data []byte) {
	rate := s.rate
	for len(data) > 0 {
		n := rate - s.offset
		if n > len(data) {
			n = len(data)
		}
		if s.bigEndian {
			xorIntoBE(&s.lanes, s.offset, data[:n])
		} else {
			xorInto(&s.lanes, s.offset, data[:n])
		}
		s.offset += n
		data = data[n:]
		if s.offset == rate {
			s.permute(&s.lanes)
			s.offset = 0
		}
	}
}

// SetDigestSize changes the target output length of an XOF. Forbidden
// for fixed-digest variants, and only valid before the first squeeze
//.
func (s *State) SetDigestSize(n int) {
	if s.fixedSize {
		panic("sponge: SetDigestSize on a fixed-digest variant")
	}
	if s.phase == squeezing {
		panic("sponge: SetDigestSize after squeezing has begun")
	}
	s.digestSize = n
}

// DigestSize returns the currently configured output length.
func (s *State) DigestSize() int { return s.digestSize }

// finalize performs the one-way absorbing->squeezing transition: it
// injects the padding byte at the current offset, optionally sets the
// final block's high bit, permutes, and resets offset to 0 for
// squeezing.
func (s *State) finalize() {
	// XOR the variant's padding byte at the current partial-block offset.
	if s.bigEndian {
		xorByteBE(&s.lanes, s.offset, s.padByte)
		if s.finalHighBit {
			xorByteBE(&s.lanes, s.rate-1, 0x80)
		}
	} else {
		xorByte(&s.lanes, s.offset, s.padByte)
		if s.finalHighBit {
			xorByte(&s.lanes, s.rate-1, 0x80)
		}
	}
	s.permute(&s.lanes)
	s.phase = squeezing
	s.offset = 0
}

// Squeeze delivers n bytes of output, permuting the state as needed to
// produce more rate-sized blocks. The first call transitions the state
// from absorbing to squeezing if it has not already happened. A
// squeeze of n==0 is a no-op and leaves offset unchanged.
func (s *State) Squeeze(out []byte) {
	if len(out) == 0 {
		return
	}
	if s.phase == absorbing {
		s.finalize()
	}
	rate := s.rate
	for len(out) > 0 {
		if s.offset == rate {
			s.permute(&s.lanes)
			s.offset = 0
		}
		n := rate - s.offset
		if n > len(out) {
			n = len(out)
		}
		if s.bigEndian {
			extractFromBE(&s.lanes, s.offset, out[:n])
		} else {
			extractFrom(&s.lanes, s.offset, out[:n])
		}
		s.offset += n
		out = out[n:]
	}
}

// ExtractBytes is an alias for Squeeze under the byte-level primitive
// name original_source/hash/src/sha3.c uses ("sponge_extract_bytes").
func (s *State) ExtractBytes(out []byte) { s.Squeeze(out) }

// Sum finalizes a copy of s (s itself is left untouched, matching
// hash.Hash semantics) and returns n bytes of output appended to b.
func (s *State) Sum(b []byte, n int) []byte {
	clone := *s
	out := make([]byte, n)
	clone.Squeeze(out)
	return append(b, out...)
}

func xorInto(lanes *[25]uint64, offset int, data []byte) {
	li := offset / 8
	lo := offset % 8
	for len(data) > 0 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], lanes[li])
		n := 8 - lo
		if n > len(data) {
			n = len(data)
		}
		for i := 0; i < n; i++ {
			buf[lo+i] ^= data[i]
		}
		lanes[li] = binary.LittleEndian.Uint64(buf[:])
		data = data[n:]
		li++
		lo = 0
	}
}

func xorByte(lanes *[25]uint64, offset int, b byte) {
	li := offset / 8
	lo := offset % 8
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], lanes[li])
	buf[lo] ^= b
	lanes[li] = binary.LittleEndian.Uint64(buf[:])
}

func extractFrom(lanes *[25]uint64, offset int, out []byte) {
	li := offset / 8
	lo := offset % 8
	for len(out) > 0 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], lanes[li])
		n := 8 - lo
		if n > len(out) {
			n = len(out)
		}
		copy(out[:n], buf[lo:lo+n])
		out = out[n:]
		li++
		lo = 0
	}
}

// xorIntoBE, xorByteBE, and extractFromBE are byte-identical to their
// little-endian counterparts except for the lane's byte order: Ascon
// loads and stores each 64-bit lane most-significant-byte first.
func xorIntoBE(lanes *[25]uint64, offset int, data []byte) {
	li := offset / 8
	lo := offset % 8
	for len(data) > 0 {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], lanes[li])
		n := 8 - lo
		if n > len(data) {
			n = len(data)
		}
		for i := 0; i < n; i++ {
			buf[lo+i] ^= data[i]
		}
		lanes[li] = binary.BigEndian.Uint64(buf[:])
		data = data[n:]
		li++
		lo = 0
	}
}

func xorByteBE(lanes *[25]uint64, offset int, b byte) {
	li := offset / 8
	lo := offset % 8
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], lanes[li])
	buf[lo] ^= b
	lanes[li] = binary.BigEndian.Uint64(buf[:])
}

func extractFromBE(lanes *[25]uint64, offset int, out []byte) {
	li := offset / 8
	lo := offset % 8
	for len(out) > 0 {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], lanes[li])
		n := 8 - lo
		if n > len(out) {
			n = len(out)
		}
		copy(out[:n], buf[lo:lo+n])
		out = out[n:]
		li++
		lo = 0
	}
}
