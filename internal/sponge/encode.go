package sponge

// LeftEncode, RightEncode, EncodeString, and BytePad implement the
// NIST SP 800-185 integer/string encodings that cSHAKE and KMAC layer
// on top of the raw sponge: left_encode prefixes a length so it can be
// parsed unambiguously from the front of a string, right_encode
// suffixes one so it can be parsed from the back, encode_string
// combines left_encode(bitlen) with the string itself, and bytepad
// zero-pads a sequence of encoded strings out to a multiple of w
// bytes. These are absorbed directly into a State via AddBytes so
// cSHAKE's customization prologue and KMAC's key prefix never need a
// public Update call of their own.

// LeftEncode absorbs left_encode(value) into s and returns the number
// of bytes written.
func LeftEncode(s *State, value uint64) int {
	b := encodeBytes(value)
	out := make([]byte, 1+len(b))
	out[0] = byte(len(b))
	copy(out[1:], b)
	s.AddBytes(out)
	return len(out)
}

// RightEncode absorbs right_encode(value) into s and returns the
// number of bytes written.
func RightEncode(s *State, value uint64) int {
	b := encodeBytes(value)
	out := make([]byte, len(b)+1)
	copy(out, b)
	out[len(b)] = byte(len(b))
	s.AddBytes(out)
	return len(out)
}

// encodeBytes returns the minimal big-endian encoding of value, with a
// single zero byte standing in for value == 0 (matching the reference
// left_encode/right_encode behavior for the zero length case).
func encodeBytes(value uint64) []byte {
	if value == 0 {
		return []byte{0}
	}
	var buf [8]byte
	n := 8
	for v, i := value, 7; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	for n > 1 && buf[8-n] == 0 {
		n--
	}
	return buf[8-n:]
}

// EncodeString absorbs left_encode(len(str)*8) || str into s — the
// "encode_string" primitive used for cSHAKE's N and S strings and for
// KMAC's encoded key.
func EncodeString(s *State, str []byte) int {
	n := LeftEncode(s, uint64(len(str))*8)
	s.AddBytes(str)
	return n + len(str)
}

// BytePadPrefix absorbs left_encode(w) into s, the first field of the
// bytepad(X, w) construction (NIST SP 800-185 §2.3.3), and returns the
// number of bytes written. Callers follow it with whatever
// EncodeString/LeftEncode calls make up X, summing the byte counts
// those return, then call ZeroPad with the running total to finish the
// construction.
func BytePadPrefix(s *State, w int) int {
	return LeftEncode(s, uint64(w))
}

// ZeroPad absorbs zero bytes into s so that count (the number of bytes
// already absorbed as part of the bytepad(X, w) construction, starting
// from the BytePadPrefix call) becomes a multiple of w.
func ZeroPad(s *State, w int, count int) {
	n := w - (count % w)
	if n == w {
		return
	}
	var zero [256]byte
	for n > 0 {
		k := n
		if k > len(zero) {
			k = len(zero)
		}
		s.AddBytes(zero[:k])
		n -= k
	}
}
