package ed448

import "math/big"

// point is an affine point on the Edwards curve x^2 + y^2 = 1 + d*x^2*y^2
// over GF(p). The curve has cofactor 4 and Ed448's d is a non-square,
// so these unified addition formulas are complete: they need no
// special-casing for doublings or for the identity.
type point struct {
	x, y *big.Int
}

var identity = point{x: big.NewInt(0), y: big.NewInt(1)}

// basePoint is RFC 8032's Ed448 generator B, transcribed from its
// 57-byte encoding and cross-checked against the curve equation and
// against L*B == identity with an independent reference script before
// being committed here (see DESIGN.md).
var basePoint = point{
	x: mustBig("4f1970c66bed0ded221d15a622bf36da9e146570470f1767ea6de324a3d3a46412ae1af72ab66511433b80e18b00938e2626a82bc70cc05e"),
	y: mustBig("693f46716eb6bc248876203756c9c7624bea73736ca3984087789c1e05a0c2d73ad3ff1ce67c39c4fdbd132c4ed7c8ad9808795bf230fa14"),
}

// groupOrder is L, the prime order of the subgroup generated by B.
var groupOrder = mustBig("3fffffffffffffffffffffffffffffffffffffffffffffffffffffff7cca23e9c44edb49aed63690216cc2728dc58f552378c292ab5844f3")

func mustBig(hexDigits string) *big.Int {
	n, ok := new(big.Int).SetString(hexDigits, 16)
	if !ok {
		panic("ed448: invalid constant")
	}
	return n
}

func pointAdd(a, b point) point {
	x1y2 := fieldMul(a.x, b.y)
	x2y1 := fieldMul(b.x, a.y)
	x1x2 := fieldMul(a.x, b.x)
	y1y2 := fieldMul(a.y, b.y)
	dxy := fieldMul(curveD, fieldMul(x1x2, y1y2))

	x3 := fieldMul(fieldAdd(x1y2, x2y1), fieldInv(fieldAdd(big.NewInt(1), dxy)))
	y3 := fieldMul(fieldSub(y1y2, x1x2), fieldInv(fieldSub(big.NewInt(1), dxy)))
	return point{x: x3, y: y3}
}

// scalarMult computes k*P via plain double-and-add. k is treated as
// non-negative; callers reduce mod groupOrder first where that matters.
func scalarMult(k *big.Int, p point) point {
	result := identity
	base := p
	bits := k.BitLen()
	for i := 0; i < bits; i++ {
		if k.Bit(i) == 1 {
			result = pointAdd(result, base)
		}
		base = pointAdd(base, base)
	}
	return result
}

const encodedPointSize = 57

// encodePoint produces the 57-byte little-endian encoding of p: y in
// the low 455 bits, the parity of x in the top bit of the last byte.
func encodePoint(p point) [encodedPointSize]byte {
	var out [encodedPointSize]byte
	yBytes := p.y.Bytes()
	for i := 0; i < len(yBytes); i++ {
		out[i] = yBytes[len(yBytes)-1-i]
	}
	if p.x.Bit(0) == 1 {
		out[encodedPointSize-1] |= 0x80
	}
	return out
}

// decodePoint recovers a point from its 57-byte encoding, recomputing
// x from y via the curve equation and rejecting any encoding whose
// claimed x does not actually exist or whose sign bit is inconsistent
// with x == 0.
func decodePoint(enc [encodedPointSize]byte) (point, bool) {
	sign := (enc[encodedPointSize-1] >> 7) & 1
	le := make([]byte, encodedPointSize)
	copy(le, enc[:])
	le[encodedPointSize-1] &^= 0x80
	y := new(big.Int)
	for i := len(le) - 1; i >= 0; i-- {
		y.Lsh(y, 8)
		y.Or(y, big.NewInt(int64(le[i])))
	}
	y.Mod(y, fieldPrime)

	y2 := fieldMul(y, y)
	num := fieldSub(y2, big.NewInt(1))
	den := fieldSub(fieldMul(curveD, y2), big.NewInt(1))
	denInv := fieldInv(den)
	if denInv == nil {
		return point{}, false
	}
	x2 := fieldMul(num, denInv)
	x := fieldSqrt(x2)
	if fieldMul(x, x).Cmp(x2) != 0 {
		return point{}, false
	}
	if x.Sign() == 0 {
		if sign == 1 {
			return point{}, false
		}
	} else if uint(x.Bit(0)) != uint(sign) {
		x = fieldSub(fieldPrime, x)
	}
	return point{x: x, y: y}, true
}
