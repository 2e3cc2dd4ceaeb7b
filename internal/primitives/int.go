package primitives

import "math/big"

// Int is an arbitrary-width two's-complement integer: a bit pattern of a fixed
// Width interpreted as signed or unsigned. Every arithmetic method is total
// (spec §4.1): it never panics on overflow, division by zero, or an
// out-of-range shift count, and always returns the accompanying Flags.
//
// val always holds the mathematical value under the receiver's own
// signedness: for an unsigned Int, 0 <= val < 2^Width; for a signed Int,
// -2^(Width-1) <= val <= 2^(Width-1)-1.
type Int struct {
	width  uint
	signed bool
	val    *big.Int
}

// NewInt builds an Int from an arbitrary big.Int, reducing it into the
// representable range for width/signed (two's-complement wraparound, not
// saturation — callers that want saturation use Next/Prev or the saturating
// arithmetic methods).
func NewInt(width uint, signed bool, value *big.Int) Int {
	return Int{width: width, signed: signed, val: wrapToRange(value, width, signed)}
}

func wrapToRange(value *big.Int, width uint, signed bool) *big.Int {
	m := modulus(width)
	reduced := new(big.Int).Mod(value, m) // Euclidean mod: always in [0, m)
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), width-1)
		if reduced.Cmp(half) >= 0 {
			reduced.Sub(reduced, m)
		}
	}
	return reduced
}

func (x Int) Width() uint     { return x.width }
func (x Int) Signed() bool    { return x.signed }
func (x Int) Big() *big.Int   { return new(big.Int).Set(x.val) }
func (x Int) IsZero() bool    { return x.val.Sign() == 0 }
func (x Int) Sign() int       { return x.val.Sign() }
func (x Int) String() string  { return x.val.String() }

// bits returns the receiver's raw two's-complement bit pattern as a value in
// [0, 2^Width), regardless of signedness. Bitwise, shift, concat and extract
// operations all go through this representation.
func (x Int) bits() *big.Int {
	if x.val.Sign() >= 0 {
		return new(big.Int).Set(x.val)
	}
	return new(big.Int).Add(x.val, modulus(x.width))
}

func fromBits(bits *big.Int, width uint, signed bool) Int {
	return NewInt(width, signed, bits)
}

// WithSignedness reinterprets the receiver's bit pattern under a different
// signedness at the same width, used for unsigned-with-signed mixed
// arithmetic (spec §6 operation catalogue).
func (x Int) WithSignedness(signed bool) Int {
	if signed == x.signed {
		return x
	}
	return fromBits(x.bits(), x.width, signed)
}

// clamp saturates v into width/signed's representable range: signed
// arithmetic saturates to the bound and flags the matching overflow; unsigned
// arithmetic wraps modulo 2^width and flags the matching overflow to mark the
// wrap (spec §4.1).
func clamp(v *big.Int, width uint, signed bool) (Int, Flags) {
	min, max := Bounds(width, signed)
	if v.Cmp(max) > 0 {
		if signed {
			return Int{width, signed, max}, Flags(0).Set(PositiveOverflow)
		}
		return Int{width, signed, wrapToRange(v, width, signed)}, Flags(0).Set(PositiveOverflow)
	}
	if v.Cmp(min) < 0 {
		if signed {
			return Int{width, signed, min}, Flags(0).Set(NegativeOverflow)
		}
		return Int{width, signed, wrapToRange(v, width, signed)}, Flags(0).Set(NegativeOverflow)
	}
	return Int{width, signed, v}, 0
}

// saturate always clamps to the bound on overflow, regardless of signedness —
// used by Next/Prev, which spec §4.1 fixes as saturating in both
// signednesses (unlike Add/Sub, which wrap for unsigned operands).
func saturate(v *big.Int, width uint, signed bool) (Int, Flags) {
	min, max := Bounds(width, signed)
	if v.Cmp(max) > 0 {
		return Int{width, signed, max}, Flags(0).Set(PositiveOverflow)
	}
	if v.Cmp(min) < 0 {
		return Int{width, signed, min}, Flags(0).Set(NegativeOverflow)
	}
	return Int{width, signed, v}, 0
}

// Next returns the saturating successor: next(max_signed) == max_signed with
// PositiveOverflow flagged (spec §4.1 fixed edge case).
func (x Int) Next() (Int, Flags) {
	return saturate(new(big.Int).Add(x.val, big.NewInt(1)), x.width, x.signed)
}

// Prev returns the saturating predecessor: prev(min_signed) == min_signed
// with NegativeOverflow flagged.
func (x Int) Prev() (Int, Flags) {
	return saturate(new(big.Int).Sub(x.val, big.NewInt(1)), x.width, x.signed)
}

func (x Int) Add(y Int) (Int, Flags) {
	return clamp(new(big.Int).Add(x.val, y.val), x.width, x.signed)
}

func (x Int) Sub(y Int) (Int, Flags) {
	return clamp(new(big.Int).Sub(x.val, y.val), x.width, x.signed)
}

func (x Int) Mul(y Int) (Int, Flags) {
	return clamp(new(big.Int).Mul(x.val, y.val), x.width, x.signed)
}

// Div performs truncating division. Division by zero returns the dividend
// unchanged and flags DivisionByZero (spec §4.1). Signed MinInt / -1
// saturates to MaxInt and flags PositiveOverflow, handled by clamp.
func (x Int) Div(y Int) (Int, Flags) {
	if y.IsZero() {
		return x, Flags(0).Set(DivisionByZero)
	}
	return clamp(new(big.Int).Quo(x.val, y.val), x.width, x.signed)
}

// Mod performs truncating remainder (sign of the dividend, C semantics).
// Modulo by zero is defined identically to Div by zero.
func (x Int) Mod(y Int) (Int, Flags) {
	if y.IsZero() {
		return x, Flags(0).Set(DivisionByZero)
	}
	return clamp(new(big.Int).Rem(x.val, y.val), x.width, x.signed)
}

// Neg computes the arithmetic opposite. -MinSigned saturates to MaxSigned and
// flags PositiveOverflow (spec §4.1 fixed edge case); handled by clamp.
func (x Int) Neg() (Int, Flags) {
	return clamp(new(big.Int).Neg(x.val), x.width, x.signed)
}

func (x Int) Min(y Int) Int {
	if x.val.Cmp(y.val) <= 0 {
		return x
	}
	return y
}

func (x Int) Max(y Int) Int {
	if x.val.Cmp(y.val) >= 0 {
		return x
	}
	return y
}

func (x Int) Equal(y Int) bool              { return x.val.Cmp(y.val) == 0 }
func (x Int) Less(y Int) bool               { return x.val.Cmp(y.val) < 0 }
func (x Int) LessOrEqual(y Int) bool        { return x.val.Cmp(y.val) <= 0 }
func (x Int) Greater(y Int) bool            { return x.val.Cmp(y.val) > 0 }
func (x Int) GreaterOrEqual(y Int) bool     { return x.val.Cmp(y.val) >= 0 }
func (x Int) Compare(y Int) int             { return x.val.Cmp(y.val) }

// shiftIsLoose reports whether n is a shift count that statically exceeds
// or equals width: spec §4.1 fixes the result for these as a flagged special
// case rather than delegating to the underlying shift primitive.
func shiftIsLoose(n, width uint) bool { return n >= width }

// Shl is the logical/arithmetic left shift (both signednesses share one bit
// pattern). Shifting by >= width yields zero and flags Inexact; bits shifted
// past the top of the width are lost and also flag Inexact.
func (x Int) Shl(n uint) (Int, Flags) {
	if shiftIsLoose(n, x.width) {
		return fromBits(big.NewInt(0), x.width, x.signed), Flags(0).Set(Inexact)
	}
	bits := x.bits()
	shifted := new(big.Int).Lsh(bits, n)
	masked := new(big.Int).Mod(shifted, modulus(x.width))
	var flags Flags
	if masked.Cmp(shifted) != 0 {
		flags = flags.Set(Inexact)
	}
	return fromBits(masked, x.width, x.signed), flags
}

// Lshr is the logical right shift: zero-filled regardless of signedness.
func (x Int) Lshr(n uint) (Int, Flags) {
	bits := x.bits()
	if shiftIsLoose(n, x.width) {
		flags := Flags(0).Set(Inexact)
		return fromBits(big.NewInt(0), x.width, x.signed), flags
	}
	lostMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), n), big.NewInt(1))
	lost := new(big.Int).And(bits, lostMask)
	shifted := new(big.Int).Rsh(bits, n)
	var flags Flags
	if lost.Sign() != 0 {
		flags = flags.Set(Inexact)
	}
	return fromBits(shifted, x.width, x.signed), flags
}

// Ashr is the arithmetic right shift: sign-filled. Shifting by >= width
// yields all-zero (non-negative input) or all-one (negative input), flagged
// Inexact (spec §4.1).
func (x Int) Ashr(n uint) (Int, Flags) {
	signed := x.WithSignedness(true)
	if shiftIsLoose(n, x.width) {
		fill := big.NewInt(0)
		if signed.val.Sign() < 0 {
			fill = new(big.Int).Neg(big.NewInt(1))
		}
		return NewInt(x.width, x.signed, fill), Flags(0).Set(Inexact)
	}
	shifted := new(big.Int).Rsh(signed.val, n) // big.Int.Rsh floors, i.e. arithmetic shift
	var flags Flags
	// Detect lost set bits below the shift for the inexact flag.
	lostMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), n), big.NewInt(1))
	if new(big.Int).And(x.bits(), lostMask).Sign() != 0 {
		flags = flags.Set(Inexact)
	}
	return NewInt(x.width, x.signed, shifted), flags
}

// Rotl/Rotr implement the left/right rotate operations named in the
// multi-bit operation catalogue (spec §6).
func (x Int) Rotl(n uint) Int {
	n %= x.width
	if n == 0 {
		return x
	}
	bits := x.bits()
	left := new(big.Int).Lsh(bits, n)
	right := new(big.Int).Rsh(bits, x.width-n)
	rotated := new(big.Int).Mod(new(big.Int).Or(left, right), modulus(x.width))
	return fromBits(rotated, x.width, x.signed)
}

func (x Int) Rotr(n uint) Int {
	n %= x.width
	if n == 0 {
		return x
	}
	return x.Rotl(x.width - n)
}

func (x Int) And(y Int) Int {
	return fromBits(new(big.Int).And(x.bits(), y.bits()), x.width, x.signed)
}

func (x Int) Or(y Int) Int {
	return fromBits(new(big.Int).Or(x.bits(), y.bits()), x.width, x.signed)
}

func (x Int) Xor(y Int) Int {
	return fromBits(new(big.Int).Xor(x.bits(), y.bits()), x.width, x.signed)
}

func (x Int) Not() Int {
	allOnes := MaxUnsigned(x.width)
	return fromBits(new(big.Int).Xor(x.bits(), allOnes), x.width, x.signed)
}

// Concat concatenates the receiver as the high-order bits with low as the
// low-order bits, producing a value of width x.width+low.width.
func (x Int) Concat(low Int, signed bool) Int {
	newWidth := x.width + low.width
	bits := new(big.Int).Lsh(x.bits(), low.width)
	bits.Or(bits, low.bits())
	return fromBits(bits, newWidth, signed)
}

// Extract pulls out the sub-range [start, start+length) of bits (LSB = bit
// 0), producing a value of width length.
func (x Int) Extract(start, length uint, signed bool) Int {
	shifted := new(big.Int).Rsh(x.bits(), start)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), length), big.NewInt(1))
	return fromBits(new(big.Int).And(shifted, mask), length, signed)
}

// BitSet returns the receiver with the sub-range [start, start+insert.width)
// overwritten by insert's bits, matching the bit-set operation of the
// multi-bit catalogue (spec §6).
func (x Int) BitSet(start uint, insert Int) Int {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), insert.width), big.NewInt(1))
	mask.Lsh(mask, start)
	mask.Xor(mask, MaxUnsigned(x.width))
	cleared := new(big.Int).And(x.bits(), mask)
	inserted := new(big.Int).Lsh(insert.bits(), start)
	return fromBits(new(big.Int).Or(cleared, inserted), x.width, x.signed)
}

// ZeroExtend widens the receiver to newWidth, treating the current bit
// pattern as unsigned (top bits become zero).
func (x Int) ZeroExtend(newWidth uint, signed bool) Int {
	return fromBits(x.bits(), newWidth, signed)
}

// SignExtend widens the receiver to newWidth, preserving its mathematical
// (signed) value.
func (x Int) SignExtend(newWidth uint, signed bool) Int {
	return NewInt(newWidth, signed, x.WithSignedness(true).val)
}

// Reduce narrows the receiver to newWidth, truncating high bits. Flags
// Inexact when information is lost.
func (x Int) Reduce(newWidth uint, signed bool) (Int, Flags) {
	bits := x.bits()
	mask := MaxUnsigned(newWidth)
	kept := new(big.Int).And(bits, mask)
	var flags Flags
	if new(big.Int).Rsh(bits, newWidth).Sign() != 0 {
		flags = flags.Set(Inexact)
	}
	return fromBits(kept, newWidth, signed), flags
}

// Cast is the unified entry point for the cast catalogue entry (spec §6):
// zero-extend/sign-extend when growing, reduce when shrinking, identity
// (modulo signedness reinterpretation) when the width is unchanged.
func (x Int) Cast(newWidth uint, signed bool, signExtend bool) (Int, Flags) {
	switch {
	case newWidth > x.width:
		if signExtend {
			return x.SignExtend(newWidth, signed), 0
		}
		return x.ZeroExtend(newWidth, signed), 0
	case newWidth < x.width:
		return x.Reduce(newWidth, signed)
	default:
		return x.WithSignedness(signed), 0
	}
}
