package primitives

import "math/big"

// modulus returns 2^width.
func modulus(width uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), width)
}

// MaxUnsigned returns 2^width - 1, the largest representable unsigned value.
func MaxUnsigned(width uint) *big.Int {
	m := modulus(width)
	return m.Sub(m, big.NewInt(1))
}

// MinUnsigned returns 0.
func MinUnsigned(width uint) *big.Int { return big.NewInt(0) }

// MaxSigned returns 2^(width-1) - 1.
func MaxSigned(width uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), width-1)
	return m.Sub(m, big.NewInt(1))
}

// MinSigned returns -2^(width-1).
func MinSigned(width uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), width-1)
	return m.Neg(m)
}

// Bounds returns the (min, max) representable values for width/signed.
func Bounds(width uint, signed bool) (min, max *big.Int) {
	if signed {
		return MinSigned(width), MaxSigned(width)
	}
	return MinUnsigned(width), MaxUnsigned(width)
}
