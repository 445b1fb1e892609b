package rope

import "math/bits"

// Bitmap is a 128-bit mask addressing the bytes of a RawChunk.
// Bit i corresponds to byte i of the chunk text.
type Bitmap struct {
	lo, hi uint64
}

// BitmapOnes returns a bitmap with the low n bits set.
func BitmapOnes(n int) Bitmap {
	switch {
	case n <= 0:
		return Bitmap{}
	case n < 64:
		return Bitmap{lo: 1<<uint(n) - 1}
	case n < 128:
		return Bitmap{lo: ^uint64(0), hi: 1<<uint(n-64) - 1}
	default:
		return Bitmap{lo: ^uint64(0), hi: ^uint64(0)}
	}
}

// Set returns b with bit i set.
func (b Bitmap) Set(i int) Bitmap {
	if i < 64 {
		b.lo |= 1 << uint(i)
	} else if i < 128 {
		b.hi |= 1 << uint(i-64)
	}
	return b
}

// Has reports whether bit i is set.
func (b Bitmap) Has(i int) bool {
	if i < 0 || i >= 128 {
		return false
	}
	if i < 64 {
		return b.lo&(1<<uint(i)) != 0
	}
	return b.hi&(1<<uint(i-64)) != 0
}

// IsZero reports whether no bits are set.
func (b Bitmap) IsZero() bool {
	return b.lo == 0 && b.hi == 0
}

// And returns the intersection of b and other.
func (b Bitmap) And(other Bitmap) Bitmap {
	return Bitmap{lo: b.lo & other.lo, hi: b.hi & other.hi}
}

// Or returns the union of b and other.
func (b Bitmap) Or(other Bitmap) Bitmap {
	return Bitmap{lo: b.lo | other.lo, hi: b.hi | other.hi}
}

// AndNot returns the bits of b not set in other.
func (b Bitmap) AndNot(other Bitmap) Bitmap {
	return Bitmap{lo: b.lo &^ other.lo, hi: b.hi &^ other.hi}
}

// Shr shifts b right by n bits; shifts of 128 or more yield zero.
func (b Bitmap) Shr(n int) Bitmap {
	switch {
	case n <= 0:
		return b
	case n < 64:
		return Bitmap{lo: b.lo>>uint(n) | b.hi<<uint(64-n), hi: b.hi >> uint(n)}
	case n < 128:
		return Bitmap{lo: b.hi >> uint(n-64)}
	default:
		return Bitmap{}
	}
}

// Shl shifts b left by n bits; shifts of 128 or more yield zero.
func (b Bitmap) Shl(n int) Bitmap {
	switch {
	case n <= 0:
		return b
	case n < 64:
		return Bitmap{lo: b.lo << uint(n), hi: b.hi<<uint(n) | b.lo>>uint(64-n)}
	case n < 128:
		return Bitmap{hi: b.lo << uint(n-64)}
	default:
		return Bitmap{}
	}
}

// TrailingZeros returns the index of the lowest set bit, or 128 if none.
func (b Bitmap) TrailingZeros() int {
	if b.lo != 0 {
		return bits.TrailingZeros64(b.lo)
	}
	return 64 + bits.TrailingZeros64(b.hi)
}

// LeadingZeros returns the number of unset bits above the highest set bit.
func (b Bitmap) LeadingZeros() int {
	if b.hi != 0 {
		return bits.LeadingZeros64(b.hi)
	}
	return 64 + bits.LeadingZeros64(b.lo)
}

// OnesCount returns the number of set bits.
func (b Bitmap) OnesCount() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// ClearLowest returns b with its lowest set bit cleared.
func (b Bitmap) ClearLowest() Bitmap {
	if b.lo != 0 {
		b.lo &= b.lo - 1
	} else {
		b.hi &= b.hi - 1
	}
	return b
}
