package layout

// spreadBits1 inserts a zero bit between each of the low 16 bits of v.
func spreadBits1(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// compactBits1 is the inverse of spreadBits1: it collects every other bit
// of v into the low 16 bits.
func compactBits1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | (v >> 1)) & 0x33333333
	v = (v | (v >> 2)) & 0x0F0F0F0F
	v = (v | (v >> 4)) & 0x00FF00FF
	v = (v | (v >> 8)) & 0x0000FFFF
	return v
}

// MortonEncode interleaves the bits of x (even positions) and y (odd
// positions) into a single z-order code.
func MortonEncode(x, y uint32) uint32 {
	return spreadBits1(x) | (spreadBits1(y) << 1)
}

// MortonX extracts the x coordinate from a z-order code.
func MortonX(code uint32) uint32 {
	return compactBits1(code)
}

// MortonY extracts the y coordinate from a z-order code.
func MortonY(code uint32) uint32 {
	return compactBits1(code >> 1)
}
