package lib

// Bit8 alias for uint8, provides bit twiddling methods on a byte of a
// bitmap.
type Bit8 uint8

// Setbit return byte with nth bit set.
func (b Bit8) Setbit(n uint8) uint8 {
	return uint8(b | (1 << n))
}

// Clearbit return byte with nth bit cleared.
func (b Bit8) Clearbit(n uint8) uint8 {
	return uint8(b &^ (1 << n))
}

// Isset return true if nth bit is set.
func (b Bit8) Isset(n uint8) bool {
	return b&(1<<n) != 0
}

// Ones return number of set bits.
func (b Bit8) Ones() int8 {
	n := int8(0)
	for ; b != 0; b &= b - 1 {
		n++
	}
	return n
}
