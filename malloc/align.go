package malloc

import "golang.org/x/exp/constraints"

// Ispowerof2 return true if x is a non-zero power of two.
func Ispowerof2[T constraints.Integer](x T) bool {
	return x > 0 && (x&(x-1)) == 0
}

// Alignup round x up to the next multiple of align, align must be a
// power of two.
func Alignup[T constraints.Integer](x, align T) T {
	return (x + align - 1) &^ (align - 1)
}

// Padding number of bytes to add to x to make it a multiple of align.
func Padding[T constraints.Integer](x, align T) T {
	return Alignup(x, align) - x
}

// Isaligned return true if x is a multiple of align.
func Isaligned[T constraints.Integer](x, align T) bool {
	return (x & (align - 1)) == 0
}
