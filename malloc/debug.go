//go:build debug

package malloc

// initblock fill freshly handed out memory with 0xff, so that reads
// of uninitialized memory stand out.
func initblock(dst []byte) {
	for len(dst) > 0 {
		n := copy(dst, poolblkinit)
		dst = dst[n:]
	}
}
