package malloc

import "unsafe"

import "github.com/kevinbcarpenter/b2b-custom-allocators/lib"

// freebits mark slots of a chunk that are handed out, one bit per
// slot. Used to reject double free.
type freebits struct {
	nslots int64
	nset   int64
	bitmap []uint8
}

func newfreebits(nslots int64) *freebits {
	return &freebits{nslots: nslots, bitmap: make([]uint8, ceil(nslots, 8))}
}

func (fbits *freebits) isset(slot int64) bool {
	q, r := slot>>3, uint8(slot&0x7)
	return lib.Bit8(fbits.bitmap[q]).Isset(r)
}

// set return false if slot is already set.
func (fbits *freebits) set(slot int64) bool {
	if fbits.isset(slot) {
		return false
	}
	q, r := slot>>3, uint8(slot&0x7)
	fbits.bitmap[q] = lib.Bit8(fbits.bitmap[q]).Setbit(r)
	fbits.nset++
	return true
}

// clear return false if slot is already cleared.
func (fbits *freebits) clear(slot int64) bool {
	if !fbits.isset(slot) {
		return false
	}
	q, r := slot>>3, uint8(slot&0x7)
	fbits.bitmap[q] = lib.Bit8(fbits.bitmap[q]).Clearbit(r)
	fbits.nset--
	return true
}

// ones count set bits the hard way, to cross check nset.
func (fbits *freebits) ones() (n int64) {
	for _, byt := range fbits.bitmap {
		n += int64(lib.Bit8(byt).Ones())
	}
	return n
}

func (fbits *freebits) sizeof() int64 {
	return int64(unsafe.Sizeof(*fbits)) + int64(len(fbits.bitmap))
}

func ceil(divident, divisor int64) int64 {
	if divident%divisor == 0 {
		return divident / divisor
	}
	return (divident / divisor) + 1
}
