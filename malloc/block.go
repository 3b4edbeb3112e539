package malloc

import "fmt"
import "unsafe"

import "github.com/pkg/errors"

// Block is a contiguous byte buffer of known size and alignment, the
// unit of backing storage owned by every allocator. A block is
// obtained from a Source and handed back to the same Source exactly
// once.
type Block struct {
	buf    []byte // aligned view, len(buf) == requested size
	raw    []byte // memory as obtained from the source
	align  int64
	mapped bool
}

// newblock carve an aligned view of `size` bytes out of raw.
func newblock(raw []byte, size, alignment int64) *Block {
	addr := uintptr(unsafe.Pointer(&raw[0]))
	shift := int64(Padding(addr, uintptr(alignment)))
	if shift+size > int64(len(raw)) {
		panicerr("block: %v bytes short for alignment %v", shift+size-int64(len(raw)), alignment)
	}
	return &Block{
		buf:   raw[shift : shift+size : shift+size],
		raw:   raw,
		align: alignment,
	}
}

// Userblock wrap caller owned memory as a block, for allocators over
// static or stack resident buffers. Alignment is the largest power of
// two, up to maxalign, that buf's address is a multiple of.
func Userblock(buf []byte, maxalign int64) *Block {
	if len(buf) == 0 {
		panicerr("userblock: empty buffer")
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	align := maxalign
	for align > 1 && !Isaligned(addr, uintptr(align)) {
		align >>= 1
	}
	return &Block{buf: buf[:len(buf):len(buf)], raw: buf, align: align}
}

// Size of the block in bytes.
func (block *Block) Size() int64 {
	return int64(len(block.buf))
}

// Alignment guaranteed for the block's first byte.
func (block *Block) Alignment() int64 {
	return block.align
}

// Bytes return the block's memory.
func (block *Block) Bytes() []byte {
	return block.buf
}

// Address of the block's first byte, 0 after release.
func (block *Block) Address() uintptr {
	if len(block.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&block.buf[0]))
}

// Released return true once the block is handed back to its source.
func (block *Block) Released() bool {
	return block.buf == nil
}

func (block *Block) String() string {
	return fmt.Sprintf("block{%#x size: %v align: %v}", block.Address(), block.Size(), block.align)
}

func (block *Block) clear() {
	block.buf, block.raw = nil, nil
}

func validateblock(size, alignment int64) error {
	if size <= 0 {
		return errors.Wrapf(ErrorOutofMemory, "invalid block size %v", size)
	} else if !Ispowerof2(alignment) {
		return errors.Wrapf(ErrorBadAlignment, "block alignment %v", alignment)
	}
	return nil
}
