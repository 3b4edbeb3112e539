//go:build unix

package malloc

import "github.com/pkg/errors"
import "golang.org/x/sys/unix"

// Mmapsource allocate blocks as anonymous private memory mappings,
// outside the Go heap. Blocks are page aligned and unmapped on Free.
// When the kernel refuses a mapping the block is allocated from the
// heap instead.
type Mmapsource struct {
	pagesize int64
	heap     Heapsource
}

// NewMmapsource create a new mmap source.
func NewMmapsource() *Mmapsource {
	return &Mmapsource{pagesize: int64(unix.Getpagesize())}
}

// Allocate implement Source interface.
func (src *Mmapsource) Allocate(size, alignment int64) (*Block, error) {
	if err := validateblock(size, alignment); err != nil {
		return nil, err
	}
	length := Alignup(size, src.pagesize)
	if alignment > src.pagesize {
		length += alignment
	}
	prot, flags := unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE
	raw, err := unix.Mmap(-1, 0, int(length), prot, flags)
	if err != nil {
		warnf("mmap %v bytes: %v, falling back to heap", length, err)
		return src.heap.Allocate(size, alignment)
	}
	block := newblock(raw, size, alignment)
	block.mapped = true
	return block, nil
}

// Free implement Source interface.
func (src *Mmapsource) Free(block *Block) {
	if block.mapped {
		if err := unix.Munmap(block.raw); err != nil {
			panic(errors.Wrapf(err, "munmap %v", block))
		}
	}
	block.clear()
}

func (src *Mmapsource) String() string {
	return "mmap"
}
