//go:build !unix

package malloc

// Mmapsource on platforms without anonymous mappings, allocate every
// block from the Go heap.
type Mmapsource struct {
	heap Heapsource
}

// NewMmapsource create a new mmap source.
func NewMmapsource() *Mmapsource {
	return &Mmapsource{}
}

// Allocate implement Source interface.
func (src *Mmapsource) Allocate(size, alignment int64) (*Block, error) {
	return src.heap.Allocate(size, alignment)
}

// Free implement Source interface.
func (src *Mmapsource) Free(block *Block) {
	src.heap.Free(block)
}

func (src *Mmapsource) String() string {
	return "mmap"
}
