package malloc

import "fmt"

import "github.com/pkg/errors"

// Source supplies backing storage to allocators. Allocators call
// Allocate when they are created or when they grow, and call Free for
// every block exactly once when they are released.
type Source interface {
	// Allocate a block of `size` bytes whose first byte is a multiple
	// of `alignment`.
	Allocate(size, alignment int64) (*Block, error)

	// Free a block obtained from this source.
	Free(block *Block)
}

// Heapsource allocate blocks from the Go heap. Buffers are padded so
// that the returned view starts at the requested alignment.
type Heapsource struct{}

// NewHeapsource create a new heap source.
func NewHeapsource() *Heapsource {
	return &Heapsource{}
}

// Allocate implement Source interface.
func (src *Heapsource) Allocate(size, alignment int64) (block *Block, err error) {
	if err := validateblock(size, alignment); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			block = nil
			err = errors.Wrapf(ErrorOutofMemory, "heap %v bytes: %v", size, r)
		}
	}()
	raw := make([]byte, size+alignment)
	return newblock(raw, size, alignment), nil
}

// Free implement Source interface, memory is left to the garbage
// collector.
func (src *Heapsource) Free(block *Block) {
	block.clear()
}

func (src *Heapsource) String() string {
	return "heap"
}

// makesource pick a Source from a settings value, either a Source or
// one of "heap", "mmap".
func makesource(value interface{}) Source {
	switch val := value.(type) {
	case Source:
		return val
	case string:
		switch val {
		case "heap":
			return NewHeapsource()
		case "mmap":
			return NewMmapsource()
		}
	}
	panic(fmt.Errorf("invalid source %v", value))
}
