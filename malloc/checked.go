package malloc

import "fmt"
import "runtime"

import "github.com/pkg/errors"

// Checkedsource wraps another Source and accounts for every block
// that passes through it. Use it to verify that allocators hand back
// all their backing storage, and to simulate memory pressure with a
// byte limit.
type Checkedsource struct {
	src   Source
	limit int64
	live  map[*Block]*dalloc

	// stats
	nbytes      int64
	totalbytes  int64
	totalblocks int64
	nfrees      int64
}

type dalloc struct {
	pc   uintptr
	line int
	size int64
}

// frames to skip, from Allocate, to reach the allocator that asked
// for the block.
const allocframes = 2

// NewCheckedsource wrap src, if src is nil blocks are allocated from
// the heap. A positive limit caps the live bytes, requests that would
// exceed it fail with ErrorOutofMemory.
func NewCheckedsource(src Source, limit int64) *Checkedsource {
	if src == nil {
		src = NewHeapsource()
	}
	return &Checkedsource{src: src, limit: limit, live: map[*Block]*dalloc{}}
}

// Allocate implement Source interface.
func (src *Checkedsource) Allocate(size, alignment int64) (*Block, error) {
	if src.limit > 0 && src.nbytes+size > src.limit {
		fmsg := "checked source limit %v, live %v, want %v"
		return nil, errors.Wrapf(ErrorOutofMemory, fmsg, src.limit, src.nbytes, size)
	}
	block, err := src.src.Allocate(size, alignment)
	if err != nil {
		return nil, err
	}
	info := &dalloc{size: size}
	if pc, _, l, ok := runtime.Caller(allocframes); ok {
		info.pc, info.line = pc, l
	}
	src.live[block] = info
	src.nbytes += size
	src.totalbytes += size
	src.totalblocks++
	return block, nil
}

// Free implement Source interface. Panics if block is not live in
// this source.
func (src *Checkedsource) Free(block *Block) {
	info, ok := src.live[block]
	if !ok {
		panicerr("checked source: free of unknown block %p", block)
	}
	delete(src.live, block)
	src.nbytes -= info.size
	src.nfrees++
	src.src.Free(block)
}

// CurrentAlloc return bytes held by live blocks.
func (src *Checkedsource) CurrentAlloc() int64 {
	return src.nbytes
}

// Liveblocks return number of blocks not yet freed.
func (src *Checkedsource) Liveblocks() int64 {
	return int64(len(src.live))
}

// Totalalloc return cumulative bytes and blocks allocated.
func (src *Checkedsource) Totalalloc() (bytes, blocks int64) {
	return src.totalbytes, src.totalblocks
}

// Totalfrees return cumulative number of blocks freed.
func (src *Checkedsource) Totalfrees() int64 {
	return src.nfrees
}

func (src *Checkedsource) String() string {
	return fmt.Sprintf("checked(%v)", src.src)
}

// TestingT is the subset of testing.TB used by AssertSize.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize report an error if live bytes differ from sz. With sz
// as 0 every live block is reported as a leak along with the function
// that allocated it.
func (src *Checkedsource) AssertSize(t TestingT, sz int64) {
	t.Helper()
	if sz == 0 {
		for _, info := range src.live {
			name := "unknown"
			if f := runtime.FuncForPC(info.pc); f != nil {
				name = f.Name()
			}
			t.Errorf("LEAK of %d bytes FROM %s line %d", info.size, name, info.line)
		}
	}
	if src.nbytes != sz {
		t.Errorf("invalid memory size exp=%d, got=%d", sz, src.nbytes)
	}
}
