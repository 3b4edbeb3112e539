package malloc

import "fmt"

import "github.com/pkg/errors"

import s "github.com/bnclabs/gosettings"

import "github.com/kevinbcarpenter/b2b-custom-allocators/lib"

// bump is the offset allocator behind Arena and Stack. It owns one
// block, obtained from a source or supplied by the caller, and
// never grows.
type bump struct {
	name     string
	owner    uint32
	block    *Block
	source   Source // nil if block is supplied by the caller
	mem      []byte
	off      int64
	maxalign int64

	// stats
	n_allocs   int64
	n_restores int64
	n_resets   int64
	peak       int64
	sizes      lib.AverageInt64
}

func newbump(name string, setts s.Settings) *bump {
	capacity, align := sizesetting(setts, "capacity"), power2setting(setts, "alignment")
	if capacity <= 0 {
		panicerr("%v: invalid capacity %v", name, capacity)
	}
	source := makesource(setts["source"])
	block, err := source.Allocate(capacity, align)
	if err != nil {
		panic(errors.Wrapf(err, "%v", name))
	}
	b := &bump{
		name: name, owner: newowner(), block: block, source: source,
		mem: block.Bytes(), maxalign: align,
	}
	infof("%v: new bump allocator over %v from %v", name, block, source)
	return b
}

func newbumpon(name string, buf []byte, setts s.Settings) *bump {
	block := Userblock(buf, power2setting(setts, "alignment"))
	b := &bump{
		name: name, owner: newowner(), block: block,
		mem: block.Bytes(), maxalign: block.Alignment(),
	}
	infof("%v: new bump allocator over caller %v", name, block)
	return b
}

func (b *bump) alloc(size, alignment int64) (Ptr, error) {
	b.checkalive()
	if size < 0 {
		panicerr("%v: negative allocation size %v", b.name, size)
	} else if !Ispowerof2(alignment) || alignment > b.maxalign {
		fmsg := "%v: alignment %v, maximum %v"
		return Ptr{}, errors.Wrapf(ErrorBadAlignment, fmsg, b.name, alignment, b.maxalign)
	}
	aligned := Alignup(b.off, alignment)
	if aligned > b.capacity() || size > b.capacity()-aligned {
		fmsg := "%v: want %v bytes at offset %v, capacity %v"
		return Ptr{}, errors.Wrapf(ErrorOutofMemory, fmsg, b.name, size, aligned, b.capacity())
	}
	b.off = aligned + size
	initblock(b.mem[aligned:b.off])
	b.n_allocs++
	b.sizes.Add(size)
	if b.off > b.peak {
		b.peak = b.off
	}
	return Ptr{off: aligned, owner: b.owner}, nil
}

func (b *bump) bytes(ptr Ptr, n int64) []byte {
	b.checkalive()
	if ptr.owner != b.owner || ptr.chunk != 0 {
		panicerr("%v: foreign handle %v", b.name, ptr)
	} else if n < 0 || ptr.off+n > b.off {
		panicerr("%v: stale handle %v, %v bytes beyond offset %v", b.name, ptr, n, b.off)
	}
	return b.mem[ptr.off : ptr.off+n : ptr.off+n]
}

func (b *bump) restore(m Marker) error {
	b.checkalive()
	if m.owner != b.owner {
		return errors.Wrapf(ErrorInvalidMarker, "%v: foreign marker %v", b.name, m)
	} else if m.off > b.off {
		fmsg := "%v: marker %v ahead of offset %v"
		return errors.Wrapf(ErrorInvalidMarker, fmsg, b.name, m, b.off)
	}
	b.off = m.off
	b.n_restores++
	return nil
}

func (b *bump) reset() {
	b.checkalive()
	b.off = 0
	b.n_resets++
}

// release hand the block back to its source, return false if already
// released.
func (b *bump) release() bool {
	if b.mem == nil {
		return false
	}
	if b.source != nil {
		b.source.Free(b.block)
	}
	infof("%v: released, peak usage %v of %v", b.name, b.peak, len(b.mem))
	b.mem, b.block, b.off = nil, nil, 0
	return true
}

func (b *bump) capacity() int64 {
	return int64(len(b.mem))
}

func (b *bump) checkalive() {
	if b.mem == nil {
		panicerr("%v: use after release", b.name)
	}
}

func (b *bump) info() (capacity, heap, alloc, overhead int64) {
	b.checkalive()
	capacity, alloc = b.capacity(), b.off
	if b.source != nil {
		heap = int64(len(b.block.raw))
	}
	return capacity, heap, alloc, heap - capacity
}

func (b *bump) stats() map[string]interface{} {
	capacity, heap, alloc, overhead := b.info()
	return map[string]interface{}{
		"capacity":   capacity,
		"heap":       heap,
		"alloc":      alloc,
		"overhead":   overhead,
		"available":  capacity - alloc,
		"peak":       b.peak,
		"n_allocs":   b.n_allocs,
		"n_restores": b.n_restores,
		"n_resets":   b.n_resets,
		"sizes":      b.sizes.Stats(),
	}
}

func (b *bump) log(kind string, humanize bool) {
	capacity, heap, alloc, overhead := b.info()
	fmsg := "%v: %v capacity:%v heap:%v alloc:%v overhead:%v peak:%v\n"
	infof(
		fmsg, b.name, kind, bytesof(capacity, humanize), bytesof(heap, humanize),
		bytesof(alloc, humanize), bytesof(overhead, humanize),
		bytesof(b.peak, humanize),
	)
	fmsg = "%v: allocs:%v restores:%v resets:%v size.mean:%v size.max:%v\n"
	infof(
		fmsg, b.name, b.n_allocs, b.n_restores, b.n_resets,
		b.sizes.Mean(), b.sizes.Max(),
	)
}

func (b *bump) String() string {
	return fmt.Sprintf("%v{offset: %v capacity: %v}", b.name, b.off, len(b.mem))
}
