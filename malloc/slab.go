package malloc

import "fmt"
import "unsafe"

import "github.com/pkg/errors"

// slab is the fixed size slot allocator behind Pool and FixedPool.
// Storage is a list of chunks, each chunk holding `chunkslots` slots
// of `stride` bytes, free slots are threaded on a Freelist.
type slab struct {
	name       string
	owner      uint32
	stride     int64
	align      int64
	chunkslots int64
	maxchunks  int64
	maxheap    int64
	source     Source
	checkfree  bool
	growable   bool

	chunks     []*chunk
	flist      Freelist
	nallocated int64
	heap       int64
	released   bool

	// stats
	n_allocs int64
	n_frees  int64
	n_oom    int64
}

type chunk struct {
	block *Block
	mem   []byte
	bits  *freebits // nil if checkfree is false
	user  bool      // memory supplied by the caller
}

func newslab(name string, slotsize, align, chunkslots int64) *slab {
	if slotsize <= 0 {
		panicerr("%v: invalid slotsize %v", name, slotsize)
	} else if chunkslots <= 0 || chunkslots > (1<<32)-1 {
		panicerr("%v: invalid chunkslots %v", name, chunkslots)
	}
	stride := Alignup(max(slotsize, 8), align)
	return &slab{
		name: name, owner: newowner(), stride: stride, align: align,
		chunkslots: chunkslots,
	}
}

func (s *slab) chunksize() int64 {
	return s.stride * s.chunkslots
}

// grow is the only path that obtain chunk storage from the source,
// the chunk is recorded before its slots are handed out.
func (s *slab) grow() error {
	if !s.growable {
		return errors.Wrapf(ErrorOutofMemory, "%v: exhausted %v slots", s.name, s.chunkslots)
	} else if int64(len(s.chunks)) >= s.maxchunks {
		return errors.Wrapf(ErrorOutofMemory, "%v: maxchunks %v", s.name, s.maxchunks)
	} else if s.heap+s.chunksize() > s.maxheap {
		fmsg := "%v: maxheap %v, heap %v, chunk %v"
		return errors.Wrapf(ErrorOutofMemory, fmsg, s.name, s.maxheap, s.heap, s.chunksize())
	}
	block, err := s.source.Allocate(s.chunksize(), s.align)
	if err != nil {
		return errors.Wrapf(err, "%v: chunk %v", s.name, len(s.chunks))
	}
	s.addchunk(&chunk{block: block, mem: block.Bytes()})
	debugf("%v: grown to %v chunks, %v bytes", s.name, len(s.chunks), s.heap)
	return nil
}

// addchunk record chunk and prepend all its slots to the free list,
// in index order, last slot linking to the previous head.
func (s *slab) addchunk(c *chunk) {
	if s.checkfree {
		c.bits = newfreebits(s.chunkslots)
	}
	index := int64(len(s.chunks))
	s.chunks = append(s.chunks, c)
	s.heap += c.block.Size()
	for slot := s.chunkslots - 1; slot >= 0; slot-- {
		off := slot * s.stride
		s.flist.Push(makelink(index, slot), c.mem[off:off+s.stride])
	}
}

func (s *slab) resolve(link Link) []byte {
	off := link.Slot() * s.stride
	return s.chunks[link.Chunk()].mem[off : off+s.stride]
}

func (s *slab) alloc() (Ptr, error) {
	s.checkalive()
	if s.flist.Len() == 0 {
		if err := s.grow(); err != nil {
			s.n_oom++
			return Ptr{}, err
		}
	}
	link, _ := s.flist.Pop(s.resolve)
	index, slot := link.Chunk(), link.Slot()
	if c := s.chunks[index]; c.bits != nil && !c.bits.set(slot) {
		panicerr("%v: free list handed out allocated slot %v", s.name, link)
	}
	initblock(s.resolve(link))
	s.nallocated++
	s.n_allocs++
	return Ptr{off: slot * s.stride, chunk: uint32(index), owner: s.owner}, nil
}

// locate validate ptr and return its chunk and slot index.
func (s *slab) locate(ptr Ptr) (*chunk, int64, error) {
	if ptr.owner != s.owner {
		return nil, 0, errors.Wrapf(ErrorForeignPointer, "%v: owner of %v", s.name, ptr)
	} else if int(ptr.chunk) >= len(s.chunks) {
		return nil, 0, errors.Wrapf(ErrorForeignPointer, "%v: chunk of %v", s.name, ptr)
	} else if ptr.off < 0 || ptr.off%s.stride != 0 || ptr.off/s.stride >= s.chunkslots {
		return nil, 0, errors.Wrapf(ErrorForeignPointer, "%v: offset of %v", s.name, ptr)
	}
	return s.chunks[ptr.chunk], ptr.off / s.stride, nil
}

func (s *slab) free(ptr Ptr) error {
	s.checkalive()
	c, slot, err := s.locate(ptr)
	if err != nil {
		return err
	} else if c.bits != nil && !c.bits.clear(slot) {
		return errors.Wrapf(ErrorDoubleFree, "%v: free %v", s.name, ptr)
	}
	s.flist.Push(makelink(int64(ptr.chunk), slot), c.mem[ptr.off:ptr.off+s.stride])
	s.nallocated--
	s.n_frees++
	return nil
}

func (s *slab) slot(ptr Ptr) []byte {
	s.checkalive()
	c, slot, err := s.locate(ptr)
	if err != nil {
		panic(err)
	} else if c.bits != nil && !c.bits.isset(slot) {
		panicerr("%v: stale handle %v", s.name, ptr)
	}
	return c.mem[ptr.off : ptr.off+s.stride : ptr.off+s.stride]
}

// walkfree call fn for every slot on the free list, from head.
func (s *slab) walkfree(fn func(Ptr) bool) {
	s.checkalive()
	s.flist.Walk(s.resolve, func(link Link) bool {
		ptr := Ptr{off: link.Slot() * s.stride, chunk: uint32(link.Chunk()), owner: s.owner}
		return fn(ptr)
	})
}

// release hand every chunk back to its source, return false if
// already released.
func (s *slab) release() bool {
	if s.released {
		return false
	}
	s.released = true
	for _, c := range s.chunks {
		if !c.user {
			s.source.Free(c.block)
		}
	}
	infof("%v: released %v chunks, %v bytes", s.name, len(s.chunks), s.heap)
	s.chunks, s.heap, s.nallocated = nil, 0, 0
	s.flist.Reset()
	return true
}

func (s *slab) checkalive() {
	if s.released {
		panicerr("%v: use after release", s.name)
	}
}

func (s *slab) info() (capacity, heap, alloc, overhead int64) {
	capacity = s.chunksize()
	if s.growable {
		capacity = min(s.maxchunks*s.chunksize(), s.maxheap)
	}
	overhead = int64(unsafe.Sizeof(*s))
	for _, c := range s.chunks {
		heap += int64(len(c.block.raw))
		overhead += int64(unsafe.Sizeof(*c))
		if c.bits != nil {
			overhead += c.bits.sizeof()
		}
	}
	return capacity, heap, s.nallocated * s.stride, overhead
}

func (s *slab) stats() map[string]interface{} {
	capacity, heap, alloc, overhead := s.info()
	return map[string]interface{}{
		"capacity":   capacity,
		"heap":       heap,
		"alloc":      alloc,
		"overhead":   overhead,
		"slotsize":   s.stride,
		"chunkslots": s.chunkslots,
		"chunks":     int64(len(s.chunks)),
		"allocated":  s.nallocated,
		"available":  s.flist.Len(),
		"n_allocs":   s.n_allocs,
		"n_frees":    s.n_frees,
		"n_oom":      s.n_oom,
	}
}

func (s *slab) log(kind string, humanize bool) {
	capacity, heap, alloc, overhead := s.info()
	fmsg := "%v: %v capacity:%v heap:%v alloc:%v overhead:%v\n"
	infof(
		fmsg, s.name, kind, bytesof(capacity, humanize), bytesof(heap, humanize),
		bytesof(alloc, humanize), bytesof(overhead, humanize),
	)
	fmsg = "%v: slotsize:%v chunks:%v allocated:%v available:%v\n"
	infof(fmsg, s.name, s.stride, len(s.chunks), s.nallocated, s.flist.Len())
	fmsg = "%v: allocs:%v frees:%v oom:%v\n"
	infof(fmsg, s.name, s.n_allocs, s.n_frees, s.n_oom)
}

func (s *slab) String() string {
	return fmt.Sprintf("%v{slotsize: %v chunks: %v}", s.name, s.stride, len(s.chunks))
}
