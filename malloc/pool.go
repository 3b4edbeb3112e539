package malloc

import "math"

import "github.com/pkg/errors"

import s "github.com/bnclabs/gosettings"

// Pool allocate fixed size slots, growing one chunk at a time when
// its free list runs dry. Freed slots are reused in LIFO order.
// Chunks are handed back to the source only on Release.
type Pool struct {
	*slab
}

// NewPool create a new growable pool. Refer Poolsettings for
// settings.
func NewPool(name string, setts s.Settings) *Pool {
	setts = make(s.Settings).Mixin(Poolsettings(), setts)
	sl := newslab(
		name, sizesetting(setts, "slotsize"), power2setting(setts, "alignment"),
		setts.Int64("chunkslots"),
	)
	sl.maxchunks, sl.maxheap = setts.Int64("maxchunks"), sizesetting(setts, "maxheap")
	sl.source = makesource(setts["source"])
	sl.checkfree, sl.growable = setts.Bool("checkfree"), true
	if _, free := Sysmemory(); free > 0 && sl.maxheap > free && sl.maxheap < math.MaxInt64 {
		warnf("%v: maxheap %v exceeds available memory %v", name, sl.maxheap, free)
	}
	pool := &Pool{slab: sl}
	if setts.Bool("prealloc") {
		if err := sl.grow(); err != nil {
			panic(errors.Wrapf(err, "%v: prealloc", name))
		}
	}
	infof("%v: new pool, slotsize:%v chunkslots:%v source:%v", name, sl.stride, sl.chunkslots, sl.source)
	return pool
}

// Alloc implement Slabber{} interface. Fail with ErrorOutofMemory if
// the pool cannot grow.
func (pool *Pool) Alloc() (Ptr, error) {
	return pool.alloc()
}

// Free implement Slabber{} interface. Fail with ErrorForeignPointer if
// ptr was not allocated from this pool, and with ErrorDoubleFree if
// "checkfree" is enabled and slot is already free.
func (pool *Pool) Free(ptr Ptr) error {
	return pool.free(ptr)
}

// Slot implement Slabber{} interface.
func (pool *Pool) Slot(ptr Ptr) []byte {
	return pool.slot(ptr)
}

// Slotsize implement Slabber{} interface.
func (pool *Pool) Slotsize() int64 {
	return pool.stride
}

// Chunks return number of chunks allocated so far.
func (pool *Pool) Chunks() int {
	return len(pool.chunks)
}

// Allocated implement Slabber{} interface.
func (pool *Pool) Allocated() int64 {
	return pool.nallocated
}

// Available implement Slabber{} interface.
func (pool *Pool) Available() int64 {
	return pool.flist.Len()
}

// Walkfree call fn for every free slot, in the order Alloc would hand
// them out, until fn returns false.
func (pool *Pool) Walkfree(fn func(Ptr) bool) {
	pool.walkfree(fn)
}

// Info implement Mallocer{} interface.
func (pool *Pool) Info() (capacity, heap, alloc, overhead int64) {
	return pool.info()
}

// Stats implement Mallocer{} interface.
func (pool *Pool) Stats() map[string]interface{} {
	return pool.stats()
}

// Log implement Mallocer{} interface.
func (pool *Pool) Log(humanize bool) {
	pool.log("pool", humanize)
}

// Equal implement Mallocer{} interface.
func (pool *Pool) Equal(other Mallocer) bool {
	return other != nil && other.storageid() == pool.owner
}

// Release implement Mallocer{} interface. Calling Release more than
// once is a no-op, any other use after Release panics.
func (pool *Pool) Release() {
	pool.release()
}

func (pool *Pool) storageid() uint32 {
	return pool.owner
}
