package malloc

import "unsafe"

import "github.com/pkg/errors"

import s "github.com/bnclabs/gosettings"

// FixedPool allocate fixed size slots from exactly one chunk, sized
// at creation. Once all slots are handed out Alloc fails with
// ErrorOutofMemory until a slot is freed.
type FixedPool struct {
	*slab
}

// NewFixedPool create a pool of "chunkslots" slots, with storage
// allocated from the configured source. Refer Fixedsettings.
func NewFixedPool(name string, setts s.Settings) *FixedPool {
	setts = make(s.Settings).Mixin(Fixedsettings(), setts)
	sl := newslab(
		name, sizesetting(setts, "slotsize"), power2setting(setts, "alignment"),
		setts.Int64("chunkslots"),
	)
	sl.source, sl.checkfree = makesource(setts["source"]), setts.Bool("checkfree")
	sl.maxchunks, sl.maxheap, sl.growable = 1, sl.chunksize(), true
	if err := sl.grow(); err != nil {
		panic(errors.Wrapf(err, "%v", name))
	}
	sl.growable = false
	infof("%v: new fixed pool, slotsize:%v slots:%v", name, sl.stride, sl.chunkslots)
	return &FixedPool{slab: sl}
}

// NewFixedPoolOn create a pool over memory supplied by the caller.
// Number of slots is the number of aligned slots that fit in buf,
// "chunkslots" setting is ignored. The buffer is never handed to a
// source.
func NewFixedPoolOn(name string, buf []byte, setts s.Settings) *FixedPool {
	setts = make(s.Settings).Mixin(Fixedsettings(), setts)
	slotsize, align := sizesetting(setts, "slotsize"), power2setting(setts, "alignment")
	stride := Alignup(max(slotsize, 8), align)
	var pad int64
	if len(buf) > 0 {
		pad = int64(Padding(uintptr(unsafe.Pointer(&buf[0])), uintptr(align)))
	}
	nslots := (int64(len(buf)) - pad) / stride
	if pad > int64(len(buf)) || nslots <= 0 {
		panicerr("%v: buffer of %v bytes too small for slot %v", name, len(buf), stride)
	}
	mem := buf[pad : pad+nslots*stride]

	sl := newslab(name, slotsize, align, nslots)
	sl.checkfree, sl.maxchunks, sl.maxheap = setts.Bool("checkfree"), 1, int64(len(mem))
	sl.addchunk(&chunk{block: Userblock(mem, align), mem: mem, user: true})
	infof("%v: new fixed pool over caller buffer, slotsize:%v slots:%v", name, sl.stride, nslots)
	return &FixedPool{slab: sl}
}

// Alloc implement Slabber{} interface.
func (pool *FixedPool) Alloc() (Ptr, error) {
	return pool.alloc()
}

// Free implement Slabber{} interface.
func (pool *FixedPool) Free(ptr Ptr) error {
	return pool.free(ptr)
}

// Slot implement Slabber{} interface.
func (pool *FixedPool) Slot(ptr Ptr) []byte {
	return pool.slot(ptr)
}

// Slotsize implement Slabber{} interface.
func (pool *FixedPool) Slotsize() int64 {
	return pool.stride
}

// Slots return the fixed number of slots in this pool.
func (pool *FixedPool) Slots() int64 {
	return pool.chunkslots
}

// Allocated implement Slabber{} interface.
func (pool *FixedPool) Allocated() int64 {
	return pool.nallocated
}

// Available implement Slabber{} interface.
func (pool *FixedPool) Available() int64 {
	return pool.flist.Len()
}

// Walkfree call fn for every free slot, in the order Alloc would hand
// them out, until fn returns false.
func (pool *FixedPool) Walkfree(fn func(Ptr) bool) {
	pool.walkfree(fn)
}

// Info implement Mallocer{} interface.
func (pool *FixedPool) Info() (capacity, heap, alloc, overhead int64) {
	return pool.info()
}

// Stats implement Mallocer{} interface.
func (pool *FixedPool) Stats() map[string]interface{} {
	return pool.stats()
}

// Log implement Mallocer{} interface.
func (pool *FixedPool) Log(humanize bool) {
	pool.log("fixedpool", humanize)
}

// Equal implement Mallocer{} interface.
func (pool *FixedPool) Equal(other Mallocer) bool {
	return other != nil && other.storageid() == pool.owner
}

// Release implement Mallocer{} interface.
func (pool *FixedPool) Release() {
	pool.release()
}

func (pool *FixedPool) storageid() uint32 {
	return pool.owner
}
