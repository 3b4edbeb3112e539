package malloc

// Mallocer is the surface shared by every allocator in this package.
type Mallocer interface {
	// Info return capacity the allocator may grow to, heap obtained
	// from its source, bytes handed out to application and bytes
	// spent on book keeping.
	Info() (capacity, heap, alloc, overhead int64)

	// Stats return a snapshot of allocator statistics.
	Stats() map[string]interface{}

	// Log statistics, if humanize is true byte counts are printed
	// as KiB, MiB etc...
	Log(humanize bool)

	// Equal return true if both allocators draw from the same
	// backing storage.
	Equal(other Mallocer) bool

	// Release allocator and hand back its storage.
	Release()

	storageid() uint32
}

// Bumper is implemented by allocators that bump an offset through a
// single block, Arena and Stack.
type Bumper interface {
	Mallocer

	// Alloc size bytes at alignment, alignment must be a power of 2.
	Alloc(size, alignment int64) (Ptr, error)

	// Bytes return n bytes of memory starting at ptr.
	Bytes(ptr Ptr, n int64) []byte

	// Save current offset.
	Save() Marker

	// Restore offset to marker, releasing all allocations made
	// after the marker.
	Restore(m Marker) error

	// Reset offset to zero, releasing all allocations.
	Reset()

	// Free individual allocation.
	Free(ptr Ptr) error

	// Used bytes, including alignment padding.
	Used() int64

	// Available bytes.
	Available() int64

	// Capacity of backing storage.
	Capacity() int64
}

// Slabber is implemented by allocators that hand out fixed size
// slots, Pool and FixedPool.
type Slabber interface {
	Mallocer

	// Slotsize return the size of every slot, including padding.
	Slotsize() int64

	// Alloc a slot.
	Alloc() (Ptr, error)

	// Free slot back to allocator.
	Free(ptr Ptr) error

	// Slot return memory for slot.
	Slot(ptr Ptr) []byte

	// Allocated return number of slots handed out.
	Allocated() int64

	// Available return number of free slots, without growing.
	Available() int64
}

var (
	_ Bumper   = (*Arena)(nil)
	_ Bumper   = (*Stack)(nil)
	_ Mallocer = (*View[uint64])(nil)
	_ Slabber  = (*Pool)(nil)
	_ Slabber  = (*FixedPool)(nil)
	_ Source   = (*Heapsource)(nil)
	_ Source   = (*Mmapsource)(nil)
	_ Source   = (*Checkedsource)(nil)
)
