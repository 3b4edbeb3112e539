package malloc

import s "github.com/bnclabs/gosettings"

// Arena is a bump allocator over a single block of fixed capacity.
// Allocations advance an offset, memory is reclaimed in bulk by
// Restore to a saved Marker or by Reset. Individual Free is a no-op.
type Arena struct {
	*bump
}

// NewArena create a new arena, with its backing storage allocated
// from the configured source. Refer Arenasettings for settings.
func NewArena(name string, setts s.Settings) *Arena {
	setts = make(s.Settings).Mixin(Arenasettings(), setts)
	return &Arena{bump: newbump(name, setts)}
}

// NewArenaOn create a new arena over memory supplied by the caller.
// The buffer is never handed to a source, and stays with the caller
// after Release. "alignment" setting caps the alignment a request can
// ask for.
func NewArenaOn(name string, buf []byte, setts s.Settings) *Arena {
	setts = make(s.Settings).Mixin(Arenasettings(), setts)
	return &Arena{bump: newbumpon(name, buf, setts)}
}

// Alloc implement Bumper{} interface. Zero sized requests return a
// handle at the aligned offset.
func (arena *Arena) Alloc(size, alignment int64) (Ptr, error) {
	return arena.alloc(size, alignment)
}

// Bytes implement Bumper{} interface.
func (arena *Arena) Bytes(ptr Ptr, n int64) []byte {
	return arena.bytes(ptr, n)
}

// Save implement Bumper{} interface.
func (arena *Arena) Save() Marker {
	arena.checkalive()
	return Marker{off: arena.off, owner: arena.owner}
}

// Restore implement Bumper{} interface. Marker can be restored any
// number of times as long as it is not ahead of current offset.
func (arena *Arena) Restore(m Marker) error {
	return arena.restore(m)
}

// Reset implement Bumper{} interface.
func (arena *Arena) Reset() {
	arena.reset()
}

// Free implement Bumper{} interface, arena memory is only reclaimed
// in bulk.
func (arena *Arena) Free(ptr Ptr) error {
	return nil
}

// Used implement Bumper{} interface.
func (arena *Arena) Used() int64 {
	arena.checkalive()
	return arena.off
}

// Available implement Bumper{} interface.
func (arena *Arena) Available() int64 {
	arena.checkalive()
	return arena.capacity() - arena.off
}

// Capacity implement Bumper{} interface.
func (arena *Arena) Capacity() int64 {
	arena.checkalive()
	return arena.capacity()
}

// Info implement Mallocer{} interface.
func (arena *Arena) Info() (capacity, heap, alloc, overhead int64) {
	return arena.info()
}

// Stats implement Mallocer{} interface.
func (arena *Arena) Stats() map[string]interface{} {
	return arena.stats()
}

// Log implement Mallocer{} interface.
func (arena *Arena) Log(humanize bool) {
	arena.log("arena", humanize)
}

// Equal implement Mallocer{} interface.
func (arena *Arena) Equal(other Mallocer) bool {
	return other != nil && other.storageid() == arena.owner
}

// Release implement Mallocer{} interface. Calling Release more than
// once is a no-op, any other use after Release panics.
func (arena *Arena) Release() {
	arena.release()
}

func (arena *Arena) storageid() uint32 {
	return arena.owner
}
