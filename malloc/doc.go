// Package malloc supplies manual memory management for applications
// whose allocation behaviour is known apriori, with a limited scope:
//
//   - Types and Functions exported by this package are not thread safe.
//   - Memory is handed out as Ptr handles, offsets into backing storage
//     owned by the allocator, and reached through Bytes or Slot.
//   - Backing storage comes from a Source, Go heap or anonymous mmap,
//     and is given back to the Source only when the allocator is
//     Released.
//   - Memory managed by this package is not scanned by the garbage
//     collector, typed helpers refuse types holding Go pointers.
//
// Arena is a bump allocator over a single block of fixed capacity.
// Memory is reclaimed in bulk, by restoring a saved Marker or by
// Reset.
//
// Stack is an arena with LIFO discipline, markers are nested and
// restoring an older marker discards the younger ones. Stack state
// can be shared by several handles and typed Views.
//
// Pool hands out fixed size slots from chunks of storage, and grows a
// chunk at a time. FixedPool is a pool of exactly one chunk, possibly
// over a caller supplied buffer.
package malloc
