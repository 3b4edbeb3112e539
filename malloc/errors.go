package malloc

import "errors"

// ErrorOutofMemory allocation cannot be satisfied from the backing
// storage, or a growable pool could not obtain another chunk.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrorInvalidMarker marker is ahead of the current offset, was taken
// from a different allocator, or was already discarded.
var ErrorInvalidMarker = errors.New("malloc.invalidmarker")

// ErrorDoubleFree slot handed back to the pool is already free.
var ErrorDoubleFree = errors.New("malloc.doublefree")

// ErrorForeignPointer handle was not produced by this allocator.
var ErrorForeignPointer = errors.New("malloc.foreignpointer")

// ErrorBadAlignment alignment is not a power of two, or is larger
// than the alignment of the backing storage.
var ErrorBadAlignment = errors.New("malloc.badalignment")

// ErrorIndividualFree stack allocator releases memory only through
// markers or reset.
var ErrorIndividualFree = errors.New("malloc.individualfree")

// ErrorPointerType typed allocation for a type holding Go pointers,
// allocator memory is invisible to the garbage collector.
var ErrorPointerType = errors.New("malloc.pointertype")
