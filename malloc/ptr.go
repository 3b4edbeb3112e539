package malloc

import "fmt"
import "sync/atomic"

// Ptr is a handle to memory handed out by one of the allocators in
// this package. It is the offset of the allocation inside a chunk of
// backing storage, tagged with the identity of the storage owner.
//
// Ptr is a plain value, it is not a Go pointer and the garbage
// collector never scans it. Use the allocator's Bytes or Slot method
// to reach the memory, right before using it.
type Ptr struct {
	off   int64
	chunk uint32
	owner uint32
}

// IsNil return true for the zero handle.
func (p Ptr) IsNil() bool {
	return p.owner == 0
}

// Offset of allocation inside its chunk.
func (p Ptr) Offset() int64 {
	return p.off
}

// Chunk index of allocation, always 0 for arena and stack.
func (p Ptr) Chunk() int {
	return int(p.chunk)
}

// String provides a string snapshot of the handle.
func (p Ptr) String() string {
	return fmt.Sprintf("{owner: %v chunk: %v offset: %v}", p.owner, p.chunk, p.off)
}

// Marker is a snapshot of a bump allocator's offset, returned by Save
// and consumed by Restore.
type Marker struct {
	off   int64
	depth int32
	owner uint32
}

// Offset saved by this marker.
func (m Marker) Offset() int64 {
	return m.off
}

// String provides a string snapshot of the marker.
func (m Marker) String() string {
	return fmt.Sprintf("{owner: %v depth: %v offset: %v}", m.owner, m.depth, m.off)
}

var ownerseq uint32

// newowner return a process wide unique, non-zero, storage identity.
func newowner() uint32 {
	for {
		if id := atomic.AddUint32(&ownerseq, 1); id != 0 {
			return id
		}
	}
}
