package malloc

import "encoding/binary"
import "fmt"

// Link identify a slot in a pool as a (chunk, slot) pair. Zero Link
// terminates the free list.
type Link uint64

func makelink(chunk, slot int64) Link {
	return Link(uint64(chunk+1)<<32 | uint64(uint32(slot)))
}

// IsNil return true for the terminating link.
func (link Link) IsNil() bool {
	return link == 0
}

// Chunk index of the slot.
func (link Link) Chunk() int64 {
	return int64(link>>32) - 1
}

// Slot index within its chunk.
func (link Link) Slot() int64 {
	return int64(uint32(link))
}

func (link Link) String() string {
	if link.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("{%v,%v}", link.Chunk(), link.Slot())
}

// Freelist is an intrusive singly linked list of unused slots. The
// link to the next slot is stored in the first 8 bytes of each free
// slot, Freelist itself never allocates.
type Freelist struct {
	head  Link
	count int64
}

// Push slot identified by link, whose memory is mem, to the head of
// the list.
func (fl *Freelist) Push(link Link, mem []byte) {
	if link.IsNil() {
		panicerr("freelist: push nil link")
	}
	binary.LittleEndian.PutUint64(mem, uint64(fl.head))
	fl.head = link
	fl.count++
}

// Pop slot at the head of the list, resolve map a link to its slot
// memory. Return false if list is empty.
func (fl *Freelist) Pop(resolve func(Link) []byte) (Link, bool) {
	if fl.head.IsNil() {
		return 0, false
	}
	link := fl.head
	fl.head = Link(binary.LittleEndian.Uint64(resolve(link)))
	fl.count--
	return link, true
}

// Walk the list from head, until fn returns false. Panics if the
// list is longer than its count, which happens only when a slot's
// memory was written after it was freed.
func (fl *Freelist) Walk(resolve func(Link) []byte, fn func(Link) bool) {
	n := int64(0)
	for link := fl.head; !link.IsNil(); {
		if n++; n > fl.count {
			panicerr("freelist: corrupted, more than %v links", fl.count)
		} else if !fn(link) {
			return
		}
		link = Link(binary.LittleEndian.Uint64(resolve(link)))
	}
}

// Len return number of slots in the list.
func (fl *Freelist) Len() int64 {
	return fl.count
}

// Head return the slot that the next Pop returns.
func (fl *Freelist) Head() Link {
	return fl.head
}

// Reset the list to empty, slot memory is left untouched.
func (fl *Freelist) Reset() {
	fl.head, fl.count = 0, 0
}
