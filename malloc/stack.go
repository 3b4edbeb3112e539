package malloc

import "github.com/pkg/errors"

import s "github.com/bnclabs/gosettings"

// Stack is a bump allocator with LIFO release discipline. Save push
// the current offset on a marker stack, Restore pop back to a saved
// marker, discarding younger markers. Individual Free is rejected.
//
// Several Stack handles and typed Views can share the same state,
// through Share and NewView. The state is reference counted and its
// storage is released along with the last handle.
type Stack struct {
	state    *stackstate
	released bool
}

type stackstate struct {
	*bump
	markers []int64
	refs    int64
}

// NewStack create a new stack allocator, settings are same as
// NewArena. Refer Stacksettings.
func NewStack(name string, setts s.Settings) *Stack {
	setts = make(s.Settings).Mixin(Stacksettings(), setts)
	state := &stackstate{bump: newbump(name, setts), refs: 1}
	return &Stack{state: state}
}

// NewStackOn create a new stack allocator over memory supplied by
// the caller.
func NewStackOn(name string, buf []byte, setts s.Settings) *Stack {
	setts = make(s.Settings).Mixin(Stacksettings(), setts)
	state := &stackstate{bump: newbumpon(name, buf, setts), refs: 1}
	return &Stack{state: state}
}

// Share return another handle on the same stack state.
func (stack *Stack) Share() *Stack {
	st := stack.live()
	st.refs++
	return &Stack{state: st}
}

// Refs return number of live handles, including views, sharing this
// stack's state.
func (stack *Stack) Refs() int64 {
	return stack.live().refs
}

// Alloc implement Bumper{} interface.
func (stack *Stack) Alloc(size, alignment int64) (Ptr, error) {
	return stack.live().alloc(size, alignment)
}

// Bytes implement Bumper{} interface.
func (stack *Stack) Bytes(ptr Ptr, n int64) []byte {
	return stack.live().bytes(ptr, n)
}

// Save implement Bumper{} interface.
func (stack *Stack) Save() Marker {
	st := stack.live()
	st.markers = append(st.markers, st.off)
	return Marker{off: st.off, depth: int32(len(st.markers)), owner: st.owner}
}

// Restore implement Bumper{} interface. Marker should be from this
// stack and must not have been discarded, by restoring an older
// marker or by Reset. On success marker remains valid and all
// markers saved after it are discarded.
func (stack *Stack) Restore(m Marker) error {
	st := stack.live()
	if m.owner != st.owner {
		return errors.Wrapf(ErrorInvalidMarker, "%v: foreign marker %v", st.name, m)
	}
	depth := int(m.depth)
	if depth < 1 || depth > len(st.markers) || st.markers[depth-1] != m.off {
		return errors.Wrapf(ErrorInvalidMarker, "%v: discarded marker %v", st.name, m)
	}
	if err := st.restore(m); err != nil {
		return err
	}
	st.markers = st.markers[:depth]
	return nil
}

// Reset implement Bumper{} interface, all markers are discarded.
func (stack *Stack) Reset() {
	st := stack.live()
	st.reset()
	st.markers = st.markers[:0]
}

// Free implement Bumper{} interface, always fail with
// ErrorIndividualFree.
func (stack *Stack) Free(ptr Ptr) error {
	st := stack.live()
	return errors.Wrapf(ErrorIndividualFree, "%v: free %v", st.name, ptr)
}

// Depth return number of markers on the marker stack.
func (stack *Stack) Depth() int {
	return len(stack.live().markers)
}

// Used implement Bumper{} interface.
func (stack *Stack) Used() int64 {
	return stack.live().off
}

// Available implement Bumper{} interface.
func (stack *Stack) Available() int64 {
	st := stack.live()
	return st.capacity() - st.off
}

// Capacity implement Bumper{} interface.
func (stack *Stack) Capacity() int64 {
	return stack.live().capacity()
}

// Info implement Mallocer{} interface.
func (stack *Stack) Info() (capacity, heap, alloc, overhead int64) {
	return stack.live().info()
}

// Stats implement Mallocer{} interface.
func (stack *Stack) Stats() map[string]interface{} {
	st := stack.live()
	stats := st.stats()
	stats["depth"] = int64(len(st.markers))
	stats["refs"] = st.refs
	return stats
}

// Log implement Mallocer{} interface.
func (stack *Stack) Log(humanize bool) {
	st := stack.live()
	st.log("stack", humanize)
	infof("%v: markers:%v refs:%v\n", st.name, len(st.markers), st.refs)
}

// Equal implement Mallocer{} interface, handles and views sharing
// the same state are equal.
func (stack *Stack) Equal(other Mallocer) bool {
	return other != nil && other.storageid() == stack.storageid()
}

// Release implement Mallocer{} interface. Release this handle, the
// storage is handed back to its source when the last handle sharing
// it is released. Calling Release more than once is a no-op.
func (stack *Stack) Release() {
	if stack.released {
		return
	}
	stack.released = true
	st := stack.state
	if st.refs--; st.refs == 0 {
		st.release()
		st.markers = nil
	}
}

func (stack *Stack) storageid() uint32 {
	return stack.state.owner
}

func (stack *Stack) live() *stackstate {
	if stack.released {
		panicerr("%v: use of released stack handle", stack.state.name)
	}
	return stack.state
}
