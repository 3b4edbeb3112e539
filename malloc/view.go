package malloc

import "unsafe"

// View is a typed handle on a Stack, allocating values of T from
// the stack's shared storage and offset. A view holds a reference on
// the stack state, release it with Release.
type View[T any] struct {
	stack *Stack
	size  int64
	align int64
}

// NewView create a typed view sharing stack's state. Fail with
// ErrorPointerType if T hold Go pointers.
func NewView[T any](stack *Stack) (*View[T], error) {
	size, align, err := sizeof[T]()
	if err != nil {
		return nil, err
	}
	return &View[T]{stack: stack.Share(), size: size, align: align}, nil
}

// Alloc n zeroed values of T, aligned to T's alignment.
func (view *View[T]) Alloc(n int) ([]T, Ptr, error) {
	if n < 0 {
		panicerr("view: negative count %v", n)
	}
	size, err := arraysize(view.size, n)
	if err != nil {
		return nil, Ptr{}, err
	}
	ptr, err := view.stack.Alloc(size, view.align)
	if err != nil {
		return nil, Ptr{}, err
	}
	return sliceof[T](view.stack.Bytes(ptr, size), n), ptr, nil
}

// Get return the n values of T allocated at ptr.
func (view *View[T]) Get(ptr Ptr, n int) []T {
	mem := view.stack.Bytes(ptr, view.size*int64(n))
	if len(mem) == 0 {
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&mem[0])), n)
}

// Stack return the untyped handle behind this view.
func (view *View[T]) Stack() *Stack {
	return view.stack
}

// Save same as Stack.Save.
func (view *View[T]) Save() Marker {
	return view.stack.Save()
}

// Restore same as Stack.Restore.
func (view *View[T]) Restore(m Marker) error {
	return view.stack.Restore(m)
}

// Info implement Mallocer{} interface.
func (view *View[T]) Info() (capacity, heap, alloc, overhead int64) {
	return view.stack.Info()
}

// Stats implement Mallocer{} interface.
func (view *View[T]) Stats() map[string]interface{} {
	return view.stack.Stats()
}

// Log implement Mallocer{} interface.
func (view *View[T]) Log(humanize bool) {
	view.stack.Log(humanize)
}

// Equal implement Mallocer{} interface.
func (view *View[T]) Equal(other Mallocer) bool {
	return view.stack.Equal(other)
}

// Release implement Mallocer{} interface, drop this view's
// reference on the stack state.
func (view *View[T]) Release() {
	view.stack.Release()
}

func (view *View[T]) storageid() uint32 {
	return view.stack.storageid()
}
