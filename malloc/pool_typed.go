package malloc

import "unsafe"

import s "github.com/bnclabs/gosettings"

// TypedPool is a growable pool of values of type T, slot size and
// alignment are taken from T. Construction and destruction of values
// is left to the application, Alloc hands out zeroed memory.
type TypedPool[T any] struct {
	pool *Pool
}

// NewTypedPool create a pool for values of T, "slotsize" and
// "alignment" settings are ignored. Fail with ErrorPointerType if T
// hold Go pointers.
func NewTypedPool[T any](name string, setts s.Settings) (*TypedPool[T], error) {
	size, align, err := sizeof[T]()
	if err != nil {
		return nil, err
	}
	setts = make(s.Settings).Mixin(setts, s.Settings{
		"slotsize": max(size, 1), "alignment": align,
	})
	return &TypedPool[T]{pool: NewPool(name, setts)}, nil
}

// Alloc a zeroed value of T.
func (tp *TypedPool[T]) Alloc() (*T, Ptr, error) {
	ptr, err := tp.pool.Alloc()
	if err != nil {
		return nil, Ptr{}, err
	}
	mem := tp.pool.Slot(ptr)
	clear(mem)
	return (*T)(unsafe.Pointer(&mem[0])), ptr, nil
}

// Get return the value allocated at ptr.
func (tp *TypedPool[T]) Get(ptr Ptr) *T {
	return (*T)(unsafe.Pointer(&tp.pool.Slot(ptr)[0]))
}

// Free value back to pool.
func (tp *TypedPool[T]) Free(ptr Ptr) error {
	return tp.pool.Free(ptr)
}

// Pool return the untyped pool behind this typed pool.
func (tp *TypedPool[T]) Pool() *Pool {
	return tp.pool
}

// Release the pool.
func (tp *TypedPool[T]) Release() {
	tp.pool.Release()
}
