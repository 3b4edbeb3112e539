package malloc

import "math"
import "unsafe"

import "github.com/pkg/errors"

// Alloc a zeroed value of type T from an arena or stack. T must not
// hold Go pointers. Returned pointer is valid until the allocation
// is reclaimed by Restore, Reset or Release.
func Alloc[T any](b Bumper) (*T, Ptr, error) {
	items, ptr, err := AllocSlice[T](b, 1)
	if err != nil {
		return nil, Ptr{}, err
	}
	return &items[0], ptr, nil
}

// AllocSlice allocate n zeroed values of type T, contiguous and
// aligned to T's alignment, from an arena or stack.
func AllocSlice[T any](b Bumper, n int) ([]T, Ptr, error) {
	size, align, err := sizeof[T]()
	if err != nil {
		return nil, Ptr{}, err
	} else if n < 0 {
		panicerr("allocslice: negative count %v", n)
	}
	total, err := arraysize(size, n)
	if err != nil {
		return nil, Ptr{}, err
	}
	ptr, err := b.Alloc(total, align)
	if err != nil {
		return nil, Ptr{}, err
	}
	return sliceof[T](b.Bytes(ptr, total), n), ptr, nil
}

// arraysize return size*n, fail with ErrorOutofMemory if it does not
// fit in int64.
func arraysize(size int64, n int) (int64, error) {
	if n > 0 && size > math.MaxInt64/int64(n) {
		return 0, errors.Wrapf(ErrorOutofMemory, "%v items of %v bytes", n, size)
	}
	return size * int64(n), nil
}

// sizeof return size and alignment of T, fail if T hold Go pointers.
func sizeof[T any]() (size, align int64, err error) {
	typ := typeof[T]()
	if !pointerfree(typ) {
		return 0, 0, errors.Wrapf(ErrorPointerType, "type %v", typ)
	}
	var zero T
	size, align = int64(unsafe.Sizeof(zero)), int64(unsafe.Alignof(zero))
	return size, align, nil
}

func sliceof[T any](mem []byte, n int) []T {
	if len(mem) == 0 { // zero sized T, or n is 0
		return make([]T, n)
	}
	clear(mem)
	return unsafe.Slice((*T)(unsafe.Pointer(&mem[0])), n)
}
