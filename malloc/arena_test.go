package malloc

import "errors"
import "testing"
import "math/rand"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import s "github.com/bnclabs/gosettings"

func TestNewArena(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": "64KiB"})
	defer arena.Release()

	if x := arena.Capacity(); x != 65536 {
		t.Errorf("expected %v, got %v", 65536, x)
	} else if x := arena.Used(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := arena.Available(); x != 65536 {
		t.Errorf("expected %v, got %v", 65536, x)
	}
	capacity, heap, alloc, overhead := arena.Info()
	assert.Equal(t, int64(65536), capacity)
	assert.Equal(t, int64(65536+64), heap)
	assert.Equal(t, int64(0), alloc)
	assert.Equal(t, int64(64), overhead)

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena("arena", s.Settings{"capacity": 0})
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena("arena", s.Settings{"capacity": 1024, "alignment": 24})
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		src := NewCheckedsource(nil, 100)
		NewArena("arena", s.Settings{"capacity": 1024, "source": src})
	}()
}

func TestArenaScenario(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": 64})
	defer arena.Release()

	p1, err := arena.Alloc(10, 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), p1.Offset())
	require.Equal(t, int64(10), arena.Used())

	m := arena.Save()
	require.Equal(t, int64(10), m.Offset())

	p2, err := arena.Alloc(20, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), p2.Offset())
	require.Equal(t, int64(30), arena.Used())

	require.NoError(t, arena.Restore(m))
	require.Equal(t, int64(10), arena.Used())

	p3, err := arena.Alloc(5, 1)
	require.NoError(t, err)
	assert.Equal(t, p2, p3)
	assert.Equal(t, int64(15), arena.Used())

	// marker stays valid for arena.
	require.NoError(t, arena.Restore(m))
	assert.Equal(t, int64(10), arena.Used())
}

func TestArenaAlignment(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": "1MiB"})
	defer arena.Release()

	aligns := []int64{1, 2, 4, 8, 16, 32, 64}
	type span struct{ from, till int64 }
	spans := []span{}
	for i := 0; i < 1000; i++ {
		size, align := int64(rand.Intn(100)), aligns[rand.Intn(len(aligns))]
		ptr, err := arena.Alloc(size, align)
		require.NoError(t, err)
		if size > 0 {
			mem := arena.Bytes(ptr, size)
			addr := addressof(mem)
			if addr%uintptr(align) != 0 {
				t.Fatalf("address %x not aligned to %v", addr, align)
			}
		}
		if ptr.Offset()%align != 0 {
			t.Fatalf("offset %v not aligned to %v", ptr.Offset(), align)
		}
		spans = append(spans, span{ptr.Offset(), ptr.Offset() + size})
	}
	// no overlap, and offsets are monotonic.
	for i := 1; i < len(spans); i++ {
		if spans[i].from < spans[i-1].till {
			t.Fatalf("span %v overlaps %v", spans[i], spans[i-1])
		}
	}
}

func TestArenaMonotonic(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": 4096})
	defer arena.Release()

	sum := int64(0)
	for _, size := range []int64{3, 5, 8, 13, 21} {
		_, err := arena.Alloc(size, 8)
		require.NoError(t, err)
		sum = Alignup(sum, 8) + size
	}
	assert.Equal(t, sum, arena.Used())

	m := arena.Save()
	p1, err := arena.Alloc(100, 8)
	require.NoError(t, err)
	require.NoError(t, arena.Restore(m))
	p2, err := arena.Alloc(100, 8)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestArenaErrors(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": 64})
	defer arena.Release()

	_, err := arena.Alloc(8, 3)
	assert.True(t, errors.Is(err, ErrorBadAlignment))
	_, err = arena.Alloc(8, 128)
	assert.True(t, errors.Is(err, ErrorBadAlignment))

	_, err = arena.Alloc(60, 1)
	require.NoError(t, err)
	_, err = arena.Alloc(5, 1)
	require.True(t, errors.Is(err, ErrorOutofMemory))
	assert.Equal(t, int64(60), arena.Used())
	_, err = arena.Alloc(1, 64)
	require.True(t, errors.Is(err, ErrorOutofMemory))
	assert.Equal(t, int64(60), arena.Used())

	// zero sized allocation does not move past aligned offset.
	ptr, err := arena.Alloc(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(60), ptr.Offset())
	assert.Equal(t, int64(60), arena.Used())

	require.NoError(t, arena.Free(ptr))

	// marker from another arena.
	other := NewArena("other", s.Settings{"capacity": 64})
	defer other.Release()
	err = arena.Restore(other.Save())
	assert.True(t, errors.Is(err, ErrorInvalidMarker))

	// marker ahead of offset.
	m := arena.Save()
	arena.Reset()
	err = arena.Restore(m)
	assert.True(t, errors.Is(err, ErrorInvalidMarker))
	assert.Equal(t, int64(0), arena.Used())
}

func TestArenaBytes(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": 1024})
	defer arena.Release()

	ptr, err := arena.Alloc(16, 8)
	require.NoError(t, err)
	mem := arena.Bytes(ptr, 16)
	require.Len(t, mem, 16)
	require.Equal(t, 16, cap(mem))
	for _, byt := range mem {
		require.Equal(t, byte(0), byt)
	}
	copy(mem, "hello world")
	assert.Equal(t, "hello", string(arena.Bytes(ptr, 5)))

	other := NewArena("other", s.Settings{"capacity": 1024})
	defer other.Release()
	optr, err := other.Alloc(16, 8)
	require.NoError(t, err)

	// foreign handle.
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Bytes(optr, 16)
	}()
	// stale handle.
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		arena.Reset()
		arena.Bytes(ptr, 16)
	}()
}

func TestArenaRelease(t *testing.T) {
	src := NewCheckedsource(nil, 0)
	arena := NewArena("arena", s.Settings{"capacity": 4096, "source": src})
	assert.Equal(t, int64(4096), src.CurrentAlloc())
	_, err := arena.Alloc(100, 8)
	require.NoError(t, err)

	arena.Release()
	src.AssertSize(t, 0)
	arena.Release() // no-op
	assert.Equal(t, int64(1), src.Totalfrees())

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	arena.Alloc(10, 1)
}

func TestArenaOn(t *testing.T) {
	buf := make([]byte, 256)
	arena := NewArenaOn("arena", buf, s.Settings{"alignment": 8})
	assert.Equal(t, int64(256), arena.Capacity())

	ptr, err := arena.Alloc(4, 1)
	require.NoError(t, err)
	copy(arena.Bytes(ptr, 4), "abcd")
	assert.Equal(t, "abcd", string(buf[:4]))

	_, err = arena.Alloc(4, 16)
	assert.True(t, errors.Is(err, ErrorBadAlignment))
	_, err = arena.Alloc(300, 1)
	assert.True(t, errors.Is(err, ErrorOutofMemory))

	arena.Release()
	// caller still owns buffer.
	assert.Equal(t, "abcd", string(buf[:4]))
}

func TestArenaEqual(t *testing.T) {
	a1 := NewArena("a1", s.Settings{"capacity": 64})
	defer a1.Release()
	a2 := NewArena("a2", s.Settings{"capacity": 64})
	defer a2.Release()

	assert.True(t, a1.Equal(a1))
	assert.False(t, a1.Equal(a2))
	assert.False(t, a1.Equal(nil))
}

func TestArenaStats(t *testing.T) {
	arena := NewArena("arena", s.Settings{"capacity": 1024})
	defer arena.Release()

	for _, size := range []int64{10, 20, 30} {
		_, err := arena.Alloc(size, 1)
		require.NoError(t, err)
	}
	m := arena.Save()
	require.NoError(t, arena.Restore(m))
	arena.Reset()

	stats := arena.Stats()
	assert.Equal(t, int64(1024), stats["capacity"])
	assert.Equal(t, int64(0), stats["alloc"])
	assert.Equal(t, int64(60), stats["peak"])
	assert.Equal(t, int64(3), stats["n_allocs"])
	assert.Equal(t, int64(1), stats["n_restores"])
	assert.Equal(t, int64(1), stats["n_resets"])
	sizes := stats["sizes"].(map[string]interface{})
	assert.Equal(t, int64(3), sizes["samples"])
	assert.Equal(t, int64(10), sizes["min"])
	assert.Equal(t, int64(30), sizes["max"])
	assert.Equal(t, int64(20), sizes["mean"])
	arena.Log(true)
}

func BenchmarkArenaAlloc(b *testing.B) {
	arena := NewArena("arena", s.Settings{"capacity": "1MiB"})
	defer arena.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := arena.Alloc(64, 8); err != nil {
			arena.Reset()
		}
	}
}

func BenchmarkArenaSaveRestore(b *testing.B) {
	arena := NewArena("arena", s.Settings{"capacity": "1MiB"})
	defer arena.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := arena.Save()
		arena.Alloc(128, 16)
		arena.Restore(m)
	}
}
