package malloc

import "math"
import "testing"

import "github.com/stretchr/testify/assert"

import s "github.com/bnclabs/gosettings"

func TestSizesetting(t *testing.T) {
	setts := s.Settings{
		"int": 100, "int64": int64(4096), "float64": float64(64),
		"kib": "64KiB", "mb": "1MB", "spaced": "4 GiB",
		"negative": -1, "junk": "lots", "flag": true,
	}
	assert.Equal(t, int64(100), sizesetting(setts, "int"))
	assert.Equal(t, int64(4096), sizesetting(setts, "int64"))
	assert.Equal(t, int64(64), sizesetting(setts, "float64"))
	assert.Equal(t, int64(64*1024), sizesetting(setts, "kib"))
	assert.Equal(t, int64(1000*1000), sizesetting(setts, "mb"))
	assert.Equal(t, int64(4<<30), sizesetting(setts, "spaced"))

	assert.Panics(t, func() { sizesetting(setts, "negative") })
	assert.Panics(t, func() { sizesetting(setts, "junk") })
	assert.Panics(t, func() { sizesetting(setts, "flag") })
	assert.Panics(t, func() { sizesetting(setts, "missing") })
}

func TestPower2setting(t *testing.T) {
	setts := s.Settings{"one": 1, "eight": int64(8), "twelve": 12, "zero": 0}
	assert.Equal(t, int64(1), power2setting(setts, "one"))
	assert.Equal(t, int64(8), power2setting(setts, "eight"))
	assert.Panics(t, func() { power2setting(setts, "twelve") })
	assert.Panics(t, func() { power2setting(setts, "zero") })

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic for alignment 24")
			}
		}()
		NewArena("arena", s.Settings{"alignment": 24})
	}()
}

func TestDefaultsettings(t *testing.T) {
	setts := Poolsettings()
	if x := setts.Int64("maxheap"); x != math.MaxInt64 {
		t.Errorf("expected %v, got %v", int64(math.MaxInt64), x)
	}
	assert.Equal(t, int64(1<<20), sizesetting(Arenasettings(), "capacity"))
	assert.Equal(t, Arenasettings(), Stacksettings())
	assert.Equal(t, "heap", Fixedsettings().String("source"))

	total, free := Sysmemory()
	assert.True(t, free >= 0)
	assert.True(t, total >= free)

	pool := NewPool("pool", nil)
	defer pool.Release()
	assert.Equal(t, int64(math.MaxInt64), pool.maxheap)
}
