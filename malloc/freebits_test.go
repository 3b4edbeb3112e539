package malloc

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import s "github.com/bnclabs/gosettings"

func TestFreebits(t *testing.T) {
	fbits := newfreebits(20)
	require.Len(t, fbits.bitmap, 3)

	for _, slot := range []int64{0, 7, 8, 19} {
		assert.True(t, fbits.set(slot), "slot %v", slot)
	}
	assert.False(t, fbits.set(8))
	assert.Equal(t, []uint8{0x81, 0x01, 0x08}, fbits.bitmap)
	assert.Equal(t, int64(4), fbits.nset)
	assert.Equal(t, fbits.nset, fbits.ones())

	assert.True(t, fbits.isset(19))
	assert.False(t, fbits.isset(18))

	assert.True(t, fbits.clear(7))
	assert.False(t, fbits.clear(7))
	assert.False(t, fbits.clear(1))
	assert.Equal(t, int64(3), fbits.nset)
	assert.Equal(t, fbits.nset, fbits.ones())
}

func TestFreebitsPool(t *testing.T) {
	pool := NewPool("pool", s.Settings{"slotsize": 16, "chunkslots": 10})
	defer pool.Release()

	ptrs := make([]Ptr, 0, 10)
	for i := 0; i < 10; i++ {
		ptr, err := pool.Alloc()
		require.NoError(t, err)
		ptrs = append(ptrs, ptr)
	}
	bits := pool.chunks[0].bits
	assert.Equal(t, []uint8{0xff, 0x03}, bits.bitmap)

	require.NoError(t, pool.Free(ptrs[9]))
	require.NoError(t, pool.Free(ptrs[0]))
	assert.Equal(t, []uint8{0xfe, 0x01}, bits.bitmap)
	assert.Equal(t, int64(8), bits.ones())
}
