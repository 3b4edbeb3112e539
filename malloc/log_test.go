package malloc

import "os"
import "testing"
import "strings"
import "sync/atomic"
import "path/filepath"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"

func TestLogComponents(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "malloc.log")
	log.SetLogger(nil, map[string]interface{}{"log.level": "debug", "log.file": logfile})
	defer log.SetLogger(nil, map[string]interface{}{"log.level": "warn", "log.file": ""})

	LogComponents("llrb")
	require.Equal(t, int64(0), atomic.LoadInt64(&logok))
	LogComponents("malloc")
	defer atomic.StoreInt64(&logok, 0)

	arena := NewArena("logarena", s.Settings{"capacity": "2KiB"})
	arena.Alloc(100, 8)
	arena.Log(true)
	arena.Release()

	pool := NewPool("logpool", s.Settings{"slotsize": 32, "chunkslots": 4})
	pool.Alloc()
	pool.Log(false)
	pool.Release()

	total, free := Sysmemory()
	NewPool("logcapped", s.Settings{"maxheap": total + 1}).Release()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "logarena: arena capacity:2.0 KiB")
	assert.Contains(t, out, "logarena: released")
	assert.Contains(t, out, "logpool: grown to 1 chunks")
	assert.Contains(t, out, "logpool: slotsize:32 chunks:1 allocated:1 available:3")
	if free > 0 {
		assert.Contains(t, out, "logcapped: maxheap")
	}
	assert.True(t, strings.Count(out, "\n") > 5)
}
