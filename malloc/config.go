package malloc

import "math"

import "github.com/cloudfoundry/gosigar"

import s "github.com/bnclabs/gosettings"

// Alignment default alignment for pool slots, word size.
const Alignment = int64(8)

// Blockalign default alignment for arena and stack storage, and the
// largest alignment a request can ask for.
const Blockalign = int64(64)

// Maxchunks maximum number of chunks allowed in a pool.
const Maxchunks = int64(65536)

// Arenasettings default settings for NewArena.
//
// "capacity" (int64 or string, default: "1MiB")
//		Size of backing storage, fixed for the lifetime of arena.
//		Strings are parsed as humanized sizes like "64KiB".
//
// "alignment" (int64, default: 64)
//		Alignment of backing storage, maximum alignment that
//		can be requested from Alloc.
//
// "source" (string or Source, default: "heap")
//		Backing storage, "heap", "mmap" or a Source value.
func Arenasettings() s.Settings {
	return s.Settings{
		"capacity":  "1MiB",
		"alignment": Blockalign,
		"source":    "heap",
	}
}

// Stacksettings default settings for NewStack, same as
// Arenasettings.
func Stacksettings() s.Settings {
	return Arenasettings()
}

// Poolsettings default settings for NewPool.
//
// "slotsize" (int64, default: 64)
//		Size of each slot, rounded up to a multiple of "alignment".
//
// "alignment" (int64, default: 8)
//		Alignment of every slot.
//
// "chunkslots" (int64, default: 1024)
//		Number of slots in each chunk.
//
// "maxchunks" (int64, default: 65536)
//		Pool fails with ErrorOutofMemory beyond these many chunks.
//
// "maxheap" (int64 or string, default: math.MaxInt64)
//		Pool fails with ErrorOutofMemory beyond these many bytes.
//		Unbounded by default, Sysmemory helps pick a cap.
//
// "source" (string or Source, default: "heap")
//		Backing storage for chunks.
//
// "checkfree" (bool, default: true)
//		Track allocated slots to detect double free.
//
// "prealloc" (bool, default: false)
//		Allocate the first chunk while creating the pool.
func Poolsettings() s.Settings {
	return s.Settings{
		"slotsize":   int64(64),
		"alignment":  Alignment,
		"chunkslots": int64(1024),
		"maxchunks":  Maxchunks,
		"maxheap":    int64(math.MaxInt64),
		"source":     "heap",
		"checkfree":  true,
		"prealloc":   false,
	}
}

// Fixedsettings default settings for NewFixedPool and
// NewFixedPoolOn. "slotsize", "alignment", "chunkslots", "source" and
// "checkfree" have the same meaning as in Poolsettings.
func Fixedsettings() s.Settings {
	return s.Settings{
		"slotsize":   int64(64),
		"alignment":  Alignment,
		"chunkslots": int64(1024),
		"source":     "heap",
		"checkfree":  true,
	}
}

// Sysmemory return total memory and memory available for allocation,
// counting reclaimable page cache, in bytes. Return zeros on platforms
// not supported by sigar.
func Sysmemory() (total, free int64) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0, 0
	}
	return int64(mem.Total), int64(mem.ActualFree)
}
