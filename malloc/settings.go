package malloc

import humanize "github.com/dustin/go-humanize"
import s "github.com/bnclabs/gosettings"

// sizesetting return a size in bytes for key. Value can be a number
// or a humanized string like "64KiB", "1MB", "4 GiB".
func sizesetting(setts s.Settings, key string) int64 {
	if str, ok := setts[key].(string); ok {
		n, err := humanize.ParseBytes(str)
		if err != nil {
			panicerr("settings %q: %v", key, err)
		}
		return int64(n)
	}
	val := setts.Int64(key)
	if val < 0 {
		panicerr("settings %q is negative: %v", key, val)
	}
	return val
}

// power2setting return the value for key, which must be a power of 2.
func power2setting(setts s.Settings, key string) int64 {
	val := setts.Int64(key)
	if !Ispowerof2(val) {
		panicerr("settings %q must be a power of 2, got %v", key, val)
	}
	return val
}
