package malloc

import "fmt"
import "reflect"

import humanize "github.com/dustin/go-humanize"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

var poolblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}

// pointerfree return true if values of typ hold no Go pointers, and
// can live in memory the garbage collector does not scan.
func pointerfree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64,
		reflect.Complex128:
		return true

	case reflect.Array:
		return typ.Len() == 0 || pointerfree(typ.Elem())

	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if !pointerfree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

func typeof[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func bytesof(n int64, human bool) string {
	if human {
		return humanize.IBytes(uint64(n))
	}
	return fmt.Sprintf("%v", n)
}
