package memo

import (
	"cmp"
	"encoding/binary"
	"math"
	"reflect"
	"slices"

	"github.com/zeebo/xxh3"
)

// Hasher reduces a key to a 64-bit hash.
// Keys that are deeply equal must produce the same hash.
type Hasher[K any] func(K) uint64

// Equal reports whether two keys address the same entry.
type Equal[K any] func(a, b K) bool

// HashString hashes a string key with xxh3.
func HashString(s string) uint64 { return xxh3.HashString(s) }

// HashValue walks key by reflection and hashes its contents with xxh3.
//
// The walk follows the same rules as [reflect.DeepEqual]: pointers and
// interfaces are hashed by what they refer to, and map entries are hashed
// independently of iteration order. Functions and channels contribute only
// their kind, leaving those keys to [Equal]. A reference cycle is cut where
// it closes, so cyclic keys that are deeply equal but differently shaped
// may land in different buckets; supply a dedicated [Hasher] for such types.
func HashValue[K any](key K) uint64 {
	w := walker{seen: map[visit]struct{}{}}
	w.value(reflect.ValueOf(key))

	return xxh3.Hash(w.buf)
}

// DeepEqual is the default [Equal] and compares keys with [reflect.DeepEqual].
func DeepEqual[K any](a, b K) bool { return reflect.DeepEqual(a, b) }

// defaultHasher selects the cheapest hasher for the key type.
func defaultHasher[K any]() Hasher[K] {
	var zero K

	if _, ok := any(zero).(string); ok {
		return func(k K) uint64 {
			s, _ := any(k).(string)

			return HashString(s)
		}
	}

	return HashValue[K]
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

type walker struct {
	buf  []byte
	seen map[visit]struct{}
}

func (w *walker) u64(x uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, x) }

func (w *walker) str(s string) {
	w.u64(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// within walks into v unless v is already on the current path, in which
// case only a cycle marker is written. Shared references that do not form a
// cycle are walked in full each time, as DeepEqual compares them.
func (w *walker) within(v reflect.Value, walk func()) {
	k := visit{ptr: uintptr(v.UnsafePointer()), typ: v.Type()}
	if _, ok := w.seen[k]; ok {
		w.buf = append(w.buf, 0xff)

		return
	}

	w.seen[k] = struct{}{}
	defer delete(w.seen, k)

	walk()
}

func (w *walker) value(v reflect.Value) {
	if !v.IsValid() {
		w.buf = append(w.buf, 0)

		return
	}

	w.buf = append(w.buf, byte(v.Kind()))

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.buf = append(w.buf, 1)
		} else {
			w.buf = append(w.buf, 0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.u64(uint64(v.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.u64(v.Uint())

	case reflect.Float32, reflect.Float64:
		w.float(v.Float())

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		w.float(real(c))
		w.float(imag(c))

	case reflect.String:
		w.str(v.String())

	case reflect.Array:
		for i := range v.Len() {
			w.value(v.Index(i))
		}

	case reflect.Slice:
		if v.IsNil() {
			w.buf = append(w.buf, 0)

			return
		}

		w.u64(uint64(v.Len()))

		if v.Len() == 0 {
			return
		}

		w.within(v, func() {
			for i := range v.Len() {
				w.value(v.Index(i))
			}
		})

	case reflect.Struct:
		for i := range v.NumField() {
			w.value(v.Field(i))
		}

	case reflect.Pointer:
		if v.IsNil() {
			w.buf = append(w.buf, 0)

			return
		}

		w.within(v, func() { w.value(v.Elem()) })

	case reflect.Interface:
		if v.IsNil() {
			w.buf = append(w.buf, 0)

			return
		}

		w.str(v.Elem().Type().String())
		w.value(v.Elem())

	case reflect.Map:
		if v.IsNil() {
			w.buf = append(w.buf, 0)

			return
		}

		w.u64(uint64(v.Len()))

		w.within(v, func() { w.entries(v) })

	default:
		// Func, Chan and UnsafePointer: the kind byte alone.
	}
}

// float writes f so that values DeepEqual treats as equal share bytes.
func (w *walker) float(f float64) {
	if f == 0 {
		f = 0 // -0 == +0
	}

	w.u64(math.Float64bits(f))
}

// entries hashes each key/value pair on its own and writes the pair hashes
// in sorted order, so the result does not depend on map iteration order.
func (w *walker) entries(v reflect.Value) {
	type pair struct{ k, v uint64 }

	pairs := make([]pair, 0, v.Len())
	iter := v.MapRange()

	for iter.Next() {
		pairs = append(pairs, pair{k: w.sub(iter.Key()), v: w.sub(iter.Value())})
	}

	slices.SortFunc(pairs, func(a, b pair) int {
		return cmp.Or(cmp.Compare(a.k, b.k), cmp.Compare(a.v, b.v))
	})

	for _, p := range pairs {
		w.u64(p.k)
		w.u64(p.v)
	}
}

// sub hashes v with a walker that shares the current path.
func (w *walker) sub(v reflect.Value) uint64 {
	s := walker{seen: w.seen}
	s.value(v)

	return xxh3.Hash(s.buf)
}
