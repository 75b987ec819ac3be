package memo

import (
	"iter"
	"sync"
)

// Table is an append-only cache keyed by structural equality.
// The zero value is not usable; construct tables with [New].
type Table[K, V any] struct {
	mu      sync.Mutex
	hash    Hasher[K]
	equal   Equal[K]
	buckets map[uint64][]int
	entries []entry[K, V]
	stats   Stats
}

type entry[K, V any] struct {
	key   K
	value V
}

// Stats summarizes the activity of a [Table].
type Stats struct {
	Hits       int // lookups answered from the table
	Misses     int // lookups that computed a new value
	Entries    int // stored entries
	Collisions int // stored entries that share a hash with an earlier key
}

// New returns an empty [Table].
func New[K, V any](opts ...Option[K]) *Table[K, V] {
	cfg := apply(config[K]{
		hash:  defaultHasher[K](),
		equal: DeepEqual[K],
	}, opts...)

	return &Table[K, V]{
		hash:    cfg.hash,
		equal:   cfg.equal,
		buckets: make(map[uint64][]int),
	}
}

// Memoize wraps f so that repeated calls with deeply-equal arguments return
// the value computed by the first such call.
func Memoize[K, V any](f func(K) V, opts ...Option[K]) func(K) V {
	t := New[K, V](opts...)

	return func(key K) V {
		return t.Get(key, func() V { return f(key) })
	}
}

// Get returns the value stored for key, calling compute and storing its
// result when no deeply-equal key has been seen.
func (t *Table[K, V]) Get(key K, compute func() V) V {
	v, _, _ := t.LoadOrCompute(key, func() (V, error) {
		return compute(), nil
	})

	return v
}

// Load returns the value stored for key, if any.
func (t *Table[K, V]) Load(key K) (V, bool) {
	h := t.hash(key)

	t.mu.Lock()
	defer t.mu.Unlock()

	if i, ok := t.find(h, key); ok {
		t.stats.Hits++

		return t.entries[i].value, true
	}

	var zero V

	return zero, false
}

// LoadOrCompute returns the value stored for key and true, or else calls
// compute, stores its value, and returns it with false.
// A non-nil error from compute is returned as-is and nothing is stored.
func (t *Table[K, V]) LoadOrCompute(
	key K,
	compute func() (V, error),
) (value V, loaded bool, err error) {
	h := t.hash(key)

	t.mu.Lock()

	if i, ok := t.find(h, key); ok {
		t.stats.Hits++
		value = t.entries[i].value
		t.mu.Unlock()

		return value, true, nil
	}

	t.mu.Unlock()

	value, err = compute()
	if err != nil {
		return value, false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another caller may have stored the key while compute ran.
	if i, ok := t.find(h, key); ok {
		t.stats.Hits++

		return t.entries[i].value, true, nil
	}

	t.stats.Misses++

	if len(t.buckets[h]) > 0 {
		t.stats.Collisions++
	}

	t.buckets[h] = append(t.buckets[h], len(t.entries))
	t.entries = append(t.entries, entry[K, V]{key: key, value: value})

	return value, false, nil
}

// Len returns the number of stored entries.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Stats returns a snapshot of the table's counters.
func (t *Table[K, V]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats
	s.Entries = len(t.entries)

	return s
}

// All returns an iterator over stored entries in insertion order.
// Entries added during iteration are not visited.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.mu.Lock()
		snapshot := t.entries[:len(t.entries):len(t.entries)]
		t.mu.Unlock()

		for _, e := range snapshot {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// find must be called with t.mu held.
func (t *Table[K, V]) find(h uint64, key K) (int, bool) {
	for _, i := range t.buckets[h] {
		if t.equal(t.entries[i].key, key) {
			return i, true
		}
	}

	return 0, false
}
