package mapz

// ReadOnlyMultimap is a read-only multimap.
type ReadOnlyMultimap[K, V any] interface {
	// Has returns true if the key is found in the map.
	Has(key K) bool

	// Get returns the values for the given key in the map and whether the key
	// existed.
	// If the key does not exist, an empty slice is returned.
	Get(key K) ([]V, bool)

	// CountOf returns the number of values stored for the given key.
	CountOf(key K) int

	// IsEmpty returns true if the map is currently empty.
	IsEmpty() bool

	// Len returns the length of the map, e.g. the number of *keys* present.
	Len() int

	// Keys returns the keys of the map.
	Keys() []K

	// Values returns all values in the map.
	Values() []V
}

type readOnlyMultimap[K, V any] struct {
	dict *MultipleDictionary[K, V]
}

var _ ReadOnlyMultimap[string, int] = readOnlyMultimap[string, int]{}

func (mm readOnlyMultimap[K, V]) Has(key K) bool { return mm.dict.ContainsKey(key) }

func (mm readOnlyMultimap[K, V]) Get(key K) ([]V, bool) { return mm.dict.Get(key) }

func (mm readOnlyMultimap[K, V]) CountOf(key K) int { return mm.dict.CountValues(key) }

func (mm readOnlyMultimap[K, V]) IsEmpty() bool { return mm.dict.IsEmpty() }

func (mm readOnlyMultimap[K, V]) Len() int { return mm.dict.Len() }

func (mm readOnlyMultimap[K, V]) Keys() []K { return mm.dict.Keys() }

func (mm readOnlyMultimap[K, V]) Values() []V { return mm.dict.Values() }
