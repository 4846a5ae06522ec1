package mapz

import (
	"iter"
	"slices"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	log "github.com/authzed/multidict/internal/logging"
	"github.com/authzed/multidict/pkg/bugs"
)

// maxInitialValueCapacity bounds the value array preallocated for each new
// key.
const maxInitialValueCapacity = 1 << 16

// keyAndValues is the record stored in the hash table for each key. A stored
// record always holds at least one value; a record with no values is only
// ever used as a probe for lookups.
type keyAndValues[K, V any] struct {
	key    K
	values []V
}

// clone copies the record, including its value array.
func (kv *keyAndValues[K, V]) clone() *keyAndValues[K, V] {
	return &keyAndValues[K, V]{key: kv.key, values: slices.Clone(kv.values)}
}

// keyAndValuesComparer compares records by key alone.
type keyAndValuesComparer[K, V any] struct {
	keys Comparer[K]
}

func (c keyAndValuesComparer[K, V]) Equal(a, b *keyAndValues[K, V]) bool {
	return c.keys.Equal(a.key, b.key)
}

func (c keyAndValuesComparer[K, V]) Hash(kv *keyAndValues[K, V]) uint64 {
	return c.keys.Hash(kv.key)
}

// MultipleDictionary associates each key with one or more values. Values
// for a key are kept in the order they were added.
//
// When duplicate values are not allowed, adding a value equal to one already
// associated with the key replaces the existing value instead, leaving the
// number of values unchanged. Different keys may always share values.
//
// A MultipleDictionary is not safe for concurrent use; see
// SyncMultipleDictionary.
type MultipleDictionary[K, V any] struct {
	allowDuplicateValues bool
	keyComparer          Comparer[K]
	valueComparer        Comparer[V]
	recordComparer       keyAndValuesComparer[K, V]

	initialKeyCapacity   int
	initialValueCapacity int
	metricsName          string

	hash  *Hash[*keyAndValues[K, V]]
	stats dictionaryStats
}

// NewMultipleDictionary creates a new MultipleDictionary using the natural
// equality of keys and values.
func NewMultipleDictionary[K, V comparable](allowDuplicateValues bool) *MultipleDictionary[K, V] {
	d, err := NewMultipleDictionaryWithComparers(allowDuplicateValues, DefaultComparer[K](), DefaultComparer[V]())
	if err != nil {
		bugs.MustPanic("could not construct dictionary with default comparers: %v", err)
	}
	return d
}

// NewMultipleDictionaryWithComparers creates a new MultipleDictionary that
// compares keys and values with the given comparers.
func NewMultipleDictionaryWithComparers[K, V any](
	allowDuplicateValues bool,
	keyComparer Comparer[K],
	valueComparer Comparer[V],
	opts ...DictionaryOptionsOption,
) (*MultipleDictionary[K, V], error) {
	if keyComparer == nil {
		return nil, NewNilComparerErr("keyComparer")
	}
	if valueComparer == nil {
		return nil, NewNilComparerErr("valueComparer")
	}

	options := NewDictionaryOptionsWithOptionsAndDefaults(opts...)
	if options.InitialKeyCapacity > maxHashCapacity {
		return nil, NewCapacityTooLargeErr("InitialKeyCapacity", uint64(options.InitialKeyCapacity), maxHashCapacity)
	}
	if options.InitialValueCapacity > maxInitialValueCapacity {
		return nil, NewCapacityTooLargeErr("InitialValueCapacity", uint64(options.InitialValueCapacity), maxInitialValueCapacity)
	}

	keyCapacity, err := safecast.Convert[int](options.InitialKeyCapacity)
	if err != nil {
		return nil, err
	}
	valueCapacity, err := safecast.Convert[int](options.InitialValueCapacity)
	if err != nil {
		return nil, err
	}

	d := &MultipleDictionary[K, V]{
		allowDuplicateValues: allowDuplicateValues,
		keyComparer:          keyComparer,
		valueComparer:        valueComparer,
		recordComparer:       keyAndValuesComparer[K, V]{keyComparer},
		initialKeyCapacity:   keyCapacity,
		initialValueCapacity: max(valueCapacity, 1),
	}
	d.hash = newHash[*keyAndValues[K, V]](d.recordComparer, d.initialKeyCapacity, &d.stats.table)

	if options.MetricsName != "" {
		if err := registerDictionary(options.MetricsName, d); err != nil {
			return nil, err
		}
		d.metricsName = options.MetricsName

		log.Component(zerolog.DebugLevel, "dictionary").
			Object("options", options).
			Msg("created dictionary")
	}

	return d, nil
}

// AllowsDuplicateValues returns true if the same value can be associated
// with a key more than once.
func (d *MultipleDictionary[K, V]) AllowsDuplicateValues() bool { return d.allowDuplicateValues }

// KeyComparer returns the comparer used for keys.
func (d *MultipleDictionary[K, V]) KeyComparer() Comparer[K] { return d.keyComparer }

// ValueComparer returns the comparer used for values.
func (d *MultipleDictionary[K, V]) ValueComparer() Comparer[V] { return d.valueComparer }

func (d *MultipleDictionary[K, V]) find(key K) (*keyAndValues[K, V], bool) {
	return d.hash.Find(&keyAndValues[K, V]{key: key})
}

// indexOfValue returns the index of the first value in the record equal to
// value, or -1.
func (d *MultipleDictionary[K, V]) indexOfValue(record *keyAndValues[K, V], value V) int {
	valueHash := d.valueComparer.Hash(value)
	for index, existing := range record.values {
		if d.valueComparer.Hash(existing) == valueHash && d.valueComparer.Equal(existing, value) {
			return index
		}
	}
	return -1
}

// lastIndexOfValue returns the index of the last value in the record equal
// to value, or -1.
func (d *MultipleDictionary[K, V]) lastIndexOfValue(record *keyAndValues[K, V], value V) int {
	valueHash := d.valueComparer.Hash(value)
	for index := len(record.values) - 1; index >= 0; index-- {
		existing := record.values[index]
		if d.valueComparer.Hash(existing) == valueHash && d.valueComparer.Equal(existing, value) {
			return index
		}
	}
	return -1
}

// Add associates value with key.
//
// If duplicate values are allowed, the value is always appended to the
// key's values. Otherwise, a value equal to it already associated with the
// key is replaced by it, and the number of values for the key is unchanged.
func (d *MultipleDictionary[K, V]) Add(key K, value V) {
	existing, ok := d.find(key)
	if !ok {
		values := make([]V, 1, d.initialValueCapacity)
		values[0] = value
		d.hash.Insert(&keyAndValues[K, V]{key: key, values: values}, true)
		d.stats.values.Add(1)
		return
	}

	bugs.DebugAssertf(func() bool { return len(existing.values) > 0 }, "stored record has no values")

	if !d.allowDuplicateValues {
		if index := d.indexOfValue(existing, value); index >= 0 {
			existing.values[index] = value
			d.hash.FindForUpdate(existing)
			return
		}
	}

	existing.values = appendDoubling(existing.values, value)
	d.stats.values.Add(1)
	d.hash.FindForUpdate(existing)
}

// appendDoubling appends value, doubling the capacity of values if it is
// full.
func appendDoubling[V any](values []V, value V) []V {
	if len(values) == cap(values) {
		grown := make([]V, len(values), max(2*len(values), 1))
		copy(grown, values)
		values = grown
	}
	return append(values, value)
}

// AddMany associates each of the values with key, in order, as if by Add.
func (d *MultipleDictionary[K, V]) AddMany(key K, values ...V) {
	for _, value := range values {
		d.Add(key, value)
	}
}

// Remove removes a value equal to value from those associated with key. If
// it was the last value for the key, the key is removed as well.
//
// If duplicates are allowed and more than one equal value is present, the
// most recently added one is removed. Returns false, changing nothing, if no
// equal value is associated with key.
func (d *MultipleDictionary[K, V]) Remove(key K, value V) bool {
	existing, ok := d.find(key)
	if !ok {
		return false
	}

	index := d.lastIndexOfValue(existing, value)
	if index < 0 {
		return false
	}

	d.stats.values.Add(-1)
	if len(existing.values) == 1 {
		d.hash.Delete(existing)
		return true
	}

	existing.values = slices.Delete(existing.values, index, index+1)
	d.hash.FindForUpdate(existing)
	return true
}

// RemoveMany removes each of the values from those associated with key, as
// if by Remove, returning how many were removed.
func (d *MultipleDictionary[K, V]) RemoveMany(key K, values ...V) int {
	removed := 0
	for _, value := range values {
		if d.Remove(key, value) {
			removed++
		}
	}
	return removed
}

// RemoveKey removes key and all of its values. Returns false if the key was
// not present.
func (d *MultipleDictionary[K, V]) RemoveKey(key K) bool {
	removed, ok := d.hash.Delete(&keyAndValues[K, V]{key: key})
	if ok {
		d.stats.values.Add(-int64(len(removed.values)))
	}
	return ok
}

// Replace replaces all values associated with key by value. Returns true if
// the key was present.
func (d *MultipleDictionary[K, V]) Replace(key K, value V) bool {
	return d.ReplaceMany(key, value)
}

// ReplaceMany replaces all values associated with key by the given values,
// added as if by AddMany. Replacing with no values removes the key. Returns
// true if the key was present.
func (d *MultipleDictionary[K, V]) ReplaceMany(key K, values ...V) bool {
	existed := d.RemoveKey(key)
	d.AddMany(key, values...)
	return existed
}

// Clear removes every key and value from the dictionary. All outstanding
// enumerations are invalidated.
func (d *MultipleDictionary[K, V]) Clear() {
	d.hash.StopEnumerations()
	keys := d.hash.Len()

	d.hash = newHash[*keyAndValues[K, V]](d.recordComparer, d.initialKeyCapacity, &d.stats.table)
	d.stats.values.Store(0)

	log.Component(zerolog.TraceLevel, "dictionary").
		Str("dictionary", d.metricsName).
		Int("removedKeys", keys).
		Msg("cleared dictionary")
}

// Contains returns true if a value equal to value is associated with key.
func (d *MultipleDictionary[K, V]) Contains(key K, value V) bool {
	existing, ok := d.find(key)
	if !ok {
		return false
	}
	return d.indexOfValue(existing, value) >= 0
}

// ContainsKey returns true if the key has at least one value.
func (d *MultipleDictionary[K, V]) ContainsKey(key K) bool {
	_, ok := d.find(key)
	return ok
}

// Len returns the length of the dictionary, e.g. the number of *keys*
// present. See TotalCount for the number of key-value pairs.
func (d *MultipleDictionary[K, V]) Len() int { return d.hash.Len() }

// TotalCount returns the number of key-value pairs in the dictionary. Each
// duplicate value is counted.
func (d *MultipleDictionary[K, V]) TotalCount() int { return int(d.stats.values.Load()) }

// IsEmpty returns true if the dictionary has no keys.
func (d *MultipleDictionary[K, V]) IsEmpty() bool { return d.hash.Len() == 0 }

// CountValues returns the number of values associated with key, or zero if
// the key is not present.
func (d *MultipleDictionary[K, V]) CountValues(key K) int {
	existing, ok := d.find(key)
	if !ok {
		return 0
	}
	return len(existing.values)
}

// Get returns a copy of the values associated with key and whether the key
// existed. If the key does not exist, an empty slice is returned.
func (d *MultipleDictionary[K, V]) Get(key K) ([]V, bool) {
	existing, ok := d.find(key)
	if !ok {
		return []V{}, false
	}
	return slices.Clone(existing.values), true
}

// Keys returns the keys of the dictionary, in no particular order.
func (d *MultipleDictionary[K, V]) Keys() []K {
	records := d.hash.Items()
	keys := make([]K, 0, len(records))
	for _, record := range records {
		keys = append(keys, record.key)
	}
	return keys
}

// Values returns all values in the dictionary, grouped by key.
func (d *MultipleDictionary[K, V]) Values() []V {
	values := make([]V, 0, d.TotalCount())
	for _, record := range d.hash.Items() {
		values = append(values, record.values...)
	}
	return values
}

// EnumerateKeys returns a lazy enumeration of the keys of the dictionary, in
// no particular order. Stepping the enumeration after the dictionary was
// modified yields ErrCollectionModified.
func (d *MultipleDictionary[K, V]) EnumerateKeys() iter.Seq2[K, error] {
	records := d.hash.All()
	return func(yield func(K, error) bool) {
		for record, err := range records {
			if err != nil {
				yield(*new(K), err)
				return
			}

			if !yield(record.key, nil) {
				return
			}
		}
	}
}

// TryEnumerateValuesForKey returns a lazy enumeration of the values
// associated with key and whether the key was present. Stepping the
// enumeration after the dictionary was modified yields
// ErrCollectionModified.
//
// If the key is not present, the returned enumeration is empty.
func (d *MultipleDictionary[K, V]) TryEnumerateValuesForKey(key K) (iter.Seq2[V, error], bool) {
	existing, ok := d.find(key)
	if !ok {
		return func(yield func(V, error) bool) {}, false
	}
	return enumerateValues(d.hash, existing), true
}

// enumerateValues walks the record's values without handing out the backing
// array, checking the table's stamp before every step.
func enumerateValues[K, V any](table *Hash[*keyAndValues[K, V]], record *keyAndValues[K, V]) iter.Seq2[V, error] {
	stamp := table.EnumerationStamp()
	return func(yield func(V, error) bool) {
		for index := 0; ; index++ {
			if err := table.CheckEnumerationStamp(stamp); err != nil {
				yield(*new(V), err)
				return
			}

			if index >= len(record.values) {
				return
			}

			if !yield(record.values[index], nil) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the dictionary. The clone is never registered
// for metrics.
func (d *MultipleDictionary[K, V]) Clone() *MultipleDictionary[K, V] {
	clone := &MultipleDictionary[K, V]{
		allowDuplicateValues: d.allowDuplicateValues,
		keyComparer:          d.keyComparer,
		valueComparer:        d.valueComparer,
		recordComparer:       d.recordComparer,
		initialKeyCapacity:   d.initialKeyCapacity,
		initialValueCapacity: d.initialValueCapacity,
	}
	clone.hash = newHash[*keyAndValues[K, V]](clone.recordComparer, max(d.hash.Len(), d.initialKeyCapacity), &clone.stats.table)

	for _, record := range d.hash.Items() {
		if _, inserted := clone.hash.Insert(record.clone(), false); !inserted {
			bugs.MustPanic("duplicate key found while cloning dictionary")
		}
	}
	clone.stats.values.Store(d.stats.values.Load())
	return clone
}

// AsReadOnly returns a read-only *copy* of the dictionary.
func (d *MultipleDictionary[K, V]) AsReadOnly() ReadOnlyMultimap[K, V] {
	return readOnlyMultimap[K, V]{d.Clone()}
}

// GetMetrics returns the live statistics of the dictionary.
func (d *MultipleDictionary[K, V]) GetMetrics() Metrics { return &d.stats }

// Close unregisters the dictionary from metrics collection, if it was
// registered. The dictionary remains usable.
func (d *MultipleDictionary[K, V]) Close() {
	if d.metricsName == "" {
		return
	}

	unregisterDictionary(d.metricsName)
	d.metricsName = ""
}

func (d *MultipleDictionary[K, V]) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("metricsName", d.metricsName).
		Bool("allowDuplicateValues", d.allowDuplicateValues).
		Str("keys", humanize.Comma(int64(d.Len()))).
		Str("values", humanize.Comma(d.stats.values.Load())).
		Int("slots", d.hash.Capacity())
}
