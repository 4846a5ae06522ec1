package mapz

import "sync"

// SyncMultipleDictionary guards a MultipleDictionary with a read-write lock,
// making it safe for concurrent use.
//
// Lazy enumerations are not exposed; use Get, Keys or Snapshot instead.
type SyncMultipleDictionary[K, V any] struct {
	dict *MultipleDictionary[K, V]
	lock sync.RWMutex
}

// NewSyncMultipleDictionary wraps the given dictionary. The caller must not
// use the dictionary directly afterwards.
func NewSyncMultipleDictionary[K, V any](dict *MultipleDictionary[K, V]) *SyncMultipleDictionary[K, V] {
	return &SyncMultipleDictionary[K, V]{dict: dict}
}

// Add associates value with key. Returns true if an equal value was already
// associated with key.
func (smd *SyncMultipleDictionary[K, V]) Add(key K, value V) bool {
	smd.lock.Lock()
	defer smd.lock.Unlock()

	existed := smd.dict.Contains(key, value)
	smd.dict.Add(key, value)
	return existed
}

// AddMany associates each of the values with key.
func (smd *SyncMultipleDictionary[K, V]) AddMany(key K, values ...V) {
	smd.lock.Lock()
	defer smd.lock.Unlock()

	smd.dict.AddMany(key, values...)
}

// Remove removes the given value for the given key from the map. If, after
// this removal, the key has no additional values, it is removed entirely.
func (smd *SyncMultipleDictionary[K, V]) Remove(key K, value V) bool {
	smd.lock.Lock()
	defer smd.lock.Unlock()

	return smd.dict.Remove(key, value)
}

// RemoveKey removes key and all of its values.
func (smd *SyncMultipleDictionary[K, V]) RemoveKey(key K) bool {
	smd.lock.Lock()
	defer smd.lock.Unlock()

	return smd.dict.RemoveKey(key)
}

// Clear removes all keys and values.
func (smd *SyncMultipleDictionary[K, V]) Clear() {
	smd.lock.Lock()
	defer smd.lock.Unlock()

	smd.dict.Clear()
}

func (smd *SyncMultipleDictionary[K, V]) Contains(key K, value V) bool {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.Contains(key, value)
}

func (smd *SyncMultipleDictionary[K, V]) ContainsKey(key K) bool {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.ContainsKey(key)
}

// Len returns the number of keys.
func (smd *SyncMultipleDictionary[K, V]) Len() int {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.Len()
}

// TotalCount returns the number of key-value pairs.
func (smd *SyncMultipleDictionary[K, V]) TotalCount() int {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.TotalCount()
}

func (smd *SyncMultipleDictionary[K, V]) CountValues(key K) int {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.CountValues(key)
}

// Get returns a copy of the values associated with key.
func (smd *SyncMultipleDictionary[K, V]) Get(key K) ([]V, bool) {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.Get(key)
}

func (smd *SyncMultipleDictionary[K, V]) Keys() []K {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.Keys()
}

// Snapshot returns a read-only copy of the current contents.
func (smd *SyncMultipleDictionary[K, V]) Snapshot() ReadOnlyMultimap[K, V] {
	smd.lock.RLock()
	defer smd.lock.RUnlock()

	return smd.dict.AsReadOnly()
}
