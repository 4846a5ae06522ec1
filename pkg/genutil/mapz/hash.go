package mapz

import (
	"iter"

	"github.com/rs/zerolog"

	log "github.com/authzed/multidict/internal/logging"
	"github.com/authzed/multidict/pkg/bugs"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotDeleted
)

const (
	// minHashSlots is the smallest slot array ever allocated. Must be a power
	// of two.
	minHashSlots = 8

	// maxHashCapacity bounds the capacity hint given to NewHash. The table
	// itself may still grow past it.
	maxHashCapacity = 1 << 24

	// The table is rebuilt once occupied plus deleted slots would exceed
	// maxLoadNum/maxLoadDen of the slot array.
	maxLoadNum = 3
	maxLoadDen = 4
)

type slot[T any] struct {
	hash  uint64
	state slotState
	item  T
}

// Hash is an open-addressing hash set of elements of type T, with element
// equality and hashing defined by a Comparer.
//
// Every mutation advances the table's enumeration stamp. Enumerations capture
// the stamp when created and fail with ErrCollectionModified on the first
// step taken after the table changed.
//
// A Hash is not safe for concurrent use.
type Hash[T any] struct {
	comparer Comparer[T]
	slots    []slot[T]
	count    int
	deleted  int
	stamp    uint64
	stats    *tableStats
}

// NewHash creates a new, empty Hash able to hold capacity elements before
// its first resize.
func NewHash[T any](comparer Comparer[T], capacity int) (*Hash[T], error) {
	if comparer == nil {
		return nil, NewNilComparerErr("comparer")
	}
	if capacity > maxHashCapacity {
		return nil, NewCapacityTooLargeErr("capacity", uint64(capacity), maxHashCapacity)
	}
	return newHash(comparer, capacity, &tableStats{}), nil
}

func newHash[T any](comparer Comparer[T], capacity int, stats *tableStats) *Hash[T] {
	h := &Hash[T]{
		comparer: comparer,
		slots:    make([]slot[T], slotsForCapacity(capacity)),
		stats:    stats,
	}
	stats.elements.Store(0)
	stats.capacity.Store(int64(len(h.slots)))
	return h
}

// slotsForCapacity returns the smallest power-of-two slot count that holds
// capacity elements without exceeding the maximum load.
func slotsForCapacity(capacity int) int {
	capacity = min(capacity, maxHashCapacity)
	slots := minHashSlots
	for slots*maxLoadNum/maxLoadDen < capacity {
		slots <<= 1
	}
	return slots
}

// Len returns the number of elements in the table.
func (h *Hash[T]) Len() int { return h.count }

// Capacity returns the number of slots currently allocated.
func (h *Hash[T]) Capacity() int { return len(h.slots) }

// Find returns the stored element equal to probe, if any.
func (h *Hash[T]) Find(probe T) (T, bool) {
	index := h.lookup(probe, h.comparer.Hash(probe))
	if index < 0 {
		return *new(T), false
	}
	return h.slots[index].item, true
}

// FindForUpdate replaces the stored element equal to item with item and
// returns the element it replaced. Returns false, and changes nothing, if no
// equal element is stored.
//
// Since item is equal to the element it replaces, it hashes to the same slot
// and the table layout is unaffected. The enumeration stamp still advances.
func (h *Hash[T]) FindForUpdate(item T) (T, bool) {
	index := h.lookup(item, h.comparer.Hash(item))
	if index < 0 {
		return *new(T), false
	}

	previous := h.slots[index].item
	h.slots[index].item = item
	h.stamp++
	return previous, true
}

// Insert adds item to the table if no equal element is stored, returning
// true.
//
// If an equal element is already stored it is returned along with false. In
// that case the stored element is overwritten with item only if replace is
// set.
func (h *Hash[T]) Insert(item T, replace bool) (T, bool) {
	hash := h.comparer.Hash(item)
	if index := h.lookup(item, hash); index >= 0 {
		previous := h.slots[index].item
		if replace {
			h.slots[index].item = item
			h.stamp++
		}
		return previous, false
	}

	if (h.count+h.deleted+1)*maxLoadDen > len(h.slots)*maxLoadNum {
		h.rebuild()
	}

	h.place(item, hash)
	h.count++
	h.stamp++
	h.stats.elements.Store(int64(h.count))
	return *new(T), true
}

// Delete removes the stored element equal to probe, returning it.
func (h *Hash[T]) Delete(probe T) (T, bool) {
	index := h.lookup(probe, h.comparer.Hash(probe))
	if index < 0 {
		return *new(T), false
	}

	removed := h.slots[index].item
	h.count--
	h.stamp++
	h.stats.elements.Store(int64(h.count))

	if h.count == 0 {
		clear(h.slots)
		h.deleted = 0
		return removed, true
	}

	// A slot followed by an empty slot ends every probe sequence passing
	// through it, so it can be emptied rather than marked deleted.
	next := (index + 1) & (len(h.slots) - 1)
	if h.slots[next].state == slotEmpty {
		h.slots[index] = slot[T]{}
	} else {
		h.slots[index] = slot[T]{state: slotDeleted}
		h.deleted++
	}
	return removed, true
}

// Items returns a snapshot of every element in the table, in slot order.
func (h *Hash[T]) Items() []T {
	items := make([]T, 0, h.count)
	for i := range h.slots {
		if h.slots[i].state == slotOccupied {
			items = append(items, h.slots[i].item)
		}
	}
	return items
}

// All returns a single-pass enumeration of the elements of the table, in slot
// order. If the table is modified after All is called, the next step yields a
// CollectionModifiedError and the enumeration ends.
func (h *Hash[T]) All() iter.Seq2[T, error] {
	stamp := h.stamp
	slots := h.slots
	return func(yield func(T, error) bool) {
		for i := range slots {
			if slots[i].state != slotOccupied {
				continue
			}

			if err := h.CheckEnumerationStamp(stamp); err != nil {
				yield(*new(T), err)
				return
			}

			if !yield(slots[i].item, nil) {
				return
			}
		}

		if err := h.CheckEnumerationStamp(stamp); err != nil {
			yield(*new(T), err)
		}
	}
}

// EnumerationStamp returns the current enumeration stamp of the table.
func (h *Hash[T]) EnumerationStamp() uint64 { return h.stamp }

// CheckEnumerationStamp returns a CollectionModifiedError if the table has
// been modified since the given stamp was read.
func (h *Hash[T]) CheckEnumerationStamp(stamp uint64) error {
	if stamp == h.stamp {
		return nil
	}

	h.stats.staleEnumerations.Add(1)
	log.Component(zerolog.DebugLevel, "hash").
		Uint64("expectedStamp", stamp).
		Uint64("actualStamp", h.stamp).
		Msg("stale enumeration detected")
	return NewCollectionModifiedErr(stamp, h.stamp)
}

// StopEnumerations invalidates every outstanding enumeration of the table.
func (h *Hash[T]) StopEnumerations() {
	h.stamp++
}

// lookup returns the index of the slot holding an element equal to item, or
// -1 if there is none.
func (h *Hash[T]) lookup(item T, hash uint64) int {
	mask := uint64(len(h.slots) - 1)
	for index, probes := hash&mask, 0; probes < len(h.slots); index, probes = (index+1)&mask, probes+1 {
		s := &h.slots[index]
		switch s.state {
		case slotEmpty:
			return -1

		case slotOccupied:
			if s.hash == hash && h.comparer.Equal(s.item, item) {
				return int(index)
			}
		}
	}
	return -1
}

// place stores item in the first free slot of its probe sequence. The caller
// guarantees that no equal element is stored and that a free slot exists.
func (h *Hash[T]) place(item T, hash uint64) {
	mask := uint64(len(h.slots) - 1)
	index := hash & mask
	for h.slots[index].state == slotOccupied {
		index = (index + 1) & mask
	}

	if h.slots[index].state == slotDeleted {
		h.deleted--
	}
	h.slots[index] = slot[T]{hash: hash, state: slotOccupied, item: item}
}

// rebuild rehashes every element into a fresh slot array, dropping deleted
// markers. The array doubles unless deleted markers account for most of the
// load, in which case it keeps its size.
func (h *Hash[T]) rebuild() {
	previous := h.slots
	size := len(previous)
	if (h.count+1)*maxLoadDen*2 > size*maxLoadNum {
		size *= 2
	}

	h.slots = make([]slot[T], size)
	h.deleted = 0
	for i := range previous {
		if previous[i].state == slotOccupied {
			h.place(previous[i].item, previous[i].hash)
		}
	}

	bugs.DebugAssertf(func() bool { return len(h.Items()) == h.count }, "rebuild lost elements: expected %d", h.count)

	h.stats.capacity.Store(int64(size))
	h.stats.resizes.Add(1)
	log.Component(zerolog.TraceLevel, "hash").
		Int("previousSlots", len(previous)).
		Int("slots", size).
		Int("elements", h.count).
		Msg("rebuilt hash table")
}
