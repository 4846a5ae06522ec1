package mapz

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// Comparer defines an equivalence relation and a compatible hash function
// over values of type T.
//
// Implementations must guarantee that Equal(a, b) implies Hash(a) == Hash(b).
type Comparer[T any] interface {
	// Equal returns true if the two values are equivalent.
	Equal(a, b T) bool

	// Hash returns the hash of the value.
	Hash(value T) uint64
}

// DefaultComparer returns a Comparer using the natural equality of T. Values
// are hashed with a seed chosen when the comparer is created, so hashes are
// not stable across comparers or processes.
func DefaultComparer[T comparable]() Comparer[T] {
	return comparableComparer[T]{seed: maphash.MakeSeed()}
}

type comparableComparer[T comparable] struct {
	seed maphash.Seed
}

func (c comparableComparer[T]) Equal(a, b T) bool { return a == b }

func (c comparableComparer[T]) Hash(value T) uint64 { return maphash.Comparable(c.seed, value) }

// StringComparer returns a Comparer for strings with a stable xxhash-based
// hash.
func StringComparer() Comparer[string] {
	return stringComparer{}
}

type stringComparer struct{}

func (stringComparer) Equal(a, b string) bool { return a == b }

func (stringComparer) Hash(value string) uint64 { return xxhash.Sum64String(value) }

// CaseInsensitiveStringComparer returns a Comparer that treats strings equal
// under Unicode case folding as the same value.
func CaseInsensitiveStringComparer() Comparer[string] {
	return foldingStringComparer{}
}

type foldingStringComparer struct{}

// cases.Caser is stateful, so a fresh one is used for every fold.
func fold(value string) string {
	return cases.Fold().String(value)
}

func (foldingStringComparer) Equal(a, b string) bool {
	if a == b {
		return true
	}
	return fold(a) == fold(b)
}

func (foldingStringComparer) Hash(value string) uint64 { return xxhash.Sum64String(fold(value)) }

// ComparerFuncs adapts a pair of functions into a Comparer.
type ComparerFuncs[T any] struct {
	EqualFunc func(a, b T) bool
	HashFunc  func(value T) uint64
}

func (cf ComparerFuncs[T]) Equal(a, b T) bool { return cf.EqualFunc(a, b) }

func (cf ComparerFuncs[T]) Hash(value T) uint64 { return cf.HashFunc(value) }

var (
	_ Comparer[int]    = comparableComparer[int]{}
	_ Comparer[string] = stringComparer{}
	_ Comparer[string] = foldingStringComparer{}
	_ Comparer[int]    = ComparerFuncs[int]{}
)
