package mapz

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrNilComparer is returned when a required Comparer is nil.
	ErrNilComparer = errors.New("comparer must not be nil")

	// ErrCollectionModified is yielded by an enumeration whose collection was
	// modified after the enumeration was created.
	ErrCollectionModified = errors.New("collection was modified during enumeration")

	// ErrCapacityTooLarge is returned when a capacity hint exceeds the
	// largest preallocation supported.
	ErrCapacityTooLarge = errors.New("capacity too large")

	// ErrDuplicateMetricsName is returned when a dictionary is registered for
	// metrics under a name already in use.
	ErrDuplicateMetricsName = errors.New("metrics name already registered")
)

// InvalidArgumentError is returned when a constructor is given an unusable
// argument.
type InvalidArgumentError struct {
	error

	// Argument is the name of the offending argument.
	Argument string
}

func (err InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", err.Argument, err.error.Error())
}

// Unwrap returns the inner, wrapped error.
func (err InvalidArgumentError) Unwrap() error {
	return err.error
}

// MarshalZerologObject implements zerolog object marshalling.
func (err InvalidArgumentError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("argument", err.Argument)
}

// NewNilComparerErr constructs a new error for a nil comparer argument.
func NewNilComparerErr(argument string) error {
	return InvalidArgumentError{ErrNilComparer, argument}
}

// NewCapacityTooLargeErr constructs a new error for a capacity hint above
// maximum.
func NewCapacityTooLargeErr(argument string, requested, maximum uint64) error {
	return InvalidArgumentError{
		fmt.Errorf("%w: %d exceeds %d", ErrCapacityTooLarge, requested, maximum),
		argument,
	}
}

// CollectionModifiedError is yielded when an enumeration is stepped after its
// collection changed.
type CollectionModifiedError struct {
	error

	// ExpectedStamp is the enumeration stamp captured when the enumeration
	// was created.
	ExpectedStamp uint64

	// ActualStamp is the stamp of the collection when the change was
	// detected.
	ActualStamp uint64
}

// Unwrap returns the inner, wrapped error.
func (err CollectionModifiedError) Unwrap() error {
	return err.error
}

// MarshalZerologObject implements zerolog object marshalling.
func (err CollectionModifiedError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Uint64("expectedStamp", err.ExpectedStamp).Uint64("actualStamp", err.ActualStamp)
}

// NewCollectionModifiedErr constructs a new stale enumeration error.
func NewCollectionModifiedErr(expected, actual uint64) error {
	return CollectionModifiedError{
		error:         fmt.Errorf("%w (stamp %d, now %d)", ErrCollectionModified, expected, actual),
		ExpectedStamp: expected,
		ActualStamp:   actual,
	}
}
