package elist

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"unsafe"
)

const (
	// DefaultCapacity is used when a list is created with a capacity of 0.
	DefaultCapacity = 10

	// growthFactor is the multiplier applied to the capacity of a full list.
	growthFactor = 2
)

var (
	// ErrAllocation is returned when storage for the requested capacity cannot be obtained.
	ErrAllocation = errors.New("allocation failure")
	// ErrIndexOutOfRange is returned for indices outside [0, Size()).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrCapacityTooSmall is returned when a capacity below the current size is requested.
	ErrCapacityTooSmall = errors.New("capacity too small")
	// ErrNotFound is returned by searches without a match.
	ErrNotFound = errors.New("not found")
	// ErrZeroItemSize is returned when the element type occupies no memory.
	ErrZeroItemSize = errors.New("item size must be greater than zero")
)

// maxBytes caps the size of a single backing allocation.
//
//nolint:gochecknoglobals // Lowered in tests to simulate allocation failure
var maxBytes uint64 = min(1<<47, math.MaxInt)

// List is a resizable array of fixed-size elements.
//
// The backing slice always has length equal to the capacity; only the first
// Size() slots hold valid elements. A List is not safe for concurrent use.
type List[T any] struct {
	items  []T
	length int
}

// New creates a list able to hold capacity elements before growing.
// A capacity of 0 selects DefaultCapacity.
func New[T any](capacity int) (*List[T], error) {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return nil, ErrZeroItemSize
	}

	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrCapacityTooSmall, capacity)
	}

	if capacity == 0 {
		capacity = DefaultCapacity
	}

	items, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}

	return &List[T]{items: items}, nil
}

// allocate returns zeroed storage for n elements, or ErrAllocation if the
// request exceeds maxBytes.
func allocate[T any](n int) ([]T, error) {
	var zero T

	size := uint64(unsafe.Sizeof(zero))
	if uint64(n) > maxBytes/size { //nolint:gosec // n is never negative here
		return nil, fmt.Errorf("%w: %d items of %d bytes", ErrAllocation, n, size)
	}

	return make([]T, n), nil
}

// Release drops the backing storage. The list is left empty with a capacity of 0.
func (l *List[T]) Release() {
	l.items = nil
	l.length = 0
}

// ItemSize returns the size in bytes of one element.
func (l *List[T]) ItemSize() uintptr {
	var zero T

	return unsafe.Sizeof(zero)
}

// Capacity returns the number of allocated slots.
func (l *List[T]) Capacity() int {
	return len(l.items)
}

// Size returns the number of valid elements.
func (l *List[T]) Size() int {
	return l.length
}

// SetCapacity reallocates the storage to exactly capacity slots, keeping all
// valid elements. It fails with ErrCapacityTooSmall if capacity < Size().
// Pointers obtained from Ref or AppendNew are invalidated.
func (l *List[T]) SetCapacity(capacity int) error {
	if capacity < l.length {
		return fmt.Errorf("%w: capacity %d, size %d", ErrCapacityTooSmall, capacity, l.length)
	}

	items, err := allocate[T](capacity)
	if err != nil {
		return err
	}

	copy(items, l.items[:l.length])
	l.items = items

	return nil
}

// grow doubles the capacity of a full list.
func (l *List[T]) grow() error {
	if l.length < len(l.items) {
		return nil
	}

	if len(l.items) == 0 {
		return l.SetCapacity(1)
	}

	if len(l.items) > math.MaxInt/growthFactor {
		return fmt.Errorf("%w: capacity %d cannot grow", ErrAllocation, len(l.items))
	}

	return l.SetCapacity(len(l.items) * growthFactor)
}

// Append adds item after the last valid element, growing the list if it is full.
func (l *List[T]) Append(item T) error {
	if err := l.grow(); err != nil {
		return err
	}

	l.items[l.length] = item
	l.length++

	return nil
}

// AppendNew adds a zeroed element and returns a pointer to it for in-place
// initialization. The pointer is valid until the next capacity change.
func (l *List[T]) AppendNew() (*T, error) {
	if err := l.grow(); err != nil {
		return nil, err
	}

	var zero T

	slot := &l.items[l.length]
	*slot = zero
	l.length++

	return slot, nil
}

// check validates idx against the current size.
func (l *List[T]) check(idx int) error {
	if idx < 0 || idx >= l.length {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, idx, l.length)
	}

	return nil
}

// Set overwrites the element at idx.
func (l *List[T]) Set(idx int, item T) error {
	if err := l.check(idx); err != nil {
		return err
	}

	l.items[idx] = item

	return nil
}

// Get returns a copy of the element at idx.
func (l *List[T]) Get(idx int) (T, error) {
	if err := l.check(idx); err != nil {
		var zero T

		return zero, err
	}

	return l.items[idx], nil
}

// Ref returns a pointer to the element at idx, valid until the next mutation.
func (l *List[T]) Ref(idx int) (*T, error) {
	if err := l.check(idx); err != nil {
		return nil, err
	}

	return &l.items[idx], nil
}

// Remove deletes the element at idx, shifting later elements down by one.
func (l *List[T]) Remove(idx int) error {
	if err := l.check(idx); err != nil {
		return err
	}

	copy(l.items[idx:l.length], l.items[idx+1:l.length])
	l.length--

	// Zero the vacated slot so removed values are not kept reachable.
	var zero T

	l.items[l.length] = zero

	return nil
}

// IndexFunc returns the lowest index whose element satisfies match,
// or ErrNotFound.
func (l *List[T]) IndexFunc(match func(T) bool) (int, error) {
	for i := range l.length {
		if match(l.items[i]) {
			return i, nil
		}
	}

	return -1, ErrNotFound
}

// IndexOf returns the lowest index whose element equals item, or ErrNotFound.
func IndexOf[T comparable](l *List[T], item T) (int, error) {
	return l.IndexFunc(func(v T) bool { return v == item })
}

// Clear empties the list without touching the storage.
func (l *List[T]) Clear() {
	l.length = 0
}

// Wipe empties the list and zeroes every allocated slot.
func (l *List[T]) Wipe() {
	clear(l.items)
	l.length = 0
}

// Sort orders the valid elements in place according to cmp, which must
// return a negative number when a < b, zero when a == b and a positive
// number when a > b. The sort is not stable.
func (l *List[T]) Sort(cmp func(a, b T) int) {
	slices.SortFunc(l.items[:l.length], cmp)
}

// All iterates over the valid elements in index order.
// The list must not be resized during iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range l.length {
			if !yield(i, l.items[i]) {
				return
			}
		}
	}
}
