// Package vlist binds item collections to a scroll.Windower so hosts can render
// only the materialized slice of a large list.
package vlist

import "github.com/odvcencio/furry-vlist/state"

// Adapter provides data for a virtual list.
type Adapter[T any] interface {
	Count() int
	Item(index int) T
}

// SliceAdapter adapts a slice to an Adapter.
type SliceAdapter[T any] struct {
	items []T
}

// NewSliceAdapter creates a slice adapter.
func NewSliceAdapter[T any](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SliceAdapter[T]) Count() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Item returns the item at index.
func (s *SliceAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || index < 0 || index >= len(s.items) {
		return zero
	}
	return s.items[index]
}

// SetItems replaces the backing slice. Call List.Sync afterwards.
func (s *SliceAdapter[T]) SetItems(items []T) {
	if s == nil {
		return
	}
	s.items = items
}

// Append adds items to the end. Call List.Sync afterwards.
func (s *SliceAdapter[T]) Append(items ...T) {
	if s == nil {
		return
	}
	s.items = append(s.items, items...)
}

// SignalAdapter adapts a reactive slice to an Adapter.
type SignalAdapter[T any] struct {
	items state.Readable[[]T]
}

// NewSignalAdapter creates a signal adapter.
func NewSignalAdapter[T any](items state.Readable[[]T]) *SignalAdapter[T] {
	return &SignalAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SignalAdapter[T]) Count() int {
	if s == nil || s.items == nil {
		return 0
	}
	return len(s.items.Get())
}

// Item returns an item.
func (s *SignalAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || s.items == nil {
		return zero
	}
	items := s.items.Get()
	if index < 0 || index >= len(items) {
		return zero
	}
	return items[index]
}

// Subscribe forwards change notifications from the underlying signal.
func (s *SignalAdapter[T]) Subscribe(scheduler state.Scheduler, fn func()) func() {
	if s == nil || s.items == nil {
		return func() {}
	}
	return s.items.SubscribeWithScheduler(scheduler, fn)
}
