package vlist

import (
	"fmt"

	"github.com/odvcencio/furry-vlist/scroll"
	"github.com/odvcencio/furry-vlist/state"
)

// HeightOf returns the height of item at index.
type HeightOf[T any] func(item T, index int) float64

// Config configures a List.
type Config[T any] struct {
	// ItemHeight is the fixed height used when HeightOf is nil. Defaults to 1.
	ItemHeight float64
	HeightOf   HeightOf[T]
	// Scheduler dispatches change notifications from signal-backed adapters.
	// Nil runs them on the setter's goroutine.
	Scheduler state.Scheduler
	Windower  []scroll.Option
}

// Row is one materialized item with its placement.
type Row[T any] struct {
	scroll.Slot
	Item T
}

type changeSource interface {
	Subscribe(scheduler state.Scheduler, fn func()) func()
}

// List keeps a windower in sync with an adapter.
type List[T any] struct {
	adapter    Adapter[T]
	windower   *scroll.Windower
	itemHeight float64
	heightOf   HeightOf[T]
	unsub      func()
	err        error
}

// New creates a list over adapter. Signal-backed adapters are re-synced on change.
func New[T any](adapter Adapter[T], cfg Config[T]) (*List[T], error) {
	if adapter == nil {
		adapter = NewSliceAdapter[T](nil)
	}
	l := &List[T]{
		adapter:    adapter,
		itemHeight: cfg.ItemHeight,
		heightOf:   cfg.HeightOf,
	}
	if l.itemHeight == 0 {
		l.itemHeight = 1
	}
	opts := append([]scroll.Option{
		scroll.WithCount(adapter.Count()),
		scroll.WithHeightSpec(l.spec()),
	}, cfg.Windower...)
	w, err := scroll.NewWindower(opts...)
	if err != nil {
		return nil, fmt.Errorf("new list: %w", err)
	}
	l.windower = w
	if src, ok := adapter.(changeSource); ok {
		l.unsub = src.Subscribe(cfg.Scheduler, func() {
			l.err = l.Sync()
		})
	}
	return l, nil
}

// Windower returns the underlying windower for scrolling and resizing.
func (l *List[T]) Windower() *scroll.Windower {
	if l == nil {
		return nil
	}
	return l.windower
}

// Adapter returns the item adapter.
func (l *List[T]) Adapter() Adapter[T] {
	if l == nil {
		return nil
	}
	return l.adapter
}

// Sync rebuilds the offset model from the adapter's current items.
// Call it after any structural change to non-reactive adapters.
func (l *List[T]) Sync() error {
	if l == nil || l.windower == nil {
		return nil
	}
	return l.windower.SetItems(l.adapter.Count(), l.spec())
}

// SetHeightOf replaces the per-item height function and rebuilds.
// A nil fn switches back to the fixed item height.
func (l *List[T]) SetHeightOf(fn HeightOf[T]) error {
	if l == nil {
		return nil
	}
	l.heightOf = fn
	return l.Sync()
}

// Err returns the error from the last signal-driven sync.
func (l *List[T]) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Empty reports whether there are no items.
func (l *List[T]) Empty() bool {
	return l == nil || l.windower.Empty()
}

// Rows appends the materialized items to dst.
func (l *List[T]) Rows(dst []Row[T]) []Row[T] {
	if l == nil || l.windower == nil {
		return dst
	}
	var buf [64]scroll.Slot
	for _, slot := range l.windower.Slots(buf[:0]) {
		dst = append(dst, Row[T]{Slot: slot, Item: l.adapter.Item(slot.Index)})
	}
	return dst
}

// Close stops listening to the adapter.
func (l *List[T]) Close() {
	if l == nil || l.unsub == nil {
		return
	}
	l.unsub()
	l.unsub = nil
}

func (l *List[T]) spec() scroll.HeightSpec {
	if l.heightOf == nil {
		return scroll.Fixed(l.itemHeight)
	}
	adapter, heightOf := l.adapter, l.heightOf
	return scroll.Variable(func(index int) float64 {
		return heightOf(adapter.Item(index), index)
	})
}
