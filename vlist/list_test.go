package vlist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/odvcencio/furry-vlist/scroll"
	"github.com/odvcencio/furry-vlist/state"
)

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

func TestSliceAdapter(t *testing.T) {
	adapter := NewSliceAdapter([]int{4, 5})
	if adapter.Count() != 2 || adapter.Item(1) != 5 {
		t.Fatalf("unexpected adapter contents")
	}
	if adapter.Item(-1) != 0 || adapter.Item(2) != 0 {
		t.Fatalf("out of range items should be zero")
	}
	adapter.Append(6)
	if adapter.Count() != 3 {
		t.Fatalf("count after append = %d, want 3", adapter.Count())
	}
}

func TestListRows(t *testing.T) {
	list, err := New[string](NewSliceAdapter(numbered(1000)), Config[string]{
		ItemHeight: 50,
		Windower:   []scroll.Option{scroll.WithContainerHeight(400), scroll.WithBuffer(2)},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	rows := list.Rows(nil)
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	if rows[3].Item != "item 3" || rows[3].Offset != 150 || rows[3].Height != 50 {
		t.Fatalf("row 3 = %+v", rows[3])
	}

	list.Windower().ScrollToIndex(500, scroll.AlignStart)
	rows = list.Rows(rows[:0])
	if rows[0].Index != 498 || rows[0].Item != "item 498" {
		t.Fatalf("first row after scroll = %+v", rows[0])
	}
}

func TestListHeightOf(t *testing.T) {
	list, err := New[string](NewSliceAdapter(numbered(50)), Config[string]{
		HeightOf: func(_ string, index int) float64 {
			if index%2 == 0 {
				return 100
			}
			return 50
		},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if got := list.Windower().TotalHeight(); got != 3750 {
		t.Fatalf("total = %v, want 3750", got)
	}
	if got := list.Windower().ItemOffset(2); got != 150 {
		t.Fatalf("ItemOffset(2) = %v, want 150", got)
	}

	if err := list.SetHeightOf(nil); err != nil {
		t.Fatalf("SetHeightOf error: %v", err)
	}
	if got := list.Windower().TotalHeight(); got != 50 {
		t.Fatalf("total with fixed height = %v, want 50", got)
	}
}

func TestListSyncAfterAppend(t *testing.T) {
	adapter := NewSliceAdapter[string](nil)
	list, err := New[string](adapter, Config[string]{
		Windower: []scroll.Option{scroll.WithContainerHeight(5), scroll.WithFollow(true)},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !list.Empty() {
		t.Fatalf("expected empty list")
	}
	adapter.Append(numbered(20)...)
	if err := list.Sync(); err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if list.Empty() {
		t.Fatalf("expected items after sync")
	}
	if got := list.Windower().Viewport().ScrollOffset; got != 15 {
		t.Fatalf("follow offset = %v, want 15", got)
	}
}

func TestListSignalAdapter(t *testing.T) {
	items := state.NewSignal(numbered(3))
	queue := state.NewQueue()
	list, err := New[string](NewSignalAdapter[string](items), Config[string]{
		Scheduler: queue,
		Windower:  []scroll.Option{scroll.WithContainerHeight(10)},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer list.Close()

	items.Set(numbered(30))
	if got := list.Windower().Count(); got != 3 {
		t.Fatalf("count before flush = %d, want 3", got)
	}
	queue.Flush()
	if got := list.Windower().Count(); got != 30 {
		t.Fatalf("count after flush = %d, want 30", got)
	}

	list.Close()
	items.Set(nil)
	queue.Flush()
	if got := list.Windower().Count(); got != 30 {
		t.Fatalf("count after close = %d, want 30", got)
	}
}

func TestListSignalSyncError(t *testing.T) {
	items := state.NewSignal([]string{"a"})
	list, err := New[string](NewSignalAdapter[string](items), Config[string]{
		HeightOf: func(item string, _ int) float64 { return float64(len(item)) },
		Windower: []scroll.Option{scroll.WithHeightPolicy(scroll.StrictHeights)},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	items.Set([]string{"a", ""})
	if !errors.Is(list.Err(), scroll.ErrInvalidHeight) {
		t.Fatalf("Err() = %v, want ErrInvalidHeight", list.Err())
	}
	if got := list.Windower().Count(); got != 1 {
		t.Fatalf("count after rejected sync = %d, want 1", got)
	}
}
