package runtime

import (
	"time"

	"github.com/odvcencio/furry-vlist/scroll"
)

// Message is a signal for the windower owned by a Loop.
// Messages come from input handlers, timers, or background goroutines.
type Message interface {
	isMessage()
}

// ScrollToMsg sets the absolute scroll offset.
type ScrollToMsg struct {
	Offset float64
}

func (ScrollToMsg) isMessage() {}

// ScrollByMsg moves the scroll offset by Delta pixels.
type ScrollByMsg struct {
	Delta float64
}

func (ScrollByMsg) isMessage() {}

// PageMsg moves the scroll offset by whole container heights.
type PageMsg struct {
	Pages int
}

func (PageMsg) isMessage() {}

// ResizeMsg reports a new container height.
type ResizeMsg struct {
	Height float64
}

func (ResizeMsg) isMessage() {}

// CountMsg reports a new item count.
type CountMsg struct {
	Count int
}

func (CountMsg) isMessage() {}

// HeightSpecMsg replaces the height spec.
type HeightSpecMsg struct {
	Spec scroll.HeightSpec
}

func (HeightSpecMsg) isMessage() {}

// TopMsg scrolls to the first item.
type TopMsg struct{}

func (TopMsg) isMessage() {}

// BottomMsg scrolls to the last item.
type BottomMsg struct{}

func (BottomMsg) isMessage() {}

// IndexMsg scrolls item Index into view.
type IndexMsg struct {
	Index int
	Align scroll.Align
}

func (IndexMsg) isMessage() {}

// FollowMsg toggles bottom pinning.
type FollowMsg struct {
	Follow bool
}

func (FollowMsg) isMessage() {}

// FuncMsg runs Fn on the loop goroutine with exclusive access to the windower.
// The loop always repaints after a FuncMsg.
type FuncMsg struct {
	Fn func(w *scroll.Windower) error
}

func (FuncMsg) isMessage() {}

// TickMsg is posted by Every effects.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg runs callbacks queued through Loop.Scheduler.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a repaint without changing the viewport.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// QuitMsg stops the loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}
