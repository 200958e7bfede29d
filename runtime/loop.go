// Package runtime serializes viewport signals onto a single goroutine that
// owns a scroll.Windower and drives rendering.
package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/odvcencio/furry-vlist/scroll"
	"github.com/odvcencio/furry-vlist/state"
)

// ErrNoWindower is returned by Run when the loop was built without a windower.
var ErrNoWindower = errors.New("runtime: loop has no windower")

// UpdateFunc applies a message to the loop's windower.
// It returns true when the frame needs repainting.
type UpdateFunc func(loop *Loop, msg Message) bool

// RenderFunc paints one frame. It runs on the loop goroutine.
type RenderFunc func(frame Frame)

// Frame is the state handed to a RenderFunc.
type Frame struct {
	// Seq counts rendered frames starting at 1.
	Seq      uint64
	Snapshot scroll.Snapshot
	Windower *scroll.Windower
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	Windower *scroll.Windower
	Update   UpdateFunc
	Render   RenderFunc
	// OnError receives errors from windower rebuilds and FuncMsg callbacks.
	OnError       func(error)
	MessageBuffer int
	Logger        *slog.Logger
}

// Loop applies messages to its windower strictly in arrival order.
type Loop struct {
	windower  *scroll.Windower
	update    UpdateFunc
	render    RenderFunc
	onError   func(error)
	logger    *slog.Logger
	messages  chan Message
	done      chan struct{}
	doneOnce  sync.Once
	invalid   *wakeup
	scheduler *QueueScheduler
	seq       uint64

	mu      sync.Mutex
	taskCtx context.Context
	pending []Effect
}

// NewLoop creates a loop. Messages can be posted before Run starts, up to MessageBuffer.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.MessageBuffer <= 0 {
		cfg.MessageBuffer = 128
	}
	if cfg.Update == nil {
		cfg.Update = DefaultUpdate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Loop{
		windower: cfg.Windower,
		update:   cfg.Update,
		render:   cfg.Render,
		onError:  cfg.OnError,
		logger:   cfg.Logger,
		messages: make(chan Message, cfg.MessageBuffer),
		done:     make(chan struct{}),
	}
	l.invalid = newWakeup(l.TryPost, InvalidateMsg{})
	l.scheduler = NewQueueScheduler(state.NewQueue(), l.TryPost)
	return l
}

// Windower returns the owned windower. Touch it only on the loop goroutine.
func (l *Loop) Windower() *scroll.Windower {
	if l == nil {
		return nil
	}
	return l.windower
}

// Post queues a message, blocking while the buffer is full.
// It returns false once the loop has stopped.
func (l *Loop) Post(msg Message) bool {
	if l == nil || msg == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.messages <- msg:
		return true
	case <-l.done:
		return false
	}
}

// TryPost queues a message without blocking.
func (l *Loop) TryPost(msg Message) bool {
	if l == nil || msg == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.messages <- msg:
		return true
	default:
		l.logger.Debug("message dropped", "type", messageType(msg))
		return false
	}
}

// Invalidate requests a repaint without changing the viewport, for item content
// changes the windower cannot see. Requests made before the repaint coalesce.
func (l *Loop) Invalidate() {
	if l == nil {
		return
	}
	l.invalid.trigger()
}

// Scheduler returns a scheduler that runs callbacks on the loop goroutine.
// Pass it to state subscriptions so item sources can change from any goroutine.
func (l *Loop) Scheduler() state.Scheduler {
	if l == nil {
		return state.DirectScheduler
	}
	return l.scheduler
}

// Spawn runs an effect. Effects spawned before Run start when the loop does
// and are cancelled when it stops.
func (l *Loop) Spawn(effect Effect) {
	if l == nil || effect.Run == nil {
		return
	}
	l.mu.Lock()
	ctx := l.taskCtx
	if ctx == nil {
		l.pending = append(l.pending, effect)
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()
	go effect.Run(ctx, l.Post)
}

// Stopped is closed when Run returns.
func (l *Loop) Stopped() <-chan struct{} {
	return l.done
}

// Run processes messages until ctx is cancelled or a QuitMsg arrives.
// It renders once at start and again after each batch of messages that changed the frame.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil || l.windower == nil {
		return ErrNoWindower
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer l.doneOnce.Do(func() { close(l.done) })

	l.mu.Lock()
	l.taskCtx = taskCtx
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, effect := range pending {
		go effect.Run(taskCtx, l.Post)
	}

	l.logger.Debug("loop started", "windower", l.windower.ID().String())
	l.paint()
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case msg := <-l.messages:
			dirty, quit := l.handle(msg)
			for !quit {
				// Drain what is already queued so a burst renders once.
				select {
				case next := <-l.messages:
					d, q := l.handle(next)
					dirty = dirty || d
					quit = q
					continue
				default:
				}
				break
			}
			// A flush wake-up dropped on a full buffer leaves callbacks queued.
			if l.scheduler.Pending() > 0 {
				l.scheduler.Flush()
				dirty = true
			}
			if quit {
				l.logger.Debug("loop stopped", "reason", "quit")
				return nil
			}
			if dirty {
				l.paint()
			}
		}
	}
}

func (l *Loop) handle(msg Message) (dirty, quit bool) {
	switch msg.(type) {
	case nil:
		return false, false
	case QuitMsg:
		return false, true
	case QueueFlushMsg:
		l.scheduler.Flush()
		return true, false
	case InvalidateMsg:
		l.invalid.reset()
	}
	return l.update(l, msg), false
}

func (l *Loop) paint() {
	if l.render == nil {
		return
	}
	l.seq++
	l.render(Frame{
		Seq:      l.seq,
		Snapshot: l.windower.Snapshot(),
		Windower: l.windower,
	})
}

func (l *Loop) reportError(err error) {
	if err == nil {
		return
	}
	l.logger.Warn("windower update failed", "err", err)
	if l.onError != nil {
		l.onError(err)
	}
}

// DefaultUpdate applies the built-in messages to the windower.
// Errors are reported through LoopConfig.OnError and leave the previous state in place.
func DefaultUpdate(loop *Loop, msg Message) bool {
	w := loop.Windower()
	before := w.Snapshot()
	switch m := msg.(type) {
	case ScrollToMsg:
		w.SetScrollOffset(m.Offset)
	case ScrollByMsg:
		w.ScrollBy(m.Delta)
	case PageMsg:
		w.PageBy(m.Pages)
	case ResizeMsg:
		w.Resize(m.Height)
	case CountMsg:
		loop.reportError(w.SetCount(m.Count))
	case HeightSpecMsg:
		loop.reportError(w.SetHeightSpec(m.Spec))
	case TopMsg:
		w.ScrollToTop()
	case BottomMsg:
		w.ScrollToBottom()
	case IndexMsg:
		w.ScrollToIndex(m.Index, m.Align)
	case FollowMsg:
		w.SetFollow(m.Follow)
		if m.Follow {
			w.ScrollToBottom()
		}
	case FuncMsg:
		if m.Fn != nil {
			loop.reportError(m.Fn(w))
		}
		return true
	case InvalidateMsg:
		return true
	}
	return w.Snapshot() != before
}

func messageType(msg Message) string {
	switch msg.(type) {
	case ScrollToMsg:
		return "scroll_to"
	case ScrollByMsg:
		return "scroll_by"
	case PageMsg:
		return "page"
	case ResizeMsg:
		return "resize"
	case CountMsg:
		return "count"
	case HeightSpecMsg:
		return "height_spec"
	case TopMsg:
		return "top"
	case BottomMsg:
		return "bottom"
	case IndexMsg:
		return "index"
	case FollowMsg:
		return "follow"
	case FuncMsg:
		return "func"
	case TickMsg:
		return "tick"
	case QueueFlushMsg:
		return "queue_flush"
	case InvalidateMsg:
		return "invalidate"
	case QuitMsg:
		return "quit"
	default:
		return "unknown"
	}
}
