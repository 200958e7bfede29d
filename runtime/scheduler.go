package runtime

import "github.com/odvcencio/furry-vlist/state"

// QueueScheduler enqueues callbacks and wakes the loop to flush them on its goroutine.
// Schedule never blocks, so it is safe to call from the loop goroutine itself.
type QueueScheduler struct {
	queue *state.Queue
	wake  *wakeup
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post PostFunc) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		wake:  newWakeup(post, QueueFlushMsg{}),
	}
}

// Schedule enqueues the callback and posts a flush message.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.trigger()
}

// Pending returns the number of queued callbacks.
func (s *QueueScheduler) Pending() int {
	if s == nil {
		return 0
	}
	return s.queue.Len()
}

// Flush runs pending callbacks and re-arms the flush message.
func (s *QueueScheduler) Flush() int {
	if s == nil {
		return 0
	}
	s.wake.reset()
	return s.queue.Flush()
}

var _ state.Scheduler = (*QueueScheduler)(nil)
