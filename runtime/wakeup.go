package runtime

import "sync/atomic"

// wakeup posts msg at most once until reset, so a burst of requests costs one message.
type wakeup struct {
	post    PostFunc
	msg     Message
	pending atomic.Bool
}

func newWakeup(post PostFunc, msg Message) *wakeup {
	return &wakeup{post: post, msg: msg}
}

// trigger reports whether a message is in flight after the call.
func (w *wakeup) trigger() bool {
	if w == nil || w.post == nil {
		return false
	}
	if !w.pending.CompareAndSwap(false, true) {
		return true
	}
	if w.post(w.msg) {
		return true
	}
	w.pending.Store(false)
	return false
}

// reset re-arms the wakeup once the loop has received the message.
func (w *wakeup) reset() {
	if w == nil {
		return
	}
	w.pending.Store(false)
}
