package state

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Get() T
	Version() uint64
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}

var (
	_ Writable[int] = (*Signal[int])(nil)
	_ Readable[int] = (*Signal[int])(nil)
)
