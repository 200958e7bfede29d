package scroll

import (
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"
)

// State is the lifecycle state of a Windower.
type State int

const (
	// StateUninitialized means the item count or height spec is still unknown.
	StateUninitialized State = iota
	// StateReady means an offset model is installed.
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Slot is the absolute placement of one materialized item.
type Slot struct {
	Index  int
	Offset float64
	Height float64
}

// Snapshot is the observable state of a Windower after an update.
type Snapshot struct {
	Range       VisibleRange
	Viewport    Viewport
	TotalHeight float64
	Count       int
}

// Empty reports whether there are no items to show.
func (s Snapshot) Empty() bool {
	return s.Count == 0
}

// Option configures a Windower.
type Option func(*Windower)

// WithCount sets the initial item count.
func WithCount(n int) Option {
	return func(w *Windower) {
		w.count = max(n, 0)
		w.hasCount = true
	}
}

// WithFixedHeight uses a constant item height.
func WithFixedHeight(h float64) Option {
	return WithHeightSpec(Fixed(h))
}

// WithHeightFunc uses a per-index height function.
func WithHeightFunc(fn HeightFunc) Option {
	return WithHeightSpec(Variable(fn))
}

// WithHeightSpec sets the height spec.
func WithHeightSpec(spec HeightSpec) Option {
	return func(w *Windower) { w.spec = spec }
}

// WithContainerHeight sets the initial container height.
func WithContainerHeight(h float64) Option {
	return func(w *Windower) { w.viewport.ContainerHeight = sanitize(h) }
}

// WithBuffer sets the per-side item buffer. Negative values become 0.
func WithBuffer(n int) Option {
	return func(w *Windower) { w.viewport.Buffer = max(n, 0) }
}

// WithHeightPolicy selects clamping or strict validation of item heights.
func WithHeightPolicy(p HeightPolicy) Option {
	return func(w *Windower) { w.policy = p }
}

// WithFollow keeps the viewport pinned to the bottom while it is there and items are added.
func WithFollow(follow bool) Option {
	return func(w *Windower) { w.follow = follow }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Windower) { w.logger = logger }
}

// WithOnChange registers a callback for snapshot changes.
func WithOnChange(fn func(Snapshot)) Option {
	return func(w *Windower) { w.onChange = fn }
}

// Windower tracks the viewport over an item collection and recomputes the
// visible range on every scroll, resize or data change.
// It is not safe for concurrent use; callers serialize signals (see runtime.Loop).
type Windower struct {
	id       ulid.ULID
	state    State
	count    int
	hasCount bool
	spec     HeightSpec
	policy   HeightPolicy
	model    OffsetModel
	viewport Viewport
	rng      VisibleRange
	follow   bool
	logger   *slog.Logger
	onChange func(Snapshot)
	last     Snapshot
}

// NewWindower creates a windower. It becomes ready as soon as both the count and
// the height spec are known. An invalid initial spec under StrictHeights is returned
// as an error.
func NewWindower(opts ...Option) (*Windower, error) {
	w := &Windower{
		id:       ulid.Make(),
		viewport: Viewport{Buffer: DefaultBuffer},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w.logger = w.logger.With("windower", w.id.String())
	if err := w.rebuild(w.count, w.spec); err != nil {
		return nil, err
	}
	w.last = w.snapshot()
	return w, nil
}

// ID returns the instance identifier used in log records.
func (w *Windower) ID() ulid.ULID {
	if w == nil {
		return ulid.ULID{}
	}
	return w.id
}

// State returns the lifecycle state.
func (w *Windower) State() State {
	if w == nil {
		return StateUninitialized
	}
	return w.state
}

// SetOnChange replaces the change callback.
func (w *Windower) SetOnChange(fn func(Snapshot)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// SetCount replaces the item count and rebuilds the offset model.
func (w *Windower) SetCount(n int) error {
	if w == nil {
		return nil
	}
	n = max(n, 0)
	pinned := w.follow && w.state == StateReady && w.IsAtBottom()
	w.hasCount = true
	if err := w.rebuild(n, w.spec); err != nil {
		return err
	}
	if pinned {
		w.viewport.ScrollOffset = w.viewport.MaxOffset(w.TotalHeight())
	}
	w.update()
	return nil
}

// SetHeightSpec replaces the height spec and rebuilds the offset model.
func (w *Windower) SetHeightSpec(spec HeightSpec) error {
	if w == nil {
		return nil
	}
	pinned := w.follow && w.state == StateReady && w.IsAtBottom()
	if err := w.rebuild(w.count, spec); err != nil {
		return err
	}
	if pinned {
		w.viewport.ScrollOffset = w.viewport.MaxOffset(w.TotalHeight())
	}
	w.update()
	return nil
}

// SetItems replaces the count and spec together, with a single rebuild.
func (w *Windower) SetItems(n int, spec HeightSpec) error {
	if w == nil {
		return nil
	}
	n = max(n, 0)
	pinned := w.follow && w.state == StateReady && w.IsAtBottom()
	w.hasCount = true
	if err := w.rebuild(n, spec); err != nil {
		return err
	}
	if pinned {
		w.viewport.ScrollOffset = w.viewport.MaxOffset(w.TotalHeight())
	}
	w.update()
	return nil
}

// SetScrollOffset moves the viewport to offset, clamped to the valid range.
func (w *Windower) SetScrollOffset(offset float64) {
	if w == nil {
		return
	}
	w.viewport.ScrollOffset = offset
	w.update()
}

// ScrollBy moves the viewport by delta pixels.
func (w *Windower) ScrollBy(delta float64) {
	if w == nil {
		return
	}
	w.SetScrollOffset(w.viewport.ScrollOffset + delta)
}

// PageBy moves the viewport by whole container heights.
func (w *Windower) PageBy(pages int) {
	if w == nil {
		return
	}
	w.ScrollBy(float64(pages) * w.viewport.ContainerHeight)
}

// Resize updates the container height and re-clamps the scroll offset.
func (w *Windower) Resize(containerHeight float64) {
	if w == nil {
		return
	}
	pinned := w.follow && w.state == StateReady && w.IsAtBottom()
	w.viewport.ContainerHeight = sanitize(containerHeight)
	if pinned {
		w.viewport.ScrollOffset = w.viewport.MaxOffset(w.TotalHeight())
	}
	w.update()
}

// SetBuffer changes the per-side item buffer.
func (w *Windower) SetBuffer(n int) {
	if w == nil {
		return
	}
	w.viewport.Buffer = max(n, 0)
	w.update()
}

// SetFollow toggles bottom pinning.
func (w *Windower) SetFollow(follow bool) {
	if w == nil {
		return
	}
	w.follow = follow
}

// Follow reports whether bottom pinning is enabled.
func (w *Windower) Follow() bool {
	return w != nil && w.follow
}

// ScrollToTop sets the scroll offset to 0.
func (w *Windower) ScrollToTop() {
	w.SetScrollOffset(0)
}

// ScrollToBottom scrolls so the last item touches the bottom of the container.
func (w *Windower) ScrollToBottom() {
	if w == nil {
		return
	}
	w.SetScrollOffset(w.viewport.MaxOffset(w.TotalHeight()))
}

// ScrollToIndex brings item index into view. Out-of-range indices are clamped.
func (w *Windower) ScrollToIndex(index int, align Align) {
	if w == nil {
		return
	}
	w.SetScrollOffset(OffsetForIndex(w.viewport, w.model, index, align))
}

// IsAtBottom reports whether the viewport shows the end of the list.
func (w *Windower) IsAtBottom() bool {
	if w == nil {
		return true
	}
	return w.viewport.ScrollOffset >= w.viewport.MaxOffset(w.TotalHeight())
}

// VisibleRange returns the range computed for the latest signal.
func (w *Windower) VisibleRange() VisibleRange {
	if w == nil {
		return VisibleRange{}
	}
	return w.rng
}

// Viewport returns the clamped viewport.
func (w *Windower) Viewport() Viewport {
	if w == nil {
		return Viewport{}
	}
	return w.viewport
}

// Count returns the item count.
func (w *Windower) Count() int {
	if w == nil {
		return 0
	}
	return w.count
}

// Empty reports whether the collection has no items. Hosts show an empty state instead.
func (w *Windower) Empty() bool {
	return w.Count() == 0
}

// TotalHeight returns the height of the whole list, for sizing a scroll spacer.
func (w *Windower) TotalHeight() float64 {
	if w == nil || w.model == nil {
		return 0
	}
	return w.model.TotalHeight()
}

// ItemOffset returns the absolute pixel offset of item index.
func (w *Windower) ItemOffset(index int) float64 {
	if w == nil || w.model == nil {
		return 0
	}
	return w.model.OffsetOf(index)
}

// Model returns the installed offset model, or nil before the windower is ready.
func (w *Windower) Model() OffsetModel {
	if w == nil {
		return nil
	}
	return w.model
}

// Slots appends the placement of every item in the visible range to dst.
func (w *Windower) Slots(dst []Slot) []Slot {
	if w == nil || w.model == nil {
		return dst
	}
	for i := w.rng.Start; i < w.rng.End; i++ {
		dst = append(dst, Slot{
			Index:  i,
			Offset: w.model.OffsetOf(i),
			Height: w.model.HeightOf(i),
		})
	}
	return dst
}

// Snapshot returns the current observable state.
func (w *Windower) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	return w.snapshot()
}

func (w *Windower) rebuild(n int, spec HeightSpec) error {
	if !w.hasCount || !spec.IsSet() {
		w.count = n
		w.spec = spec
		return nil
	}
	model, err := BuildOffsetModel(n, spec, w.policy)
	if err != nil {
		w.logger.Warn("offset model rejected", "count", n, "spec", spec.Kind().String(), "err", err)
		return err
	}
	if h, ok := spec.FixedHeight(); ok && !validHeight(h) {
		w.logger.Warn("fixed height clamped", "height", h, "min", MinItemHeight)
	}
	if clamped, ok := model.(interface{ Clamped() []int }); ok {
		if bad := clamped.Clamped(); len(bad) > 0 {
			w.logger.Warn("item heights clamped", "count", len(bad), "first", bad[0], "min", MinItemHeight)
		}
	}
	w.count = n
	w.spec = spec
	w.model = model
	if w.state != StateReady {
		w.state = StateReady
		w.logger.Debug("windower ready", "count", n, "spec", spec.Kind().String())
	}
	w.viewport = w.viewport.Clamp(model.TotalHeight())
	w.rng = ComputeVisibleRange(w.viewport, model)
	return nil
}

func (w *Windower) update() {
	w.viewport = w.viewport.Clamp(w.TotalHeight())
	w.rng = ComputeVisibleRange(w.viewport, w.model)
	next := w.snapshot()
	if next == w.last {
		return
	}
	w.last = next
	if w.onChange != nil {
		w.onChange(next)
	}
}

func (w *Windower) snapshot() Snapshot {
	return Snapshot{
		Range:       w.rng,
		Viewport:    w.viewport,
		TotalHeight: w.TotalHeight(),
		Count:       w.count,
	}
}
