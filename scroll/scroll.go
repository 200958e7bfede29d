// Package scroll provides viewport windowing primitives for large lists.
package scroll

import "math"

// DefaultBuffer is the number of extra items materialized on each side of the viewport.
const DefaultBuffer = 3

// Viewport is the visible pixel window over the list.
type Viewport struct {
	ScrollOffset    float64
	ContainerHeight float64
	// Buffer is an item count, not pixels.
	Buffer int
}

// MaxOffset returns the largest valid scroll offset for content of height total.
func (v Viewport) MaxOffset(total float64) float64 {
	maxY := total - sanitize(v.ContainerHeight)
	if !(maxY > 0) {
		return 0
	}
	return maxY
}

// Clamp returns v with every field forced into its valid range.
func (v Viewport) Clamp(total float64) Viewport {
	v.ContainerHeight = sanitize(v.ContainerHeight)
	v.ScrollOffset = clampOffset(v.ScrollOffset, v.MaxOffset(total))
	if v.Buffer < 0 {
		v.Buffer = 0
	}
	return v
}

// clampOffset maps negative and NaN offsets to 0 and caps the rest, +Inf included, at maxY.
func clampOffset(offset, maxY float64) float64 {
	if !(offset > 0) {
		return 0
	}
	if offset > maxY {
		return maxY
	}
	return offset
}

// sanitize maps negative, NaN and infinite values to 0.
func sanitize(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}

// VisibleRange is the half-open index range [Start, End) to materialize.
type VisibleRange struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r VisibleRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range holds no indices.
func (r VisibleRange) Empty() bool {
	return r.Len() == 0
}

// Contains reports whether index is inside the range.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// ComputeVisibleRange returns every index whose span intersects
// [ScrollOffset, ScrollOffset+ContainerHeight), expanded by Buffer items on each side.
// It is pure: the same viewport and model always give the same range.
func ComputeVisibleRange(vp Viewport, model OffsetModel) VisibleRange {
	if model == nil {
		return VisibleRange{}
	}
	n := model.Count()
	if n <= 0 {
		return VisibleRange{}
	}
	total := model.TotalHeight()
	vp = vp.Clamp(total)
	if total <= vp.ContainerHeight {
		return VisibleRange{Start: 0, End: n}
	}

	first := model.IndexAtOffset(vp.ScrollOffset)
	bottom := vp.ScrollOffset + vp.ContainerHeight
	last := model.IndexAtOffset(bottom)
	end := last + 1
	if model.OffsetOf(last) >= bottom {
		end = last
	}
	if end < first {
		end = first
	}

	start := first - vp.Buffer
	end += vp.Buffer
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return VisibleRange{Start: start, End: end}
}

// Align selects where ScrollToIndex places the target item.
type Align int

const (
	// AlignStart puts the item at the top of the viewport.
	AlignStart Align = iota
	// AlignCenter puts the item's top half a container below the viewport top.
	AlignCenter
	// AlignEnd puts the item's bottom at the bottom of the viewport.
	AlignEnd
	// AlignAuto scrolls the least distance that shows the whole item.
	AlignAuto
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignAuto:
		return "auto"
	default:
		return "start"
	}
}

// ParseAlign parses start, center, end or auto.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "start", "":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end":
		return AlignEnd, true
	case "auto":
		return AlignAuto, true
	}
	return AlignStart, false
}

// OffsetForIndex returns the clamped scroll offset that brings index into view under align.
// index is clamped to [0, n-1]; an empty model yields 0.
func OffsetForIndex(vp Viewport, model OffsetModel, index int, align Align) float64 {
	if model == nil || model.Count() == 0 {
		return 0
	}
	n := model.Count()
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	total := model.TotalHeight()
	vp = vp.Clamp(total)
	top := model.OffsetOf(index)
	height := model.HeightOf(index)

	target := top
	switch align {
	case AlignCenter:
		target = top - vp.ContainerHeight/2
	case AlignEnd:
		target = top - vp.ContainerHeight + height
	case AlignAuto:
		switch {
		case top < vp.ScrollOffset:
			target = top
		case top+height > vp.ScrollOffset+vp.ContainerHeight:
			target = top - vp.ContainerHeight + height
		default:
			target = vp.ScrollOffset
		}
	}
	return clampOffset(target, vp.MaxOffset(total))
}

// Thumb returns the start and size of a scrollbar thumb on a track of length track cells.
func Thumb(total, view, offset float64, track, minThumb int) (start, size int) {
	if track <= 0 || !(total > 0) || !(view > 0) {
		return 0, 0
	}
	if minThumb < 1 {
		minThumb = 1
	}
	if total <= view {
		return 0, track
	}
	size = int(view / total * float64(track))
	if size < minThumb {
		size = minThumb
	}
	if size > track {
		size = track
	}
	maxOffset := total - view
	offset = clampOffset(offset, maxOffset)
	start = int(offset / maxOffset * float64(track-size))
	return start, size
}
