package scroll

// OffsetModel maps item indices to pixel offsets and back.
// Implementations are immutable; a new model is built when the count or heights change.
type OffsetModel interface {
	Count() int
	TotalHeight() float64
	// OffsetOf returns the pixel offset of the top of item index.
	// index is clamped to [0, Count()]; OffsetOf(Count()) equals TotalHeight().
	OffsetOf(index int) float64
	// IndexAtOffset returns the item whose span contains offset.
	IndexAtOffset(offset float64) int
	HeightOf(index int) float64
}

// FixedHeightIndex provides closed-form indexing for fixed-height items.
type FixedHeightIndex struct {
	Height float64
	N      int
}

// TotalHeight returns the total height for all items.
func (f FixedHeightIndex) TotalHeight() float64 {
	if f.Height <= 0 || f.N <= 0 {
		return 0
	}
	return f.Height * float64(f.N)
}

// Count returns the item count.
func (f FixedHeightIndex) Count() int {
	if f.N < 0 {
		return 0
	}
	return f.N
}

// IndexAtOffset returns the item index for a given offset.
func (f FixedHeightIndex) IndexAtOffset(offset float64) int {
	if f.Height <= 0 || f.N <= 0 || !(offset > 0) {
		return 0
	}
	if offset >= f.TotalHeight() {
		return f.N - 1
	}
	index := int(offset / f.Height)
	if index > f.N-1 {
		index = f.N - 1
	}
	return index
}

// OffsetOf returns the offset for the given item index.
func (f FixedHeightIndex) OffsetOf(index int) float64 {
	if f.Height <= 0 || index <= 0 || f.N <= 0 {
		return 0
	}
	if index > f.N {
		index = f.N
	}
	return float64(index) * f.Height
}

// HeightOf returns the shared height, or 0 outside [0, N).
func (f FixedHeightIndex) HeightOf(index int) float64 {
	if index < 0 || index >= f.N {
		return 0
	}
	return f.Height
}

var _ OffsetModel = FixedHeightIndex{}
