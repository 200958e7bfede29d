package scroll

import (
	"fmt"
	"sort"
)

// PrefixIndex indexes variable-height items with a prefix-sum table.
// offsets has Count()+1 entries; offsets[i] is the top of item i.
type PrefixIndex struct {
	offsets []float64
	clamped []int
}

// NewPrefixIndex builds the table in O(n). Under StrictHeights the first invalid
// height aborts the build with a *HeightError.
func NewPrefixIndex(count int, fn HeightFunc, policy HeightPolicy) (*PrefixIndex, error) {
	if fn == nil {
		return nil, ErrNilHeightFunc
	}
	if count < 0 {
		count = 0
	}
	p := &PrefixIndex{offsets: make([]float64, count+1)}
	total := 0.0
	for i := 0; i < count; i++ {
		h := fn(i)
		if !validHeight(h) {
			if policy == StrictHeights {
				return nil, &HeightError{Index: i, Height: h}
			}
			p.clamped = append(p.clamped, i)
			h = MinItemHeight
		}
		total += h
		p.offsets[i+1] = total
	}
	return p, nil
}

// Count returns the item count.
func (p *PrefixIndex) Count() int {
	if p == nil || len(p.offsets) == 0 {
		return 0
	}
	return len(p.offsets) - 1
}

// TotalHeight returns the sum of all item heights.
func (p *PrefixIndex) TotalHeight() float64 {
	if p == nil || len(p.offsets) == 0 {
		return 0
	}
	return p.offsets[len(p.offsets)-1]
}

// OffsetOf returns the top of item index.
func (p *PrefixIndex) OffsetOf(index int) float64 {
	n := p.Count()
	if n == 0 || index <= 0 {
		return 0
	}
	if index > n {
		index = n
	}
	return p.offsets[index]
}

// HeightOf returns the height of item index, or 0 outside [0, Count()).
func (p *PrefixIndex) HeightOf(index int) float64 {
	if index < 0 || index >= p.Count() {
		return 0
	}
	return p.offsets[index+1] - p.offsets[index]
}

// IndexAtOffset binary searches for the item containing offset.
func (p *PrefixIndex) IndexAtOffset(offset float64) int {
	n := p.Count()
	if n == 0 || !(offset > 0) {
		return 0
	}
	if offset >= p.TotalHeight() {
		return n - 1
	}
	// first item whose bottom edge is below offset
	return sort.Search(n, func(i int) bool {
		return p.offsets[i+1] > offset
	})
}

// Clamped returns the indices whose heights were replaced by MinItemHeight.
func (p *PrefixIndex) Clamped() []int {
	if p == nil {
		return nil
	}
	return p.clamped
}

var _ OffsetModel = (*PrefixIndex)(nil)

// BuildOffsetModel builds the offset model for count items under spec.
// Fixed specs use the closed-form FixedHeightIndex.
func BuildOffsetModel(count int, spec HeightSpec, policy HeightPolicy) (OffsetModel, error) {
	if count < 0 {
		count = 0
	}
	switch spec.kind {
	case HeightFixed:
		h := spec.fixed
		if !validHeight(h) {
			if policy == StrictHeights {
				return nil, &HeightError{Index: -1, Height: h}
			}
			h = MinItemHeight
		}
		return FixedHeightIndex{Height: h, N: count}, nil
	case HeightVariable:
		idx, err := NewPrefixIndex(count, spec.fn, policy)
		if err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("build offset model: %s height spec", spec.kind)
	}
}
