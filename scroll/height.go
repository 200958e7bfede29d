package scroll

import (
	"errors"
	"fmt"
	"math"
)

// MinItemHeight is the height substituted for invalid heights under ClampHeights.
const MinItemHeight = 1.0

var (
	// ErrInvalidHeight reports a non-positive or non-finite item height.
	ErrInvalidHeight = errors.New("invalid item height")
	// ErrNilHeightFunc reports a variable height spec without a function.
	ErrNilHeightFunc = errors.New("height function is nil")
)

// HeightError describes the first invalid height found while building an offset model.
type HeightError struct {
	Index  int
	Height float64
}

func (e *HeightError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("fixed height %v: %v", e.Height, ErrInvalidHeight)
	}
	return fmt.Sprintf("item %d height %v: %v", e.Index, e.Height, ErrInvalidHeight)
}

func (e *HeightError) Unwrap() error {
	return ErrInvalidHeight
}

// HeightFunc returns the height of the item at index.
type HeightFunc func(index int) float64

// HeightKind identifies the HeightSpec variant.
type HeightKind int

const (
	// HeightUnset is the zero HeightSpec.
	HeightUnset HeightKind = iota
	HeightFixed
	HeightVariable
)

func (k HeightKind) String() string {
	switch k {
	case HeightFixed:
		return "fixed"
	case HeightVariable:
		return "variable"
	default:
		return "unset"
	}
}

// HeightSpec is either a constant height shared by every item or a per-index function.
// The zero value is unset.
type HeightSpec struct {
	kind  HeightKind
	fixed float64
	fn    HeightFunc
}

// Fixed returns a spec where every item is h pixels tall.
func Fixed(h float64) HeightSpec {
	return HeightSpec{kind: HeightFixed, fixed: h}
}

// Variable returns a spec that asks fn for each item height.
func Variable(fn HeightFunc) HeightSpec {
	return HeightSpec{kind: HeightVariable, fn: fn}
}

// Kind reports the variant.
func (s HeightSpec) Kind() HeightKind {
	return s.kind
}

// IsSet reports whether the spec has a variant.
func (s HeightSpec) IsSet() bool {
	return s.kind != HeightUnset
}

// FixedHeight returns the constant height for fixed specs.
func (s HeightSpec) FixedHeight() (float64, bool) {
	if s.kind != HeightFixed {
		return 0, false
	}
	return s.fixed, true
}

// Func returns the height function for variable specs.
func (s HeightSpec) Func() (HeightFunc, bool) {
	if s.kind != HeightVariable {
		return nil, false
	}
	return s.fn, true
}

// HeightPolicy selects how invalid heights are handled when an offset model is built.
type HeightPolicy int

const (
	// ClampHeights replaces invalid heights with MinItemHeight.
	ClampHeights HeightPolicy = iota
	// StrictHeights rejects the spec with a *HeightError.
	StrictHeights
)

func (p HeightPolicy) String() string {
	if p == StrictHeights {
		return "strict"
	}
	return "clamp"
}

func validHeight(h float64) bool {
	return h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}
