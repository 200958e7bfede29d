package vlist

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-vlist/scroll"
)

// Wrap splits s into rows no wider than width display cells.
// Embedded newlines always start a new row. An empty string is one empty row.
func Wrap(s string, width int) []string {
	var rows []string
	wrapRows(s, width, func(row string) {
		rows = append(rows, row)
	})
	return rows
}

// LineCount returns len(Wrap(s, width)) without allocating.
func LineCount(s string, width int) int {
	return wrapRows(s, width, nil)
}

// WrapHeights returns a variable height spec for text lines wrapped at width.
func WrapHeights(lines []string, width int, lineHeight float64) scroll.HeightSpec {
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return scroll.Variable(func(index int) float64 {
		if index < 0 || index >= len(lines) {
			return lineHeight
		}
		return float64(LineCount(lines[index], width)) * lineHeight
	})
}

// Truncate shortens s to maxWidth display cells, marking the cut with "...".
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func wrapRows(s string, width int, emit func(string)) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for {
		line, rest, more := strings.Cut(s, "\n")
		start, cells := 0, 0
		for i, r := range line {
			w := runewidth.RuneWidth(r)
			if cells+w > width && cells > 0 {
				if emit != nil {
					emit(line[start:i])
				}
				rows++
				start, cells = i, 0
			}
			cells += w
		}
		if emit != nil {
			emit(line[start:])
		}
		rows++
		if !more {
			return rows
		}
		s = rest
	}
}
