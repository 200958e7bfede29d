package vlist

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"empty", "", 5, []string{""}},
		{"fits", "abc", 5, []string{"abc"}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"wraps", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"newlines", "ab\n\ncd", 5, []string{"ab", "", "cd"}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
		{"zero width", "ab", 0, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.in, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if n := LineCount(tt.in, tt.width); n != len(tt.want) {
				t.Fatalf("LineCount(%q, %d) = %d, want %d", tt.in, tt.width, n, len(tt.want))
			}
		})
	}
}

func TestWrapHeights(t *testing.T) {
	spec := WrapHeights([]string{"short", "a much longer line", ""}, 6, 2)
	fn, ok := spec.Func()
	if !ok {
		t.Fatalf("expected variable spec")
	}
	want := []float64{2, 6, 2}
	for i, h := range want {
		if got := fn(i); got != h {
			t.Errorf("height(%d) = %v, want %v", i, got, h)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("Truncate fits = %q", got)
	}
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Fatalf("Truncate = %q, want %q", got, "hello...")
	}
	if got := Truncate("hello", 0); got != "" {
		t.Fatalf("Truncate zero width = %q", got)
	}
}
