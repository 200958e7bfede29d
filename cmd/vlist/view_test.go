package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-vlist/runtime"
	"github.com/odvcencio/furry-vlist/source"
)

func newSimViewer(t *testing.T, items []string, opts viewOptions) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(20, 6)
	t.Cleanup(screen.Fini)
	if opts.itemHeight == 0 {
		opts.itemHeight = 1
	}
	v, err := newViewer(screen, items, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new viewer: %v", err)
	}
	t.Cleanup(v.list.Close)
	return v, screen
}

func screenLine(s tcell.SimulationScreen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewerRender(t *testing.T) {
	v, screen := newSimViewer(t, source.Generate(100), viewOptions{buffer: 3})
	v.render(runtime.Frame{Seq: 1, Snapshot: v.list.Windower().Snapshot()})

	if got := screenLine(screen, 0); !strings.HasPrefix(got, "row 0 ") {
		t.Fatalf("first row = %q", got)
	}
	if got := screenLine(screen, 4); !strings.HasPrefix(got, "row 4 ") {
		t.Fatalf("fifth row = %q", got)
	}
	_, _, style, _ := screen.GetContent(0, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Fatal("cursor row should be reversed")
	}
	status := screenLine(screen, 5)
	if !strings.Contains(status, "100 items") || !strings.Contains(status, "[0,8)") {
		t.Fatalf("status = %q", status)
	}
}

func TestViewerRenderEmpty(t *testing.T) {
	v, screen := newSimViewer(t, nil, viewOptions{})
	v.render(runtime.Frame{Seq: 1, Snapshot: v.list.Windower().Snapshot()})
	if got := screenLine(screen, 0); !strings.HasPrefix(got, "(no items)") {
		t.Fatalf("empty state = %q", got)
	}
}

func TestViewerWrapHeights(t *testing.T) {
	items := []string{strings.Repeat("x", 40), "short"}
	v, _ := newSimViewer(t, items, viewOptions{wrap: true})
	w := v.list.Windower()
	// 19 text columns: 40 cells wrap onto 3 rows.
	if got := w.TotalHeight(); got != 4 {
		t.Fatalf("total height = %v, want 4", got)
	}
	if got := w.ItemOffset(1); got != 3 {
		t.Fatalf("offset of item 1 = %v, want 3", got)
	}
}

func TestViewerTranslate(t *testing.T) {
	v, _ := newSimViewer(t, source.Generate(10), viewOptions{})
	tests := []struct {
		name string
		ev   tcell.Event
		want runtime.Message
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), runtime.QuitMsg{}},
		{"esc quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), runtime.QuitMsg{}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), runtime.PageMsg{Pages: 1}},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), runtime.PageMsg{Pages: -1}},
		{"wheel down", tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone), runtime.ScrollByMsg{Delta: wheelStep}},
		{"wheel up", tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), runtime.ScrollByMsg{Delta: -wheelStep}},
		{"unbound key", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.translate(tt.ev); got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
	if _, ok := v.translate(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)).(runtime.FuncMsg); !ok {
		t.Fatal("cursor keys should produce a FuncMsg")
	}
}

func TestViewerRunKeys(t *testing.T) {
	v, screen := newSimViewer(t, source.Generate(100), viewOptions{buffer: 3})
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'G', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- v.run(context.Background()) }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}
	if v.cursor != 99 {
		t.Fatalf("cursor = %d, want 99", v.cursor)
	}
	if got := v.list.Windower().Viewport().ScrollOffset; got != 95 {
		t.Fatalf("offset = %v, want 95", got)
	}
}

func TestViewerFollowsNewItems(t *testing.T) {
	v, _ := newSimViewer(t, source.Generate(10), viewOptions{follow: true})
	v.items.Set(source.Generate(20))
	v.loop.Post(runtime.QuitMsg{})
	if err := v.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	w := v.list.Windower()
	if w.Count() != 20 {
		t.Fatalf("count = %d, want 20", w.Count())
	}
	if got := w.Viewport().ScrollOffset; got != 15 {
		t.Fatalf("offset = %v, want 15", got)
	}
	if !w.IsAtBottom() {
		t.Fatal("expected viewport pinned to the bottom")
	}
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n\nBody text.\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	blocks, err := loadItems(viewOptions{markdown: true}, path)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if len(blocks) != 2 || blocks[0] != "# Title" || blocks[1] != "Body text." {
		t.Fatalf("blocks = %q", blocks)
	}
	lines, err := loadItems(viewOptions{}, path)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	generated, err := loadItems(viewOptions{generate: 5}, "")
	if err != nil || len(generated) != 5 {
		t.Fatalf("generate = %q, %v", generated, err)
	}
	if _, err := loadItems(viewOptions{}, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
