package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-vlist/runtime"
	"github.com/odvcencio/furry-vlist/scroll"
	"github.com/odvcencio/furry-vlist/source"
	"github.com/odvcencio/furry-vlist/state"
	"github.com/odvcencio/furry-vlist/vlist"
)

const wheelStep = 3

type viewOptions struct {
	markdown     bool
	generate     int
	buffer       int
	itemHeight   int
	wrap         bool
	follow       bool
	tailInterval time.Duration
	logFile      string
}

func newViewCmd() *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Page through a large list in the terminal",
		Long: `Open a terminal viewer over the lines of a file, the blocks of a markdown
document, or generated rows. Only the rows around the viewport are laid out.

Keys:
  up/down, j/k   move the cursor
  pgup/pgdn      page
  home/end, g/G  first/last item
  c              center the cursor
  f              toggle follow mode
  q, esc         quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" && opts.generate <= 0 {
				return fmt.Errorf("view: a file or --generate is required")
			}
			return runView(cmd.Context(), opts, path)
		},
	}
	cmd.Flags().BoolVarP(&opts.markdown, "markdown", "m", false, "Show one item per markdown block")
	cmd.Flags().IntVar(&opts.generate, "generate", 0, "Show N generated rows instead of a file")
	cmd.Flags().IntVarP(&opts.buffer, "buffer", "b", scroll.DefaultBuffer, "Extra items on each side of the viewport")
	cmd.Flags().IntVar(&opts.itemHeight, "item-height", 1, "Rows per item when not wrapping")
	cmd.Flags().BoolVarP(&opts.wrap, "wrap", "w", false, "Wrap long items; item heights follow the terminal width")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Start at the bottom and stay there as items arrive")
	cmd.Flags().DurationVar(&opts.tailInterval, "tail-interval", 0, "Reload the file on this interval (e.g. 500ms)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file")
	return cmd
}

func runView(ctx context.Context, opts viewOptions, path string) error {
	logger, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	items, err := loadItems(opts, path)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	v, err := newViewer(screen, items, opts, logger)
	if err != nil {
		return err
	}
	defer v.list.Close()
	if opts.tailInterval > 0 && path != "" && opts.generate <= 0 {
		v.tail(opts.tailInterval, func() ([]string, error) { return loadItems(opts, path) })
	}
	return v.run(ctx)
}

func loadItems(opts viewOptions, path string) ([]string, error) {
	if opts.generate > 0 {
		return source.Generate(opts.generate), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if opts.markdown {
		return source.Texts(source.Markdown(data)), nil
	}
	return source.Lines(bytes.NewReader(data))
}

// viewer hosts a vlist.List on a tcell screen. Fields other than screen,
// items and loop belong to the loop goroutine.
type viewer struct {
	screen tcell.Screen
	items  *state.Signal[[]string]
	list   *vlist.List[string]
	loop   *runtime.Loop
	logger *slog.Logger
	wrap   bool
	width  int
	cursor int
	rows   []vlist.Row[string]
}

func newViewer(screen tcell.Screen, initial []string, opts viewOptions, logger *slog.Logger) (*viewer, error) {
	width, height := screen.Size()
	v := &viewer{
		screen: screen,
		items:  state.NewSignal(initial),
		logger: logger,
		wrap:   opts.wrap,
		width:  textWidth(width),
	}
	v.items.SetEqualFunc(func(a, b []string) bool { return slices.Equal(a, b) })

	rowsPerItem := max(opts.itemHeight, 1)
	cfg := vlist.Config[string]{
		ItemHeight: float64(rowsPerItem),
		// Item changes arrive from the tail goroutine; apply them on the loop.
		Scheduler: state.SchedulerFunc(func(fn func()) {
			v.loop.Scheduler().Schedule(fn)
		}),
		Windower: []scroll.Option{
			scroll.WithBuffer(opts.buffer),
			scroll.WithFollow(opts.follow),
			scroll.WithContainerHeight(float64(viewHeight(height))),
			scroll.WithLogger(logger),
		},
	}
	if opts.wrap {
		cfg.HeightOf = func(item string, _ int) float64 {
			return float64(vlist.LineCount(item, v.width))
		}
	}
	list, err := vlist.New[string](vlist.NewSignalAdapter[string](v.items), cfg)
	if err != nil {
		return nil, err
	}
	v.list = list
	v.loop = runtime.NewLoop(runtime.LoopConfig{
		Windower: list.Windower(),
		Render:   v.render,
		Logger:   logger,
	})
	if opts.follow {
		v.cursor = max(len(initial)-1, 0)
		v.loop.Post(runtime.BottomMsg{})
	}
	return v, nil
}

// tail reloads the items on every tick. Unchanged reloads are dropped by the signal.
func (v *viewer) tail(interval time.Duration, load func() ([]string, error)) {
	v.loop.Spawn(runtime.Every(interval, func(time.Time) runtime.Message {
		lines, err := load()
		if err != nil {
			v.logger.Warn("reload failed", "err", err)
			return nil
		}
		v.items.Set(lines)
		return nil
	}))
}

func (v *viewer) run(ctx context.Context) error {
	go v.pollEvents()
	return v.loop.Run(ctx)
}

func (v *viewer) pollEvents() {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		msg := v.translate(ev)
		if msg == nil {
			continue
		}
		if !v.loop.Post(msg) {
			return
		}
	}
}

func (v *viewer) translate(ev tcell.Event) runtime.Message {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return runtime.FuncMsg{Fn: v.resize}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return runtime.QuitMsg{}
		case tcell.KeyUp:
			return v.moveCursor(-1)
		case tcell.KeyDown:
			return v.moveCursor(1)
		case tcell.KeyPgUp:
			return runtime.PageMsg{Pages: -1}
		case tcell.KeyPgDn:
			return runtime.PageMsg{Pages: 1}
		case tcell.KeyHome:
			return v.jump(false)
		case tcell.KeyEnd:
			return v.jump(true)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return runtime.QuitMsg{}
			case 'k':
				return v.moveCursor(-1)
			case 'j':
				return v.moveCursor(1)
			case 'g':
				return v.jump(false)
			case 'G':
				return v.jump(true)
			case 'c':
				return runtime.FuncMsg{Fn: func(w *scroll.Windower) error {
					w.ScrollToIndex(v.cursor, scroll.AlignCenter)
					return nil
				}}
			case 'f':
				return runtime.FuncMsg{Fn: func(w *scroll.Windower) error {
					w.SetFollow(!w.Follow())
					if w.Follow() {
						v.cursor = max(w.Count()-1, 0)
						w.ScrollToBottom()
					}
					return nil
				}}
			}
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			return runtime.ScrollByMsg{Delta: -wheelStep}
		case buttons&tcell.WheelDown != 0:
			return runtime.ScrollByMsg{Delta: wheelStep}
		}
	}
	return nil
}

func (v *viewer) moveCursor(delta int) runtime.Message {
	return runtime.FuncMsg{Fn: func(w *scroll.Windower) error {
		if w.Empty() {
			return nil
		}
		v.cursor = min(max(v.cursor+delta, 0), w.Count()-1)
		w.ScrollToIndex(v.cursor, scroll.AlignAuto)
		return nil
	}}
}

func (v *viewer) jump(bottom bool) runtime.Message {
	return runtime.FuncMsg{Fn: func(w *scroll.Windower) error {
		if bottom {
			v.cursor = max(w.Count()-1, 0)
			w.ScrollToBottom()
			return nil
		}
		v.cursor = 0
		w.ScrollToTop()
		return nil
	}}
}

func (v *viewer) resize(w *scroll.Windower) error {
	v.screen.Sync()
	width, height := v.screen.Size()
	v.width = textWidth(width)
	if v.wrap {
		if err := v.list.Sync(); err != nil {
			return err
		}
	}
	w.Resize(float64(viewHeight(height)))
	return nil
}

func (v *viewer) render(frame runtime.Frame) {
	s := v.screen
	s.Clear()
	width, height := s.Size()
	view := viewHeight(height)
	snap := frame.Snapshot
	if snap.Empty() {
		drawLine(s, 0, 0, width, "(no items)", tcell.StyleDefault.Dim(true))
	} else {
		v.cursor = min(v.cursor, snap.Count-1)
		offset := snap.Viewport.ScrollOffset
		v.rows = v.list.Rows(v.rows[:0])
		for _, row := range v.rows {
			style := tcell.StyleDefault
			if row.Index == v.cursor {
				style = style.Reverse(true)
			}
			lines := v.lines(row.Item)
			top := int(row.Offset - offset)
			for i := 0; i < int(row.Height); i++ {
				y := top + i
				if y < 0 || y >= view {
					continue
				}
				text := ""
				if i < len(lines) {
					text = lines[i]
				}
				drawLine(s, 0, y, v.width, text, style)
			}
		}
		start, size := scroll.Thumb(snap.TotalHeight, snap.Viewport.ContainerHeight, offset, view, 1)
		for y := 0; y < view; y++ {
			r := '│'
			if y >= start && y < start+size {
				r = '█'
			}
			s.SetContent(width-1, y, r, nil, tcell.StyleDefault)
		}
	}
	drawLine(s, 0, height-1, width, v.status(snap), tcell.StyleDefault.Reverse(true))
	s.Show()
}

func (v *viewer) lines(item string) []string {
	if v.wrap {
		return vlist.Wrap(item, v.width)
	}
	return []string{vlist.Truncate(item, v.width)}
}

func (v *viewer) status(snap scroll.Snapshot) string {
	text := fmt.Sprintf(" %d items  [%d,%d)  %g/%g", snap.Count,
		snap.Range.Start, snap.Range.End, snap.Viewport.ScrollOffset, snap.TotalHeight)
	if v.list.Windower().Follow() {
		text += "  follow"
	}
	if err := v.list.Err(); err != nil {
		text += "  " + err.Error()
	}
	return text
}

func drawLine(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	end := x + width
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < end; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func viewHeight(screenHeight int) int {
	return max(screenHeight-1, 0)
}

func textWidth(screenWidth int) int {
	return max(screenWidth-1, 1)
}
