package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-vlist/scroll"
)

type rangeOptions struct {
	count      int
	itemHeight float64
	alternate  string
	container  float64
	buffer     int
	offset     float64
	index      int
	align      string
	strict     bool
}

func newRangeCmd() *cobra.Command {
	var opts rangeOptions
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print the visible range for a viewport",
		Long: `Compute the half-open range of item indices to render for a viewport.

Heights are either fixed (--item-height) or alternate between two values for even
and odd indices (--alternate even,odd). With --index the offset is derived by
scrolling that item into view using --align.

Output format:
  start=<s> end=<e> total=<total height> offset=<clamped offset>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := runRange(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "Number of items")
	cmd.Flags().Float64Var(&opts.itemHeight, "item-height", 1, "Fixed item height")
	cmd.Flags().StringVar(&opts.alternate, "alternate", "", "Even and odd item heights, e.g. 100,50")
	cmd.Flags().Float64VarP(&opts.container, "container", "c", 0, "Container height")
	cmd.Flags().IntVarP(&opts.buffer, "buffer", "b", scroll.DefaultBuffer, "Extra items on each side")
	cmd.Flags().Float64VarP(&opts.offset, "offset", "o", 0, "Scroll offset")
	cmd.Flags().IntVarP(&opts.index, "index", "i", -1, "Scroll this item into view instead of using --offset")
	cmd.Flags().StringVar(&opts.align, "align", "start", "Alignment for --index: start, center, end or auto")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject invalid item heights instead of clamping")
	return cmd
}

func runRange(opts rangeOptions) (string, error) {
	align, ok := scroll.ParseAlign(opts.align)
	if !ok {
		return "", fmt.Errorf("unknown alignment %q", opts.align)
	}
	spec := scroll.Fixed(opts.itemHeight)
	if opts.alternate != "" {
		even, odd, err := parsePair(opts.alternate)
		if err != nil {
			return "", err
		}
		spec = scroll.Variable(func(i int) float64 {
			if i%2 == 0 {
				return even
			}
			return odd
		})
	}
	policy := scroll.ClampHeights
	if opts.strict {
		policy = scroll.StrictHeights
	}
	w, err := scroll.NewWindower(
		scroll.WithCount(opts.count),
		scroll.WithHeightSpec(spec),
		scroll.WithHeightPolicy(policy),
		scroll.WithContainerHeight(opts.container),
		scroll.WithBuffer(opts.buffer),
	)
	if err != nil {
		return "", err
	}
	if opts.index >= 0 {
		w.ScrollToIndex(opts.index, align)
	} else {
		w.SetScrollOffset(opts.offset)
	}
	snap := w.Snapshot()
	return fmt.Sprintf("start=%d end=%d total=%g offset=%g",
		snap.Range.Start, snap.Range.End, snap.TotalHeight, snap.Viewport.ScrollOffset), nil
}

func parsePair(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("alternate heights %q: want even,odd", s)
	}
	even, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("alternate heights %q: %w", s, err)
	}
	odd, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("alternate heights %q: %w", s, err)
	}
	return even, odd, nil
}
