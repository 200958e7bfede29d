// Package source loads item collections for virtual lists.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MaxLineBytes bounds a single line read by Lines.
const MaxLineBytes = 4 << 20

// Lines reads r and returns one item per line.
func Lines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// Block is one top-level markdown block.
type Block struct {
	Kind string
	Text string
}

// Markdown splits src into its top-level blocks (headings, paragraphs, lists,
// code blocks...). Block text is the block's source, from the start of its first
// line up to the next block, so fences and setext underlines are kept.
// Every top-level node yields exactly one block.
func Markdown(src []byte) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var (
		kinds  []string
		starts []int
	)
	cursor := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		start, end := blockBounds(src, n, cursor)
		kinds = append(kinds, n.Kind().String())
		starts = append(starts, start)
		cursor = max(end, start)
	}
	blocks := make([]Block, len(starts))
	for i, start := range starts {
		stop := len(src)
		if i+1 < len(starts) {
			stop = max(starts[i+1], start)
		}
		blocks[i] = Block{
			Kind: kinds[i],
			Text: strings.TrimRight(string(src[start:stop]), " \t\r\n"),
		}
	}
	return blocks
}

// Texts returns the text of every block.
func Texts(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text
	}
	return out
}

// blockBounds returns the offset of the first line of top-level node n and the
// earliest offset the next block can start at. cursor is the previous block's end.
func blockBounds(src []byte, n ast.Node, cursor int) (start, end int) {
	first, last, ok := blockSpan(n)
	fenced := n.Kind() == ast.KindFencedCodeBlock
	switch {
	case !ok:
		// thematic breaks, empty fences and empty headings carry no content lines
		start = skipBlank(src, cursor)
		end = nextLine(src, start)
	case fenced:
		// the opening fence is the line above the first content line
		start = lineStart(src, lineStart(src, first)-1)
		end = nextLine(src, last-1)
	default:
		start = lineStart(src, first)
		end = nextLine(src, last-1)
		if n.Kind() == ast.KindHeading && !bytes.HasPrefix(bytes.TrimLeft(src[start:], " "), []byte("#")) {
			end = nextLine(src, end) // setext underline
		}
	}
	if fenced && isFence(src, end) {
		end = nextLine(src, end)
	}
	if html, ok := n.(*ast.HTMLBlock); ok && html.HasClosure() {
		end = max(end, nextLine(src, html.ClosureLine.Start))
	}
	return start, end
}

func blockSpan(n ast.Node) (start, stop int, ok bool) {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		start = lines.At(0).Start
		stop = lines.At(lines.Len() - 1).Stop
		ok = true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		s, e, cok := blockSpan(c)
		if !cok {
			continue
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > stop {
			stop = e
		}
		ok = true
	}
	return start, stop, ok
}

func lineStart(src []byte, p int) int {
	if p <= 0 {
		return 0
	}
	p = min(p, len(src))
	return bytes.LastIndexByte(src[:p], '\n') + 1
}

func nextLine(src []byte, p int) int {
	if p < 0 {
		p = 0
	}
	if p >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[p:], '\n'); i >= 0 {
		return p + i + 1
	}
	return len(src)
}

func skipBlank(src []byte, p int) int {
	for p < len(src) {
		next := nextLine(src, p)
		if len(bytes.TrimSpace(src[p:next])) != 0 {
			return p
		}
		p = next
	}
	return len(src)
}

func isFence(src []byte, p int) bool {
	if p >= len(src) {
		return false
	}
	line := bytes.TrimLeft(src[p:nextLine(src, p)], " ")
	return bytes.HasPrefix(line, []byte("```")) || bytes.HasPrefix(line, []byte("~~~"))
}

// Generate returns n synthetic rows of varying length.
func Generate(n int) []string {
	if n < 0 {
		n = 0
	}
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("row %d %s", i, strings.Repeat("lorem ipsum ", i%5))
	}
	return rows
}
