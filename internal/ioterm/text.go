// Package ioterm shows the taxonomy view in a terminal and runs an
// interactive loop that feeds click and hover events to a session.
package ioterm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/layout"
)

const (
	fullBlock = "█"
	thinBlock = "▏"
)

type textRenderer struct {
	barWidth  int
	nameWidth int
}

// Option configures the text renderer.
type Option func(*textRenderer)

// OptBarWidth sets the number of columns of a bar at 100%.
func OptBarWidth(i int) Option {
	return func(r *textRenderer) {
		if i > 0 {
			r.barWidth = i
		}
	}
}

// OptNameWidth sets the column width reserved for display names.
func OptNameWidth(i int) Option {
	return func(r *textRenderer) {
		if i > 0 {
			r.nameWidth = i
		}
	}
}

// New creates a renderer that draws every row as a list of horizontal
// bars, one line per segment.
func New(opts ...Option) gbiftree.Renderer {
	res := &textRenderer{barWidth: 40, nameWidth: 36}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (r *textRenderer) Render(w io.Writer, v gbiftree.View) error {
	bw := bufio.NewWriter(w)
	if len(v.Rows) == 0 {
		fmt.Fprintln(bw, "No data.")
		return bw.Flush()
	}
	for _, row := range v.Rows {
		r.renderRow(bw, row)
	}
	if len(v.Countries) > 0 {
		fmt.Fprintf(bw, "\nTop countries of %s:\n", v.Phylum)
		for _, s := range v.Countries {
			fmt.Fprintf(bw, "  %-4s %s %5.1f%%\n",
				s.Country, r.bar(s.Fraction), s.Fraction*100)
		}
	}
	return bw.Flush()
}

func (r *textRenderer) renderRow(w io.Writer, row layout.Row) {
	pad := strings.Repeat("  ", row.Depth)
	title := row.Level.Plural()
	if parent := row.ParentName(); parent != "" {
		title += " of " + parent
	}
	fmt.Fprintf(w, "%s%s (%s)\n", pad, title, humanize.Comma(row.Total))

	for _, s := range row.Segments {
		mark := "[+]"
		if s.Expanded {
			mark = "[-]"
		}
		fmt.Fprintf(w, "%s  %s %s %s %s\n",
			pad, mark, r.name(s.DisplayName), r.bar(s.Fraction), s.Label())
	}
}

func (r *textRenderer) name(s string) string {
	n := utf8.RuneCountInString(s)
	if n > r.nameWidth {
		runes := []rune(s)
		return string(runes[:r.nameWidth-1]) + "…"
	}
	return s + strings.Repeat(" ", r.nameWidth-n)
}

// bar draws a fraction of barWidth columns. Nonzero fractions get at
// least a thin block.
func (r *textRenderer) bar(f float64) string {
	n := int(f*float64(r.barWidth) + 0.5)
	if n == 0 && f > 0 {
		return thinBlock + strings.Repeat(" ", r.barWidth-1)
	}
	if n > r.barWidth {
		n = r.barWidth
	}
	return strings.Repeat(fullBlock, n) + strings.Repeat(" ", r.barWidth-n)
}
