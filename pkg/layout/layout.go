// Package layout turns the hierarchy and the expansion state into rows of
// proportional segments. A row is drawn under every expanded node, and the
// segments of a row always tile the row exactly.
package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/expand"
	"github.com/gnames/gbiftree/pkg/hierarchy"
	"github.com/gnames/gbiftree/pkg/names"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
)

// Segment is a single bar of a row.
type Segment struct {
	Record taxon.Record

	// DisplayName is the label of the segment, with a common name when
	// one is known.
	DisplayName string
	Description string

	// Fraction is the share of the row width occupied by the segment.
	Fraction float64
	X, Width float64

	// Percent is the share of the row total in percent.
	Percent float64

	// PercentOfParent is the share of the parent's click-time count.
	PercentOfParent float64

	Expanded bool
}

// Key returns the expansion key of the segment.
func (s Segment) Key() expand.Key {
	return expand.Key{Level: s.Record.Level, Name: s.Record.Name}
}

// Label is the percentage text drawn inside the segment.
func (s Segment) Label() string {
	return fmt.Sprintf("%.1f%%", s.PercentOfParent)
}

// Tooltip is the hover text of the segment.
func (s Segment) Tooltip(parent string) string {
	var b strings.Builder
	b.WriteString(s.DisplayName)
	if s.Description != "" {
		b.WriteString("\n" + s.Description)
	}
	b.WriteString("\nOccurrences: " + humanize.Comma(s.Record.OccurrenceCount))
	if s.Record.IndividualCount > 0 {
		b.WriteString(
			"\nIndividuals: " + humanize.Comma(s.Record.IndividualCount),
		)
	}
	if parent != "" {
		fmt.Fprintf(&b, "\n%s of %s", s.Label(), parent)
	}
	fmt.Fprintf(&b, "\n%.1f%% of the row", s.Percent)
	return b.String()
}

// Row is a horizontal band of segments sharing one parent.
type Row struct {
	Level taxon.Level
	Depth int

	// Lineage holds the open ancestors of the row from the root down.
	// It is empty for the root row.
	Lineage []expand.Entry

	// Total is the denominator of Percent of every segment.
	Total int64

	X, Y, Width, Height float64
	Segments            []Segment
}

// Parent returns the node the row belongs to.
func (r Row) Parent() (expand.Entry, bool) {
	if len(r.Lineage) == 0 {
		return expand.Entry{}, false
	}
	return r.Lineage[len(r.Lineage)-1], true
}

// ParentName returns the name of the parent node or an empty string.
func (r Row) ParentName() string {
	p, _ := r.Parent()
	return p.Name
}

// Engine computes the visible rows of a taxonomy view.
type Engine struct {
	idx      *hierarchy.Index
	resolver *names.Resolver

	width     float64
	rowHeight float64
	rowGap    float64
	indent    float64
	logScale  bool
}

// Option configures an Engine.
type Option func(*Engine)

// OptWidth sets the width of the root row.
func OptWidth(w float64) Option {
	return func(e *Engine) {
		if w > 0 {
			e.width = w
		}
	}
}

// OptRowHeight sets the height of a row.
func OptRowHeight(h float64) Option {
	return func(e *Engine) {
		if h > 0 {
			e.rowHeight = h
		}
	}
}

// OptRowGap sets the vertical space between rows.
func OptRowGap(g float64) Option {
	return func(e *Engine) {
		if g >= 0 {
			e.rowGap = g
		}
	}
}

// OptIndent sets the horizontal indent per depth.
func OptIndent(i float64) Option {
	return func(e *Engine) {
		if i >= 0 {
			e.indent = i
		}
	}
}

// OptLogScale switches segment widths to a logarithmic scale.
func OptLogScale(b bool) Option {
	return func(e *Engine) {
		e.logScale = b
	}
}

// OptResolver sets the common-name resolver used for display names.
func OptResolver(r *names.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// New creates an Engine for the given hierarchy.
func New(idx *hierarchy.Index, opts ...Option) *Engine {
	res := &Engine{
		idx:       idx,
		width:     1000,
		rowHeight: 40,
		rowGap:    8,
		indent:    0,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Width returns the width of the root row.
func (e *Engine) Width() float64 {
	return e.width
}

// Height returns the vertical extent of the given rows.
func (e *Engine) Height(rows []Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	last := rows[len(rows)-1]
	return last.Y + last.Height
}

// ComputeVisibleTree returns the rows visible in the given state, in
// drawing order. The root row comes first, and every expanded segment is
// followed by the rows of its descendants. Expanded nodes at the leaf
// level produce no row. A node whose children cannot be computed is
// logged and its subtree is skipped.
func (e *Engine) ComputeVisibleTree(st expand.State) []Row {
	root, ok := e.idx.Root()
	if !ok {
		return nil
	}
	var res []Row
	e.walk(st, root, nil, &res)
	return res
}

func (e *Engine) walk(
	st expand.State,
	level taxon.Level,
	lineage []expand.Entry,
	rows *[]Row,
) {
	row, err := e.Row(st, level, lineage, len(*rows))
	if err != nil {
		slog.Warn("Skipping subtree",
			"level", level.String(),
			"parent", parentName(lineage),
			"error", err,
		)
		return
	}
	if len(row.Segments) == 0 {
		return
	}
	*rows = append(*rows, row)

	child, ok := e.idx.ChildLevel(level)
	if !ok {
		return
	}
	for _, seg := range row.Segments {
		if !seg.Expanded {
			continue
		}
		count, _ := st.CountAt(level, seg.Record.Name)
		next := append(lineage[:len(lineage):len(lineage)], expand.Entry{
			Key:   seg.Key(),
			Count: count,
		})
		e.walk(st, child, next, rows)
	}
}

// Row computes the row of a level under the last node of the lineage.
// The index sets the vertical position of the row. It returns
// NotFoundError for a level the data set does not know.
func (e *Engine) Row(
	st expand.State,
	level taxon.Level,
	lineage []expand.Entry,
	index int,
) (Row, error) {
	parent := parentName(lineage)
	recs, err := e.idx.ChildrenOf(level, parent)
	if err != nil {
		return Row{}, err
	}

	depth := len(lineage)
	res := Row{
		Level:   level,
		Depth:   depth,
		Lineage: lineage,
		X:       float64(depth) * e.indent,
		Y:       float64(index) * (e.rowHeight + e.rowGap),
		Height:  e.rowHeight,
	}
	res.Width = e.width - res.X
	if res.Width <= 0 {
		res.Width = e.width
		res.X = 0
	}
	if len(recs) == 0 {
		return res, nil
	}

	counts := make([]int64, len(recs))
	for i := range recs {
		counts[i] = recs[i].OccurrenceCount
	}
	res.Total = e.rowTotal(level, parent, counts)

	clickCount := res.Total
	if len(lineage) > 0 && lineage[len(lineage)-1].Count > 0 {
		clickCount = lineage[len(lineage)-1].Count
	}

	var fractions []float64
	if e.logScale {
		fractions = logFractions(counts, res.Total)
	} else {
		fractions = linearFractions(counts, res.Total)
	}
	xs, ws := tile(fractions, res.X, res.Width)

	res.Segments = make([]Segment, len(recs))
	for i, r := range recs {
		res.Segments[i] = Segment{
			Record:          r,
			DisplayName:     e.resolver.DisplayName(r.Name, r.Level),
			Description:     e.resolver.Description(r.Name, r.Level),
			Fraction:        fractions[i],
			X:               xs[i],
			Width:           ws[i],
			Percent:         percent(r.OccurrenceCount, res.Total),
			PercentOfParent: percent(r.OccurrenceCount, clickCount),
			Expanded:        st.IsExpanded(r.Level, r.Name),
		}
	}
	return res, nil
}

// rowTotal prefers the recorded count of the parent when it agrees with
// the children, and the sum of the children otherwise.
func (e *Engine) rowTotal(
	level taxon.Level,
	parent string,
	counts []int64,
) int64 {
	var sum int64
	for _, c := range counts {
		sum += c
	}
	parentLevel, ok := e.idx.ParentLevel(level)
	if !ok {
		return sum
	}
	recorded, ok := e.idx.Total(parentLevel, parent)
	if !ok || recorded == sum {
		return sum
	}
	err := InconsistentAggregateError(level, parent, recorded, sum)
	slog.Debug("Using sum of children", "error", err)
	return sum
}

// IsInconsistentAggregate reports whether err was produced by
// InconsistentAggregateError.
func IsInconsistentAggregate(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) &&
		gnErr.Code == errcode.InconsistentAggregateError
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func parentName(lineage []expand.Entry) string {
	if len(lineage) == 0 {
		return ""
	}
	return lineage[len(lineage)-1].Name
}
