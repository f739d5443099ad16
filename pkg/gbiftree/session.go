// Package gbiftree ties the taxonomy view together: it keeps the
// expansion state of a session and turns it into a View after every
// interaction.
package gbiftree

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/expand"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/palette"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
)

// View is a complete description of one frame of the taxonomy view.
type View struct {
	Rows   []layout.Row
	Width  float64
	Height float64

	// Phylum is the expanded phylum, if any. Countries are its top
	// countries.
	Phylum    string
	Countries []layout.Slice

	// Expanded holds the open nodes from the root down, including a
	// leaf that draws no row of its own.
	Expanded []expand.Entry

	// Palette provides fill colors of segments.
	Palette *palette.Palette
}

// Session is a single-user interaction with the taxonomy view. It is not
// safe for concurrent use: events are handled one at a time, and each one
// runs to completion before the next.
type Session struct {
	engine  *layout.Engine
	palette *palette.Palette
	state   expand.State
	view    View
}

// NewSession creates a session with everything collapsed.
func NewSession(engine *layout.Engine) *Session {
	res := &Session{
		engine:  engine,
		palette: palette.New(),
		state:   expand.New(),
	}
	res.recompute()
	return res
}

// View returns the current frame.
func (s *Session) View() View {
	return s.view
}

// State returns the current expansion state.
func (s *Session) State() expand.State {
	return s.state
}

// Click toggles a visible node. Ancestors of the node become the open
// lineage, so clicking a node of another branch collapses the previous
// one. The whole view is recomputed afterwards.
func (s *Session) Click(level taxon.Level, name string) error {
	row, seg, ok := s.find(level, name)
	if !ok {
		return NodeNotVisibleError(level, name)
	}
	s.state = s.state.ToggleIn(
		row.Lineage,
		seg.Key(),
		seg.Record.OccurrenceCount,
	)
	slog.Debug("Toggled node",
		"level", level.String(),
		"name", name,
		"open", s.state.Len(),
	)
	s.recompute()
	return nil
}

// Hover returns the tooltip of a visible node.
func (s *Session) Hover(level taxon.Level, name string) (string, bool) {
	row, seg, ok := s.find(level, name)
	if !ok {
		return "", false
	}
	return seg.Tooltip(row.ParentName()), true
}

func (s *Session) find(
	level taxon.Level,
	name string,
) (layout.Row, layout.Segment, bool) {
	for _, row := range s.view.Rows {
		if row.Level != level {
			continue
		}
		for _, seg := range row.Segments {
			if seg.Record.Name == name {
				return row, seg, true
			}
		}
	}
	return layout.Row{}, layout.Segment{}, false
}

func (s *Session) recompute() {
	rows := s.engine.ComputeVisibleTree(s.state)
	v := View{
		Rows:     rows,
		Width:    s.engine.Width(),
		Height:   s.engine.Height(rows),
		Palette:  s.palette,
		Expanded: s.state.Entries(),
	}
	if phylum, ok := s.state.ExpandedChildOf(taxon.Phylum); ok {
		v.Phylum = phylum
		v.Countries = s.engine.CountrySlices(phylum)
	}
	s.view = v
}

// NodeNotVisibleError is returned for events on nodes that are not on
// screen.
func NodeNotVisibleError(level taxon.Level, name string) error {
	msg := "No visible <em>%s</em> named <em>%s</em>"
	vars := []any{level.String(), name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NodeNotVisibleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s %q is not visible",
			fn.Name(), level, name),
	}
}
