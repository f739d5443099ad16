// Package expand implements the expansion state machine of the taxonomy
// view. A State records which nodes are open together with the occurrence
// count each node had when it was opened.
//
// State is a value: Toggle and ToggleIn return a new State and never
// modify the receiver. At most one node is open per level, and opening a
// node closes everything at its level and below, so the open nodes always
// form a single path from the root.
package expand

import (
	"cmp"
	"maps"
	"slices"

	"github.com/gnames/gbiftree/pkg/taxon"
)

// Key identifies a node of the taxonomy view.
type Key struct {
	Level taxon.Level
	Name  string
}

// Entry is an open node with the occurrence count captured at click time.
type Entry struct {
	Key
	Count int64
}

// State is the set of open nodes. The zero value is the initial, fully
// collapsed state.
type State struct {
	open map[Key]int64
}

// New returns an empty State.
func New() State {
	return State{}
}

// Toggle opens or closes a node.
//
// If the node is open, it and every open node at deeper levels are closed.
// Otherwise every open node at the same or deeper levels is closed and the
// node is opened with the given click-time count.
func (s State) Toggle(level taxon.Level, name string, count int64) State {
	k := Key{Level: level, Name: name}
	res := s.clone()
	if _, ok := res.open[k]; ok {
		delete(res.open, k)
		res.closeFrom(level, false)
		return res
	}
	res.closeFrom(level, true)
	res.open[k] = count
	return res
}

// ToggleIn toggles a node that is reached through the given ancestors,
// ordered from the root. Ancestors that are not open yet are opened
// first, closing whatever lineage was open at their levels, so the result
// never mixes two lineages.
func (s State) ToggleIn(lineage []Entry, key Key, count int64) State {
	res := s.clone()
	for _, a := range lineage {
		if _, ok := res.open[a.Key]; ok {
			continue
		}
		res.closeFrom(a.Level, true)
		res.open[a.Key] = a.Count
	}
	return res.Toggle(key.Level, key.Name, count)
}

// IsExpanded is true if the node is open.
func (s State) IsExpanded(level taxon.Level, name string) bool {
	_, ok := s.open[Key{Level: level, Name: name}]
	return ok
}

// ExpandedChildOf returns the name of the open node at a level.
func (s State) ExpandedChildOf(level taxon.Level) (string, bool) {
	for k := range s.open {
		if k.Level == level {
			return k.Name, true
		}
	}
	return "", false
}

// CountAt returns the click-time occurrence count of an open node.
func (s State) CountAt(level taxon.Level, name string) (int64, bool) {
	res, ok := s.open[Key{Level: level, Name: name}]
	return res, ok
}

// Entries returns open nodes ordered from the root.
func (s State) Entries() []Entry {
	res := make([]Entry, 0, len(s.open))
	for k, v := range s.open {
		res = append(res, Entry{Key: k, Count: v})
	}
	slices.SortFunc(res, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Level, b.Level),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return res
}

// Len returns the number of open nodes.
func (s State) Len() int {
	return len(s.open)
}

func (s State) clone() State {
	res := State{open: maps.Clone(s.open)}
	if res.open == nil {
		res.open = make(map[Key]int64)
	}
	return res
}

// closeFrom removes open nodes deeper than level, and at the level
// itself when inclusive is true.
func (s State) closeFrom(level taxon.Level, inclusive bool) {
	for k := range s.open {
		if k.Level.Deeper(level) || (inclusive && k.Level == level) {
			delete(s.open, k)
		}
	}
}
