// Package hierarchy provides a read-only parent → children index over the
// loaded taxonomy tables.
//
// The index works with whichever levels are present in the data set. The
// child level of a level is the shallowest deeper level whose table
// references it as the parent level. A minimal data set (kingdom, phylum,
// species-by-phylum) therefore gives the chain kingdom → phylum → species,
// while a full one gives all seven levels.
package hierarchy

import (
	"cmp"
	"slices"

	"github.com/gnames/gbiftree/pkg/taxon"
)

// Index is an immutable lookup structure built once per session.
type Index struct {
	root     taxon.Level
	chain    []taxon.Level
	parentOf map[taxon.Level]taxon.Level
	childOf  map[taxon.Level]taxon.Level

	// children keeps sorted records per level and parent name.
	children map[taxon.Level]map[string][]taxon.Record

	// totals keeps occurrence counts per level and name, summed across
	// parents.
	totals map[taxon.Level]map[string]int64

	countries map[string][]taxon.CountryRecord
}

// New builds the index from loaded tables.
func New(t *taxon.Tables) *Index {
	idx := Index{
		parentOf:  make(map[taxon.Level]taxon.Level),
		childOf:   make(map[taxon.Level]taxon.Level),
		children:  make(map[taxon.Level]map[string][]taxon.Record),
		totals:    make(map[taxon.Level]map[string]int64),
		countries: make(map[string][]taxon.CountryRecord),
	}

	for _, l := range taxon.Levels() {
		tbl, ok := t.Levels[l]
		if !ok {
			continue
		}
		idx.addTable(tbl)
	}
	idx.buildChain()

	for _, c := range t.Countries {
		idx.countries[c.Phylum] = append(idx.countries[c.Phylum], c)
	}
	for k := range idx.countries {
		slices.SortFunc(idx.countries[k], func(a, b taxon.CountryRecord) int {
			return cmp.Or(
				cmp.Compare(a.Rank, b.Rank),
				cmp.Compare(b.OccurrenceCount, a.OccurrenceCount),
				cmp.Compare(a.Country, b.Country),
			)
		})
	}
	return &idx
}

func (idx *Index) addTable(tbl *taxon.Table) {
	l := tbl.Level
	idx.parentOf[l] = tbl.ParentLevel
	byParent := make(map[string][]taxon.Record)
	totals := make(map[string]int64)
	for _, r := range tbl.Records {
		byParent[r.ParentName] = append(byParent[r.ParentName], r)
		totals[r.Name] += r.OccurrenceCount
	}
	for k := range byParent {
		sortRecords(byParent[k])
	}
	idx.children[l] = byParent
	idx.totals[l] = totals
}

// buildChain links every table to the shallowest deeper table that
// references it, starting from the shallowest table.
func (idx *Index) buildChain() {
	for _, l := range taxon.Levels() {
		if _, ok := idx.children[l]; !ok {
			continue
		}
		if idx.root == taxon.Unknown {
			idx.root = l
		}
		p := idx.parentOf[l]
		if !p.Valid() || !l.Deeper(p) {
			continue
		}
		if _, ok := idx.childOf[p]; !ok {
			idx.childOf[p] = l
		}
	}

	if idx.root == taxon.Unknown {
		return
	}
	for l, ok := idx.root, true; ok; l, ok = idx.childOf[l] {
		idx.chain = append(idx.chain, l)
	}
}

// Root returns the shallowest level of the data set.
func (idx *Index) Root() (taxon.Level, bool) {
	return idx.root, idx.root != taxon.Unknown
}

// Levels returns the chain of levels reachable from the root.
func (idx *Index) Levels() []taxon.Level {
	return slices.Clone(idx.chain)
}

// ChildLevel returns the level whose records are children of level l.
// The second value is false at the leaf of the chain.
func (idx *Index) ChildLevel(l taxon.Level) (taxon.Level, bool) {
	res, ok := idx.childOf[l]
	return res, ok
}

// ParentLevel returns the level referenced by the table of level l.
func (idx *Index) ParentLevel(l taxon.Level) (taxon.Level, bool) {
	res, ok := idx.parentOf[l]
	return res, ok && res.Valid()
}

// ChildrenOf returns records of the given level that belong to the
// parent, sorted by occurrence count descending with name as a
// tie-breaker. For the root table the parent name is ignored and all
// records are returned. At the species level a residual "Other species"
// record is added when the listed species do not cover the parent's
// occurrence count.
//
// It returns NotFoundError for an unrecognized level. A recognized level
// without data yields an empty result.
func (idx *Index) ChildrenOf(
	level taxon.Level,
	parentName string,
) ([]taxon.Record, error) {
	if !level.Valid() {
		return nil, taxon.NotFoundError(int(level))
	}

	byParent, ok := idx.children[level]
	if !ok {
		return nil, nil
	}

	parentLevel := idx.parentOf[level]
	if !parentLevel.Valid() {
		var res []taxon.Record
		for _, recs := range byParent {
			res = append(res, recs...)
		}
		sortRecords(res)
		return res, nil
	}

	res := slices.Clone(byParent[parentName])
	if level == taxon.Species {
		res = idx.addResidual(res, parentLevel, parentName)
	}
	return res, nil
}

func (idx *Index) addResidual(
	recs []taxon.Record,
	parentLevel taxon.Level,
	parentName string,
) []taxon.Record {
	total, ok := idx.Total(parentLevel, parentName)
	if !ok {
		return recs
	}

	var sum int64
	for _, r := range recs {
		sum += r.OccurrenceCount
	}
	rest := total - sum
	if rest <= 0 {
		return recs
	}

	recs = append(recs, taxon.Record{
		Level:           taxon.Species,
		Name:            taxon.ResidualName,
		ParentName:      parentName,
		OccurrenceCount: rest,
		Residual:        true,
	})
	sortRecords(recs)
	return recs
}

// Total returns the recorded occurrence count of a name at a level,
// summed over all its parents. The second value is false if the name is
// not in the table.
func (idx *Index) Total(level taxon.Level, name string) (int64, bool) {
	totals, ok := idx.totals[level]
	if !ok {
		return 0, false
	}
	res, ok := totals[name]
	return res, ok
}

// Countries returns the top countries of a phylum ordered by rank.
func (idx *Index) Countries(phylum string) []taxon.CountryRecord {
	return slices.Clone(idx.countries[phylum])
}

func sortRecords(recs []taxon.Record) {
	slices.SortFunc(recs, func(a, b taxon.Record) int {
		return cmp.Or(
			cmp.Compare(b.OccurrenceCount, a.OccurrenceCount),
			cmp.Compare(a.Name, b.Name),
		)
	})
}
