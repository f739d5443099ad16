// Package ioload reads the aggregate GBIF tables and the optional common
// names from a data directory.
package ioload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gnlib"
	"gopkg.in/yaml.v3"
)

type loader struct {
	dir string
}

// New creates a Loader of the tables in dir.
func New(dir string) gbiftree.Loader {
	return &loader{dir: dir}
}

// Load reads every table present in the data directory. Phyla and
// species tables are required, all others are optional. When the kingdom
// table is absent, kingdoms are derived from the phyla.
func (l *loader) Load() (*taxon.Tables, error) {
	res := taxon.NewTables()

	for _, lvl := range taxon.Levels() {
		tbl, err := l.loadLevel(lvl)
		if err != nil {
			return nil, err
		}
		if tbl == nil {
			continue
		}
		res.Levels[lvl] = tbl
		slog.Info("Loaded table",
			"level", lvl.String(),
			"parent", tbl.ParentLevel.String(),
			"records", len(tbl.Records),
		)
	}

	phyla := res.Levels[taxon.Phylum]
	_, ok := res.Levels[taxon.Kingdom]
	if !ok && phyla.ParentLevel == taxon.Kingdom {
		res.Levels[taxon.Kingdom] = deriveKingdoms(phyla)
		slog.Info("Derived kingdoms from phyla",
			"records", len(res.Levels[taxon.Kingdom].Records))
	}

	countries, err := l.loadCountries()
	if err != nil {
		return nil, err
	}
	res.Countries = countries

	if err = l.loadCommonNames(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *loader) loadLevel(lvl taxon.Level) (*taxon.Table, error) {
	path := filepath.Join(l.dir, lvl.FileName())
	rows, header, err := readCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		if lvl.Required() {
			return nil, MissingTableError(path)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if lvl.Required() {
			return nil, EmptyTableError(path)
		}
		slog.Warn("Ignoring empty table", "path", path)
		return nil, nil
	}

	cols, err := newColumns(path, lvl, header)
	if err != nil {
		return nil, err
	}

	res := &taxon.Table{Level: lvl, ParentLevel: cols.parentLevel}
	seen := make(map[[2]string]int)
	for i, row := range rows {
		line := i + 2
		r, err := cols.record(path, line, row)
		if err != nil {
			return nil, err
		}
		if r.Name == "" {
			slog.Warn("Skipping row without name", "path", path, "line", line)
			continue
		}
		if cols.parentLevel.Valid() && r.ParentName == "" {
			slog.Warn("Skipping row without parent", "path", path, "line", line)
			continue
		}

		key := [2]string{r.Name, r.ParentName}
		if idx, ok := seen[key]; ok {
			slog.Debug("Merging duplicate record",
				"path", path, "name", r.Name, "parent", r.ParentName)
			res.Records[idx].OccurrenceCount += r.OccurrenceCount
			res.Records[idx].IndividualCount += r.IndividualCount
			continue
		}
		seen[key] = len(res.Records)
		res.Records = append(res.Records, r)
	}
	return res, nil
}

func (l *loader) loadCountries() ([]taxon.CountryRecord, error) {
	path := filepath.Join(l.dir, taxon.CountriesFile)
	rows, header, err := readCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No country table", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx, err := columnIndex(path, header,
		"phylum", "country", "occurrence_count", "rank")
	if err != nil {
		return nil, err
	}

	var res []taxon.CountryRecord
	for i, row := range rows {
		line := i + 2
		cr := taxon.CountryRecord{
			Phylum:  gnlib.FixUtf8(strings.TrimSpace(row[idx["phylum"]])),
			Country: strings.TrimSpace(row[idx["country"]]),
		}
		if cr.Phylum == "" || cr.Country == "" {
			continue
		}
		if cr.OccurrenceCount, err = parseCount(row[idx["occurrence_count"]]); err != nil {
			return nil, MalformedTableError(path, line, err)
		}
		rank, err := parseCount(row[idx["rank"]])
		if err != nil {
			return nil, MalformedTableError(path, line, err)
		}
		cr.Rank = int(rank)
		res = append(res, cr)
	}
	return res, nil
}

// loadCommonNames reads the first common-names file found. YAML and JSON
// documents share the same layout, and the YAML decoder reads both.
func (l *loader) loadCommonNames(t *taxon.Tables) error {
	for _, f := range taxon.CommonNamesFiles {
		path := filepath.Join(l.dir, f)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ReadFileError(path, err)
		}

		var doc map[string]map[string]taxon.CommonName
		if err = yaml.Unmarshal(data, &doc); err != nil {
			return CommonNamesError(path, err)
		}

		var count int
		for partition, names := range doc {
			lvl, err := taxon.NewLevel(partition)
			if err != nil {
				return CommonNamesError(path,
					fmt.Errorf("unknown partition %q", partition))
			}
			for name, cn := range names {
				cn.Name = gnlib.FixUtf8(strings.TrimSpace(name))
				cn.CommonName = strings.TrimSpace(cn.CommonName)
				t.AddCommonName(lvl, cn)
				count++
			}
		}
		slog.Info("Loaded common names", "path", path, "names", count)
		return nil
	}
	return nil
}

func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		return nil, nil, ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, MalformedTableError(path, 1, err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, MalformedTableError(path, len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// columns locates the fields of a level table.
type columns struct {
	level       taxon.Level
	parentLevel taxon.Level
	name        int
	parent      int
	occurrence  int
	individual  int
	rank        int
}

// newColumns finds the name column of the level and the first column
// that names a level above it, which becomes the parent column. Columns
// of deeper levels only group the rows, as in a kingdom table grouped
// under phyla. They are ignored, and the grouped rows of a name are
// merged into one record by the caller.
func newColumns(path string, lvl taxon.Level, header []string) (columns, error) {
	res := columns{
		level:      lvl,
		name:       -1,
		parent:     -1,
		occurrence: -1,
		individual: -1,
		rank:       -1,
	}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch h {
		case "occurrence_count":
			res.occurrence = i
			continue
		case "individual_count":
			res.individual = i
			continue
		case "rank":
			res.rank = i
			continue
		}
		hl, err := taxon.NewLevel(h)
		if err != nil {
			continue
		}
		switch {
		case hl == lvl:
			res.name = i
		case hl.Deeper(lvl):
			continue
		case res.parent < 0:
			res.parent = i
			res.parentLevel = hl
		}
	}

	switch {
	case res.name < 0:
		return res, MalformedTableError(path, 0,
			fmt.Errorf("no %q column", lvl.String()))
	case res.occurrence < 0:
		return res, MalformedTableError(path, 0,
			errors.New(`no "occurrence_count" column`))
	case res.parent < 0 && lvl != taxon.Kingdom:
		return res, MalformedTableError(path, 0,
			fmt.Errorf("no parent column for %q", lvl.String()))
	}
	return res, nil
}

func (c columns) record(path string, line int, row []string) (taxon.Record, error) {
	var err error
	res := taxon.Record{
		Level: c.level,
		Name:  gnlib.FixUtf8(strings.TrimSpace(row[c.name])),
	}
	if c.parent >= 0 {
		res.ParentName = gnlib.FixUtf8(strings.TrimSpace(row[c.parent]))
	}
	if res.OccurrenceCount, err = parseCount(row[c.occurrence]); err != nil {
		return res, MalformedTableError(path, line, err)
	}
	if c.individual >= 0 {
		if res.IndividualCount, err = parseCount(row[c.individual]); err != nil {
			return res, MalformedTableError(path, line, err)
		}
	}
	if c.rank >= 0 {
		rank, err := parseCount(row[c.rank])
		if err != nil {
			return res, MalformedTableError(path, line, err)
		}
		res.Rank = int(rank)
	}
	return res, nil
}

func columnIndex(path string, header []string, names ...string) (map[string]int, error) {
	res := make(map[string]int)
	for i, h := range header {
		res[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, n := range names {
		if _, ok := res[n]; !ok {
			return nil, MalformedTableError(path, 0, fmt.Errorf("no %q column", n))
		}
	}
	return res, nil
}

// parseCount reads a non-negative count. Empty values are counts that
// BigQuery could not sum and are treated as zero.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	res, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if res < 0 {
		return 0, fmt.Errorf("negative count %d", res)
	}
	return res, nil
}

// deriveKingdoms sums phyla per kingdom.
func deriveKingdoms(phyla *taxon.Table) *taxon.Table {
	res := &taxon.Table{Level: taxon.Kingdom}
	idx := make(map[string]int)
	for _, p := range phyla.Records {
		name := p.ParentName
		i, ok := idx[name]
		if !ok {
			i = len(res.Records)
			idx[name] = i
			res.Records = append(res.Records, taxon.Record{
				Level: taxon.Kingdom,
				Name:  name,
			})
		}
		res.Records[i].OccurrenceCount += p.OccurrenceCount
		res.Records[i].IndividualCount += p.IndividualCount
	}
	return res
}
