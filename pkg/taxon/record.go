package taxon

// ResidualName is the name of the synthesized species record that
// accounts for occurrences not covered by the listed top species.
const ResidualName = "Other species"

// Record is one aggregated row of an input table. The same shape is used
// for every level; ParentName references a record of the parent level of
// the table the record came from.
type Record struct {
	Level      Level
	Name       string
	ParentName string

	// OccurrenceCount is the number of occurrence rows in GBIF.
	OccurrenceCount int64

	// IndividualCount is the sum of reported individual counts.
	// Zero means unknown.
	IndividualCount int64

	// Rank is the top-N position for ranked tables, 0 otherwise.
	Rank int

	// Residual marks a synthesized "Other species" record.
	Residual bool
}

// CountryRecord is one row of the phylum-by-country table.
type CountryRecord struct {
	Phylum          string
	Country         string
	OccurrenceCount int64
	Rank            int
}

// CommonName maps a scientific name to a vernacular name.
type CommonName struct {
	Name        string
	CommonName  string `yaml:"common_name" json:"common_name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Table holds all records of one level. ParentLevel is the level
// referenced by the records' ParentName; it is Unknown for the root table.
type Table struct {
	Level       Level
	ParentLevel Level
	Records     []Record
}

// Tables is the whole immutable data set of a session.
type Tables struct {
	Levels      map[Level]*Table
	Countries   []CountryRecord
	CommonNames map[Level]map[string]CommonName
}

// NewTables creates an empty data set.
func NewTables() *Tables {
	return &Tables{
		Levels:      make(map[Level]*Table),
		CommonNames: make(map[Level]map[string]CommonName),
	}
}

// AddCommonName registers a common name for a scientific name at a level.
func (t *Tables) AddCommonName(l Level, cn CommonName) {
	if _, ok := t.CommonNames[l]; !ok {
		t.CommonNames[l] = make(map[string]CommonName)
	}
	t.CommonNames[l][cn.Name] = cn
}
