package taxon

// CountriesFile is the table of top countries per phylum.
const CountriesFile = "phyla-country.csv"

// CommonNamesFiles are the accepted names of the common-names table,
// in the order they are searched.
var CommonNamesFiles = []string{"common-names.yaml", "common-names.json"}

// FileName returns the CSV file name of the level's table.
func (l Level) FileName() string {
	if l == Kingdom {
		return "kingdom.csv"
	}
	return l.Plural() + ".csv"
}

// Required reports whether a data set cannot be used without the
// level's table.
func (l Level) Required() bool {
	return l == Phylum || l == Species
}
