// Package taxon contains the data model shared by the loader, the
// hierarchy index and the layout engine: taxonomic levels, aggregated
// occurrence records and common names.
package taxon

import (
	"strings"
)

// Level is a rank of the kingdom → species taxonomy.
// The zero value is not a valid level.
type Level int

const (
	Unknown Level = iota
	Kingdom
	Phylum
	Class
	Order
	Family
	Genus
	Species
)

var levelNames = map[Level]string{
	Kingdom: "kingdom",
	Phylum:  "phylum",
	Class:   "class",
	Order:   "order",
	Family:  "family",
	Genus:   "genus",
	Species: "species",
}

var levelPlurals = map[Level]string{
	Kingdom: "kingdoms",
	Phylum:  "phyla",
	Class:   "classes",
	Order:   "orders",
	Family:  "families",
	Genus:   "genera",
	Species: "species",
}

// Levels returns all valid levels ordered from the root to the leaf.
func Levels() []Level {
	return []Level{Kingdom, Phylum, Class, Order, Family, Genus, Species}
}

// NewLevel converts a level name (singular or plural, any case) to Level.
// It returns NotFoundError for unknown names.
func NewLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if s == levelNames[l] || s == levelPlurals[l] {
			return l, nil
		}
	}
	return Unknown, NotFoundError(s)
}

// Valid is true for the seven taxonomy levels.
func (l Level) Valid() bool {
	return l >= Kingdom && l <= Species
}

// String returns the singular name of the level, which is also the
// column name used in the input tables.
func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}

// Plural returns the plural form used for table files and common-name
// partitions.
func (l Level) Plural() string {
	if s, ok := levelPlurals[l]; ok {
		return s
	}
	return "unknown"
}

// Deeper is true if l is strictly below other.
func (l Level) Deeper(other Level) bool {
	return l > other
}
