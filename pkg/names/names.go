// Package names resolves scientific names to display names using the
// optional common-names table.
package names

import (
	"fmt"

	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Resolver looks up common names. A nil or empty table is valid: every
// name then resolves to itself.
type Resolver struct {
	byLevel map[taxon.Level]map[string]taxon.CommonName
	parser  gnparser.GNparser
}

// New creates a Resolver for the common names of a data set.
func New(cn map[taxon.Level]map[string]taxon.CommonName) *Resolver {
	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &Resolver{
		byLevel: cn,
		parser:  gnparser.New(cfg),
	}
}

// DisplayName returns "{common name} ({scientific name})" when a common
// name is known and the scientific name unchanged otherwise.
func (r *Resolver) DisplayName(name string, level taxon.Level) string {
	cn, ok := r.Lookup(name, level)
	if !ok || cn.CommonName == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", cn.CommonName, name)
}

// Description returns the description of a name, or an empty string.
func (r *Resolver) Description(name string, level taxon.Level) string {
	cn, _ := r.Lookup(name, level)
	return cn.Description
}

// Lookup finds the common-name entry of a name. The partition of the
// given level is searched first, then all other partitions from the root
// down. If nothing matches, the lookup is repeated with the canonical
// form of the name, so names with authorships still resolve.
func (r *Resolver) Lookup(
	name string,
	level taxon.Level,
) (taxon.CommonName, bool) {
	if r == nil || len(r.byLevel) == 0 || name == "" {
		return taxon.CommonName{}, false
	}

	if cn, ok := r.find(name, level); ok {
		return cn, true
	}

	canonical := r.canonical(name)
	if canonical == "" || canonical == name {
		return taxon.CommonName{}, false
	}
	return r.find(canonical, level)
}

func (r *Resolver) find(name string, level taxon.Level) (taxon.CommonName, bool) {
	if cn, ok := r.byLevel[level][name]; ok {
		return cn, true
	}
	for _, l := range taxon.Levels() {
		if l == level {
			continue
		}
		if cn, ok := r.byLevel[l][name]; ok {
			return cn, true
		}
	}
	return taxon.CommonName{}, false
}

func (r *Resolver) canonical(name string) string {
	p := r.parser.ParseName(name)
	if !p.Parsed || p.Canonical == nil {
		return ""
	}
	return p.Canonical.Simple
}
