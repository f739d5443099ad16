// Package palette assigns stable fill colors to taxa.
package palette

import (
	"hash/fnv"

	"github.com/gnames/gbiftree/pkg/taxon"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ResidualColor is used for synthesized "Other species" segments.
const ResidualColor = "#b3b3b3"

// Palette caches name → color assignments. It is not safe for concurrent
// use; the view mutates it only from the interaction loop.
type Palette struct {
	cache     map[string]string
	chroma    float64
	lightness float64
}

// New creates an empty Palette.
func New() *Palette {
	return &Palette{
		cache:     make(map[string]string),
		chroma:    0.45,
		lightness: 0.68,
	}
}

// Color returns the fill color of a record. Hues are derived from the
// name, so a taxon keeps its color across sessions and expansions.
func (p *Palette) Color(r taxon.Record) string {
	if r.Residual {
		return ResidualColor
	}
	key := r.Level.String() + "|" + r.Name
	if c, ok := p.cache[key]; ok {
		return c
	}

	h := fnv.New32a()
	h.Write([]byte(r.Name))
	hue := float64(h.Sum32() % 360)

	res := colorful.Hcl(hue, p.chroma, p.lightness).Clamped().Hex()
	p.cache[key] = res
	return res
}

// TextColor returns black or white, whichever reads better on the fill.
func TextColor(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Len returns the number of cached colors.
func (p *Palette) Len() int {
	return len(p.cache)
}
