package layout

import (
	"math"

	"github.com/gnames/gbiftree/pkg/taxon"
)

// Slice is a sector of the country pie of a phylum. Angles are in
// radians, clockwise from twelve o'clock.
type Slice struct {
	Country         string
	OccurrenceCount int64
	Fraction        float64
	StartAngle      float64
	EndAngle        float64
}

// CountrySlices returns the pie sectors of the top countries of a phylum.
// The sectors cover the full circle.
func (e *Engine) CountrySlices(phylum string) []Slice {
	return pieSlices(e.idx.Countries(phylum))
}

func pieSlices(recs []taxon.CountryRecord) []Slice {
	if len(recs) == 0 {
		return nil
	}
	counts := make([]int64, len(recs))
	var total int64
	for i, r := range recs {
		counts[i] = r.OccurrenceCount
		total += r.OccurrenceCount
	}
	fractions := linearFractions(counts, total)
	starts, spans := tile(fractions, 0, 2*math.Pi)

	res := make([]Slice, len(recs))
	for i, r := range recs {
		res[i] = Slice{
			Country:         r.Country,
			OccurrenceCount: r.OccurrenceCount,
			Fraction:        fractions[i],
			StartAngle:      starts[i],
			EndAngle:        starts[i] + spans[i],
		}
	}
	return res
}
