package layout

import "math"

const (
	minPercent = 0.01
	maxPercent = 100.0
)

// linearFractions returns count/total for every count. A zero total
// splits the row evenly.
func linearFractions(counts []int64, total int64) []float64 {
	res := make([]float64, len(counts))
	if len(counts) == 0 {
		return res
	}
	if total <= 0 {
		for i := range res {
			res[i] = 1 / float64(len(counts))
		}
		return res
	}
	for i, c := range counts {
		res[i] = float64(c) / float64(total)
	}
	return res
}

// logFractions maps percentages to widths on a logarithmic scale.
// Percentages are clamped to [0.01, 100], mapped linearly from
// log10 space onto [0, 1] and normalized so the fractions sum to 1.
// Falls back to linear fractions if every mapped width is zero.
func logFractions(counts []int64, total int64) []float64 {
	lin := linearFractions(counts, total)
	res := make([]float64, len(lin))
	lo, hi := math.Log10(minPercent), math.Log10(maxPercent)

	var sum float64
	for i, f := range lin {
		p := math.Min(math.Max(f*100, minPercent), maxPercent)
		res[i] = (math.Log10(p) - lo) / (hi - lo)
		sum += res[i]
	}
	if sum <= 0 {
		return lin
	}
	for i := range res {
		res[i] /= sum
	}
	return res
}

// tile converts fractions of a row into segment positions. The last
// segment absorbs rounding so the segments end exactly at x+width.
func tile(fractions []float64, x, width float64) (xs, ws []float64) {
	xs = make([]float64, len(fractions))
	ws = make([]float64, len(fractions))
	cur := x
	for i, f := range fractions {
		xs[i] = cur
		if i == len(fractions)-1 {
			ws[i] = x + width - cur
			break
		}
		ws[i] = f * width
		cur += ws[i]
	}
	return xs, ws
}
