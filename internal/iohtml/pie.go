package iohtml

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/palette"
	"github.com/gnames/gbiftree/pkg/taxon"
)

const pieRadius = 80.0

// renderPie draws the country sectors of the expanded phylum.
func renderPie(buf *bytes.Buffer, v gbiftree.View, pal *palette.Palette) {
	if len(v.Countries) == 0 {
		return
	}
	size := 2*pieRadius + 4
	c := size / 2

	buf.WriteString(`<figure class="countries">` + "\n")
	fmt.Fprintf(buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		size, size, size, size)
	for _, s := range v.Countries {
		fill := pal.Color(taxon.Record{Name: s.Country})
		country := html.EscapeString(s.Country)
		fmt.Fprintf(buf,
			`  <path class="slice" data-country="%s" d="%s" fill="%s" stroke="#ffffff">`,
			country, slicePath(c, c, pieRadius, s), fill)
		fmt.Fprintf(buf, "<title>%s: %s (%.1f%%)</title></path>\n",
			country, humanize.Comma(s.OccurrenceCount), s.Fraction*100)
	}
	buf.WriteString("</svg>\n")
	fmt.Fprintf(buf,
		"<figcaption>Top countries of <em>%s</em></figcaption>\n</figure>\n",
		html.EscapeString(v.Phylum))
}

// slicePath is the SVG path of a sector. A sector covering the whole
// circle is drawn as two half arcs, since a single arc cannot close.
func slicePath(cx, cy, r float64, s layout.Slice) string {
	span := s.EndAngle - s.StartAngle
	if span >= 2*math.Pi-1e-9 {
		return fmt.Sprintf(
			"M %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f Z",
			cx, cy-r, r, r, cx, cy+r, r, r, cx, cy-r)
	}
	x0, y0 := arcPoint(cx, cy, r, s.StartAngle)
	x1, y1 := arcPoint(cx, cy, r, s.EndAngle)
	large := 0
	if span > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x0, y0, r, r, large, x1, y1)
}

// arcPoint converts an angle, clockwise from twelve o'clock, to a point
// on the circle.
func arcPoint(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Sin(a), cy - r*math.Cos(a)
}
