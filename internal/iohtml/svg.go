package iohtml

import (
	"bytes"
	"fmt"
	"html"
	"unicode/utf8"

	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/palette"
	"github.com/gnames/gnuuid"
)

const segmentCSS = `
    .segment rect { stroke: #ffffff; stroke-width: 1; transition: opacity 0.2s ease; }
    .segment.expanded rect { stroke: #222222; stroke-width: 2; }
    .segment.highlight rect { opacity: 0.75; }
    .segment text { pointer-events: none; font-family: sans-serif; font-size: 12px; }`

const segmentJS = `
    document.querySelectorAll('.segment').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// charWidth is a rough width of a 12px sans-serif character.
const charWidth = 7.0

// segmentID is stable for a taxon across renders.
func segmentID(s layout.Segment) string {
	key := s.Record.Level.String() + "|" + s.Record.Name
	return "seg-" + gnuuid.New(key).String()
}

func renderSVG(buf *bytes.Buffer, v gbiftree.View, pal *palette.Palette) {
	fmt.Fprintf(buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		v.Width, v.Height, v.Width, v.Height)

	for _, row := range v.Rows {
		parent := row.ParentName()
		for _, s := range row.Segments {
			renderSegment(buf, pal, row, s, parent)
		}
	}

	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", segmentCSS)
	fmt.Fprintf(buf,
		"  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n",
		segmentJS)
	buf.WriteString("</svg>\n")
}

func renderSegment(
	buf *bytes.Buffer,
	pal *palette.Palette,
	row layout.Row,
	s layout.Segment,
	parent string,
) {
	fill := pal.Color(s.Record)
	class := "segment"
	if s.Expanded {
		class += " expanded"
	}

	fmt.Fprintf(buf,
		`  <g id="%s" class="%s" data-level="%s" data-name="%s">`+"\n",
		segmentID(s), class, s.Record.Level, html.EscapeString(s.Record.Name))
	fmt.Fprintf(buf,
		`    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		s.X, row.Y, s.Width, row.Height, fill)
	fmt.Fprintf(buf, "    <title>%s</title>\n",
		html.EscapeString(s.Tooltip(parent)))

	if label := fitLabel(s); label != "" {
		fmt.Fprintf(buf,
			`    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			s.X+s.Width/2, row.Y+row.Height/2,
			palette.TextColor(fill), html.EscapeString(label))
	}
	buf.WriteString("  </g>\n")
}

// fitLabel picks the longest label that fits into the segment.
func fitLabel(s layout.Segment) string {
	pct := s.Label()
	candidates := []string{
		s.DisplayName + " " + pct,
		s.Record.Name + " " + pct,
		pct,
	}
	for _, c := range candidates {
		if float64(utf8.RuneCountInString(c))*charWidth+8 <= s.Width {
			return c
		}
	}
	return ""
}
