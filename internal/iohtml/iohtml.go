// Package iohtml renders the taxonomy view as a static HTML page with
// inline SVG bars. Detail charts are written to a separate echarts page
// that the main page embeds.
package iohtml

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/palette"
)

// clickHint tells the reader how to expand a node, since the static page
// only reacts to hover.
const clickHint = `<p class="hint">Segments of this page are not clickable. ` +
	`Expand a taxon with <code>gbiftree render -e level:name</code> ` +
	`or explore interactively with <code>gbiftree browse</code>.</p>` + "\n"

type renderer struct {
	title      string
	detailsURL string
}

// Option configures the HTML renderer.
type Option func(*renderer)

// OptTitle sets the page title.
func OptTitle(s string) Option {
	return func(r *renderer) {
		r.title = s
	}
}

// OptDetailsURL sets the location of the detail page. The page is
// embedded only if the view has details.
func OptDetailsURL(s string) Option {
	return func(r *renderer) {
		r.detailsURL = s
	}
}

// New creates an HTML renderer.
func New(opts ...Option) gbiftree.Renderer {
	res := &renderer{title: "GBIF occurrences by taxon"}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Render writes a complete HTML document for the view.
func (r *renderer) Render(w io.Writer, v gbiftree.View) error {
	var buf bytes.Buffer
	title := html.EscapeString(r.title)

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">` + "\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", title)
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", title)
	r.renderPath(&buf, v)

	pal := v.Palette
	if pal == nil {
		pal = palette.New()
	}
	renderSVG(&buf, v, pal)
	buf.WriteString(clickHint)
	renderPie(&buf, v, pal)

	if r.detailsURL != "" && HasDetails(v) {
		fmt.Fprintf(&buf,
			`<iframe src="%s" width="100%%" height="900" frameborder="0"></iframe>`+"\n",
			html.EscapeString(r.detailsURL))
	}
	buf.WriteString("</body>\n</html>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return RenderError("page", err)
	}
	slog.Debug("Rendered page", "rows", len(v.Rows), "bytes", buf.Len())
	return nil
}

// renderPath writes the expanded nodes as a breadcrumb. It follows the
// expansion state, so a leaf that adds no row still shows up.
func (r *renderer) renderPath(buf *bytes.Buffer, v gbiftree.View) {
	if len(v.Rows) == 0 {
		buf.WriteString("<p>No data.</p>\n")
		return
	}
	buf.WriteString(`<p class="path">`)
	buf.WriteString("All taxa")
	for _, e := range v.Expanded {
		fmt.Fprintf(buf, " &rarr; %s <em>%s</em> (%s)",
			e.Level, html.EscapeString(e.Name), humanize.Comma(e.Count))
	}
	buf.WriteString("</p>\n")
}
