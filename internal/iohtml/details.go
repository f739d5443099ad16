package iohtml

import (
	"fmt"
	"io"

	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/palette"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HasDetails reports whether the view has anything for the detail page:
// countries of an expanded phylum or a visible species row.
func HasDetails(v gbiftree.View) bool {
	_, ok := speciesRow(v)
	return len(v.Countries) > 0 || ok
}

// RenderDetails writes an echarts page with a pie of the top countries
// of the expanded phylum and a bar chart of the visible species.
func RenderDetails(w io.Writer, v gbiftree.View) error {
	pal := v.Palette
	if pal == nil {
		pal = palette.New()
	}

	page := components.NewPage()
	page.PageTitle = "gbiftree details"

	if len(v.Countries) > 0 {
		page.AddCharts(countryPie(v.Phylum, v.Countries))
	}
	if row, ok := speciesRow(v); ok {
		page.AddCharts(speciesBar(row, pal))
	}

	if err := page.Render(w); err != nil {
		return RenderError("details", err)
	}
	return nil
}

func countryPie(phylum string, slices []layout.Slice) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Countries",
			Width:     "600px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Top countries of %s", phylum),
			Subtitle: "occurrences",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Country, Value: s.OccurrenceCount}
	}
	pie.AddSeries("Countries", data)
	return pie
}

func speciesBar(row layout.Row, pal *palette.Palette) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Species",
			Width:     "900px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Species of %s", row.ParentName()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	)

	names := make([]string, len(row.Segments))
	data := make([]opts.BarData, len(row.Segments))
	for i, s := range row.Segments {
		names[i] = s.Record.Name
		data[i] = opts.BarData{
			Name:      s.DisplayName,
			Value:     s.Record.OccurrenceCount,
			ItemStyle: &opts.ItemStyle{Color: pal.Color(s.Record)},
		}
	}
	bar.SetXAxis(names)
	bar.AddSeries("Occurrences", data)
	return bar
}

// speciesRow returns the deepest visible species row.
func speciesRow(v gbiftree.View) (layout.Row, bool) {
	for i := len(v.Rows) - 1; i >= 0; i-- {
		if v.Rows[i].Level == taxon.Species {
			return v.Rows[i], true
		}
	}
	return layout.Row{}, false
}
