/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"log/slog"

	"github.com/gnames/gbiftree/internal/iohtml"
	"github.com/gnames/gbiftree/internal/ioterm"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRenderCmd returns the render command.
func getRenderCmd() *cobra.Command {
	var (
		expand   []string
		output   string
		dataDir  string
		width    int
		logScale bool
	)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write the taxonomy view as an HTML page",
		Long: `Render the taxonomy view into a static HTML page with SVG bars.

The page is static: segments show details on hover but do not react to
clicks. Every --expand flag clicks a node, in the given order, as a user
would. Use 'gbiftree browse' to click nodes interactively.

If a phylum is expanded or species are visible, a second page with
country and species charts is written next to the output and embedded
into it.

Examples:
  gbiftree render
  gbiftree render -e kingdom:Animalia -e phylum:Ctenophora -o cteno.html
  gbiftree render --log-scale -e kingdom:Animalia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("output") {
				opts = append(opts, config.OptRenderOutput(output))
			}
			if cmd.Flags().Changed("data-dir") {
				opts = append(opts, config.OptDataDir(dataDir))
			}
			if cmd.Flags().Changed("width") {
				opts = append(opts, config.OptLayoutWidth(width))
			}
			if cmd.Flags().Changed("log-scale") {
				opts = append(opts, config.OptLayoutLogScale(logScale))
			}
			cfg.Update(opts)

			err := runRender(expand)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	renderCmd.Flags().StringArrayVarP(
		&expand, "expand", "e", nil,
		"click LEVEL:NAME before rendering (repeatable)",
	)
	renderCmd.Flags().StringVarP(
		&output, "output", "o", "",
		"path of the HTML page",
	)
	renderCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"directory with CSV tables",
	)
	renderCmd.Flags().IntVarP(
		&width, "width", "w", 0,
		"width of the root row in pixels",
	)
	renderCmd.Flags().BoolVarP(
		&logScale, "log-scale", "l", false,
		"use logarithmic segment widths",
	)

	return renderCmd
}

func runRender(expand []string) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}

	for _, e := range expand {
		level, name, err := ioterm.ParseNode(e)
		if err != nil {
			return err
		}
		if err = s.Click(level, name); err != nil {
			return err
		}
	}

	out := cfg.Render.Output
	details, err := iohtml.WriteFiles(out, s.View())
	if err != nil {
		return err
	}
	slog.Info("Rendered view", "output", out, "details", details)
	gn.Info("Wrote <em>%s</em>", out)
	if details != "" {
		gn.Info("Wrote <em>%s</em>", details)
	}
	return nil
}
