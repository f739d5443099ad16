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
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gbiftree/internal/ioterm"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getBrowseCmd returns the browse command.
func getBrowseCmd() *cobra.Command {
	var (
		dataDir  string
		barWidth int
	)

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the taxonomy view in the terminal",
		Long: `Show the taxonomy view in the terminal and read commands from
standard input. Type 'help' for the list of commands.

Example session:
  > click kingdom:Animalia
  > click phylum:Chordata
  > hover species:Homo sapiens
  > quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("data-dir") {
				cfg.Update([]config.Option{config.OptDataDir(dataDir)})
			}
			err := runBrowse(cmd, barWidth)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	browseCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"directory with CSV tables",
	)
	browseCmd.Flags().IntVarP(
		&barWidth, "bar-width", "b", 40,
		"columns of a bar at 100%",
	)

	return browseCmd
}

func runBrowse(cmd *cobra.Command, barWidth int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := newSession(cfg)
	if err != nil {
		return err
	}

	r := ioterm.New(ioterm.OptBarWidth(barWidth))
	return ioterm.NewLoop(s, r, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
