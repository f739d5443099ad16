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

	"github.com/gnames/gbiftree/internal/iobq"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	var (
		keyFile      string
		projectID    string
		dataDir      string
		topSpecies   int
		topCountries int
		full         bool
		refresh      bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Aggregate GBIF occurrences in BigQuery into CSV tables",
		Long: `Query the public GBIF occurrence snapshot in BigQuery and write the
tables used by render and browse.

This command:
  1. Authenticates with a Google Cloud service account key
  2. Runs aggregation queries concurrently (jobs_number at a time)
  3. Reuses cached query results unless --refresh is given
  4. Writes kingdom.csv, phyla.csv, phyla-country.csv and species.csv
     (and classes, orders, families, genera with --full)

Only occurrences with status PRESENT are counted.

Examples:
  gbiftree extract --key-file key.json --project-id my-project
  gbiftree extract -k key.json -p my-project --full --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExtract(cmd, extractFlags{
				keyFile:      keyFile,
				projectID:    projectID,
				dataDir:      dataDir,
				topSpecies:   topSpecies,
				topCountries: topCountries,
				full:         full,
				refresh:      refresh,
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	extractCmd.Flags().StringVarP(
		&keyFile, "key-file", "k", "",
		"path to a service account JSON key",
	)
	extractCmd.Flags().StringVarP(
		&projectID, "project-id", "p", "",
		"Google Cloud project ID",
	)
	extractCmd.Flags().StringVarP(
		&dataDir, "data-dir", "d", "",
		"directory for the CSV tables",
	)
	extractCmd.Flags().IntVar(
		&topSpecies, "top-species", 0,
		"species kept per parent taxon",
	)
	extractCmd.Flags().IntVar(
		&topCountries, "top-countries", 0,
		"countries kept per phylum",
	)
	extractCmd.Flags().BoolVarP(
		&full, "full", "f", false,
		"extract classes, orders, families and genera too",
	)
	extractCmd.Flags().BoolVarP(
		&refresh, "refresh", "r", false,
		"ignore cached query results",
	)

	return extractCmd
}

type extractFlags struct {
	keyFile, projectID, dataDir string
	topSpecies, topCountries    int
	full, refresh               bool
}

func (f extractFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	changed := cmd.Flags().Changed
	if changed("key-file") {
		res = append(res, config.OptBigQueryKeyFile(f.keyFile))
	}
	if changed("project-id") {
		res = append(res, config.OptBigQueryProjectID(f.projectID))
	}
	if changed("data-dir") {
		res = append(res, config.OptDataDir(f.dataDir))
	}
	if changed("top-species") {
		res = append(res, config.OptBigQueryTopSpecies(f.topSpecies))
	}
	if changed("top-countries") {
		res = append(res, config.OptBigQueryTopCountries(f.topCountries))
	}
	if changed("full") {
		res = append(res, config.OptBigQueryFullHierarchy(f.full))
	}
	if changed("refresh") {
		res = append(res, config.OptExtractRefresh(f.refresh))
	}
	return res
}

func runExtract(cmd *cobra.Command, flags extractFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(flags.options(cmd))

	runner, err := iobq.NewRunner(ctx, cfg.BigQuery)
	if err != nil {
		return err
	}

	gn.Info("Extracting GBIF aggregates for project <em>%s</em>",
		cfg.BigQuery.ProjectID)
	return iobq.New(cfg, runner).Extract(ctx)
}
