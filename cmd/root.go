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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gbiftree/internal/iofs"
	"github.com/gnames/gbiftree/internal/iologger"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns a new root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: "version: " + gbiftree.Version + "\nbuild:   " + gbiftree.Build,
		Use:     "gbiftree",
		Short:   "Explore GBIF occurrences as nested taxonomy bars",
		Long: `gbiftree shows how GBIF occurrence records are distributed over the
taxonomy. Every level is drawn as a horizontal bar split into taxa
proportionally to their occurrence counts. Expanding a taxon shows the
bar of its children below it.

Commands:
  extract: Query GBIF occurrences in BigQuery and write CSV tables
  render:  Write the taxonomy view as an HTML page
  browse:  Explore the taxonomy view in the terminal

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GBIFTREE_*)
  3. Config file (~/.config/gbiftree/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (data.dir → GBIFTREE_DATA_DIR).

    GBIFTREE_DATA_DIR                Directory with CSV tables
    GBIFTREE_BIGQUERY_PROJECT_ID     Google Cloud project
    GBIFTREE_BIGQUERY_KEY_FILE       Service account key
    GBIFTREE_LAYOUT_LOG_SCALE        Logarithmic widths
    GBIFTREE_LOG_LEVEL               Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gbiftree version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gbiftree")

	rootCmd.AddCommand(getExtractCmd())
	rootCmd.AddCommand(getRenderCmd())
	rootCmd.AddCommand(getBrowseCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Log to file with defaults until the user's settings are known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, appending to the log file opened by bootstrap.
func reconfigureLogging(cfg *config.Config) error {
	prev := logCloser
	closer, err := iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		return err
	}
	logCloser = closer
	if prev != nil {
		prev.Close()
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Bound one by one, so it is clear which variables are allowed.
	// They match the fields of config.ToOptions().
	v.SetEnvPrefix("GBIFTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Data
	v.BindEnv("data.dir", "GBIFTREE_DATA_DIR")

	// Layout
	v.BindEnv("layout.width", "GBIFTREE_LAYOUT_WIDTH")
	v.BindEnv("layout.row_height", "GBIFTREE_LAYOUT_ROW_HEIGHT")
	v.BindEnv("layout.indent", "GBIFTREE_LAYOUT_INDENT")
	v.BindEnv("layout.log_scale", "GBIFTREE_LAYOUT_LOG_SCALE")

	// BigQuery
	v.BindEnv("bigquery.project_id", "GBIFTREE_BIGQUERY_PROJECT_ID")
	v.BindEnv("bigquery.key_file", "GBIFTREE_BIGQUERY_KEY_FILE")
	v.BindEnv("bigquery.location", "GBIFTREE_BIGQUERY_LOCATION")
	v.BindEnv("bigquery.top_species", "GBIFTREE_BIGQUERY_TOP_SPECIES")
	v.BindEnv("bigquery.top_countries", "GBIFTREE_BIGQUERY_TOP_COUNTRIES")

	// Render
	v.BindEnv("render.output", "GBIFTREE_RENDER_OUTPUT")

	// Log
	v.BindEnv("log.level", "GBIFTREE_LOG_LEVEL")
	v.BindEnv("log.format", "GBIFTREE_LOG_FORMAT")
	v.BindEnv("log.destination", "GBIFTREE_LOG_DESTINATION")

	// General
	v.BindEnv("jobs_number", "GBIFTREE_JOBS_NUMBER")

	v.AutomaticEnv()
}
