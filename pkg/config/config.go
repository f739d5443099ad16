// Package config provides configuration management for gbiftree.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Data: dir
//   - Layout: width, row_height, indent, log_scale
//   - BigQuery: project_id, key_file, location, top_species, top_countries
//   - Render: output
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - BigQuery.FullHierarchy, Extract.Refresh (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GBIFTREE_ prefix with underscores for nesting:
//
//	GBIFTREE_DATA_DIR=./data
//	GBIFTREE_BIGQUERY_PROJECT_ID=my-project
//	GBIFTREE_LAYOUT_LOG_SCALE=true
//	GBIFTREE_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete gbiftree configuration.
type Config struct {
	// Data describes where the aggregate tables are kept.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Layout contains geometry of the rendered bars.
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`

	// BigQuery contains settings of the extraction job.
	BigQuery BigQueryConfig `mapstructure:"bigquery" yaml:"bigquery"`

	// Extract contains runtime settings of the extract command.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	Render RenderConfig `mapstructure:"render" yaml:"render"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of queries the extraction job runs at
	// the same time.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DataConfig points to the directory with CSV tables and common names.
type DataConfig struct {
	// Dir is read by render and browse, and written by extract.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LayoutConfig contains geometry settings of the taxonomy view.
type LayoutConfig struct {
	// Width of the root row in pixels.
	Width int `mapstructure:"width" yaml:"width"`

	// RowHeight is the height of a row of bars in pixels.
	RowHeight int `mapstructure:"row_height" yaml:"row_height"`

	// Indent shifts every nested row to the right by this many pixels
	// per depth. Zero keeps all rows aligned.
	Indent int `mapstructure:"indent" yaml:"indent"`

	// LogScale makes segment widths proportional to the logarithm of
	// their percentage, so rare taxa stay visible.
	LogScale bool `mapstructure:"log_scale" yaml:"log_scale"`
}

// BigQueryConfig contains settings of the BigQuery extraction job.
type BigQueryConfig struct {
	// ProjectID is the Google Cloud project billed for the queries.
	ProjectID string `mapstructure:"project_id" yaml:"project_id"`

	// KeyFile is a path to a service account JSON key.
	KeyFile string `mapstructure:"key_file" yaml:"key_file"`

	// Location of the GBIF public dataset.
	Location string `mapstructure:"location" yaml:"location"`

	// TopSpecies is the number of species kept per parent taxon.
	TopSpecies int `mapstructure:"top_species" yaml:"top_species"`

	// TopCountries is the number of countries kept per phylum.
	TopCountries int `mapstructure:"top_countries" yaml:"top_countries"`

	// FullHierarchy adds classes, orders, families and genera tables
	// and groups species by genus.
	FullHierarchy bool `mapstructure:"full_hierarchy" yaml:"full_hierarchy"`
}

// ExtractConfig contains runtime settings of the extract command.
type ExtractConfig struct {
	// Refresh ignores cached query results.
	Refresh bool `mapstructure:"refresh" yaml:"refresh"`
}

// RenderConfig contains settings of the render command.
type RenderConfig struct {
	// Output is the path of the generated HTML page.
	Output string `mapstructure:"output" yaml:"output"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Data: DataConfig{
			Dir: "data",
		},
		Layout: LayoutConfig{
			Width:     1200,
			RowHeight: 40,
			Indent:    24,
		},
		BigQuery: BigQueryConfig{
			Location:     "US",
			TopSpecies:   5,
			TopCountries: 3,
		},
		Render: RenderConfig{
			Output: "gbiftree.html",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
