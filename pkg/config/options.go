package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDataDir sets the directory of CSV tables and common names.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Dir", s) {
			c.Data.Dir = s
		}
	}
}

// OptLayoutWidth sets the width of the root row in pixels.
func OptLayoutWidth(i int) Option {
	return func(c *Config) {
		if isValidInt("Layout Width", i) {
			c.Layout.Width = i
		}
	}
}

// OptLayoutRowHeight sets the height of a row in pixels.
func OptLayoutRowHeight(i int) Option {
	return func(c *Config) {
		if isValidInt("Layout Row Height", i) {
			c.Layout.RowHeight = i
		}
	}
}

// OptLayoutIndent sets the indent of nested rows per depth.
// Zero is allowed.
func OptLayoutIndent(i int) Option {
	return func(c *Config) {
		if i < 0 {
			gn.Warn("<em>Layout Indent</em> cannot be negative, ignoring %d", i)
			return
		}
		c.Layout.Indent = i
	}
}

// OptLayoutLogScale toggles logarithmic segment widths.
func OptLayoutLogScale(b bool) Option {
	return func(c *Config) {
		c.Layout.LogScale = b
	}
}

// OptBigQueryProjectID sets the Google Cloud project for queries.
func OptBigQueryProjectID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("BigQuery Project ID", s) {
			c.BigQuery.ProjectID = s
		}
	}
}

// OptBigQueryKeyFile sets the path to a service account key.
func OptBigQueryKeyFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("BigQuery Key File", s) {
			c.BigQuery.KeyFile = s
		}
	}
}

// OptBigQueryLocation sets the location of query jobs.
func OptBigQueryLocation(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("BigQuery Location", s) {
			c.BigQuery.Location = s
		}
	}
}

// OptBigQueryTopSpecies sets the number of species kept per parent.
func OptBigQueryTopSpecies(i int) Option {
	return func(c *Config) {
		if isValidInt("BigQuery Top Species", i) {
			c.BigQuery.TopSpecies = i
		}
	}
}

// OptBigQueryTopCountries sets the number of countries kept per phylum.
func OptBigQueryTopCountries(i int) Option {
	return func(c *Config) {
		if isValidInt("BigQuery Top Countries", i) {
			c.BigQuery.TopCountries = i
		}
	}
}

// OptBigQueryFullHierarchy makes extraction produce all taxonomy levels.
// Runtime-only field - not in ToOptions().
func OptBigQueryFullHierarchy(b bool) Option {
	return func(c *Config) {
		c.BigQuery.FullHierarchy = b
	}
}

// OptExtractRefresh makes extraction ignore cached results.
// Runtime-only field - not in ToOptions().
func OptExtractRefresh(b bool) Option {
	return func(c *Config) {
		c.Extract.Refresh = b
	}
}

// OptRenderOutput sets the path of the generated HTML page.
func OptRenderOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Render Output", s) {
			c.Render.Output = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent queries.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
