package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, FullHierarchy, Refresh).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Data.Dir
	if s != "" {
		res = append(res, OptDataDir(s))
	}

	i = c.Layout.Width
	if i > 0 {
		res = append(res, OptLayoutWidth(i))
	}
	i = c.Layout.RowHeight
	if i > 0 {
		res = append(res, OptLayoutRowHeight(i))
	}
	res = append(res,
		OptLayoutIndent(c.Layout.Indent),
		OptLayoutLogScale(c.Layout.LogScale),
	)

	s = c.BigQuery.ProjectID
	if s != "" {
		res = append(res, OptBigQueryProjectID(s))
	}
	s = c.BigQuery.KeyFile
	if s != "" {
		res = append(res, OptBigQueryKeyFile(s))
	}
	s = c.BigQuery.Location
	if s != "" {
		res = append(res, OptBigQueryLocation(s))
	}
	i = c.BigQuery.TopSpecies
	if i > 0 {
		res = append(res, OptBigQueryTopSpecies(i))
	}
	i = c.BigQuery.TopCountries
	if i > 0 {
		res = append(res, OptBigQueryTopCountries(i))
	}

	s = c.Render.Output
	if s != "" {
		res = append(res, OptRenderOutput(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
