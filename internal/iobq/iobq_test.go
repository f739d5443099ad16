package iobq_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gnames/gbiftree/internal/iobq"
	"github.com/gnames/gbiftree/internal/ioload"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu      sync.Mutex
	results map[string]*iobq.Result
	calls   int
	fail    string
}

func (f *fakeRunner) Run(_ context.Context, sql string) (*iobq.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != "" && strings.Contains(sql, f.fail) {
		return nil, errors.New("quota exceeded")
	}
	res, ok := f.results[sql]
	if !ok {
		return nil, errors.New("unexpected query")
	}
	return res, nil
}

func minimalResults(cfg config.BigQueryConfig) map[string]*iobq.Result {
	byFile := map[string]*iobq.Result{
		"kingdom.csv": {
			Columns: []string{"kingdom", "occurrence_count", "individual_count"},
			Rows:    [][]string{{"Animalia", "5000", "12"}, {"incertae sedis", "3", ""}},
		},
		"phyla.csv": {
			Columns: []string{"phylum", "kingdom", "occurrence_count", "individual_count"},
			Rows:    [][]string{{"Ctenophora", "Animalia", "5000", "12"}},
		},
		"phyla-country.csv": {
			Columns: []string{"phylum", "country", "occurrence_count", "rank"},
			Rows:    [][]string{{"Ctenophora", "NO", "40", "1"}},
		},
		"species.csv": {
			Columns: []string{"species", "phylum", "occurrence_count", "rank"},
			Rows:    [][]string{{"Pleurobrachia pileus", "Ctenophora", "300", "1"}},
		},
	}
	res := make(map[string]*iobq.Result)
	for _, q := range iobq.Queries(cfg) {
		res[q.SQL] = byFile[q.File]
	}
	return res
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDataDir(filepath.Join(t.TempDir(), "data")),
		config.OptJobsNumber(2),
	})
	return cfg
}

func TestQueries(t *testing.T) {
	cfg := config.New().BigQuery

	qs := iobq.Queries(cfg)
	var files []string
	for _, q := range qs {
		files = append(files, q.File)
		assert.Contains(t, q.SQL, "occurrencestatus = 'PRESENT'")
		assert.Contains(t, q.SQL, iobq.OccurrencesTable)
	}
	assert.Equal(t, []string{
		"kingdom.csv", "phyla.csv", "phyla-country.csv", "species.csv",
	}, files)
	assert.Contains(t, qs[0].SQL, "COALESCE(kingdom, 'incertae sedis')")
	assert.Contains(t, qs[2].SQL, "WHERE rank <= 3")
	assert.Contains(t, qs[3].SQL, "PARTITION BY phylum")
	assert.Contains(t, qs[3].SQL, "WHERE rank <= 5")

	cfg.FullHierarchy = true
	cfg.TopSpecies = 10
	qs = iobq.Queries(cfg)
	require.Len(t, qs, 8)
	assert.Equal(t, "orders.csv", qs[4].File)
	assert.Contains(t, qs[4].SQL, "`order`,\n  class,")
	last := qs[len(qs)-1]
	assert.Equal(t, "species.csv", last.File)
	assert.Contains(t, last.SQL, "PARTITION BY genus")
	assert.Contains(t, last.SQL, "WHERE rank <= 10")
}

func TestExtract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	cfg := testConfig(t)
	runner := &fakeRunner{results: minimalResults(cfg.BigQuery)}

	err := iobq.New(cfg, runner).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, runner.calls)

	data, err := os.ReadFile(filepath.Join(cfg.Data.Dir, "kingdom.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"kingdom,occurrence_count,individual_count\n"+
			"Animalia,5000,12\nincertae sedis,3,\n",
		string(data))

	tbl, err := ioload.New(cfg.Data.Dir).Load()
	require.NoError(t, err)
	assert.Len(t, tbl.Levels[taxon.Species].Records, 1)
	assert.Len(t, tbl.Countries, 1)

	// The second run is served from the cache.
	err = iobq.New(cfg, runner).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, runner.calls)

	cfg.Update([]config.Option{config.OptExtractRefresh(true)})
	err = iobq.New(cfg, runner).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, runner.calls)
}

func TestExtractQueryError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	cfg := testConfig(t)
	runner := &fakeRunner{
		results: minimalResults(cfg.BigQuery),
		fail:    "countrycode",
	}

	err := iobq.New(cfg, runner).Extract(context.Background())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.QueryError, gnErr.Code)
	assert.Equal(t, "phyla-country.csv", gnErr.Vars[0])
}

func TestCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	c, err := iobq.NewCache(filepath.Join(t.TempDir(), "bq"))
	require.NoError(t, err)

	_, err = c.Get("SELECT 1")
	require.Error(t, err, "cache is not open")

	require.NoError(t, c.Open())
	defer c.Close()

	res, err := c.Get("SELECT 1")
	require.NoError(t, err)
	assert.Nil(t, res)

	want := &iobq.Result{Columns: []string{"a"}, Rows: [][]string{{"1"}}}
	require.NoError(t, c.Store("SELECT 1", want))
	res, err = c.Get("SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, want, res)

	assert.Equal(t, iobq.Key("SELECT 1"), iobq.Key("SELECT 1"))
	assert.NotEqual(t, iobq.Key("SELECT 1"), iobq.Key("SELECT 2"))
}

func TestNewRunnerCredentials(t *testing.T) {
	tests := []struct {
		msg string
		cfg config.BigQueryConfig
	}{
		{"no key file", config.BigQueryConfig{ProjectID: "p"}},
		{"missing key file", config.BigQueryConfig{
			ProjectID: "p",
			KeyFile:   filepath.Join(t.TempDir(), "none.json"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iobq.NewRunner(context.Background(), tt.cfg)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.CredentialsError, gnErr.Code)
		})
	}
}
