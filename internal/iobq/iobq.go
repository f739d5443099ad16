// Package iobq is the batch job that aggregates the public GBIF
// occurrence snapshot in BigQuery into the CSV tables used by the
// taxonomy view.
package iobq

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"golang.org/x/sync/errgroup"
)

type extractor struct {
	cfg    *config.Config
	runner Runner
}

// New creates an Extractor that runs queries with the given Runner.
func New(cfg *config.Config, runner Runner) gbiftree.Extractor {
	return &extractor{cfg: cfg, runner: runner}
}

// Extract runs all queries concurrently, up to JobsNumber at a time, and
// writes one table per query into the data directory. Results found in
// the cache are reused unless a refresh is requested. The first failure
// cancels the remaining queries.
func (e *extractor) Extract(ctx context.Context) error {
	start := time.Now()
	queries := Queries(e.cfg.BigQuery)

	dir := e.cfg.Data.Dir
	if err := gnsys.MakeDir(dir); err != nil {
		return WriteTableError(dir, err)
	}

	cache, err := NewCache(config.BigQueryCacheDir(e.cfg.HomeDir))
	if err != nil {
		return err
	}
	if err = cache.Open(); err != nil {
		return err
	}
	defer cache.Close()

	gn.Info("Running <em>%d</em> queries", len(queries))
	bar := pb.Full.Start(len(queries))
	bar.Set("prefix", "Extracting tables: ")
	bar.Set(pb.CleanOnFinish, true)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.JobsNumber)
	for _, q := range queries {
		g.Go(func() error {
			res, err := e.result(gCtx, cache, q)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, q.File)
			if err = writeTable(path, res); err != nil {
				return err
			}
			slog.Info("Table written",
				"path", path, "rows", len(res.Rows))
			bar.Increment()
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()
	if err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Extraction finished", "tables", len(queries), "duration", dur)
	gn.Info("Wrote <em>%s</em> tables to <em>%s</em> in %s",
		humanize.Comma(int64(len(queries))), dir, dur)
	return nil
}

func (e *extractor) result(
	ctx context.Context,
	cache *Cache,
	q Query,
) (*Result, error) {
	if !e.cfg.Extract.Refresh {
		res, err := cache.Get(q.SQL)
		if err != nil {
			return nil, err
		}
		if res != nil {
			slog.Info("Using cached result", "file", q.File, "key", Key(q.SQL))
			return res, nil
		}
	}

	start := time.Now()
	res, err := e.runner.Run(ctx, q.SQL)
	if err != nil {
		return nil, QueryError(q.File, err)
	}
	slog.Info("Query finished",
		"file", q.File,
		"rows", len(res.Rows),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	if err = cache.Store(q.SQL, res); err != nil {
		return nil, err
	}
	return res, nil
}
