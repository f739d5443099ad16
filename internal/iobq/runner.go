package iobq

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gbiftree/pkg/config"
	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/bigquery/v2"
	"google.golang.org/api/option"
)

// Result is a tabular query result. Values keep the textual form
// returned by BigQuery; NULL becomes an empty string.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Runner executes a SQL query and waits for its complete result.
type Runner interface {
	Run(ctx context.Context, sql string) (*Result, error)
}

// pollTimeoutMs is how long a single request waits for a job.
const pollTimeoutMs = 60_000

type bqRunner struct {
	svc       *bigquery.Service
	projectID string
	location  string
}

// NewRunner creates a Runner that authenticates with a service account
// key and bills queries to the configured project.
func NewRunner(ctx context.Context, cfg config.BigQueryConfig) (Runner, error) {
	if cfg.KeyFile == "" || cfg.ProjectID == "" {
		return nil, CredentialsError(cfg.KeyFile,
			fmt.Errorf("key file and project ID are required"))
	}
	data, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, CredentialsError(cfg.KeyFile, err)
	}
	jwt, err := google.JWTConfigFromJSON(data, bigquery.BigqueryScope)
	if err != nil {
		return nil, CredentialsError(cfg.KeyFile, err)
	}
	svc, err := bigquery.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, CredentialsError(cfg.KeyFile, err)
	}
	return &bqRunner{
		svc:       svc,
		projectID: cfg.ProjectID,
		location:  cfg.Location,
	}, nil
}

// Run submits the query, polls until the job is complete and reads all
// result pages.
func (r *bqRunner) Run(ctx context.Context, sql string) (*Result, error) {
	legacy := false
	req := &bigquery.QueryRequest{
		Query:        sql,
		UseLegacySql: &legacy,
		TimeoutMs:    pollTimeoutMs,
		RequestId:    uuid.New().String(),
		Location:     r.location,
	}
	resp, err := r.svc.Jobs.Query(r.projectID, req).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if resp.Schema != nil {
		res.Columns = columns(resp.Schema)
	}
	if resp.JobComplete {
		res.Rows = appendRows(res.Rows, resp.Rows)
		if resp.PageToken == "" {
			return res, nil
		}
	}

	job := resp.JobReference
	if job == nil {
		return nil, fmt.Errorf("query returned no job reference")
	}
	return r.fetch(ctx, job, resp.JobComplete, resp.PageToken, res)
}

// fetch polls an unfinished job and reads the remaining pages.
func (r *bqRunner) fetch(
	ctx context.Context,
	job *bigquery.JobReference,
	complete bool,
	token string,
	res *Result,
) (*Result, error) {
	for {
		call := r.svc.Jobs.GetQueryResults(r.projectID, job.JobId).
			Location(job.Location).
			TimeoutMs(pollTimeoutMs).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		page, err := call.Do()
		if err != nil {
			return nil, err
		}
		if !page.JobComplete {
			slog.Debug("Waiting for BigQuery job", "job", job.JobId)
			continue
		}
		if !complete && page.Schema != nil {
			res.Columns = columns(page.Schema)
		}
		complete = true
		res.Rows = appendRows(res.Rows, page.Rows)
		if page.PageToken == "" {
			return res, nil
		}
		token = page.PageToken
	}
}

func columns(s *bigquery.TableSchema) []string {
	res := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		res[i] = f.Name
	}
	return res
}

func appendRows(res [][]string, rows []*bigquery.TableRow) [][]string {
	for _, row := range rows {
		vals := make([]string, len(row.F))
		for i, cell := range row.F {
			vals[i] = cellString(cell)
		}
		res = append(res, vals)
	}
	return res
}

func cellString(c *bigquery.TableCell) string {
	if c == nil || c.V == nil {
		return ""
	}
	if s, ok := c.V.(string); ok {
		return s
	}
	return fmt.Sprint(c.V)
}
