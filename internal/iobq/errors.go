package iobq

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gn"
)

// CredentialsError is returned when BigQuery access cannot be set up.
func CredentialsError(keyFile string, err error) error {
	msg := "Cannot use BigQuery credentials from <em>%s</em>"
	vars := []any{keyFile}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CredentialsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: credentials: %w", fn.Name(), err),
	}
}

// QueryError is returned when a query for a table fails.
func QueryError(file string, err error) error {
	msg := "Query for <em>%s</em> failed"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.QueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query for %s: %w", fn.Name(), file, err),
	}
}

// WriteTableError is returned when a result cannot be saved.
func WriteTableError(path string, err error) error {
	msg := "Cannot write table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}

// CacheError is returned when the query cache fails.
func CacheError(dir string, err error) error {
	msg := "Query cache at <em>%s</em> failed"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cache %s: %w", fn.Name(), dir, err),
	}
}

// CacheNotOpenError is returned when the cache is used before Open.
func CacheNotOpenError(dir string) error {
	return CacheError(dir, errors.New("cache database is not open"))
}
