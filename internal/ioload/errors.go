package ioload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingTableError is returned when a required table does not exist.
func MissingTableError(path string) error {
	msg := "Required table <em>%s</em> is missing"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataMissingTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s does not exist", fn.Name(), path),
	}
}

// EmptyTableError is returned when a required table has no data rows.
func EmptyTableError(path string) error {
	msg := "Table <em>%s</em> has no data"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataEmptyTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s is empty", fn.Name(), path),
	}
}

// MalformedTableError is returned when a table cannot be parsed.
// Line is 0 for header problems.
func MalformedTableError(path string, line int, err error) error {
	msg := "Cannot parse <em>%s</em>, line %d"
	vars := []any{path, line}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataMalformedTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed table %s at line %d: %w",
			fn.Name(), path, line, err),
	}
}

// CommonNamesError is returned when the common names file is malformed.
func CommonNamesError(path string, err error) error {
	msg := "Cannot parse common names from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataCommonNamesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse common names %s: %w",
			fn.Name(), path, err),
	}
}

// ReadFileError is returned when an existing file cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}
