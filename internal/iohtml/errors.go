package iohtml

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gn"
)

// RenderError is returned when a page cannot be written.
func RenderError(page string, err error) error {
	msg := "Cannot render <em>%s</em>"
	vars := []any{page}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RenderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: render %s: %w", fn.Name(), page, err),
	}
}
