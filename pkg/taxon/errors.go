package taxon

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gn"
)

// NotFoundError is returned when a taxonomy level is not recognized.
func NotFoundError(level any) error {
	msg := "Unknown taxonomy level <em>%v</em>"
	vars := []any{level}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown taxonomy level %v",
			fn.Name(), level),
	}
}
