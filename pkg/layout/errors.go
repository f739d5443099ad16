package layout

import (
	"fmt"
	"runtime"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
)

// InconsistentAggregateError reports children whose occurrence counts do
// not add up to the recorded total of their parent. The engine recovers
// by using the sum of the children, so the error is only logged.
func InconsistentAggregateError(
	level taxon.Level,
	parent string,
	recorded, sum int64,
) error {
	msg := "Children of <em>%s</em> sum to %d, recorded total is %d"
	vars := []any{parent, sum, recorded}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InconsistentAggregateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: %s records of %q sum to %d instead of %d",
			fn.Name(), level, parent, sum, recorded,
		),
	}
}
