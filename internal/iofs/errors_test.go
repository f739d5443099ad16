package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{
			msg:  "create dir",
			err:  CreateDirError("/test/dir", orig),
			code: errcode.CreateDirError,
			path: "/test/dir",
			text: "cannot create directory",
		},
		{
			msg:  "copy file",
			err:  CopyFileError("/test/config.yaml", orig),
			code: errcode.CopyFileError,
			path: "/test/config.yaml",
			text: "cannot copy file",
		},
		{
			msg:  "read file",
			err:  ReadFileError("/test/config.yaml", orig),
			code: errcode.ReadFileError,
			path: "/test/config.yaml",
			text: "cannot read file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, orig)
			assert.Contains(t, gnErr.Err.Error(), tt.text)
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors")
		})
	}
}
