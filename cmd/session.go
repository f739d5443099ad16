/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"time"

	"github.com/gnames/gbiftree/internal/ioload"
	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/hierarchy"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/names"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// newSession loads the tables of the data directory and starts a
// session with everything collapsed.
func newSession(cfg *config.Config) (*gbiftree.Session, error) {
	start := time.Now()
	tables, err := ioload.New(cfg.Data.Dir).Load()
	if err != nil {
		return nil, err
	}

	idx := hierarchy.New(tables)
	engine := layout.New(idx,
		layout.OptWidth(float64(cfg.Layout.Width)),
		layout.OptRowHeight(float64(cfg.Layout.RowHeight)),
		layout.OptIndent(float64(cfg.Layout.Indent)),
		layout.OptLogScale(cfg.Layout.LogScale),
		layout.OptResolver(names.New(tables.CommonNames)),
	)

	levels := idx.Levels()
	gn.Info("Loaded <em>%d</em> levels from <em>%s</em> in %s",
		len(levels), cfg.Data.Dir,
		gnfmt.TimeString(time.Since(start).Seconds()))
	return gbiftree.NewSession(engine), nil
}
