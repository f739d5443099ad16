package ioterm_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gbiftree/internal/ioterm"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/hierarchy"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/names"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(l taxon.Level, name, parent string, occ int64) taxon.Record {
	return taxon.Record{
		Level:           l,
		Name:            name,
		ParentName:      parent,
		OccurrenceCount: occ,
	}
}

func session() *gbiftree.Session {
	t := taxon.NewTables()
	t.Levels[taxon.Phylum] = &taxon.Table{
		Level: taxon.Phylum,
		Records: []taxon.Record{
			rec(taxon.Phylum, "Chordata", "", 750),
			rec(taxon.Phylum, "Ctenophora", "", 250),
		},
	}
	t.Levels[taxon.Species] = &taxon.Table{
		Level:       taxon.Species,
		ParentLevel: taxon.Phylum,
		Records: []taxon.Record{
			rec(taxon.Species, "Pleurobrachia pileus", "Ctenophora", 200),
			rec(taxon.Species, "Mnemiopsis leidyi", "Ctenophora", 50),
		},
	}
	t.Countries = []taxon.CountryRecord{
		{Phylum: "Ctenophora", Country: "NO", OccurrenceCount: 30, Rank: 1},
		{Phylum: "Ctenophora", Country: "US", OccurrenceCount: 10, Rank: 2},
	}
	t.AddCommonName(taxon.Species, taxon.CommonName{
		Name:        "Pleurobrachia pileus",
		CommonName:  "Sea Gooseberry",
		Description: "Comb jelly",
	})
	e := layout.New(hierarchy.New(t),
		layout.OptResolver(names.New(t.CommonNames)),
	)
	return gbiftree.NewSession(e)
}

func TestRender(t *testing.T) {
	s := session()
	require.NoError(t, s.Click(taxon.Phylum, "Ctenophora"))

	var buf bytes.Buffer
	r := ioterm.New(ioterm.OptBarWidth(10), ioterm.OptNameWidth(12))
	require.NoError(t, r.Render(&buf, s.View()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "phyla (1,000)", lines[0])
	assert.Equal(t, "  [+] Chordata     ████████   75.0%", lines[1])
	assert.Equal(t, "  [-] Ctenophora   ███        25.0%", lines[2])
	assert.Equal(t, "  species of Ctenophora (250)", lines[3])
	assert.Equal(t, "    [+] Sea Goosebe… ████████   80.0%", lines[4])
	assert.Contains(t, buf.String(), "Top countries of Ctenophora:")
	assert.Contains(t, buf.String(), "  NO   ████████    75.0%")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ioterm.New().Render(&buf, gbiftree.View{}))
	assert.Equal(t, "No data.\n", buf.String())
}

func TestLoop(t *testing.T) {
	tests := []struct {
		msg, input string
		contains   []string
		expanded   []string
	}{
		{
			msg:      "click",
			input:    "click phylum:Ctenophora\n",
			contains: []string{"species of Ctenophora"},
			expanded: []string{"Ctenophora"},
		},
		{
			msg:      "toggle twice",
			input:    "c phylum:Ctenophora\ntoggle phylum:Ctenophora\n",
			expanded: nil,
		},
		{
			msg:   "hover",
			input: "click phylum:Ctenophora\nhover species:Pleurobrachia pileus\n",
			contains: []string{
				"Sea Gooseberry (Pleurobrachia pileus)\nComb jelly\nOccurrences: 200\n80.0% of Ctenophora",
			},
			expanded: []string{"Ctenophora"},
		},
		{
			msg:      "hidden node",
			input:    "click species:Mnemiopsis leidyi\n",
			contains: []string{"Error: No visible species named Mnemiopsis leidyi"},
		},
		{
			msg:      "bad level",
			input:    "click tribe:Foo\n",
			contains: []string{"Error: Unknown taxonomy level tribe"},
		},
		{
			msg:      "bad syntax",
			input:    "hover Chordata\n",
			contains: []string{`Error: expected LEVEL:NAME, got "Chordata"`},
		},
		{
			msg:      "unknown command",
			input:    "jump\n",
			contains: []string{`Unknown command "jump"`},
		},
		{
			msg:      "help",
			input:    "help\n",
			contains: []string{"click LEVEL:NAME"},
		},
		{
			msg:      "quit stops reading",
			input:    "quit\nclick phylum:Ctenophora\n",
			expanded: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			s := session()
			var out bytes.Buffer
			l := ioterm.NewLoop(s, ioterm.New(), strings.NewReader(tt.input), &out)
			require.NoError(t, l.Run(context.Background()))

			for _, c := range tt.contains {
				assert.Contains(t, out.String(), c)
			}
			var open []string
			for _, e := range s.State().Entries() {
				open = append(open, e.Name)
			}
			assert.Equal(t, tt.expanded, open)
		})
	}
}

func TestLoopCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	l := ioterm.NewLoop(session(), ioterm.New(), strings.NewReader("show\n"), &out)
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

func TestLoopCanceledWhileWaiting(t *testing.T) {
	tests := []struct {
		msg   string
		input string
	}{
		{"no input yet", ""},
		{"after a command", "show\n"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			pr, pw := io.Pipe()
			t.Cleanup(func() {
				pr.Close()
				pw.Close()
			})
			go func() {
				if tt.input != "" {
					pw.Write([]byte(tt.input))
				}
			}()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			time.AfterFunc(50*time.Millisecond, cancel)

			l := ioterm.NewLoop(session(), ioterm.New(), pr, io.Discard)
			errCh := make(chan error, 1)
			go func() { errCh <- l.Run(ctx) }()

			select {
			case err := <-errCh:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(5 * time.Second):
				t.Fatal("loop did not stop after cancel")
			}
		})
	}
}
