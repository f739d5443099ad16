package gbiftree_test

import (
	"testing"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/gbiftree"
	"github.com/gnames/gbiftree/pkg/hierarchy"
	"github.com/gnames/gbiftree/pkg/layout"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
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
	t.Levels[taxon.Kingdom] = &taxon.Table{
		Level: taxon.Kingdom,
		Records: []taxon.Record{
			rec(taxon.Kingdom, "Animalia", "", 5000),
			rec(taxon.Kingdom, "Plantae", "", 3000),
		},
	}
	t.Levels[taxon.Phylum] = &taxon.Table{
		Level:       taxon.Phylum,
		ParentLevel: taxon.Kingdom,
		Records: []taxon.Record{
			rec(taxon.Phylum, "Chordata", "Animalia", 4000),
			rec(taxon.Phylum, "Ctenophora", "Animalia", 1000),
			rec(taxon.Phylum, "Tracheophyta", "Plantae", 3000),
		},
	}
	t.Levels[taxon.Species] = &taxon.Table{
		Level:       taxon.Species,
		ParentLevel: taxon.Phylum,
		Records: []taxon.Record{
			rec(taxon.Species, "Pleurobrachia pileus", "Ctenophora", 600),
			rec(taxon.Species, "Parus major", "Chordata", 2500),
			rec(taxon.Species, "Homo sapiens", "Chordata", 1500),
		},
	}
	t.Countries = []taxon.CountryRecord{
		{Phylum: "Ctenophora", Country: "NO", OccurrenceCount: 70, Rank: 1},
		{Phylum: "Ctenophora", Country: "DK", OccurrenceCount: 30, Rank: 2},
	}
	engine := layout.New(hierarchy.New(t), layout.OptWidth(800))
	return gbiftree.NewSession(engine)
}

func TestSessionClicks(t *testing.T) {
	s := session()

	v := s.View()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, 800.0, v.Width)
	assert.Empty(t, v.Phylum)
	assert.NotNil(t, v.Palette)

	require.NoError(t, s.Click(taxon.Kingdom, "Animalia"))
	require.Len(t, s.View().Rows, 2)

	require.NoError(t, s.Click(taxon.Phylum, "Ctenophora"))
	v = s.View()
	require.Len(t, v.Rows, 3)
	assert.Equal(t, "Ctenophora", v.Phylum)
	require.Len(t, v.Countries, 2)
	assert.Equal(t, "NO", v.Countries[0].Country)
	assert.Equal(t, "Ctenophora", v.Rows[2].ParentName())
	assert.Equal(t, taxon.ResidualName, v.Rows[2].Segments[1].Record.Name)

	require.NoError(t, s.Click(taxon.Phylum, "Chordata"))
	v = s.View()
	require.Len(t, v.Rows, 3)
	assert.Equal(t, "Chordata", v.Phylum)
	assert.Empty(t, v.Countries)
	assert.False(t, s.State().IsExpanded(taxon.Phylum, "Ctenophora"))
	assert.True(t, s.State().IsExpanded(taxon.Kingdom, "Animalia"))

	require.NoError(t, s.Click(taxon.Phylum, "Chordata"))
	v = s.View()
	assert.Len(t, v.Rows, 2)
	assert.Empty(t, v.Phylum)
	assert.Equal(t, 1, s.State().Len())
	require.Len(t, v.Expanded, 1)
	assert.Equal(t, "Animalia", v.Expanded[0].Name)
	assert.Equal(t, int64(5000), v.Expanded[0].Count)
}

func TestSessionSwitchLineage(t *testing.T) {
	s := session()
	require.NoError(t, s.Click(taxon.Kingdom, "Animalia"))
	require.NoError(t, s.Click(taxon.Phylum, "Ctenophora"))
	require.NoError(t, s.Click(taxon.Kingdom, "Plantae"))

	assert.Equal(t, 1, s.State().Len())
	assert.True(t, s.State().IsExpanded(taxon.Kingdom, "Plantae"))
	rows := s.View().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Tracheophyta", rows[1].Segments[0].Record.Name)
}

func TestSessionNotVisible(t *testing.T) {
	s := session()
	err := s.Click(taxon.Phylum, "Chordata")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.NodeNotVisibleError, gnErr.Code)
	assert.Equal(t, 0, s.State().Len())

	_, ok = s.Hover(taxon.Species, "Homo sapiens")
	assert.False(t, ok)
}

func TestSessionHover(t *testing.T) {
	s := session()
	require.NoError(t, s.Click(taxon.Kingdom, "Animalia"))

	tip, ok := s.Hover(taxon.Kingdom, "Animalia")
	require.True(t, ok)
	assert.Contains(t, tip, "Occurrences: 5,000")

	tip, ok = s.Hover(taxon.Phylum, "Chordata")
	require.True(t, ok)
	assert.Contains(t, tip, "80.0% of Animalia")
}
