package hierarchy_test

import (
	"testing"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/hierarchy"
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

// minimalTables builds kingdom → phylum → species-by-phylum data.
func minimalTables() *taxon.Tables {
	t := taxon.NewTables()
	t.Levels[taxon.Kingdom] = &taxon.Table{
		Level: taxon.Kingdom,
		Records: []taxon.Record{
			rec(taxon.Kingdom, "Plantae", "", 3000),
			rec(taxon.Kingdom, "Animalia", "", 5000),
			rec(taxon.Kingdom, "Fungi", "", 3000),
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
			rec(taxon.Species, "Pleurobrachia pileus", "Ctenophora", 300),
			rec(taxon.Species, "Mnemiopsis leidyi", "Ctenophora", 200),
			rec(taxon.Species, "Bolinopsis infundibulum", "Ctenophora", 150),
			rec(taxon.Species, "Beroe cucumis", "Ctenophora", 100),
			rec(taxon.Species, "Beroe ovata", "Ctenophora", 50),
			rec(taxon.Species, "Parus major", "Chordata", 2500),
			rec(taxon.Species, "Homo sapiens", "Chordata", 1600),
		},
	}
	t.Countries = []taxon.CountryRecord{
		{Phylum: "Chordata", Country: "GB", OccurrenceCount: 10, Rank: 2},
		{Phylum: "Chordata", Country: "US", OccurrenceCount: 20, Rank: 1},
		{Phylum: "Chordata", Country: "NL", OccurrenceCount: 5, Rank: 3},
	}
	return t
}

func TestChainMinimal(t *testing.T) {
	idx := hierarchy.New(minimalTables())

	root, ok := idx.Root()
	require.True(t, ok)
	assert.Equal(t, taxon.Kingdom, root)
	assert.Equal(t,
		[]taxon.Level{taxon.Kingdom, taxon.Phylum, taxon.Species},
		idx.Levels(),
	)

	child, ok := idx.ChildLevel(taxon.Phylum)
	require.True(t, ok)
	assert.Equal(t, taxon.Species, child)

	_, ok = idx.ChildLevel(taxon.Species)
	assert.False(t, ok, "species is the leaf of the chain")

	parent, ok := idx.ParentLevel(taxon.Species)
	require.True(t, ok)
	assert.Equal(t, taxon.Phylum, parent)

	_, ok = idx.ParentLevel(taxon.Kingdom)
	assert.False(t, ok)
}

func TestChildrenOfSorted(t *testing.T) {
	idx := hierarchy.New(minimalTables())

	t.Run("root returns all records with name tie-break", func(t *testing.T) {
		res, err := idx.ChildrenOf(taxon.Kingdom, "")
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "Animalia", res[0].Name)
		assert.Equal(t, "Fungi", res[1].Name)
		assert.Equal(t, "Plantae", res[2].Name)
	})

	t.Run("filters by parent", func(t *testing.T) {
		res, err := idx.ChildrenOf(taxon.Phylum, "Animalia")
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Chordata", res[0].Name)
		assert.Equal(t, "Ctenophora", res[1].Name)
	})

	t.Run("descending order holds for every parent", func(t *testing.T) {
		for _, parent := range []string{"Animalia", "Plantae", "Fungi"} {
			res, err := idx.ChildrenOf(taxon.Phylum, parent)
			require.NoError(t, err)
			for i := 1; i < len(res); i++ {
				prev, cur := res[i-1], res[i]
				ordered := prev.OccurrenceCount > cur.OccurrenceCount ||
					(prev.OccurrenceCount == cur.OccurrenceCount &&
						prev.Name < cur.Name)
				assert.True(t, ordered, "%s before %s", prev.Name, cur.Name)
			}
		}
	})

	t.Run("unknown parent gives empty result", func(t *testing.T) {
		res, err := idx.ChildrenOf(taxon.Phylum, "Protozoa")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("level without data gives empty result", func(t *testing.T) {
		res, err := idx.ChildrenOf(taxon.Genus, "Felidae")
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestChildrenOfUnknownLevel(t *testing.T) {
	idx := hierarchy.New(minimalTables())
	_, err := idx.ChildrenOf(taxon.Level(99), "x")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.NotFoundError, gnErr.Code)
}

func TestSpeciesResidual(t *testing.T) {
	t.Run("adds residual when species do not cover phylum", func(t *testing.T) {
		idx := hierarchy.New(minimalTables())
		res, err := idx.ChildrenOf(taxon.Species, "Ctenophora")
		require.NoError(t, err)
		require.Len(t, res, 6)

		var residual *taxon.Record
		var sum int64
		for i := range res {
			sum += res[i].OccurrenceCount
			if res[i].Residual {
				residual = &res[i]
			}
		}
		require.NotNil(t, residual)
		assert.Equal(t, taxon.ResidualName, residual.Name)
		assert.Equal(t, int64(200), residual.OccurrenceCount)
		assert.Equal(t, int64(0), residual.IndividualCount)
		assert.Equal(t, int64(1000), sum)
	})

	t.Run("no residual when species cover phylum exactly", func(t *testing.T) {
		tbls := minimalTables()
		recs := tbls.Levels[taxon.Species].Records
		for i := range recs {
			if recs[i].Name == "Pleurobrachia pileus" {
				recs[i].OccurrenceCount = 500
			}
		}
		idx := hierarchy.New(tbls)
		res, err := idx.ChildrenOf(taxon.Species, "Ctenophora")
		require.NoError(t, err)
		require.Len(t, res, 5)
		for _, r := range res {
			assert.False(t, r.Residual)
		}
	})

	t.Run("no residual when species exceed phylum", func(t *testing.T) {
		idx := hierarchy.New(minimalTables())
		res, err := idx.ChildrenOf(taxon.Species, "Chordata")
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})
}

func TestTotalAndCountries(t *testing.T) {
	idx := hierarchy.New(minimalTables())

	total, ok := idx.Total(taxon.Phylum, "Chordata")
	require.True(t, ok)
	assert.Equal(t, int64(4000), total)

	_, ok = idx.Total(taxon.Phylum, "Porifera")
	assert.False(t, ok)

	cs := idx.Countries("Chordata")
	require.Len(t, cs, 3)
	assert.Equal(t, "US", cs[0].Country)
	assert.Equal(t, "GB", cs[1].Country)
	assert.Equal(t, "NL", cs[2].Country)
	assert.Empty(t, idx.Countries("Ctenophora"))
}

func TestChainFull(t *testing.T) {
	tbls := taxon.NewTables()
	levels := taxon.Levels()
	for i, l := range levels {
		tbl := &taxon.Table{Level: l}
		if i > 0 {
			tbl.ParentLevel = levels[i-1]
		}
		tbl.Records = []taxon.Record{rec(l, "n"+l.String(), "", 1)}
		tbls.Levels[l] = tbl
	}
	idx := hierarchy.New(tbls)
	assert.Equal(t, levels, idx.Levels())
}
