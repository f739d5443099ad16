package taxon_test

import (
	"testing"

	"github.com/gnames/gbiftree/pkg/errcode"
	"github.com/gnames/gbiftree/pkg/taxon"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		want  taxon.Level
	}{
		{"singular", "phylum", taxon.Phylum},
		{"plural", "phyla", taxon.Phylum},
		{"case and spaces", "  Genus ", taxon.Genus},
		{"plural families", "families", taxon.Family},
		{"species", "species", taxon.Species},
		{"order", "order", taxon.Order},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			l, err := taxon.NewLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestNewLevelUnknown(t *testing.T) {
	l, err := taxon.NewLevel("tribe")
	require.Error(t, err)
	assert.Equal(t, taxon.Unknown, l)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.NotFoundError, gnErr.Code)
	assert.Equal(t, "tribe", gnErr.Vars[0])
	assert.Contains(t, gnErr.Err.Error(), "unknown taxonomy level")
}

func TestLevelOrder(t *testing.T) {
	levels := taxon.Levels()
	require.Len(t, levels, 7)
	assert.Equal(t, taxon.Kingdom, levels[0])
	assert.Equal(t, taxon.Species, levels[6])

	for i := 1; i < len(levels); i++ {
		assert.True(t, levels[i].Deeper(levels[i-1]))
		assert.False(t, levels[i-1].Deeper(levels[i]))
		assert.False(t, levels[i].Deeper(levels[i]))
	}
}

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "class", taxon.Class.String())
	assert.Equal(t, "classes", taxon.Class.Plural())
	assert.Equal(t, "genera", taxon.Genus.Plural())
	assert.Equal(t, "unknown", taxon.Level(42).String())
	assert.False(t, taxon.Level(42).Valid())
	assert.False(t, taxon.Unknown.Valid())
	assert.True(t, taxon.Species.Valid())
}
