package gbiftree

import (
	"context"
	"io"

	"github.com/gnames/gbiftree/pkg/taxon"
)

// Loader reads the aggregate tables of a data set. Tables are loaded
// once and stay immutable for the session.
type Loader interface {
	// Load returns all tables found. A missing, empty or malformed
	// required table is an error and no view can be built.
	Load() (*taxon.Tables, error)
}

// Extractor is the batch job that produces the aggregate tables.
type Extractor interface {
	// Extract runs all queries and writes one CSV table per query.
	Extract(ctx context.Context) error
}

// Renderer draws a View.
type Renderer interface {
	Render(w io.Writer, v View) error
}
