package iohtml

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gbiftree/pkg/gbiftree"
)

// DetailsPath returns the path of the detail page that belongs to a
// main page: "out/view.html" becomes "out/view-details.html".
func DetailsPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-details" + ext
}

// WriteFiles renders the view into path. If the view has details, they
// are written next to it and embedded into the main page. It returns
// the path of the detail page, or an empty string if there is none.
func WriteFiles(path string, v gbiftree.View, opts ...Option) (string, error) {
	var details string
	if HasDetails(v) {
		details = DetailsPath(path)
		if err := writeFile(details, func(f *os.File) error {
			return RenderDetails(f, v)
		}); err != nil {
			return "", err
		}
		opts = append(opts, OptDetailsURL(filepath.Base(details)))
	}

	r := New(opts...)
	err := writeFile(path, func(f *os.File) error {
		return r.Render(f, v)
	})
	if err != nil {
		return "", err
	}
	return details, nil
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return RenderError(path, err)
	}
	if err = render(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return RenderError(path, err)
	}
	return nil
}
