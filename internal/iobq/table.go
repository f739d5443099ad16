package iobq

import (
	"encoding/csv"
	"os"
)

// writeTable saves a result as CSV with a header row.
func writeTable(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteTableError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(res.Columns); err != nil {
		return WriteTableError(path, err)
	}
	if err = w.WriteAll(res.Rows); err != nil {
		return WriteTableError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteTableError(path, err)
	}
	return nil
}
