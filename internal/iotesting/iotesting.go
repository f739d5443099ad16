// Package iotesting provides shared fixtures for tests that go through
// the file system. It is an internal package for test infrastructure
// only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"
)

// Data is a small data set in the layout of a data directory: two
// kingdoms, three phyla, top species of two phyla, top countries and a
// common-names file.
var Data = map[string]string{
	"kingdom.csv": `kingdom,occurrence_count,individual_count
Animalia,5000,120
Plantae,3000,
`,
	"phyla.csv": `phylum,kingdom,occurrence_count,individual_count
Chordata,Animalia,4000,100
Ctenophora,Animalia,1000,20
Tracheophyta,Plantae,3000,
`,
	"species.csv": `species,phylum,occurrence_count,individual_count
Pleurobrachia pileus,Ctenophora,300,12
Mnemiopsis leidyi,Ctenophora,200,
Parus major,Chordata,2500,80
`,
	"phyla-country.csv": `phylum,country,occurrence_count,rank
Ctenophora,NO,400,1
Ctenophora,US,100,2
Chordata,US,2000,1
`,
	"common-names.yaml": `species:
  Pleurobrachia pileus:
    common_name: Sea Gooseberry
    description: A comb jelly of the North Atlantic
phyla:
  Ctenophora:
    common_name: Comb jellies
`,
}

// WriteData writes Data into a temporary directory and returns its path.
// The directory is removed when the test finishes.
func WriteData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range Data {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("cannot write %s: %v", path, err)
		}
	}
	return dir
}

// SetupHome points HOME to a temporary directory, so config, cache and
// log files of a test never touch the real ones. Returns the new home.
func SetupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
