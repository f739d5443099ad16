package iobq

import (
	"fmt"

	"github.com/gnames/gbiftree/pkg/config"
	"github.com/gnames/gbiftree/pkg/taxon"
)

// OccurrencesTable is the public GBIF snapshot in BigQuery.
const OccurrencesTable = "`bigquery-public-data.gbif.occurrences`"

// Query is an aggregation and the file its result is written to.
type Query struct {
	File string
	SQL  string
}

// Queries returns the extraction queries for the configuration. The
// default set produces kingdoms, phyla, countries of phyla and top species
// per phylum. The full hierarchy adds classes, orders, families and
// genera, and ranks species within genera instead.
func Queries(cfg config.BigQueryConfig) []Query {
	res := []Query{
		{File: taxon.Kingdom.FileName(), SQL: kingdomSQL()},
		{File: taxon.Phylum.FileName(), SQL: levelSQL(taxon.Phylum, taxon.Kingdom)},
		{File: taxon.CountriesFile, SQL: countriesSQL(cfg.TopCountries)},
	}
	if !cfg.FullHierarchy {
		res = append(res, Query{
			File: taxon.Species.FileName(),
			SQL:  speciesByPhylumSQL(cfg.TopSpecies),
		})
		return res
	}

	chain := []taxon.Level{
		taxon.Phylum, taxon.Class, taxon.Order, taxon.Family, taxon.Genus,
	}
	for i := 1; i < len(chain); i++ {
		res = append(res, Query{
			File: chain[i].FileName(),
			SQL:  levelSQL(chain[i], chain[i-1]),
		})
	}
	res = append(res, Query{
		File: taxon.Species.FileName(),
		SQL:  speciesByGenusSQL(cfg.TopSpecies),
	})
	return res
}

// column quotes reserved words.
func column(l taxon.Level) string {
	if l == taxon.Order {
		return "`order`"
	}
	return l.String()
}

func kingdomSQL() string {
	return fmt.Sprintf(`SELECT
  COALESCE(kingdom, 'incertae sedis') AS kingdom,
  COUNT(*) AS occurrence_count,
  SUM(CAST(individualcount AS INT64)) AS individual_count
FROM %s
WHERE occurrencestatus = 'PRESENT'
GROUP BY kingdom
ORDER BY kingdom`, OccurrencesTable)
}

func levelSQL(l, parent taxon.Level) string {
	c, p := column(l), column(parent)
	return fmt.Sprintf(`SELECT
  %[1]s,
  %[2]s,
  COUNT(*) AS occurrence_count,
  SUM(CAST(individualcount AS INT64)) AS individual_count
FROM %[3]s
WHERE %[1]s IS NOT NULL
  AND %[2]s IS NOT NULL
  AND occurrencestatus = 'PRESENT'
GROUP BY %[1]s, %[2]s
ORDER BY %[1]s`, c, p, OccurrencesTable)
}

func countriesSQL(top int) string {
	return fmt.Sprintf(`WITH ranked AS (
  SELECT
    phylum,
    countrycode AS country,
    COUNT(*) AS occurrence_count,
    ROW_NUMBER() OVER (PARTITION BY phylum ORDER BY COUNT(*) DESC) AS rank
  FROM %s
  WHERE phylum IS NOT NULL
    AND countrycode IS NOT NULL
    AND occurrencestatus = 'PRESENT'
  GROUP BY phylum, countrycode
)
SELECT phylum, country, occurrence_count, rank
FROM ranked
WHERE rank <= %d
ORDER BY phylum, rank`, OccurrencesTable, top)
}

func speciesByPhylumSQL(top int) string {
	return fmt.Sprintf(`WITH ranked AS (
  SELECT
    species,
    phylum,
    COUNT(*) AS occurrence_count,
    ROW_NUMBER() OVER (PARTITION BY phylum ORDER BY COUNT(*) DESC) AS rank
  FROM %s
  WHERE species IS NOT NULL
    AND phylum IS NOT NULL
    AND occurrencestatus = 'PRESENT'
  GROUP BY species, phylum
)
SELECT species, phylum, occurrence_count, rank
FROM ranked
WHERE rank <= %d
ORDER BY phylum, rank`, OccurrencesTable, top)
}

func speciesByGenusSQL(top int) string {
	return fmt.Sprintf(`WITH ranked AS (
  SELECT
    species,
    genus,
    COUNT(*) AS occurrence_count,
    SUM(CAST(individualcount AS INT64)) AS individual_count,
    ROW_NUMBER() OVER (PARTITION BY genus ORDER BY COUNT(*) DESC) AS rank
  FROM %s
  WHERE species IS NOT NULL
    AND genus IS NOT NULL
    AND occurrencestatus = 'PRESENT'
  GROUP BY species, genus
)
SELECT species, genus, occurrence_count, individual_count, rank
FROM ranked
WHERE rank <= %d
ORDER BY genus, rank`, OccurrencesTable, top)
}
