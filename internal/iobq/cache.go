package iobq

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gnuuid"
)

// Cache keeps query results between extraction runs in a Badger store
// at ~/.cache/gbiftree/bigquery. Results are keyed by a UUIDv5 of the
// SQL text, so a changed query never hits a stale entry.
type Cache struct {
	dir string
	db  *badger.DB
}

// NewCache creates the cache directory if it does not exist.
func NewCache(cacheDir string) (*Cache, error) {
	err := gnsys.MakeDir(cacheDir)
	if err != nil {
		return nil, CacheError(cacheDir, err)
	}
	return &Cache{dir: cacheDir}, nil
}

// Open opens the Badger database for the cache.
func (c *Cache) Open() error {
	if c.db != nil {
		slog.Warn("Cache database is already open")
		return nil
	}

	options := badger.DefaultOptions(c.dir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return CacheError(c.dir, err)
	}

	c.db = db
	slog.Info("Cache database opened", "dir", c.dir)
	return nil
}

// Close closes the Badger database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		return CacheError(c.dir, err)
	}
	return nil
}

// Key returns the cache key of a query.
func Key(sql string) string {
	return gnuuid.New(sql).String()
}

// Store saves a result encoded with GOB.
func (c *Cache) Store(sql string, res *Result) error {
	if c.db == nil {
		return CacheNotOpenError(c.dir)
	}

	enc := gnfmt.GNgob{}
	val, err := enc.Encode(res)
	if err != nil {
		return CacheError(c.dir, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key(sql)), val)
	})
	if err != nil {
		return CacheError(c.dir, err)
	}
	return nil
}

// Get returns a cached result or nil if the query was never stored.
func (c *Cache) Get(sql string) (*Result, error) {
	if c.db == nil {
		return nil, CacheNotOpenError(c.dir)
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key(sql)))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, CacheError(c.dir, err)
	}
	if val == nil {
		return nil, nil
	}

	enc := gnfmt.GNgob{}
	var res Result
	if err = enc.Decode(val, &res); err != nil {
		return nil, CacheError(c.dir, err)
	}
	return &res, nil
}
