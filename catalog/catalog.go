// Package catalog persists named table schemas in a single metadata file.
// It is the process boundary the schema codec exists for: schemas written by
// one process are reconstructed by another with all lookup indices rebuilt
// and stateless primitive types resolved to the canonical shared instances.
package catalog

import (
	"errors"
	"fmt"

	"floe/lib/schema"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
)

const schemaBucket = "schemas"

type Catalog struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// Open opens (creating if needed) a catalog file. A nil logger disables
// logging.
func Open(path string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open catalog file: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(schemaBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize catalog file: %w", err)
	}
	logger.Debug("opened catalog", zap.String("path", path))
	return &Catalog{db: db, logger: logger}, nil
}

// CreateTable persists a schema under the given table name. It fails with
// ErrTableExists if the name is taken; the catalog is left unchanged on any
// failure.
func (c *Catalog) CreateTable(name string, sc *schema.Schema) error {
	data, err := schema.ToJson(sc)
	if err != nil {
		return fmt.Errorf("could not serialize schema for table %q: %w", name, err)
	}
	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(schemaBucket))
		if b.Get([]byte(name)) != nil {
			return fmt.Errorf("%w: %q", ErrTableExists, name)
		}
		return b.Put([]byte(name), data)
	})
	if err != nil {
		return err
	}
	c.logger.Info("created table",
		zap.String("table", name),
		zap.Int("columns", len(sc.Columns())),
		zap.Int("highest_field_id", sc.HighestFieldID()),
	)
	return nil
}

// LoadTable reconstructs the schema stored under the given table name.
func (c *Catalog) LoadTable(name string) (*schema.Schema, error) {
	var data []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(schemaBucket)).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %q", ErrTableNotFound, name)
		}
		// v is only valid inside the transaction.
		data = append(data, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sc, err := schema.FromJson(data)
	if err != nil {
		return nil, fmt.Errorf("could not deserialize schema of table %q: %w", name, err)
	}
	return sc, nil
}

// DropTable removes a table's schema from the catalog.
func (c *Catalog) DropTable(name string) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(schemaBucket))
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrTableNotFound, name)
		}
		return b.Delete([]byte(name))
	})
	if err != nil {
		return err
	}
	c.logger.Info("dropped table", zap.String("table", name))
	return nil
}

// ListTables returns all table names in lexicographic order.
func (c *Catalog) ListTables() ([]string, error) {
	var names []string
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(schemaBucket)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
