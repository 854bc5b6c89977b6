// ABOUTME: Badger key-value document backend.
// ABOUTME: Keys are "<collection>/<id>" and filters are evaluated during prefix scans.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// Badger stores documents in an embedded badger database.
type Badger struct {
	db *badger.DB
}

var _ Backend = (*Badger)(nil)

// OpenBadger opens a badger database in dir.
func OpenBadger(dir string) (*Badger, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

// OpenBadgerInMemory opens a badger database that lives only in memory.
func OpenBadgerInMemory() (*Badger, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func badgerKey(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

// Close closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Put inserts or replaces a document.
func (b *Badger) Put(_ context.Context, collection, id string, doc []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(collection, id), doc)
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get returns the document or ErrNotFound.
func (b *Badger) Get(_ context.Context, collection, id string) ([]byte, error) {
	var doc []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(collection, id))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Find scans the collection prefix and keeps documents matching filter.
func (b *Badger) Find(ctx context.Context, collection string, filter Filter) ([][]byte, error) {
	for field := range filter {
		if err := validField(field); err != nil {
			return nil, err
		}
	}

	var docs [][]byte
	prefix := []byte(collection + "/")
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			if len(filter) > 0 {
				var fields map[string]any
				if err := json.Unmarshal(body, &fields); err != nil {
					return err
				}
				if !matches(fields, filter) {
					continue
				}
			}
			docs = append(docs, body)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return docs, nil
}

// Delete removes a document or returns ErrNotFound.
func (b *Badger) Delete(_ context.Context, collection, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		key := badgerKey(collection, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
