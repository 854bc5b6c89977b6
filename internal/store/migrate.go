// ABOUTME: Data migration between document backends.
// ABOUTME: Copies every collection from source to destination preserving ids.
package store

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds per-collection document counts.
type MigrateSummary struct {
	Counts map[string]int
}

// Total returns the number of documents copied.
func (m *MigrateSummary) Total() int {
	total := 0
	for _, n := range m.Counts {
		total += n
	}
	return total
}

// Migrate copies all documents in the given collections from src to dst.
// Existing destination documents with the same id are overwritten.
func Migrate(ctx context.Context, src, dst Backend, collections []string) (*MigrateSummary, error) {
	summary := &MigrateSummary{Counts: make(map[string]int, len(collections))}

	for _, collection := range collections {
		docs, err := src.Find(ctx, collection, nil)
		if err != nil {
			return nil, fmt.Errorf("list source %s: %w", collection, err)
		}
		for _, doc := range docs {
			id, err := documentID(doc)
			if err != nil {
				return nil, fmt.Errorf("read %s document: %w", collection, err)
			}
			if err := dst.Put(ctx, collection, id, doc); err != nil {
				return nil, fmt.Errorf("copy %s %s: %w", collection, id, err)
			}
			summary.Counts[collection]++
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any entries.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
