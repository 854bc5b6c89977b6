// ABOUTME: Backend parity tests for the document store.
// ABOUTME: Runs the same contract against SQLite, Badger and (optionally) SurrealDB.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type backendFactory struct {
	name string
	open func(t *testing.T) Backend
}

func backends() []backendFactory {
	return []backendFactory{
		{"sqlite", func(t *testing.T) Backend { return setupTestSQLite(t) }},
		{"badger", func(t *testing.T) Backend { return setupTestBadger(t) }},
		{"surrealdb", func(t *testing.T) Backend { return setupTestSurreal(t) }},
	}
}

// setupTestSQLite creates a SQLite store in a temp directory.
func setupTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "fittrack.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestBadger creates an in-memory badger store.
func setupTestBadger(t *testing.T) *Badger {
	t.Helper()
	db, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestSurreal connects to FITTRACK_SURREAL_URL or skips.
func setupTestSurreal(t *testing.T) *Surreal {
	t.Helper()
	url := os.Getenv("FITTRACK_SURREAL_URL")
	if url == "" {
		t.Skip("FITTRACK_SURREAL_URL not set")
	}
	db, err := OpenSurreal(context.Background(), SurrealConfig{
		URL:       url,
		Namespace: "fittrack_test",
		Database:  NewID(),
		Username:  "root",
		Password:  "root",
	})
	if err != nil {
		t.Fatalf("OpenSurreal failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBackendPutGet(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			ctx := context.Background()
			id := NewID()

			if err := b.Put(ctx, Users, id, []byte(`{"_id":"`+id+`","name":"Ada"}`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			body, err := b.Get(ctx, Users, id)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			got, err := documentID(body)
			if err != nil || got != id {
				t.Errorf("documentID = %q (%v), want %q", got, err, id)
			}

			if _, err := b.Get(ctx, Users, NewID()); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing error = %v, want ErrNotFound", err)
			}
			if _, err := b.Get(ctx, Workouts, id); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get in other collection error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBackendFind(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			ctx := context.Background()

			docs := map[string]string{
				NewID(): "u1",
				NewID(): "u1",
				NewID(): "u2",
			}
			for id, user := range docs {
				body := []byte(`{"_id":"` + id + `","user":"` + user + `","reps":5}`)
				if err := b.Put(ctx, Workouts, id, body); err != nil {
					t.Fatalf("Put failed: %v", err)
				}
			}

			tests := []struct {
				name   string
				filter Filter
				want   int
			}{
				{"all", nil, 3},
				{"by user", Filter{"user": "u1"}, 2},
				{"no match", Filter{"user": "nobody"}, 0},
				{"non string field", Filter{"reps": "5"}, 0},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := b.Find(ctx, Workouts, tt.filter)
					if err != nil {
						t.Fatalf("Find failed: %v", err)
					}
					if len(got) != tt.want {
						t.Errorf("Find = %d docs, want %d", len(got), tt.want)
					}
				})
			}

			if _, err := b.Find(ctx, Workouts, Filter{"bad field": "x"}); err == nil {
				t.Error("expected error for invalid filter field")
			}
		})
	}
}

func TestBackendDelete(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			ctx := context.Background()
			id := NewID()

			if err := b.Put(ctx, Exercises, id, []byte(`{"_id":"`+id+`"}`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			if err := b.Delete(ctx, Exercises, id); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if err := b.Delete(ctx, Exercises, id); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	valid := NewID()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", valid, false},
		{"uppercase", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", false},
		{"empty", "", true},
		{"garbage", "not-an-id", true},
		{"short hex", "abc123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidID) {
				t.Errorf("error = %v, want ErrInvalidID", err)
			}
			if !tt.wantErr && got == "" {
				t.Error("expected canonical id")
			}
		})
	}
}

func TestSQLiteFindKeepsInsertionOrder(t *testing.T) {
	b := setupTestSQLite(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		id := NewID()
		ids = append(ids, id)
		if err := b.Put(ctx, Users, id, []byte(`{"_id":"`+id+`"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	// Replacing a document must not move it.
	if err := b.Put(ctx, Users, ids[0], []byte(`{"_id":"`+ids[0]+`","name":"x"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	docs, err := b.Find(ctx, Users, nil)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	for i, doc := range docs {
		if got, _ := documentID(doc); got != ids[i] {
			t.Errorf("docs[%d] = %s, want %s", i, got, ids[i])
		}
	}
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fittrack.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected database file: %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %s, want %s", db.Path(), path)
	}
}

func TestBadgerFindFollowsCreationOrder(t *testing.T) {
	b := setupTestBadger(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 20; i++ {
		id := NewID()
		ids = append(ids, id)
		if err := b.Put(ctx, Exercises, id, []byte(`{"_id":"`+id+`"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	docs, err := b.Find(ctx, Exercises, nil)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	for i, doc := range docs {
		if got, _ := documentID(doc); got != ids[i] {
			t.Fatalf("docs[%d] = %s, want %s", i, got, ids[i])
		}
	}
}
