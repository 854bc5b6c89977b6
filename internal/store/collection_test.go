// ABOUTME: Tests for the typed Collection wrapper.
// ABOUTME: Covers id assignment, updates of missing documents and bulk deletes.
package store

import (
	"context"
	"errors"
	"testing"
)

type testDoc struct {
	ID   string `json:"_id"`
	User string `json:"user"`
	Name string `json:"name"`
}

func TestCollectionInsertAssignsID(t *testing.T) {
	col := NewCollection[testDoc](setupTestBadger(t), "docs")
	ctx := context.Background()

	doc := &testDoc{User: "u1", Name: "first"}
	id, err := col.Insert(ctx, doc)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if doc.ID != id {
		t.Errorf("doc.ID = %q, want %q", doc.ID, id)
	}
	if _, err := ParseID(id); err != nil {
		t.Errorf("generated id %q does not parse: %v", id, err)
	}

	got, err := col.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "first" || got.ID != id {
		t.Errorf("Get = %+v", got)
	}
}

func TestCollectionUpdate(t *testing.T) {
	col := NewCollection[testDoc](setupTestSQLite(t), "docs")
	ctx := context.Background()

	doc := &testDoc{Name: "before"}
	id, _ := col.Insert(ctx, doc)

	doc.Name = "after"
	doc.ID = "ignored"
	if err := col.Update(ctx, id, doc); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := col.Get(ctx, id)
	if got.Name != "after" || got.ID != id {
		t.Errorf("Get after update = %+v", got)
	}

	if err := col.Update(ctx, NewID(), doc); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing error = %v, want ErrNotFound", err)
	}
}

func TestCollectionFindOneAndDeleteMany(t *testing.T) {
	col := NewCollection[testDoc](setupTestBadger(t), "docs")
	ctx := context.Background()

	for _, u := range []string{"u1", "u1", "u2"} {
		if _, err := col.Insert(ctx, &testDoc{User: u}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	if _, err := col.FindOne(ctx, Filter{"user": "u3"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindOne error = %v, want ErrNotFound", err)
	}

	ids, err := col.DeleteMany(ctx, Filter{"user": "u1"})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("DeleteMany removed %d, want 2", len(ids))
	}

	rest, _ := col.Find(ctx, nil)
	if len(rest) != 1 || rest[0].User != "u2" {
		t.Errorf("remaining = %+v, want one u2 doc", rest)
	}
}
