// ABOUTME: Typed collection wrapper that serializes documents as JSON.
// ABOUTME: Generates ids on insert and enforces existence on update.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection provides typed access to one collection of a Backend.
// T must carry its id under the JSON key "_id".
type Collection[T any] struct {
	backend Backend
	name    string
}

// NewCollection binds a typed collection to the backend.
func NewCollection[T any](b Backend, name string) *Collection[T] {
	return &Collection[T]{backend: b, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Insert stores doc under a new id and writes the id back into doc.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) (string, error) {
	id := NewID()
	body, err := withID(doc, id)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Put(ctx, c.name, id, body); err != nil {
		return "", fmt.Errorf("insert %s: %w", c.name, err)
	}
	if err := json.Unmarshal(body, doc); err != nil {
		return "", fmt.Errorf("decode %s: %w", c.name, err)
	}
	return id, nil
}

// Get loads the document with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	body, err := c.backend.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", c.name, id, err)
	}
	return &doc, nil
}

// Find returns every document matching filter.
func (c *Collection[T]) Find(ctx context.Context, filter Filter) ([]*T, error) {
	bodies, err := c.backend.Find(ctx, c.name, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	docs := make([]*T, 0, len(bodies))
	for _, body := range bodies {
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// FindOne returns the first document matching filter or ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	docs, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

// Update replaces the document with the given id. The document must already exist.
func (c *Collection[T]) Update(ctx context.Context, id string, doc *T) error {
	if _, err := c.backend.Get(ctx, c.name, id); err != nil {
		return err
	}
	body, err := withID(doc, id)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Put(ctx, c.name, id, body); err != nil {
		return fmt.Errorf("update %s %s: %w", c.name, id, err)
	}
	return nil
}

// Delete removes the document with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.backend.Delete(ctx, c.name, id)
}

// DeleteMany removes every document matching filter and returns their ids.
func (c *Collection[T]) DeleteMany(ctx context.Context, filter Filter) ([]string, error) {
	bodies, err := c.backend.Find(ctx, c.name, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	ids := make([]string, 0, len(bodies))
	for _, body := range bodies {
		id, err := documentID(body)
		if err != nil {
			return ids, fmt.Errorf("decode %s: %w", c.name, err)
		}
		if err := c.backend.Delete(ctx, c.name, id); err != nil && !errors.Is(err, ErrNotFound) {
			return ids, fmt.Errorf("delete %s %s: %w", c.name, id, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// withID encodes doc with its "_id" field forced to id.
func withID(doc any, id string) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["_id"] = id
	return json.Marshal(fields)
}

// documentID extracts the "_id" field from an encoded document.
func documentID(body []byte) (string, error) {
	var head struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return "", err
	}
	if head.ID == "" {
		return "", errors.New("document has no _id")
	}
	return head.ID, nil
}
