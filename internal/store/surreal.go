// ABOUTME: SurrealDB document backend over the websocket RPC client.
// ABOUTME: Documents become records "<collection>:<id>" queried with bound parameters.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// SurrealConfig holds connection settings for a SurrealDB server.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Surreal stores documents in SurrealDB tables named after collections.
type Surreal struct {
	db *surrealdb.DB
}

var _ Backend = (*Surreal)(nil)

// OpenSurreal connects, signs in and selects the namespace and database.
func OpenSurreal(ctx context.Context, cfg SurrealConfig) (*Surreal, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}

	if cfg.Username != "" && cfg.Password != "" {
		if _, err := db.SignIn(ctx, surrealdb.Auth{
			Username: cfg.Username,
			Password: cfg.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("authenticate surrealdb: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("use namespace/database: %w", err)
	}

	return &Surreal{db: db}, nil
}

// Close closes the connection.
func (s *Surreal) Close() error {
	return s.db.Close(context.Background())
}

// Put upserts the record. The "_id" field is kept in the record body.
func (s *Surreal) Put(ctx context.Context, collection, id string, doc []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	if _, err := surrealdb.Upsert[map[string]any](ctx, s.db, models.NewRecordID(collection, id), fields); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get returns the document or ErrNotFound.
func (s *Surreal) Get(ctx context.Context, collection, id string) ([]byte, error) {
	record, err := surrealdb.Select[map[string]any](ctx, s.db, models.NewRecordID(collection, id))
	if err != nil {
		if isSurrealNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if record == nil || len(*record) == 0 {
		return nil, ErrNotFound
	}
	return encodeRecord(*record)
}

// Find runs a SELECT with one equality clause per filter field.
func (s *Surreal) Find(ctx context.Context, collection string, filter Filter) ([][]byte, error) {
	vars := map[string]any{"tb": collection}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var clauses []string
	for i, field := range fields {
		if err := validField(field); err != nil {
			return nil, err
		}
		param := fmt.Sprintf("p%d", i)
		clauses = append(clauses, fmt.Sprintf("`%s` = $%s", field, param))
		vars[param] = filter[field]
	}

	query := "SELECT * FROM type::table($tb)"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY `_id`"

	results, err := surrealdb.Query[[]map[string]any](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}

	var docs [][]byte
	if results == nil {
		return docs, nil
	}
	for _, res := range *results {
		for _, record := range res.Result {
			body, err := encodeRecord(record)
			if err != nil {
				return nil, err
			}
			docs = append(docs, body)
		}
	}
	return docs, nil
}

// Delete removes the record or returns ErrNotFound.
func (s *Surreal) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.Get(ctx, collection, id); err != nil {
		return err
	}
	if _, err := surrealdb.Delete[map[string]any](ctx, s.db, models.NewRecordID(collection, id)); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// encodeRecord drops the SurrealDB record id and re-encodes the body as JSON.
func encodeRecord(record map[string]any) ([]byte, error) {
	delete(record, "id")
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return body, nil
}

func isSurrealNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Expected a single or multiple results but got 0") ||
		strings.Contains(msg, "cannot unmarshal array into Go value")
}
