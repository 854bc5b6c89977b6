// ABOUTME: Document store abstraction over pluggable backends.
// ABOUTME: Backends persist raw JSON documents grouped into named collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Collection names used by the fitness service.
const (
	Users             = "users"
	Workouts          = "workouts"
	Exercises         = "exercises"
	CalorieEntries    = "calorieEntries"
	BodyWeightEntries = "bodyWeightEntries"
	WorkoutTemplates  = "workoutTemplates"
	UserGoals         = "userGoals"
	WorkoutRoutines   = "workoutRoutines"
)

// AllCollections lists every collection in dependency order (owners first).
var AllCollections = []string{
	Users,
	Workouts,
	Exercises,
	CalorieEntries,
	BodyWeightEntries,
	WorkoutTemplates,
	UserGoals,
	WorkoutRoutines,
}

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when a string cannot be converted to a document id.
	ErrInvalidID = errors.New("invalid document id")
)

// Filter matches documents whose top-level string fields equal the given values.
// An empty filter matches every document in the collection.
type Filter map[string]string

// Backend persists JSON documents. Implementations must be safe for concurrent use.
type Backend interface {
	// Put inserts or replaces the document stored under collection/id.
	Put(ctx context.Context, collection, id string, doc []byte) error
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) ([]byte, error)
	// Find returns every document matching filter.
	Find(ctx context.Context, collection string, filter Filter) ([][]byte, error)
	// Delete removes the document or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// NewID generates a fresh time-ordered document id.
// Ids sort in creation order, which key-ordered backends rely on.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ParseID converts a caller supplied string into a canonical document id.
func ParseID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidID)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id.String(), nil
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validField guards filter keys that backends splice into queries.
func validField(name string) error {
	if !fieldPattern.MatchString(name) {
		return fmt.Errorf("invalid filter field: %q", name)
	}
	return nil
}

// matches reports whether the decoded document satisfies filter.
func matches(doc map[string]any, filter Filter) bool {
	for field, want := range filter {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
