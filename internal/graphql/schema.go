// ABOUTME: Embedded GraphQL schema and its binding to the fitness resolvers.
// ABOUTME: Query and Mutation fields share the root Resolver.
package graphql

import (
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"github.com/harperreed/fittrack/internal/fitness"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the schema and binds it to a resolver over svc.
func NewSchema(svc *fitness.Service) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(svc), graphql.MaxParallelism(10))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	svc *fitness.Service
}

// NewResolver creates the root resolver.
func NewResolver(svc *fitness.Service) *Resolver {
	return &Resolver{svc: svc}
}

// apiErr hands service errors to the executor as *fitness.Error so their code
// lands in the response extensions.
func apiErr(err error) error {
	if err == nil {
		return nil
	}
	return fitness.AsError(err)
}

func wrap[T any, R any](items []T, f func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, f(item))
	}
	return out
}
