package gqlapi

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string         `json:"query" binding:"required"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Executor runs requests against a prepared schema.
type Executor struct {
	schema graphql.Schema
}

// NewExecutor builds the schema once for the life of the process.
func NewExecutor(r *Resolver) (*Executor, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}
	return &Executor{schema: schema}, nil
}

// Execute runs req on behalf of userID inside workplaceID.
func (e *Executor) Execute(ctx context.Context, workplaceID, userID string, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        WithScope(ctx, workplaceID, userID),
	})
}
