package graphqlbridge

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// Executor runs requests against a built schema. It is safe for concurrent use.
type Executor struct {
	log    *logger.Logger
	schema graphql.Schema
}

func NewExecutor(log *logger.Logger, schema graphql.Schema) *Executor {
	return &Executor{
		log:    log,
		schema: schema,
	}
}

// Schema returns the schema requests are executed against.
func (e *Executor) Schema() graphql.Schema {
	return e.schema
}

// Execute runs one request. Query errors are reported in the result, never as
// a Go error.
func (e *Executor) Execute(ctx context.Context, req Request) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	if result.HasErrors() {
		msgs := make([]string, 0, len(result.Errors))
		for _, fe := range result.Errors {
			msgs = append(msgs, fe.Message)
		}
		e.log.InfoContext(ctx, "graphql request completed with errors",
			"operation", req.OperationName,
			"errors", msgs)
	}

	return result
}
