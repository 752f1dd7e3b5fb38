package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jrazmi/usergraph/bridge/graphqlbridge"
	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/core/repositories/userrepo/stores/usermemstore"
	"github.com/jrazmi/usergraph/core/resolvers/userresolver"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// NewExecutor wires users through the same store, resolver and schema the
// service uses.
func NewExecutor(log *logger.Logger, users []userrepo.User) (*graphqlbridge.Executor, error) {
	store := usermemstore.NewStore(log, users)
	resolver := userresolver.New(log, userrepo.NewRepository(log, store))

	schema, err := graphqlbridge.NewSchema(graphqlbridge.UserOperations(resolver))
	if err != nil {
		return nil, err
	}
	return graphqlbridge.NewExecutor(log, schema), nil
}

// Query executes one GraphQL document in process and writes the JSON
// response to out. The document is the -query flag or the remaining args.
func Query(ctx context.Context, log *logger.Logger, args []string, exec *graphqlbridge.Executor, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(out)

	query := fs.String("query", "", "GraphQL document to execute")
	variables := fs.String("variables", "", "JSON object of variable values")
	operation := fs.String("operation", "", "operation name to run when the document has several")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ErrHelp
		}
		return fmt.Errorf("parse flags: %w", err)
	}

	req := graphqlbridge.Request{
		Query:         *query,
		OperationName: *operation,
	}
	if req.Query == "" {
		req.Query = strings.Join(fs.Args(), " ")
	}
	if *variables != "" {
		if err := json.Unmarshal([]byte(*variables), &req.Variables); err != nil {
			return fmt.Errorf("variables: %w", err)
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	log.DebugContext(ctx, "executing query", "operation", req.OperationName)

	result := exec.Execute(ctx, req)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(graphqlbridge.Response{
		Data:   result.Data,
		Errors: result.Errors,
	})
}
