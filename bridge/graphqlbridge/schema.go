// Package graphqlbridge exposes the user query operations through a GraphQL
// schema and registers the HTTP endpoint that serves it.
package graphqlbridge

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/jrazmi/usergraph/bridge/scaffolding/metrics"
	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"github.com/jrazmi/usergraph/core/resolvers/userresolver"
)

// Operation is one root query field.
type Operation struct {
	Name        string
	Description string
	Args        graphql.FieldConfigArgument
	Output      graphql.Output
	Resolve     graphql.FieldResolveFn
}

// ErrNoOperations is returned by NewSchema when given an empty table.
var ErrNoOperations = errors.New("schema needs at least one operation")

// NewSchema builds the query root from ops, in table order.
func NewSchema(ops []Operation) (graphql.Schema, error) {
	if len(ops) == 0 {
		return graphql.Schema{}, ErrNoOperations
	}

	fields := graphql.Fields{}
	for _, op := range ops {
		if _, exists := fields[op.Name]; exists {
			return graphql.Schema{}, fmt.Errorf("duplicate operation %q", op.Name)
		}
		fields[op.Name] = &graphql.Field{
			Name:        op.Name,
			Description: op.Description,
			Args:        op.Args,
			Type:        op.Output,
			Resolve:     metered(op.Name, op.Resolve),
		}
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

func metered(name string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if p.Context != nil {
			metrics.AddQuery(p.Context, name)
		}
		return fn(p)
	}
}

// userType mirrors userrepo.User. The source is a User value for list items
// and a *User for single lookups.
var userType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "User",
	Description: "A user record.",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				u, err := sourceUser(p.Source)
				if err != nil {
					return nil, err
				}
				return u.ID, nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				u, err := sourceUser(p.Source)
				if err != nil {
					return nil, err
				}
				return u.Name, nil
			},
		},
		"email": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				u, err := sourceUser(p.Source)
				if err != nil {
					return nil, err
				}
				if !u.HasEmail() {
					return nil, nil
				}
				return u.Email, nil
			},
		},
	},
})

func sourceUser(src any) (userrepo.User, error) {
	switch u := src.(type) {
	case userrepo.User:
		return u, nil
	case *userrepo.User:
		if u != nil {
			return *u, nil
		}
	}
	return userrepo.User{}, fmt.Errorf("unexpected user source %T", src)
}

// UserOperations returns the getUser and getUsers root fields backed by r.
func UserOperations(r *userresolver.Resolver) []Operation {
	return []Operation{
		{
			Name:        "getUser",
			Description: "Look up a single user by id. Returns null when no user has that id.",
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
			},
			Output: userType,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id, _ := p.Args["id"].(string)
				u, err := r.GetUser(p.Context, id)
				if err != nil {
					return nil, err
				}
				if u == nil {
					return nil, nil
				}
				return u, nil
			},
		},
		{
			Name:        "getUsers",
			Description: "List every user in store order.",
			Output:      graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return r.GetUsers(p.Context)
			},
		},
	}
}
