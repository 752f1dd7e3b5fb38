package graphqlbridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/usergraph/bridge/scaffolding/errs"
	"github.com/jrazmi/usergraph/infrastructure/web"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// DefaultPath is the endpoint used when Config.Path is empty.
const DefaultPath = "/gql"

// Config holds configuration for the GraphQL bridge
type Config struct {
	Log        *logger.Logger
	Executor   *Executor
	Path       string
	Middleware []web.Middleware
}

type bridge struct {
	log      *logger.Logger
	executor *Executor
}

// AddHttpRoutes registers the GraphQL endpoint for GET and POST.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := &bridge{
		log:      cfg.Log,
		executor: cfg.Executor,
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	group.POST(path, b.httpPost, cfg.Middleware...)
	group.GET(path, b.httpGet, cfg.Middleware...)
}

func (b *bridge) httpPost(ctx context.Context, r *http.Request) web.Encoder {
	var req Request
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	return b.execute(ctx, req)
}

func (b *bridge) httpGet(ctx context.Context, r *http.Request) web.Encoder {
	req, err := requestFromURL(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	return b.execute(ctx, req)
}

func (b *bridge) execute(ctx context.Context, req Request) web.Encoder {
	result := b.executor.Execute(ctx, req)
	return web.NewJSONResponse(Response{
		Data:   result.Data,
		Errors: result.Errors,
	})
}
