// Package api registers the service routes.
package api

import (
	"context"
	"expvar"
	"net/http"

	"github.com/jrazmi/usergraph/app/usergraph/config"
	"github.com/jrazmi/usergraph/bridge/graphqlbridge"
	"github.com/jrazmi/usergraph/infrastructure/web"
)

type health struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

type version struct {
	Build string `json:"build"`
}

// AddHandlers registers the health, version and GraphQL routes.
func AddHandlers(wh *web.WebHandler, cfg config.Usergraph) *web.WebHandler {
	wh.GET("/health", func(ctx context.Context, r *http.Request) web.Encoder {
		h := health{Status: "ok"}
		if cfg.UserCount != nil {
			h.Users = cfg.UserCount()
		}
		return web.NewJSONResponse(h)
	})

	wh.GET("/version", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(version{Build: cfg.Build})
	})

	if cfg.API.DebugVars {
		wh.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	graphqlbridge.AddHttpRoutes(wh.Group(""), graphqlbridge.Config{
		Log:      cfg.Logger,
		Executor: cfg.Executor,
		Path:     cfg.API.GraphQLPath,
	})

	return wh
}
