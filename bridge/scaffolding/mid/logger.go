package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/usergraph/infrastructure/web"
	"github.com/jrazmi/usergraph/sdk/logger"
)

// Logger writes a line when a request starts and when it completes.
func Logger(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = path + "?" + r.URL.RawQuery
			}

			log.InfoContext(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			attrs := []any{"method", r.Method, "path", path, "remoteaddr", r.RemoteAddr, "since", time.Since(now).String()}
			if err := isError(resp); err != nil {
				attrs = append(attrs, "err", err)
			}
			log.InfoContext(ctx, "request completed", attrs...)

			return resp
		}
	}
}
