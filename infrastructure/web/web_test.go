package web_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/usergraph/infrastructure/web"
	"github.com/jrazmi/usergraph/sdk/logger"
	"github.com/jrazmi/usergraph/sdk/telemetry"
)

type statusError struct{}

func (statusError) Error() string   { return "teapot" }
func (statusError) HTTPStatus() int { return http.StatusTeapot }
func (statusError) Encode() ([]byte, string, error) {
	return []byte(`{"error":"teapot"}`), "application/json", nil
}

type plainError struct{}

func (plainError) Error() string                   { return "boom" }
func (plainError) Encode() ([]byte, string, error) { return []byte("boom"), "text/plain", nil }

func newHandler(opts ...web.HandlerOption) *web.WebHandler {
	base := []web.HandlerOption{
		web.WithLogging(logger.NewDefault(logger.WithOutput(io.Discard))),
		web.WithTelemetry(telemetry.NewTelemetry()),
	}
	return web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"*"}}, append(base, opts...)...)
}

func TestHandle_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	wh := newHandler(web.WithGlobalMiddleware(tag("global-1"), tag("global-2")))
	api := wh.Group("/api/", tag("group"))
	api.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		return web.NewJSONResponse(map[string]string{"ping": "pong"})
	}, tag("route"))

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.Join(order, ","); got != "global-1,global-2,group,route,handler" {
		t.Errorf("unexpected middleware order %q", got)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"ping":"pong"}` {
		t.Errorf("unexpected body %q", body)
	}
	if rec.Header().Get(web.TraceHeader) == "" {
		t.Error("expected trace header on response")
	}
}

func TestRespond_Status(t *testing.T) {
	tests := []struct {
		name   string
		resp   web.Encoder
		status int
	}{
		{"json", web.NewJSONResponse("ok"), http.StatusOK},
		{"json with status", web.NewJSONResponseWithStatus("made", http.StatusCreated), http.StatusCreated},
		{"nil", nil, http.StatusNoContent},
		{"status error", statusError{}, http.StatusTeapot},
		{"plain error", plainError{}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := web.Respond(context.Background(), rec, tt.resp); err != nil {
				t.Fatalf("respond: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestRespond_ClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	if err := web.Respond(ctx, rec, web.NewJSONResponse("late")); !errors.Is(err, web.ErrClientGone) {
		t.Errorf("expected ErrClientGone, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Error("expected nothing written for canceled context")
	}
}

func TestHandle_TracePropagation(t *testing.T) {
	wh := newHandler()
	tel := telemetry.NewTelemetry()
	var seen string
	wh.GET("/trace", func(ctx context.Context, r *http.Request) web.Encoder {
		seen = tel.GetTraceID(ctx)
		return web.NewNoResponse()
	})

	inbound := "6f1c1c2e-98a3-4c1a-9d2e-2b9b2d3f4a5b"
	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(web.TraceHeader, inbound)
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	if seen != inbound {
		t.Errorf("expected handler to see inbound trace id, got %q", seen)
	}
	if rec.Header().Get(web.TraceHeader) != inbound {
		t.Errorf("expected trace id echoed, got %q", rec.Header().Get(web.TraceHeader))
	}
}

func TestCORS_Preflight(t *testing.T) {
	wh := newHandler()
	wh.POST("/gql", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	req := httptest.NewRequest(http.MethodOptions, "/gql", nil)
	req.Header.Set("Origin", "http://client.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard allow origin, got %q", got)
	}
	if rec.Code >= 300 {
		t.Errorf("expected successful preflight, got %d", rec.Code)
	}
}

type payload struct {
	Name string `json:"name"`
}

func (p payload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Alice"}`, false},
		{"empty", ``, true},
		{"bad json", `{"name":`, true},
		{"fails validation", `{"name":""}`, true},
		{"too large", `{"name":"` + strings.Repeat("a", int(web.DefaultMaxBodyBytes)) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := web.Decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &p)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	err := web.Decode(httptest.NewRequest(http.MethodPost, "/", http.NoBody), &payload{})
	if !errors.Is(err, web.ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}
