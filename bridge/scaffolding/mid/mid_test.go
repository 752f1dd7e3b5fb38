package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/usergraph/bridge/scaffolding/errs"
	"github.com/jrazmi/usergraph/bridge/scaffolding/mid"
	"github.com/jrazmi/usergraph/infrastructure/web"
	"github.com/jrazmi/usergraph/sdk/logger"
)

func newHandler(buf *bytes.Buffer) *web.WebHandler {
	log := logger.NewDefault(logger.WithOutput(buf), logger.WithLevel("DEBUG"))
	return web.NewWebHandler(web.HandlerOptions{},
		web.WithLogging(log),
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()),
	)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestErrors_AppError(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(&buf)
	wh.GET("/bad", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.InvalidArgument, "query is required")
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "invalid_argument" || body["message"] != "query is required" {
		t.Errorf("unexpected body %v", body)
	}
	if !strings.Contains(buf.String(), "handled error during request") {
		t.Errorf("expected error log, got %q", buf.String())
	}
}

type plainErr struct{ error }

func (plainErr) Encode() ([]byte, string, error) { return []byte("secret"), "text/plain", nil }

func TestErrors_HidesUnknownErrors(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(&buf)
	wh.GET("/oops", func(ctx context.Context, r *http.Request) web.Encoder {
		return plainErr{errors.New("db password leaked")}
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oops", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Internal Server Error" {
		t.Errorf("expected generic message, got %v", body)
	}
}

func TestPanics(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(&buf)
	wh.GET("/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if strings.Contains(body["message"], "kaboom") {
		t.Errorf("panic detail leaked to client: %v", body)
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Errorf("expected panic detail in logs, got %q", buf.String())
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	wh := newHandler(&buf)
	wh.GET("/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(map[string]string{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	out := buf.String()
	for _, want := range []string{"request started", "request completed", "/ok?x=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in logs, got %q", want, out)
		}
	}
}
