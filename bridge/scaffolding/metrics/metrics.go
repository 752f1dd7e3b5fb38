// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"expvar"
	"runtime"
)

// Counters are published once per process under the "usergraph" expvar key.
var m struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
	queries    *expvar.Map
}

func init() {
	root := expvar.NewMap("usergraph")
	m.goroutines = new(expvar.Int)
	m.requests = new(expvar.Int)
	m.errors = new(expvar.Int)
	m.panics = new(expvar.Int)
	m.queries = new(expvar.Map).Init()

	root.Set("goroutines", m.goroutines)
	root.Set("requests", m.requests)
	root.Set("errors", m.errors)
	root.Set("panics", m.panics)
	root.Set("queries", m.queries)
}

type ctxKey int

const key ctxKey = 1

// Set marks the context as metered.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, true)
}

func metered(ctx context.Context) bool {
	v, _ := ctx.Value(key).(bool)
	return v
}

// AddGoroutines refreshes the goroutine gauge and returns its value.
func AddGoroutines(ctx context.Context) int64 {
	if !metered(ctx) {
		return 0
	}
	g := int64(runtime.NumGoroutine())
	m.goroutines.Set(g)
	return g
}

// AddRequests increments the request counter and returns the new total.
func AddRequests(ctx context.Context) int64 {
	if !metered(ctx) {
		return 0
	}
	m.requests.Add(1)
	return m.requests.Value()
}

// AddErrors increments the error counter and returns the new total.
func AddErrors(ctx context.Context) int64 {
	if !metered(ctx) {
		return 0
	}
	m.errors.Add(1)
	return m.errors.Value()
}

// AddPanics increments the panic counter and returns the new total.
func AddPanics(ctx context.Context) int64 {
	if !metered(ctx) {
		return 0
	}
	m.panics.Add(1)
	return m.panics.Value()
}

// AddQuery counts one resolution of the named query operation.
func AddQuery(ctx context.Context, operation string) {
	if !metered(ctx) {
		return
	}
	m.queries.Add(operation, 1)
}

// Snapshot returns the current counter values, keyed like the expvar map.
func Snapshot() map[string]int64 {
	out := map[string]int64{
		"goroutines": m.goroutines.Value(),
		"requests":   m.requests.Value(),
		"errors":     m.errors.Value(),
		"panics":     m.panics.Value(),
	}
	m.queries.Do(func(kv expvar.KeyValue) {
		if v, ok := kv.Value.(*expvar.Int); ok {
			out["queries."+kv.Key] = v.Value()
		}
	})
	return out
}
