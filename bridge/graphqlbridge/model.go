package graphqlbridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql/gqlerrors"
)

// ErrMissingQuery is returned when a request carries no query document.
var ErrMissingQuery = errors.New("query is required")

// Request is one GraphQL operation request.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Validate implements the validator web.Decode calls after decoding.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrMissingQuery
	}
	return nil
}

// requestFromURL reads query, variables and operationName URL parameters.
func requestFromURL(r *http.Request) (Request, error) {
	q := r.URL.Query()
	req := Request{
		Query:         q.Get("query"),
		OperationName: q.Get("operationName"),
	}
	if raw := q.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return Request{}, fmt.Errorf("variables: %w", err)
		}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Response is the wire envelope. Data is omitted when execution never
// started, such as on a syntax or validation error.
type Response struct {
	Data   any                        `json:"data,omitempty"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}
