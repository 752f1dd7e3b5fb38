package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jrazmi/usergraph/bridge/graphqlbridge"
)

const introspectionQuery = `query Introspect {
  __schema {
    types {
      name
      kind
      fields {
        name
        args { name type { ...TypeRef } }
        type { ...TypeRef }
      }
    }
  }
}

fragment TypeRef on __Type {
  name
  kind
  ofType { name kind ofType { name kind ofType { name kind } } }
}`

type typeRef struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	OfType *typeRef `json:"ofType"`
}

func (t *typeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case "NON_NULL":
		return t.OfType.String() + "!"
	case "LIST":
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}

type introspection struct {
	Schema struct {
		Types []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Fields []struct {
				Name string `json:"name"`
				Args []struct {
					Name string   `json:"name"`
					Type *typeRef `json:"type"`
				} `json:"args"`
				Type *typeRef `json:"type"`
			} `json:"fields"`
		} `json:"types"`
	} `json:"__schema"`
}

// PrintSchema introspects the executor's schema and writes its object types
// in schema definition language.
func PrintSchema(ctx context.Context, exec *graphqlbridge.Executor, out io.Writer) error {
	result := exec.Execute(ctx, graphqlbridge.Request{Query: introspectionQuery})
	if result.HasErrors() {
		return errors.New(result.Errors[0].Message)
	}

	raw, err := json.Marshal(result.Data)
	if err != nil {
		return fmt.Errorf("marshal introspection: %w", err)
	}
	var doc introspection
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal introspection: %w", err)
	}

	types := doc.Schema.Types
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	var b strings.Builder
	for _, t := range types {
		if t.Kind != "OBJECT" || strings.HasPrefix(t.Name, "__") {
			continue
		}
		fmt.Fprintf(&b, "type %s {\n", t.Name)
		for _, f := range t.Fields {
			args := make([]string, 0, len(f.Args))
			for _, a := range f.Args {
				args = append(args, a.Name+": "+a.Type.String())
			}
			sig := f.Name
			if len(args) > 0 {
				sig += "(" + strings.Join(args, ", ") + ")"
			}
			fmt.Fprintf(&b, "  %s: %s\n", sig, f.Type.String())
		}
		b.WriteString("}\n\n")
	}

	_, err = io.WriteString(out, strings.TrimRight(b.String(), "\n")+"\n")
	return err
}
