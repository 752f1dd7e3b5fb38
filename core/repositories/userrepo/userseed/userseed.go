// Package userseed produces the records the in-memory user store is built from.
package userseed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jrazmi/usergraph/core/repositories/userrepo"
	"gopkg.in/yaml.v3"
)

// Seed sources.
const (
	SourceFixture  = "fixture"
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

var ErrUnknownSource = errors.New("unknown seed source")

// Config selects where seed records come from.
type Config struct {
	Source string `env:"SEED_SOURCE" default:"fixture"`
	File   string `env:"SEED_FILE"`
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceFixture, SourcePostgres:
		return nil
	case SourceFile:
		if c.File == "" {
			return errors.New("seed source file requires SEED_FILE")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)
	}
}

// Lister is any store that can enumerate users, such as userpgxstore.Store.
type Lister interface {
	List(ctx context.Context) ([]userrepo.User, error)
}

// Fixture returns the built-in records.
func Fixture() []userrepo.User {
	return []userrepo.User{
		{ID: "1", Name: "Alice", Email: "alice@example.com"},
		{ID: "2", Name: "Bob"},
	}
}

// Load resolves cfg into seed records. db is only consulted for the postgres
// source and may be nil otherwise.
func Load(ctx context.Context, cfg Config, db Lister) ([]userrepo.User, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Source {
	case SourceFile:
		return LoadFile(cfg.File)
	case SourcePostgres:
		if db == nil {
			return nil, errors.New("seed source postgres requires a database")
		}
		users, err := db.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed from postgres: %w", err)
		}
		return users, nil
	default:
		return Fixture(), nil
	}
}

// LoadFile reads records from a YAML or JSON file.
func LoadFile(path string) ([]userrepo.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	users, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return users, nil
}

// Parse decodes either a bare list of users or a document with a top-level
// users key. Unknown fields are rejected. JSON input is valid YAML.
func Parse(data []byte) ([]userrepo.User, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return []userrepo.User{}, nil
	}

	var users []userrepo.User
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		if err := decodeStrict(data, &users); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var doc struct {
			Users []userrepo.User `yaml:"users"`
		}
		if err := decodeStrict(data, &doc); err != nil {
			return nil, err
		}
		users = doc.Users
	default:
		return nil, errors.New("seed data must be a list of users or a users mapping")
	}

	if users == nil {
		users = []userrepo.User{}
	}
	return users, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
