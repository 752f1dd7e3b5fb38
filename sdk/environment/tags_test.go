package environment_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/jrazmi/usergraph/sdk/environment"
)

type nested struct {
	Source string `env:"SEED_SOURCE" default:"fixture"`
}

type testConfig struct {
	Port    string        `env:"PORT" default:"0.0.0.0:3000"`
	Timeout time.Duration `env:"TIMEOUT" default:"5s"`
	Conns   int           `env:"CONNS" default:"4"`
	Debug   bool          `env:"DEBUG" default:"false"`
	Origins []string      `env:"ORIGINS" default:"*" separator:","`
	Seed    nested
	skipped string
}

func TestParseEnvTags_Defaults(t *testing.T) {
	var cfg testConfig
	if err := environment.ParseEnvTags("ENVTEST", &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != "0.0.0.0:3000" {
		t.Errorf("expected default port, got %q", cfg.Port)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout)
	}
	if cfg.Conns != 4 {
		t.Errorf("expected 4 conns, got %d", cfg.Conns)
	}
	if cfg.Debug {
		t.Error("expected debug to be false")
	}
	if !reflect.DeepEqual(cfg.Origins, []string{"*"}) {
		t.Errorf("unexpected origins %v", cfg.Origins)
	}
	if cfg.Seed.Source != "fixture" {
		t.Errorf("expected nested default, got %q", cfg.Seed.Source)
	}
}

func TestParseEnvTags_FromEnvironment(t *testing.T) {
	t.Setenv("ENVTEST_PORT", ":9000")
	t.Setenv("ENVTEST_TIMEOUT", "250ms")
	t.Setenv("ENVTEST_CONNS", "12")
	t.Setenv("ENVTEST_DEBUG", "true")
	t.Setenv("ENVTEST_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ENVTEST_SEED_SOURCE", "file")

	var cfg testConfig
	if err := environment.ParseEnvTags("ENVTEST", &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != ":9000" || cfg.Timeout != 250*time.Millisecond || cfg.Conns != 12 || !cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Origins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("unexpected origins %v", cfg.Origins)
	}
	if cfg.Seed.Source != "file" {
		t.Errorf("expected nested value from env, got %q", cfg.Seed.Source)
	}
}

func TestParseEnvTags_Errors(t *testing.T) {
	type required struct {
		Key string `env:"KEY" required:"true"`
	}
	if err := environment.ParseEnvTags("ENVTEST_MISSING", &required{}); err == nil {
		t.Error("expected error for missing required variable")
	}

	t.Setenv("ENVTEST_CONNS", "many")
	var cfg testConfig
	if err := environment.ParseEnvTags("ENVTEST", &cfg); err == nil {
		t.Error("expected error for invalid int")
	}

	if err := environment.ParseEnvTags("ENVTEST", cfg); err == nil {
		t.Error("expected error for non-pointer config")
	}
}

func TestGetNamespaceEnvKey(t *testing.T) {
	tests := []struct {
		namespace string
		key       string
		want      string
	}{
		{"USERGRAPH", "PORT", "USERGRAPH_PORT"},
		{"", "PORT", "PORT"},
	}
	for _, tt := range tests {
		if got := environment.GetNamespaceEnvKey(tt.namespace, tt.key); got != tt.want {
			t.Errorf("GetNamespaceEnvKey(%q, %q) = %q, want %q", tt.namespace, tt.key, got, tt.want)
		}
	}
}
