// Package environment loads configuration from environment variables with
// support for namespacing, defaults and optional .env files.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory. A missing
// file is not an error; values already present in the environment win.
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads variables from the .env file at p, or from ./.env when p is empty.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// GetEnvOrDefault retrieves an environment variable value, returning fallback
// when the variable is not set.
//
//	port := GetEnvOrDefault("PORT", "8080")
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey joins a namespace and a key with an underscore.
// With an empty namespace the key is returned unchanged.
//
//	GetNamespaceEnvKey("USERGRAPH", "PORT") // "USERGRAPH_PORT"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault looks up a namespaced variable, returning fallback
// when it is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}
