package source

import (
	"os"
	"strings"

	"github.com/bisonbyte/espenv/internal/snapshot"
)

// Environment is an immutable snapshot of named environment values.
// It is passed to the resolver explicitly instead of reading the process
// environment during resolution.
type Environment map[string]string

// NewEnvironment snapshots vars into an Environment.
func NewEnvironment(vars map[string]string) Environment {
	return snapshot.MustMap(vars)
}

// FromEnviron builds an Environment from "KEY=VALUE" entries as returned by
// os.Environ. Values may contain '='; entries without '=' are skipped.
func FromEnviron(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// FromOS snapshots the current process environment.
func FromOS() Environment {
	return FromEnviron(os.Environ())
}

// Lookup retrieves an environment value
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Name returns the source name
func (e Environment) Name() string {
	return "Environment"
}
