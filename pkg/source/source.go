// Package source provides the lookup sources a build setting can be read from:
// the process environment, a parsed dotenv file and fixed literal defaults.
package source

// Source defines the interface that every value source must implement.
//
// Example implementations:
//   - Environment: a snapshot of the process environment
//   - Dotenv: the parsed content of a .env file
//   - Default: a fixed literal used to terminate a precedence chain
type Source interface {
	// Lookup retrieves the value stored for key.
	// A missing key is a normal result, reported with ok=false.
	Lookup(key string) (value string, ok bool)

	// Name returns a human-readable name for this source (for logging/debugging)
	Name() string
}
