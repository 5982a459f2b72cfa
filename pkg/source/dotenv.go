package source

import (
	"github.com/bisonbyte/espenv/internal/snapshot"
	"github.com/bisonbyte/espenv/pkg/dotenv"
)

// Dotenv exposes a parsed dotenv file as a Source.
type Dotenv struct {
	path   string
	values dotenv.Mapping
}

// NewDotenv wraps a snapshot of values read from path. The path is only kept
// for logging.
func NewDotenv(path string, values dotenv.Mapping) *Dotenv {
	return &Dotenv{
		path:   path,
		values: snapshot.MustMap(values),
	}
}

// Lookup retrieves a value from the dotenv mapping. A nil Dotenv has no keys.
func (d *Dotenv) Lookup(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	return d.values.Lookup(key)
}

// Path returns the file the values were read from.
func (d *Dotenv) Path() string {
	return d.path
}

// Name returns the source name
func (d *Dotenv) Name() string {
	return "Dotenv"
}
