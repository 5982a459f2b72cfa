// Package dotenv reads dotenv-style KEY=VALUE files into a flat lookup table.
//
// The format is deliberately small: one pair per line, '#' comment lines and
// optional single or double quotes around a value. There is no nesting, no
// escape interpretation and no multi-line value support. Parsing is lenient:
// lines that cannot be understood are skipped instead of failing the build.
package dotenv

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Mapping is the parsed content of a dotenv file.
type Mapping map[string]string

// Lookup returns the value stored for key and whether the key was present.
func (m Mapping) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Parse reads the dotenv file at path.
//
// A missing file is not an error: an empty Mapping is returned so that builds
// without a local .env keep working. Any other failure (permissions, path is a
// directory, read error) is returned wrapped.
func Parse(path string) (Mapping, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("file", path).Msg("Dotenv file not found, using empty mapping")
			return Mapping{}, nil
		}
		return nil, errors.Wrapf(err, "error opening dotenv file %q", path)
	}
	defer func() { _ = f.Close() }()

	m, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading dotenv file %q", path)
	}

	log.Debug().Str("file", path).Int("keys", len(m)).Msg("Loaded dotenv file")
	return m, nil
}

// Read parses dotenv content from r. Later occurrences of a key overwrite
// earlier ones.
func Read(r io.Reader) (Mapping, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m := Mapping{}
	for _, line := range splitLines(string(content)) {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		m[key] = value
	}
	return m, nil
}

// parseLine returns ok=false for blank, comment and malformed lines.
func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(value)), true
}

// splitLines splits s on every line boundary a text editor may have written:
// \n, \r\n, a lone \r, \v, \f, the \x1c-\x1e separators, NEL and the Unicode
// line and paragraph separators.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		switch r {
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				// the \n that follows closes the line
				continue
			}
		default:
			continue
		}
		lines = append(lines, s[start:i])
		start = i + utf8.RuneLen(r)
	}
	return append(lines, s[start:])
}

// unquote strips the outer quotes of a value that starts and ends with the
// same quote character. A lone quote character becomes an empty value.
func unquote(v string) string {
	if v == "" {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first != last || (first != '"' && first != '\'') {
		return v
	}
	if len(v) == 1 {
		return ""
	}
	return v[1 : len(v)-1]
}
