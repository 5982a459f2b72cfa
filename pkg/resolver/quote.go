package resolver

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Quote encodes s as a JSON string literal. Backslashes, double quotes and
// control characters are escaped and the result is wrapped in double quotes,
// so it can be embedded verbatim as a C string literal in a define.
//
// HTML escaping is disabled: "<", ">" and "&" are emitted as is.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Unquote decodes a literal produced by Quote.
func Unquote(quoted string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(quoted), &s); err != nil {
		return "", err
	}
	return s, nil
}
