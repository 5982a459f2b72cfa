package sink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bisonbyte/espenv/pkg/resolver"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Header writes defines into a C header. Every define is wrapped in #ifndef
// so flags passed on the compiler command line still take precedence.
type Header struct {
	path string
}

// NewHeader creates a Header sink for path.
func NewHeader(path string) *Header {
	return &Header{path: path}
}

// Accept rewrites the header file
func (h *Header) Accept(defines []resolver.Define) error {
	if err := os.WriteFile(h.path, RenderHeader(guardName(h.path), defines), 0600); err != nil {
		return errors.Wrapf(err, "error writing header %q", h.path)
	}
	log.Info().Str("file", h.path).Int("defines", len(defines)).Msg("Wrote defines header")
	return nil
}

// RenderHeader returns the header content for defines.
func RenderHeader(guard string, defines []resolver.Define) []byte {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by espenv. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "#ifndef %s\n#define %s\n", guard, guard)
	for _, d := range defines {
		fmt.Fprintf(&buf, "\n#ifndef %s\n#define %s %s\n#endif\n", d.Name, d.Name, d.QuotedValue)
	}
	fmt.Fprintf(&buf, "\n#endif // %s\n", guard)
	return buf.Bytes()
}

// guardName derives an include guard from the header file name,
// e.g. "include/espenv_defines.h" -> "ESPENV_DEFINES_H".
func guardName(path string) string {
	guard := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, filepath.Base(path))

	if guard == "" || unicode.IsDigit(rune(guard[0])) {
		guard = "_" + guard
	}
	return guard
}
