package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/bisonbyte/espenv/pkg/resolver"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Flags writes defines as compiler flags, one per line, in the form expected
// from a PlatformIO dynamic build flag script (build_flags = !espenv):
//
//	'-DDEFAULT_WIFI_SSID="Home Net"'
//
// Each flag is single-quoted so the build tool's argument splitting keeps the
// inner double quotes of the string literal.
type Flags struct {
	w io.Writer
}

// NewFlags creates a Flags sink writing to w.
func NewFlags(w io.Writer) *Flags {
	return &Flags{w: w}
}

// Accept writes one flag per define
func (f *Flags) Accept(defines []resolver.Define) error {
	for _, d := range defines {
		if _, err := fmt.Fprintln(f.w, Flag(d)); err != nil {
			return errors.Wrapf(err, "error writing build flag for %s", d.Name)
		}
	}
	log.Debug().Int("defines", len(defines)).Msg("Wrote build flags")
	return nil
}

// Flag renders a single define as a shell-quoted -D flag.
func Flag(d resolver.Define) string {
	return shellQuote("-D" + d.Name + "=" + d.QuotedValue)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
