package sink

import (
	"io"

	"github.com/bisonbyte/espenv/pkg/resolver"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Mask replaces secret values in reports.
const Mask = "********"

type (
	reportEntry struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	}

	report struct {
		Defines []reportEntry `yaml:"defines"`
	}
)

// YAMLReport writes a YAML summary of the defines, with secret values masked.
// It is meant for inspecting a build configuration, not for injection.
type YAMLReport struct {
	w io.Writer
}

// NewYAMLReport creates a YAMLReport sink writing to w.
func NewYAMLReport(w io.Writer) *YAMLReport {
	return &YAMLReport{w: w}
}

// Accept writes the report
func (r *YAMLReport) Accept(defines []resolver.Define) error {
	out := report{Defines: make([]reportEntry, 0, len(defines))}
	for _, d := range defines {
		value := Mask
		if !d.Secret {
			raw, err := resolver.Unquote(d.QuotedValue)
			if err != nil {
				return errors.Wrapf(err, "define %s has a malformed value", d.Name)
			}
			value = raw
		}
		out.Defines = append(out.Defines, reportEntry{Name: d.Name, Value: value})
	}

	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "error writing defines report")
	}
	return errors.Wrap(enc.Close(), "error writing defines report")
}
