// Package sink delivers resolved defines to the host build.
//
// The host integration is optional. When it is unavailable, New returns a
// Noop sink and the resolution still runs to completion, which keeps the
// hook usable outside the intended build environment.
package sink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bisonbyte/espenv/pkg/config"
	"github.com/bisonbyte/espenv/pkg/resolver"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Sink accepts the defines of one resolution run.
type Sink interface {
	Accept(defines []resolver.Define) error
}

// Noop discards defines.
type Noop struct {
	// Reason is logged when defines are discarded.
	Reason string
}

// Accept logs and discards defines
func (n Noop) Accept(defines []resolver.Define) error {
	log.Warn().
		Int("defines", len(defines)).
		Str("reason", n.Reason).
		Msg("Host build integration unavailable, skipping define injection")
	return nil
}

// New creates the sink selected by cfg. Flag and report output go to w.
//
// The header sink needs its target directory to exist; if it does not, the
// project is not laid out for it and a Noop sink is returned instead.
func New(cfg *config.Config, w io.Writer) (Sink, error) {
	switch cfg.Sink {
	case config.SinkFlags:
		return NewFlags(w), nil
	case config.SinkYAML:
		return NewYAMLReport(w), nil
	case config.SinkNone:
		return Noop{Reason: "sink disabled"}, nil
	case config.SinkHeader:
		path, err := cfg.HeaderPath()
		if err != nil {
			return nil, err
		}

		dir := filepath.Dir(path)
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return Noop{Reason: "header directory " + dir + " does not exist"}, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error accessing header directory %q", dir)
		}
		if !info.IsDir() {
			return nil, errors.Errorf("header directory %q is not a directory", dir)
		}
		return NewHeader(path), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownSink, "%q", cfg.Sink)
	}
}
