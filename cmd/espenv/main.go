// Command espenv resolves Wi-Fi credentials and the server URL for the
// firmware build and hands them to the build as string defines.
//
// It is meant to run as a PlatformIO dynamic build flag script:
//
//	[env:esp32dev]
//	build_flags = !espenv
//
// Values come from the environment first and from the repository .env file
// second. See package config for the variables controlling the hook itself.
package main

import (
	"io"
	"os"

	"github.com/bisonbyte/espenv/pkg/config"
	"github.com/bisonbyte/espenv/pkg/dotenv"
	"github.com/bisonbyte/espenv/pkg/resolver"
	"github.com/bisonbyte/espenv/pkg/sink"
	"github.com/bisonbyte/espenv/pkg/source"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// stdout carries the build flags, so logs go to stderr
	setupLogging(os.Stderr, false)

	if err := run(os.Stdout, os.Stderr); err != nil {
		log.Error().Err(err).Msg("Failed to resolve build defines")
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(stderr, cfg.Debug)

	dotenvPath, err := cfg.DotenvPath()
	if err != nil {
		return err
	}
	values, err := dotenv.Parse(dotenvPath)
	if err != nil {
		return errors.Wrap(err, "failed to load dotenv file")
	}

	defines := resolver.Resolve(source.FromOS(), source.NewDotenv(dotenvPath, values))
	for _, d := range defines {
		log.Debug().Str("define", d.Name).Bool("secret", d.Secret).Msg("Prepared define")
	}

	out, err := sink.New(cfg, stdout)
	if err != nil {
		return errors.Wrap(err, "failed to set up define sink")
	}
	if err := out.Accept(defines); err != nil {
		return errors.Wrap(err, "failed to deliver defines")
	}
	return nil
}

func setupLogging(w io.Writer, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05",
	})
}
