// Package seqgen wires the seqgen command.
package seqgen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	entrypoint "github.com/louisbranch/copyless/internal/platform/cmd"
	"github.com/louisbranch/copyless/internal/tools/seqgen"
)

// ErrStale reports that -check found generated code out of date.
var ErrStale = errors.New("generated compositions are stale")

// Config holds seqgen command configuration.
type Config struct {
	Manifest string `env:"SEQGEN_MANIFEST" envDefault:"sequences.yaml"`
	Dir      string `env:"SEQGEN_DIR"`
	Check    bool   `env:"SEQGEN_CHECK"`
	Verbose  bool   `env:"SEQGEN_VERBOSE"`
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "path to the composition manifest")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "handler package directory (defaults to the manifest's directory)")
	fs.BoolVar(&cfg.Check, "check", cfg.Check, "fail if the generated file is out of date instead of writing it")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
}

// Run generates the compositions described by the manifest.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	var logger *log.Logger
	if cfg.Verbose {
		logger = log.New(errOut, "", 0)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeqgen, func(ctx context.Context) error {
		result, err := seqgen.Generate(ctx, seqgen.Options{
			Manifest: cfg.Manifest,
			Dir:      cfg.Dir,
			Check:    cfg.Check,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		if cfg.Check {
			if result.Changed {
				return fmt.Errorf("%w: %s", ErrStale, result.Output)
			}
			fmt.Fprintf(out, "%s is up to date\n", result.Output)
			return nil
		}
		if !result.Changed {
			fmt.Fprintf(out, "%s unchanged\n", result.Output)
			return nil
		}
		fmt.Fprintf(out, "wrote %s (%d compositions)\n", result.Output, result.Compositions)
		return nil
	})
}
