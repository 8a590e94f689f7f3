// Package scenario wires the scenario command: configuration, telemetry and
// terminal output around the Lua scenario runner.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	entrypoint "github.com/louisbranch/copyless/internal/platform/cmd"
	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string `env:"SCENARIO_FILE"`
	Assertions bool   `env:"SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool   `env:"SCENARIO_VERBOSE"`
	Locale     string `env:"LOCALE"           envDefault:"en-US"`
	Color      string `env:"SCENARIO_COLOR"   envDefault:"auto"`
	ListOnly   bool
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return Config{}, fmt.Errorf("invalid color mode %q", cfg.Color)
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for failure messages")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "colorize output: auto, always or never")
	fs.BoolVar(&cfg.ListOnly, "list", cfg.ListOnly, "list registered targets and exit")
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	registry := scenario.DefaultRegistry()
	if cfg.ListOnly {
		for _, name := range registry.Names() {
			target, _ := registry.Get(name)
			fmt.Fprintf(out, "%-12s %s\n", name, target.Description)
		}
		return nil
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	p := newPrinter(out, cfg.Color)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		result, err := scenario.RunFile(ctx, scenario.Config{
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Locale:     cfg.Locale,
			Logger:     logger,
			Registry:   registry,
		}, cfg.Scenario)
		if err != nil {
			p.fail(result, apperrors.Localize(err, cfg.Locale))
			return err
		}
		if len(result.Failures) > 0 {
			p.warn(result)
			return nil
		}
		p.pass(result)
		return nil
	})
}

const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// printer writes the run summary, colored only on terminals.
type printer struct {
	out   io.Writer
	color bool
}

func newPrinter(out io.Writer, mode string) printer {
	color := mode == "always"
	if mode == "auto" {
		if f, ok := out.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return printer{out: out, color: color}
}

func (p printer) paint(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + colorReset
}

func (p printer) pass(result scenario.Result) {
	fmt.Fprintf(p.out, "%s %s (%d steps, run %s)\n", p.paint(colorGreen, "PASS"), result.Scenario, result.Steps, result.RunID)
}

func (p printer) warn(result scenario.Result) {
	fmt.Fprintf(p.out, "%s %s (%d steps, %d failed expectations, run %s)\n",
		p.paint(colorYellow, "WARN"), result.Scenario, result.Steps, len(result.Failures), result.RunID)
}

func (p printer) fail(result scenario.Result, message string) {
	fmt.Fprintf(p.out, "%s %s: %s\n", p.paint(colorRed, "FAIL"), result.Scenario, message)
}
