// Package sequencedemo wires the sequencedemo command, which prints the
// shape of the E/F compositions and routes one opcode through each.
package sequencedemo

import (
	"context"
	"flag"
	"fmt"
	"io"
	"unsafe"

	entrypoint "github.com/louisbranch/copyless/internal/platform/cmd"
	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/sequence/seqtrace"
	"github.com/louisbranch/copyless/internal/sequences/ef"
	"github.com/louisbranch/copyless/internal/transaction"
)

// Config holds sequencedemo command configuration.
type Config struct {
	Trace bool `env:"DEMO_TRACE"`
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	bind := func(fs *flag.FlagSet, cfg *Config) {
		fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "dispatch through the tracing wrapper")
	}
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bind); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run prints both compositions and dispatches (E, RunB) to each.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSequenceDemo, func(ctx context.Context) error {
		var txn transaction.Transaction

		var generated ef.TestSequence
		generated.Init(&txn)
		if err := report(ctx, out, cfg, "TestSequence", &generated, unsafe.Sizeof(generated)); err != nil {
			return err
		}

		var generic ef.GenericSequence
		if err := generic.Init(&txn); err != nil {
			return err
		}
		if err := report(ctx, out, cfg, "GenericSequence", &generic, unsafe.Sizeof(generic)); err != nil {
			return err
		}

		fmt.Fprintf(out, "sizeof(E) = %d\n", unsafe.Sizeof(ef.E{}))
		fmt.Fprintf(out, "sizeof(F) = %d\n", unsafe.Sizeof(ef.F{}))
		fmt.Fprintf(out, "transaction steps = %d\n", txn.Steps())
		return nil
	})
}

func report(ctx context.Context, out io.Writer, cfg Config, name string, d sequence.Dispatcher, size uintptr) error {
	fmt.Fprintf(out, "%s composition flag = %s\n", name, d.CompositionFlag())
	fmt.Fprintf(out, "%s sequences = %d\n", name, d.NumSequences())
	fmt.Fprintf(out, "sizeof(%s) = %d\n", name, size)

	var handled bool
	var err error
	if cfg.Trace {
		traced, werr := seqtrace.Wrap(d, seqtrace.WithName(name))
		if werr != nil {
			return werr
		}
		handled, err = traced.DispatchContext(ctx, ef.EID, sequence.OpcodeBase(ef.RunB))
	} else {
		handled, err = d.Dispatch(ef.EID, sequence.OpcodeBase(ef.RunB))
	}
	if err != nil {
		return fmt.Errorf("%s dispatch: %w", name, err)
	}
	fmt.Fprintf(out, "%s dispatch(%d, %s) handled = %v\n", name, ef.EID, ef.RunB, handled)
	return nil
}
