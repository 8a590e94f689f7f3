// Package main provides the seqgen code generator. It is usually invoked
// through go:generate from the package holding the manifest.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/copyless/internal/platform/config"
	apperrors "github.com/louisbranch/copyless/internal/platform/errors"

	seqgencmd "github.com/louisbranch/copyless/internal/cmd/seqgen"
)

func main() {
	cfg, err := seqgencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seqgencmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.ExitErr("seqgen", err, apperrors.DefaultLocale)
	}
}
