package config

import (
	"fmt"
	"os"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitErr renders err for locale and exits with code 1. Coded errors use the
// localized catalog message; the raw error follows for diagnostics.
func ExitErr(command string, err error, locale string) {
	if _, ok := apperrors.As(err); ok {
		Exitf("%s: %s (%v)", command, apperrors.Localize(err, locale), err)
	}
	Exitf("%s: %v", command, err)
}
