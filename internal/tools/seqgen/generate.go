package seqgen

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Options configures one generator run.
type Options struct {
	// Manifest is the manifest path. Relative paths resolve against Dir.
	Manifest string
	// Dir is the handler package directory. Empty means the manifest's
	// directory.
	Dir string
	// Check reports whether the output is current instead of writing it.
	Check  bool
	Logger *log.Logger
}

// Result describes a finished run.
type Result struct {
	Output       string
	Compositions int
	Changed      bool
}

// Generate loads the manifest, inspects the handler package and writes the
// generated file. With Check set it writes nothing and reports whether the
// file on disk differs.
func Generate(ctx context.Context, opts Options) (Result, error) {
	if opts.Manifest == "" {
		return Result{}, fmt.Errorf("manifest path is required")
	}
	manifestPath := opts.Manifest
	if opts.Dir != "" && !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(opts.Dir, manifestPath)
	}
	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(manifestPath)
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return Result{}, err
	}
	model, err := Inspect(ctx, dir, manifest, filepath.Base(manifestPath))
	if err != nil {
		return Result{}, err
	}
	src, err := Render(model)
	if err != nil {
		return Result{}, err
	}

	out := filepath.Join(dir, manifest.Output)
	result := Result{Output: out, Compositions: len(model.Compositions)}
	current, err := os.ReadFile(out)
	if err != nil && !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("read %s: %w", out, err)
	}
	result.Changed = string(current) != string(src)
	if opts.Check || !result.Changed {
		return result, nil
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", out, err)
	}
	if opts.Logger != nil {
		opts.Logger.Printf("seqgen: wrote %d compositions to %s", result.Compositions, out)
	}
	return result, nil
}
