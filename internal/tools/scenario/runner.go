package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/copyless/internal/platform/id"
	"github.com/louisbranch/copyless/internal/sequence/seqtrace"
)

const instrumentationName = "github.com/louisbranch/copyless/internal/tools/scenario"

// Config controls scenario execution.
type Config struct {
	Assertions AssertionMode
	Verbose    bool
	// Locale selects the catalog used to render failed expectations.
	Locale string
	Logger *log.Logger
	// Registry defaults to DefaultRegistry.
	Registry *Registry
	// TracerProvider and MeterProvider default to the otel globals.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Assertions: AssertionStrict,
		Verbose:    false,
	}
}

// Result summarises one scenario run.
type Result struct {
	RunID    string
	Scenario string
	Steps    int
	// Failures lists expectations that failed in log-only mode.
	Failures []error
}

// Runner executes Lua scenarios against registered targets.
type Runner struct {
	registry       *Registry
	assertions     Assertions
	logger         *log.Logger
	verbose        bool
	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// NewRunner prepares a scenario runner, applying config defaults.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	registry := cfg.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return &Runner{
		registry:       registry,
		assertions:     Assertions{Mode: cfg.Assertions, Logger: logger, Locale: cfg.Locale},
		logger:         logger,
		verbose:        cfg.Verbose,
		tracer:         tp.Tracer(instrumentationName),
		tracerProvider: tp,
		meterProvider:  mp,
	}
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) (Result, error) {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return Result{}, err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order. Each run gets a fresh
// run id and its own span.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (Result, error) {
	if scenario == nil {
		return Result{}, errors.New("scenario is required")
	}
	runID, err := id.NewID()
	if err != nil {
		return Result{}, fmt.Errorf("scenario run id: %w", err)
	}
	result := Result{RunID: runID, Scenario: scenario.Name}
	ctx, span := r.tracer.Start(ctx, "scenario.run", trace.WithAttributes(
		attribute.String("scenario.name", scenario.Name),
		attribute.String("scenario.run_id", result.RunID),
	))
	defer span.End()

	r.assertions.failures = nil
	r.logf("scenario start: %s (%d steps, run %s)", scenario.Name, len(scenario.Steps), result.RunID)
	state := &scenarioState{}
	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		if err := r.runStep(ctx, state, step); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			result.Failures = r.assertions.Failures()
			return result, fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		result.Steps++
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	result.Failures = r.assertions.Failures()
	span.SetAttributes(attribute.Int("scenario.failures", len(result.Failures)))
	r.logf("scenario done: %s", scenario.Name)
	return result, nil
}

// wrap observes a target instance.
func (r *Runner) wrap(name string, instance Instance) (*seqtrace.Dispatcher, error) {
	return seqtrace.Wrap(instance.Dispatcher,
		seqtrace.WithName(name),
		seqtrace.WithTracerProvider(r.tracerProvider),
		seqtrace.WithMeterProvider(r.meterProvider),
	)
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
