// Package seqtrace observes a sequence.Dispatcher with OpenTelemetry. Each
// dispatch becomes a span and increments one of three counters. Wrapping adds
// allocations; the wrapped composite itself is unchanged.
package seqtrace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/sequence"
)

const instrumentationName = "github.com/louisbranch/copyless/internal/sequence/seqtrace"

// Span and metric names.
const (
	SpanDispatch   = "sequence.dispatch"
	MetricHandled  = "sequence.dispatch.handled"
	MetricIgnored  = "sequence.dispatch.ignored"
	MetricFailed   = "sequence.dispatch.failed"
	AttrSequenceID = "sequence.id"
	AttrOpcode     = "sequence.opcode"
	AttrHandled    = "sequence.handled"
	AttrName       = "sequence.composition"
	AttrErrorCode  = "sequence.error_code"
)

type options struct {
	name           string
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures Wrap.
type Option func(*options)

// WithName labels spans and metrics with the composition name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// Dispatcher is an observed sequence.Dispatcher.
type Dispatcher struct {
	next    sequence.Dispatcher
	name    string
	attrs   metric.MeasurementOption
	tracer  trace.Tracer
	handled metric.Int64Counter
	ignored metric.Int64Counter
	failed  metric.Int64Counter
}

// Wrap returns d observed through the configured providers, the otel globals
// by default.
func Wrap(d sequence.Dispatcher, opts ...Option) (*Dispatcher, error) {
	if d == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	o := options{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = d.CompositionFlag().String()
	}

	meter := o.meterProvider.Meter(instrumentationName)
	handled, err := meter.Int64Counter(MetricHandled, metric.WithDescription("Dispatches routed to a member sequence"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricHandled, err)
	}
	ignored, err := meter.Int64Counter(MetricIgnored, metric.WithDescription("Dispatches to identities outside the composition"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricIgnored, err)
	}
	failed, err := meter.Int64Counter(MetricFailed, metric.WithDescription("Dispatches that returned an error"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricFailed, err)
	}

	return &Dispatcher{
		next:    d,
		name:    o.name,
		attrs:   metric.WithAttributes(attribute.String(AttrName, o.name)),
		tracer:  o.tracerProvider.Tracer(instrumentationName),
		handled: handled,
		ignored: ignored,
		failed:  failed,
	}, nil
}

// Unwrap returns the observed dispatcher.
func (d *Dispatcher) Unwrap() sequence.Dispatcher {
	return d.next
}

func (d *Dispatcher) CompositionFlag() sequence.Flag {
	return d.next.CompositionFlag()
}

func (d *Dispatcher) NumSequences() int {
	return d.next.NumSequences()
}

func (d *Dispatcher) IsMember(id sequence.ID) bool {
	return d.next.IsMember(id)
}

// Dispatch is DispatchContext without a parent span.
func (d *Dispatcher) Dispatch(id sequence.ID, raw sequence.OpcodeBase) (bool, error) {
	return d.DispatchContext(context.Background(), id, raw)
}

// DispatchContext dispatches through the wrapped dispatcher inside a span
// parented by ctx.
func (d *Dispatcher) DispatchContext(ctx context.Context, id sequence.ID, raw sequence.OpcodeBase) (bool, error) {
	ctx, span := d.tracer.Start(ctx, SpanDispatch, trace.WithAttributes(
		attribute.String(AttrName, d.name),
		attribute.Int(AttrSequenceID, int(id)),
		attribute.Int64(AttrOpcode, int64(raw)),
	))
	defer span.End()

	handled, err := d.next.Dispatch(id, raw)
	span.SetAttributes(attribute.Bool(AttrHandled, handled))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorCode, string(apperrors.CodeOf(err))))
		span.SetStatus(codes.Error, err.Error())
		d.failed.Add(ctx, 1, d.attrs)
	case handled:
		d.handled.Add(ctx, 1, d.attrs)
	default:
		d.ignored.Add(ctx, 1, d.attrs)
	}
	return handled, err
}
