package viewmodel

import (
	"log/slog"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vmkit/viewmodel"

// Action names reported to observers and used as span names.
const (
	ActionSignIn          = "signin"
	ActionPopulateSources = "populate_sources"
)

// Outcome classifies how an action ended.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeLogicalFailure Outcome = "logical_failure"

	// OutcomeDiscarded means the dispatcher refused the completion, so
	// the status was left as it was and no hook fired.
	OutcomeDiscarded Outcome = "discarded"
)

// Observer is notified about action runs, typically for metrics.
// ActionFinished with OutcomeDiscarded is called off the dispatcher, so
// implementations must be safe for concurrent use.
type Observer interface {
	ActionStarted(action string)
	ActionFinished(action string, outcome Outcome, elapsed time.Duration)
}

type options struct {
	dispatcher dispatch.Dispatcher
	logger     *slog.Logger
	observer   Observer
	tracer     trace.Tracer
}

// Option configures a view-model.
type Option func(*options)

// WithDispatcher sets where completions run. Default: dispatch.Inline.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.dispatcher = d
		}
	}
}

// WithLogger sets the view-model logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the action observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTracer sets the tracer used for action spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{
		dispatcher: dispatch.Inline,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", component)
	return o
}

func (o options) started(action string) {
	if o.observer != nil {
		o.observer.ActionStarted(action)
	}
}

func (o options) finished(action string, outcome Outcome, start time.Time) {
	if o.observer != nil {
		o.observer.ActionFinished(action, outcome, time.Since(start))
	}
}
