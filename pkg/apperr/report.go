package apperr

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "RedditRandomBot/pkg/apperr"

// Reporter is the single place which errors are logged and captured at
type Reporter struct {
	logger zerolog.Logger
	tracer trace.Tracer
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithTracerProvider makes the reporter capture errors on a specific provider
// instead of the global one
func WithTracerProvider(tp trace.TracerProvider) ReporterOption {
	return func(r *Reporter) { r.tracer = tp.Tracer(tracerName) }
}

// NewReporter creates a new reporter which logs with logger
func NewReporter(logger zerolog.Logger, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report logs the error and captures it if its kind says so.
// Untyped errors are always captured. The returned value is the event ID of
// the captured error or an empty string if it was not captured.
func (r *Reporter) Report(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	capture := true
	event := r.logger.Error()
	if errors.As(err, &appErr) {
		capture = appErr.Kind.Capture()
		if !capture {
			event = r.logger.Warn()
		}
		event = event.Str("kind", appErr.Kind.String())
		if len(appErr.Data) != 0 {
			event = event.Interface("data", appErr.Data)
		}
	}
	if !capture {
		event.Err(err).Msg("error")
		return ""
	}
	// Capture
	eventID := uuid.New().String()
	attributes := []attribute.KeyValue{attribute.String("event.id", eventID)}
	if appErr != nil {
		attributes = append(attributes, attribute.String("error.kind", appErr.Kind.String()))
		for k, v := range appErr.Data {
			attributes = append(attributes, attribute.String("error.data."+k, v))
		}
	}
	_, span := r.tracer.Start(ctx, "apperr.capture")
	span.RecordError(err, trace.WithAttributes(attributes...))
	span.SetStatus(codes.Error, err.Error())
	span.End()
	event.Str("event_id", eventID).Err(err).Msg("error")
	return eventID
}
