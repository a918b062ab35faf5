package apperr

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestReporter() (*Reporter, *tracetest.SpanRecorder, *bytes.Buffer) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	logs := new(bytes.Buffer)
	return NewReporter(zerolog.New(logs), WithTracerProvider(tp)), recorder, logs
}

func TestReportCaptured(t *testing.T) {
	reporter, recorder, logs := newTestReporter()
	eventID := reporter.Report(context.Background(), NewAuthenticationError("invalid client", nil))
	assert.NotEmpty(t, eventID)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
	assert.Contains(t, logs.String(), "AuthenticationError")
	assert.Contains(t, logs.String(), eventID)
}

func TestReportNotCaptured(t *testing.T) {
	reporter, recorder, logs := newTestReporter()
	assert.Empty(t, reporter.Report(context.Background(), NewSubredditPrivateError()))
	assert.Empty(t, recorder.Ended())
	// It must be logged anyway
	assert.Contains(t, logs.String(), "SubredditPrivateError")
}

func TestReportUntyped(t *testing.T) {
	reporter, recorder, _ := newTestReporter()
	assert.NotEmpty(t, reporter.Report(context.Background(), errors.New("unexpected")))
	assert.Len(t, recorder.Ended(), 1)
}

func TestReportNil(t *testing.T) {
	reporter, recorder, logs := newTestReporter()
	assert.Empty(t, reporter.Report(context.Background(), nil))
	assert.Empty(t, recorder.Ended())
	assert.Empty(t, logs.String())
}
