package telemetry

import (
	"context"
	"strings"
	"time"

	"RedditRandomBot/pkg/common"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "reddit-random-bot"

// Shutdown flushes the spans and stops the exporter
type Shutdown func(context.Context) error

// Init sets up the global tracer provider which exports spans to the OTLP/HTTP endpoint.
// If endpoint is empty, a no-op provider is returned and nothing is exported.
func Init(ctx context.Context, endpoint, environment string) (trace.TracerProvider, Shutdown, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		log.Debug().Msg("no otlp endpoint, tracing is disabled")
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}
	var opts []otlptracehttp.Option
	if strings.Contains(endpoint, "://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot create exporter")
	}
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(common.Version),
			attribute.String("deployment.environment", environment),
		),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot create resource")
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(2*time.Second)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Info().Str("otlp_endpoint", endpoint).Msg("tracing initialized")
	return tp, tp.Shutdown, nil
}
