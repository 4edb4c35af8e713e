package trace

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/lushmo/hairbloom/internal/log"
)

func InitTracerProvider(
	c context.Context,
	endpoint string,
	serviceName string,
) (*trace.TracerProvider, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "InitTracerProvider").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing trace exporter").Logger()
	logger.Info().Msg("initializing trace exporter")
	traceExporter, err := otlptracegrpc.New(
		c,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		logger.Error().Err(err).Msgf("failed creating trace exporter with error=%s", err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized trace exporter")

	logger = logger.With().Str(log.KeyProcess, "initializing tracer provider").Logger()
	logger.Info().Msg("initializing tracer provider")
	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter, trace.WithBatchTimeout(5*time.Second)),
		trace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName(serviceName),
			),
		),
	)
	logger.Info().Msg("initialized tracer provider")

	return traceProvider, nil
}
