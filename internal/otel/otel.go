package otel

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/lushmo/hairbloom/internal/config"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel/metric"
	"github.com/lushmo/hairbloom/internal/otel/trace"
)

type ShutdownFunc func(context.Context) error

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		jaeger.Jaeger{},
		ot.OT{},
	)
}

func InitOtelSdk(
	c context.Context,
	serviceName string,
	cfg config.Otel,
) (shutdownFuncs []ShutdownFunc, err error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "InitOtelSdk").
		Logger()

	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	logger = logger.With().Str(log.KeyProcess, "initializing propagator").Logger()
	logger.Info().Msg("initializing otel propagator")
	otel.SetTextMapPropagator(newPropagator())
	logger.Info().Msg("initialized otel propagator")

	logger = logger.With().Str(log.KeyProcess, "initializing tracer provider").Logger()
	logger.Info().Msg("initializing otel tracer provider")
	c = logger.WithContext(c)
	tracerProvider, err := trace.InitTracerProvider(c, endpoint, serviceName)
	if err != nil {
		err = fmt.Errorf("failed initializing tracer provider with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	logger.Info().Msg("initialized otel tracer provider")

	logger = logger.With().Str(log.KeyProcess, "initializing meter provider").Logger()
	logger.Info().Msg("initializing otel meter provider")
	meterProvider, err := metric.InitMeterProvider(c, endpoint)
	if err != nil {
		err = fmt.Errorf("failed initializing meter provider with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return shutdownFuncs, err
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	logger.Info().Msg("initialized otel meter provider")

	return shutdownFuncs, nil
}

func ShutdownOtel(c context.Context, shutdownFuncs []ShutdownFunc) error {
	var err error
	for _, shutdown := range shutdownFuncs {
		err = errors.Join(err, shutdown(c))
	}
	return err
}
