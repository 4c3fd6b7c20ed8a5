// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "dungeoncrawl"
	serviceVersion = "0.2.0"
)

// Config selects whether and where spans are exported.
type Config struct {
	Enabled  bool   `env:"DUNGEONCRAWL_TELEMETRY" envDefault:"true"`
	Endpoint string `env:"DUNGEONCRAWL_OTLP_ENDPOINT" envDefault:"https://api.honeycomb.io"`
	APIKey   string `env:"HONEYCOMB_DUNGEONCRAWL_API_KEY"`
	Dataset  string `env:"HONEYCOMB_DUNGEONCRAWL_DATASET" envDefault:"dungeoncrawl"`
}

// ExportEnv translates cfg into the standard OTEL_* variables read by the
// OTLP exporter. The .env file may hold an unexpanded reference, so the
// header is always built here.
func (c Config) ExportEnv() {
	if c.Endpoint != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Endpoint)
	}
	if c.APIKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", c.APIKey, c.Dataset))
	}
}

// Setup initializes OpenTelemetry with an OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Honeycomb endpoint (https://api.honeycomb.io)
//   - OTEL_EXPORTER_OTLP_HEADERS: Headers including x-honeycomb-team=<api-key>
//
// When cfg.Enabled is false nothing is registered and the global no-op
// provider stays in place. Returns a shutdown function that should be called
// on application exit.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ExportEnv()

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component.
// Use this to create spans within different parts of the application.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("dungeoncrawl/" + name)
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
