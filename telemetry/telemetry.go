// Package telemetry exports HTTP traces over OTLP/gRPC when
// OTEL_EXPORTER_OTLP_ENDPOINT (a URL such as http://collector:4317) is set,
// and does nothing otherwise.
package telemetry

import (
	"context"
	"os"

	"github.com/mbolis/survey-box/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs the global tracer provider and returns its shutdown func.
func Setup(serviceName string) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}

	// the exporter reads OTEL_EXPORTER_OTLP_* (endpoint URL, insecure, headers) itself
	exporter, err := otlptracegrpc.New(context.Background())
	if err != nil {
		log.Warnf("telemetry.exporter: %s", err)
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.Warnf("telemetry.resource: %s", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Infof("telemetry: exporting traces to %s", endpoint)

	return provider.Shutdown
}
