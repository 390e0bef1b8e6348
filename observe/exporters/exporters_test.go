package exporters

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewTracingExporter_Names(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "http://localhost:4317")

	for _, name := range []string{"stdout", "otlp", "jaeger", "none", ""} {
		t.Run(name, func(t *testing.T) {
			exp, err := NewTracingExporter(context.Background(), name)
			if err != nil {
				t.Fatalf("NewTracingExporter(%q) error = %v", name, err)
			}
			if exp == nil {
				t.Fatalf("NewTracingExporter(%q) returned nil exporter", name)
			}
		})
	}
}

func TestNewTracingExporter_UnknownName(t *testing.T) {
	_, err := NewTracingExporter(context.Background(), "zipkin")
	if err == nil {
		t.Fatal("expected error for unknown exporter name")
	}
	if !strings.Contains(err.Error(), "unknown exporter") {
		t.Errorf("error = %v, want it to mention unknown exporter", err)
	}
}

func TestNewTracingExporter_MissingEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")

	for _, name := range []string{"otlp", "jaeger"} {
		_, err := NewTracingExporter(context.Background(), name)
		if !errors.Is(err, ErrEndpointNotConfigured) {
			t.Errorf("NewTracingExporter(%q) error = %v, want ErrEndpointNotConfigured", name, err)
		}
	}
}

func TestNewTracingExporter_TracesEndpointOnly(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://localhost:4317")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err != nil {
		t.Fatalf("NewTracingExporter(otlp) error = %v", err)
	}
}

func TestNewMetricsReader_Names(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")

	for _, name := range []string{"stdout", "otlp", "prometheus", "none", ""} {
		t.Run(name, func(t *testing.T) {
			reader, err := NewMetricsReader(context.Background(), name)
			if err != nil {
				t.Fatalf("NewMetricsReader(%q) error = %v", name, err)
			}
			if reader == nil {
				t.Fatalf("NewMetricsReader(%q) returned nil reader", name)
			}
		})
	}
}

func TestNewMetricsReader_MissingEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	_, err := NewMetricsReader(context.Background(), "otlp")
	if !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("error = %v, want ErrEndpointNotConfigured", err)
	}
}

func TestNewMetricsReader_UnknownName(t *testing.T) {
	_, err := NewMetricsReader(context.Background(), "statsd")
	if err == nil {
		t.Fatal("expected error for unknown metrics exporter name")
	}
	if !strings.Contains(err.Error(), "unknown metrics exporter") {
		t.Errorf("error = %v, want it to mention unknown metrics exporter", err)
	}
}
