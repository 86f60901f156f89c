// Package metrics provides OpenTelemetry metrics instrumentation backed by a private
// Prometheus registry. A CLI process does not live long enough to be scraped, so the
// collected series are flushed to a node-exporter textfile on shutdown.
package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Provider owns the meter provider, its Prometheus exporter and the registry behind it.
type Provider struct {
	meterProvider *metric.MeterProvider
	exporter      *promexporter.Exporter
	registry      *prometheus.Registry
	textfile      string
}

// NewProvider creates a provider whose series are registered on a fresh registry.
// When textfile is not empty, Shutdown writes the registry to that path.
func NewProvider(textfile string) (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	return &Provider{
		meterProvider: metric.NewMeterProvider(metric.WithReader(exporter)),
		exporter:      exporter,
		registry:      registry,
		textfile:      textfile,
	}, nil
}

// MeterProvider returns the OpenTelemetry meter provider for creating meters.
func (p *Provider) MeterProvider() *metric.MeterProvider {
	return p.meterProvider
}

// Gather collects the current metric families from the registry.
func (p *Provider) Gather() ([]*dto.MetricFamily, error) {
	return p.registry.Gather()
}

// WriteTextfile writes the registry in text exposition format to path. The file is
// replaced atomically so a collector never reads a partial write.
func (p *Provider) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes the configured textfile, if any, and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}

	var flushErr error
	if p.textfile != "" {
		flushErr = p.WriteTextfile(p.textfile)
	}

	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return err
	}
	return flushErr
}
