package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	rowMutations metric.Int64Counter
	recalcRuns   metric.Int64Counter
	ocrImports   metric.Int64Counter
	pdfExports   metric.Int64Counter
	configSaves  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "gstdesk"
	}
	meter := provider.Meter(name)

	rowMutations, err := meter.Int64Counter("gstdesk_row_mutations_total")
	if err != nil {
		return nil, err
	}
	recalcRuns, err := meter.Int64Counter("gstdesk_recalc_runs_total")
	if err != nil {
		return nil, err
	}
	ocrImports, err := meter.Int64Counter("gstdesk_ocr_imports_total")
	if err != nil {
		return nil, err
	}
	pdfExports, err := meter.Int64Counter("gstdesk_pdf_exports_total")
	if err != nil {
		return nil, err
	}
	configSaves, err := meter.Int64Counter("gstdesk_column_config_saves_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		rowMutations: rowMutations,
		recalcRuns:   recalcRuns,
		ocrImports:   ocrImports,
		pdfExports:   pdfExports,
		configSaves:  configSaves,
	}, nil
}

// RecordRowMutation increments row mutation counts by operation.
func (m *Metrics) RecordRowMutation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("operation", strings.TrimSpace(operation)))
	m.rowMutations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRecalc increments recalculation run counts.
func (m *Metrics) RecordRecalc(ctx context.Context, scope string, rows int64) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("scope", strings.TrimSpace(scope)))
	m.recalcRuns.Add(ctx, rows, metric.WithAttributes(attrs...))
}

// RecordOCRImport increments OCR import counts.
func (m *Metrics) RecordOCRImport(ctx context.Context, rows int64) {
	if m == nil {
		return
	}
	m.ocrImports.Add(ctx, 1, metric.WithAttributes(
		FilterAttributes(attribute.Int64("rows", rows))...,
	))
}

// RecordPDFExport increments PDF export counts.
func (m *Metrics) RecordPDFExport(ctx context.Context) {
	if m == nil {
		return
	}
	m.pdfExports.Add(ctx, 1)
}

// RecordConfigSave increments column config snapshot counts.
func (m *Metrics) RecordConfigSave(ctx context.Context) {
	if m == nil {
		return
	}
	m.configSaves.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"operation":   {},
	"scope":       {},
	"endpoint":    {},
	"status_code": {},
	"rows":        {},
	"method":      {},
	"route":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
