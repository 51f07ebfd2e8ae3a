// Package telemetry turns navigation activity into OpenTelemetry spans.
package telemetry

import (
	"context"
	"os"
	"time"

	"backoffice/internal/nav"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "backoffice/nav"

// Exporter records one span per flyout session and per hover or pinned
// expansion of the panel, plus a short span per navigation.
type Exporter struct {
	provider *sdktrace.TracerProvider // nil when the tracer was injected
	tracer   oteltrace.Tracer
	now      func() time.Time

	ctx      context.Context
	flyout   oteltrace.Span
	flyoutID string
	expanded oteltrace.Span
}

var _ nav.Observer = (*Exporter)(nil)

// NewOTLPExporter creates an exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if endpoint not configured (disabled).
func NewOTLPExporter(ctx context.Context) (*Exporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "backoffice"
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	e := NewExporter(provider.Tracer(tracerName))
	e.provider = provider
	return e, nil
}

// NewExporter records spans on tracer.
func NewExporter(tracer oteltrace.Tracer) *Exporter {
	return &Exporter{
		tracer: tracer,
		now:    time.Now,
		ctx:    context.Background(),
	}
}

// Transition implements nav.Observer.
func (e *Exporter) Transition(event string, snap nav.Snapshot) {
	if e == nil {
		return
	}
	now := e.now()

	if snap.IsExpanded && e.expanded == nil {
		_, e.expanded = e.tracer.Start(e.ctx, "nav.panel.expanded",
			oteltrace.WithTimestamp(now),
			oteltrace.WithAttributes(attribute.String("backoffice.nav.trigger", event)),
		)
	} else if !snap.IsExpanded && e.expanded != nil {
		e.expanded.SetAttributes(attribute.String("backoffice.nav.end", event))
		e.expanded.End(oteltrace.WithTimestamp(now))
		e.expanded = nil
	}

	if snap.OpenFlyoutID == e.flyoutID {
		return
	}
	if e.flyout != nil {
		e.flyout.SetAttributes(attribute.String("backoffice.nav.end", event))
		e.flyout.End(oteltrace.WithTimestamp(now))
		e.flyout = nil
	}
	e.flyoutID = snap.OpenFlyoutID
	if e.flyoutID == "" {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("backoffice.flyout.id", e.flyoutID),
		attribute.String("backoffice.nav.trigger", event),
	}
	if snap.FlyoutTop != nil {
		attrs = append(attrs, attribute.Int("backoffice.flyout.top", *snap.FlyoutTop))
	}
	_, e.flyout = e.tracer.Start(e.ctx, "nav.flyout.open",
		oteltrace.WithTimestamp(now),
		oteltrace.WithAttributes(attrs...),
	)
}

// Navigated implements nav.Observer.
func (e *Exporter) Navigated(path string) {
	if e == nil {
		return
	}
	now := e.now()
	_, span := e.tracer.Start(e.ctx, "nav.navigate",
		oteltrace.WithTimestamp(now),
		oteltrace.WithAttributes(attribute.String("backoffice.route.path", path)),
	)
	if nav.ComingSoon(path) {
		span.SetAttributes(attribute.Bool("backoffice.route.coming_soon", true))
	}
	span.End(oteltrace.WithTimestamp(now))
}

// Shutdown ends open spans, then flushes and closes the exporter.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	now := e.now()
	if e.flyout != nil {
		e.flyout.End(oteltrace.WithTimestamp(now))
		e.flyout = nil
	}
	if e.expanded != nil {
		e.expanded.End(oteltrace.WithTimestamp(now))
		e.expanded = nil
	}
	if e.provider == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
