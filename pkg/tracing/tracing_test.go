package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), DefaultConfig("storefront"))
	if err != nil {
		t.Fatalf("InitTracer(disabled) returned error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown function should not be nil even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown(disabled) returned error: %v", err)
	}
}

func TestInitTracer_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := DefaultConfig("storefront")
	cfg.Enabled = true
	cfg.OTLPEndpoint = "127.0.0.1:0"

	shutdown, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer(enabled) returned error: %v", err)
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("expected *sdktrace.TracerProvider, got %T", otel.GetTracerProvider())
	}
	if err := shutdown(context.Background()); err != nil {
		t.Logf("shutdown returned (expected with unreachable endpoint): %v", err)
	}
}

func TestSampler(t *testing.T) {
	cases := map[float64]string{
		1.0: "ParentBased{root:AlwaysOnSampler",
		0.0: "AlwaysOffSampler",
		0.5: "ParentBased{root:TraceIDRatioBased{0.5}",
	}
	for rate, prefix := range cases {
		got := sampler(rate).Description()
		if len(got) < len(prefix) || got[:len(prefix)] != prefix {
			t.Errorf("sampler(%v) = %q, want prefix %q", rate, got, prefix)
		}
	}
}

func TestStartEnd_RecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Start(context.Background(), "cart.add", attribute.String("comic.id", "001"))
	End(span, errors.New("boom"))

	_, ok := Start(context.Background(), "cart.remove")
	End(ok, nil)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name != "cart.add" || spans[0].Status.Code != codes.Error {
		t.Errorf("first span = %q status %v", spans[0].Name, spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected a recorded error event")
	}
	if spans[1].Status.Code == codes.Error {
		t.Error("successful span marked as error")
	}
}
