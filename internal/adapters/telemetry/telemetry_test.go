package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/lessbuild/internal/adapters/telemetry"
	"go.trai.ch/lessbuild/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	shutdown := telemetry.Setup(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("test-tracer")
	_, span := tracer.Start(context.Background(), "less.compile")
	span.SetAttribute("input", "/a/main.less")
	span.SetAttribute("dependencies", 3)
	span.SetAttribute("imports", []string{"/a/b.less"})
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "less.compile", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("input", "/a/main.less"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("dependencies", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.String("other", "{1}"))
	require.Len(t, spans[0].Events(), 1)
}

func TestOTelTracer_NilErrorKeepsStatus(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := telemetry.NewOTelTracer("test-tracer").Start(context.Background(), "process.run")
	span.RecordError(nil)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
