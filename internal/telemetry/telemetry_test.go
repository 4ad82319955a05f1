package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestSpan_EndRecordsError(t *testing.T) {
	rec := withRecorder(t)

	err := errors.New("dial refused")
	_, s := Start(context.Background(), "node.connect", attribute.String("node", "n1"))
	s.End(&err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "node.connect", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1, "error should be recorded as an event")
}

func TestSpan_EndOk(t *testing.T) {
	rec := withRecorder(t)

	var err error
	_, s := Start(context.Background(), "player.spawn")
	s.SetAttributes(attribute.String("guild", "g1"))
	s.End(&err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestSetup_None(t *testing.T) {
	shutdown, err := Setup(context.Background(), Options{Exporter: ExporterNone})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Options{Exporter: ExporterStdout, Writer: &buf})
	require.NoError(t, err)

	var spanErr error
	_, s := Start(context.Background(), "test.span")
	s.End(&spanErr)

	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, buf.String(), "test.span")
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), Options{Exporter: "zipkin"})
	require.Error(t, err)
}
