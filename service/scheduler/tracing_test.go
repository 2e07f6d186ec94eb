package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernel/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestService_ProcessSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, tracing.InitWithExporter("kernel", "test", exporter))
	ctx, runSpan := tracing.StartSpan(context.Background(), "run", "INTERNAL")
	defer tracing.EndSpan(runSpan, nil)

	_, halt, _ := run(t, func(k *Service) int {
		pid, err := k.Spork("worker", child(func() int { return 0 }), nil, MinStack, 4)
		assert.NoError(t, err)
		joined, _, err := k.Join()
		assert.NoError(t, err)
		assert.Equal(t, pid, joined)
		return 0
	}, WithContext(ctx))
	assert.Equal(t, 0, halt.Code)
	require.NoError(t, tracing.Flush(context.Background()))

	byName := map[string]tracetest.SpanStub{}
	for _, span := range exporter.GetSpans() {
		byName[span.Name] = span
	}
	require.Contains(t, byName, "process init")
	require.Contains(t, byName, "process testcase_main")
	require.Contains(t, byName, "process worker")

	initSpan := byName["process init"]
	assert.Equal(t, runSpan.TraceID(), initSpan.SpanContext.TraceID().String())
	assert.Contains(t, initSpan.Attributes, attribute.String("halt.code", "0"))
	assert.Equal(t, initSpan.SpanContext.SpanID(), byName["process testcase_main"].Parent.SpanID())
	assert.Equal(t, byName["process testcase_main"].SpanContext.SpanID(), byName["process worker"].Parent.SpanID())
}
