package monitoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTracingProvider_Disabled(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{ServiceName: "pantryplan"}, zap.NewNop())
	require.NoError(t, err)

	ctx, span := tp.StartAISpan(context.Background(), "gemini", "gemini-1.5-flash", "estimate_nutrition")
	defer span.End()

	assert.False(t, span.IsRecording())
	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracingProvider_EnabledWithoutExporter(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{
		ServiceName:    "pantryplan",
		ServiceVersion: "test",
		Environment:    "test",
		SamplingRate:   1,
		Enabled:        true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.StartAISpan(context.Background(), "gemini", "gemini-1.5-flash", "estimate_nutrition")
	assert.True(t, span.IsRecording())
	assert.Len(t, TraceIDFromContext(ctx), 32)

	// must not panic on a live span
	RecordError(ctx, errors.New("upstream timeout"))
	span.End()
}

func TestNewResource_MergesWithSDKDefaults(t *testing.T) {
	res, err := newResource(TracingConfig{
		ServiceName:    "pantryplan",
		ServiceVersion: "1.2.3",
		Environment:    "staging",
	})
	require.NoError(t, err)

	values := map[string]string{}
	for _, kv := range res.Attributes() {
		values[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "pantryplan", values["service.name"])
	assert.Equal(t, "1.2.3", values["service.version"])
	assert.Equal(t, "staging", values["deployment.environment"])
	assert.Equal(t, "opentelemetry", values["telemetry.sdk.name"])
}

func TestTraceIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
