package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv(EnvEnabled, "")

	require.NoError(t, Init(context.Background(), "releaseflow", "test"))
	assert.False(t, Enabled())
	assert.Empty(t, shutdownFns)

	_, span := Tracer("").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()
}

func TestInit_Enabled(t *testing.T) {
	t.Setenv(EnvEnabled, "true")
	var buf bytes.Buffer
	old := Output
	Output = &buf
	t.Cleanup(func() { Output = old })

	require.NoError(t, Init(context.Background(), "releaseflow", "test"))
	assert.True(t, Enabled())

	_, span := Tracer("test").Start(context.Background(), "workflow.step")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	counter, err := Meter("test").Int64Counter("releaseflow.test")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	Shutdown(context.Background())
	assert.Empty(t, shutdownFns)
	assert.Contains(t, buf.String(), "workflow.step")

	// Leave no-op providers behind for other tests.
	t.Setenv(EnvEnabled, "")
	require.NoError(t, Init(context.Background(), "releaseflow", "test"))
}
