package tracer

import (
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJaegerTracer_NoAgent(t *testing.T) {
	tr, closer, err := NewJaegerTracer(Config{ServiceName: "test"})
	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, opentracing.NoopTracer{}, tr)
	assert.Equal(t, tr, opentracing.GlobalTracer())
}

func TestNewJaegerTracer_WithAgent(t *testing.T) {
	tr, closer, err := NewJaegerTracer(Config{
		ServiceName: "test",
		AgentHost:   "127.0.0.1:6831",
		SampleRate:  1,
	})
	require.NoError(t, err)
	defer closer.Close()
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	span := tr.StartSpan("unit")
	span.Finish()
	assert.NotNil(t, span.Context())
}
