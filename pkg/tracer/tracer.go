// Package tracer sets up the opentracing tracer backed by jaeger
// Package tracer 初始化基于 jaeger 的 opentracing 追踪器
package tracer

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

// Config 追踪器配置
type Config struct {
	ServiceName string
	// AgentHost jaeger agent address, empty disables reporting
	// AgentHost jaeger agent 地址，为空时不上报
	AgentHost string
	// SampleRate 采样率 0~1
	SampleRate float64
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewJaegerTracer creates a tracer and installs it as the global opentracing tracer
// NewJaegerTracer 创建追踪器并设置为全局 opentracing 追踪器
//
// The gorm tracing plugin and the trace middleware both start spans from the global tracer.
func NewJaegerTracer(cfg Config) (opentracing.Tracer, io.Closer, error) {
	if cfg.AgentHost == "" {
		t := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(t)
		return t, nopCloser{}, nil
	}

	jc := &config.Configuration{
		ServiceName: cfg.ServiceName,
		Sampler: &config.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: cfg.SampleRate,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: cfg.AgentHost,
		},
	}

	t, closer, err := jc.NewTracer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(t)

	return t, closer, nil
}
