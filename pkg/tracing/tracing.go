package tracing

import (
	"io"
	"net"
	"strconv"

	"delta_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaeger "github.com/uber/jaeger-client-go"
	jCfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
)

type Config struct {
	Service string
	Host    string // empty keeps the no-op tracer
	Port    int
}

// AgentAddr is the UDP address of the jaeger agent.
func (c Config) AgentAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// jaegerLogger routes jaeger's own diagnostics through pkg/logger.
type jaegerLogger struct{}

var _ jaeger.Logger = jaegerLogger{}

func (jaegerLogger) Error(msg string) { logger.Error("jaeger: %s", msg) }

func (jaegerLogger) Infof(msg string, args ...interface{}) { logger.Info("jaeger: "+msg, args...) }

// InitTracer sets the global opentracing tracer and returns it with its closer.
func InitTracer(conf Config) (opentracing.Tracer, func(), error) {
	if conf.Host == "" {
		var noop opentracing.Tracer = opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(noop)
		return noop, func() {}, nil
	}

	jc := jCfg.Configuration{
		ServiceName: conf.Service,
		Sampler:     &jCfg.SamplerConfig{Type: jaeger.SamplerTypeConst, Param: 1},
		Reporter:    &jCfg.ReporterConfig{LocalAgentHostPort: conf.AgentAddr()},
	}
	tracer, closer, err := jc.NewTracer(
		jCfg.Metrics(metrics.NullFactory),
		jCfg.Logger(jaegerLogger{}),
	)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "jaeger tracer for %s", conf.AgentAddr())
	}
	opentracing.SetGlobalTracer(tracer)
	return tracer, closeQuietly(closer), nil
}

func closeQuietly(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("close jaeger tracer: %v", err)
		}
	}
}
