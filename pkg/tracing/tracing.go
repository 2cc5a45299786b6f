package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/reachsuite/emailbuilder/config"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

type traceExporterFactory func(cfg *config.TracingConfig, log logger.Logger) (trace.Exporter, error)

type viewExporterFactory func(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error)

var traceExporters = map[string]traceExporterFactory{
	"jaeger":      newJaegerExporter,
	"zipkin":      newZipkinExporter,
	"stackdriver": newStackdriverTraceExporter,
	"datadog":     newDatadogExporter,
	"xray":        newXRayExporter,
}

var metricsExporters = map[string]viewExporterFactory{
	"prometheus":  newPrometheusExporter,
	"stackdriver": newStackdriverMetricsExporter,
	"datadog":     newDatadogMetricsExporter,
}

// Init configures OpenCensus sampling, exporters and the default HTTP and SQL views
// codecov:ignore:start
func Init(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if name := cfg.TraceExporter; name != "" && name != "none" {
		factory, ok := traceExporters[name]
		if !ok {
			return fmt.Errorf("unsupported trace exporter: %s", name)
		}
		exporter, err := factory(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize %s trace exporter: %w", name, err)
		}
		trace.RegisterExporter(exporter)
	}

	names, err := ParseExporterList(cfg.MetricsExporter)
	if err != nil {
		return err
	}
	for _, name := range names {
		exporter, err := metricsExporters[name](cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", name, err)
		}
		view.RegisterExporter(exporter)
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": strings.Join(names, ","),
		"sampling":         cfg.SamplingProbability,
	}).Info("OpenCensus initialized")
	return nil
}

// codecov:ignore:end

// ParseExporterList splits a comma separated metrics exporter setting and
// rejects unknown names. "none" and blanks are ignored.
func ParseExporterList(value string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	for _, name := range strings.Split(value, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" || seen[name] {
			continue
		}
		if _, ok := metricsExporters[name]; !ok {
			return nil, fmt.Errorf("unsupported metrics exporter: %s", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// SupportedTraceExporters lists the accepted TraceExporter values
func SupportedTraceExporters() []string {
	names := make([]string, 0, len(traceExporters))
	for name := range traceExporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func datadogAgent(cfg *config.TracingConfig) (string, error) {
	if cfg.DatadogAgentAddress == "" {
		return "", errors.New("datadog agent address is required")
	}
	return cfg.DatadogAgentAddress, nil
}

// codecov:ignore:start
func newJaegerExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.JaegerEndpoint == "" {
		return nil, errors.New("jaeger endpoint is required")
	}
	return jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process:           jaeger.Process{ServiceName: cfg.ServiceName},
	})
}

func newZipkinExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.ZipkinEndpoint == "" {
		return nil, errors.New("zipkin endpoint is required")
	}
	return zipkin.NewExporter(zipkinhttp.NewReporter(cfg.ZipkinEndpoint), nil), nil
}

func newStackdriverTraceExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, errors.New("stackdriver project ID is required")
	}
	return stackdriver.NewExporter(stackdriver.Options{ProjectID: cfg.StackdriverProjectID})
}

func newDatadog(cfg *config.TracingConfig, log logger.Logger) (*datadog.Exporter, error) {
	agent, err := datadogAgent(cfg)
	if err != nil {
		return nil, err
	}
	return datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agent,
		StatsAddr: agent,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Datadog exporter error")
		},
	})
}

func newDatadogExporter(cfg *config.TracingConfig, log logger.Logger) (trace.Exporter, error) {
	return newDatadog(cfg, log)
}

func newDatadogMetricsExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	return newDatadog(cfg, log)
}

func newXRayExporter(cfg *config.TracingConfig, _ logger.Logger) (trace.Exporter, error) {
	if cfg.XRayRegion == "" {
		return nil, errors.New("AWS region is required for X-Ray")
	}
	return aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
}

func newStackdriverMetricsExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, errors.New("stackdriver project ID is required")
	}
	return stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Stackdriver metrics exporter error")
		},
	})
}

func newPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) (view.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Error("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, err
	}

	if cfg.PrometheusPort > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", pe)
			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.PrometheusPort),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			log.WithField("port", cfg.PrometheusPort).Info("Starting Prometheus metrics server")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithField("error", err.Error()).Error("Prometheus metrics server stopped")
			}
		}()
	}
	return pe, nil
}

// codecov:ignore:end
