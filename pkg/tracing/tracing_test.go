package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/config"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

func TestInit_Disabled(t *testing.T) {
	err := Init(&config.TracingConfig{Enabled: false, TraceExporter: "bogus"}, logger.NewTestLogger(t))
	assert.NoError(t, err)
}

func TestInit_RejectsUnknownExporters(t *testing.T) {
	log := logger.NewTestLogger(t)

	err := Init(&config.TracingConfig{Enabled: true, SamplingProbability: 1, TraceExporter: "bogus"}, log)
	assert.EqualError(t, err, "unsupported trace exporter: bogus")

	err = Init(&config.TracingConfig{Enabled: true, SamplingProbability: 1, MetricsExporter: "statsd"}, log)
	assert.EqualError(t, err, "unsupported metrics exporter: statsd")
}

func TestInit_MissingExporterSettings(t *testing.T) {
	log := logger.NewTestLogger(t)
	cases := map[string]string{
		"jaeger":      "jaeger endpoint is required",
		"zipkin":      "zipkin endpoint is required",
		"stackdriver": "stackdriver project ID is required",
		"datadog":     "datadog agent address is required",
		"xray":        "AWS region is required for X-Ray",
	}
	for exporter, message := range cases {
		t.Run(exporter, func(t *testing.T) {
			err := Init(&config.TracingConfig{Enabled: true, SamplingProbability: 1, TraceExporter: exporter}, log)
			require.Error(t, err)
			assert.Contains(t, err.Error(), message)
		})
	}
}

func TestParseExporterList(t *testing.T) {
	names, err := ParseExporterList(" prometheus, none,,Datadog,prometheus ")
	require.NoError(t, err)
	assert.Equal(t, []string{"prometheus", "datadog"}, names)

	names, err = ParseExporterList("")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = ParseExporterList("prometheus,graphite")
	assert.EqualError(t, err, "unsupported metrics exporter: graphite")
}

func TestSupportedTraceExporters(t *testing.T) {
	assert.Equal(t, []string{"datadog", "jaeger", "stackdriver", "xray", "zipkin"}, SupportedTraceExporters())
}
