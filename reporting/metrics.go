package reporting

import (
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/launchdarkly/unit-harness/framework"
)

const metricsNamespace = "unit_harness"

// MetricsReporter records Prometheus metrics for the run in its own registry and writes
// them in the text exposition format when the run finishes, for node_exporter's textfile
// collector or a Pushgateway.
type MetricsReporter struct {
	fileOutput
	registry   *prometheus.Registry
	testsTotal *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	runTests   *prometheus.GaugeVec
}

func NewMetricsReporter(path string, info io.Writer, diagnostics framework.Logger) *MetricsReporter {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &MetricsReporter{
		fileOutput: newFileOutput("Metrics", path, info, diagnostics),
		registry:   registry,
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tests_total",
			Help:      "Count of executed tests by container and status",
		}, []string{
			"container",
			"status",
		}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "test_duration_seconds",
			Help:      "Duration of tests that ran, skipped tests excluded",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		}, []string{
			"container",
		}),
		runTests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_tests",
			Help:      "Totals of the last run by status",
		}, []string{
			"status",
		}),
	}
}

// Registry exposes the collected metrics.
func (r *MetricsReporter) Registry() *prometheus.Registry {
	return r.registry
}

func (r *MetricsReporter) TestStarted(string) {}

func (r *MetricsReporter) TestFinished(result framework.TestResult) {
	container := result.ContainerName()
	r.testsTotal.WithLabelValues(container, statusLabel(result.Status)).Inc()
	if result.Status != framework.StatusSkipped {
		r.durations.WithLabelValues(container).Observe(result.Elapsed.Seconds())
	}
}

func (r *MetricsReporter) TestRunFinished(totals framework.Totals) {
	r.runTests.WithLabelValues("total").Set(float64(totals.Total))
	r.runTests.WithLabelValues(statusLabel(framework.StatusPassed)).Set(float64(totals.Passed))
	r.runTests.WithLabelValues(statusLabel(framework.StatusFailed)).Set(float64(totals.Failed))
	r.runTests.WithLabelValues(statusLabel(framework.StatusSkipped)).Set(float64(totals.Skipped))
	r.finish(prometheus.WriteToTextfile(r.path, r.registry))
}

func statusLabel(status framework.Status) string {
	return strings.ToLower(string(status))
}
