package reporting

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/launchdarkly/unit-harness/framework"
)

// Config selects and configures the reporters of a run. Empty paths disable the
// corresponding report.
type Config struct {
	HTMLPath    string
	XMLPath     string
	JSONPath    string
	MetricsPath string
	NotifyURL   string

	Console ConsoleOptions

	// Out receives console output and "report generated" notices.
	Out         io.Writer
	Diagnostics framework.Logger
	HTTPClient  *http.Client
	// RunID identifies the run in JSON and webhook output; a random UUID if empty.
	RunID string
}

type erroring interface {
	Err() error
}

// Reporters is the composite of all reporters of a run.
type Reporters struct {
	*framework.CompositeReporter
	runID   string
	outputs []erroring
}

// New builds the console reporter followed by every report enabled in cfg.
func New(cfg Config) *Reporters {
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	diagnostics := cfg.Diagnostics
	if diagnostics == nil {
		diagnostics = framework.NullLogger()
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	r := &Reporters{
		CompositeReporter: framework.NewCompositeReporter(diagnostics, NewConsoleReporter(out, cfg.Console)),
		runID:             runID,
	}
	add := func(reporter framework.Reporter, output erroring) {
		r.Add(reporter)
		r.outputs = append(r.outputs, output)
	}
	if cfg.HTMLPath != "" {
		html := NewHTMLReporter(cfg.HTMLPath, cfg.Console.DebugOutputOnFailure || cfg.Console.DebugOutputOnSuccess, out, diagnostics)
		add(html, html)
	}
	if cfg.XMLPath != "" {
		junit := NewJUnitReporter(cfg.XMLPath, out, diagnostics)
		add(junit, junit)
	}
	if cfg.JSONPath != "" {
		jsonLines := NewJSONReporter(cfg.JSONPath, runID, out, diagnostics)
		add(jsonLines, jsonLines)
	}
	if cfg.MetricsPath != "" {
		metrics := NewMetricsReporter(cfg.MetricsPath, out, diagnostics)
		add(metrics, metrics)
	}
	if cfg.NotifyURL != "" {
		webhook := NewWebhookReporter(cfg.NotifyURL, runID, cfg.HTTPClient, diagnostics)
		add(webhook, webhook)
	}
	return r
}

func (r *Reporters) RunID() string { return r.runID }

// Errors returns the errors of reports that could not be written or sent. It is only
// meaningful after TestRunFinished.
func (r *Reporters) Errors() []error {
	var errs []error
	for _, o := range r.outputs {
		if err := o.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
