package reporting

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/unit-harness/framework"
)

const (
	recordTypeTest    = "test"
	recordTypeSummary = "summary"
)

// TestRecord is one line of the JSON lines report.
type TestRecord struct {
	Type           string                 `json:"type"`
	RunID          string                 `json:"runId"`
	Name           string                 `json:"name"`
	Container      string                 `json:"container"`
	Status         framework.Status       `json:"status"`
	ElapsedMillis  int64                  `json:"elapsedMs"`
	FailureKind    ldvalue.OptionalString `json:"failureKind"`
	FailureMessage ldvalue.OptionalString `json:"failureMessage"`
	SkipReason     ldvalue.OptionalString `json:"skipReason"`
	Output         []string               `json:"output,omitempty"`
}

// SummaryRecord is the last line of the JSON lines report, and the body of the webhook
// notification.
type SummaryRecord struct {
	Type          string    `json:"type"`
	RunID         string    `json:"runId"`
	Finished      time.Time `json:"finished"`
	ElapsedMillis int64     `json:"elapsedMs"`
	Total         int       `json:"total"`
	Passed        int       `json:"passed"`
	Failed        int       `json:"failed"`
	Skipped       int       `json:"skipped"`
	Failures      []string  `json:"failures"`
}

func newTestRecord(runID string, result framework.TestResult) TestRecord {
	rec := TestRecord{
		Type:          recordTypeTest,
		RunID:         runID,
		Name:          result.Name,
		Container:     result.ContainerName(),
		Status:        result.Status,
		ElapsedMillis: result.ElapsedMillis(),
		Output:        outputLines(result.Output),
	}
	if result.Failure != nil {
		rec.FailureKind = ldvalue.NewOptionalString(result.Failure.Kind())
		rec.FailureMessage = ldvalue.NewOptionalString(plain(result.Failure.Message()))
	}
	if result.Status == framework.StatusSkipped {
		rec.SkipReason = ldvalue.NewOptionalString(result.SkipReason)
	}
	return rec
}

func newSummaryRecord(runID string, results []framework.TestResult, totals framework.Totals, elapsed time.Duration) SummaryRecord {
	failures := make([]string, 0, totals.Failed)
	for _, r := range results {
		if r.Status == framework.StatusFailed {
			failures = append(failures, r.Name)
		}
	}
	return SummaryRecord{
		Type:          recordTypeSummary,
		RunID:         runID,
		Finished:      time.Now().UTC(),
		ElapsedMillis: elapsed.Milliseconds(),
		Total:         totals.Total,
		Passed:        totals.Passed,
		Failed:        totals.Failed,
		Skipped:       totals.Skipped,
		Failures:      failures,
	}
}

// JSONReporter writes one JSON object per test, then a summary object, when the run
// finishes.
type JSONReporter struct {
	collector
	fileOutput
	runID string
}

func NewJSONReporter(path, runID string, info io.Writer, diagnostics framework.Logger) *JSONReporter {
	return &JSONReporter{fileOutput: newFileOutput("JSON", path, info, diagnostics), runID: runID}
}

func (r *JSONReporter) TestRunFinished(totals framework.Totals) {
	summary := newSummaryRecord(r.runID, r.results, totals, r.runDuration())
	r.write(func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, result := range r.results {
			if err := enc.Encode(newTestRecord(r.runID, result)); err != nil {
				return err
			}
		}
		return enc.Encode(summary)
	})
}
