package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/launchdarkly/unit-harness/framework"
)

const defaultWebhookTimeout = time.Second * 10

// WebhookReporter posts a SummaryRecord as JSON to a URL when the run finishes. Failures
// are logged and kept; they never affect test results.
type WebhookReporter struct {
	collector
	url         string
	runID       string
	client      *http.Client
	diagnostics framework.Logger
	err         error
}

// NewWebhookReporter creates the reporter. A nil client means an http.Client with a ten
// second timeout.
func NewWebhookReporter(url, runID string, client *http.Client, diagnostics framework.Logger) *WebhookReporter {
	if client == nil {
		client = &http.Client{Timeout: defaultWebhookTimeout}
	}
	if diagnostics == nil {
		diagnostics = framework.NullLogger()
	}
	return &WebhookReporter{url: url, runID: runID, client: client, diagnostics: diagnostics}
}

func (r *WebhookReporter) Err() error { return r.err }

func (r *WebhookReporter) TestRunFinished(totals framework.Totals) {
	summary := newSummaryRecord(r.runID, r.results, totals, r.runDuration())
	if err := r.post(summary); err != nil {
		r.err = fmt.Errorf("failed to notify %s: %w", r.url, err)
		r.diagnostics.Printf("Failed to send run summary to %s: %s", r.url, err)
	}
}

func (r *WebhookReporter) post(summary SummaryRecord) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", r.url, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		message := ""
		if len(body) > 0 {
			message = ": " + string(body)
		}
		return fmt.Errorf("unexpected response status %d%s", resp.StatusCode, message)
	}
	return nil
}
