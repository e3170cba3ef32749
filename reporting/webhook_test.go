package reporting

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/unit-harness/framework"
)

func TestWebhookPostsSummary(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(204))
	server := httptest.NewServer(handler)
	defer server.Close()

	r := NewWebhookReporter(server.URL+"/runs", "run-2", nil, framework.NullLogger())
	sampleRun(r)
	require.NoError(t, r.Err())

	require.Len(t, requestsCh, 1)
	req := <-requestsCh
	assert.Equal(t, "POST", req.Request.Method)
	assert.Equal(t, "/runs", req.Request.URL.Path)
	assert.Equal(t, "application/json", req.Request.Header.Get("Content-Type"))
	var summary SummaryRecord
	require.NoError(t, json.Unmarshal(req.Body, &summary))
	assert.Equal(t, "run-2", summary.RunID)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, []string{"CalculatorTest.failingExample"}, summary.Failures)
}

func TestWebhookErrorStatusIsLogged(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(503))
	defer server.Close()
	diagnostics := &framework.CapturingLogger{}

	r := NewWebhookReporter(server.URL, "run-3", nil, diagnostics)
	sampleRun(r)

	assert.Error(t, r.Err())
	require.Len(t, diagnostics.Messages(), 1)
	assert.Contains(t, diagnostics.Messages()[0], "unexpected response status 503")
}
