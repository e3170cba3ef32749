package reporting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/unit-harness/framework"
)

func TestNewConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	r := New(Config{Out: &buf, Console: ConsoleOptions{NoColor: true}})

	assert.Equal(t, 1, r.Len())
	assert.NotEmpty(t, r.RunID())
	sampleRun(r)
	assert.Contains(t, buf.String(), "Running: CalculatorTest.testAdd")
	assert.Empty(t, r.Errors())
}

func TestNewAllFileReports(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		HTMLPath:    filepath.Join(dir, "r.html"),
		XMLPath:     filepath.Join(dir, "r.xml"),
		JSONPath:    filepath.Join(dir, "r.jsonl"),
		MetricsPath: filepath.Join(dir, "r.prom"),
		RunID:       "fixed",
		Out:         &bytes.Buffer{},
		Console:     ConsoleOptions{NoColor: true},
	}
	r := New(cfg)
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, "fixed", r.RunID())

	sampleRun(r)
	require.Empty(t, r.Errors())
	for _, p := range []string{cfg.HTMLPath, cfg.XMLPath, cfg.JSONPath, cfg.MetricsPath} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestNewCollectsReportErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	r := New(Config{
		XMLPath:     filepath.Join(missing, "r.xml"),
		HTMLPath:    filepath.Join(missing, "r.html"),
		Diagnostics: framework.NullLogger(),
	})
	sampleRun(r)

	assert.Len(t, r.Errors(), 2)
}
