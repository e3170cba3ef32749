package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/launchdarkly/unit-harness/framework"
)

func TestConsoleReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true})
	sampleRun(r)
	out := buf.String()

	assert.Contains(t, out, "Running: CalculatorTest.testAdd\n")
	assert.Contains(t, out, "  [PASS] CalculatorTest.testAdd (3 ms)\n")
	assert.Contains(t, out, "  [FAIL] CalculatorTest.failingExample (12 ms)\n")
	assert.Contains(t, out, "        Reason: *framework.AssertionError: Expected <3> but was <")
	assert.Contains(t, out, "  [SKIP] AdvancedTest.testSkipped - <not yet> implemented\n")
	assert.Contains(t, out, separatorLine)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Failed tests:\n  CalculatorTest.failingExample\n")
	assert.NotContains(t, out, "DEBUG", "debug output is off by default")
	assert.NotContains(t, out, "To run only the failed tests")
}

func TestConsoleReporterSkipWithoutReason(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true})
	r.TestFinished(framework.Skipped("A.b", ""))
	assert.Equal(t, "  [SKIP] A.b\n", buf.String())
}

func TestConsoleReporterDebugOutput(t *testing.T) {
	output := framework.CapturedOutput{{Time: time.Now(), Message: "hello"}}
	passed := framework.Passed("A.pass", 0)
	passed.Output = output
	failed := framework.Failed("A.fail", nil, 0)
	failed.Output = output

	var onFailure bytes.Buffer
	r := NewConsoleReporter(&onFailure, ConsoleOptions{NoColor: true, DebugOutputOnFailure: true})
	r.TestFinished(passed)
	r.TestFinished(failed)
	assert.Equal(t, 1, bytes.Count(onFailure.Bytes(), []byte("    DEBUG [")))

	var all bytes.Buffer
	r = NewConsoleReporter(&all, ConsoleOptions{NoColor: true, DebugOutputOnSuccess: true})
	r.TestFinished(passed)
	r.TestFinished(failed)
	assert.Equal(t, 2, bytes.Count(all.Bytes(), []byte("] hello\n")))
}

func TestConsoleReporterRerunHint(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true, RerunCommand: []string{"unit-harness", "CalculatorTest"}})
	sampleRun(r)

	assert.Contains(t, buf.String(), "To run only the failed tests:\n  unit-harness CalculatorTest --filter '^CalculatorTest\\.failingExample$'\n")
}

func TestRerunCommandQuotesEachTest(t *testing.T) {
	cmd := rerunCommand([]string{"unit-harness", "My Test"}, []string{"A.b", "C.d"})
	assert.Equal(t, `unit-harness 'My Test' --filter '^A\.b$' --filter '^C\.d$'`, cmd)
}
