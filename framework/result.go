package framework

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the outcome of a single test.
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

const defaultSkipReason = "Disabled"

// TestResult is the immutable outcome of executing one TestCase. Use Passed, Failed or
// Skipped to build one.
type TestResult struct {
	Name       string
	Status     Status
	Failure    *Failure
	Elapsed    time.Duration
	SkipReason string
	Output     CapturedOutput
}

func Passed(name string, elapsed time.Duration) TestResult {
	return TestResult{Name: name, Status: StatusPassed, Elapsed: elapsed}
}

// Failed builds a FAILED result. A nil failure is replaced with a generic assertion error
// so that a failed result always has a cause.
func Failed(name string, failure *Failure, elapsed time.Duration) TestResult {
	if failure == nil {
		failure = &Failure{Err: &AssertionError{Message: "test failed with no failure message"}}
	}
	return TestResult{Name: name, Status: StatusFailed, Failure: failure, Elapsed: elapsed}
}

// Skipped builds a SKIPPED result. Elapsed is always zero.
func Skipped(name, reason string) TestResult {
	return TestResult{Name: name, Status: StatusSkipped, SkipReason: reason}
}

func (r TestResult) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// ContainerName returns the portion of the display name before the first '.'.
func (r TestResult) ContainerName() string {
	if i := strings.Index(r.Name, "."); i >= 0 {
		return r.Name[:i]
	}
	return r.Name
}

// BodyName returns the portion of the display name after the first '.'.
func (r TestResult) BodyName() string {
	if i := strings.Index(r.Name, "."); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}

func (r TestResult) withOutput(output CapturedOutput) TestResult {
	r.Output = output
	return r
}

// Failure is the captured cause of a FAILED result.
type Failure struct {
	Err error
	// Stack is the goroutine stack at the point a panic was recovered. It is empty when
	// the failure was a returned error.
	Stack string
}

func newFailure(err error) *Failure {
	var pe *PanicError
	if errors.As(err, &pe) {
		return &Failure{Err: pe.Cause(), Stack: pe.Stack}
	}
	return &Failure{Err: err}
}

func (f *Failure) Message() string {
	if f == nil || f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Kind returns the Go type name of the failure's error, such as "*framework.AssertionError".
func (f *Failure) Kind() string {
	if f == nil {
		return ""
	}
	return kindName(f.Err)
}

func (f *Failure) String() string {
	return f.Kind() + ": " + f.Message()
}

// Trace renders the failure in the form used by report bodies: the kind and message,
// the captured stack if any, and one "Caused by:" line per wrapped error.
func (f *Failure) Trace() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(f.String())
	b.WriteString("\n")
	if f.Stack != "" {
		b.WriteString(f.Stack)
		if !strings.HasSuffix(f.Stack, "\n") {
			b.WriteString("\n")
		}
	}
	for cause := errors.Unwrap(f.Err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "Caused by: %s: %s\n", kindName(cause), cause.Error())
	}
	return b.String()
}

// Totals are the run-level counters. Total is always Passed + Failed + Skipped.
type Totals struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

func (t *Totals) Add(status Status) {
	switch status {
	case StatusPassed:
		t.Passed++
	case StatusFailed:
		t.Failed++
	case StatusSkipped:
		t.Skipped++
	default:
		return
	}
	t.Total++
}

func (t Totals) String() string {
	return fmt.Sprintf("total=%d passed=%d failed=%d skipped=%d", t.Total, t.Passed, t.Failed, t.Skipped)
}

// RunSummary is what Runner.Run returns.
type RunSummary struct {
	Totals   Totals
	Tests    []TestResult
	Failures []TestResult
}

func (r RunSummary) OK() bool {
	return r.Totals.Failed == 0
}

func (r *RunSummary) add(result TestResult) {
	r.Totals.Add(result.Status)
	r.Tests = append(r.Tests, result)
	if result.Status == StatusFailed {
		r.Failures = append(r.Failures, result)
	}
}
