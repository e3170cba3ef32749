package framework

import "runtime/debug"

// Reporter receives engine events on the calling goroutine. TestStarted is emitted by the
// Executor just before work begins, including before a skip decision; TestFinished is
// emitted by the Runner once the Executor has returned; TestRunFinished is emitted exactly
// once at the end of a run. Reporters own their output sinks and flush them in
// TestRunFinished.
type Reporter interface {
	TestStarted(name string)
	TestFinished(result TestResult)
	TestRunFinished(totals Totals)
}

type nullReporter struct{}

func (n nullReporter) TestStarted(string)      {}
func (n nullReporter) TestFinished(TestResult) {}
func (n nullReporter) TestRunFinished(Totals)  {}

func NullReporter() Reporter { return nullReporter{} }

// CompositeReporter fans every event out to its reporters in registration order. A
// reporter that panics is logged and skipped; the others still receive the event.
type CompositeReporter struct {
	reporters   []Reporter
	diagnostics Logger
}

func NewCompositeReporter(diagnostics Logger, reporters ...Reporter) *CompositeReporter {
	if diagnostics == nil {
		diagnostics = NullLogger()
	}
	return &CompositeReporter{
		reporters:   append([]Reporter(nil), reporters...),
		diagnostics: diagnostics,
	}
}

// Add appends a reporter; it receives events after every reporter added before it.
func (c *CompositeReporter) Add(r Reporter) {
	c.reporters = append(c.reporters, r)
}

func (c *CompositeReporter) Len() int {
	return len(c.reporters)
}

func (c *CompositeReporter) TestStarted(name string) {
	for _, r := range c.reporters {
		guardReporter(c.diagnostics, "TestStarted", func() { r.TestStarted(name) })
	}
}

func (c *CompositeReporter) TestFinished(result TestResult) {
	for _, r := range c.reporters {
		guardReporter(c.diagnostics, "TestFinished", func() { r.TestFinished(result) })
	}
}

func (c *CompositeReporter) TestRunFinished(totals Totals) {
	for _, r := range c.reporters {
		guardReporter(c.diagnostics, "TestRunFinished", func() { r.TestRunFinished(totals) })
	}
}

// safeReporter is what the engine talks to, so that a single reporter that panics cannot
// take the run down either.
type safeReporter struct {
	target      Reporter
	diagnostics Logger
}

func (s safeReporter) TestStarted(name string) {
	guardReporter(s.diagnostics, "TestStarted", func() { s.target.TestStarted(name) })
}

func (s safeReporter) TestFinished(result TestResult) {
	guardReporter(s.diagnostics, "TestFinished", func() { s.target.TestFinished(result) })
}

func (s safeReporter) TestRunFinished(totals Totals) {
	guardReporter(s.diagnostics, "TestRunFinished", func() { s.target.TestRunFinished(totals) })
}

func guardReporter(diagnostics Logger, event string, action func()) {
	defer func() {
		if r := recover(); r != nil {
			diagnostics.Printf("Reporter failed in %s: %v\n%s", event, r, string(debug.Stack()))
		}
	}()
	action()
}
