package reporting

import (
	"time"

	"github.com/launchdarkly/unit-harness/framework"
)

// sampleRun feeds a small run across two containers to a reporter and returns its totals.
func sampleRun(r framework.Reporter) framework.Totals {
	results := sampleResults()
	var totals framework.Totals
	for _, result := range results {
		r.TestStarted(result.Name)
		r.TestFinished(result)
		totals.Add(result.Status)
	}
	r.TestRunFinished(totals)
	return totals
}

func sampleResults() []framework.TestResult {
	failure := &framework.Failure{Err: &framework.AssertionError{Message: "Expected <3> but was <\x1b[31m2\x1b[0m>"}}
	failed := framework.Failed("CalculatorTest.failingExample", failure, 12*time.Millisecond)
	failed.Output = framework.CapturedOutput{{Time: time.Now(), Message: "setUp()"}}
	return []framework.TestResult{
		framework.Passed("CalculatorTest.testAdd", 3*time.Millisecond),
		failed,
		framework.Skipped("AdvancedTest.testSkipped", "<not yet> implemented"),
		framework.Passed("CalculatorTest.testSub", 2*time.Millisecond),
	}
}
