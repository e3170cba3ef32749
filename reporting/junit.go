package reporting

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/launchdarkly/unit-harness/framework"
)

const (
	junitTimestampFormat = "2006-01-02T15:04:05"
	defaultSuiteName     = "TestClass"
)

type junitTestSuites struct {
	XMLName  xml.Name          `xml:"testsuites"`
	Name     string            `xml:"name,attr"`
	Tests    int               `xml:"tests,attr"`
	Failures int               `xml:"failures,attr"`
	Skipped  int               `xml:"skipped,attr"`
	Time     string            `xml:"time,attr"`
	Suites   []*junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string           `xml:"name,attr"`
	Tests     int              `xml:"tests,attr"`
	Failures  int              `xml:"failures,attr"`
	Skipped   int              `xml:"skipped,attr"`
	Time      string           `xml:"time,attr"`
	Timestamp string           `xml:"timestamp,attr"`
	TestCases []*junitTestCase `xml:"testcase"`

	elapsed time.Duration
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

type junitFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

// JUnitReporter writes a JUnit-style XML report, with one testsuite per container, when
// the run finishes.
type JUnitReporter struct {
	collector
	fileOutput
}

func NewJUnitReporter(path string, info io.Writer, diagnostics framework.Logger) *JUnitReporter {
	return &JUnitReporter{fileOutput: newFileOutput("XML", path, info, diagnostics)}
}

func (r *JUnitReporter) TestRunFinished(totals framework.Totals) {
	doc := buildJUnit(r.results, totals, r.runDuration(), time.Now())
	r.write(func(w io.Writer) error {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "    ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
}

// buildJUnit groups results by the container part of their name, keeping the order in
// which each container was first seen.
func buildJUnit(results []framework.TestResult, totals framework.Totals, runDuration time.Duration, now time.Time) *junitTestSuites {
	doc := &junitTestSuites{
		Name:     "Test Results",
		Tests:    totals.Total,
		Failures: totals.Failed,
		Skipped:  totals.Skipped,
		Time:     seconds(runDuration),
	}
	suites := make(map[string]*junitTestSuite)
	timestamp := now.Format(junitTimestampFormat)

	for _, result := range results {
		suiteName, caseName := defaultSuiteName, result.Name
		if strings.Contains(result.Name, ".") {
			suiteName, caseName = result.ContainerName(), result.BodyName()
		}
		suite, ok := suites[suiteName]
		if !ok {
			suite = &junitTestSuite{Name: suiteName, Timestamp: timestamp}
			suites[suiteName] = suite
			doc.Suites = append(doc.Suites, suite)
		}

		tc := &junitTestCase{
			Name:      caseName,
			Classname: suiteName,
			Time:      seconds(result.Elapsed),
		}
		switch result.Status {
		case framework.StatusSkipped:
			suite.Skipped++
			tc.Skipped = &junitSkipped{Message: result.SkipReason}
		case framework.StatusFailed:
			suite.Failures++
			tc.Failure = &junitFailure{
				Message:  plain(result.Failure.Message()),
				Type:     result.Failure.Kind(),
				Contents: failureTrace(result),
			}
		}
		if lines := outputLines(result.Output); len(lines) > 0 {
			tc.SystemOut = strings.Join(lines, "\n")
		}
		suite.Tests++
		suite.elapsed += result.Elapsed
		suite.TestCases = append(suite.TestCases, tc)
	}
	for _, suite := range doc.Suites {
		suite.Time = seconds(suite.elapsed)
	}
	return doc
}
