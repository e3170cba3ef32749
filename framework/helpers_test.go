package framework

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type eventLog struct {
	events []string
	lock   sync.Mutex
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.lock.Lock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
	l.lock.Unlock()
}

func (l *eventLog) list() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.events...)
}

type recordingReporter struct {
	events  eventLog
	results []TestResult
	totals  []Totals
	lock    sync.Mutex
}

func (r *recordingReporter) TestStarted(name string) {
	r.events.add("started %s", name)
}

func (r *recordingReporter) TestFinished(result TestResult) {
	r.events.add("finished %s %s", result.Name, result.Status)
	r.lock.Lock()
	r.results = append(r.results, result)
	r.lock.Unlock()
}

func (r *recordingReporter) TestRunFinished(totals Totals) {
	r.events.add("run finished")
	r.lock.Lock()
	r.totals = append(r.totals, totals)
	r.lock.Unlock()
}

type panickingReporter struct{}

func (panickingReporter) TestStarted(string)      { panic("started") }
func (panickingReporter) TestFinished(TestResult) { panic("finished") }
func (panickingReporter) TestRunFinished(Totals)  { panic("run finished") }

type argumentError struct {
	message string
}

func (e *argumentError) Error() string { return e.message }

var errSentinel = errors.New("sentinel")

// lifecycleFixture records every hook and body call in a shared log.
type lifecycleFixture struct {
	log  *eventLog
	seen []string
}

func (f *lifecycleFixture) setUp()    { f.log.add("setUp"); f.seen = append(f.seen, "setUp") }
func (f *lifecycleFixture) prepare()  { f.log.add("prepare") }
func (f *lifecycleFixture) tearDown() { f.log.add("tearDown") }
func (f *lifecycleFixture) cleanUp()  { f.log.add("cleanUp") }

func (f *lifecycleFixture) testAdd() {
	f.log.add("testAdd")
}

func (f *lifecycleFixture) testSub(t *T) error {
	f.log.add("testSub")
	return nil
}

func (f *lifecycleFixture) failingExample() error {
	f.log.add("failingExample")
	return &AssertionError{Message: "Expected <3> but was <2>"}
}

func defineLifecycle(log *eventLog) *ContainerBuilder[lifecycleFixture] {
	return Define[lifecycleFixture]().
		WithConstructor(func() (*lifecycleFixture, error) {
			log.add("new")
			return &lifecycleFixture{log: log}, nil
		}).
		BeforeEach((*lifecycleFixture).setUp).
		BeforeEach((*lifecycleFixture).prepare).
		AfterEach((*lifecycleFixture).tearDown).
		AfterEach((*lifecycleFixture).cleanUp).
		BeforeAll(func() { log.add("beforeAll") }, Named("initAll")).
		AfterAll(func() { log.add("afterAll") }, Named("finishAll")).
		Test((*lifecycleFixture).testAdd).
		Test((*lifecycleFixture).testSub).
		Test((*lifecycleFixture).failingExample)
}

type behaviorFixture struct{}

// behaviorCase builds a single-body descriptor for executor tests.
func behaviorCase(t *testing.T, body interface{}, opts ...TestOption) TestCase {
	c := Define[behaviorFixture]().Test(body, opts...).Build()
	cases := NewScanner(NullLogger()).Scan(c)
	require.Len(t, cases, 1)
	return cases[0]
}

func messages(l *CapturingLogger) string {
	return fmt.Sprint(l.Messages())
}
