package framework

import (
	"context"
	"fmt"
	"sync"
)

// T is passed to test bodies and per-test hooks that ask for it. It implements the
// TestingT interfaces of testify's assert and require packages, so those can be used
// directly inside a test body.
//
// Errorf records a failure and lets the body continue; FailNow stops the body. A body that
// recorded failures fails even if it returns normally.
type T struct {
	name        string
	ctx         context.Context
	debugLogger CapturingLogger
	errors      []error
	failed      bool
	lock        sync.Mutex
}

func newT(ctx context.Context, name string) *T {
	return &T{name: name, ctx: ctx}
}

// Name is the display name of the running test, "Container.body".
func (t *T) Name() string {
	return t.name
}

// Context is cancelled when a test with a timeout runs out of time, or when the run is
// interrupted. Long-running bodies should watch it.
func (t *T) Context() context.Context {
	return t.ctx
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.failed = true
	t.errors = append(t.errors, &AssertionError{Message: fmt.Sprintf(format, args...)})
}

// Error records a failure built from the given error.
func (t *T) Error(err error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.failed = true
	t.errors = append(t.errors, err)
}

func (t *T) Fail() {
	t.lock.Lock()
	t.failed = true
	t.lock.Unlock()
}

// FailNow marks the test failed and stops it. It must be called from the goroutine
// running the body.
func (t *T) FailNow() {
	t.Fail()
	panic(t)
}

func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

func (t *T) Failed() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.failed
}

// Helper exists for testify, which calls it when available.
func (t *T) Helper() {}

// Debug records a message in the test's output. Reporters show it for failed tests, or for
// all tests when asked to.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

func (t *T) DebugLogger() Logger {
	return &t.debugLogger
}

// failure returns nil if nothing failed, otherwise the recorded failures as one error.
func (t *T) failure() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if !t.failed {
		return nil
	}
	return joinAssertionErrors(t.errors)
}
