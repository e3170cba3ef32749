package framework

import (
	"context"
	"reflect"
	"time"
)

// Executor runs one TestCase through its lifecycle and reports the outcome. It never
// panics: every failure of user code ends up in the returned TestResult.
type Executor struct {
	diagnostics Logger
}

func NewExecutor(diagnostics Logger) *Executor {
	if diagnostics == nil {
		diagnostics = NullLogger()
	}
	return &Executor{diagnostics: diagnostics}
}

// Execute emits TestStarted and runs tc. Disabled tests are skipped without creating an
// instance. Tests with a timeout run on a worker goroutine that is abandoned, with its
// context cancelled, if it does not finish in time or if ctx is cancelled first.
func (e *Executor) Execute(ctx context.Context, tc TestCase, reporter Reporter) TestResult {
	if reporter == nil {
		reporter = NullReporter()
	}
	if _, ok := reporter.(safeReporter); !ok {
		reporter = safeReporter{target: reporter, diagnostics: e.diagnostics}
	}
	name := tc.DisplayName()
	reporter.TestStarted(name)

	if disabled, reason := tc.Disabled(); disabled {
		if reason == "" {
			reason = defaultSkipReason
		}
		return Skipped(name, reason)
	}
	if tc.Timeout() > 0 {
		return e.executeSupervised(ctx, tc, name)
	}
	return e.executeDirect(ctx, tc, name)
}

func (e *Executor) executeDirect(ctx context.Context, tc TestCase, name string) TestResult {
	start := time.Now()
	t := newT(ctx, name)
	failure := resolveOutcome(tc.Expected(), e.runLifecycle(tc, t))
	elapsed := time.Since(start)

	var result TestResult
	if failure == nil {
		result = Passed(name, elapsed)
	} else {
		result = Failed(name, failure, elapsed)
	}
	return result.withOutput(t.debugLogger.Output())
}

// runLifecycle instantiates the container and runs the per-test hooks and the body. The
// first failure is returned; AfterEach hooks run regardless once an instance exists.
func (e *Executor) runLifecycle(tc TestCase, t *T) error {
	instance, err := tc.container.newInstance()
	if err != nil {
		return err
	}

	var cause error
	for _, h := range tc.beforeEach {
		if cause = invokeWithT(h, instance, t); cause != nil {
			break
		}
	}
	if cause == nil {
		cause = invokeWithT(tc.body, instance, t)
	}

	for _, h := range tc.afterEach {
		err := h.call(instance, t)
		if err == nil && cause == nil {
			err = t.failure()
		}
		if err == nil {
			continue
		}
		if cause == nil {
			cause = err
		} else {
			e.diagnostics.Printf("AfterEach hook %s failed for %s, which had already failed: %s",
				h.Name(), t.Name(), newFailure(err))
		}
	}
	return cause
}

func invokeWithT(h Hook, instance reflect.Value, t *T) error {
	if err := h.call(instance, t); err != nil {
		return err
	}
	return t.failure()
}

func resolveOutcome(expected FailureKind, cause error) *Failure {
	if expected == nil {
		if cause == nil {
			return nil
		}
		return newFailure(cause)
	}
	if cause == nil {
		return &Failure{Err: expectedButNothing(expected)}
	}
	actual := newFailure(cause)
	if expected.Matches(actual.Err) {
		return nil
	}
	return &Failure{Err: expectedButGot(expected, actual.Err), Stack: actual.Stack}
}

func (e *Executor) executeSupervised(ctx context.Context, tc TestCase, name string) TestResult {
	if ctx.Err() != nil {
		return Failed(name, &Failure{Err: interrupted()}, 0)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan TestResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Failed(name, newFailure(recoveredError(r)), 0)
			}
		}()
		done <- e.executeDirect(workerCtx, tc, name)
	}()

	timer := time.NewTimer(tc.Timeout())
	defer timer.Stop()

	select {
	case result := <-done:
		return result
	case <-timer.C:
		return Failed(name, &Failure{Err: timedOut(tc.Timeout().Milliseconds())}, tc.Timeout())
	case <-ctx.Done():
		return Failed(name, &Failure{Err: interrupted()}, 0)
	}
}
