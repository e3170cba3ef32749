package framework

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is the failure value raised by assertions and synthesized by the engine
// for expectation mismatches, timeouts and interruptions.
type AssertionError struct {
	Message string
	Cause   error
}

func (e *AssertionError) Error() string {
	return e.Message
}

func (e *AssertionError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panic in a hook, a body or a constructor.
type PanicError struct {
	Value interface{}
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Cause removes one level of wrapping: a panic whose value is an error is reported as that
// error.
func (e *PanicError) Cause() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return e
}

// FailureKind describes the class of error an expected-failure test must produce. A nil
// FailureKind means no failure is expected.
type FailureKind interface {
	Name() string
	Matches(err error) bool
}

type errorKind[E error] struct{}

// ErrorKind matches any failure for which errors.As finds a value of type E in the chain.
// If E is an interface type, every error implementing it matches.
func ErrorKind[E error]() FailureKind {
	return errorKind[E]{}
}

func (errorKind[E]) Name() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

func (errorKind[E]) Matches(err error) bool {
	if err == nil {
		return false
	}
	var target E
	return errors.As(err, &target)
}

type sentinelKind struct {
	err error
}

// SentinelKind matches any failure for which errors.Is reports the given sentinel.
func SentinelKind(err error) FailureKind {
	return sentinelKind{err: err}
}

func (k sentinelKind) Name() string {
	return fmt.Sprintf("%s(%q)", kindName(k.err), k.err.Error())
}

func (k sentinelKind) Matches(err error) bool {
	return err != nil && errors.Is(err, k.err)
}

func kindName(err error) string {
	if err == nil {
		return ""
	}
	return reflect.TypeOf(err).String()
}

func expectedButNothing(kind FailureKind) *AssertionError {
	return &AssertionError{
		Message: fmt.Sprintf("Expected exception: %s but no exception was thrown", kind.Name()),
	}
}

func expectedButGot(kind FailureKind, actual error) *AssertionError {
	return &AssertionError{
		Message: fmt.Sprintf("Expected exception: %s but got: %s - %s", kind.Name(), kindName(actual), actual.Error()),
		Cause:   actual,
	}
}

func timedOut(millis int64) *AssertionError {
	return &AssertionError{Message: fmt.Sprintf("Test timed out after %d ms", millis)}
}

func interrupted() *AssertionError {
	return &AssertionError{Message: "Test was interrupted"}
}

func joinAssertionErrors(errs []error) *AssertionError {
	if len(errs) == 0 {
		return &AssertionError{Message: "test failed with no failure message"}
	}
	if len(errs) == 1 {
		var ae *AssertionError
		if errors.As(errs[0], &ae) {
			return ae
		}
		return &AssertionError{Message: errs[0].Error(), Cause: errs[0]}
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return &AssertionError{Message: strings.Join(lines, "\n")}
}
