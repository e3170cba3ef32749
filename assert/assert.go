// Package assert provides the assertions used inside test bodies. A failed assertion stops
// the body by panicking with a *framework.AssertionError, which the engine records as the
// test's failure.
//
// Bodies that take a *framework.T can use testify's assert and require packages instead.
package assert

import (
	"errors"
	"fmt"
	"reflect"

	testify "github.com/stretchr/testify/assert"

	"github.com/launchdarkly/unit-harness/framework"
)

// quiet is a testify TestingT that discards failure output; it lets this package reuse
// testify's comparisons while producing its own messages.
type quiet struct{}

func (quiet) Errorf(string, ...interface{}) {}

// Fail stops the test with the given message.
func Fail(format string, args ...interface{}) {
	panic(&framework.AssertionError{Message: fmt.Sprintf(format, args...)})
}

func failWithCause(cause error, format string, args ...interface{}) {
	panic(&framework.AssertionError{Message: fmt.Sprintf(format, args...), Cause: cause})
}

func True(condition bool) {
	if !condition {
		Fail("Expected true but was false")
	}
}

func False(condition bool) {
	if condition {
		Fail("Expected false but was true")
	}
}

// Equal fails unless expected and actual are equal in the sense of testify's
// ObjectsAreEqual: same type and deeply equal, or equal byte slices.
func Equal(expected, actual interface{}) {
	if !testify.ObjectsAreEqual(expected, actual) {
		Fail("Expected <%v> but was <%v>", expected, actual)
	}
}

func NotEqual(unexpected, actual interface{}) {
	if testify.Nil(quiet{}, unexpected) && testify.Nil(quiet{}, actual) {
		Fail("Expected not equal, but both were nil")
	}
	if testify.ObjectsAreEqual(unexpected, actual) {
		Fail("Expected not equal to <%v> but was equal", unexpected)
	}
}

// Nil fails unless object is nil, including a nil pointer, map, slice, channel or function
// stored in an interface.
func Nil(object interface{}) {
	if !testify.Nil(quiet{}, object) {
		Fail("Expected nil but was <%v>", object)
	}
}

func NotNil(object interface{}) {
	if testify.Nil(quiet{}, object) {
		Fail("Expected not nil but was nil")
	}
}

// NoError fails if err is not nil; err becomes the cause of the failure.
func NoError(err error) {
	if err != nil {
		failWithCause(err, "Expected no error but got: %s", err)
	}
}

// Throws calls fn and returns the error of type E that it returned or panicked with. It
// fails if fn completes without an error, or if the error found is not an E.
func Throws[E error](fn func() error) E {
	err := capture(fn)
	expectedName := reflect.TypeOf((*E)(nil)).Elem().String()
	if err == nil {
		Fail("Expected %s to be thrown, but nothing was thrown", expectedName)
	}
	var target E
	if errors.As(err, &target) {
		return target
	}
	failWithCause(err, "Expected exception: %s but was: %s", expectedName, reflect.TypeOf(err).String())
	return target
}

func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = &framework.PanicError{Value: r}
		}
	}()
	return fn()
}
