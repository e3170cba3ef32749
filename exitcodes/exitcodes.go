// Package exitcodes defines the exit codes of the unit-harness command.
package exitcodes

// * Success (0): every test that ran passed, or nothing was asked for
// * TestFailure (1): one or more tests failed
// * RuntimeErr (2): invalid parameters, an unreadable config file, or a report that could
// not be written
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
