// Package framework is the test execution engine of unit-harness.
//
// The general model is:
//
// 1. A container is a Go type whose methods (or any functions taking a pointer to it) are
// declared as test bodies and lifecycle hooks with Define. Containers are registered by
// name in a Registry, usually from an init function.
//
// 2. The Scanner turns a container into one self-contained TestCase per test body.
//
// 3. The Executor runs a single TestCase: a fresh instance, the BeforeEach hooks, the body
// and the AfterEach hooks, then decides PASSED or FAILED taking any expected failure into
// account. Bodies with a timeout are supervised on a separate goroutine.
//
// 4. The Runner loads the requested containers, filters their tests, runs the BeforeAll
// and AfterAll hooks once around each container, and feeds every result to a Reporter.
//
// A test body can ask for a *T, which works with testify's assert and require packages
// and captures debug output for the reports.
package framework
