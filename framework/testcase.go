package framework

import (
	"errors"
	"time"
)

// TestCase describes one test body together with everything needed to execute it on its
// own: its container, its per-test and once-per-container hooks, its expected failure,
// its timeout and whether it is disabled. It is immutable once built.
type TestCase struct {
	container      *Container
	body           Hook
	beforeEach     []Hook
	afterEach      []Hook
	beforeAll      []Hook
	afterAll       []Hook
	expected       FailureKind
	timeout        time.Duration
	disabled       bool
	disabledReason string
}

func (tc TestCase) Container() *Container { return tc.container }

func (tc TestCase) Body() Hook { return tc.body }

func (tc TestCase) BodyName() string { return tc.body.name }

// DisplayName is "<container short name>.<body name>".
func (tc TestCase) DisplayName() string {
	return tc.container.ShortName() + "." + tc.body.name
}

func (tc TestCase) BeforeEach() []Hook { return copyHooks(tc.beforeEach) }

func (tc TestCase) AfterEach() []Hook { return copyHooks(tc.afterEach) }

func (tc TestCase) BeforeAll() []Hook { return copyHooks(tc.beforeAll) }

func (tc TestCase) AfterAll() []Hook { return copyHooks(tc.afterAll) }

// Expected returns the kind of failure the body must produce, or nil.
func (tc TestCase) Expected() FailureKind { return tc.expected }

// Timeout returns the bound on one execution; zero means none.
func (tc TestCase) Timeout() time.Duration { return tc.timeout }

func (tc TestCase) Disabled() (bool, string) { return tc.disabled, tc.disabledReason }

func copyHooks(hooks []Hook) []Hook {
	return append([]Hook{}, hooks...)
}

// TestCaseBuilder assembles a TestCase. The Scanner uses it; it can also be used to
// construct descriptors by hand.
type TestCaseBuilder struct {
	tc TestCase
}

func NewTestCaseBuilder() *TestCaseBuilder {
	return &TestCaseBuilder{}
}

func (b *TestCaseBuilder) Container(c *Container) *TestCaseBuilder {
	b.tc.container = c
	return b
}

func (b *TestCaseBuilder) Body(h Hook) *TestCaseBuilder {
	b.tc.body = h
	return b
}

func (b *TestCaseBuilder) BeforeEach(hooks ...Hook) *TestCaseBuilder {
	b.tc.beforeEach = append(b.tc.beforeEach, hooks...)
	return b
}

func (b *TestCaseBuilder) AfterEach(hooks ...Hook) *TestCaseBuilder {
	b.tc.afterEach = append(b.tc.afterEach, hooks...)
	return b
}

func (b *TestCaseBuilder) BeforeAll(hooks ...Hook) *TestCaseBuilder {
	b.tc.beforeAll = append(b.tc.beforeAll, hooks...)
	return b
}

func (b *TestCaseBuilder) AfterAll(hooks ...Hook) *TestCaseBuilder {
	b.tc.afterAll = append(b.tc.afterAll, hooks...)
	return b
}

func (b *TestCaseBuilder) Expected(kind FailureKind) *TestCaseBuilder {
	b.tc.expected = kind
	return b
}

// Timeout sets the bound on one execution. Negative values are treated as zero.
func (b *TestCaseBuilder) Timeout(d time.Duration) *TestCaseBuilder {
	if d < 0 {
		d = 0
	}
	b.tc.timeout = d
	return b
}

func (b *TestCaseBuilder) Disabled(reason string) *TestCaseBuilder {
	b.tc.disabled = true
	b.tc.disabledReason = reason
	return b
}

// Build returns the descriptor. The builder's slices are copied, so it can be reused.
func (b *TestCaseBuilder) Build() (TestCase, error) {
	if b.tc.container == nil {
		return TestCase{}, errors.New("test case has no container")
	}
	if !b.tc.body.fn.IsValid() {
		return TestCase{}, errors.New("test case has no body")
	}
	if !b.tc.body.shape.withInstance {
		return TestCase{}, errors.New("test case body must take a container instance")
	}
	tc := b.tc
	tc.beforeEach = copyHooks(b.tc.beforeEach)
	tc.afterEach = copyHooks(b.tc.afterEach)
	tc.beforeAll = copyHooks(b.tc.beforeAll)
	tc.afterAll = copyHooks(b.tc.afterAll)
	return tc, nil
}
