package framework

import "reflect"

// Scanner turns a container definition into descriptors, one per test body.
type Scanner struct {
	diagnostics Logger
}

func NewScanner(diagnostics Logger) *Scanner {
	if diagnostics == nil {
		diagnostics = NullLogger()
	}
	return &Scanner{diagnostics: diagnostics}
}

type scannedBody struct {
	entry Entry
	hook  Hook
}

// Scan validates every entry of c and returns a descriptor for each test body, in
// declaration order. Entries with an unsupported signature, and once-per-container hooks
// that need an instance, are dropped with a warning. The result is never nil.
func (s *Scanner) Scan(c *Container) []TestCase {
	var (
		bodies                                     []scannedBody
		beforeEach, afterEach, beforeAll, afterAll []Hook
	)
	for _, e := range c.Entries() {
		name := e.Name
		if name == "" {
			name = "<unnamed>"
		}
		ft := reflect.TypeOf(e.Func)
		switch e.Marker {
		case MarkerTest, MarkerBeforeEach, MarkerAfterEach:
			h, err := PerTestHook(c, name, e.Func)
			if err != nil {
				s.unsupported(e.Marker, name, ft)
				continue
			}
			switch e.Marker {
			case MarkerTest:
				if isGeneratedName(name) {
					warnf(s.diagnostics, "Test %s of %s is a function literal without a name; use Named to give it one.", name, c.ShortName())
				}
				bodies = append(bodies, scannedBody{entry: e, hook: h})
			case MarkerBeforeEach:
				beforeEach = append(beforeEach, h)
			default:
				afterEach = append(afterEach, h)
			}
		case MarkerBeforeAll, MarkerAfterAll:
			if isInstanceBound(ft, c.Type()) {
				warnf(s.diagnostics, "%s hook %s must not take a %s receiver. Ignoring.", e.Marker, name, c.Type())
				continue
			}
			h, err := StaticHook(name, e.Func)
			if err != nil {
				s.unsupported(e.Marker, name, ft)
				continue
			}
			if e.Marker == MarkerBeforeAll {
				beforeAll = append(beforeAll, h)
			} else {
				afterAll = append(afterAll, h)
			}
		default:
			warnf(s.diagnostics, "entry %s has unknown marker %s. Ignoring.", name, e.Marker)
		}
	}

	containerDisabled, containerReason := c.Disabled()
	testCases := make([]TestCase, 0, len(bodies))
	for _, b := range bodies {
		builder := NewTestCaseBuilder().
			Container(c).
			Body(b.hook).
			BeforeEach(beforeEach...).
			AfterEach(afterEach...).
			BeforeAll(beforeAll...).
			AfterAll(afterAll...).
			Expected(b.entry.Expected).
			Timeout(b.entry.Timeout)
		switch {
		case b.entry.Disabled != nil:
			builder.Disabled(b.entry.Disabled.Reason)
		case containerDisabled:
			builder.Disabled(containerReason)
		}
		tc, err := builder.Build()
		if err != nil {
			warnf(s.diagnostics, "Test %s could not be prepared: %s. Ignoring.", b.hook.Name(), err)
			continue
		}
		testCases = append(testCases, tc)
	}
	return testCases
}

func (s *Scanner) unsupported(marker Marker, name string, ft reflect.Type) {
	warnf(s.diagnostics, "%s entry %s has unsupported signature %s. Ignoring.", marker, name, describeType(ft))
}
