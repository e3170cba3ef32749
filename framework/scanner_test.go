package framework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyNames(cases []TestCase) []string {
	var ret []string
	for _, tc := range cases {
		ret = append(ret, tc.BodyName())
	}
	return ret
}

func hookNames(hooks []Hook) []string {
	var ret []string
	for _, h := range hooks {
		ret = append(ret, h.Name())
	}
	return ret
}

func TestScanProducesOneDescriptorPerBody(t *testing.T) {
	cases := NewScanner(NullLogger()).Scan(defineLifecycle(&eventLog{}).Build())

	require.Equal(t, []string{"testAdd", "testSub", "failingExample"}, bodyNames(cases))
	for _, tc := range cases {
		assert.Equal(t, []string{"setUp", "prepare"}, hookNames(tc.BeforeEach()))
		assert.Equal(t, []string{"tearDown", "cleanUp"}, hookNames(tc.AfterEach()))
		assert.Equal(t, []string{"initAll"}, hookNames(tc.BeforeAll()))
		assert.Equal(t, []string{"finishAll"}, hookNames(tc.AfterAll()))
		assert.Nil(t, tc.Expected())
		assert.Equal(t, time.Duration(0), tc.Timeout())
		disabled, _ := tc.Disabled()
		assert.False(t, disabled)
	}
	assert.Equal(t, "lifecycleFixture.testSub", cases[1].DisplayName())
}

func TestScanEmptyContainer(t *testing.T) {
	cases := NewScanner(NullLogger()).Scan(Define[behaviorFixture]().Build())
	assert.NotNil(t, cases)
	assert.Len(t, cases, 0)
}

func TestScanReadsBodyOptions(t *testing.T) {
	kind := ErrorKind[*argumentError]()
	c := Define[behaviorFixture]().
		Test(func(*behaviorFixture) {}, Named("expects"), Expected(kind)).
		Test(func(*behaviorFixture) {}, Named("timed"), Timeout(250*time.Millisecond)).
		Test(func(*behaviorFixture) {}, Named("negative"), Timeout(-time.Second)).
		Build()
	cases := NewScanner(NullLogger()).Scan(c)
	require.Len(t, cases, 3)

	assert.Equal(t, kind, cases[0].Expected())
	assert.Equal(t, 250*time.Millisecond, cases[1].Timeout())
	assert.Equal(t, time.Duration(0), cases[2].Timeout())
}

func TestScanDropsInstanceBoundOnceHooks(t *testing.T) {
	diagnostics := &CapturingLogger{}
	c := Define[behaviorFixture]().
		BeforeAll(func(*behaviorFixture) {}, Named("needsInstance")).
		BeforeAll(func() {}, Named("static")).
		AfterAll(func(behaviorFixture) error { return nil }, Named("byValue")).
		Test(func(*behaviorFixture) {}, Named("body")).
		Build()
	cases := NewScanner(diagnostics).Scan(c)
	require.Len(t, cases, 1)

	assert.Equal(t, []string{"static"}, hookNames(cases[0].BeforeAll()))
	assert.Empty(t, cases[0].AfterAll())
	msgs := diagnostics.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "Warning:")
	assert.Contains(t, msgs[0], "BeforeAll hook needsInstance must not take a *framework.behaviorFixture receiver. Ignoring.")
	assert.Contains(t, msgs[1], "AfterAll hook byValue must not take a *framework.behaviorFixture receiver. Ignoring.")
}

func TestScanDropsUnsupportedSignatures(t *testing.T) {
	diagnostics := &CapturingLogger{}
	c := Define[behaviorFixture]().
		Test(func(*behaviorFixture, int) {}, Named("extraParam")).
		Test(func(*behaviorFixture) int { return 0 }, Named("wrongResult")).
		Test(func(*lifecycleFixture) {}, Named("otherContainer")).
		Test("not a function", Named("notAFunction")).
		BeforeEach(func() {}, Named("noInstance")).
		AfterAll(func(string) {}, Named("withParam")).
		Test(func(*behaviorFixture) error { return nil }, Named("good")).
		Build()
	cases := NewScanner(diagnostics).Scan(c)

	assert.Equal(t, []string{"good"}, bodyNames(cases))
	assert.Empty(t, cases[0].BeforeEach())
	msgs := messages(diagnostics)
	assert.Contains(t, msgs, "Test entry extraParam has unsupported signature func(*framework.behaviorFixture, int). Ignoring.")
	assert.Contains(t, msgs, "Test entry wrongResult has unsupported signature")
	assert.Contains(t, msgs, "Test entry otherContainer has unsupported signature")
	assert.Contains(t, msgs, "Test entry notAFunction has unsupported signature string")
	assert.Contains(t, msgs, "BeforeEach entry noInstance has unsupported signature func()")
	assert.Contains(t, msgs, "AfterAll entry withParam has unsupported signature func(string)")
}

func TestScanWarnsAboutUnnamedFunctionLiterals(t *testing.T) {
	diagnostics := &CapturingLogger{}
	c := Define[behaviorFixture]().
		Test(func(*behaviorFixture) {}).
		Test(func(*behaviorFixture) {}, Named("named")).
		Build()
	cases := NewScanner(diagnostics).Scan(c)

	require.Len(t, cases, 2)
	assert.Regexp(t, `^func\d+$`, cases[0].BodyName())
	msgs := diagnostics.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Test "+cases[0].BodyName()+" of behaviorFixture is a function literal without a name; use Named to give it one.")
}

func TestGeneratedNames(t *testing.T) {
	for name, expected := range map[string]bool{
		"func1":   true,
		"func12":  true,
		"2":       true,
		"func":    false,
		"testAdd": false,
		"funcA":   false,
		"":        false,
	} {
		assert.Equal(t, expected, isGeneratedName(name), name)
	}
}

func TestScanDisabledContainer(t *testing.T) {
	c := Define[behaviorFixture]().
		Disabled("container off").
		Test(func(*behaviorFixture) {}, Named("plain")).
		Test(func(*behaviorFixture) {}, Named("own"), Disabled("own reason")).
		Build()
	cases := NewScanner(NullLogger()).Scan(c)
	require.Len(t, cases, 2)

	disabled, reason := cases[0].Disabled()
	assert.True(t, disabled)
	assert.Equal(t, "container off", reason)
	disabled, reason = cases[1].Disabled()
	assert.True(t, disabled)
	assert.Equal(t, "own reason", reason)

	for _, tc := range cases {
		result := execute(tc)
		assert.Equal(t, StatusSkipped, result.Status)
	}
}

func TestScanDescriptorsDoNotShareHookSlices(t *testing.T) {
	cases := NewScanner(NullLogger()).Scan(defineLifecycle(&eventLog{}).Build())
	hooks := cases[0].BeforeEach()
	hooks[0] = Hook{name: "replaced"}

	assert.Equal(t, "setUp", cases[0].BeforeEach()[0].Name())
}

type discoveredFixture struct {
	calls []string
}

func (f *discoveredFixture) BeforeEach()         { f.calls = append(f.calls, "BeforeEach") }
func (f *discoveredFixture) BeforeAll()          {}
func (f *discoveredFixture) TestFirst(t *T)      { t.Debug("first") }
func (f *discoveredFixture) TestSecond() error   { return nil }
func (f *discoveredFixture) TestWithArgs(n int)  {}
func (f *discoveredFixture) Helper() string      { return "" }
func (f *discoveredFixture) TestExplicit() error { return nil }

func TestDiscoverAddsConventionalMethods(t *testing.T) {
	diagnostics := &CapturingLogger{}
	c := Define[discoveredFixture]().
		Test((*discoveredFixture).TestExplicit, Timeout(time.Second)).
		Discover().
		Build()
	cases := NewScanner(diagnostics).Scan(c)

	assert.Equal(t, []string{"TestExplicit", "TestFirst", "TestSecond"}, bodyNames(cases))
	assert.Equal(t, time.Second, cases[0].Timeout())
	assert.Equal(t, []string{"BeforeEach"}, hookNames(cases[1].BeforeEach()))
	assert.Empty(t, cases[1].BeforeAll())
	assert.Contains(t, messages(diagnostics), "BeforeAll hook BeforeAll must not take a *framework.discoveredFixture receiver")
}

func TestBuilderRequiresContainerAndBody(t *testing.T) {
	_, err := NewTestCaseBuilder().Build()
	assert.Error(t, err)

	c := Define[behaviorFixture]().Build()
	_, err = NewTestCaseBuilder().Container(c).Build()
	assert.Error(t, err)

	static, err := StaticHook("static", func() {})
	require.NoError(t, err)
	_, err = NewTestCaseBuilder().Container(c).Body(static).Build()
	assert.Error(t, err)

	body, err := PerTestHook(c, "body", func(*behaviorFixture) {})
	require.NoError(t, err)
	tc, err := NewTestCaseBuilder().Container(c).Body(body).Timeout(-1).Disabled("").Build()
	require.NoError(t, err)
	assert.Equal(t, "behaviorFixture.body", tc.DisplayName())
	assert.Equal(t, time.Duration(0), tc.Timeout())
	assert.Equal(t, Skipped("behaviorFixture.body", "Disabled"), execute(tc))
}
