package framework

import (
	"context"
	"reflect"
)

type RunnerOptions struct {
	Scanner     *Scanner
	Executor    *Executor
	Reporter    Reporter
	Filter      Filter
	Diagnostics Logger
}

// Runner drives a run over a list of container names: it loads and scans each container,
// applies the filter, runs the once-per-container hooks around the container's tests and
// aggregates the results.
type Runner struct {
	loader      Loader
	scanner     *Scanner
	executor    *Executor
	reporter    Reporter
	filter      Filter
	diagnostics Logger
}

func NewRunner(loader Loader, opts RunnerOptions) *Runner {
	diagnostics := opts.Diagnostics
	if diagnostics == nil {
		diagnostics = StderrLogger()
	}
	if loader == nil {
		loader = DefaultRegistry()
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = NewScanner(diagnostics)
	}
	executor := opts.Executor
	if executor == nil {
		executor = NewExecutor(diagnostics)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NullReporter()
	}
	return &Runner{
		loader:      loader,
		scanner:     scanner,
		executor:    executor,
		reporter:    safeReporter{target: reporter, diagnostics: diagnostics},
		filter:      opts.Filter,
		diagnostics: diagnostics,
	}
}

// Run executes the named containers in order and returns the aggregated results. Names
// that cannot be loaded are logged and skipped. TestRunFinished is emitted exactly once,
// even if ctx is cancelled part way through; tests that have not started by then are not
// run.
func (r *Runner) Run(ctx context.Context, names ...string) RunSummary {
	var summary RunSummary
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		c, ok := r.load(name)
		if !ok {
			continue
		}
		r.runContainer(ctx, c, &summary)
	}
	r.reporter.TestRunFinished(summary.Totals)
	return summary
}

// Discover returns the descriptors of the named containers that pass the filter, without
// running anything.
func (r *Runner) Discover(names ...string) []TestCase {
	var ret []TestCase
	for _, name := range names {
		if c, ok := r.load(name); ok {
			ret = append(ret, r.selected(c)...)
		}
	}
	return ret
}

func (r *Runner) load(name string) (*Container, bool) {
	c, err := r.loader.Load(name)
	if err != nil || c == nil {
		r.diagnostics.Printf("Test container not found: %s (%v)", name, err)
		return nil, false
	}
	return c, true
}

func (r *Runner) selected(c *Container) []TestCase {
	all := r.scanner.Scan(c)
	if r.filter == nil {
		return all
	}
	ret := make([]TestCase, 0, len(all))
	for _, tc := range all {
		if r.filter(tc) {
			ret = append(ret, tc)
		}
	}
	return ret
}

func (r *Runner) runContainer(ctx context.Context, c *Container, summary *RunSummary) {
	testCases := r.selected(c)
	if len(testCases) == 0 {
		return
	}
	first := testCases[0]

	r.runOnceHooks(MarkerBeforeAll, first.beforeAll)
	for _, tc := range testCases {
		if ctx.Err() != nil {
			break
		}
		result := r.executor.Execute(ctx, tc, r.reporter)
		r.reporter.TestFinished(result)
		summary.add(result)
	}
	r.runOnceHooks(MarkerAfterAll, first.afterAll)
}

func (r *Runner) runOnceHooks(marker Marker, hooks []Hook) {
	for _, h := range hooks {
		if err := h.call(reflect.Value{}, nil); err != nil {
			r.diagnostics.Printf("Failed to run %s hook %s: %s", marker, h.Name(), newFailure(err).Message())
		}
	}
}
