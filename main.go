package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	_ "github.com/launchdarkly/unit-harness/examples"
	"github.com/launchdarkly/unit-harness/exitcodes"
	"github.com/launchdarkly/unit-harness/framework"
	"github.com/launchdarkly/unit-harness/reporting"
)

const appName = "unit-harness"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	err := app.RunContext(ctx, normalizeArgs(args, framework.DefaultRegistry().Has))
	if err == nil {
		return exitcodes.Success
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}
	fmt.Fprintf(stderr, "Invalid parameters: %s\n", err)
	return exitcodes.RuntimeErr
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "run registered test containers"
	app.ArgsUsage = "<container> [<container>...]"
	app.HideHelpCommand = true
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = flags
	// filter patterns may contain commas
	app.DisableSliceFlagSeparator = true
	app.Action = func(c *cli.Context) error {
		return runTests(c, stdout, stderr)
	}
	// exit codes are mapped by run
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func runTests(c *cli.Context, stdout, stderr io.Writer) error {
	s, err := readSettings(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Invalid parameters: %s", err), exitcodes.RuntimeErr)
	}
	if len(s.containers) == 0 {
		return cli.ShowAppHelp(c)
	}
	if s.noColor {
		color.NoColor = true
	}
	diagnostics := log.New(stderr, "", 0)
	if s.open && s.htmlPath == "" {
		diagnostics.Printf("Warning: --%s has no effect without --%s", openFlag.Name, htmlFlag.Name)
		s.open = false
	}

	if s.list {
		runner := framework.NewRunner(nil, framework.RunnerOptions{Filter: s.filters.AsFilter, Diagnostics: diagnostics})
		printTestList(stdout, runner.Discover(s.containers...))
		return nil
	}

	reporters := reporting.New(reporting.Config{
		HTMLPath:    s.htmlPath,
		XMLPath:     s.xmlPath,
		JSONPath:    s.jsonPath,
		MetricsPath: s.metricsPath,
		NotifyURL:   s.notifyURL,
		Console: reporting.ConsoleOptions{
			NoColor:              s.noColor,
			DebugOutputOnFailure: s.debug || s.debugAll,
			DebugOutputOnSuccess: s.debugAll,
			RerunCommand:         rerunCommand(appName, s),
		},
		Out:         stdout,
		Diagnostics: diagnostics,
	})
	runner := framework.NewRunner(nil, framework.RunnerOptions{
		Reporter:    reporters,
		Filter:      s.filters.AsFilter,
		Diagnostics: diagnostics,
	})

	framework.PrintFilterDescription(stdout, s.filters)
	summary := runner.Run(c.Context, s.containers...)

	if errs := reporters.Errors(); len(errs) > 0 {
		return cli.Exit(errors.Join(errs...).Error(), exitcodes.RuntimeErr)
	}
	if s.open {
		openReport(s.htmlPath, diagnostics)
	}
	if !summary.OK() {
		return cli.Exit("", exitcodes.TestFailure)
	}
	return nil
}

func printTestList(out io.Writer, tests []framework.TestCase) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Test", "Expected", "Timeout", "Disabled"})
	for _, tc := range tests {
		expected := ""
		if kind := tc.Expected(); kind != nil {
			expected = kind.Name()
		}
		timeout := ""
		if d := tc.Timeout(); d > 0 {
			timeout = d.String()
		}
		disabled := ""
		if off, reason := tc.Disabled(); off {
			disabled = reason
			if disabled == "" {
				disabled = "yes"
			}
		}
		t.AppendRow(table.Row{tc.DisplayName(), expected, timeout, disabled})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d tests", len(tests))})
	t.Render()
}
