package reporting

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/launchdarkly/unit-harness/framework"
)

const separatorLine = "=================================="

type consoleColors struct {
	pass, fail, skip, faint *color.Color
}

func newConsoleColors(noColor bool) consoleColors {
	c := consoleColors{
		pass:  color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		skip:  color.New(color.FgYellow),
		faint: color.New(color.Faint),
	}
	if noColor {
		for _, cc := range []*color.Color{c.pass, c.fail, c.skip, c.faint} {
			cc.DisableColor()
		}
	}
	return c
}

// ConsoleReporter prints progress as tests run and a summary table at the end.
type ConsoleReporter struct {
	out                  io.Writer
	colors               consoleColors
	noColor              bool
	debugOutputOnFailure bool
	debugOutputOnSuccess bool
	rerunCommand         []string
	failed               []string
}

type ConsoleOptions struct {
	NoColor bool
	// DebugOutputOnFailure dumps T.Debug output of failed tests; DebugOutputOnSuccess
	// dumps it for all other tests too.
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	// RerunCommand is the command line, without filters, that re-runs this run. If set,
	// the summary suggests a command that re-runs only the failed tests.
	RerunCommand []string
}

func NewConsoleReporter(out io.Writer, opts ConsoleOptions) *ConsoleReporter {
	return &ConsoleReporter{
		out:                  out,
		colors:               newConsoleColors(opts.NoColor),
		noColor:              opts.NoColor,
		debugOutputOnFailure: opts.DebugOutputOnFailure || opts.DebugOutputOnSuccess,
		debugOutputOnSuccess: opts.DebugOutputOnSuccess,
		rerunCommand:         opts.RerunCommand,
	}
}

func (c *ConsoleReporter) TestStarted(name string) {
	fmt.Fprintf(c.out, "Running: %s\n", name)
}

func (c *ConsoleReporter) TestFinished(result framework.TestResult) {
	switch result.Status {
	case framework.StatusSkipped:
		if result.SkipReason == "" {
			fmt.Fprintf(c.out, "  %s %s\n", c.colors.skip.Sprint("[SKIP]"), result.Name)
		} else {
			fmt.Fprintf(c.out, "  %s %s - %s\n", c.colors.skip.Sprint("[SKIP]"), result.Name, result.SkipReason)
		}
	case framework.StatusPassed:
		fmt.Fprintf(c.out, "  %s %s (%d ms)\n", c.colors.pass.Sprint("[PASS]"), result.Name, result.ElapsedMillis())
	default:
		fmt.Fprintf(c.out, "  %s %s (%d ms)\n", c.colors.fail.Sprint("[FAIL]"), result.Name, result.ElapsedMillis())
		for i, line := range strings.Split(result.Failure.String(), "\n") {
			if i == 0 {
				fmt.Fprintf(c.out, "        Reason: %s\n", line)
			} else {
				fmt.Fprintf(c.out, "        %s\n", line)
			}
		}
		c.failed = append(c.failed, result.Name)
	}

	failed := result.Status == framework.StatusFailed
	if len(result.Output) > 0 &&
		((failed && c.debugOutputOnFailure) || (!failed && c.debugOutputOnSuccess)) {
		result.Output.Dump(c.out, c.colors.faint.Sprint("    DEBUG "))
	}
}

func (c *ConsoleReporter) TestRunFinished(totals framework.Totals) {
	fmt.Fprintln(c.out, separatorLine)

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.AppendHeader(table.Row{"Total", "Passed", "Failed", "Skipped"})
	t.AppendRow(table.Row{totals.Total, totals.Passed, totals.Failed, totals.Skipped})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})
	switch {
	case c.noColor:
		t.SetStyle(table.StyleDefault)
	case totals.Failed > 0:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case totals.Skipped > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()

	if len(c.failed) == 0 {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Failed tests:")
	for _, name := range c.failed {
		fmt.Fprintf(c.out, "  %s\n", c.colors.fail.Sprint(name))
	}
	if len(c.rerunCommand) > 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "To run only the failed tests:")
		fmt.Fprintf(c.out, "  %s\n", rerunCommand(c.rerunCommand, c.failed))
	}
}

// rerunCommand builds a shell-quoted command line that selects exactly the given tests.
func rerunCommand(base []string, names []string) string {
	args := append([]string(nil), base...)
	for _, name := range names {
		args = append(args, "--filter", "^"+regexp.QuoteMeta(name)+"$")
	}
	return shellescape.QuoteCommand(args)
}
