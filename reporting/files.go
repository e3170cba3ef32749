package reporting

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/launchdarkly/unit-harness/framework"
)

// collector keeps the results of a run, in the order they finished, for reporters that
// only produce output at the end.
type collector struct {
	started time.Time
	results []framework.TestResult
}

func (c *collector) TestStarted(string) {
	if c.started.IsZero() {
		c.started = time.Now()
	}
}

func (c *collector) TestFinished(result framework.TestResult) {
	c.results = append(c.results, result)
}

func (c *collector) runDuration() time.Duration {
	if c.started.IsZero() {
		return 0
	}
	return time.Since(c.started)
}

// fileOutput is the destination of a report file. A failure to write it is logged and kept
// so that the command can exit with an error.
type fileOutput struct {
	kind        string
	path        string
	info        io.Writer
	diagnostics framework.Logger
	err         error
}

func newFileOutput(kind, path string, info io.Writer, diagnostics framework.Logger) fileOutput {
	if info == nil {
		info = io.Discard
	}
	if diagnostics == nil {
		diagnostics = framework.NullLogger()
	}
	return fileOutput{kind: kind, path: path, info: info, diagnostics: diagnostics}
}

// Path is where the report is written.
func (f *fileOutput) Path() string { return f.path }

// Err returns the error from writing the report, if any.
func (f *fileOutput) Err() error { return f.err }

func (f *fileOutput) write(render func(io.Writer) error) {
	f.finish(writeFile(f.path, render))
}

func (f *fileOutput) finish(err error) {
	if err != nil {
		f.err = fmt.Errorf("failed to generate %s report %s: %w", f.kind, f.path, err)
		f.diagnostics.Printf("Failed to generate %s report: %s", f.kind, err)
		return
	}
	f.err = nil
	fmt.Fprintf(f.info, "%s report generated: %s\n", f.kind, f.path)
}

func writeFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := render(w); err != nil {
		_ = file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// plain removes terminal escape sequences from text that goes into a file.
func plain(s string) string {
	return stripansi.Strip(s)
}

func failureTrace(result framework.TestResult) string {
	if result.Failure == nil {
		return ""
	}
	return plain(result.Failure.Trace())
}

func outputLines(output framework.CapturedOutput) []string {
	ret := make([]string, 0, len(output))
	for _, m := range output {
		ret = append(ret, plain(m.Message))
	}
	return ret
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
