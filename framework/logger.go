package framework

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the sink for diagnostics: scanner warnings, loader failures and hook failures.
// *log.Logger satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// StderrLogger returns the default diagnostics sink.
func StderrLogger() Logger {
	return log.New(os.Stderr, "", 0)
}

var warningColor = color.New(color.FgYellow, color.Bold)

// colorDiagnostics reports whether warnings may carry color codes. Diagnostics go to
// stderr, so it is stderr, not stdout, that must be a terminal.
var colorDiagnostics = func() bool {
	fd := os.Stderr.Fd()
	return !color.NoColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func warningLabel() string {
	if colorDiagnostics() {
		return warningColor.Sprint("Warning:")
	}
	return "Warning:"
}

func warnf(logger Logger, message string, args ...interface{}) {
	logger.Printf("%s %s", warningLabel(), fmt.Sprintf(message, args...))
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records messages in memory. Each test gets one for T.Debug output, and
// tests of this package use it to inspect diagnostics.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Messages returns just the message text of everything captured so far.
func (l *CapturingLogger) Messages() []string {
	output := l.Output()
	ret := make([]string, 0, len(output))
	for _, m := range output {
		ret = append(ret, m.Message)
	}
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
