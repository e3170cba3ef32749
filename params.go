package main

import (
	"strings"

	"github.com/urfave/cli/v2"
)

const envVarPrefix = "UNIT_HARNESS"

const (
	defaultHTMLReport    = "test-report.html"
	defaultXMLReport     = "test-report.xml"
	defaultJSONReport    = "test-report.jsonl"
	defaultMetricsReport = "test-metrics.prom"
)

func prefixEnvVar(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var (
	htmlFlag = &cli.StringFlag{
		Name:  "html",
		Usage: "write an HTML report (default path " + defaultHTMLReport + ")",
	}
	xmlFlag = &cli.StringFlag{
		Name:  "xml",
		Usage: "write a JUnit XML report (default path " + defaultXMLReport + ")",
	}
	jsonFlag = &cli.StringFlag{
		Name:  "json",
		Usage: "write a JSON lines report (default path " + defaultJSONReport + ")",
	}
	metricsFlag = &cli.StringFlag{
		Name:  "metrics",
		Usage: "write Prometheus metrics in text format (default path " + defaultMetricsReport + ")",
	}
	openFlag = &cli.BoolFlag{
		Name:  "open",
		Usage: "open the HTML report in a browser when the run finishes",
	}
	filterFlag = &cli.StringSliceFlag{
		Name:    "filter",
		EnvVars: prefixEnvVar("FILTER"),
		Usage:   "regex pattern(s) to select tests to run",
	}
	skipFlag = &cli.StringSliceFlag{
		Name:  "skip",
		Usage: "regex pattern(s) to select tests not to run",
	}
	notifyURLFlag = &cli.StringFlag{
		Name:    "notify-url",
		EnvVars: prefixEnvVar("NOTIFY_URL"),
		Usage:   "URL that receives a JSON summary of the run",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		EnvVars: prefixEnvVar("CONFIG"),
		Usage:   "YAML config file; flags override its settings",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "show debug output for failed tests",
	}
	debugAllFlag = &cli.BoolFlag{
		Name:  "debug-all",
		Usage: "show debug output for all tests",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored console output",
	}
	listFlag = &cli.BoolFlag{
		Name:  "list",
		Usage: "list the selected tests without running them",
	}
)

var flags = []cli.Flag{
	htmlFlag,
	xmlFlag,
	jsonFlag,
	metricsFlag,
	openFlag,
	filterFlag,
	skipFlag,
	notifyURLFlag,
	configFlag,
	debugFlag,
	debugAllFlag,
	noColorFlag,
	listFlag,
}

// Report flags whose value may be omitted, with the path used in that case.
var optionalValueFlags = map[string]string{
	htmlFlag.Name:    defaultHTMLReport,
	xmlFlag.Name:     defaultXMLReport,
	jsonFlag.Name:    defaultJSONReport,
	metricsFlag.Name: defaultMetricsReport,
}

var valueFlags = map[string]bool{
	filterFlag.Name:    true,
	skipFlag.Name:      true,
	notifyURLFlag.Name: true,
	configFlag.Name:    true,
}

// normalizeArgs rewrites a command line so that the flag parser accepts it: flags are moved
// ahead of the container names, and a report flag without a value gets its default path.
// The argument after a report flag is its path unless it looks like a flag or is the name of
// a registered container.
func normalizeArgs(args []string, isContainer func(string) bool) []string {
	if len(args) == 0 {
		return args
	}
	out := []string{args[0]}
	var positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positional = append(positional, rest[i+1:]...)
			break
		}
		name, hasValue := flagName(arg)
		if name == "" {
			positional = append(positional, arg)
			continue
		}
		if defaultPath, ok := optionalValueFlags[name]; ok && !hasValue {
			path := defaultPath
			if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") && !isContainer(rest[i+1]) {
				path = rest[i+1]
				i++
			}
			out = append(out, "--"+name+"="+path)
			continue
		}
		out = append(out, arg)
		if valueFlags[name] && !hasValue && i+1 < len(rest) {
			out = append(out, rest[i+1])
			i++
		}
	}
	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}

func flagName(arg string) (name string, hasValue bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	name = strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if i := strings.Index(name, "="); i >= 0 {
		return name[:i], true
	}
	return name, false
}

// rerunCommand is the command line that repeats a run, minus any --filter options.
func rerunCommand(program string, s settings) []string {
	cmd := []string{program}
	cmd = append(cmd, s.containers...)
	for _, p := range s.skip {
		cmd = append(cmd, "--"+skipFlag.Name, p)
	}
	return cmd
}
