package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/launchdarkly/unit-harness/framework"
)

// fileConfig is the content of a --config file.
type fileConfig struct {
	Containers []string    `yaml:"containers"`
	Filter     []string    `yaml:"filter"`
	Skip       []string    `yaml:"skip"`
	Open       bool        `yaml:"open"`
	Debug      bool        `yaml:"debug"`
	DebugAll   bool        `yaml:"debugAll"`
	NoColor    bool        `yaml:"noColor"`
	NotifyURL  string      `yaml:"notifyUrl"`
	Reports    reportPaths `yaml:"reports"`
}

type reportPaths struct {
	HTML    string `yaml:"html"`
	XML     string `yaml:"xml"`
	JSON    string `yaml:"json"`
	Metrics string `yaml:"metrics"`
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// settings are the effective options of a run.
type settings struct {
	containers  []string
	filters     framework.RegexFilters
	skip        []string
	htmlPath    string
	xmlPath     string
	jsonPath    string
	metricsPath string
	notifyURL   string
	open        bool
	debug       bool
	debugAll    bool
	noColor     bool
	list        bool
}

// readSettings merges the config file, if any, with the command line. Flags that were set
// explicitly, on the command line or through their environment variable, win.
func readSettings(c *cli.Context) (settings, error) {
	var fc fileConfig
	if path := c.String(configFlag.Name); path != "" {
		var err error
		if fc, err = loadConfigFile(path); err != nil {
			return settings{}, err
		}
	}

	s := settings{
		containers:  c.Args().Slice(),
		htmlPath:    stringSetting(c, htmlFlag.Name, fc.Reports.HTML),
		xmlPath:     stringSetting(c, xmlFlag.Name, fc.Reports.XML),
		jsonPath:    stringSetting(c, jsonFlag.Name, fc.Reports.JSON),
		metricsPath: stringSetting(c, metricsFlag.Name, fc.Reports.Metrics),
		notifyURL:   stringSetting(c, notifyURLFlag.Name, fc.NotifyURL),
		open:        boolSetting(c, openFlag.Name, fc.Open),
		debug:       boolSetting(c, debugFlag.Name, fc.Debug),
		debugAll:    boolSetting(c, debugAllFlag.Name, fc.DebugAll),
		noColor:     boolSetting(c, noColorFlag.Name, fc.NoColor),
		list:        c.Bool(listFlag.Name),
	}
	if len(s.containers) == 0 {
		s.containers = fc.Containers
	}

	for _, p := range sliceSetting(c, filterFlag.Name, fc.Filter) {
		if err := s.filters.MustMatch.Set(p); err != nil {
			return settings{}, err
		}
	}
	s.skip = sliceSetting(c, skipFlag.Name, fc.Skip)
	for _, p := range s.skip {
		if err := s.filters.MustNotMatch.Set(p); err != nil {
			return settings{}, err
		}
	}
	return s, nil
}

func stringSetting(c *cli.Context, name, fromFile string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fromFile
}

func boolSetting(c *cli.Context, name string, fromFile bool) bool {
	if c.IsSet(name) {
		return c.Bool(name)
	}
	return fromFile
}

func sliceSetting(c *cli.Context, name string, fromFile []string) []string {
	if c.IsSet(name) {
		return c.StringSlice(name)
	}
	return fromFile
}
