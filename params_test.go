package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	isContainer := func(s string) bool { return s == "CalculatorTest" || s == "examples.ExceptionTest" }

	for _, p := range []struct {
		name     string
		args     []string
		expected []string
	}{
		{"no arguments", []string{"h"}, []string{"h"}},
		{"flags after names", []string{"h", "CalculatorTest", "--debug"}, []string{"h", "--debug", "--", "CalculatorTest"}},
		{"value flag keeps its value", []string{"h", "CalculatorTest", "--filter", "testAdd"}, []string{"h", "--filter", "testAdd", "--", "CalculatorTest"}},
		{"value flag with equals", []string{"h", "--skip=x", "CalculatorTest"}, []string{"h", "--skip=x", "--", "CalculatorTest"}},
		{"report flag at end", []string{"h", "CalculatorTest", "--html"}, []string{"h", "--html=test-report.html", "--", "CalculatorTest"}},
		{"report flag with path", []string{"h", "--xml", "out.xml", "CalculatorTest"}, []string{"h", "--xml=out.xml", "--", "CalculatorTest"}},
		{"report flag before container", []string{"h", "--json", "CalculatorTest"}, []string{"h", "--json=test-report.jsonl", "--", "CalculatorTest"}},
		{"report flag before flag", []string{"h", "--metrics", "--debug", "CalculatorTest"}, []string{"h", "--metrics=test-metrics.prom", "--debug", "--", "CalculatorTest"}},
		{"single dash", []string{"h", "-html", "examples.ExceptionTest"}, []string{"h", "--html=test-report.html", "--", "examples.ExceptionTest"}},
		{"report flag with explicit value", []string{"h", "--html=r.html"}, []string{"h", "--html=r.html"}},
		{"terminator", []string{"h", "--debug", "--", "-odd", "CalculatorTest"}, []string{"h", "--debug", "--", "-odd", "CalculatorTest"}},
		{"help", []string{"h", "-h"}, []string{"h", "-h"}},
	} {
		t.Run(p.name, func(t *testing.T) {
			assert.Equal(t, p.expected, normalizeArgs(p.args, isContainer))
		})
	}
}

func TestRerunCommandKeepsSkipPatterns(t *testing.T) {
	s := settings{containers: []string{"A", "B"}, skip: []string{"slow"}}
	assert.Equal(t, []string{"unit-harness", "A", "B", "--skip", "slow"}, rerunCommand("unit-harness", s))
}
