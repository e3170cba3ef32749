package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter decides whether a discovered test should be executed.
type Filter func(TestCase) bool

// RegexFilters selects tests by regular expressions. A test is kept if its body name or
// its "Container.body" name matches any MustMatch pattern (or MustMatch is empty), and
// neither name matches a MustNotMatch pattern. Matching is case-insensitive and unanchored.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(tc TestCase) bool {
	names := []string{tc.BodyName(), tc.DisplayName()}
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(names...)) &&
		!r.MustNotMatch.AnyMatch(names...)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+strings.TrimPrefix(p.String(), "(?i)")+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile("(?i)" + value)
	if err != nil {
		return fmt.Errorf("invalid regex %q: %w", value, err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(names ...string) bool {
	for _, p := range r.patterns {
		for _, s := range names {
			if p.MatchString(s) {
				return true
			}
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
