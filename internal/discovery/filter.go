package discovery

import (
	"path"
	"strings"

	"jsplit/internal/domain"
)

// SuiteFilter selects suites by name pattern
type SuiteFilter struct{}

// NewSuiteFilter creates a new SuiteFilter
func NewSuiteFilter() *SuiteFilter {
	return &SuiteFilter{}
}

// Filter keeps the suites whose name matches pattern. Patterns support the
// * and ? wildcards and are tried against both the full dotted name and the
// bare class name, so "*Search*" and "scenario.*" both work. A pattern
// without wildcards is a substring match. An empty pattern keeps everything.
func (f *SuiteFilter) Filter(suites []domain.Suite, pattern string) []domain.Suite {
	if pattern == "" {
		return suites
	}

	var filtered []domain.Suite
	for _, suite := range suites {
		if f.Matches(suite.Name, pattern) {
			filtered = append(filtered, suite)
		}
	}
	return filtered
}

// Matches reports whether a single suite name matches pattern
func (f *SuiteFilter) Matches(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	className := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		className = name[i+1:]
	}
	for _, candidate := range []string{name, className} {
		// path.Match treats '/' specially; suite names never contain one
		if matched, err := path.Match(pattern, candidate); err == nil && matched {
			return true
		}
	}
	return false
}
