// Package grouping buckets test suites by the first letter of their class
// name and packs the buckets into duration-balanced groups.
package grouping

import (
	"sort"
	"strings"
	"unicode/utf8"

	"jsplit/internal/domain"
)

// SentinelKey is used for suites whose class name segment is empty
const SentinelKey = '0'

// Aggregate sums suite durations per derived key. The result always holds
// the 26 letters A-Z, plus any other key that occurred, in ascending code
// point order.
func Aggregate(suites []domain.Suite) []domain.CategoryTotal {
	totals := make(map[rune]float64, 26)
	for c := 'A'; c <= 'Z'; c++ {
		totals[c] = 0
	}

	for _, suite := range suites {
		totals[KeyOf(suite.Name)] += suite.Duration
	}

	keys := make([]rune, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	result := make([]domain.CategoryTotal, len(keys))
	for i, key := range keys {
		result[i] = domain.NewCategoryTotal(key, totals[key])
	}
	return result
}

// KeyOf derives the category key of a suite name: the first character of
// the last dot-separated segment, case preserved.
func KeyOf(name string) rune {
	className := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		className = name[i+1:]
	}
	if className == "" {
		return SentinelKey
	}
	key, _ := utf8.DecodeRuneInString(className)
	return key
}
