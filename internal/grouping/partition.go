package grouping

import (
	"errors"
	"fmt"

	"jsplit/internal/domain"
)

// ErrInvalidGroupCount is returned when fewer than one group is requested
var ErrInvalidGroupCount = errors.New("invalid group count")

// Partition assembles ordered category totals into groups whose durations
// stay close to total/groupCount. It is a single greedy pass: order is kept,
// a total larger than the target always forms its own group, and the number
// of groups returned may differ from groupCount.
//
// Input with no workload at all (empty, or summing to zero) yields no groups.
func Partition(groupCount int, totals []domain.CategoryTotal) ([]domain.Group, error) {
	if groupCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGroupCount, groupCount)
	}

	total := Total(totals)
	if total == 0 {
		return []domain.Group{}, nil
	}
	target := total / float64(groupCount)

	result := make([]domain.Group, 0, groupCount)
	var current domain.Group
	var sum float64

	flush := func() {
		if len(current) > 0 {
			result = append(result, current)
			current = nil
			sum = 0
		}
	}

	for _, c := range totals {
		if c.Duration > target {
			flush()
			result = append(result, domain.Group{c})
			continue
		}
		if sum+c.Duration > target {
			flush()
		}
		current = append(current, c)
		sum += c.Duration
	}
	flush()

	return result, nil
}

// Total sums the durations of the given category totals
func Total(totals []domain.CategoryTotal) float64 {
	var total float64
	for _, c := range totals {
		total += c.Duration
	}
	return total
}

// Target returns the balancing threshold Partition uses for groupCount
func Target(groupCount int, totals []domain.CategoryTotal) (float64, error) {
	if groupCount < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGroupCount, groupCount)
	}
	return Total(totals) / float64(groupCount), nil
}
