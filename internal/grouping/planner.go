package grouping

import (
	"time"

	"github.com/google/uuid"

	"jsplit/internal/domain"
)

// Planner turns a batch of suites into a Plan
type Planner struct {
	now   func() time.Time
	newID func() string
}

// NewPlanner creates a new Planner
func NewPlanner() *Planner {
	return &Planner{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Plan aggregates the suites and partitions the totals into groups.
// source describes where the suites came from ("reports" or "history").
func (p *Planner) Plan(groupCount int, suites []domain.Suite, source string) (*domain.Plan, error) {
	totals := Aggregate(suites)

	groups, err := Partition(groupCount, totals)
	if err != nil {
		return nil, err
	}
	target, err := Target(groupCount, totals)
	if err != nil {
		return nil, err
	}

	reports := make(map[string]struct{})
	for _, s := range suites {
		if s.Source != "" {
			reports[s.Source] = struct{}{}
		}
	}

	return &domain.Plan{
		Meta: domain.PlanMeta{
			ID:              p.newID(),
			RequestedGroups: groupCount,
			ActualGroups:    len(groups),
			TotalSeconds:    Total(totals),
			TargetSeconds:   target,
			Suites:          len(suites),
			Reports:         len(reports),
			Source:          source,
			Timestamp:       p.now().Format(time.RFC3339),
		},
		Groups: groups,
	}, nil
}
