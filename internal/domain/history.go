package domain

import "time"

// HistoryRun is one recorded batch of suite durations
type HistoryRun struct {
	RunID      string
	Suites     int
	RecordedAt time.Time
}
