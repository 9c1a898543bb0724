package scheduler

import "errors"

var (
	// ErrSweeperNotRunning is returned when an immediate sweep is triggered
	// while the sweeper is stopped
	ErrSweeperNotRunning = errors.New("overdue sweeper is not running")
)
