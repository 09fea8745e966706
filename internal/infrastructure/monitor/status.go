package monitor

import "time"

// Status is the outcome of the most recent store check.
type Status struct {
	Online    bool
	Detail    string
	LastCheck time.Time
}
