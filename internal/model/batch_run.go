package model

import "time"

// BatchRun records the outcome of one batch processing run.
// The counts always satisfy processed + failed + skipped == total.
type BatchRun struct {
	ID        int64
	Operation string
	Total     int
	Processed int
	Failed    int
	Skipped   int
	CreatedAt time.Time
}
