package model

import "time"

// Document statuses.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

type Document struct {
	ID               int64
	SourceID         *int64
	Title            *string
	URL              *string
	Content          *string
	ReadableContent  *string
	ProcessedContent *string
	Language         *string
	Status           string
	ErrorMessage     *string
	PublishedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
