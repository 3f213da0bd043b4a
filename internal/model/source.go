package model

import "time"

type Source struct {
	ID           int64
	Title        string
	URL          string
	SiteURL      *string
	ETag         *string
	LastModified *string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
