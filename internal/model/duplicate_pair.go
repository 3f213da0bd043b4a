package model

import "time"

// DuplicatePair records two documents judged to be the same content.
// DocumentA is always the document that appeared first in the scanned input.
type DuplicatePair struct {
	ID         int64
	DocumentA  int64
	DocumentB  int64
	Similarity string
	CreatedAt  time.Time
}
