package service

import (
	"context"
	"fmt"

	"distill/internal/logger"
	"distill/internal/model"
)

// SimilarityFunc judges whether two contents cover the same story.
// SimilarityUnknown is an inconclusive verdict, distinct from different.
type SimilarityFunc func(ctx context.Context, contentA, contentB, titleA, titleB string) (Similarity, error)

// DuplicateOptions configures which item fields the finder reads.
type DuplicateOptions struct {
	// ContentField defaults to "content".
	ContentField string
	// TitleField defaults to "title".
	TitleField string
	// IDField defaults to "id".
	IDField string
}

// DuplicateMatch is one pair of items judged to be the same content.
// A is always the item that appeared earlier in the input.
type DuplicateMatch struct {
	A model.Item
	B model.Item
}

// pairKey identifies an unordered pair of items by their sorted
// identifiers, so the same pair is never evaluated twice.
type pairKey [2]string

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// DuplicateService scans a collection for pairs of equivalent items.
type DuplicateService interface {
	// Find compares every unordered pair of items through the similarity
	// function and returns the matches in evaluation order. A failing
	// comparison is logged and treated as a non-match.
	Find(ctx context.Context, items []model.Item, opts DuplicateOptions, similar SimilarityFunc) ([]DuplicateMatch, error)
}

type duplicateService struct{}

// NewDuplicateService creates a new duplicate finder.
func NewDuplicateService() DuplicateService {
	return &duplicateService{}
}

func (s *duplicateService) Find(ctx context.Context, items []model.Item, opts DuplicateOptions, similar SimilarityFunc) ([]DuplicateMatch, error) {
	if similar == nil {
		return nil, fmt.Errorf("%w: similarity function is required", ErrInvalid)
	}
	if opts.ContentField == "" {
		opts.ContentField = "content"
	}
	if opts.TitleField == "" {
		opts.TitleField = "title"
	}
	if opts.IDField == "" {
		opts.IDField = "id"
	}

	seen := make(map[pairKey]struct{})
	var matches []DuplicateMatch

	for i := 0; i < len(items); i++ {
		a := items[i]
		for j := i + 1; j < len(items); j++ {
			b := items[j]

			key := newPairKey(a[opts.IDField], b[opts.IDField])
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			verdict, err := similar(ctx, a[opts.ContentField], b[opts.ContentField], a[opts.TitleField], b[opts.TitleField])
			if err != nil {
				logger.Warn("similarity check failed",
					"module", "duplicates",
					"action", "find",
					"resource", key[0]+"/"+key[1],
					"error", err)
				continue
			}
			if verdict == SimilarityDuplicate {
				matches = append(matches, DuplicateMatch{A: a, B: b})
				logger.Info("duplicate pair found",
					"module", "duplicates",
					"action", "find",
					"resource", key[0]+"/"+key[1])
			}
		}
	}

	logger.Info("duplicate scan finished",
		"module", "duplicates",
		"action", "find",
		"result", fmt.Sprintf("items=%d matches=%d", len(items), len(matches)))
	return matches, nil
}
