package service

import (
	"context"
	"fmt"

	"distill/internal/logger"
	"distill/internal/model"
)

// ProcessFunc transforms one item's content and returns the result.
// An empty result means the content held nothing worth keeping.
type ProcessFunc func(ctx context.Context, content string) (string, error)

// ReportFunc delivers one item's outcome to its destination: the result
// text on success, or a failure message with isError set. It returns
// whether the destination accepted the report. A non-nil error means the
// delivery itself broke and the item counts as failed.
type ReportFunc func(ctx context.Context, id, message string, isError bool) (bool, error)

// BatchOptions configures which item fields the runner reads.
type BatchOptions struct {
	// ContentField is the key holding the item's text. Defaults to "content".
	ContentField string
	// IDField is the key holding the item's identifier. Defaults to "id".
	IDField string
}

// BatchTally is the outcome of a batch run.
// Total is always Processed + Failed + Skipped.
type BatchTally struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// noValidContentMessage is reported for items whose processing came back
// empty rather than failing outright.
const noValidContentMessage = "No valid content found during processing"

// BatchService runs a processing function over a collection of items,
// tallying each item exactly once. A failing item never aborts the run.
type BatchService interface {
	Run(ctx context.Context, items []model.Item, opts BatchOptions, process ProcessFunc, report ReportFunc) (BatchTally, error)
}

type batchService struct{}

// NewBatchService creates a new batch runner.
func NewBatchService() BatchService {
	return &batchService{}
}

func (s *batchService) Run(ctx context.Context, items []model.Item, opts BatchOptions, process ProcessFunc, report ReportFunc) (BatchTally, error) {
	tally := BatchTally{Total: len(items)}
	if process == nil {
		return tally, fmt.Errorf("%w: process function is required", ErrInvalid)
	}
	if opts.ContentField == "" {
		opts.ContentField = "content"
	}
	if opts.IDField == "" {
		opts.IDField = "id"
	}

	for _, item := range items {
		id := item[opts.IDField]
		content := item[opts.ContentField]

		// Only truly empty content skips; whitespace still counts as
		// content and goes through processing.
		if content == "" {
			tally.Skipped++
			logger.Debug("skipping item without content",
				"module", "batch",
				"action", "run",
				"resource", id)
			continue
		}

		result, err := process(ctx, content)
		if err != nil {
			// The failure is reported, but the report outcome cannot
			// rescue the item: it stays failed either way.
			s.report(ctx, id, err.Error(), true, report, model.StatusFailed)
			tally.Failed++
			logger.Warn("item processing failed",
				"module", "batch",
				"action", "run",
				"resource", id,
				"error", err)
			continue
		}

		if result == "" {
			logger.Info("item produced no valid content",
				"module", "batch",
				"action", "run",
				"resource", id)
			tally.add(s.report(ctx, id, noValidContentMessage, true, report, model.StatusSkipped))
			continue
		}

		tally.add(s.report(ctx, id, result, false, report, model.StatusProcessed))
	}

	logger.Info("batch run finished",
		"module", "batch",
		"action", "run",
		"result", fmt.Sprintf("total=%d processed=%d failed=%d skipped=%d",
			tally.Total, tally.Processed, tally.Failed, tally.Skipped))
	return tally, nil
}

// report delivers one outcome and maps it to a final status: a broken or
// rejecting callback turns the item into a failure, an accepting (or
// absent) callback leaves the status its processing earned.
func (s *batchService) report(ctx context.Context, id, message string, isError bool, report ReportFunc, onAccept string) string {
	if report == nil {
		return onAccept
	}
	accepted, err := report(ctx, id, message, isError)
	if err != nil {
		logger.Warn("outcome delivery failed",
			"module", "batch",
			"action", "report",
			"resource", id,
			"error", err)
		return model.StatusFailed
	}
	if !accepted {
		return model.StatusFailed
	}
	return onAccept
}

func (t *BatchTally) add(status string) {
	switch status {
	case model.StatusProcessed:
		t.Processed++
	case model.StatusFailed:
		t.Failed++
	default:
		t.Skipped++
	}
}
