package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"distill/internal/logger"
	"distill/internal/model"
	"distill/internal/repository"
)

// ProcessService drives documents through the AI gateway: summarizing
// pending documents in batches and scanning processed ones for duplicates.
type ProcessService interface {
	// ProcessPending runs the batch over all pending documents and
	// records the outcome.
	ProcessPending(ctx context.Context) (BatchTally, error)
	// StartBatch launches ProcessPending in the background and returns
	// the tracking task.
	StartBatch(ctx context.Context) (*ProcessTask, error)
	Task() *ProcessTask
	CancelTask() bool
	// ScanDuplicates compares all processed documents pairwise and
	// persists the matched pairs.
	ScanDuplicates(ctx context.Context) ([]model.DuplicatePair, error)
	ListRuns(ctx context.Context, limit int) ([]model.BatchRun, error)
	ListDuplicates(ctx context.Context) ([]model.DuplicatePair, error)
	ClearDuplicates(ctx context.Context) (int64, error)
}

type processService struct {
	documents repository.DocumentRepository
	runs      repository.RunRepository
	pairs     repository.DuplicateRepository
	gateway   GatewayService
	batch     BatchService
	finder    DuplicateService
	tasks     ProcessTaskService
}

// NewProcessService creates a new process service.
func NewProcessService(
	documents repository.DocumentRepository,
	runs repository.RunRepository,
	pairs repository.DuplicateRepository,
	gateway GatewayService,
	batch BatchService,
	finder DuplicateService,
	tasks ProcessTaskService,
) ProcessService {
	return &processService{
		documents: documents,
		runs:      runs,
		pairs:     pairs,
		gateway:   gateway,
		batch:     batch,
		finder:    finder,
		tasks:     tasks,
	}
}

func (s *processService) ProcessPending(ctx context.Context) (BatchTally, error) {
	items, err := s.pendingItems(ctx)
	if err != nil {
		return BatchTally{}, err
	}
	return s.run(ctx, items, nil)
}

func (s *processService) StartBatch(ctx context.Context) (*ProcessTask, error) {
	items, err := s.pendingItems(ctx)
	if err != nil {
		return nil, err
	}

	_, taskCtx := s.tasks.Start(len(items))
	go func() {
		tally, err := s.run(taskCtx, items, s.tasks.Update)
		if err != nil {
			s.tasks.Fail(err)
			return
		}
		s.tasks.Complete(tally)
	}()

	return s.tasks.Get(), nil
}

func (s *processService) Task() *ProcessTask {
	return s.tasks.Get()
}

func (s *processService) CancelTask() bool {
	return s.tasks.Cancel()
}

func (s *processService) run(ctx context.Context, items []model.Item, progress func(current int, document string)) (BatchTally, error) {
	var done int
	process := func(ctx context.Context, content string) (string, error) {
		return s.gateway.SummarizeTranslate(ctx, content, "")
	}
	report := func(ctx context.Context, id, message string, isError bool) (bool, error) {
		done++
		if progress != nil {
			progress(done, id)
		}
		docID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return false, fmt.Errorf("bad document id %q: %w", id, err)
		}
		if isError {
			status := model.StatusFailed
			if message == noValidContentMessage {
				status = model.StatusSkipped
			}
			if err := s.documents.UpdateStatus(ctx, docID, status, message); err != nil {
				return false, err
			}
			return true, nil
		}
		if err := s.documents.UpdateProcessedContent(ctx, docID, message); err != nil {
			return false, err
		}
		return true, nil
	}

	tally, err := s.batch.Run(ctx, items, BatchOptions{}, process, report)
	if err != nil {
		return tally, err
	}

	if _, err := s.runs.Save(ctx, model.BatchRun{
		Operation: "summarize",
		Total:     tally.Total,
		Processed: tally.Processed,
		Failed:    tally.Failed,
		Skipped:   tally.Skipped,
	}); err != nil {
		logger.Warn("save batch run failed",
			"module", "process",
			"action", "run",
			"error", err)
	}
	return tally, nil
}

func (s *processService) ScanDuplicates(ctx context.Context) ([]model.DuplicatePair, error) {
	status := model.StatusProcessed
	docs, err := s.documents.List(ctx, repository.DocumentListFilter{Status: &status})
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, documentToItem(doc))
	}

	matches, err := s.finder.Find(ctx, items, DuplicateOptions{}, func(ctx context.Context, contentA, contentB, titleA, titleB string) (Similarity, error) {
		return s.gateway.Compare(ctx, titleA, contentA, titleB, contentB)
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]model.DuplicatePair, 0, len(matches))
	for _, match := range matches {
		idA, errA := strconv.ParseInt(match.A["id"], 10, 64)
		idB, errB := strconv.ParseInt(match.B["id"], 10, 64)
		if errA != nil || errB != nil {
			continue
		}
		pair := model.DuplicatePair{
			DocumentA:  idA,
			DocumentB:  idB,
			Similarity: SimilarityDuplicate.String(),
		}
		if err := s.pairs.Save(ctx, pair); err != nil {
			logger.Warn("save duplicate pair failed",
				"module", "process",
				"action", "duplicates",
				"error", err)
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (s *processService) ListRuns(ctx context.Context, limit int) ([]model.BatchRun, error) {
	return s.runs.List(ctx, limit)
}

func (s *processService) ListDuplicates(ctx context.Context) ([]model.DuplicatePair, error) {
	return s.pairs.List(ctx)
}

func (s *processService) ClearDuplicates(ctx context.Context) (int64, error) {
	return s.pairs.DeleteAll(ctx)
}

func (s *processService) pendingItems(ctx context.Context) ([]model.Item, error) {
	status := model.StatusPending
	docs, err := s.documents.List(ctx, repository.DocumentListFilter{Status: &status})
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, documentToItem(doc))
	}
	return items, nil
}

// documentToItem flattens a document into the field map the batch runner
// and duplicate finder read. The richest available content wins.
func documentToItem(doc model.Document) model.Item {
	content := ""
	for _, candidate := range []*string{doc.ProcessedContent, doc.ReadableContent, doc.Content} {
		if candidate != nil && strings.TrimSpace(*candidate) != "" {
			content = *candidate
			break
		}
	}
	title := ""
	if doc.Title != nil {
		title = *doc.Title
	}
	return model.Item{
		"id":      strconv.FormatInt(doc.ID, 10),
		"title":   title,
		"content": content,
	}
}
