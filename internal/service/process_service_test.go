package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"distill/internal/model"
	"distill/internal/repository/mock"
	"distill/internal/service"
)

type gatewayStub struct {
	summarize func(ctx context.Context, content, language string) (string, error)
	compare   func(ctx context.Context, titleA, contentA, titleB, contentB string) (service.Similarity, error)
}

func (g *gatewayStub) Clean(ctx context.Context, text string) (string, error) { return text, nil }
func (g *gatewayStub) Extract(ctx context.Context, text string) (service.Extraction, error) {
	return service.Extraction{}, nil
}
func (g *gatewayStub) Compare(ctx context.Context, titleA, contentA, titleB, contentB string) (service.Similarity, error) {
	if g.compare == nil {
		return service.SimilarityUnknown, nil
	}
	return g.compare(ctx, titleA, contentA, titleB, contentB)
}
func (g *gatewayStub) SummarizeTranslate(ctx context.Context, content, language string) (string, error) {
	if g.summarize == nil {
		return content, nil
	}
	return g.summarize(ctx, content, language)
}
func (g *gatewayStub) TargetLanguage(ctx context.Context) string       { return "English" }
func (g *gatewayStub) TestConnection(ctx context.Context) (string, error) { return "ok", nil }

func newProcessService(t *testing.T, gateway service.GatewayService, documents *mock.MockDocumentRepository, runs *mock.MockRunRepository, pairs *mock.MockDuplicateRepository) service.ProcessService {
	t.Helper()
	return service.NewProcessService(
		documents,
		runs,
		pairs,
		gateway,
		service.NewBatchService(),
		service.NewDuplicateService(),
		service.NewProcessTaskService(),
	)
}

func pendingDoc(id int64, title, content string) model.Document {
	return model.Document{
		ID:      id,
		Title:   &title,
		Content: &content,
		Status:  model.StatusPending,
	}
}

func TestProcessPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentRepository(ctrl)
	runs := mock.NewMockRunRepository(ctrl)
	pairs := mock.NewMockDuplicateRepository(ctrl)

	documents.EXPECT().List(gomock.Any(), gomock.Any()).Return([]model.Document{
		pendingDoc(1, "First", "first body"),
		pendingDoc(2, "Second", "second body"),
		pendingDoc(3, "Third", "broken body"),
	}, nil)
	documents.EXPECT().UpdateProcessedContent(gomock.Any(), int64(1), "<p>first summary</p>").Return(nil)
	documents.EXPECT().UpdateStatus(gomock.Any(), int64(2), model.StatusSkipped, gomock.Any()).Return(nil)
	documents.EXPECT().UpdateStatus(gomock.Any(), int64(3), model.StatusFailed, gomock.Any()).Return(nil)
	runs.EXPECT().Save(gomock.Any(), model.BatchRun{
		Operation: "summarize",
		Total:     3,
		Processed: 1,
		Failed:    1,
		Skipped:   1,
	}).Return(int64(99), nil)

	gateway := &gatewayStub{
		summarize: func(ctx context.Context, content, language string) (string, error) {
			switch content {
			case "first body":
				return "<p>first summary</p>", nil
			case "second body":
				return "", nil
			default:
				return "", errors.New("model unavailable")
			}
		},
	}

	svc := newProcessService(t, gateway, documents, runs, pairs)
	tally, err := svc.ProcessPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.BatchTally{Total: 3, Processed: 1, Failed: 1, Skipped: 1}, tally)
}

func TestProcessPending_NothingToDo(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentRepository(ctrl)
	runs := mock.NewMockRunRepository(ctrl)
	pairs := mock.NewMockDuplicateRepository(ctrl)

	documents.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	runs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	svc := newProcessService(t, &gatewayStub{}, documents, runs, pairs)
	tally, err := svc.ProcessPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, service.BatchTally{}, tally)
}

func TestScanDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentRepository(ctrl)
	runs := mock.NewMockRunRepository(ctrl)
	pairs := mock.NewMockDuplicateRepository(ctrl)

	processed := func(id int64, title, content string) model.Document {
		return model.Document{ID: id, Title: &title, ProcessedContent: &content, Status: model.StatusProcessed}
	}
	documents.EXPECT().List(gomock.Any(), gomock.Any()).Return([]model.Document{
		processed(1, "A", "same story"),
		processed(2, "B", "same story"),
		processed(3, "C", "other story"),
	}, nil)
	pairs.EXPECT().Save(gomock.Any(), model.DuplicatePair{
		DocumentA:  1,
		DocumentB:  2,
		Similarity: "duplicate",
	}).Return(nil)

	gateway := &gatewayStub{
		compare: func(ctx context.Context, titleA, contentA, titleB, contentB string) (service.Similarity, error) {
			if contentA == contentB {
				return service.SimilarityDuplicate, nil
			}
			return service.SimilarityDifferent, nil
		},
	}

	svc := newProcessService(t, gateway, documents, runs, pairs)
	found, err := svc.ScanDuplicates(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, int64(1), found[0].DocumentA)
	require.Equal(t, int64(2), found[0].DocumentB)
}

func TestScanDuplicates_SaveFailureSkipsPair(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentRepository(ctrl)
	runs := mock.NewMockRunRepository(ctrl)
	pairs := mock.NewMockDuplicateRepository(ctrl)

	processed := func(id int64, title, content string) model.Document {
		return model.Document{ID: id, Title: &title, ProcessedContent: &content, Status: model.StatusProcessed}
	}
	documents.EXPECT().List(gomock.Any(), gomock.Any()).Return([]model.Document{
		processed(1, "A", "same"),
		processed(2, "B", "same"),
	}, nil)
	pairs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	gateway := &gatewayStub{
		compare: func(ctx context.Context, titleA, contentA, titleB, contentB string) (service.Similarity, error) {
			return service.SimilarityDuplicate, nil
		},
	}

	svc := newProcessService(t, gateway, documents, runs, pairs)
	found, err := svc.ScanDuplicates(context.Background())
	require.NoError(t, err)
	require.Empty(t, found)
}
