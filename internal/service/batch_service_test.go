package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/model"
	"distill/internal/service"
)

func items(contents ...string) []model.Item {
	out := make([]model.Item, len(contents))
	for i, c := range contents {
		out[i] = model.Item{"id": string(rune('a' + i)), "content": c}
	}
	return out
}

func TestBatchRun_AllProcessed(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one", "two", "three"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "cleaned " + content, nil
		}, nil)
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 3, Processed: 3}, tally)
}

func TestBatchRun_EmptyContentSkippedWithoutProcessing(t *testing.T) {
	svc := service.NewBatchService()

	var processCalls, reportCalls int
	tally, err := svc.Run(context.Background(), items("", "real"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			processCalls++
			return content, nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			reportCalls++
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 2, Processed: 1, Skipped: 1}, tally)
	require.Equal(t, 1, processCalls, "empty items must not reach the process function")
	require.Equal(t, 1, reportCalls, "empty items must not be reported")
}

func TestBatchRun_WhitespaceContentStillProcessed(t *testing.T) {
	svc := service.NewBatchService()

	// Only the truly empty string skips; whitespace is content and goes
	// through the process function like anything else.
	var got []string
	tally, err := svc.Run(context.Background(), items("   ", ""), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			got = append(got, content)
			return "cleaned", nil
		}, nil)
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 2, Processed: 1, Skipped: 1}, tally)
	require.Equal(t, []string{"   "}, got)
}

func TestBatchRun_MissingContentFieldSkipped(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), []model.Item{{"id": "1", "title": "no content key"}}, service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			t.Fatal("process must not run")
			return "", nil
		}, nil)
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Skipped: 1}, tally)
}

func TestBatchRun_ProcessErrorDoesNotAbort(t *testing.T) {
	svc := service.NewBatchService()

	var reported []string
	tally, err := svc.Run(context.Background(), items("one", "two", "three"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			if content == "two" {
				return "", errors.New("model unavailable")
			}
			return content, nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			if isError {
				reported = append(reported, message)
			}
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 3, Processed: 2, Failed: 1}, tally)
	require.Equal(t, []string{"model unavailable"}, reported)
}

func TestBatchRun_ProcessErrorFailsEvenWhenReportAccepts(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "", errors.New("boom")
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Failed: 1}, tally)
}

func TestBatchRun_RejectedReportCountsFailed(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "result", nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			return false, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Failed: 1}, tally)
}

func TestBatchRun_ReportErrorCountsFailed(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "result", nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			return false, errors.New("store rejected the write")
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Failed: 1}, tally)
}

func TestBatchRun_EmptyResultReportedAsSkipped(t *testing.T) {
	svc := service.NewBatchService()

	var gotMessage string
	var gotIsError bool
	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "", nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			gotMessage = message
			gotIsError = isError
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Skipped: 1}, tally)
	require.Equal(t, "No valid content found during processing", gotMessage)
	require.True(t, gotIsError)
}

func TestBatchRun_EmptyResultRejectedCountsFailed(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "", nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			return false, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Failed: 1}, tally)
}

func TestBatchRun_EmptyResultWithoutReportSkipped(t *testing.T) {
	svc := service.NewBatchService()

	tally, err := svc.Run(context.Background(), items("one"), service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "", nil
		}, nil)
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 1, Skipped: 1}, tally)
}

func TestBatchRun_CustomFieldNames(t *testing.T) {
	svc := service.NewBatchService()

	records := []model.Item{
		{"doc_id": "d1", "body": "hello"},
		{"doc_id": "d2", "body": ""},
	}

	var reportedID string
	tally, err := svc.Run(context.Background(), records,
		service.BatchOptions{ContentField: "body", IDField: "doc_id"},
		func(ctx context.Context, content string) (string, error) {
			return content, nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			reportedID = id
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 2, Processed: 1, Skipped: 1}, tally)
	require.Equal(t, "d1", reportedID)
}

func TestBatchRun_NilProcessFunc(t *testing.T) {
	svc := service.NewBatchService()

	_, err := svc.Run(context.Background(), items("one"), service.BatchOptions{}, nil, nil)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestBatchRun_FiveItemsOneEmpty(t *testing.T) {
	svc := service.NewBatchService()

	batch := items("a", "b", "c", "", "e")
	tally, err := svc.Run(context.Background(), batch, service.BatchOptions{},
		func(ctx context.Context, content string) (string, error) {
			return "processed " + content, nil
		},
		func(ctx context.Context, id, message string, isError bool) (bool, error) {
			return true, nil
		})
	require.NoError(t, err)

	require.Equal(t, service.BatchTally{Total: 5, Processed: 4, Skipped: 1}, tally)
	require.Equal(t, tally.Total, tally.Processed+tally.Failed+tally.Skipped)
}
