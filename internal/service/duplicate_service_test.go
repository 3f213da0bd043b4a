package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/model"
	"distill/internal/service"
)

func article(id, title, content string) model.Item {
	return model.Item{"id": id, "title": title, "content": content}
}

func TestFind_AllDifferent(t *testing.T) {
	svc := service.NewDuplicateService()

	var calls int
	matches, err := svc.Find(context.Background(), []model.Item{
		article("1", "A", "first story"),
		article("2", "B", "second story"),
		article("3", "C", "third story"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			calls++
			return service.SimilarityDifferent, nil
		})
	require.NoError(t, err)

	require.Empty(t, matches)
	require.Equal(t, 3, calls, "3 items produce exactly 3 unordered pairs")
}

func TestFind_SinglePairMatched(t *testing.T) {
	svc := service.NewDuplicateService()

	matches, err := svc.Find(context.Background(), []model.Item{
		article("10", "Launch", "rocket launches today"),
		article("20", "Launch again", "rocket launches today"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			return service.SimilarityDuplicate, nil
		})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	require.Equal(t, "10", matches[0].A["id"], "first match member keeps input order")
	require.Equal(t, "20", matches[0].B["id"])
}

func TestFind_PairEvaluatedOnce(t *testing.T) {
	svc := service.NewDuplicateService()

	// The same identifier appears twice; the (1,2) pair must only be
	// evaluated once no matter how often the items repeat.
	list := []model.Item{
		article("1", "A", "x"),
		article("2", "B", "y"),
		article("1", "A", "x"),
		article("2", "B", "y"),
	}

	seen := make(map[[2]string]int)
	_, err := svc.Find(context.Background(), list, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			key := [2]string{contentA, contentB}
			if contentA > contentB {
				key = [2]string{contentB, contentA}
			}
			seen[key]++
			return service.SimilarityDifferent, nil
		})
	require.NoError(t, err)

	n := len(list)
	total := 0
	for pair, count := range seen {
		require.Equal(t, 1, count, "pair %v evaluated more than once", pair)
		total += count
	}
	require.LessOrEqual(t, total, n*(n-1)/2)
}

func TestFind_UnknownNeverMatches(t *testing.T) {
	svc := service.NewDuplicateService()

	matches, err := svc.Find(context.Background(), []model.Item{
		article("1", "A", "x"),
		article("2", "B", "y"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			return service.SimilarityUnknown, nil
		})
	require.NoError(t, err)

	require.Empty(t, matches)
}

func TestFind_ErrorIsolatedPerPair(t *testing.T) {
	svc := service.NewDuplicateService()

	// The (1,2) comparison blows up; (1,3) and (2,3) must still run and
	// the (2,3) match must still be reported.
	matches, err := svc.Find(context.Background(), []model.Item{
		article("1", "A", "x"),
		article("2", "B", "y"),
		article("3", "C", "y"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			if titleA == "A" && titleB == "B" {
				return service.SimilarityUnknown, errors.New("model timeout")
			}
			if contentA == contentB {
				return service.SimilarityDuplicate, nil
			}
			return service.SimilarityDifferent, nil
		})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	require.Equal(t, "2", matches[0].A["id"])
	require.Equal(t, "3", matches[0].B["id"])
}

func TestFind_EmptyContentStillCompared(t *testing.T) {
	svc := service.NewDuplicateService()

	// Items without content still take part in every pairing; the
	// similarity function sees the empty string and decides.
	var calls int
	matches, err := svc.Find(context.Background(), []model.Item{
		article("1", "A", "x"),
		article("2", "B", ""),
		article("3", "C", "x"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			calls++
			if contentA == "x" && contentB == "x" {
				return service.SimilarityDuplicate, nil
			}
			return service.SimilarityDifferent, nil
		})
	require.NoError(t, err)

	require.Equal(t, 3, calls, "3 items produce 3 pairs regardless of empty content")
	require.Len(t, matches, 1)
	require.Equal(t, "1", matches[0].A["id"])
	require.Equal(t, "3", matches[0].B["id"])
}

func TestFind_MissingFieldsCompareAsEmpty(t *testing.T) {
	svc := service.NewDuplicateService()

	var gotA, gotB string
	_, err := svc.Find(context.Background(), []model.Item{
		{"id": "1"},
		{"id": "2", "content": "y"},
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			gotA, gotB = contentA, contentB
			return service.SimilarityDifferent, nil
		})
	require.NoError(t, err)

	require.Equal(t, "", gotA)
	require.Equal(t, "y", gotB)
}

func TestFind_OutputOrder(t *testing.T) {
	svc := service.NewDuplicateService()

	matches, err := svc.Find(context.Background(), []model.Item{
		article("1", "A", "same"),
		article("2", "B", "same"),
		article("3", "C", "same"),
	}, service.DuplicateOptions{},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			return service.SimilarityDuplicate, nil
		})
	require.NoError(t, err)

	require.Len(t, matches, 3)
	require.Equal(t, "1", matches[0].A["id"])
	require.Equal(t, "2", matches[0].B["id"])
	require.Equal(t, "1", matches[1].A["id"])
	require.Equal(t, "3", matches[1].B["id"])
	require.Equal(t, "2", matches[2].A["id"])
	require.Equal(t, "3", matches[2].B["id"])
}

func TestFind_CustomFieldNames(t *testing.T) {
	svc := service.NewDuplicateService()

	matches, err := svc.Find(context.Background(), []model.Item{
		{"uid": "a", "headline": "H1", "body": "same"},
		{"uid": "b", "headline": "H2", "body": "same"},
	}, service.DuplicateOptions{ContentField: "body", TitleField: "headline", IDField: "uid"},
		func(ctx context.Context, contentA, contentB, titleA, titleB string) (service.Similarity, error) {
			require.Equal(t, "H1", titleA)
			require.Equal(t, "H2", titleB)
			return service.SimilarityDuplicate, nil
		})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	require.Equal(t, "a", matches[0].A["uid"])
}

func TestFind_NilSimilarityFunc(t *testing.T) {
	svc := service.NewDuplicateService()

	_, err := svc.Find(context.Background(), []model.Item{article("1", "A", "x")}, service.DuplicateOptions{}, nil)
	require.ErrorIs(t, err, service.ErrInvalid)
}
