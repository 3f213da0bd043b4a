package repository

import (
	"context"
	"time"

	"distill/internal/model"
	"distill/internal/snowflake"
)

type DuplicateRepository interface {
	Save(ctx context.Context, pair model.DuplicatePair) error
	List(ctx context.Context) ([]model.DuplicatePair, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type duplicateRepository struct {
	db dbtx
}

func NewDuplicateRepository(db dbtx) DuplicateRepository {
	return &duplicateRepository{db: db}
}

func (r *duplicateRepository) Save(ctx context.Context, pair model.DuplicatePair) error {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO duplicate_pairs (id, document_a, document_b, similarity, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(document_a, document_b) DO UPDATE SET
		   similarity = excluded.similarity,
		   created_at = excluded.created_at`,
		id, pair.DocumentA, pair.DocumentB, pair.Similarity, now,
	)
	return err
}

func (r *duplicateRepository) List(ctx context.Context) ([]model.DuplicatePair, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, document_a, document_b, similarity, created_at
		 FROM duplicate_pairs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []model.DuplicatePair
	for rows.Next() {
		var pair model.DuplicatePair
		var createdAt string
		if err := rows.Scan(&pair.ID, &pair.DocumentA, &pair.DocumentB, &pair.Similarity, &createdAt); err != nil {
			return nil, err
		}
		pair.CreatedAt, _ = parseTime(createdAt)
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}

func (r *duplicateRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM duplicate_pairs`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
