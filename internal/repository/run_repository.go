package repository

import (
	"context"
	"time"

	"distill/internal/model"
	"distill/internal/snowflake"
)

type RunRepository interface {
	Save(ctx context.Context, run model.BatchRun) (int64, error)
	List(ctx context.Context, limit int) ([]model.BatchRun, error)
}

type runRepository struct {
	db dbtx
}

func NewRunRepository(db dbtx) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Save(ctx context.Context, run model.BatchRun) (int64, error) {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO batch_runs (id, operation, total, processed, failed, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.Operation, run.Total, run.Processed, run.Failed, run.Skipped, now,
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *runRepository) List(ctx context.Context, limit int) ([]model.BatchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, operation, total, processed, failed, skipped, created_at
		 FROM batch_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.BatchRun
	for rows.Next() {
		var run model.BatchRun
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Operation, &run.Total, &run.Processed, &run.Failed, &run.Skipped, &createdAt); err != nil {
			return nil, err
		}
		run.CreatedAt, _ = parseTime(createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
