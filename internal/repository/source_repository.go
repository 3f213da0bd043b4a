package repository

import (
	"context"
	"database/sql"
	"time"

	"distill/internal/model"
	"distill/internal/snowflake"
)

type SourceRepository interface {
	GetByID(ctx context.Context, id int64) (model.Source, error)
	List(ctx context.Context) ([]model.Source, error)
	FindByURL(ctx context.Context, url string) (*model.Source, error)
	Create(ctx context.Context, source model.Source) (int64, error)
	UpdateCacheHeaders(ctx context.Context, id int64, etag, lastModified *string) error
	SetError(ctx context.Context, id int64, message string) error
	ClearError(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type sourceRepository struct {
	db dbtx
}

func NewSourceRepository(db dbtx) SourceRepository {
	return &sourceRepository{db: db}
}

const sourceColumns = `id, title, url, site_url, etag, last_modified, error_message, created_at, updated_at`

func (r *sourceRepository) GetByID(ctx context.Context, id int64) (model.Source, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE id = ?`, id)
	return scanSource(row)
}

func (r *sourceRepository) List(ctx context.Context) ([]model.Source, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sourceColumns+` FROM sources ORDER BY title COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		source, err := scanSourceFrom(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

func (r *sourceRepository) FindByURL(ctx context.Context, url string) (*model.Source, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM sources WHERE url = ?`, url)
	source, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *sourceRepository) Create(ctx context.Context, source model.Source) (int64, error) {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO sources (id, title, url, site_url, etag, last_modified, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, source.Title, source.URL, source.SiteURL, source.ETag, source.LastModified, source.ErrorMessage, now, now,
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *sourceRepository) UpdateCacheHeaders(ctx context.Context, id int64, etag, lastModified *string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE sources SET etag = ?, last_modified = ?, updated_at = ? WHERE id = ?`,
		etag, lastModified, now, id,
	)
	return err
}

func (r *sourceRepository) SetError(ctx context.Context, id int64, message string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE sources SET error_message = ?, updated_at = ? WHERE id = ?`,
		message, now, id,
	)
	return err
}

func (r *sourceRepository) ClearError(ctx context.Context, id int64) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE sources SET error_message = NULL, updated_at = ? WHERE id = ?`,
		now, id,
	)
	return err
}

func (r *sourceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	return err
}

func scanSource(row *sql.Row) (model.Source, error) {
	return scanSourceFrom(row)
}

func scanSourceFrom(s rowScanner) (model.Source, error) {
	var source model.Source
	var createdAt, updatedAt string

	err := s.Scan(
		&source.ID, &source.Title, &source.URL, &source.SiteURL,
		&source.ETag, &source.LastModified, &source.ErrorMessage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Source{}, err
	}

	source.CreatedAt, _ = parseTime(createdAt)
	source.UpdatedAt, _ = parseTime(updatedAt)
	return source, nil
}
