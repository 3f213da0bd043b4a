package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"distill/internal/model"
	"distill/internal/snowflake"
)

type DocumentListFilter struct {
	SourceID *int64
	Status   *string
	Limit    int
	Offset   int
}

type DocumentRepository interface {
	GetByID(ctx context.Context, id int64) (model.Document, error)
	List(ctx context.Context, filter DocumentListFilter) ([]model.Document, error)
	Create(ctx context.Context, doc model.Document) (int64, error)
	CreateOrUpdate(ctx context.Context, doc model.Document) error
	UpdateReadableContent(ctx context.Context, id int64, content string) error
	UpdateProcessedContent(ctx context.Context, id int64, content string) error
	UpdateStatus(ctx context.Context, id int64, status string, errorMessage string) error
	Delete(ctx context.Context, id int64) error
	ExistsByURL(ctx context.Context, sourceID int64, url string) (bool, error)
}

type documentRepository struct {
	db dbtx
}

func NewDocumentRepository(db dbtx) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, source_id, title, url, content, readable_content, processed_content, language, status, error_message, published_at, created_at, updated_at`

func (r *documentRepository) GetByID(ctx context.Context, id int64) (model.Document, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`,
		id,
	)
	return scanDocument(row)
}

func (r *documentRepository) List(ctx context.Context, filter DocumentListFilter) ([]model.Document, error) {
	var args []interface{}
	query := `SELECT ` + documentColumns + ` FROM documents`

	var conditions []string
	if filter.SourceID != nil {
		conditions = append(conditions, "source_id = ?")
		args = append(args, *filter.SourceID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY published_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepository) Create(ctx context.Context, doc model.Document) (int64, error) {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	status := doc.Status
	if status == "" {
		status = model.StatusPending
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO documents (id, source_id, title, url, content, readable_content, processed_content, language, status, error_message, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, doc.SourceID, doc.Title, doc.URL, doc.Content, doc.ReadableContent, doc.ProcessedContent,
		doc.Language, status, doc.ErrorMessage, formatTimePtr(doc.PublishedAt), now, now,
	)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateOrUpdate inserts a document, or refreshes title/content when a
// document with the same (source_id, url) already exists. Processing state
// of an existing document is left untouched.
func (r *documentRepository) CreateOrUpdate(ctx context.Context, doc model.Document) error {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	status := doc.Status
	if status == "" {
		status = model.StatusPending
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO documents (id, source_id, title, url, content, readable_content, processed_content, language, status, error_message, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_id, url) DO UPDATE SET
		   title = excluded.title,
		   content = excluded.content,
		   published_at = excluded.published_at,
		   updated_at = excluded.updated_at`,
		id, doc.SourceID, doc.Title, doc.URL, doc.Content, doc.ReadableContent, doc.ProcessedContent,
		doc.Language, status, doc.ErrorMessage, formatTimePtr(doc.PublishedAt), now, now,
	)
	return err
}

func (r *documentRepository) UpdateReadableContent(ctx context.Context, id int64, content string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE documents SET readable_content = ?, updated_at = ? WHERE id = ?`,
		content, now, id,
	)
	return err
}

func (r *documentRepository) UpdateProcessedContent(ctx context.Context, id int64, content string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE documents SET processed_content = ?, status = ?, error_message = NULL, updated_at = ? WHERE id = ?`,
		content, model.StatusProcessed, now, id,
	)
	return err
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id int64, status string, errorMessage string) error {
	now := formatTime(time.Now())
	var msg *string
	if errorMessage != "" {
		msg = &errorMessage
	}
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE documents SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status, msg, now, id,
	)
	return err
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

func (r *documentRepository) ExistsByURL(ctx context.Context, sourceID int64, url string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM documents WHERE source_id = ? AND url = ?`,
		sourceID, url,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row *sql.Row) (model.Document, error) {
	return scanDocumentFrom(row)
}

func scanDocumentRows(rows *sql.Rows) (model.Document, error) {
	return scanDocumentFrom(rows)
}

func scanDocumentFrom(s rowScanner) (model.Document, error) {
	var doc model.Document
	var publishedAt, createdAt, updatedAt *string

	err := s.Scan(
		&doc.ID, &doc.SourceID, &doc.Title, &doc.URL, &doc.Content, &doc.ReadableContent,
		&doc.ProcessedContent, &doc.Language, &doc.Status, &doc.ErrorMessage,
		&publishedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Document{}, err
	}

	doc.PublishedAt = parseTimePtr(publishedAt)
	if createdAt != nil {
		doc.CreatedAt, _ = parseTime(*createdAt)
	}
	if updatedAt != nil {
		doc.UpdatedAt, _ = parseTime(*updatedAt)
	}
	return doc, nil
}
