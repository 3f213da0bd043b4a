package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS sources (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  url TEXT NOT NULL UNIQUE,
  site_url TEXT,
  etag TEXT,
  last_modified TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY,
  source_id INTEGER,
  title TEXT,
  url TEXT,
  content TEXT,
  readable_content TEXT,
  processed_content TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  published_at TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (source_id) REFERENCES sources(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_documents_source_id ON documents(source_id);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);

CREATE TABLE IF NOT EXISTS batch_runs (
  id INTEGER PRIMARY KEY,
  operation TEXT NOT NULL,
  total INTEGER NOT NULL DEFAULT 0,
  processed INTEGER NOT NULL DEFAULT 0,
  failed INTEGER NOT NULL DEFAULT 0,
  skipped INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS duplicate_pairs (
  id INTEGER PRIMARY KEY,
  document_a INTEGER NOT NULL,
  document_b INTEGER NOT NULL,
  similarity TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (document_a) REFERENCES documents(id) ON DELETE CASCADE,
  FOREIGN KEY (document_b) REFERENCES documents(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_duplicate_pairs_docs ON duplicate_pairs(document_a, document_b);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add language column to documents if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('documents') WHERE name = 'language'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check language column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE documents ADD COLUMN language TEXT`); err != nil {
			return fmt.Errorf("add language column: %w", err)
		}
	}

	// Migration 2: Add unique index on (source_id, url) for upsert support
	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_source_url ON documents(source_id, url)`); err != nil {
		return fmt.Errorf("create idx_documents_source_url: %w", err)
	}

	// Migration 3: Add error_message column to sources for tracking fetch errors
	err = db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('sources') WHERE name = 'error_message'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check error_message column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE sources ADD COLUMN error_message TEXT`); err != nil {
			return fmt.Errorf("add error_message column: %w", err)
		}
	}

	// Migration 4: Add error_message column to documents for per-item outcomes
	err = db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('documents') WHERE name = 'error_message'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check documents error_message column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE documents ADD COLUMN error_message TEXT`); err != nil {
			return fmt.Errorf("add documents error_message column: %w", err)
		}
	}

	return nil
}
