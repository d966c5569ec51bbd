package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the users and analysis_history tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const usersTable = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  created_at TIMESTAMPTZ DEFAULT NOW()
);`
	const historyTable = `
CREATE TABLE IF NOT EXISTS analysis_history (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT,
  file_name TEXT NOT NULL,
  file_size TEXT,
  file_type TEXT,
  is_ai BOOLEAN,
  confidence DOUBLE PRECISION,
  verdict TEXT,
  timestamp TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_history_user ON analysis_history (user_id, timestamp);`

	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, historyTable)
	return err
}
