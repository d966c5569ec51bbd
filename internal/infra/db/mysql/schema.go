package mysql

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the users and analysis_history tables when missing,
// mirroring the original sqlite bootstrap.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const usersTable = `
CREATE TABLE IF NOT EXISTS users (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  email VARCHAR(255) NOT NULL UNIQUE,
  password VARCHAR(255) NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`
	const historyTable = `
CREATE TABLE IF NOT EXISTS analysis_history (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  user_id BIGINT,
  file_name VARCHAR(512) NOT NULL,
  file_size VARCHAR(64),
  file_type VARCHAR(128),
  is_ai BOOLEAN,
  confidence DOUBLE,
  verdict VARCHAR(64),
  timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  KEY idx_history_user (user_id, timestamp)
);`

	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, historyTable)
	return err
}
