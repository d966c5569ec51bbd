package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

type HistoryRepository struct{ db *sql.DB }

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

// Save insert analysis_history record
func (r *HistoryRepository) Save(ctx context.Context, rec *domain.HistoryRecord) error {
	const q = `
INSERT INTO analysis_history
(user_id, file_name, file_size, file_type, is_ai, confidence, verdict, timestamp)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`

	fileName := orDash(rec.FileName)
	verdict := orDash(rec.Verdict)
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return r.db.QueryRowContext(ctx, q,
		rec.UserID, fileName, rec.FileSize, rec.FileType,
		rec.IsAI, rec.Confidence, verdict, ts,
	).Scan(&rec.ID)
}

// LatestByUser history record per user, newest first
func (r *HistoryRepository) LatestByUser(ctx context.Context, userID int64, limit int) ([]*domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, user_id, file_name, file_size, file_type, is_ai, confidence, verdict, timestamp
FROM analysis_history
WHERE user_id=$1
ORDER BY timestamp DESC, id DESC
LIMIT $2;`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.FileName, &rec.FileSize, &rec.FileType,
			&rec.IsAI, &rec.Confidence, &rec.Verdict, &rec.Timestamp,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// orDash keeps the history table readable when a field came in empty
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
