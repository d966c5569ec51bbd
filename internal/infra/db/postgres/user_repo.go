package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
)

type UserRepository struct{ db *sql.DB }

func NewUserRepository(db *sql.DB) *UserRepository { return &UserRepository{db: db} }

// Create inserts a user; unique_violation maps to domain.ErrEmailTaken
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, password, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id;`

	now := time.Now()
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name, email, passwordHash, now).Scan(&id); err != nil {
		var pe *pq.Error
		if errors.As(err, &pe) && pe.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &domain.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// FindByEmail returns nil, nil when no user exists
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id, name, email, password, created_at
FROM users
WHERE email=$1
LIMIT 1;`

	row := r.db.QueryRowContext(ctx, q, email)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
