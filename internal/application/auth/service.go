package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/users"
)

// Validation failures are detected before any persistence work happens.
var (
	ErrMissingCredentials = errors.New("Please enter email and password")
	ErrMissingFields      = errors.New("Please fill all fields")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// Service implements use-cases untuk auth: register, login, session lookup.
type Service struct {
	Users    users.Repository
	sessions sync.Map // token -> user id
}

func NewService(repo users.Repository) *Service {
	return &Service{Users: repo}
}

// Register validates the signup form server-side (the old UI only checked
// in the browser), hashes the password and opens a session.
func (s *Service) Register(ctx context.Context, name, email, password string) (*users.User, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.Users.Create(ctx, name, email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token := s.openSession(u.ID)
	return u, token, nil
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := s.openSession(u.ID)
	return u, token, nil
}

// UserID resolves a session token; ok is false for unknown tokens.
func (s *Service) UserID(token string) (int64, bool) {
	v, ok := s.sessions.Load(token)
	if !ok {
		return 0, false
	}
	return v.(int64), true
}

// Logout drops the session.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

func (s *Service) openSession(userID int64) string {
	token := uuid.New().String()
	s.sessions.Store(token, userID)
	return token
}
