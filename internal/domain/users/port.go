package users

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by Create when the email already exists.
var ErrEmailTaken = errors.New("email already exists")

// Repository port (interface untuk persistence)
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
