package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by lookups with no matching row.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned by Create when the email is already taken.
// The users table carries a unique index on email, so a concurrent
// registration that slips past the service's existence check still surfaces
// here instead of producing a duplicate account.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetConsent(ctx context.Context, id uuid.UUID, consent bool) error
}
