package account

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/safelink/safelink/internal/platform/httperr"
)

type Service struct {
	users      UserRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewService(users UserRepository, bcryptCost int, logger zerolog.Logger) *Service {
	return &Service{users: users, bcryptCost: bcryptCost, logger: logger}
}

// RegisterInput carries the registration fields. All four are required.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Register creates a user with a salted bcrypt hash of the password and
// returns the store-assigned id. The explicit existence check gives the
// common duplicate case a clean error; the unique index on email closes the
// check-then-insert race for concurrent registrations.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" || in.Phone == "" {
		return "", httperr.Validation("Missing required fields")
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return "", httperr.Conflict("User already exists")
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", httperr.Storage("Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", httperr.Storage("Failed to register user", err)
	}

	u := &User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", httperr.Conflict("User already exists")
		}
		return "", httperr.Storage("Failed to register user", err)
	}

	s.logger.Info().Str("email", in.Email).Msg("user registered")
	return u.ID.String(), nil
}

// Login verifies credentials and returns the user's id. Unknown email and
// wrong password produce the same error so callers cannot probe which
// addresses are registered.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", httperr.Validation("Missing required fields")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", httperr.Authentication("Invalid credentials")
		}
		return "", httperr.Storage("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", httperr.Authentication("Invalid credentials")
	}

	return u.ID.String(), nil
}

// GetProfile returns the public view of the user identified by email.
func (s *Service) GetProfile(ctx context.Context, email string) (*Profile, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, httperr.NotFound("User not found")
		}
		return nil, httperr.Storage("Failed to load profile", err)
	}
	p := u.Profile()
	return &p, nil
}

// SetConsent updates the user's consent flag. The target row is resolved
// once by email, then updated by its store-assigned id.
func (s *Service) SetConsent(ctx context.Context, email string, consent bool) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, httperr.NotFound("User not found")
		}
		return false, httperr.Storage("Failed to update consent", err)
	}

	if err := s.users.SetConsent(ctx, u.ID, consent); err != nil {
		return false, httperr.Storage("Failed to update consent", err)
	}
	return consent, nil
}
