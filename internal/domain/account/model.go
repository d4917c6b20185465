package account

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. The email doubles as the identity the
// mobile client holds onto after login, so it is unique and matched
// case-sensitively, exactly as stored.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Consent      bool      `db:"consent" json:"consent"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile is the public view of a user returned by the userinfo endpoint.
// It never carries the password hash.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Consent bool   `json:"consent"`
}

func (u *User) Profile() Profile {
	return Profile{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Consent: u.Consent,
	}
}
