// Package directory exposes the patient search surface: a prefix search
// over stored checklist records and the consent-gated contact lookup the
// client performs before revealing another user's details.
package directory

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/safelink/safelink/internal/domain/account"
	"github.com/safelink/safelink/internal/domain/checklist"
	"github.com/safelink/safelink/internal/platform/httperr"
)

// RecordSearcher is the slice of the checklist repository this service needs.
type RecordSearcher interface {
	SearchByPrefix(ctx context.Context, prefix string) ([]*checklist.Record, error)
}

// UserReader is the slice of the account repository this service needs.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*account.User, error)
}

// ConsentResult is the consent lookup response. Name and Phone are only
// populated when the subject has consented; they are omitted from the JSON
// body otherwise, so a serialization path can never leak contact details.
type ConsentResult struct {
	Success bool   `json:"success"`
	Consent bool   `json:"consent"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type Service struct {
	records RecordSearcher
	users   UserReader
	logger  zerolog.Logger
}

func NewService(records RecordSearcher, users UserReader, logger zerolog.Logger) *Service {
	return &Service{records: records, users: users, logger: logger}
}

// SearchByCondition returns records whose patient context starts with the
// given text, newest first. Matching is literal prefix only: a record
// beginning "influenza" matches the query "flu", one merely containing
// "flu" mid-string does not. Records are returned raw, without consent
// filtering; the contact-detail gate is CheckConsent.
func (s *Service) SearchByCondition(ctx context.Context, condition string) ([]*checklist.Record, error) {
	records, err := s.records.SearchByPrefix(ctx, condition)
	if err != nil {
		return nil, httperr.Storage("Failed to search patients", err)
	}
	if records == nil {
		records = []*checklist.Record{}
	}
	return records, nil
}

// CheckConsent is the single privacy gate for contact details. Contact
// fields are present in the result only when consent is true; a false or
// never-set flag yields consent:false with the fields withheld.
func (s *Service) CheckConsent(ctx context.Context, email string) (*ConsentResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, httperr.NotFound("User not found")
		}
		return nil, httperr.Storage("Failed to check consent", err)
	}

	result := &ConsentResult{
		Success: true,
		Consent: u.Consent,
		Email:   u.Email,
	}
	if u.Consent {
		result.Name = u.Name
		result.Phone = u.Phone
	}
	return result, nil
}
