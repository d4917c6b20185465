package checklist

import "context"

type Repository interface {
	Insert(ctx context.Context, r *Record) error
	// ListByUser returns the user's records newest first. No records is an
	// empty result, not an error.
	ListByUser(ctx context.Context, userID string) ([]*Record, error)
	// SearchByPrefix returns records whose patient_info starts with the
	// given literal prefix, newest first.
	SearchByPrefix(ctx context.Context, prefix string) ([]*Record, error)
}
