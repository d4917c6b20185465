package checklist

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepoPG struct {
	pool *pgxpool.Pool
}

func NewRecordRepo(pool *pgxpool.Pool) Repository {
	return &recordRepoPG{pool: pool}
}

const recordCols = `id, user_id, patient_info, checklist, created_at`

func (r *recordRepoPG) Insert(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()

	// created_at is assigned by the store so record ordering does not
	// depend on API server clocks.
	return r.pool.QueryRow(ctx, `
		INSERT INTO checklist_responses (id, user_id, patient_info, checklist)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		rec.ID, rec.UserID, rec.PatientInfo, rec.Checklist,
	).Scan(&rec.Timestamp)
}

func (r *recordRepoPG) ListByUser(ctx context.Context, userID string) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM checklist_responses
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// likeEscaper neutralizes LIKE metacharacters so the search term is always a
// literal prefix.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *recordRepoPG) SearchByPrefix(ctx context.Context, prefix string) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM checklist_responses
		WHERE patient_info LIKE $1
		ORDER BY created_at DESC`, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PatientInfo, &rec.Checklist, &rec.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
