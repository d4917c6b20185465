package checklist

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the checklist_responses table. UserID is the owner's email,
// a foreign key by value: the mobile client keys everything off the email it
// held since login, not off store-assigned user ids. JSON field names follow
// the wire contract the client already speaks.
//
// Records are immutable once written. Checklist items are stored raw,
// including any markdown emphasis markers the model produced; stripping them
// is a display concern.
type Record struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	PatientInfo string    `db:"patient_info" json:"patientInfo"`
	Checklist   []string  `db:"checklist" json:"checklist"`
	Timestamp   time.Time `db:"created_at" json:"timestamp"`
}
