package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/safelink/safelink/internal/platform/genai"
	"github.com/safelink/safelink/internal/platform/httperr"
)

// promptTemplate embeds the patient context verbatim. It asks the model for
// exactly five points, but compliance is not enforced: Generate returns
// whatever non-blank lines come back, in order.
const promptTemplate = "You are a medical assistant. Generate a step-by-step patient safety checklist " +
	"of exactly five actionable points for the following case: %s. " +
	"Write each point professionally and empathetically, addressing the patient directly."

type Service struct {
	records   Repository
	generator genai.TextGenerator
	logger    zerolog.Logger
}

func NewService(records Repository, generator genai.TextGenerator, logger zerolog.Logger) *Service {
	return &Service{records: records, generator: generator, logger: logger}
}

// Generate builds the checklist prompt for patientInfo, performs one
// single-turn call to the generative service and normalizes the reply into
// ordered checklist items: lines that are empty or whitespace-only are
// dropped, everything else is kept with its exact text.
func (s *Service) Generate(ctx context.Context, patientInfo string) ([]string, error) {
	if patientInfo == "" {
		return nil, httperr.Validation("Patient info is required")
	}

	raw, err := s.generator.GenerateContent(ctx, fmt.Sprintf(promptTemplate, patientInfo))
	if err != nil {
		return nil, httperr.Upstream("Failed to generate checklist", err)
	}

	return normalize(raw), nil
}

func normalize(raw string) []string {
	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// Save persists one immutable record against the owning user's email. All
// three fields must be present; an empty checklist slice counts as present
// and is stored as-is.
func (s *Service) Save(ctx context.Context, userID, patientInfo string, items []string) (uuid.UUID, error) {
	if userID == "" || patientInfo == "" || items == nil {
		return uuid.Nil, httperr.Validation("Missing required fields")
	}

	rec := &Record{
		UserID:      userID,
		PatientInfo: patientInfo,
		Checklist:   items,
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return uuid.Nil, httperr.Storage("Failed to save checklist", err)
	}

	s.logger.Info().Str("user_id", userID).Str("record_id", rec.ID.String()).Msg("checklist saved")
	return rec.ID, nil
}

// ListByUser returns the user's records newest first; no records yields an
// empty list.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Record, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, httperr.Storage("Failed to retrieve checklists", err)
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}
