package checklist

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/safelink/safelink/internal/platform/httperr"
)

type fakeGenerator struct {
	text string
	err  error

	gotPrompt string
	calls     int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type mockRecordRepo struct {
	records   []*Record
	insertErr error
	listErr   error
}

func (m *mockRecordRepo) Insert(ctx context.Context, r *Record) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	r.ID = uuid.New()
	r.Timestamp = time.Now()
	m.records = append(m.records, r)
	return nil
}

func (m *mockRecordRepo) ListByUser(ctx context.Context, userID string) ([]*Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*Record
	// Newest first, the order the store promises.
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockRecordRepo) SearchByPrefix(ctx context.Context, prefix string) ([]*Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*Record
	for i := len(m.records) - 1; i >= 0; i-- {
		if strings.HasPrefix(m.records[i].PatientInfo, prefix) {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func TestGenerate(t *testing.T) {
	gen := &fakeGenerator{text: "1. Take your medication.\n2. Rest well.\n3. Stay hydrated."}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	items, err := svc.Generate(context.Background(), "65-year-old with pneumonia")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"1. Take your medication.", "2. Rest well.", "3. Stay hydrated."}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Generate() = %v, want %v", items, want)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want exactly 1", gen.calls)
	}
}

func TestGenerate_PromptContainsPatientInfo(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), "diabetic, post-surgery"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(gen.gotPrompt, "diabetic, post-surgery") {
		t.Errorf("prompt %q does not embed the patient info", gen.gotPrompt)
	}
	if !strings.Contains(gen.gotPrompt, "five actionable points") {
		t.Errorf("prompt %q missing the checklist instruction", gen.gotPrompt)
	}
}

func TestGenerate_NormalizesBlankLines(t *testing.T) {
	gen := &fakeGenerator{text: "First item\n\n   \nSecond item\n\t\nThird item\n"}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	items, err := svc.Generate(context.Background(), "case")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"First item", "Second item", "Third item"}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Generate() = %v, want %v", items, want)
	}
}

func TestGenerate_KeepsMarkdownAndWhitespace(t *testing.T) {
	// Items keep their exact text, including markdown markers and leading
	// whitespace; only fully blank lines are dropped.
	gen := &fakeGenerator{text: "**1.** Take your *medication*.\n  - indented item"}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	items, err := svc.Generate(context.Background(), "case")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"**1.** Take your *medication*.", "  - indented item"}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Generate() = %v, want %v", items, want)
	}
}

func TestGenerate_AllBlankResponse(t *testing.T) {
	gen := &fakeGenerator{text: "\n\n   \n"}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	items, err := svc.Generate(context.Background(), "case")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if items == nil {
		t.Fatal("Generate() returned nil slice, want empty")
	}
	if len(items) != 0 {
		t.Errorf("Generate() = %v, want empty", items)
	}
}

func TestGenerate_MissingPatientInfo(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	_, err := svc.Generate(context.Background(), "")
	var vErr *httperr.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Generate(\"\") error = %v, want ValidationError", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on invalid input, want 0", gen.calls)
	}
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("status 503")}
	svc := NewService(&mockRecordRepo{}, gen, zerolog.Nop())

	_, err := svc.Generate(context.Background(), "case")
	var uErr *httperr.UpstreamError
	if !errors.As(err, &uErr) {
		t.Fatalf("Generate() error = %v, want UpstreamError", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want exactly 1 (no retry)", gen.calls)
	}
}

func TestSave(t *testing.T) {
	repo := &mockRecordRepo{}
	svc := NewService(repo, &fakeGenerator{}, zerolog.Nop())

	id, err := svc.Save(context.Background(), "ana@example.com", "pneumonia case", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == uuid.Nil {
		t.Error("Save() returned nil id")
	}
	if len(repo.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(repo.records))
	}
	r := repo.records[0]
	if r.UserID != "ana@example.com" || r.PatientInfo != "pneumonia case" {
		t.Errorf("stored record = %+v", r)
	}
	if r.Timestamp.IsZero() {
		t.Error("stored record has zero timestamp")
	}
}

func TestSave_EmptyChecklistAllowed(t *testing.T) {
	repo := &mockRecordRepo{}
	svc := NewService(repo, &fakeGenerator{}, zerolog.Nop())

	// A present-but-empty list is valid; only a missing list is rejected.
	if _, err := svc.Save(context.Background(), "ana@example.com", "case", []string{}); err != nil {
		t.Errorf("Save(empty list) error = %v, want nil", err)
	}
}

func TestSave_MissingFields(t *testing.T) {
	svc := NewService(&mockRecordRepo{}, &fakeGenerator{}, zerolog.Nop())

	cases := []struct {
		name        string
		userID      string
		patientInfo string
		items       []string
	}{
		{"no user", "", "case", []string{"a"}},
		{"no patient info", "ana@example.com", "", []string{"a"}},
		{"no checklist", "ana@example.com", "case", nil},
	}
	for _, tc := range cases {
		_, err := svc.Save(context.Background(), tc.userID, tc.patientInfo, tc.items)
		var vErr *httperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Save(%s) error = %v, want ValidationError", tc.name, err)
		}
	}
}

func TestSave_StorageFailure(t *testing.T) {
	repo := &mockRecordRepo{insertErr: errors.New("connection refused")}
	svc := NewService(repo, &fakeGenerator{}, zerolog.Nop())

	_, err := svc.Save(context.Background(), "ana@example.com", "case", []string{"a"})
	var sErr *httperr.StorageError
	if !errors.As(err, &sErr) {
		t.Fatalf("Save() error = %v, want StorageError", err)
	}
	if sErr.Msg != "Failed to save checklist" {
		t.Errorf("message = %q, want %q", sErr.Msg, "Failed to save checklist")
	}
}

func TestListByUser(t *testing.T) {
	repo := &mockRecordRepo{}
	svc := NewService(repo, &fakeGenerator{}, zerolog.Nop())

	for _, info := range []string{"first case", "second case", "third case"} {
		if _, err := svc.Save(context.Background(), "ana@example.com", info, []string{"x"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if _, err := svc.Save(context.Background(), "bob@example.com", "other case", []string{"x"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := svc.ListByUser(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListByUser() returned %d records, want 3", len(records))
	}
	// Newest first.
	if records[0].PatientInfo != "third case" || records[2].PatientInfo != "first case" {
		t.Errorf("records out of order: %q ... %q", records[0].PatientInfo, records[2].PatientInfo)
	}
	for _, r := range records {
		if r.UserID != "ana@example.com" {
			t.Errorf("record for %q leaked into ana's list", r.UserID)
		}
	}
}

func TestListByUser_Empty(t *testing.T) {
	svc := NewService(&mockRecordRepo{}, &fakeGenerator{}, zerolog.Nop())

	records, err := svc.ListByUser(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if records == nil {
		t.Fatal("ListByUser() returned nil, want empty slice")
	}
	if len(records) != 0 {
		t.Errorf("ListByUser() returned %d records, want 0", len(records))
	}
}

func TestListByUser_StorageFailure(t *testing.T) {
	repo := &mockRecordRepo{listErr: errors.New("connection refused")}
	svc := NewService(repo, &fakeGenerator{}, zerolog.Nop())

	_, err := svc.ListByUser(context.Background(), "ana@example.com")
	var sErr *httperr.StorageError
	if !errors.As(err, &sErr) {
		t.Errorf("ListByUser() error = %v, want StorageError", err)
	}
}
