// Package services – ApplicationService
//
// This file implements the ApplicationService, which manages the lifecycle of
// job applications. It confirms a resolved identity before touching storage,
// validates and normalizes input fields, and coordinates repository
// operations for creating, listing, fetching, partially updating, and
// deleting applications.
//
// Service-level errors (ErrUnauthenticated, ErrApplicationNotFound,
// ErrEmptyUpdate, *ValidationError) are returned for predictable cases so
// handlers can map them to HTTP results consistently; anything else is a
// storage failure the handler must report opaquely.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/avasquez/go-apptrack-backend/internal/domain"
)

// Input length caps, in runes.
const (
	MaxCompanyLen  = 255
	MaxPositionLen = 255
	MaxNotesLen    = 4000
)

// dateLayout is the only accepted application_date format. Dates carry no
// time-of-day or timezone component.
const dateLayout = "2006-01-02"

// ApplicationRepo defines the repository contract required by
// ApplicationService. Implementations are responsible for persistence of
// application rows, with every operation scoped to the given owner.
type ApplicationRepo interface {
	// CreateApplication inserts a new application row for the given owner.
	CreateApplication(ctx context.Context, db *gorm.DB, ownerID string, app domain.Application) (*domain.Application, error)

	// ListApplications returns all applications belonging to the owner,
	// newest first.
	ListApplications(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Application, error)

	// GetApplication fetches an application by ID, ensuring it belongs to
	// the owner.
	GetApplication(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Application, error)

	// UpdateApplication applies a partial update to an owned application.
	UpdateApplication(ctx context.Context, db *gorm.DB, id, ownerID string, upd domain.ApplicationUpdate) (*domain.Application, error)

	// DeleteApplication removes an owned application.
	DeleteApplication(ctx context.Context, db *gorm.DB, id, ownerID string) error
}

// ApplicationService provides the use-cases around application records. It
// enforces the identity-first rule (no storage access without a resolved
// user) and input validation; ownership scoping is delegated to the
// repository and, independently, to the row-level owner policy on the DB
// handle.
type ApplicationService struct {
	// DB is the GORM handle used for persistence. It must carry the
	// owner-policy plugin.
	DB *gorm.DB
	// Repo is the application repository used by this service.
	Repo ApplicationRepo
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(db *gorm.DB, r ApplicationRepo) *ApplicationService {
	return &ApplicationService{DB: db, Repo: r}
}

// CreateApplicationInput carries the caller-supplied fields for Create.
// There is deliberately no owner or id field: both are assigned server-side.
type CreateApplicationInput struct {
	CompanyName     string
	PositionTitle   string
	ApplicationDate string
	Status          string
	Notes           string
}

// Create validates in and inserts a new application owned by userID. Status
// defaults to "applied" when empty; empty notes are normalized to absent
// (NULL). It returns the persisted record including generated id and
// timestamps.
func (s *ApplicationService) Create(ctx context.Context, userID string, in CreateApplicationInput) (*domain.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	fields := map[string]string{}
	company := cleanText(in.CompanyName)
	validateRequiredText(fields, "company_name", company, MaxCompanyLen)
	position := cleanText(in.PositionTitle)
	validateRequiredText(fields, "position_title", position, MaxPositionLen)

	date := strings.TrimSpace(in.ApplicationDate)
	if err := validateDate(date); err != nil {
		fields["application_date"] = err.Error()
	}

	status := domain.Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.StatusApplied
	}
	if !status.IsValid() {
		fields["status"] = fmt.Sprintf("must be one of %s", statusList())
	}

	notes, notesErr := cleanNotes(in.Notes)
	if notesErr != "" {
		fields["notes"] = notesErr
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return s.Repo.CreateApplication(ctx, s.DB, userID, domain.Application{
		CompanyName:     company,
		PositionTitle:   position,
		Status:          status,
		ApplicationDate: date,
		Notes:           notes,
	})
}

// List returns all applications for userID, newest first. A user with zero
// applications gets an empty slice, never an error.
func (s *ApplicationService) List(ctx context.Context, userID string) ([]domain.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.Repo.ListApplications(ctx, s.DB, userID)
}

// Get fetches a single application owned by userID. A record that exists
// under another owner yields ErrApplicationNotFound, indistinguishable from
// a record that does not exist.
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*domain.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	a, err := s.Repo.GetApplication(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update applies the set fields of upd to an application owned by userID and
// returns the refreshed record. An update setting no fields is rejected with
// ErrEmptyUpdate rather than silently succeeding.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, upd domain.ApplicationUpdate) (*domain.Application, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if upd.IsZero() {
		return nil, ErrEmptyUpdate
	}

	fields := map[string]string{}
	if upd.CompanyName != nil {
		v := cleanText(*upd.CompanyName)
		validateRequiredText(fields, "company_name", v, MaxCompanyLen)
		upd.CompanyName = &v
	}
	if upd.PositionTitle != nil {
		v := cleanText(*upd.PositionTitle)
		validateRequiredText(fields, "position_title", v, MaxPositionLen)
		upd.PositionTitle = &v
	}
	if upd.ApplicationDate != nil {
		v := strings.TrimSpace(*upd.ApplicationDate)
		if err := validateDate(v); err != nil {
			fields["application_date"] = err.Error()
		}
		upd.ApplicationDate = &v
	}
	if upd.Status != nil && !upd.Status.IsValid() {
		fields["status"] = fmt.Sprintf("must be one of %s", statusList())
	}
	if upd.Notes != nil {
		v := cleanText(*upd.Notes)
		if utf8.RuneCountInString(v) > MaxNotesLen {
			fields["notes"] = fmt.Sprintf("must be at most %d characters", MaxNotesLen)
		}
		upd.Notes = &v
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	a, err := s.Repo.UpdateApplication(ctx, s.DB, id, userID, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return a, nil
}

// Delete hard-deletes an application owned by userID, with the same
// not-found merging as Get.
func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.Repo.DeleteApplication(ctx, s.DB, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}
	return nil
}

// cleanText trims surrounding whitespace and applies Unicode NFC
// normalization so equivalent inputs compare and store identically.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// cleanNotes normalizes notes input; empty input means "absent" and maps to
// nil. The second return value is a validation message, empty when valid.
func cleanNotes(s string) (*string, string) {
	v := cleanText(s)
	if v == "" {
		return nil, ""
	}
	if utf8.RuneCountInString(v) > MaxNotesLen {
		return nil, fmt.Sprintf("must be at most %d characters", MaxNotesLen)
	}
	return &v, ""
}

// validateRequiredText records a field error when v is empty or exceeds the
// rune cap.
func validateRequiredText(fields map[string]string, name, v string, maxLen int) {
	if v == "" {
		fields[name] = "is required"
		return
	}
	if utf8.RuneCountInString(v) > maxLen {
		fields[name] = fmt.Sprintf("must be at most %d characters", maxLen)
	}
}

// validateDate enforces the strict YYYY-MM-DD calendar-date format, rejecting
// both unparsable values and non-canonical spellings like "2026-1-5".
func validateDate(v string) error {
	if v == "" {
		return errors.New("is required")
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil || t.Format(dateLayout) != v {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}

// statusList renders the valid statuses for validation messages.
func statusList() string {
	out := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}
