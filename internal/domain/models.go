// Package domain defines the persistence model for job applications. The
// Application type is mapped with GORM and forms the core data layer of the
// tracker.
package domain

import "time"

// Status is the closed set of lifecycle states a job application can be in.
// Transitions are deliberately unconstrained: an owner may set any status at
// any time.
type Status string

// Allowed application statuses.
const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// Statuses lists every valid Status, in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Application represents a single job application owned by exactly one user.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), generated at creation.
//   - OwnerID: identity of the owning user; set once at creation from the
//     server-resolved identity, never from client input.
//   - CompanyName / PositionTitle: required, bounded text.
//   - Status: member of the Status set; defaults to "applied".
//   - ApplicationDate: calendar date stored as a YYYY-MM-DD string so it has
//     no time-of-day or timezone component.
//   - Notes: optional free text; nil when absent (empty input is normalized
//     to nil).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; UpdatedAt refreshes
//     on every mutation.
//
// Rows are hard-deleted: there is no soft-delete marker, and removal of the
// owning account cascades at the account level outside this service.
type Application struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	OwnerID         string    `json:"owner_id"         gorm:"type:varchar(64);not null;index;index:idx_owner_created,priority:1"`
	CompanyName     string    `json:"company_name"     gorm:"type:varchar(255);not null"`
	PositionTitle   string    `json:"position_title"   gorm:"type:varchar(255);not null"`
	Status          Status    `json:"status"           gorm:"type:varchar(16);not null;default:'applied';check:status IN ('applied','interviewing','offer','rejected','withdrawn')"`
	ApplicationDate string    `json:"application_date" gorm:"type:char(10);not null"`
	Notes           *string   `json:"notes"            gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"       gorm:"index;index:idx_owner_created,priority:2"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "applications" }

// OwnerIdentity returns the identity that owns this row. It satisfies the
// interface the row-level owner policy uses to vet inserts.
func (a *Application) OwnerIdentity() string { return a.OwnerID }

// ApplicationUpdate describes a partial update to an Application. Each
// pointer distinguishes "leave unchanged" (nil) from "set to this value"
// (non-nil). For Notes, a non-nil pointer to the empty string means
// "clear the notes" and is persisted as NULL.
//
// ID, OwnerID, and timestamps are deliberately absent: they are immutable
// from the caller's point of view.
type ApplicationUpdate struct {
	CompanyName     *string
	PositionTitle   *string
	Status          *Status
	ApplicationDate *string
	Notes           *string
}

// IsZero reports whether the update sets no fields at all.
func (u ApplicationUpdate) IsZero() bool {
	return u.CompanyName == nil &&
		u.PositionTitle == nil &&
		u.Status == nil &&
		u.ApplicationDate == nil &&
		u.Notes == nil
}
