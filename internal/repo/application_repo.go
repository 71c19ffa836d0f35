// Package repo implements the data persistence layer for the application
// tracker, backed by GORM. This file provides repository functions for the
// Application model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Every query carries an explicit owner filter. That filter is a clarity and
// performance convenience, not the security boundary: the policy.OwnerPolicy
// plugin installed on the DB handle injects the same predicate independently,
// so a mistake here cannot leak or mutate another owner's rows. The handle
// passed in must therefore carry a verified identity in its context (see
// policy.WithIdentity).
//
// Error semantics:
//   - When a row is not found, which deliberately includes rows owned by a
//     different user, functions return gorm.ErrRecordNotFound (exported here
//     as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.), the
//     raw gorm error is propagated; callers translate it before it reaches
//     untrusted clients.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avasquez/go-apptrack-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist or is not
// owned by the caller. It aliases gorm.ErrRecordNotFound for convenience and
// consistency across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateApplication inserts a new application row owned by ownerID. The id is
// a randomly generated UUID (string) and timestamps are set to UTC. Notes may
// be nil. On success, it returns the persisted Application.
func CreateApplication(ctx context.Context, db *gorm.DB, ownerID string, app domain.Application) (*domain.Application, error) {
	now := time.Now().UTC()
	a := &domain.Application{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		CompanyName:     app.CompanyName,
		PositionTitle:   app.PositionTitle,
		Status:          app.Status,
		ApplicationDate: app.ApplicationDate,
		Notes:           app.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListApplications returns all applications belonging to ownerID, ordered by
// creation time descending (most recent first). It returns an empty slice,
// not an error, when the owner has no applications.
func ListApplications(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Application, error) {
	out := []domain.Application{}
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetApplication fetches a single application by its ID and owner. If the
// record does not exist, or exists under a different owner, it returns
// ErrNotFound; the two cases are indistinguishable to the caller.
func GetApplication(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Application, error) {
	var a domain.Application
	err := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateApplication applies the set fields of upd to the application
// identified by id and owned by ownerID, then returns the refreshed row.
// Unset fields are left untouched; a set Notes pointing at the empty string
// clears the column to NULL. If no rows are affected (record missing or not
// owned by ownerID), it returns ErrNotFound.
//
// The caller is responsible for rejecting an empty update before calling.
func UpdateApplication(ctx context.Context, db *gorm.DB, id, ownerID string, upd domain.ApplicationUpdate) (*domain.Application, error) {
	changes := map[string]any{}
	if upd.CompanyName != nil {
		changes["company_name"] = *upd.CompanyName
	}
	if upd.PositionTitle != nil {
		changes["position_title"] = *upd.PositionTitle
	}
	if upd.Status != nil {
		changes["status"] = *upd.Status
	}
	if upd.ApplicationDate != nil {
		changes["application_date"] = *upd.ApplicationDate
	}
	if upd.Notes != nil {
		if *upd.Notes == "" {
			changes["notes"] = nil
		} else {
			changes["notes"] = *upd.Notes
		}
	}
	changes["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetApplication(ctx, db, id, ownerID)
}

// DeleteApplication hard-deletes the application identified by id and owned
// by ownerID. If no rows are affected, it returns ErrNotFound with the same
// non-leakage semantics as GetApplication.
func DeleteApplication(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
