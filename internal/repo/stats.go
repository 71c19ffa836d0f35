// Package repo implements the data persistence layer for the application
// tracker, backed by GORM. This file provides small aggregate queries used
// for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avasquez/go-apptrack-backend/internal/domain"
)

// ApplicationsStats returns aggregate metadata for an owner's applications:
// the total number of rows and the maximum UpdatedAt timestamp among them.
//
// It executes two lightweight queries scoped to ownerID. When the owner has
// no applications, the returned count is 0 and maxUpdatedAt is nil.
func ApplicationsStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	err = db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest updated_at; ORDER BY + LIMIT avoids MAX() -> TEXT in SQLite.
	var row struct {
		UpdatedAt time.Time
	}
	err = db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("owner_id = ?", ownerID).
		Select("updated_at").
		Order("updated_at DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
