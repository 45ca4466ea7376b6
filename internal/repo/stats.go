// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TableStats returns the number of rows of model matching the optional
// where clause, and the greatest UpdatedAt among them. maxUpdatedAt is nil
// when no row matches.
//
//	n, at, err := repo.TableStats(ctx, db, &domain.Priority{}, "user_id = ?", userID)
func TableStats(ctx context.Context, db *gorm.DB, model any, where string, args ...any) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}

	// Count
	if err = q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Session(&gorm.Session{}).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
