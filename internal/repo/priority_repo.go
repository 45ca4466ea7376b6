// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Priority
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they work
// the same on the root handle and inside a transaction. They follow the
// "thin repository" approach: no business rules, only persistence and query
// composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// nextID returns max(id)+1 for the table behind model, or 1 when it is empty.
// Callers must run it in the same transaction as the insert that uses it.
func nextID(ctx context.Context, db *gorm.DB, model any) (uint, error) {
	var maxID uint
	if err := db.WithContext(ctx).Model(model).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// NextPriorityID returns the id the next inserted priority should use.
func NextPriorityID(ctx context.Context, db *gorm.DB) (uint, error) {
	return nextID(ctx, db, &domain.Priority{})
}

// ListPriorities returns every priority in id (insertion) order.
func ListPriorities(ctx context.Context, db *gorm.DB) ([]domain.Priority, error) {
	var out []domain.Priority
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// ListPrioritiesByUser returns a user's priorities in id order.
func ListPrioritiesByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Priority, error) {
	var out []domain.Priority
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// GetPriority fetches a single priority by id, or ErrNotFound.
func GetPriority(ctx context.Context, db *gorm.DB, id uint) (*domain.Priority, error) {
	var p domain.Priority
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePriorities inserts ps as given; ids must already be assigned.
func CreatePriorities(ctx context.Context, db *gorm.DB, ps ...*domain.Priority) error {
	if len(ps) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(ps).Error
}

// SavePriority writes every column of p, including zero values.
func SavePriority(ctx context.Context, db *gorm.DB, p *domain.Priority) error {
	return db.WithContext(ctx).Save(p).Error
}

// DeletePriority removes the row with id. It returns ErrNotFound when no row
// was affected.
func DeletePriority(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Priority{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
