package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

// FOIASequence names the counter that hands out request ids.
const FOIASequence = "foia_requests"

// NextFOIAID returns a fresh request id. Ids come from a persistent counter
// floored at the current max id, so a deleted id is never handed out again.
func NextFOIAID(ctx context.Context, db *gorm.DB) (uint, error) {
	floor, err := nextID(ctx, db, &domain.FOIARequest{})
	if err != nil {
		return 0, err
	}
	return NextSequence(ctx, db, FOIASequence, floor-1)
}

// ListFOIARequests returns every request in id order.
func ListFOIARequests(ctx context.Context, db *gorm.DB) ([]domain.FOIARequest, error) {
	var out []domain.FOIARequest
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// GetFOIARequest fetches a request by id, or ErrNotFound.
func GetFOIARequest(ctx context.Context, db *gorm.DB, id uint) (*domain.FOIARequest, error) {
	var r domain.FOIARequest
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateFOIARequest inserts r; its id must already be assigned.
func CreateFOIARequest(ctx context.Context, db *gorm.DB, r *domain.FOIARequest) error {
	return db.WithContext(ctx).Create(r).Error
}

// SaveFOIARequest writes every column of r.
func SaveFOIARequest(ctx context.Context, db *gorm.DB, r *domain.FOIARequest) error {
	return db.WithContext(ctx).Save(r).Error
}

// DeleteFOIARequest removes the row with id, or returns ErrNotFound.
func DeleteFOIARequest(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.FOIARequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
