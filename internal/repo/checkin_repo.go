package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

// NextCheckInID returns the id the next inserted check-in should use.
func NextCheckInID(ctx context.Context, db *gorm.DB) (uint, error) {
	return nextID(ctx, db, &domain.CheckIn{})
}

// ListCheckIns returns every check-in in id order.
func ListCheckIns(ctx context.Context, db *gorm.DB) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// ListCheckInsByUser returns a user's check-ins in id order.
func ListCheckInsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// GetCheckIn fetches a check-in by id, or ErrNotFound.
func GetCheckIn(ctx context.Context, db *gorm.DB, id uint) (*domain.CheckIn, error) {
	var c domain.CheckIn
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCheckIn returns the first check-in a user made on day, or ErrNotFound.
func FindCheckIn(ctx context.Context, db *gorm.DB, userID, day string) (*domain.CheckIn, error) {
	var c domain.CheckIn
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Order("id ASC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCheckIn inserts c; its id must already be assigned.
func CreateCheckIn(ctx context.Context, db *gorm.DB, c *domain.CheckIn) error {
	return db.WithContext(ctx).Create(c).Error
}

// SaveCheckIn writes every column of c.
func SaveCheckIn(ctx context.Context, db *gorm.DB, c *domain.CheckIn) error {
	return db.WithContext(ctx).Save(c).Error
}

// DeleteCheckIn removes the row with id, or returns ErrNotFound.
func DeleteCheckIn(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.CheckIn{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LastCheckInDays maps each user id to the latest day they checked in.
// Days are YYYY-MM-DD strings, so MAX() orders them chronologically.
func LastCheckInDays(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var rows []struct {
		UserID string
		Day    string
	}
	err := db.WithContext(ctx).Model(&domain.CheckIn{}).
		Select("user_id, MAX(date) AS day").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Day
	}
	return out, nil
}

// HasCheckIn reports whether the user already checked in on day.
func HasCheckIn(ctx context.Context, db *gorm.DB, userID, day string) (bool, error) {
	_, err := FindCheckIn(ctx, db, userID, day)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
