package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

// ListUsers returns the roster ordered by id.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUsers inserts the given users.
func CreateUsers(ctx context.Context, db *gorm.DB, us ...*domain.User) error {
	if len(us) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(us).Error
}
