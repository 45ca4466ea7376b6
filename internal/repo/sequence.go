package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

// NextSequence advances the named counter and returns its new value. The
// counter never drops below floor, so the first call on a table that already
// holds rows continues after them.
func NextSequence(ctx context.Context, db *gorm.DB, name string, floor uint) (uint, error) {
	var next uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.Sequence
		err := tx.First(&seq, "name = ?", name).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = domain.Sequence{Name: name}
		case err != nil:
			return err
		}
		if seq.Value < floor {
			seq.Value = floor
		}
		seq.Value++
		next = seq.Value
		return tx.Save(&seq).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
