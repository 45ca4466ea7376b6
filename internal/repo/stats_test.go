package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/priority-radar/internal/domain"
)

func TestTableStats_CountError_NoTable(t *testing.T) {
	db := emptyDB(t)
	_, _, err := TableStats(context.Background(), db, &domain.Priority{}, "")
	if err == nil {
		t.Fatalf("expected error due to missing priorities table")
	}
}

func TestTableStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.Priority{})
	count, maxAt, err := TableStats(context.Background(), db, &domain.Priority{}, "user_id = ?", "u1")
	if err != nil {
		t.Fatalf("TableStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestTableStats_FilterAndMax(t *testing.T) {
	db := newTestDB(t, &domain.Priority{})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for u1
	t3 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)   // other user

	rows := []*domain.Priority{
		{ID: 1, Title: "a", UserID: "u1", Date: "2025-01-02", Status: domain.StatusTodo, CreatedAt: t1, UpdatedAt: t1},
		{ID: 2, Title: "b", UserID: "u1", Date: "2025-03-04", Status: domain.StatusTodo, CreatedAt: t2, UpdatedAt: t2},
		{ID: 3, Title: "x", UserID: "u2", Date: "2025-05-01", Status: domain.StatusTodo, CreatedAt: t3, UpdatedAt: t3},
	}
	// Non-zero timestamps are kept as set on create.
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %d: %v", r.ID, err)
		}
	}

	count, maxAt, err := TableStats(context.Background(), db, &domain.Priority{}, "user_id = ?", "u1")
	if err != nil {
		t.Fatalf("TableStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", t2, maxAt)
	}

	all, maxAll, err := TableStats(context.Background(), db, &domain.Priority{}, "")
	if err != nil || all != 3 || maxAll == nil || !maxAll.Equal(t3) {
		t.Fatalf("unfiltered stats = (%d, %v, %v)", all, maxAll, err)
	}
}

// Force the second query (SELECT updated_at ...) to fail by renaming the column.
func TestTableStats_SelectLatest_ErrorPath(t *testing.T) {
	db := newTestDB(t, &domain.Priority{})
	if err := db.Create(&domain.Priority{ID: 1, Title: "x", UserID: "uerr", Date: "2025-01-01", Status: domain.StatusTodo}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Exec(`ALTER TABLE priorities RENAME COLUMN updated_at TO updated_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}
	if _, _, err := TableStats(context.Background(), db, &domain.Priority{}, "user_id = ?", "uerr"); err == nil {
		t.Fatalf("expected error from latest-updated select after column rename")
	}
}
