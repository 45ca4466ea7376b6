package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
)

func TestPriorityService_Create_Defaults(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	p, err := s.Create(ctx, NewPriority{Title: "  Ship release  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != 1 || p.Title != "Ship release" || p.Status != domain.StatusTodo ||
		p.UserID != DefaultUserID || p.Date != "2026-10-15" || p.CompletedAt != nil {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if !p.CreatedAt.Equal(refNow) {
		t.Fatalf("createdAt = %v; want %v", p.CreatedAt, refNow)
	}

	p2, err := s.Create(ctx, NewPriority{Title: "Done already", Status: domain.StatusDone, Date: "2026-10-14", UserID: "user-2"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p2.ID != 2 || p2.CompletedAt == nil || p2.Date != "2026-10-14" {
		t.Fatalf("unexpected record: %+v", p2)
	}
}

func TestPriorityService_Create_Validation(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	cases := []struct {
		in   NewPriority
		want error
	}{
		{NewPriority{Title: "   "}, ErrEmptyTitle},
		{NewPriority{Title: "x", Status: "archived"}, ErrInvalidStatus},
		{NewPriority{Title: "x", Date: "15/10/2026"}, ErrInvalidDate},
	}
	for _, tc := range cases {
		_, err := s.Create(ctx, tc.in)
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrValidation) {
			t.Errorf("Create(%+v) = %v; want %v", tc.in, err, tc.want)
		}
	}
}

func TestPriorityService_CreateMultiple_SequentialIDs(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	if _, err := s.Create(ctx, NewPriority{Title: "existing"}); err != nil {
		t.Fatal(err)
	}
	out, err := s.CreateMultiple(ctx, []domain.PriorityInput{
		{Title: "a", Description: "first"},
		{Title: "b"},
		{Title: "c"},
	}, "user-3")
	if err != nil {
		t.Fatalf("CreateMultiple: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d priorities", len(out))
	}
	for i, p := range out {
		if p.ID != uint(i+2) || p.Status != domain.StatusTodo || p.UserID != "user-3" || p.Date != "2026-10-15" {
			t.Fatalf("out[%d] = %+v", i, p)
		}
	}
	if out[0].Description != "first" || out[1].Description != "" {
		t.Fatalf("descriptions not carried: %+v", out)
	}

	all, _ := s.GetAll(ctx)
	if len(all) != 4 {
		t.Fatalf("GetAll = %d rows", len(all))
	}
}

func TestPriorityService_Update_RecomputesCompletedAt(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	p, _ := s.Create(ctx, NewPriority{Title: "t"})
	done := domain.StatusDone
	got, err := s.Update(ctx, p.ID, PriorityPatch{Status: &done})
	if err != nil || got.CompletedAt == nil {
		t.Fatalf("Update to done = (%+v, %v)", got, err)
	}

	// A patch without status keeps the status and keeps the invariant.
	got, err = s.Update(ctx, p.ID, PriorityPatch{Title: strp("renamed")})
	if err != nil || got.Status != domain.StatusDone || got.CompletedAt == nil || got.Title != "renamed" {
		t.Fatalf("title-only update = (%+v, %v)", got, err)
	}

	blocked := domain.StatusBlocked
	got, err = s.Update(ctx, p.ID, PriorityPatch{Status: &blocked})
	if err != nil || got.CompletedAt != nil {
		t.Fatalf("Update to blocked = (%+v, %v)", got, err)
	}

	stored, _ := s.GetByID(ctx, p.ID)
	if stored.Status != domain.StatusBlocked || stored.CompletedAt != nil {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestPriorityService_NotFound(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	if _, err := s.GetByID(ctx, 42); !errors.Is(err, ErrPriorityNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID = %v", err)
	}
	if _, err := s.Update(ctx, 42, PriorityPatch{}); !errors.Is(err, ErrPriorityNotFound) {
		t.Fatalf("Update = %v", err)
	}
	if _, err := s.Delete(ctx, 42); !errors.Is(err, ErrPriorityNotFound) {
		t.Fatalf("Delete = %v", err)
	}
	if _, err := s.CycleStatus(ctx, 42); !errors.Is(err, ErrPriorityNotFound) {
		t.Fatalf("CycleStatus = %v", err)
	}
}

func TestPriorityService_Delete_ReturnsRecordAndNextIDUsesMax(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	a, _ := s.Create(ctx, NewPriority{Title: "a"})
	b, _ := s.Create(ctx, NewPriority{Title: "b"})

	del, err := s.Delete(ctx, b.ID)
	if err != nil || del.Title != "b" {
		t.Fatalf("Delete = (%+v, %v)", del, err)
	}
	c, _ := s.Create(ctx, NewPriority{Title: "c"})
	if c.ID != a.ID+1 {
		t.Fatalf("next id after deleting max = %d; want %d", c.ID, a.ID+1)
	}
}

func TestPriorityService_CycleStatus(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	p, _ := s.Create(ctx, NewPriority{Title: "cycle me"})
	want := []domain.Status{domain.StatusInProgress, domain.StatusDone, domain.StatusTodo}
	for _, w := range want {
		got, err := s.CycleStatus(ctx, p.ID)
		if err != nil {
			t.Fatalf("CycleStatus: %v", err)
		}
		if got.Status != w || (got.CompletedAt != nil) != (w == domain.StatusDone) {
			t.Fatalf("cycle → %+v; want %s", got, w)
		}
	}

	blocked := domain.StatusBlocked
	if _, err := s.Update(ctx, p.ID, PriorityPatch{Status: &blocked}); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.CycleStatus(ctx, p.ID); got.Status != domain.StatusTodo {
		t.Fatalf("blocked cycles to %s; want todo", got.Status)
	}
}

func TestPriorityService_CycleStatus_ConcurrentStepsAllLand(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()
	p, _ := s.Create(ctx, NewPriority{Title: "busy"})

	// five steps from todo: in-progress, done, todo, in-progress, done
	const steps = 5
	var wg sync.WaitGroup
	errs := make(chan error, steps)
	for i := 0; i < steps; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.CycleStatus(ctx, p.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("CycleStatus: %v", err)
	}

	got, err := s.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusDone || got.CompletedAt == nil {
		t.Fatalf("after %d concurrent cycles status = %s; want done", steps, got.Status)
	}
}

func TestPriorityService_Search(t *testing.T) {
	s := NewPriorityService(newTestDB(t), fixedCal(), nil)
	ctx := context.Background()

	_, _ = s.Create(ctx, NewPriority{Title: "Finalize quarterly roadmap", UserID: "user-1"})
	_, _ = s.Create(ctx, NewPriority{Title: "Roadmap review", UserID: "user-2"})
	_, _ = s.Create(ctx, NewPriority{Title: "Fix login bug", UserID: "user-1"})

	mine, err := s.Search(ctx, "user-1", "roadmap", 10)
	if err != nil || len(mine) != 1 || mine[0].ID != 1 {
		t.Fatalf("Search(user-1) = (%+v, %v)", mine, err)
	}
	all, _ := s.Search(ctx, "", "roadmap", 10)
	if len(all) != 2 {
		t.Fatalf("Search(all) = %+v", all)
	}
}

func TestPriorityService_WithTx_RollsBack(t *testing.T) {
	db := newTestDB(t)
	s := NewPriorityService(db, fixedCal(), nil)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.WithTx(tx).Create(ctx, NewPriority{Title: "inside"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("transaction err = %v", err)
	}
	if all, _ := s.GetAll(ctx); len(all) != 0 {
		t.Fatalf("rolled-back insert is visible: %+v", all)
	}
}
