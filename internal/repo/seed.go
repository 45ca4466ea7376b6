package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
)

//go:embed seed/default.json
var defaultSeed []byte

// Dataset is the on-disk shape of a seed file. Day fields accept either a
// literal YYYY-MM-DD or a relative expression such as "today" or "today-2",
// resolved against the calendar at seeding time.
type Dataset struct {
	Users        []domain.User     `json:"users" yaml:"users"`
	Priorities   []SeedPriority    `json:"priorities" yaml:"priorities"`
	CheckIns     []SeedCheckIn     `json:"checkIns" yaml:"checkIns"`
	FOIARequests []SeedFOIARequest `json:"foiaRequests" yaml:"foiaRequests"`
}

// SeedPriority is a priority row in a Dataset.
type SeedPriority struct {
	ID          uint   `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
	UserID      string `json:"userId" yaml:"userId"`
	Date        string `json:"date" yaml:"date"`
}

// SeedCheckIn is a check-in row in a Dataset.
type SeedCheckIn struct {
	ID         uint                   `json:"id" yaml:"id"`
	UserID     string                 `json:"userId" yaml:"userId"`
	Date       string                 `json:"date" yaml:"date"`
	Priorities []domain.PriorityInput `json:"priorities" yaml:"priorities"`
	Mood       string                 `json:"mood" yaml:"mood"`
	Note       *string                `json:"note" yaml:"note"`
}

// SeedFOIARequest is a public-records request row in a Dataset.
type SeedFOIARequest struct {
	ID                 uint           `json:"id" yaml:"id"`
	ReferenceNumber    string         `json:"referenceNumber" yaml:"referenceNumber"`
	RequestTitle       string         `json:"requestTitle" yaml:"requestTitle"`
	RequestDescription string         `json:"requestDescription" yaml:"requestDescription"`
	SpecificDocuments  string         `json:"specificDocuments" yaml:"specificDocuments"`
	AuthorityType      string         `json:"authorityType" yaml:"authorityType"`
	AuthorityName      string         `json:"authorityName" yaml:"authorityName"`
	ContactName        string         `json:"contactName" yaml:"contactName"`
	ContactEmail       string         `json:"contactEmail" yaml:"contactEmail"`
	ContactPhone       string         `json:"contactPhone" yaml:"contactPhone"`
	Urgency            string         `json:"urgency" yaml:"urgency"`
	Purpose            string         `json:"purpose" yaml:"purpose"`
	Status             string         `json:"status" yaml:"status"`
	SubmissionDate     string         `json:"submissionDate" yaml:"submissionDate"`
	Responses          []SeedResponse `json:"responses" yaml:"responses"`
}

// SeedResponse is one authority reply in a SeedFOIARequest.
type SeedResponse struct {
	Date string `json:"date" yaml:"date"`
	From string `json:"from" yaml:"from"`
	Body string `json:"body" yaml:"body"`
}

// DefaultDataset returns the dataset compiled into the binary.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(defaultSeed, "json")
}

// LoadDataset reads a seed file. The format follows the extension: .yaml and
// .yml are YAML, anything else is JSON. An empty path yields DefaultDataset.
func LoadDataset(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultDataset()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	d, err := ParseDataset(b, format)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return d, nil
}

// ParseDataset decodes b as "json" or "yaml".
func ParseDataset(b []byte, format string) (*Dataset, error) {
	var d Dataset
	if format == "yaml" {
		// Scalars such as 2026-10-14 keep their source text in string fields.
		if err := yaml.Unmarshal(b, &d); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return &d, nil
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &d, nil
}

// Validate checks d for problems that would break seeding or the domain
// invariants, and returns all of them joined.
func (d *Dataset) Validate(cal *calendar.Calendar) error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	users := map[string]bool{}
	for i, u := range d.Users {
		if strings.TrimSpace(u.ID) == "" {
			add("users[%d]: id is required", i)
		} else if users[u.ID] {
			add("users[%d]: duplicate id %q", i, u.ID)
		}
		users[u.ID] = true
	}

	seen := map[uint]bool{}
	for i, p := range d.Priorities {
		switch {
		case p.ID == 0:
			add("priorities[%d]: id is required", i)
		case seen[p.ID]:
			add("priorities[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Title) == "" {
			add("priorities[%d]: title is required", i)
		}
		if p.Status != "" {
			if _, err := domain.ParseStatus(p.Status); err != nil {
				add("priorities[%d]: %v", i, err)
			}
		}
		if _, err := cal.Resolve(p.Date); err != nil {
			add("priorities[%d]: date: %v", i, err)
		}
	}

	seen = map[uint]bool{}
	for i, c := range d.CheckIns {
		switch {
		case c.ID == 0:
			add("checkIns[%d]: id is required", i)
		case seen[c.ID]:
			add("checkIns[%d]: duplicate id %d", i, c.ID)
		}
		seen[c.ID] = true
		if _, err := domain.ParseMood(c.Mood); err != nil {
			add("checkIns[%d]: %v", i, err)
		}
		if _, err := cal.Resolve(c.Date); err != nil {
			add("checkIns[%d]: date: %v", i, err)
		}
	}

	seen = map[uint]bool{}
	for i, r := range d.FOIARequests {
		switch {
		case r.ID == 0:
			add("foiaRequests[%d]: id is required", i)
		case seen[r.ID]:
			add("foiaRequests[%d]: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true
		if r.Urgency != "" && !domain.Urgency(r.Urgency).Valid() {
			add("foiaRequests[%d]: unknown urgency %q", i, r.Urgency)
		}
		if r.AuthorityType != "" && !domain.AuthorityType(r.AuthorityType).Valid() {
			add("foiaRequests[%d]: unknown authority type %q", i, r.AuthorityType)
		}
		if r.Purpose != "" && !domain.Purpose(r.Purpose).Valid() {
			add("foiaRequests[%d]: unknown purpose %q", i, r.Purpose)
		}
		if r.Status != "" && !domain.RequestStatus(r.Status).Valid() {
			add("foiaRequests[%d]: unknown status %q", i, r.Status)
		}
		if _, err := cal.Resolve(r.SubmissionDate); err != nil {
			add("foiaRequests[%d]: submissionDate: %v", i, err)
		}
	}

	return errors.Join(errs...)
}

// Seed inserts d into every table that is still empty, in one transaction.
// Priorities marked done get a completion time so the completedAt invariant
// holds from the start; request due dates are derived from urgency.
func Seed(ctx context.Context, db *gorm.DB, d *Dataset, cal *calendar.Calendar) error {
	if err := d.Validate(cal); err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &domain.User{}, func() error { return seedUsers(ctx, tx, d.Users) }); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := seedIfEmpty(tx, &domain.Priority{}, func() error { return seedPriorities(ctx, tx, d.Priorities, cal) }); err != nil {
			return fmt.Errorf("seed priorities: %w", err)
		}
		if err := seedIfEmpty(tx, &domain.CheckIn{}, func() error { return seedCheckIns(ctx, tx, d.CheckIns, cal) }); err != nil {
			return fmt.Errorf("seed check-ins: %w", err)
		}
		if err := seedIfEmpty(tx, &domain.FOIARequest{}, func() error { return seedFOIA(ctx, tx, d.FOIARequests, cal) }); err != nil {
			return fmt.Errorf("seed foia requests: %w", err)
		}
		return nil
	})
}

func seedIfEmpty(tx *gorm.DB, model any, fn func() error) error {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return fn()
}

func seedUsers(ctx context.Context, tx *gorm.DB, in []domain.User) error {
	us := make([]*domain.User, 0, len(in))
	for i := range in {
		u := in[i]
		us = append(us, &u)
	}
	return CreateUsers(ctx, tx, us...)
}

// at returns day at the given wall-clock time in the calendar's zone.
func at(cal *calendar.Calendar, day string, hour, min int) (time.Time, error) {
	t, err := cal.Parse(day)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute), nil
}

func seedPriorities(ctx context.Context, tx *gorm.DB, in []SeedPriority, cal *calendar.Calendar) error {
	ps := make([]*domain.Priority, 0, len(in))
	for _, s := range in {
		day, _ := cal.Resolve(s.Date)
		created, err := at(cal, day, 9, 0)
		if err != nil {
			return err
		}
		status := domain.StatusTodo
		if s.Status != "" {
			status, _ = domain.ParseStatus(s.Status)
		}
		p := &domain.Priority{
			ID:          s.ID,
			Title:       strings.TrimSpace(s.Title),
			Description: s.Description,
			Status:      status,
			UserID:      s.UserID,
			Date:        day,
			CreatedAt:   created,
		}
		if status == domain.StatusDone {
			done := created.Add(8 * time.Hour)
			p.CompletedAt = &done
		}
		ps = append(ps, p)
	}
	return CreatePriorities(ctx, tx, ps...)
}

func seedCheckIns(ctx context.Context, tx *gorm.DB, in []SeedCheckIn, cal *calendar.Calendar) error {
	for _, s := range in {
		day, _ := cal.Resolve(s.Date)
		created, err := at(cal, day, 8, 30)
		if err != nil {
			return err
		}
		mood, _ := domain.ParseMood(s.Mood)
		c := &domain.CheckIn{
			ID:         s.ID,
			UserID:     s.UserID,
			Date:       day,
			Priorities: s.Priorities,
			Mood:       mood,
			Note:       s.Note,
			CreatedAt:  created,
		}
		if err := CreateCheckIn(ctx, tx, c); err != nil {
			return err
		}
	}
	return nil
}

func seedFOIA(ctx context.Context, tx *gorm.DB, in []SeedFOIARequest, cal *calendar.Calendar) error {
	for _, s := range in {
		day, _ := cal.Resolve(s.SubmissionDate)
		submitted, err := at(cal, day, 10, 0)
		if err != nil {
			return err
		}
		urgency := domain.Urgency(s.Urgency)
		if urgency == "" {
			urgency = domain.UrgencyNormal
		}
		purpose := domain.Purpose(s.Purpose)
		if purpose == "" {
			purpose = domain.PurposePersonal
		}
		status := domain.RequestStatus(s.Status)
		if status == "" {
			status = domain.RequestSubmitted
		}
		ref := s.ReferenceNumber
		if ref == "" {
			ref = fmt.Sprintf("FOIA-%d-%06d", submitted.Year(), s.ID)
		}
		responses := make([]domain.FOIAResponse, 0, len(s.Responses))
		for _, sr := range s.Responses {
			rd, err := cal.Resolve(sr.Date)
			if err != nil {
				return err
			}
			when, err := at(cal, rd, 12, 0)
			if err != nil {
				return err
			}
			responses = append(responses, domain.FOIAResponse{Date: when, From: sr.From, Body: sr.Body})
		}
		r := &domain.FOIARequest{
			ID:                 s.ID,
			ReferenceNumber:    ref,
			RequestTitle:       s.RequestTitle,
			RequestDescription: s.RequestDescription,
			SpecificDocuments:  s.SpecificDocuments,
			AuthorityType:      domain.AuthorityType(s.AuthorityType),
			AuthorityName:      s.AuthorityName,
			ContactName:        s.ContactName,
			ContactEmail:       s.ContactEmail,
			ContactPhone:       s.ContactPhone,
			Urgency:            urgency,
			Purpose:            purpose,
			Status:             status,
			SubmissionDate:     submitted,
			DueDate:            submitted.AddDate(0, 0, urgency.ResponseDays()),
			Responses:          responses,
		}
		if err := CreateFOIARequest(ctx, tx, r); err != nil {
			return err
		}
	}
	return nil
}
