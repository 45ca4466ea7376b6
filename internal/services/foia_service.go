// Package services – FOIAService
//
// FOIAService files and tracks public-records (freedom of information)
// requests. It assigns ids from a counter that never reuses a value, issues
// reference numbers of the form FOIA-<year>-<6 base36 chars>, and derives the
// statutory due date from the urgency tier.
//
// Ids arrive from the transport as strings; a non-numeric id is reported as
// ErrInvalidID before any lookup happens.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/latency"
	"github.com/tbourn/priority-radar/internal/observability"
	"github.com/tbourn/priority-radar/internal/repo"
)

const foiaTracer = "services/FOIAService"

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewFOIARequest is the request form as submitted.
type NewFOIARequest struct {
	RequestTitle       string               `json:"requestTitle"`
	RequestDescription string               `json:"requestDescription"`
	SpecificDocuments  string               `json:"specificDocuments"`
	AuthorityType      domain.AuthorityType `json:"authorityType"`
	AuthorityName      string               `json:"authorityName"`
	ContactName        string               `json:"contactName"`
	ContactEmail       string               `json:"contactEmail"`
	ContactPhone       string               `json:"contactPhone"`
	Urgency            domain.Urgency       `json:"urgency"`
	Purpose            domain.Purpose       `json:"purpose"`
}

// FOIAPatch lists the fields an update may change. Nil fields are kept.
// Changing Urgency moves the due date to match the new tier.
type FOIAPatch struct {
	RequestTitle       *string                `json:"requestTitle"`
	RequestDescription *string                `json:"requestDescription"`
	SpecificDocuments  *string                `json:"specificDocuments"`
	AuthorityType      *domain.AuthorityType  `json:"authorityType"`
	AuthorityName      *string                `json:"authorityName"`
	ContactName        *string                `json:"contactName"`
	ContactEmail       *string                `json:"contactEmail"`
	ContactPhone       *string                `json:"contactPhone"`
	Urgency            *domain.Urgency        `json:"urgency"`
	Purpose            *domain.Purpose        `json:"purpose"`
	Status             *domain.RequestStatus  `json:"status"`
	Responses          *[]domain.FOIAResponse `json:"responses"`
}

// FOIAService manages public-records requests.
type FOIAService struct {
	DB    *gorm.DB
	Cal   *calendar.Calendar
	Delay latency.Delayer

	// Rand feeds reference-number generation; nil uses crypto/rand.
	Rand io.Reader
}

// NewFOIAService constructs a FOIAService.
func NewFOIAService(db *gorm.DB, cal *calendar.Calendar, delay latency.Delayer) *FOIAService {
	if cal == nil {
		cal = calendar.Default()
	}
	return &FOIAService{DB: db, Cal: cal, Delay: latency.OrNone(delay)}
}

func (s *FOIAService) wait(ctx context.Context) error {
	return latency.OrNone(s.Delay).Wait(ctx)
}

// DaysFor returns the response window in days for urgency.
func DaysFor(u domain.Urgency) int { return u.ResponseDays() }

// DueDate is submission plus the urgency tier's response window, counted in
// calendar days.
func DueDate(submission time.Time, u domain.Urgency) time.Time {
	return submission.AddDate(0, 0, DaysFor(u))
}

// ParseID converts a transport id into a numeric request id.
func ParseID(idStr string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ReferenceNumber formats FOIA-<year>-<6 uppercase base36 chars> using
// bytes from r.
func ReferenceNumber(r io.Reader, year int) (string, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return fmt.Sprintf("FOIA-%d-%s", year, buf), nil
}

// GetAll returns every request in id order.
func (s *FOIAService) GetAll(ctx context.Context) (out []domain.FOIARequest, err error) {
	ctx, span := observability.StartSpan(ctx, foiaTracer, "GetAll")
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	return repo.ListFOIARequests(ctx, s.DB)
}

// GetByID returns the request with idStr.
func (s *FOIAService) GetByID(ctx context.Context, idStr string) (r *domain.FOIARequest, err error) {
	ctx, span := observability.StartSpan(ctx, foiaTracer, "GetByID", attribute.String("foia.id", idStr))
	defer func() { observability.EndSpan(span, err) }()

	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	r, err = repo.GetFOIARequest(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	return r, err
}

// Create validates the form and files a new request.
func (s *FOIAService) Create(ctx context.Context, in NewFOIARequest) (r *domain.FOIARequest, err error) {
	ctx, span := observability.StartSpan(ctx, foiaTracer, "Create", attribute.String("foia.urgency", string(in.Urgency)))
	defer func() { observability.EndSpan(span, err) }()

	in = trimForm(in)
	if in.Urgency == "" {
		in.Urgency = domain.UrgencyNormal
	}
	if in.Purpose == "" {
		in.Purpose = domain.PurposePersonal
	}
	if err = validateForm(in); err != nil {
		return nil, err
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.Cal.Now()
	src := s.Rand
	if src == nil {
		src = rand.Reader
	}
	ref, err := ReferenceNumber(src, now.Year())
	if err != nil {
		return nil, fmt.Errorf("reference number: %w", err)
	}

	r = &domain.FOIARequest{
		ReferenceNumber:    ref,
		RequestTitle:       in.RequestTitle,
		RequestDescription: in.RequestDescription,
		SpecificDocuments:  in.SpecificDocuments,
		AuthorityType:      in.AuthorityType,
		AuthorityName:      in.AuthorityName,
		ContactName:        in.ContactName,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		Urgency:            in.Urgency,
		Purpose:            in.Purpose,
		Status:             domain.RequestSubmitted,
		SubmissionDate:     now,
		DueDate:            DueDate(now, in.Urgency),
		Responses:          []domain.FOIAResponse{},
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := repo.NextFOIAID(ctx, tx)
		if err != nil {
			return err
		}
		r.ID = id
		return repo.CreateFOIARequest(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	observability.FOIARequests.WithLabelValues(string(r.Urgency)).Inc()
	return r, nil
}

// Update merges patch into the request with idStr.
func (s *FOIAService) Update(ctx context.Context, idStr string, patch FOIAPatch) (r *domain.FOIARequest, err error) {
	ctx, span := observability.StartSpan(ctx, foiaTracer, "Update", attribute.String("foia.id", idStr))
	defer func() { observability.EndSpan(span, err) }()

	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetFOIARequest(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		if err := applyFOIAPatch(cur, patch); err != nil {
			return err
		}
		r = cur
		return repo.SaveFOIARequest(ctx, tx, cur)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the request with idStr and returns it as it was. Its id is
// never handed out again.
func (s *FOIAService) Delete(ctx context.Context, idStr string) (r *domain.FOIARequest, err error) {
	ctx, span := observability.StartSpan(ctx, foiaTracer, "Delete", attribute.String("foia.id", idStr))
	defer func() { observability.EndSpan(span, err) }()

	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetFOIARequest(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		r = cur
		return repo.DeleteFOIARequest(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func trimForm(in NewFOIARequest) NewFOIARequest {
	in.RequestTitle = strings.TrimSpace(in.RequestTitle)
	in.RequestDescription = strings.TrimSpace(in.RequestDescription)
	in.SpecificDocuments = strings.TrimSpace(in.SpecificDocuments)
	in.AuthorityName = strings.TrimSpace(in.AuthorityName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	return in
}

func validateForm(in NewFOIARequest) error {
	required := []struct{ field, value string }{
		{"requestTitle", in.RequestTitle},
		{"requestDescription", in.RequestDescription},
		{"authorityType", string(in.AuthorityType)},
		{"authorityName", in.AuthorityName},
		{"contactName", in.ContactName},
		{"contactEmail", in.ContactEmail},
	}
	for _, r := range required {
		if r.value == "" {
			return fieldError(r.field, "is required")
		}
	}
	if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
		return fieldError("contactEmail", "is not a valid address")
	}
	if !in.AuthorityType.Valid() {
		return fieldError("authorityType", "is unknown")
	}
	if !in.Urgency.Valid() {
		return fieldError("urgency", "is unknown")
	}
	if !in.Purpose.Valid() {
		return fieldError("purpose", "is unknown")
	}
	return nil
}

func applyFOIAPatch(r *domain.FOIARequest, p FOIAPatch) error {
	setText := func(dst *string, src *string, field string, required bool) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if required && v == "" {
			return fieldError(field, "is required")
		}
		*dst = v
		return nil
	}
	if err := setText(&r.RequestTitle, p.RequestTitle, "requestTitle", true); err != nil {
		return err
	}
	if err := setText(&r.RequestDescription, p.RequestDescription, "requestDescription", true); err != nil {
		return err
	}
	if err := setText(&r.SpecificDocuments, p.SpecificDocuments, "specificDocuments", false); err != nil {
		return err
	}
	if err := setText(&r.AuthorityName, p.AuthorityName, "authorityName", true); err != nil {
		return err
	}
	if err := setText(&r.ContactName, p.ContactName, "contactName", true); err != nil {
		return err
	}
	if err := setText(&r.ContactPhone, p.ContactPhone, "contactPhone", false); err != nil {
		return err
	}
	if p.ContactEmail != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*p.ContactEmail)); err != nil {
			return fieldError("contactEmail", "is not a valid address")
		}
		r.ContactEmail = strings.TrimSpace(*p.ContactEmail)
	}
	if p.AuthorityType != nil {
		if !p.AuthorityType.Valid() {
			return fieldError("authorityType", "is unknown")
		}
		r.AuthorityType = *p.AuthorityType
	}
	if p.Purpose != nil {
		if !p.Purpose.Valid() {
			return fieldError("purpose", "is unknown")
		}
		r.Purpose = *p.Purpose
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return fieldError("status", "is unknown")
		}
		r.Status = *p.Status
	}
	if p.Urgency != nil {
		if !p.Urgency.Valid() {
			return fieldError("urgency", "is unknown")
		}
		r.Urgency = *p.Urgency
		r.DueDate = DueDate(r.SubmissionDate, r.Urgency)
	}
	if p.Responses != nil {
		r.Responses = append([]domain.FOIAResponse{}, (*p.Responses)...)
	}
	return nil
}
