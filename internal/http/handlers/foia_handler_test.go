package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/http/middleware"
)

var refNumberRE = regexp.MustCompile(`^FOIA-2026-[0-9A-Z]{6}$`)

func foiaForm(urgency string) map[string]string {
	return map[string]string{
		"requestTitle":       "Road maintenance budget",
		"requestDescription": "Line items for 2025 road works",
		"authorityType":      "municipality",
		"authorityName":      "City of Springfield",
		"contactName":        "Jane Doe",
		"contactEmail":       "jane@example.com",
		"urgency":            urgency,
	}
}

func TestFOIA_CreateDefaultsAndDueDate(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		urgency string
		days    int
	}{
		{"", 30},
		{"urgent", 15},
		{"immediate", 8},
	}
	for i, tc := range cases {
		w := e.do(http.MethodPost, "/foia-requests", foiaForm(tc.urgency))
		expectStatus(t, w, http.StatusCreated)
		r := decode[domain.FOIARequest](t, w)

		if r.ID != uint(i+1) || !refNumberRE.MatchString(r.ReferenceNumber) {
			t.Fatalf("id/ref: %d %q", r.ID, r.ReferenceNumber)
		}
		if r.Status != domain.RequestSubmitted || r.Purpose != domain.PurposePersonal || r.Responses == nil {
			t.Fatalf("defaults not applied: %+v", r)
		}
		if got := r.DueDate.Sub(r.SubmissionDate).Hours() / 24; int(got) != tc.days {
			t.Fatalf("urgency %q: due after %v days; want %d", tc.urgency, got, tc.days)
		}
	}
	if got := decode[ListFOIARequestsResponse](t, e.do(http.MethodGet, "/foia-requests", nil)); got.Count != 3 {
		t.Fatalf("list count = %d", got.Count)
	}
}

func TestFOIA_Validation(t *testing.T) {
	e := newEnv(t)

	missing := foiaForm("normal")
	delete(missing, "contactEmail")
	badEmail := foiaForm("normal")
	badEmail["contactEmail"] = "not-an-email"
	badType := foiaForm("normal")
	badType["authorityType"] = "club"

	for _, body := range []map[string]string{missing, badEmail, badType, foiaForm("whenever")} {
		expectError(t, e.do(http.MethodPost, "/foia-requests", body), http.StatusUnprocessableEntity, ErrCodeValidation)
	}
}

func TestFOIA_IDsAndLifecycle(t *testing.T) {
	e := newEnv(t)
	expectStatus(t, e.do(http.MethodPost, "/foia-requests", foiaForm("normal")), http.StatusCreated)

	expectError(t, e.do(http.MethodGet, "/foia-requests/abc", nil), http.StatusBadRequest, ErrCodeInvalidID)
	expectError(t, e.do(http.MethodGet, "/foia-requests/9", nil), http.StatusNotFound, ErrCodeNotFound)
	expectError(t, e.do(http.MethodDelete, "/foia-requests/abc", nil), http.StatusBadRequest, ErrCodeInvalidID)

	w := e.do(http.MethodPatch, "/foia-requests/1", map[string]string{"status": "in_review", "urgency": "urgent"})
	expectStatus(t, w, http.StatusOK)
	r := decode[domain.FOIARequest](t, w)
	if r.Status != domain.RequestInReview || r.Urgency != domain.UrgencyUrgent {
		t.Fatalf("patch not applied: %+v", r)
	}
	if got := r.DueDate.Sub(r.SubmissionDate).Hours() / 24; int(got) != 15 {
		t.Fatalf("due date not moved with urgency: %v days", got)
	}
	expectError(t, e.do(http.MethodPatch, "/foia-requests/1", map[string]string{"status": "lost"}), http.StatusUnprocessableEntity, ErrCodeValidation)

	expectStatus(t, e.do(http.MethodDelete, "/foia-requests/1", nil), http.StatusOK)
	expectError(t, e.do(http.MethodGet, "/foia-requests/1", nil), http.StatusNotFound, ErrCodeNotFound)

	w = e.do(http.MethodPost, "/foia-requests", foiaForm("normal"))
	if r := decode[domain.FOIARequest](t, w); r.ID != 2 {
		t.Fatalf("deleted id reused: got %d; want 2", r.ID)
	}
}

func TestFOIA_IdempotentCreateAndETag(t *testing.T) {
	e := newEnv(t)

	first := e.do(http.MethodPost, "/foia-requests", foiaForm("urgent"), middleware.HeaderIdempotencyKey, "foia-1")
	second := e.do(http.MethodPost, "/foia-requests", foiaForm("urgent"), middleware.HeaderIdempotencyKey, "foia-1")
	expectStatus(t, second, http.StatusCreated)
	a, b := decode[domain.FOIARequest](t, first), decode[domain.FOIARequest](t, second)
	if a.ID != b.ID || a.ReferenceNumber != b.ReferenceNumber {
		t.Fatalf("replay mismatch: %+v vs %+v", a, b)
	}

	w := e.do(http.MethodGet, "/foia-requests", nil)
	etag := w.Header().Get("ETag")
	expectStatus(t, e.do(http.MethodGet, "/foia-requests", nil, "If-None-Match", etag), http.StatusNotModified)
}
