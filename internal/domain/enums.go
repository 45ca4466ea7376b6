package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the lifecycle state of a priority.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone, StatusBlocked}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked:
		return true
	}
	return false
}

// Next returns the status reached by one click on a priority card:
// todo → in-progress → done → todo. Blocked priorities restart at todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone, StatusBlocked:
		return StatusTodo
	}
	return StatusTodo
}

// Label is the badge text shown for a status (e.g. "IN PROGRESS").
func (s Status) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "-", " "))
}

// Marker is the compact glyph used in team member cards.
func (s Status) Marker() string {
	switch s {
	case StatusInProgress:
		return "WIP"
	case StatusDone:
		return "✓"
	case StatusBlocked:
		return "!"
	}
	return "○"
}

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Mood is how a user reported feeling at check-in time.
type Mood string

const (
	MoodFocused    Mood = "focused"
	MoodNeutral    Mood = "neutral"
	MoodStruggling Mood = "struggling"
)

// Moods lists every valid Mood in display order.
var Moods = []Mood{MoodFocused, MoodNeutral, MoodStruggling}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	switch m {
	case MoodFocused, MoodNeutral, MoodStruggling:
		return true
	}
	return false
}

// Label is the capitalized mood name ("Focused").
// Casers are stateful, so one is built per call.
func (m Mood) Label() string { return cases.Title(language.English).String(string(m)) }

// ParseMood converts s into a Mood. An empty string yields MoodNeutral.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MoodNeutral, nil
	}
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// Urgency is the response tier requested for a public-records request.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImmediate Urgency = "immediate"
)

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyImmediate:
		return true
	}
	return false
}

// ResponseDays is the statutory response window for the tier.
// Unknown or empty values get the normal 30-day window.
func (u Urgency) ResponseDays() int {
	switch u {
	case UrgencyUrgent:
		return 15
	case UrgencyImmediate:
		return 8
	}
	return 30
}

// AuthorityType classifies the public body a request is addressed to.
type AuthorityType string

const (
	AuthorityMinistry         AuthorityType = "ministry"
	AuthorityMunicipality     AuthorityType = "municipality"
	AuthorityGovernmentOffice AuthorityType = "government_office"
	AuthorityPublicCompany    AuthorityType = "public_company"
	AuthorityUniversity       AuthorityType = "university"
	AuthorityHospital         AuthorityType = "hospital"
	AuthorityOther            AuthorityType = "other"
)

// Valid reports whether a is a known authority type.
func (a AuthorityType) Valid() bool {
	switch a {
	case AuthorityMinistry, AuthorityMunicipality, AuthorityGovernmentOffice,
		AuthorityPublicCompany, AuthorityUniversity, AuthorityHospital, AuthorityOther:
		return true
	}
	return false
}

// Purpose is the requester's declared reason for a request.
type Purpose string

const (
	PurposePersonal       Purpose = "personal"
	PurposeResearch       Purpose = "research"
	PurposeJournalism     Purpose = "journalism"
	PurposeLegal          Purpose = "legal"
	PurposePublicInterest Purpose = "public_interest"
)

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	switch p {
	case PurposePersonal, PurposeResearch, PurposeJournalism, PurposeLegal, PurposePublicInterest:
		return true
	}
	return false
}

// RequestStatus tracks a public-records request through its lifecycle.
type RequestStatus string

const (
	RequestSubmitted RequestStatus = "submitted"
	RequestInReview  RequestStatus = "in_review"
	RequestAnswered  RequestStatus = "answered"
	RequestRejected  RequestStatus = "rejected"
	RequestClosed    RequestStatus = "closed"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestSubmitted, RequestInReview, RequestAnswered, RequestRejected, RequestClosed:
		return true
	}
	return false
}
