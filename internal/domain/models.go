// Package domain defines the persistence models for priorities, daily
// check-ins, public-records requests and team members. These types are mapped
// with GORM onto the in-memory store and are returned to callers as value
// copies, so mutating a returned record never touches the store.
package domain

import "time"

// Priority is a single trackable focus item for one user on one day.
//
// Fields:
//   - ID: numeric id, assigned as max(existing ids)+1 by the service layer.
//   - Title: non-empty summary.
//   - Description: optional detail; stored as "" when absent.
//   - Status: one of the Status constants.
//   - UserID: owner of the priority.
//   - Date: calendar day (YYYY-MM-DD) the priority applies to.
//   - CreatedAt: creation timestamp.
//   - CompletedAt: set exactly when Status is StatusDone.
type Priority struct {
	ID          uint       `json:"id"          gorm:"primaryKey;autoIncrement:false"`
	Title       string     `json:"title"       gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text;not null;default:''"`
	Status      Status     `json:"status"      gorm:"type:varchar(16);not null;default:'todo';check:status IN ('todo','in-progress','done','blocked')"`
	UserID      string     `json:"userId"      gorm:"type:varchar(64);not null;index:idx_priorities_user_date,priority:1"`
	Date        string     `json:"date"        gorm:"type:char(10);not null;index:idx_priorities_user_date,priority:2"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"-"`
}

// TableName returns the database table name for Priority.
func (Priority) TableName() string { return "priorities" }

// PriorityInput is one title/description pair as typed into a check-in form.
type PriorityInput struct {
	Title       string `json:"title"                 yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CheckIn is a user's daily submission of priorities, mood and note.
// Priorities keeps the raw submitted list; the Priority records created from
// it live in their own table.
type CheckIn struct {
	ID         uint            `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	UserID     string          `json:"userId"     gorm:"type:varchar(64);not null;index:idx_checkins_user_date,priority:1"`
	Date       string          `json:"date"       gorm:"type:char(10);not null;index:idx_checkins_user_date,priority:2"`
	Priorities []PriorityInput `json:"priorities" gorm:"type:text;serializer:json"`
	Mood       Mood            `json:"mood"       gorm:"type:varchar(16);not null;default:'neutral'"`
	Note       *string         `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"-"`
}

// TableName returns the database table name for CheckIn.
func (CheckIn) TableName() string { return "check_ins" }

// FOIAResponse is one reply received from the authority.
type FOIAResponse struct {
	Date time.Time `json:"date"`
	From string    `json:"from"`
	Body string    `json:"body"`
}

// FOIARequest is a public-records information request and its statutory
// deadline. DueDate is always SubmissionDate plus Urgency.ResponseDays().
type FOIARequest struct {
	ID                 uint           `json:"id"                 gorm:"primaryKey;autoIncrement:false"`
	ReferenceNumber    string         `json:"referenceNumber"    gorm:"type:varchar(32);not null;index"`
	RequestTitle       string         `json:"requestTitle"       gorm:"type:varchar(255);not null"`
	RequestDescription string         `json:"requestDescription" gorm:"type:text;not null"`
	SpecificDocuments  string         `json:"specificDocuments,omitempty" gorm:"type:text"`
	AuthorityType      AuthorityType  `json:"authorityType"      gorm:"type:varchar(32);not null"`
	AuthorityName      string         `json:"authorityName"      gorm:"type:varchar(255);not null"`
	ContactName        string         `json:"contactName"        gorm:"type:varchar(255);not null"`
	ContactEmail       string         `json:"contactEmail"       gorm:"type:varchar(255);not null"`
	ContactPhone       string         `json:"contactPhone,omitempty" gorm:"type:varchar(64)"`
	Urgency            Urgency        `json:"urgency"            gorm:"type:varchar(16);not null;default:'normal'"`
	Purpose            Purpose        `json:"purpose"            gorm:"type:varchar(32);not null;default:'personal'"`
	Status             RequestStatus  `json:"status"             gorm:"type:varchar(16);not null;default:'submitted'"`
	SubmissionDate     time.Time      `json:"submissionDate"     gorm:"not null"`
	DueDate            time.Time      `json:"dueDate"            gorm:"not null;index"`
	Responses          []FOIAResponse `json:"responses"          gorm:"type:text;serializer:json"`
	UpdatedAt          time.Time      `json:"-"`
}

// TableName returns the database table name for FOIARequest.
func (FOIARequest) TableName() string { return "foia_requests" }

// User is a team member. The last check-in date is derived, never stored.
type User struct {
	ID        string    `json:"id"    yaml:"id"    gorm:"type:varchar(64);primaryKey"`
	Name      string    `json:"name"  yaml:"name"  gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" yaml:"email" gorm:"type:varchar(255)"`
	Role      string    `json:"role"  yaml:"role"  gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"-"     yaml:"-"`
	UpdatedAt time.Time `json:"-"     yaml:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Member is a User decorated with the date of their latest check-in.
type Member struct {
	User
	LastCheckIn *string `json:"lastCheckIn"`
}

// Sequence is a named, never-decreasing counter used for ids that must not
// be reused after deletion.
type Sequence struct {
	Name  string `gorm:"type:varchar(64);primaryKey"`
	Value uint   `gorm:"not null"`
}

// TableName returns the database table name for Sequence.
func (Sequence) TableName() string { return "sequences" }
