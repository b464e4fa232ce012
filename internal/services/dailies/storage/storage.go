// Package storage defines the persistence boundary for daily-meeting state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested meeting, impediment, or sprint record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a write lost an optimistic-version race or violated uniqueness.
	ErrConflict = errors.New("record conflict")
)

// MeetingRecord stores one daily meeting row with its participant responses.
//
// StartedAt and EndedAt are the only source of lifecycle state: a meeting with
// neither is pending, with only StartedAt is in progress, with both is
// completed. No state column exists.
type MeetingRecord struct {
	ID             string
	SprintID       string
	MeetingDate    time.Time
	StartedAt      *time.Time
	EndedAt        *time.Time
	PlannedMinutes int
	ActualMinutes  int
	Notes          string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Responses      []ResponseRecord
}

// ResponseRecord stores one participant's standup answers within a meeting.
type ResponseRecord struct {
	ID            string
	MeetingID     string
	PersonID      string
	DisplayName   string
	Attended      bool
	AbsenceReason string
	Yesterday     string
	Today         string
	ImpedimentID  string
	Position      int
}

// ImpedimentRecord stores one tracked blocker, decoupled from any meeting.
type ImpedimentRecord struct {
	ID          string
	SprintID    string
	MeetingID   string
	Description string
	Priority    string
	State       string
	ReporterID  string
	ResolverID  string
	ReportedAt  time.Time
	DueDate     *time.Time
	Resolution  string
	ResolvedAt  *time.Time
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskRecord stores one read-only sprint task used for answer seeding.
type TaskRecord struct {
	ID         string
	SprintID   string
	Code       string
	Title      string
	AssigneeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Position   int
}

// MemberRecord stores one sprint roster member.
type MemberRecord struct {
	SprintID    string
	PersonID    string
	DisplayName string
	Role        string
	Position    int
}

// JournalRecord stores one observed lifecycle transition.
type JournalRecord struct {
	ID         string
	EntityType string
	EntityID   string
	SprintID   string
	Action     string
	Detail     string
	At         time.Time
}

// MeetingStore persists daily meeting state.
//
// UpdateMeeting performs an optimistic-version compare-and-swap: it succeeds
// only when the stored version matches the record's version, so at most one
// of two concurrent writers wins; the loser receives ErrConflict and is
// expected to re-read and retry once before surfacing the error.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, record MeetingRecord) error
	GetMeeting(ctx context.Context, meetingID string) (MeetingRecord, error)
	UpdateMeeting(ctx context.Context, record MeetingRecord) (MeetingRecord, error)
	ListMeetingsBySprint(ctx context.Context, sprintID string, filter string) ([]MeetingRecord, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}

// ImpedimentStore persists impediment lifecycle state with the same
// optimistic-version semantics as MeetingStore.
type ImpedimentStore interface {
	CreateImpediment(ctx context.Context, record ImpedimentRecord) error
	GetImpediment(ctx context.Context, impedimentID string) (ImpedimentRecord, error)
	UpdateImpediment(ctx context.Context, record ImpedimentRecord) (ImpedimentRecord, error)
	ListImpedimentsBySprint(ctx context.Context, sprintID string, filter string) ([]ImpedimentRecord, error)
	ListImpedimentsByState(ctx context.Context, state string) ([]ImpedimentRecord, error)
	ListImpedimentsByMeeting(ctx context.Context, meetingID string) ([]ImpedimentRecord, error)
	DeleteImpediment(ctx context.Context, impedimentID string) error
}

// TaskSource reads sprint tasks. This core never writes tasks; they are
// synchronized from the task-planning system.
type TaskSource interface {
	ListTasksForSprint(ctx context.Context, sprintID string) ([]TaskRecord, error)
}

// RosterSource reads the sprint roster used to seed participant responses.
type RosterSource interface {
	ListTeamMembers(ctx context.Context, sprintID string) ([]MemberRecord, error)
}

// JournalStore appends and reads lifecycle transition records.
type JournalStore interface {
	AppendJournalEntry(ctx context.Context, record JournalRecord) error
	ListJournalEntriesByEntity(ctx context.Context, entityType string, entityID string) ([]JournalRecord, error)
}
