package domain

import (
	"time"

	apperrors "github.com/planagil/dailies/internal/platform/errors"
)

// MeetingState is the lifecycle state of a daily meeting.
type MeetingState string

const (
	// MeetingStatePending means the meeting has not been started.
	MeetingStatePending MeetingState = "PENDING"
	// MeetingStateInProgress means the meeting is started but not finished.
	MeetingStateInProgress MeetingState = "IN_PROGRESS"
	// MeetingStateCompleted means the meeting has both start and end times.
	MeetingStateCompleted MeetingState = "COMPLETED"
)

// DailyMeeting is one sprint daily standup.
//
// Lifecycle state is never stored: it is always derived from the presence of
// StartedAt and EndedAt through DeriveMeetingState, so the timestamps and the
// state cannot disagree.
type DailyMeeting struct {
	ID       string
	SprintID string
	// Date is the calendar day of the meeting at day granularity (UTC midnight).
	Date      time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	// PlannedMinutes is the facilitator's time box (e.g. 15). Zero means unset.
	PlannedMinutes int
	// ActualMinutes is computed from the timestamps at finish time and kept
	// separately from PlannedMinutes.
	ActualMinutes int
	Notes         string
	Responses     []ParticipantResponse
	// ImpedimentIDs lists impediments raised in this meeting. The impediments
	// themselves live in the global collection and outlive the meeting.
	ImpedimentIDs []string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeriveMeetingState derives the lifecycle state from timestamp presence.
func DeriveMeetingState(meeting DailyMeeting) MeetingState {
	switch {
	case meeting.StartedAt == nil:
		return MeetingStatePending
	case meeting.EndedAt == nil:
		return MeetingStateInProgress
	default:
		return MeetingStateCompleted
	}
}

// State reports the derived lifecycle state of this meeting.
func (m DailyMeeting) State() MeetingState {
	return DeriveMeetingState(m)
}

// Start records the meeting start time.
func (m *DailyMeeting) Start(at time.Time) error {
	if m.StartedAt != nil {
		return apperrors.New(apperrors.CodeMeetingAlreadyStarted, "meeting is already started")
	}
	started := at.UTC()
	m.StartedAt = &started
	return nil
}

// Finish records the meeting end time and computes the actual duration.
//
// Finishing a meeting that never started is an invalid-state error; an end
// time before the start time is a validation error.
func (m *DailyMeeting) Finish(at time.Time) error {
	if m.StartedAt == nil {
		return apperrors.New(apperrors.CodeMeetingNotStarted, "meeting has not been started")
	}
	if m.EndedAt != nil {
		return apperrors.New(apperrors.CodeMeetingFinished, "meeting is already finished")
	}
	ended := at.UTC()
	if ended.Before(*m.StartedAt) {
		return apperrors.WithMetadata(apperrors.CodeMeetingEndBeforeStart, "meeting end time precedes start time", map[string]string{
			"StartTime": m.StartedAt.Format(time.RFC3339),
			"EndTime":   ended.Format(time.RFC3339),
		})
	}
	m.EndedAt = &ended
	m.ActualMinutes = int(ended.Sub(*m.StartedAt) / time.Minute)
	return nil
}

// Response returns the response for the given person, or nil when absent.
func (m *DailyMeeting) Response(personID string) *ParticipantResponse {
	for i := range m.Responses {
		if m.Responses[i].PersonID == personID {
			return &m.Responses[i]
		}
	}
	return nil
}

// DateOnly truncates a timestamp to day granularity in UTC.
func DateOnly(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
