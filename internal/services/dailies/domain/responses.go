package domain

import (
	apperrors "github.com/planagil/dailies/internal/platform/errors"
)

// ResponseField identifies one editable free-text field of a response.
type ResponseField string

const (
	// FieldYesterday is the "what I did yesterday" answer.
	FieldYesterday ResponseField = "yesterday"
	// FieldToday is the "what I will do today" answer.
	FieldToday ResponseField = "today"
	// FieldAbsenceReason is the reason recorded for an absent participant.
	FieldAbsenceReason ResponseField = "absence_reason"
)

// ParticipantResponse is one roster member's row in a daily meeting.
type ParticipantResponse struct {
	PersonID    string
	DisplayName string
	Attended    bool
	// AbsenceReason is only meaningful while Attended is false. It is kept
	// while the participant is toggled back and forth so that flipping
	// attendance by accident loses nothing; Validated clears it on the final
	// attended rows.
	AbsenceReason string
	Yesterday     string
	Today         string
	// ImpedimentID links the impediment this participant raised, if any.
	ImpedimentID string
}

// NewResponseSheet builds the initial responses for a roster, one per member
// in roster order, everyone marked attended.
func NewResponseSheet(roster []TeamMember) []ParticipantResponse {
	responses := make([]ParticipantResponse, 0, len(roster))
	for _, member := range roster {
		responses = append(responses, ParticipantResponse{
			PersonID:    member.ID,
			DisplayName: member.DisplayName,
			Attended:    true,
		})
	}
	return responses
}

// SetAttendance flips a participant's attendance flag.
//
// The toggle is non-destructive: the standup answers and the absence reason
// stay in place so that an accidental flip can be undone without data loss.
func (r *ParticipantResponse) SetAttendance(attended bool) {
	r.Attended = attended
}

// UpdateField sets one free-text field of the response.
func (r *ParticipantResponse) UpdateField(field ResponseField, value string) error {
	switch field {
	case FieldYesterday:
		r.Yesterday = value
	case FieldToday:
		r.Today = value
	case FieldAbsenceReason:
		r.AbsenceReason = value
	default:
		return apperrors.WithMetadata(apperrors.CodeResponseUnknownField, "unknown response field", map[string]string{
			"Field": string(field),
		})
	}
	return nil
}

// SetImpediment links or clears the impediment raised by this participant.
// An empty id clears the link.
func (r *ParticipantResponse) SetImpediment(impedimentID string) {
	r.ImpedimentID = impedimentID
}

// Validated returns a copy of the responses normalized for persistence:
// attended rows drop any leftover absence reason.
func Validated(responses []ParticipantResponse) []ParticipantResponse {
	out := make([]ParticipantResponse, len(responses))
	copy(out, responses)
	for i := range out {
		if out[i].Attended {
			out[i].AbsenceReason = ""
		}
	}
	return out
}

// AttendingCount counts participants marked attended.
func AttendingCount(responses []ParticipantResponse) int {
	var count int
	for _, response := range responses {
		if response.Attended {
			count++
		}
	}
	return count
}

// WithImpedimentCount counts attending participants with a linked
// impediment. Absent participants are skipped even when an impediment is
// still attached to their row.
func WithImpedimentCount(responses []ParticipantResponse) int {
	var count int
	for _, response := range responses {
		if response.Attended && response.ImpedimentID != "" {
			count++
		}
	}
	return count
}
