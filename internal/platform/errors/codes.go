// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Meeting errors
	CodeMeetingSprintIDEmpty  Code = "MEETING_SPRINT_ID_EMPTY"
	CodeMeetingDateMissing    Code = "MEETING_DATE_MISSING"
	CodeMeetingAlreadyStarted Code = "MEETING_ALREADY_STARTED"
	CodeMeetingNotStarted     Code = "MEETING_NOT_STARTED"
	CodeMeetingFinished       Code = "MEETING_ALREADY_FINISHED"
	CodeMeetingEndBeforeStart Code = "MEETING_END_BEFORE_START"

	// Participant response errors
	CodeResponsePersonIDEmpty     Code = "RESPONSE_PERSON_ID_EMPTY"
	CodeResponseUnknownField      Code = "RESPONSE_UNKNOWN_FIELD"
	CodeResponseParticipantAbsent Code = "RESPONSE_PARTICIPANT_ABSENT"
	CodeResponseNotFound          Code = "RESPONSE_NOT_FOUND"

	// Impediment errors
	CodeImpedimentDescriptionEmpty  Code = "IMPEDIMENT_DESCRIPTION_EMPTY"
	CodeImpedimentInvalidPriority   Code = "IMPEDIMENT_INVALID_PRIORITY"
	CodeImpedimentResolutionEmpty   Code = "IMPEDIMENT_RESOLUTION_EMPTY"
	CodeImpedimentInvalidTransition Code = "IMPEDIMENT_INVALID_TRANSITION"
	CodeImpedimentResolved          Code = "IMPEDIMENT_ALREADY_RESOLVED"
	CodeImpedimentReporterEmpty     Code = "IMPEDIMENT_REPORTER_EMPTY"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "WRITE_CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeMeetingSprintIDEmpty,
		CodeMeetingDateMissing,
		CodeMeetingEndBeforeStart,
		CodeResponsePersonIDEmpty,
		CodeResponseUnknownField,
		CodeImpedimentDescriptionEmpty,
		CodeImpedimentInvalidPriority,
		CodeImpedimentResolutionEmpty,
		CodeImpedimentReporterEmpty:
		return codes.InvalidArgument

	// FailedPrecondition - lifecycle state doesn't allow the operation
	case CodeMeetingAlreadyStarted,
		CodeMeetingNotStarted,
		CodeMeetingFinished,
		CodeResponseParticipantAbsent,
		CodeImpedimentInvalidTransition,
		CodeImpedimentResolved:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeResponseNotFound:
		return codes.NotFound

	// Aborted - concurrent modification detected by a store
	case CodeConflict:
		return codes.Aborted

	default:
		return codes.Internal
	}
}

// IsValidation reports whether the code describes malformed input.
func (c Code) IsValidation() bool {
	return c.GRPCCode() == codes.InvalidArgument
}

// IsInvalidState reports whether the code describes an operation illegal in
// the entity's current lifecycle state.
func (c Code) IsInvalidState() bool {
	return c.GRPCCode() == codes.FailedPrecondition
}

// IsNotFound reports whether the code describes a missing entity.
func (c Code) IsNotFound() bool {
	return c.GRPCCode() == codes.NotFound
}

// IsConflict reports whether the code describes a concurrent-write collision.
func (c Code) IsConflict() bool {
	return c == CodeConflict
}
