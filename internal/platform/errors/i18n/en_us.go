package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeMeetingSprintIDEmpty  = "MEETING_SPRINT_ID_EMPTY"
	CodeMeetingDateMissing    = "MEETING_DATE_MISSING"
	CodeMeetingAlreadyStarted = "MEETING_ALREADY_STARTED"
	CodeMeetingNotStarted     = "MEETING_NOT_STARTED"
	CodeMeetingFinished       = "MEETING_ALREADY_FINISHED"
	CodeMeetingEndBeforeStart = "MEETING_END_BEFORE_START"

	CodeResponsePersonIDEmpty     = "RESPONSE_PERSON_ID_EMPTY"
	CodeResponseUnknownField      = "RESPONSE_UNKNOWN_FIELD"
	CodeResponseParticipantAbsent = "RESPONSE_PARTICIPANT_ABSENT"
	CodeResponseNotFound          = "RESPONSE_NOT_FOUND"

	CodeImpedimentDescriptionEmpty  = "IMPEDIMENT_DESCRIPTION_EMPTY"
	CodeImpedimentInvalidPriority   = "IMPEDIMENT_INVALID_PRIORITY"
	CodeImpedimentResolutionEmpty   = "IMPEDIMENT_RESOLUTION_EMPTY"
	CodeImpedimentInvalidTransition = "IMPEDIMENT_INVALID_TRANSITION"
	CodeImpedimentResolved          = "IMPEDIMENT_ALREADY_RESOLVED"
	CodeImpedimentReporterEmpty     = "IMPEDIMENT_REPORTER_EMPTY"

	CodeNotFound = "NOT_FOUND"
	CodeConflict = "WRITE_CONFLICT"
)

var enUSCatalog = NewCatalog("en-US", map[Code]string{
	// Meeting errors
	CodeMeetingSprintIDEmpty:  "Sprint ID is required for a daily meeting",
	CodeMeetingDateMissing:    "Meeting date is required",
	CodeMeetingAlreadyStarted: "The meeting has already been started",
	CodeMeetingNotStarted:     "The meeting has not been started yet",
	CodeMeetingFinished:       "The meeting has already been finished",
	CodeMeetingEndBeforeStart: "End time {{.EndTime}} precedes start time {{.StartTime}}",

	// Participant response errors
	CodeResponsePersonIDEmpty:     "Person ID is required for a participant response",
	CodeResponseUnknownField:      "Unknown response field {{.Field}}",
	CodeResponseParticipantAbsent: "The participant is marked absent",
	CodeResponseNotFound:          "No response exists for this participant",

	// Impediment errors
	CodeImpedimentDescriptionEmpty:  "Impediment description cannot be empty",
	CodeImpedimentInvalidPriority:   "Invalid impediment priority {{.Priority}}",
	CodeImpedimentResolutionEmpty:   "Resolution text is required to resolve an impediment",
	CodeImpedimentInvalidTransition: "Cannot transition impediment from {{.From}} to {{.To}}",
	CodeImpedimentResolved:          "The impediment is already resolved",
	CodeImpedimentReporterEmpty:     "Reporter ID is required for an impediment",

	// Storage errors
	CodeNotFound: "The requested record was not found",
	CodeConflict: "The record was modified concurrently; reload and retry",
})
