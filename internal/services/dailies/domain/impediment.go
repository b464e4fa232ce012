package domain

import (
	"strings"
	"time"

	apperrors "github.com/planagil/dailies/internal/platform/errors"
)

// ImpedimentState is the lifecycle state of an impediment.
type ImpedimentState string

const (
	// ImpedimentOpen is the initial state of a reported impediment.
	ImpedimentOpen ImpedimentState = "OPEN"
	// ImpedimentInProgress means someone is actively working the impediment.
	ImpedimentInProgress ImpedimentState = "IN_PROGRESS"
	// ImpedimentResolved is terminal. A resolved impediment never reopens;
	// a recurring blocker is reported as a new impediment.
	ImpedimentResolved ImpedimentState = "RESOLVED"
)

// ImpedimentPriority ranks how badly an impediment blocks the team.
type ImpedimentPriority string

const (
	PriorityHigh   ImpedimentPriority = "HIGH"
	PriorityMedium ImpedimentPriority = "MEDIUM"
	PriorityLow    ImpedimentPriority = "LOW"
)

// ValidPriority reports whether the value is a known priority.
func ValidPriority(priority ImpedimentPriority) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Impediment is a blocker raised during a daily meeting. It belongs to the
// sprint, not to the meeting it surfaced in, and stays visible until resolved.
type Impediment struct {
	ID       string
	SprintID string
	// MeetingID records the meeting the impediment surfaced in, for context.
	MeetingID   string
	Description string
	Priority    ImpedimentPriority
	State       ImpedimentState
	ReporterID  string
	// ResolverID is whoever the impediment is assigned to. It may change
	// while the impediment is open or in progress.
	ResolverID string
	ReportedAt time.Time
	DueDate    *time.Time
	// Resolution describes how the impediment was cleared. Required and only
	// meaningful once State is ImpedimentResolved.
	Resolution string
	ResolvedAt *time.Time
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewImpediment validates and builds a freshly reported impediment in the
// open state.
func NewImpediment(sprintID, meetingID, reporterID, description string, priority ImpedimentPriority, reportedAt time.Time) (Impediment, error) {
	if strings.TrimSpace(description) == "" {
		return Impediment{}, apperrors.New(apperrors.CodeImpedimentDescriptionEmpty, "impediment description is required")
	}
	if strings.TrimSpace(reporterID) == "" {
		return Impediment{}, apperrors.New(apperrors.CodeImpedimentReporterEmpty, "impediment reporter is required")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return Impediment{}, apperrors.WithMetadata(apperrors.CodeImpedimentInvalidPriority, "unknown impediment priority", map[string]string{
			"Priority": string(priority),
		})
	}
	return Impediment{
		SprintID:    sprintID,
		MeetingID:   meetingID,
		Description: description,
		Priority:    priority,
		State:       ImpedimentOpen,
		ReporterID:  reporterID,
		ReportedAt:  reportedAt.UTC(),
	}, nil
}

// Advance moves an open impediment to in progress.
func (i *Impediment) Advance() error {
	switch i.State {
	case ImpedimentOpen:
		i.State = ImpedimentInProgress
		return nil
	case ImpedimentInProgress:
		return transitionError(i.State, ImpedimentInProgress)
	default:
		return apperrors.New(apperrors.CodeImpedimentResolved, "impediment is already resolved")
	}
}

// Resolve closes the impediment with the given resolution text. Resolving
// straight from the open state is allowed; resolving twice is not.
func (i *Impediment) Resolve(resolution string, at time.Time) error {
	if i.State == ImpedimentResolved {
		return apperrors.New(apperrors.CodeImpedimentResolved, "impediment is already resolved")
	}
	if strings.TrimSpace(resolution) == "" {
		return apperrors.New(apperrors.CodeImpedimentResolutionEmpty, "resolution text is required")
	}
	resolved := at.UTC()
	i.State = ImpedimentResolved
	i.Resolution = resolution
	i.ResolvedAt = &resolved
	return nil
}

// Reassign changes who the impediment is assigned to. Resolved impediments
// are immutable.
func (i *Impediment) Reassign(resolverID string) error {
	if i.State == ImpedimentResolved {
		return apperrors.New(apperrors.CodeImpedimentResolved, "impediment is already resolved")
	}
	i.ResolverID = resolverID
	return nil
}

func transitionError(from, to ImpedimentState) error {
	return apperrors.WithMetadata(apperrors.CodeImpedimentInvalidTransition, "invalid impediment transition", map[string]string{
		"From": string(from),
		"To":   string(to),
	})
}
