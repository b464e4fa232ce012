// Package domain implements daily meeting orchestration and impediment
// tracking for sprint teams.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/planagil/dailies/internal/platform/errors"
	"github.com/planagil/dailies/internal/platform/id"
	"github.com/planagil/dailies/internal/services/dailies/storage"
)

var (
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("dailies store is not configured")
	// ErrIDGeneratorExhausted indicates a fixed test ID sequence was exhausted.
	ErrIDGeneratorExhausted = errors.New("dailies id generator exhausted")
)

// Journal entity types and actions.
const (
	EntityMeeting    = "meeting"
	EntityImpediment = "impediment"

	ActionMeetingCreated       = "meeting.created"
	ActionMeetingStarted       = "meeting.started"
	ActionMeetingFinished      = "meeting.finished"
	ActionImpedimentReported   = "impediment.reported"
	ActionImpedimentAdvanced   = "impediment.advanced"
	ActionImpedimentResolved   = "impediment.resolved"
	ActionImpedimentReassigned = "impediment.reassigned"
)

// Service orchestrates daily meeting and impediment lifecycle behavior.
//
// Writes go through an optimistic-version compare-and-swap: when a save loses
// the race the service re-reads, re-applies the change, and retries exactly
// once before surfacing a conflict to the caller.
type Service struct {
	meetings    storage.MeetingStore
	impediments storage.ImpedimentStore
	tasks       storage.TaskSource
	roster      storage.RosterSource
	journal     *Journal
	clock       func() time.Time
	newID       func() (string, error)
	tracer      trace.Tracer
}

// ServiceConfig wires the service's collaborators. Tasks, Roster, and Journal
// are optional; meetings created without a roster start with an empty sheet.
type ServiceConfig struct {
	Meetings    storage.MeetingStore
	Impediments storage.ImpedimentStore
	Tasks       storage.TaskSource
	Roster      storage.RosterSource
	Journal     *Journal
	Clock       func() time.Time
	NewID       func() (string, error)
}

// NewService constructs the dailies domain use-cases.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}
	return &Service{
		meetings:    cfg.Meetings,
		impediments: cfg.Impediments,
		tasks:       cfg.Tasks,
		roster:      cfg.Roster,
		journal:     cfg.Journal,
		clock:       clock,
		newID:       newID,
		tracer:      otel.Tracer("planagil.dailies.domain"),
	}
}

// CreateMeetingInput describes one meeting to schedule.
type CreateMeetingInput struct {
	SprintID       string
	Date           time.Time
	PlannedMinutes int
	Notes          string
}

// CreateMeeting schedules a pending daily meeting for a sprint day. The
// response sheet is seeded from the sprint roster and each participant's
// answers are prefilled from the tasks active around the meeting day.
func (s *Service) CreateMeeting(ctx context.Context, input CreateMeetingInput) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.CreateMeeting")
	defer span.End()

	if s == nil || s.meetings == nil {
		return DailyMeeting{}, ErrStoreNotConfigured
	}
	sprintID := strings.TrimSpace(input.SprintID)
	if sprintID == "" {
		return DailyMeeting{}, apperrors.New(apperrors.CodeMeetingSprintIDEmpty, "sprint id is required")
	}
	if input.Date.IsZero() {
		return DailyMeeting{}, apperrors.New(apperrors.CodeMeetingDateMissing, "meeting date is required")
	}

	meetingID, err := s.newID()
	if err != nil {
		return DailyMeeting{}, err
	}
	now := s.nowUTC()
	meeting := DailyMeeting{
		ID:             meetingID,
		SprintID:       sprintID,
		Date:           DateOnly(input.Date),
		PlannedMinutes: input.PlannedMinutes,
		Notes:          strings.TrimSpace(input.Notes),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if s.roster != nil {
		members, err := s.roster.ListTeamMembers(ctx, sprintID)
		if err != nil {
			return DailyMeeting{}, err
		}
		roster := make([]TeamMember, 0, len(members))
		for _, member := range members {
			roster = append(roster, memberFromRecord(member))
		}
		meeting.Responses = NewResponseSheet(roster)
	}
	if s.tasks != nil && len(meeting.Responses) > 0 {
		records, err := s.tasks.ListTasksForSprint(ctx, sprintID)
		if err != nil {
			return DailyMeeting{}, err
		}
		tasks := make([]SprintTask, 0, len(records))
		for _, record := range records {
			tasks = append(tasks, taskFromRecord(record))
		}
		for i := range meeting.Responses {
			seed := SeedAnswers(tasks, meeting.Responses[i].PersonID, meeting.Date)
			ApplySeed(&meeting.Responses[i], seed)
		}
	}

	if err := s.meetings.CreateMeeting(ctx, meetingToRecord(meeting)); err != nil {
		return DailyMeeting{}, translateStoreError(err)
	}
	s.record(ctx, EntityMeeting, meeting.ID, sprintID, ActionMeetingCreated, meeting.Date.Format("2006-01-02"))
	return meeting, nil
}

// GetMeeting loads one meeting with its response sheet.
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.GetMeeting")
	defer span.End()

	if s == nil || s.meetings == nil {
		return DailyMeeting{}, ErrStoreNotConfigured
	}
	record, err := s.meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return DailyMeeting{}, translateStoreError(err)
	}
	return meetingFromRecord(record), nil
}

// StartMeeting records the facilitator opening the meeting.
func (s *Service) StartMeeting(ctx context.Context, meetingID string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.StartMeeting")
	defer span.End()

	meeting, err := s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		return meeting.Start(s.clock())
	})
	if err != nil {
		return DailyMeeting{}, err
	}
	s.record(ctx, EntityMeeting, meeting.ID, meeting.SprintID, ActionMeetingStarted, "")
	return meeting, nil
}

// FinishMeeting closes the meeting, computes its actual duration, and
// normalizes the response sheet for the record.
func (s *Service) FinishMeeting(ctx context.Context, meetingID string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.FinishMeeting")
	defer span.End()

	meeting, err := s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		if err := meeting.Finish(s.clock()); err != nil {
			return err
		}
		meeting.Responses = Validated(meeting.Responses)
		return nil
	})
	if err != nil {
		return DailyMeeting{}, err
	}
	s.record(ctx, EntityMeeting, meeting.ID, meeting.SprintID, ActionMeetingFinished, "")
	return meeting, nil
}

// SetAttendance flips one participant's attendance. The participant's
// answers survive the toggle; an absence reason may be recorded alongside.
func (s *Service) SetAttendance(ctx context.Context, meetingID, personID string, attended bool, absenceReason string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.SetAttendance")
	defer span.End()

	return s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		if err := ensureEditable(*meeting); err != nil {
			return err
		}
		response, err := findResponse(meeting, personID)
		if err != nil {
			return err
		}
		response.SetAttendance(attended)
		if !attended && absenceReason != "" {
			response.AbsenceReason = absenceReason
		}
		return nil
	})
}

// UpdateResponse sets one free-text field of a participant's response.
func (s *Service) UpdateResponse(ctx context.Context, meetingID, personID string, field ResponseField, value string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.UpdateResponse")
	defer span.End()

	return s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		if err := ensureEditable(*meeting); err != nil {
			return err
		}
		response, err := findResponse(meeting, personID)
		if err != nil {
			return err
		}
		if field == FieldAbsenceReason && response.Attended {
			return apperrors.New(apperrors.CodeResponseParticipantAbsent, "absence reason only applies to absent participants")
		}
		return response.UpdateField(field, value)
	})
}

// AddParticipant appends an ad-hoc participant to the sheet, for people who
// join the standup without being on the sprint roster.
func (s *Service) AddParticipant(ctx context.Context, meetingID, personID, displayName string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.AddParticipant")
	defer span.End()

	return s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		if err := ensureEditable(*meeting); err != nil {
			return err
		}
		personID = strings.TrimSpace(personID)
		if personID == "" {
			return apperrors.New(apperrors.CodeResponsePersonIDEmpty, "person id is required")
		}
		if meeting.Response(personID) != nil {
			return apperrors.WithMetadata(apperrors.CodeConflict, "participant already on the sheet", map[string]string{
				"PersonID": personID,
			})
		}
		meeting.Responses = append(meeting.Responses, ParticipantResponse{
			PersonID:    personID,
			DisplayName: displayName,
			Attended:    true,
		})
		return nil
	})
}

// SetMeetingNotes replaces the facilitator notes on a meeting.
func (s *Service) SetMeetingNotes(ctx context.Context, meetingID, notes string) (DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.SetMeetingNotes")
	defer span.End()

	return s.mutateMeeting(ctx, meetingID, func(meeting *DailyMeeting) error {
		meeting.Notes = notes
		return nil
	})
}

// ListMeetings lists a sprint's meetings ordered by date. The filter accepts
// AIP-160 expressions over date, started, and ended; empty means all.
func (s *Service) ListMeetings(ctx context.Context, sprintID, filter string) ([]DailyMeeting, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.ListMeetings")
	defer span.End()

	if s == nil || s.meetings == nil {
		return nil, ErrStoreNotConfigured
	}
	sprintID = strings.TrimSpace(sprintID)
	if sprintID == "" {
		return nil, apperrors.New(apperrors.CodeMeetingSprintIDEmpty, "sprint id is required")
	}
	records, err := s.meetings.ListMeetingsBySprint(ctx, sprintID, filter)
	if err != nil {
		return nil, translateStoreError(err)
	}
	meetings := make([]DailyMeeting, 0, len(records))
	for _, record := range records {
		meetings = append(meetings, meetingFromRecord(record))
	}
	return meetings, nil
}

// ReportImpedimentInput describes one blocker raised during a standup.
type ReportImpedimentInput struct {
	SprintID    string
	MeetingID   string
	ReporterID  string
	Description string
	Priority    ImpedimentPriority
	ResolverID  string
	DueDate     *time.Time
}

// ReportImpediment registers a new open impediment. When the reporter has a
// row on the meeting's sheet the impediment is linked to it.
func (s *Service) ReportImpediment(ctx context.Context, input ReportImpedimentInput) (Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.ReportImpediment")
	defer span.End()

	if s == nil || s.impediments == nil {
		return Impediment{}, ErrStoreNotConfigured
	}
	sprintID := strings.TrimSpace(input.SprintID)
	if sprintID == "" {
		return Impediment{}, apperrors.New(apperrors.CodeMeetingSprintIDEmpty, "sprint id is required")
	}

	impediment, err := NewImpediment(sprintID, strings.TrimSpace(input.MeetingID), strings.TrimSpace(input.ReporterID), input.Description, input.Priority, s.clock())
	if err != nil {
		return Impediment{}, err
	}
	impedimentID, err := s.newID()
	if err != nil {
		return Impediment{}, err
	}
	now := s.nowUTC()
	impediment.ID = impedimentID
	impediment.ResolverID = strings.TrimSpace(input.ResolverID)
	impediment.DueDate = input.DueDate
	impediment.Version = 1
	impediment.CreatedAt = now
	impediment.UpdatedAt = now

	if err := s.impediments.CreateImpediment(ctx, impedimentToRecord(impediment)); err != nil {
		return Impediment{}, translateStoreError(err)
	}

	if impediment.MeetingID != "" && s.meetings != nil {
		_, err := s.mutateMeeting(ctx, impediment.MeetingID, func(meeting *DailyMeeting) error {
			response := meeting.Response(impediment.ReporterID)
			if response == nil {
				return nil
			}
			response.SetImpediment(impediment.ID)
			return nil
		})
		if err != nil {
			return Impediment{}, err
		}
	}

	s.record(ctx, EntityImpediment, impediment.ID, sprintID, ActionImpedimentReported, string(impediment.Priority))
	return impediment, nil
}

// GetImpediment loads one impediment.
func (s *Service) GetImpediment(ctx context.Context, impedimentID string) (Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.GetImpediment")
	defer span.End()

	if s == nil || s.impediments == nil {
		return Impediment{}, ErrStoreNotConfigured
	}
	record, err := s.impediments.GetImpediment(ctx, strings.TrimSpace(impedimentID))
	if err != nil {
		return Impediment{}, translateStoreError(err)
	}
	return impedimentFromRecord(record), nil
}

// AdvanceImpediment moves an open impediment to in progress.
func (s *Service) AdvanceImpediment(ctx context.Context, impedimentID string) (Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.AdvanceImpediment")
	defer span.End()

	impediment, err := s.mutateImpediment(ctx, impedimentID, func(impediment *Impediment) error {
		return impediment.Advance()
	})
	if err != nil {
		return Impediment{}, err
	}
	s.record(ctx, EntityImpediment, impediment.ID, impediment.SprintID, ActionImpedimentAdvanced, "")
	return impediment, nil
}

// ResolveImpediment closes an impediment with its resolution text.
func (s *Service) ResolveImpediment(ctx context.Context, impedimentID, resolution string) (Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.ResolveImpediment")
	defer span.End()

	impediment, err := s.mutateImpediment(ctx, impedimentID, func(impediment *Impediment) error {
		return impediment.Resolve(resolution, s.clock())
	})
	if err != nil {
		return Impediment{}, err
	}
	s.record(ctx, EntityImpediment, impediment.ID, impediment.SprintID, ActionImpedimentResolved, "")
	return impediment, nil
}

// ReassignImpediment changes who an unresolved impediment is assigned to.
func (s *Service) ReassignImpediment(ctx context.Context, impedimentID, resolverID string) (Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.ReassignImpediment")
	defer span.End()

	impediment, err := s.mutateImpediment(ctx, impedimentID, func(impediment *Impediment) error {
		return impediment.Reassign(strings.TrimSpace(resolverID))
	})
	if err != nil {
		return Impediment{}, err
	}
	s.record(ctx, EntityImpediment, impediment.ID, impediment.SprintID, ActionImpedimentReassigned, impediment.ResolverID)
	return impediment, nil
}

// ListImpediments lists a sprint's impediments. The filter accepts AIP-160
// expressions over state, priority, reporter_id, and meeting_id.
func (s *Service) ListImpediments(ctx context.Context, sprintID, filter string) ([]Impediment, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.ListImpediments")
	defer span.End()

	if s == nil || s.impediments == nil {
		return nil, ErrStoreNotConfigured
	}
	sprintID = strings.TrimSpace(sprintID)
	if sprintID == "" {
		return nil, apperrors.New(apperrors.CodeMeetingSprintIDEmpty, "sprint id is required")
	}
	records, err := s.impediments.ListImpedimentsBySprint(ctx, sprintID, filter)
	if err != nil {
		return nil, translateStoreError(err)
	}
	impediments := make([]Impediment, 0, len(records))
	for _, record := range records {
		impediments = append(impediments, impedimentFromRecord(record))
	}
	return impediments, nil
}

// SprintSummary aggregates a sprint's meetings and impediments.
func (s *Service) SprintSummary(ctx context.Context, sprintID string) (SprintSummary, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.SprintSummary")
	defer span.End()

	meetings, err := s.ListMeetings(ctx, sprintID, "")
	if err != nil {
		return SprintSummary{}, err
	}
	impediments, err := s.ListImpediments(ctx, sprintID, "")
	if err != nil {
		return SprintSummary{}, err
	}
	return Summarize(strings.TrimSpace(sprintID), meetings, impediments), nil
}

// MeetingJournal lists recorded transitions for one meeting, oldest first.
func (s *Service) MeetingJournal(ctx context.Context, meetingID string) ([]storage.JournalRecord, error) {
	ctx, span := s.tracer.Start(ctx, "dailies.MeetingJournal")
	defer span.End()

	if s == nil || s.journal == nil || s.journal.store == nil {
		return nil, nil
	}
	return s.journal.store.ListJournalEntriesByEntity(ctx, EntityMeeting, strings.TrimSpace(meetingID))
}

// mutateMeeting loads, mutates, and saves one meeting, retrying the whole
// read-modify-write once on a version conflict.
func (s *Service) mutateMeeting(ctx context.Context, meetingID string, mutate func(*DailyMeeting) error) (DailyMeeting, error) {
	if s == nil || s.meetings == nil {
		return DailyMeeting{}, ErrStoreNotConfigured
	}
	meetingID = strings.TrimSpace(meetingID)

	var meeting DailyMeeting
	for attempt := 0; attempt < 2; attempt++ {
		record, err := s.meetings.GetMeeting(ctx, meetingID)
		if err != nil {
			return DailyMeeting{}, translateStoreError(err)
		}
		meeting = meetingFromRecord(record)
		if err := mutate(&meeting); err != nil {
			return DailyMeeting{}, err
		}
		meeting.UpdatedAt = s.nowUTC()
		saved, err := s.meetings.UpdateMeeting(ctx, meetingToRecord(meeting))
		if err == nil {
			return meetingFromRecord(saved), nil
		}
		if !errors.Is(err, storage.ErrConflict) || attempt > 0 {
			return DailyMeeting{}, translateStoreError(err)
		}
	}
	return DailyMeeting{}, translateStoreError(storage.ErrConflict)
}

// mutateImpediment is mutateMeeting for impediments.
func (s *Service) mutateImpediment(ctx context.Context, impedimentID string, mutate func(*Impediment) error) (Impediment, error) {
	if s == nil || s.impediments == nil {
		return Impediment{}, ErrStoreNotConfigured
	}
	impedimentID = strings.TrimSpace(impedimentID)

	var impediment Impediment
	for attempt := 0; attempt < 2; attempt++ {
		record, err := s.impediments.GetImpediment(ctx, impedimentID)
		if err != nil {
			return Impediment{}, translateStoreError(err)
		}
		impediment = impedimentFromRecord(record)
		if err := mutate(&impediment); err != nil {
			return Impediment{}, err
		}
		impediment.UpdatedAt = s.nowUTC()
		saved, err := s.impediments.UpdateImpediment(ctx, impedimentToRecord(impediment))
		if err == nil {
			return impedimentFromRecord(saved), nil
		}
		if !errors.Is(err, storage.ErrConflict) || attempt > 0 {
			return Impediment{}, translateStoreError(err)
		}
	}
	return Impediment{}, translateStoreError(storage.ErrConflict)
}

func (s *Service) record(ctx context.Context, entityType, entityID, sprintID, action, detail string) {
	entryID, err := s.newID()
	if err != nil {
		return
	}
	_ = s.journal.Record(ctx, storage.JournalRecord{
		ID:         entryID,
		EntityType: entityType,
		EntityID:   entityID,
		SprintID:   sprintID,
		Action:     action,
		Detail:     detail,
		At:         s.nowUTC(),
	})
}

func (s *Service) nowUTC() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func ensureEditable(meeting DailyMeeting) error {
	if DeriveMeetingState(meeting) == MeetingStateCompleted {
		return apperrors.New(apperrors.CodeMeetingFinished, "meeting is already finished")
	}
	return nil
}

func findResponse(meeting *DailyMeeting, personID string) (*ParticipantResponse, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, apperrors.New(apperrors.CodeResponsePersonIDEmpty, "person id is required")
	}
	response := meeting.Response(personID)
	if response == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeResponseNotFound, "participant is not on the meeting sheet", map[string]string{
			"PersonID": personID,
		})
	}
	return response, nil
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, "record not found", err)
	case errors.Is(err, storage.ErrConflict):
		return apperrors.Wrap(apperrors.CodeConflict, "write conflict", err)
	default:
		return err
	}
}
