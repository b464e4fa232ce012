package domain

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/planagil/dailies/internal/platform/errors"
	"github.com/planagil/dailies/internal/services/dailies/storage"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func sequentialIDGenerator(ids ...string) func() (string, error) {
	queue := append([]string(nil), ids...)
	index := 0
	return func() (string, error) {
		if index >= len(queue) {
			return "", ErrIDGeneratorExhausted
		}
		value := queue[index]
		index++
		return value, nil
	}
}

type fakeMeetingStore struct {
	meetings map[string]storage.MeetingRecord
	// conflictsLeft forces the next N updates to fail with ErrConflict.
	conflictsLeft int
	updateCalls   int
}

func newFakeMeetingStore() *fakeMeetingStore {
	return &fakeMeetingStore{meetings: make(map[string]storage.MeetingRecord)}
}

func (s *fakeMeetingStore) CreateMeeting(_ context.Context, record storage.MeetingRecord) error {
	if _, ok := s.meetings[record.ID]; ok {
		return storage.ErrConflict
	}
	s.meetings[record.ID] = record
	return nil
}

func (s *fakeMeetingStore) GetMeeting(_ context.Context, meetingID string) (storage.MeetingRecord, error) {
	record, ok := s.meetings[meetingID]
	if !ok {
		return storage.MeetingRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (s *fakeMeetingStore) UpdateMeeting(_ context.Context, record storage.MeetingRecord) (storage.MeetingRecord, error) {
	s.updateCalls++
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return storage.MeetingRecord{}, storage.ErrConflict
	}
	current, ok := s.meetings[record.ID]
	if !ok {
		return storage.MeetingRecord{}, storage.ErrNotFound
	}
	if current.Version != record.Version {
		return storage.MeetingRecord{}, storage.ErrConflict
	}
	record.Version++
	s.meetings[record.ID] = record
	return record, nil
}

func (s *fakeMeetingStore) ListMeetingsBySprint(_ context.Context, sprintID string, _ string) ([]storage.MeetingRecord, error) {
	var records []storage.MeetingRecord
	for _, record := range s.meetings {
		if record.SprintID == sprintID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *fakeMeetingStore) DeleteMeeting(_ context.Context, meetingID string) error {
	if _, ok := s.meetings[meetingID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.meetings, meetingID)
	return nil
}

type fakeImpedimentStore struct {
	impediments map[string]storage.ImpedimentRecord
}

func newFakeImpedimentStore() *fakeImpedimentStore {
	return &fakeImpedimentStore{impediments: make(map[string]storage.ImpedimentRecord)}
}

func (s *fakeImpedimentStore) CreateImpediment(_ context.Context, record storage.ImpedimentRecord) error {
	if _, ok := s.impediments[record.ID]; ok {
		return storage.ErrConflict
	}
	s.impediments[record.ID] = record
	return nil
}

func (s *fakeImpedimentStore) GetImpediment(_ context.Context, impedimentID string) (storage.ImpedimentRecord, error) {
	record, ok := s.impediments[impedimentID]
	if !ok {
		return storage.ImpedimentRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (s *fakeImpedimentStore) UpdateImpediment(_ context.Context, record storage.ImpedimentRecord) (storage.ImpedimentRecord, error) {
	current, ok := s.impediments[record.ID]
	if !ok {
		return storage.ImpedimentRecord{}, storage.ErrNotFound
	}
	if current.Version != record.Version {
		return storage.ImpedimentRecord{}, storage.ErrConflict
	}
	record.Version++
	s.impediments[record.ID] = record
	return record, nil
}

func (s *fakeImpedimentStore) ListImpedimentsBySprint(_ context.Context, sprintID string, _ string) ([]storage.ImpedimentRecord, error) {
	var records []storage.ImpedimentRecord
	for _, record := range s.impediments {
		if record.SprintID == sprintID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *fakeImpedimentStore) ListImpedimentsByState(_ context.Context, state string) ([]storage.ImpedimentRecord, error) {
	var records []storage.ImpedimentRecord
	for _, record := range s.impediments {
		if record.State == state {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *fakeImpedimentStore) ListImpedimentsByMeeting(_ context.Context, meetingID string) ([]storage.ImpedimentRecord, error) {
	var records []storage.ImpedimentRecord
	for _, record := range s.impediments {
		if record.MeetingID == meetingID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *fakeImpedimentStore) DeleteImpediment(_ context.Context, impedimentID string) error {
	if _, ok := s.impediments[impedimentID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.impediments, impedimentID)
	return nil
}

type fakeTaskSource struct {
	tasks []storage.TaskRecord
}

func (s *fakeTaskSource) ListTasksForSprint(_ context.Context, sprintID string) ([]storage.TaskRecord, error) {
	var records []storage.TaskRecord
	for _, record := range s.tasks {
		if record.SprintID == sprintID {
			records = append(records, record)
		}
	}
	return records, nil
}

type fakeRosterSource struct {
	members []storage.MemberRecord
}

func (s *fakeRosterSource) ListTeamMembers(_ context.Context, sprintID string) ([]storage.MemberRecord, error) {
	var records []storage.MemberRecord
	for _, record := range s.members {
		if record.SprintID == sprintID {
			records = append(records, record)
		}
	}
	return records, nil
}

type fakeJournalStore struct {
	entries []storage.JournalRecord
}

func (s *fakeJournalStore) AppendJournalEntry(_ context.Context, record storage.JournalRecord) error {
	s.entries = append(s.entries, record)
	return nil
}

func (s *fakeJournalStore) ListJournalEntriesByEntity(_ context.Context, entityType string, entityID string) ([]storage.JournalRecord, error) {
	var records []storage.JournalRecord
	for _, record := range s.entries {
		if record.EntityType == entityType && record.EntityID == entityID {
			records = append(records, record)
		}
	}
	return records, nil
}

type serviceFixture struct {
	svc         *Service
	meetings    *fakeMeetingStore
	impediments *fakeImpedimentStore
	tasks       *fakeTaskSource
	roster      *fakeRosterSource
	journal     *fakeJournalStore
}

func newServiceFixture(clock func() time.Time, ids ...string) *serviceFixture {
	fixture := &serviceFixture{
		meetings:    newFakeMeetingStore(),
		impediments: newFakeImpedimentStore(),
		tasks:       &fakeTaskSource{},
		roster:      &fakeRosterSource{},
		journal:     &fakeJournalStore{},
	}
	fixture.svc = NewService(ServiceConfig{
		Meetings:    fixture.meetings,
		Impediments: fixture.impediments,
		Tasks:       fixture.tasks,
		Roster:      fixture.roster,
		Journal:     NewJournal(fixture.journal),
		Clock:       clock,
		NewID:       sequentialIDGenerator(ids...),
	})
	return fixture
}

func TestCreateMeeting_SeedsRosterAndPrefillsAnswers(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	fixture := newServiceFixture(fixedClock(now), "meet-1", "journal-1")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela", Position: 0},
		{SprintID: "sprint-1", PersonID: "8", DisplayName: "Marco", Position: 1},
	}
	start1 := day(2024, 1, 1)
	end2 := day(2024, 1, 2)
	fixture.tasks.tasks = []storage.TaskRecord{
		{ID: "task-1", SprintID: "sprint-1", Code: "PLT-101", Title: "Migrar autenticación", AssigneeID: "7", StartDate: &start1, EndDate: &start1},
		{ID: "task-2", SprintID: "sprint-1", Code: "PLT-102", Title: "Exportar reportes", AssigneeID: "7", StartDate: &start1, EndDate: &end2},
	}

	meeting, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{
		SprintID:       "sprint-1",
		Date:           time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		PlannedMinutes: 15,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	if got := DeriveMeetingState(meeting); got != MeetingStatePending {
		t.Fatalf("expected pending state, got %q", got)
	}
	if len(meeting.Responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(meeting.Responses))
	}
	gabriela := meeting.Response("7")
	wantYesterday := "PLT-101 — Migrar autenticación\nPLT-102 — Exportar reportes"
	if gabriela.Yesterday != wantYesterday {
		t.Fatalf("expected prefilled yesterday %q, got %q", wantYesterday, gabriela.Yesterday)
	}
	if gabriela.Today != "PLT-102 — Exportar reportes" {
		t.Fatalf("expected prefilled today, got %q", gabriela.Today)
	}
	marco := meeting.Response("8")
	if marco.Yesterday != "" || marco.Today != "" {
		t.Fatalf("expected empty answers for unassigned member, got %+v", marco)
	}

	if len(fixture.journal.entries) != 1 || fixture.journal.entries[0].Action != ActionMeetingCreated {
		t.Fatalf("expected one meeting.created journal entry, got %+v", fixture.journal.entries)
	}
}

func TestCreateMeeting_Validation(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)), "meet-1")

	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{Date: day(2024, 1, 2)}); !apperrors.IsCode(err, apperrors.CodeMeetingSprintIDEmpty) {
		t.Fatalf("expected empty-sprint error, got %v", err)
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1"}); !apperrors.IsCode(err, apperrors.CodeMeetingDateMissing) {
		t.Fatalf("expected missing-date error, got %v", err)
	}
}

func TestStartAndFinishMeeting_RecordsDuration(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)), "meet-1", "journal-1", "journal-2", "journal-3")
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	fixture.svc.clock = fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	meeting, err := fixture.svc.StartMeeting(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("start meeting: %v", err)
	}
	if got := DeriveMeetingState(meeting); got != MeetingStateInProgress {
		t.Fatalf("expected in-progress state, got %q", got)
	}

	fixture.svc.clock = fixedClock(time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC))
	meeting, err = fixture.svc.FinishMeeting(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("finish meeting: %v", err)
	}
	if meeting.ActualMinutes != 15 {
		t.Fatalf("expected 15 actual minutes, got %d", meeting.ActualMinutes)
	}

	if _, err := fixture.svc.StartMeeting(context.Background(), "meet-1"); !apperrors.IsCode(err, apperrors.CodeMeetingAlreadyStarted) {
		t.Fatalf("expected already-started error, got %v", err)
	}
}

func TestSetAttendance_PreservesAnswersAcrossToggle(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)), "meet-1", "journal-1")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela"},
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if _, err := fixture.svc.UpdateResponse(context.Background(), "meet-1", "7", FieldYesterday, "terminé la migración"); err != nil {
		t.Fatalf("update yesterday: %v", err)
	}

	meeting, err := fixture.svc.SetAttendance(context.Background(), "meet-1", "7", false, "cita médica")
	if err != nil {
		t.Fatalf("set absent: %v", err)
	}
	if meeting.Response("7").Attended {
		t.Fatal("expected participant marked absent")
	}

	meeting, err = fixture.svc.SetAttendance(context.Background(), "meet-1", "7", true, "")
	if err != nil {
		t.Fatalf("set attended: %v", err)
	}
	response := meeting.Response("7")
	if !response.Attended {
		t.Fatal("expected participant marked attended")
	}
	if response.Yesterday != "terminé la migración" {
		t.Fatalf("expected answer to survive the toggle, got %q", response.Yesterday)
	}
}

func TestUpdateResponse_Rules(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)), "meet-1", "journal-1")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela"},
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	if _, err := fixture.svc.UpdateResponse(context.Background(), "meet-1", "7", FieldAbsenceReason, "viaje"); !apperrors.IsCode(err, apperrors.CodeResponseParticipantAbsent) {
		t.Fatalf("expected participant-absent error, got %v", err)
	}
	if _, err := fixture.svc.UpdateResponse(context.Background(), "meet-1", "99", FieldToday, "algo"); !apperrors.IsCode(err, apperrors.CodeResponseNotFound) {
		t.Fatalf("expected response-not-found error, got %v", err)
	}
}

func TestFinishMeeting_ClearsStaleAbsenceReasons(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)), "meet-1", "journal-1", "journal-2", "journal-3")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela"},
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if _, err := fixture.svc.StartMeeting(context.Background(), "meet-1"); err != nil {
		t.Fatalf("start meeting: %v", err)
	}
	if _, err := fixture.svc.SetAttendance(context.Background(), "meet-1", "7", false, "cita médica"); err != nil {
		t.Fatalf("set absent: %v", err)
	}
	if _, err := fixture.svc.SetAttendance(context.Background(), "meet-1", "7", true, ""); err != nil {
		t.Fatalf("set attended: %v", err)
	}

	meeting, err := fixture.svc.FinishMeeting(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("finish meeting: %v", err)
	}
	if got := meeting.Response("7").AbsenceReason; got != "" {
		t.Fatalf("expected absence reason cleared on finish, got %q", got)
	}

	if _, err := fixture.svc.SetAttendance(context.Background(), "meet-1", "7", false, "tarde"); !apperrors.IsCode(err, apperrors.CodeMeetingFinished) {
		t.Fatalf("expected finished-meeting error, got %v", err)
	}
}

func TestReportImpediment_LinksReporterRow(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)), "meet-1", "journal-1", "imp-1", "journal-2")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela"},
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	impediment, err := fixture.svc.ReportImpediment(context.Background(), ReportImpedimentInput{
		SprintID:    "sprint-1",
		MeetingID:   "meet-1",
		ReporterID:  "7",
		Description: "el ambiente de pruebas está caído",
		Priority:    PriorityHigh,
	})
	if err != nil {
		t.Fatalf("report impediment: %v", err)
	}
	if impediment.State != ImpedimentOpen {
		t.Fatalf("expected open state, got %q", impediment.State)
	}

	meeting, err := fixture.svc.GetMeeting(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if got := meeting.Response("7").ImpedimentID; got != "imp-1" {
		t.Fatalf("expected reporter row linked to imp-1, got %q", got)
	}
}

func TestResolveImpediment_LifecycleErrors(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)), "imp-1", "journal-1", "journal-2")
	if _, err := fixture.svc.ReportImpediment(context.Background(), ReportImpedimentInput{
		SprintID:    "sprint-1",
		ReporterID:  "7",
		Description: "faltan credenciales del API",
	}); err != nil {
		t.Fatalf("report impediment: %v", err)
	}

	if _, err := fixture.svc.ResolveImpediment(context.Background(), "imp-1", "  "); !apperrors.IsCode(err, apperrors.CodeImpedimentResolutionEmpty) {
		t.Fatalf("expected empty-resolution error, got %v", err)
	}
	resolved, err := fixture.svc.ResolveImpediment(context.Background(), "imp-1", "se rotaron las credenciales")
	if err != nil {
		t.Fatalf("resolve impediment: %v", err)
	}
	if resolved.ResolvedAt == nil || !resolved.ResolvedAt.Equal(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)) {
		t.Fatalf("expected resolution timestamp, got %v", resolved.ResolvedAt)
	}
	stored, ok := fixture.impediments.impediments["imp-1"]
	if !ok || stored.ResolvedAt == nil || !stored.ResolvedAt.Equal(*resolved.ResolvedAt) {
		t.Fatalf("expected resolution timestamp to persist, got %+v", stored)
	}
	if _, err := fixture.svc.ResolveImpediment(context.Background(), "imp-1", "otra vez"); !apperrors.IsCode(err, apperrors.CodeImpedimentResolved) {
		t.Fatalf("expected already-resolved error, got %v", err)
	}
}

func TestMutateMeeting_RetriesConflictOnce(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)), "meet-1", "journal-1", "journal-2")
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	fixture.meetings.conflictsLeft = 1
	if _, err := fixture.svc.StartMeeting(context.Background(), "meet-1"); err != nil {
		t.Fatalf("expected retry to absorb one conflict, got %v", err)
	}
	if fixture.meetings.updateCalls != 2 {
		t.Fatalf("expected 2 update calls, got %d", fixture.meetings.updateCalls)
	}
}

func TestMutateMeeting_SurfacesPersistentConflict(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)), "meet-1", "journal-1", "journal-2")
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	fixture.meetings.conflictsLeft = 2
	_, err := fixture.svc.SetMeetingNotes(context.Background(), "meet-1", "nota")
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected surfaced conflict, got %v", err)
	}
	if fixture.meetings.updateCalls != 2 {
		t.Fatalf("expected exactly 2 update calls, got %d", fixture.meetings.updateCalls)
	}
}

func TestSprintSummary_AggregatesStores(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)),
		"meet-1", "journal-1", "journal-2", "journal-3", "imp-1", "journal-4")
	fixture.roster.members = []storage.MemberRecord{
		{SprintID: "sprint-1", PersonID: "7", DisplayName: "Gabriela"},
		{SprintID: "sprint-1", PersonID: "8", DisplayName: "Marco"},
	}
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	fixture.svc.clock = fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
	if _, err := fixture.svc.StartMeeting(context.Background(), "meet-1"); err != nil {
		t.Fatalf("start meeting: %v", err)
	}
	if _, err := fixture.svc.SetAttendance(context.Background(), "meet-1", "8", false, "vacaciones"); err != nil {
		t.Fatalf("set absent: %v", err)
	}
	fixture.svc.clock = fixedClock(time.Date(2024, 1, 2, 9, 12, 0, 0, time.UTC))
	if _, err := fixture.svc.FinishMeeting(context.Background(), "meet-1"); err != nil {
		t.Fatalf("finish meeting: %v", err)
	}
	if _, err := fixture.svc.ReportImpediment(context.Background(), ReportImpedimentInput{
		SprintID:    "sprint-1",
		ReporterID:  "7",
		Description: "bloqueo con la base de datos",
	}); err != nil {
		t.Fatalf("report impediment: %v", err)
	}

	summary, err := fixture.svc.SprintSummary(context.Background(), "sprint-1")
	if err != nil {
		t.Fatalf("sprint summary: %v", err)
	}
	if summary.TotalMeetings != 1 || summary.CompletedMeetings != 1 {
		t.Fatalf("expected one completed meeting, got %+v", summary)
	}
	if summary.AverageAttendancePercent != 50 {
		t.Fatalf("expected 50%% attendance, got %d", summary.AverageAttendancePercent)
	}
	if summary.AverageActualMinutes != 12 {
		t.Fatalf("expected 12 average minutes, got %d", summary.AverageActualMinutes)
	}
	if summary.OpenImpediments != 1 {
		t.Fatalf("expected 1 open impediment, got %d", summary.OpenImpediments)
	}
}

func TestMeetingJournal_ListsMeetingEntries(t *testing.T) {
	t.Parallel()

	fixture := newServiceFixture(fixedClock(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)), "meet-1", "journal-1", "journal-2")
	if _, err := fixture.svc.CreateMeeting(context.Background(), CreateMeetingInput{SprintID: "sprint-1", Date: day(2024, 1, 2)}); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if _, err := fixture.svc.StartMeeting(context.Background(), "meet-1"); err != nil {
		t.Fatalf("start meeting: %v", err)
	}

	entries, err := fixture.svc.MeetingJournal(context.Background(), "meet-1")
	if err != nil {
		t.Fatalf("meeting journal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}
	if entries[0].Action != ActionMeetingCreated || entries[1].Action != ActionMeetingStarted {
		t.Fatalf("expected created then started, got %+v", entries)
	}
}
