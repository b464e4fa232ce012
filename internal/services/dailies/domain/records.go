package domain

import (
	"github.com/planagil/dailies/internal/services/dailies/storage"
)

func meetingFromRecord(record storage.MeetingRecord) DailyMeeting {
	meeting := DailyMeeting{
		ID:             record.ID,
		SprintID:       record.SprintID,
		Date:           record.MeetingDate,
		StartedAt:      record.StartedAt,
		EndedAt:        record.EndedAt,
		PlannedMinutes: record.PlannedMinutes,
		ActualMinutes:  record.ActualMinutes,
		Notes:          record.Notes,
		Version:        record.Version,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	for _, response := range record.Responses {
		meeting.Responses = append(meeting.Responses, ParticipantResponse{
			PersonID:      response.PersonID,
			DisplayName:   response.DisplayName,
			Attended:      response.Attended,
			AbsenceReason: response.AbsenceReason,
			Yesterday:     response.Yesterday,
			Today:         response.Today,
			ImpedimentID:  response.ImpedimentID,
		})
		if response.ImpedimentID != "" {
			meeting.ImpedimentIDs = append(meeting.ImpedimentIDs, response.ImpedimentID)
		}
	}
	return meeting
}

func meetingToRecord(meeting DailyMeeting) storage.MeetingRecord {
	record := storage.MeetingRecord{
		ID:             meeting.ID,
		SprintID:       meeting.SprintID,
		MeetingDate:    meeting.Date,
		StartedAt:      meeting.StartedAt,
		EndedAt:        meeting.EndedAt,
		PlannedMinutes: meeting.PlannedMinutes,
		ActualMinutes:  meeting.ActualMinutes,
		Notes:          meeting.Notes,
		Version:        meeting.Version,
		CreatedAt:      meeting.CreatedAt,
		UpdatedAt:      meeting.UpdatedAt,
	}
	for position, response := range meeting.Responses {
		record.Responses = append(record.Responses, storage.ResponseRecord{
			MeetingID:     meeting.ID,
			PersonID:      response.PersonID,
			DisplayName:   response.DisplayName,
			Attended:      response.Attended,
			AbsenceReason: response.AbsenceReason,
			Yesterday:     response.Yesterday,
			Today:         response.Today,
			ImpedimentID:  response.ImpedimentID,
			Position:      position,
		})
	}
	return record
}

func impedimentFromRecord(record storage.ImpedimentRecord) Impediment {
	return Impediment{
		ID:          record.ID,
		SprintID:    record.SprintID,
		MeetingID:   record.MeetingID,
		Description: record.Description,
		Priority:    ImpedimentPriority(record.Priority),
		State:       ImpedimentState(record.State),
		ReporterID:  record.ReporterID,
		ResolverID:  record.ResolverID,
		ReportedAt:  record.ReportedAt,
		DueDate:     record.DueDate,
		Resolution:  record.Resolution,
		ResolvedAt:  record.ResolvedAt,
		Version:     record.Version,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func impedimentToRecord(impediment Impediment) storage.ImpedimentRecord {
	return storage.ImpedimentRecord{
		ID:          impediment.ID,
		SprintID:    impediment.SprintID,
		MeetingID:   impediment.MeetingID,
		Description: impediment.Description,
		Priority:    string(impediment.Priority),
		State:       string(impediment.State),
		ReporterID:  impediment.ReporterID,
		ResolverID:  impediment.ResolverID,
		ReportedAt:  impediment.ReportedAt,
		DueDate:     impediment.DueDate,
		Resolution:  impediment.Resolution,
		ResolvedAt:  impediment.ResolvedAt,
		Version:     impediment.Version,
		CreatedAt:   impediment.CreatedAt,
		UpdatedAt:   impediment.UpdatedAt,
	}
}

func taskFromRecord(record storage.TaskRecord) SprintTask {
	task := SprintTask{
		ID:         record.ID,
		SprintID:   record.SprintID,
		Code:       record.Code,
		Title:      record.Title,
		AssigneeID: record.AssigneeID,
	}
	if record.StartDate != nil {
		task.StartDate = *record.StartDate
	}
	if record.EndDate != nil {
		task.EndDate = *record.EndDate
	}
	return task
}

func memberFromRecord(record storage.MemberRecord) TeamMember {
	return TeamMember{
		ID:          record.PersonID,
		SprintID:    record.SprintID,
		DisplayName: record.DisplayName,
		Role:        record.Role,
	}
}
