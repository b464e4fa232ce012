package domain

import (
	"math"
	"time"
)

// TeamMember is one person on the sprint roster.
type TeamMember struct {
	ID          string
	SprintID    string
	DisplayName string
	Role        string
}

// SprintSummary aggregates the daily meetings and impediments of a sprint.
type SprintSummary struct {
	SprintID          string
	TotalMeetings     int
	CompletedMeetings int
	// AverageAttendancePercent averages per-meeting attendance, rounded to
	// the nearest whole percent. Zero when there are no meetings or no
	// meeting has participants.
	AverageAttendancePercent int
	// AverageActualMinutes averages the recorded duration of completed
	// meetings, rounded to the nearest minute.
	AverageActualMinutes int
	OpenImpediments      int
	// LatestMeeting is the most recent meeting by date, nil when the sprint
	// has none.
	LatestMeeting *DailyMeeting
}

// Summarize aggregates meetings and impediments into a sprint summary. All
// averages are zero-safe: empty inputs yield a zero-valued summary rather
// than a division error.
func Summarize(sprintID string, meetings []DailyMeeting, impediments []Impediment) SprintSummary {
	summary := SprintSummary{SprintID: sprintID, TotalMeetings: len(meetings)}

	var (
		attendanceSum   float64
		attendanceCount int
		minutesSum      int
		latest          *DailyMeeting
		latestDate      time.Time
	)
	for i := range meetings {
		meeting := &meetings[i]
		if DeriveMeetingState(*meeting) == MeetingStateCompleted {
			summary.CompletedMeetings++
			minutesSum += meeting.ActualMinutes
		}
		if total := len(meeting.Responses); total > 0 {
			attendanceSum += float64(AttendingCount(meeting.Responses)) / float64(total) * 100
			attendanceCount++
		}
		if latest == nil || meeting.Date.After(latestDate) {
			latest = meeting
			latestDate = meeting.Date
		}
	}
	if attendanceCount > 0 {
		summary.AverageAttendancePercent = int(math.Round(attendanceSum / float64(attendanceCount)))
	}
	if summary.CompletedMeetings > 0 {
		summary.AverageActualMinutes = int(math.Round(float64(minutesSum) / float64(summary.CompletedMeetings)))
	}
	if latest != nil {
		copied := *latest
		summary.LatestMeeting = &copied
	}

	for _, impediment := range impediments {
		if impediment.State != ImpedimentResolved {
			summary.OpenImpediments++
		}
	}
	return summary
}
