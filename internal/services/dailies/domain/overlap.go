package domain

import (
	"strings"
	"time"
)

// SprintTask is a task planned for the sprint, with an assignee and a date
// range at day granularity.
type SprintTask struct {
	ID         string
	SprintID   string
	Code       string
	Title      string
	AssigneeID string
	StartDate  time.Time
	EndDate    time.Time
}

// TaskOverlapsDay reports whether the day falls inside the task's date range.
// Both bounds are inclusive and the comparison is at day granularity. Tasks
// missing either date never match.
func TaskOverlapsDay(task SprintTask, day time.Time) bool {
	if task.StartDate.IsZero() || task.EndDate.IsZero() {
		return false
	}
	day = DateOnly(day)
	start := DateOnly(task.StartDate)
	end := DateOnly(task.EndDate)
	return !day.Before(start) && !day.After(end)
}

// TasksForDay filters the tasks assigned to a person whose date range covers
// the given day, preserving input order.
func TasksForDay(tasks []SprintTask, assigneeID string, day time.Time) []SprintTask {
	var matched []SprintTask
	for _, task := range tasks {
		if task.AssigneeID != assigneeID {
			continue
		}
		if TaskOverlapsDay(task, day) {
			matched = append(matched, task)
		}
	}
	return matched
}

// FormatTaskLines renders tasks as one "CODE — TITLE" line each, in input
// order.
func FormatTaskLines(tasks []SprintTask) string {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, task.Code+" — "+task.Title)
	}
	return strings.Join(lines, "\n")
}

// Seed is the prefilled standup text for one participant, derived from the
// sprint plan.
type Seed struct {
	Yesterday string
	Today     string
}

// SeedAnswers derives the prefilled yesterday and today answers for a
// participant from the sprint tasks: yesterday lists the tasks active on the
// previous day, today the tasks active on the meeting day.
func SeedAnswers(tasks []SprintTask, assigneeID string, meetingDay time.Time) Seed {
	meetingDay = DateOnly(meetingDay)
	previousDay := meetingDay.AddDate(0, 0, -1)
	return Seed{
		Yesterday: FormatTaskLines(TasksForDay(tasks, assigneeID, previousDay)),
		Today:     FormatTaskLines(TasksForDay(tasks, assigneeID, meetingDay)),
	}
}

// ApplySeed fills the response's answers from the seed. Only empty fields are
// filled so that anything already typed is never overwritten.
func ApplySeed(response *ParticipantResponse, seed Seed) {
	if response.Yesterday == "" {
		response.Yesterday = seed.Yesterday
	}
	if response.Today == "" {
		response.Today = seed.Today
	}
}
