package constants

import "strings"

const (
	TaskStatusTodo       = "To-Do"
	TaskStatusInProgress = "In-Progress"
	TaskStatusDone       = "Done"

	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// NormalizeStatus maps free-form client input ("todo", "IN-PROGRESS") to the
// canonical status values. Unrecognized input is returned unchanged so the
// model's enum check rejects it.
func NormalizeStatus(s string) string {
	switch strings.ToLower(s) {
	case "todo", "to-do", "to_do":
		return TaskStatusTodo
	case "in-progress", "inprogress", "in_progress":
		return TaskStatusInProgress
	case "done":
		return TaskStatusDone
	}
	return s
}

// NormalizePriority maps free-form client input to the canonical priorities.
func NormalizePriority(p string) string {
	switch strings.ToLower(p) {
	case "low":
		return TaskPriorityLow
	case "medium":
		return TaskPriorityMedium
	case "high":
		return TaskPriorityHigh
	}
	return p
}

func ValidStatus(s string) bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusDone
}

func ValidPriority(p string) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}
