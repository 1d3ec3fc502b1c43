package models

import "time"

// Task priorities.
const (
	PrioLow    = "low"
	PrioMedium = "medium"
	PrioUrgent = "urgent"
)

// Task board columns.
const (
	StatusToDos         = "toDos"
	StatusInProgress    = "inProgress"
	StatusAwaitFeedback = "awaitFeedback"
	StatusDone          = "done"
)

// ValidPrio reports whether p is one of the known priorities.
func ValidPrio(p string) bool {
	return p == PrioLow || p == PrioMedium || p == PrioUrgent
}

// ValidStatus reports whether s is one of the known board columns.
func ValidStatus(s string) bool {
	return s == StatusToDos || s == StatusInProgress || s == StatusAwaitFeedback || s == StatusDone
}

// Task is a unit of work on the board.
//
// TaskID is the stable public identifier: it is assigned exactly once, right
// after the first insert, inside the same transaction, and never written
// again. ID is the internal row identifier.
type Task struct {
	ID          int64
	TaskID      int64
	Category    string
	Description string
	DueDate     time.Time
	Prio        string
	Status      string
	Title       string
}

// AssigneeInfo is the expanded read representation of a task assignee.
type AssigneeInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
