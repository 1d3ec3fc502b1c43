package models

// Subtask is a checklist line item owned by exactly one task.
type Subtask struct {
	ID          int64
	TaskID      int64
	Subtasktext string
	Done        bool
}
