// Package tasks provides persistence for task records and their assignee
// relation.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	// Create inserts a new task row and returns it with the internal ID set.
	// The public TaskID is not assigned here; callers follow up with
	// AssignPublicID inside the same transaction.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// AssignPublicID sets the public task identifier to the internal row ID,
	// only if it has never been set, and returns the resulting value.
	AssignPublicID(ctx context.Context, id int64) (int64, error)

	GetByID(ctx context.Context, id int64) (*models.Task, error)

	List(ctx context.Context) ([]models.Task, error)

	// Update persists the task's mutable fields. The public TaskID is never
	// written by updates.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task; the schema cascades to subtasks and assignee
	// rows.
	Delete(ctx context.Context, id int64) error

	// ReplaceAssignees replaces the full assignee set of a task
	// (set-equals semantics, no diffing).
	ReplaceAssignees(ctx context.Context, taskID int64, contactIDs []int64) error

	// ListAssignees returns the expanded assignee representation for a task.
	ListAssignees(ctx context.Context, taskID int64) ([]models.AssigneeInfo, error)
}
