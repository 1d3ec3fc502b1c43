// Package subtasks provides persistence for the checklist items owned by
// tasks.
package subtasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, subtask *models.Subtask) (*models.Subtask, error)

	GetByID(ctx context.Context, id int64) (*models.Subtask, error)

	List(ctx context.Context) ([]models.Subtask, error)

	// ListByTask returns all subtasks owned by the given task.
	ListByTask(ctx context.Context, taskID int64) ([]models.Subtask, error)

	Update(ctx context.Context, subtask *models.Subtask) error

	Delete(ctx context.Context, id int64) error
}
