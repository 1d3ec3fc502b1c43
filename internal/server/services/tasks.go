package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// SubtaskEntry is one element of an incoming subtask list. A nil ID (or an
// ID that matches no current subtask) means "create".
type SubtaskEntry struct {
	ID          *int64
	Subtasktext string
	Done        bool
}

// TaskInput carries a full or partial task write. Subtasks and AssigneeIDs
// distinguish absent (nil: leave untouched) from empty (replace with
// nothing).
type TaskInput struct {
	Category    string
	Description string
	DueDate     time.Time
	Prio        string
	Status      string
	Title       string
	Subtasks    *[]SubtaskEntry
	AssigneeIDs *[]int64
}

// TaskDetail is a task with its owned subtasks and expanded assignees.
type TaskDetail struct {
	Task      models.Task
	Subtasks  []models.Subtask
	Assignees []models.AssigneeInfo
}

// TaskService provides task CRUD. Updates reconcile the nested subtask list
// against the stored one instead of replacing it naively, while the assignee
// set is deliberately replaced wholesale.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create persists a new task. The public identifier is assigned right after
// the first insert, inside the same transaction, so no caller ever observes
// a task without one.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*TaskDetail, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}

	var detail *TaskDetail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		taskRepo := s.repomanager.Tasks(tx)

		task, err := taskRepo.Create(ctx, &models.Task{
			Category:    input.Category,
			Description: input.Description,
			DueDate:     input.DueDate,
			Prio:        input.Prio,
			Status:      input.Status,
			Title:       input.Title,
		})
		if err != nil {
			return err
		}

		task.TaskID, err = taskRepo.AssignPublicID(ctx, task.ID)
		if err != nil {
			return err
		}

		if input.Subtasks != nil {
			subtaskRepo := s.repomanager.Subtasks(tx)
			for _, entry := range *input.Subtasks {
				_, err := subtaskRepo.Create(ctx, &models.Subtask{
					TaskID:      task.ID,
					Subtasktext: entry.Subtasktext,
					Done:        entry.Done,
				})
				if err != nil {
					return err
				}
			}
		}

		if input.AssigneeIDs != nil {
			if err := s.replaceAssignees(ctx, tx, task.ID, *input.AssigneeIDs); err != nil {
				return err
			}
		}

		detail, err = s.loadDetail(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*TaskDetail, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, s.db, task)
}

func (s *TaskService) List(ctx context.Context) ([]TaskDetail, error) {
	taskList, err := s.repomanager.Tasks(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]TaskDetail, 0, len(taskList))
	for i := range taskList {
		detail, err := s.loadDetail(ctx, s.db, &taskList[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

// Update applies scalar fields, reconciles the subtask list when present,
// and replaces the assignee set when present, all in one transaction. The
// public task identifier is never touched.
func (s *TaskService) Update(ctx context.Context, id int64, input TaskInput) (*TaskDetail, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}

	var detail *TaskDetail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		taskRepo := s.repomanager.Tasks(tx)

		task, err := taskRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		task.Category = input.Category
		task.Description = input.Description
		task.DueDate = input.DueDate
		task.Prio = input.Prio
		task.Status = input.Status
		task.Title = input.Title

		if err := taskRepo.Update(ctx, task); err != nil {
			return err
		}

		if input.Subtasks != nil {
			if err := s.syncSubtasks(ctx, tx, task.ID, *input.Subtasks); err != nil {
				return err
			}
		}

		if input.AssigneeIDs != nil {
			if err := s.replaceAssignees(ctx, tx, task.ID, *input.AssigneeIDs); err != nil {
				return err
			}
		}

		detail, err = s.loadDetail(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	// Cascade removes subtasks and assignee rows.
	return s.repomanager.Tasks(s.db).Delete(ctx, id)
}

// syncSubtasks reconciles the incoming entries against the stored subtasks:
// entries with a matching id update that row in place and mark it kept,
// entries with no id (or an unknown one) insert a new row, and every stored
// subtask left unkept is deleted. An empty entries list therefore deletes
// all subtasks.
func (s *TaskService) syncSubtasks(ctx context.Context, tx dbx.DBTX, taskID int64, entries []SubtaskEntry) error {
	subtaskRepo := s.repomanager.Subtasks(tx)

	current, err := subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return err
	}

	existing := make(map[int64]*models.Subtask, len(current))
	for i := range current {
		existing[current[i].ID] = &current[i]
	}

	kept := make(map[int64]bool, len(entries))
	for _, entry := range entries {
		if entry.ID != nil {
			if subtask, ok := existing[*entry.ID]; ok {
				subtask.Subtasktext = entry.Subtasktext
				subtask.Done = entry.Done
				if err := subtaskRepo.Update(ctx, subtask); err != nil {
					return err
				}
				kept[subtask.ID] = true
				continue
			}
		}
		_, err := subtaskRepo.Create(ctx, &models.Subtask{
			TaskID:      taskID,
			Subtasktext: entry.Subtasktext,
			Done:        entry.Done,
		})
		if err != nil {
			return err
		}
	}

	for id := range existing {
		if !kept[id] {
			if err := subtaskRepo.Delete(ctx, id); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *TaskService) replaceAssignees(ctx context.Context, tx dbx.DBTX, taskID int64, contactIDs []int64) error {
	contactRepo := s.repomanager.Contacts(tx)
	for _, contactID := range contactIDs {
		if _, err := contactRepo.GetByID(ctx, contactID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: unknown assignee %d", common.ErrorValidation, contactID)
			}
			return err
		}
	}
	return s.repomanager.Tasks(tx).ReplaceAssignees(ctx, taskID, contactIDs)
}

func (s *TaskService) loadDetail(ctx context.Context, db dbx.DBTX, task *models.Task) (*TaskDetail, error) {
	subtaskList, err := s.repomanager.Subtasks(db).ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	assignees, err := s.repomanager.Tasks(db).ListAssignees(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: *task, Subtasks: subtaskList, Assignees: assignees}, nil
}

func validateTaskInput(input *TaskInput) error {
	if input.Prio == "" {
		input.Prio = models.PrioMedium
	}
	if input.Status == "" {
		input.Status = models.StatusToDos
	}
	if !models.ValidPrio(input.Prio) {
		return fmt.Errorf("%w: prio must be one of low, medium, urgent", common.ErrorValidation)
	}
	if !models.ValidStatus(input.Status) {
		return fmt.Errorf("%w: status must be one of toDos, inProgress, awaitFeedback, done", common.ErrorValidation)
	}
	if input.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", common.ErrorValidation)
	}
	return nil
}
