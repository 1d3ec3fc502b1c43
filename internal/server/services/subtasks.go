package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// SubtaskInput carries the writable fields of a standalone subtask write.
type SubtaskInput struct {
	TaskID      int64
	Subtasktext string
	Done        bool
}

// SubtaskService exposes subtasks as a standalone resource collection,
// alongside the nested writes handled by TaskService.
type SubtaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubtaskService(db *sql.DB, m repomanager.RepositoryManager) *SubtaskService {
	return &SubtaskService{db: db, repomanager: m}
}

func (s *SubtaskService) List(ctx context.Context) ([]models.Subtask, error) {
	return s.repomanager.Subtasks(s.db).List(ctx)
}

func (s *SubtaskService) Get(ctx context.Context, id int64) (*models.Subtask, error) {
	return s.repomanager.Subtasks(s.db).GetByID(ctx, id)
}

func (s *SubtaskService) Create(ctx context.Context, input SubtaskInput) (*models.Subtask, error) {
	if err := validateSubtaskInput(&input); err != nil {
		return nil, err
	}

	// The owning task must exist; subtasks are never orphans.
	if _, err := s.repomanager.Tasks(s.db).GetByID(ctx, input.TaskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown task %d", common.ErrorValidation, input.TaskID)
		}
		return nil, err
	}

	return s.repomanager.Subtasks(s.db).Create(ctx, &models.Subtask{
		TaskID:      input.TaskID,
		Subtasktext: input.Subtasktext,
		Done:        input.Done,
	})
}

func (s *SubtaskService) Update(ctx context.Context, id int64, input SubtaskInput) (*models.Subtask, error) {
	if err := validateSubtaskInput(&input); err != nil {
		return nil, err
	}

	repo := s.repomanager.Subtasks(s.db)
	subtask, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Ownership is fixed at creation; only text and done are writable.
	subtask.Subtasktext = input.Subtasktext
	subtask.Done = input.Done

	if err := repo.Update(ctx, subtask); err != nil {
		return nil, err
	}
	return subtask, nil
}

func (s *SubtaskService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Subtasks(s.db).Delete(ctx, id)
}

func validateSubtaskInput(input *SubtaskInput) error {
	input.Subtasktext = strings.TrimSpace(input.Subtasktext)
	if input.Subtasktext == "" {
		return fmt.Errorf("%w: subtasktext is required", common.ErrorValidation)
	}
	return nil
}
