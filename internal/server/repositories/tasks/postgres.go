package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	if task.Prio == "" {
		task.Prio = models.PrioMedium
	}
	if task.Status == "" {
		task.Status = models.StatusToDos
	}

	query := `
		INSERT INTO tasks (category, description, due_date, prio, status, title)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Category, task.Description, task.DueDate, task.Prio,
		task.Status, task.Title).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) AssignPublicID(ctx context.Context, id int64) (int64, error) {
	// task_id IS NULL guards the set-once invariant at the storage boundary.
	query := `
		UPDATE tasks SET task_id = id
		WHERE id = $1 AND task_id IS NULL
		RETURNING task_id
	`

	var taskID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return taskID, nil
}

const taskColumns = `id, task_id, category, description, due_date, prio, status, title`

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task := &models.Task{}
	var taskID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&task.ID, &taskID,
		&task.Category, &task.Description, &task.DueDate, &task.Prio,
		&task.Status, &task.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	task.TaskID = taskID.Int64
	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		task := models.Task{}
		var taskID sql.NullInt64
		if err := rows.Scan(&task.ID, &taskID, &task.Category, &task.Description,
			&task.DueDate, &task.Prio, &task.Status, &task.Title); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		task.TaskID = taskID.Int64
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET category = $2, description = $3, due_date = $4, prio = $5, status = $6, title = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.Category, task.Description, task.DueDate,
		task.Prio, task.Status, task.Title)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ReplaceAssignees(ctx context.Context, taskID int64, contactIDs []int64) error {

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for _, contactID := range contactIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, contact_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			taskID, contactID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) ListAssignees(ctx context.Context, taskID int64) ([]models.AssigneeInfo, error) {
	query := `
		SELECT c.id, c.name, c.color
		FROM task_assignees ta
		JOIN contacts c ON c.id = ta.contact_id
		WHERE ta.task_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.AssigneeInfo
	for rows.Next() {
		info := models.AssigneeInfo{}
		if err := rows.Scan(&info.ID, &info.Name, &info.Color); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
