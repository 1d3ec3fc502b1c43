package subtasks

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

func (r *PostgresRepository) Create(ctx context.Context, subtask *models.Subtask) (*models.Subtask, error) {
	query := `
		INSERT INTO subtasks (task_id, subtasktext, done)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		subtask.TaskID, subtask.Subtasktext, subtask.Done).Scan(&subtask.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return subtask, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Subtask, error) {
	query := `
		SELECT id, task_id, subtasktext, done
		FROM subtasks
		WHERE id = $1
	`

	subtask := &models.Subtask{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subtask.ID, &subtask.TaskID, &subtask.Subtasktext, &subtask.Done)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return subtask, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Subtask, error) {
	return r.list(ctx, `SELECT id, task_id, subtasktext, done FROM subtasks ORDER BY id`)
}

func (r *PostgresRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Subtask, error) {
	return r.list(ctx,
		`SELECT id, task_id, subtasktext, done FROM subtasks WHERE task_id = $1 ORDER BY id`,
		taskID)
}

func (r *PostgresRepository) Update(ctx context.Context, subtask *models.Subtask) error {
	query := `
		UPDATE subtasks SET subtasktext = $2, done = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, subtask.ID, subtask.Subtasktext, subtask.Done)
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
		DELETE FROM subtasks
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

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Subtask
	for rows.Next() {
		subtask := models.Subtask{}
		if err := rows.Scan(&subtask.ID, &subtask.TaskID, &subtask.Subtasktext, &subtask.Done); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, subtask)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
