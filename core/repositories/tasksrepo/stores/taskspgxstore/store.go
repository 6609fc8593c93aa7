// Package taskspgxstore implements tasksrepo.Storer against postgres.
// Every operation is a single owner-scoped statement; consistency is
// delegated to the store's row-level atomicity.
package taskspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskflow/core/repositories/tasksrepo"
	"github.com/jrazmi/taskflow/infrastructure/postgresdb"
	"github.com/jrazmi/taskflow/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

const taskColumns = `task_id, user_id, title, description, completed, priority, category, due_date, created_at, updated_at`

func (s *Store) List(ctx context.Context, userID string) ([]tasksrepo.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	args := pgx.NamedArgs{"user_id": userID}
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	sl, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return sl, nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (@task_id, @user_id, @title, @description, @completed, @priority, @category, @due_date, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_id":     task.TaskID,
		"user_id":     task.UserID,
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
		"priority":    task.Priority,
		"category":    task.Category,
		"due_date":    task.DueDate,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

func (s *Store) Update(ctx context.Context, userID, taskID string, changes tasksrepo.UpdateTask, updatedAt time.Time) (tasksrepo.Task, error) {
	// Absent fields keep their stored value. Matching on id+owner in the
	// same statement keeps the whole partial update a single row write.
	query := `UPDATE tasks SET
			title = COALESCE(@title, title),
			description = COALESCE(@description, description),
			completed = COALESCE(@completed, completed),
			priority = COALESCE(@priority, priority),
			category = COALESCE(@category, category),
			due_date = COALESCE(@due_date, due_date),
			updated_at = @updated_at
		WHERE task_id = @task_id AND user_id = @user_id
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"task_id":     taskID,
		"user_id":     userID,
		"title":       changes.Title,
		"description": changes.Description,
		"completed":   changes.Completed,
		"priority":    changes.Priority,
		"category":    changes.Category,
		"due_date":    changes.DueDate,
		"updated_at":  updatedAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

func (s *Store) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks
		WHERE task_id = @task_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if tag.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}

	return nil
}
