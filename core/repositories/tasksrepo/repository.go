// Package tasksrepo provides access to owner-scoped task storage.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskflow/sdk/logger"
)

// Set of error values for CRUD operations on the task resource.
var (
	ErrNotFound     = errors.New("task not found")
	ErrMissingTitle = errors.New("title is required")
)

// Storer defines the data storage interface for Task.
type Storer interface {
	List(ctx context.Context, userID string) ([]Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, userID, taskID string, changes UpdateTask, updatedAt time.Time) (Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns all tasks owned by the user, ordered by creation time
// descending.
func (r *Repository) List(ctx context.Context, userID string) ([]Task, error) {
	records, err := r.storer.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}

	return records, nil
}

// Create validates the input, applies defaults and persists a new task
// owned by input.UserID.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Task{}, ErrMissingTitle
	}

	priority := input.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	category := input.Category
	if category == "" {
		category = DefaultCategory
	}

	now := time.Now().UTC()
	task := Task{
		TaskID:      uuid.NewString(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Priority:    priority,
		Category:    category,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := r.storer.Create(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", created.TaskID, "user_id", created.UserID)
	return created, nil
}

// Update applies the given partial field set to the task matching both id
// and owner, refreshing the modification timestamp. ErrNotFound when no
// task matches id+owner, which also conceals the existence of another
// owner's task with that id.
func (r *Repository) Update(ctx context.Context, userID, taskID string, changes UpdateTask) (Task, error) {
	updated, err := r.storer.Update(ctx, userID, taskID, changes, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Task{}, ErrNotFound
		}
		return Task{}, fmt.Errorf("task repository update: %w", err)
	}

	return updated, nil
}

// Delete removes the task matching both id and owner. ErrNotFound under
// the same matching rule as Update.
func (r *Repository) Delete(ctx context.Context, userID, taskID string) error {
	if err := r.storer.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("task repository delete: %w", err)
	}

	return nil
}
