// Package workingset keeps a local-first, in-memory copy of the
// caller's tasks. Mutations apply to the local set immediately; the
// remote call is best effort and a failure never rolls the local
// change back.
package workingset

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskflow/client/taskapi"
	"github.com/jrazmi/taskflow/sdk/logger"
)

// API is the remote task service surface the set synchronizes against.
type API interface {
	List(ctx context.Context) ([]taskapi.Task, error)
	Create(ctx context.Context, input taskapi.CreateTaskInput) (taskapi.Task, error)
	Update(ctx context.Context, taskID string, input taskapi.UpdateTaskInput) (taskapi.Task, error)
	Delete(ctx context.Context, taskID string) error
}

// SnapshotStore persists the full task set between sessions.
type SnapshotStore interface {
	Save(tasks []taskapi.Task) error
	Load() ([]taskapi.Task, error)
}

const (
	defaultPriority = "medium"
	defaultCategory = "Personal"

	// FilterAll matches every value for the category and priority filters.
	FilterAll = "all"
)

// WorkingSet holds the local task set plus the active filter state.
type WorkingSet struct {
	log  *logger.Logger
	api  API
	snap SnapshotStore

	mu       sync.RWMutex
	tasks    []taskapi.Task
	query    string
	category string
	priority string
}

// New creates an empty working set. Call Load to populate it.
func New(log *logger.Logger, api API, snap SnapshotStore) *WorkingSet {
	return &WorkingSet{
		log:      log,
		api:      api,
		snap:     snap,
		category: FilterAll,
		priority: FilterAll,
	}
}

// Load fetches the task set from the service. When the service is
// unreachable it falls back to the last snapshot, and failing that
// starts empty.
func (w *WorkingSet) Load(ctx context.Context) error {
	tasks, err := w.api.List(ctx)
	if err != nil {
		w.log.DebugContext(ctx, "workingset: list failed, using snapshot", "err", err)
		tasks, err = w.snap.Load()
		if err != nil {
			w.log.DebugContext(ctx, "workingset: no usable snapshot", "err", err)
			tasks = nil
		}
	}

	w.mu.Lock()
	w.tasks = tasks
	w.mu.Unlock()
	w.persist(ctx)
	return nil
}

// Add creates a task. The server-confirmed record is preferred; when
// the service is unreachable a local record is synthesized so the task
// still lands in the set.
func (w *WorkingSet) Add(ctx context.Context, input taskapi.CreateTaskInput) taskapi.Task {
	task, err := w.api.Create(ctx, input)
	if err != nil {
		w.log.DebugContext(ctx, "workingset: create failed, keeping local task", "err", err)
		task = synthesize(input)
	}

	w.mu.Lock()
	w.tasks = append([]taskapi.Task{task}, w.tasks...)
	w.mu.Unlock()
	w.persist(ctx)
	return task
}

// Update applies a partial update to the local record, then pushes it
// to the service. A push failure is swallowed.
func (w *WorkingSet) Update(ctx context.Context, taskID string, input taskapi.UpdateTaskInput) bool {
	now := time.Now().UTC()

	w.mu.Lock()
	found := false
	for i := range w.tasks {
		if w.tasks[i].ID != taskID {
			continue
		}
		apply(&w.tasks[i], input, now)
		found = true
		break
	}
	w.mu.Unlock()

	if !found {
		return false
	}
	w.persist(ctx)

	if _, err := w.api.Update(ctx, taskID, input); err != nil {
		w.log.DebugContext(ctx, "workingset: remote update failed", "task_id", taskID, "err", err)
	}
	return true
}

// Toggle flips a task's completed flag.
func (w *WorkingSet) Toggle(ctx context.Context, taskID string) bool {
	w.mu.RLock()
	var completed *bool
	for i := range w.tasks {
		if w.tasks[i].ID == taskID {
			v := !w.tasks[i].Completed
			completed = &v
			break
		}
	}
	w.mu.RUnlock()

	if completed == nil {
		return false
	}
	return w.Update(ctx, taskID, taskapi.UpdateTaskInput{Completed: completed})
}

// Delete removes the task from the local set, then from the service.
// A remote failure is swallowed.
func (w *WorkingSet) Delete(ctx context.Context, taskID string) bool {
	w.mu.Lock()
	found := false
	kept := w.tasks[:0]
	for _, t := range w.tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	w.tasks = kept
	w.mu.Unlock()

	if !found {
		return false
	}
	w.persist(ctx)

	if err := w.api.Delete(ctx, taskID); err != nil {
		w.log.DebugContext(ctx, "workingset: remote delete failed", "task_id", taskID, "err", err)
	}
	return true
}

// SetSearch sets the free-text filter matched against title and
// description.
func (w *WorkingSet) SetSearch(query string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.query = query
}

// SetCategory sets the category filter. FilterAll matches everything.
func (w *WorkingSet) SetCategory(category string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.category = category
}

// SetPriority sets the priority filter. FilterAll matches everything.
func (w *WorkingSet) SetPriority(priority string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.priority = priority
}

// All returns a copy of the full local set.
func (w *WorkingSet) All() []taskapi.Task {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]taskapi.Task, len(w.tasks))
	copy(out, w.tasks)
	return out
}

// Filtered returns the tasks matching the active search, category and
// priority filters.
func (w *WorkingSet) Filtered() []taskapi.Task {
	w.mu.RLock()
	defer w.mu.RUnlock()

	query := strings.ToLower(w.query)
	out := []taskapi.Task{}
	for _, t := range w.tasks {
		matchesSearch := strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query)
		matchesCategory := w.category == FilterAll || t.Category == w.category
		matchesPriority := w.priority == FilterAll || t.Priority == w.priority
		if matchesSearch && matchesCategory && matchesPriority {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes the full local set. An overdue task is pending with
// a due date strictly before now.
func (w *WorkingSet) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	now := time.Now()
	s := Stats{Total: len(w.tasks)}
	for _, t := range w.tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.DueDate != nil && t.DueDate.Before(now) {
			s.Overdue++
		}
	}
	return s
}

// Categories returns the distinct categories in first-appearance
// order, each with a stable display color and a task count.
func (w *WorkingSet) Categories() []Category {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var order []string
	counts := map[string]int{}
	for _, t := range w.tasks {
		if _, ok := counts[t.Category]; !ok {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	out := make([]Category, 0, len(order))
	for _, name := range order {
		out = append(out, Category{
			ID:    name,
			Name:  name,
			Color: CategoryColor(name),
			Count: counts[name],
		})
	}
	return out
}

func (w *WorkingSet) persist(ctx context.Context) {
	w.mu.RLock()
	tasks := make([]taskapi.Task, len(w.tasks))
	copy(tasks, w.tasks)
	w.mu.RUnlock()

	if err := w.snap.Save(tasks); err != nil {
		w.log.DebugContext(ctx, "workingset: snapshot save failed", "err", err)
	}
}

func synthesize(input taskapi.CreateTaskInput) taskapi.Task {
	now := time.Now().UTC()
	task := taskapi.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if task.Priority == "" {
		task.Priority = defaultPriority
	}
	if task.Category == "" {
		task.Category = defaultCategory
	}
	return task
}

func apply(t *taskapi.Task, input taskapi.UpdateTaskInput, now time.Time) {
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Completed != nil {
		t.Completed = *input.Completed
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.Category != nil {
		t.Category = *input.Category
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	t.UpdatedAt = now
}
