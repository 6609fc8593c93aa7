package tasksrepo

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jrazmi/taskflow/sdk/logger"
)

type fakeStorer struct {
	tasks []Task

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	lastCreate    Task
	lastUpdatedAt time.Time
}

func (f *fakeStorer) List(ctx context.Context, userID string) ([]Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStorer) Create(ctx context.Context, task Task) (Task, error) {
	if f.createErr != nil {
		return Task{}, f.createErr
	}
	f.lastCreate = task
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeStorer) Update(ctx context.Context, userID, taskID string, changes UpdateTask, updatedAt time.Time) (Task, error) {
	if f.updateErr != nil {
		return Task{}, f.updateErr
	}
	f.lastUpdatedAt = updatedAt
	for i := range f.tasks {
		if f.tasks[i].TaskID == taskID && f.tasks[i].UserID == userID {
			if changes.Title != nil {
				f.tasks[i].Title = *changes.Title
			}
			if changes.Completed != nil {
				f.tasks[i].Completed = *changes.Completed
			}
			f.tasks[i].UpdatedAt = updatedAt
			return f.tasks[i], nil
		}
	}
	return Task{}, ErrNotFound
}

func (f *fakeStorer) Delete(ctx context.Context, userID, taskID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, t := range f.tasks {
		if t.TaskID == taskID && t.UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestRepository(storer Storer) *Repository {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return NewRepository(log, storer)
}

func TestCreateRequiresTitle(t *testing.T) {
	storer := &fakeStorer{}
	repo := newTestRepository(storer)

	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), CreateTask{UserID: "user-1", Title: tt.title})
			if !errors.Is(err, ErrMissingTitle) {
				t.Fatalf("got err %v, want ErrMissingTitle", err)
			}
		})
	}

	if len(storer.tasks) != 0 {
		t.Errorf("store holds %d tasks after rejected creates, want 0", len(storer.tasks))
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	storer := &fakeStorer{}
	repo := newTestRepository(storer)

	before := time.Now().UTC()
	task, err := repo.Create(context.Background(), CreateTask{UserID: "user-1", Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.TaskID == "" {
		t.Error("no task id assigned")
	}
	if task.UserID != "user-1" {
		t.Errorf("owner %q, want user-1", task.UserID)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("priority %q, want %q", task.Priority, PriorityMedium)
	}
	if task.Category != DefaultCategory {
		t.Errorf("category %q, want %q", task.Category, DefaultCategory)
	}
	if task.Completed {
		t.Error("new task should start pending")
	}
	if task.CreatedAt.Before(before) || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("timestamps created=%v updated=%v, want equal and recent", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateKeepsExplicitFields(t *testing.T) {
	storer := &fakeStorer{}
	repo := newTestRepository(storer)

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	task, err := repo.Create(context.Background(), CreateTask{
		UserID:   "user-1",
		Title:    "Quarterly review",
		Priority: PriorityHigh,
		Category: "Work",
		DueDate:  &due,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.Priority != PriorityHigh || task.Category != "Work" {
		t.Errorf("got priority %q category %q, want explicit values kept", task.Priority, task.Category)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("due date %v, want %v", task.DueDate, due)
	}
}

func TestUpdateStampsModificationTime(t *testing.T) {
	storer := &fakeStorer{tasks: []Task{
		{TaskID: "t1", UserID: "user-1", Title: "Old title"},
	}}
	repo := newTestRepository(storer)

	title := "New title"
	before := time.Now().UTC()
	updated, err := repo.Update(context.Background(), "user-1", "t1", UpdateTask{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != title {
		t.Errorf("title %q, want %q", updated.Title, title)
	}
	if storer.lastUpdatedAt.Before(before) {
		t.Errorf("updatedAt %v not refreshed", storer.lastUpdatedAt)
	}
}

func TestUpdateOtherOwnersTaskIsNotFound(t *testing.T) {
	storer := &fakeStorer{tasks: []Task{
		{TaskID: "t1", UserID: "user-1", Title: "Private"},
	}}
	repo := newTestRepository(storer)

	title := "Hijacked"
	_, err := repo.Update(context.Background(), "user-2", "t1", UpdateTask{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
	if storer.tasks[0].Title != "Private" {
		t.Error("other owner's task was modified")
	}
}

func TestDeleteOtherOwnersTaskIsNotFound(t *testing.T) {
	storer := &fakeStorer{tasks: []Task{
		{TaskID: "t1", UserID: "user-1", Title: "Private"},
	}}
	repo := newTestRepository(storer)

	if err := repo.Delete(context.Background(), "user-2", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
	if len(storer.tasks) != 1 {
		t.Error("other owner's task was deleted")
	}

	if err := repo.Delete(context.Background(), "user-1", "t1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(storer.tasks) != 0 {
		t.Error("task not deleted by owner")
	}
}

func TestListScopedToOwner(t *testing.T) {
	storer := &fakeStorer{tasks: []Task{
		{TaskID: "t1", UserID: "user-1"},
		{TaskID: "t2", UserID: "user-2"},
		{TaskID: "t3", UserID: "user-1"},
	}}
	repo := newTestRepository(storer)

	tasks, err := repo.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "user-1" {
			t.Errorf("task %s belongs to %s", task.TaskID, task.UserID)
		}
	}
}

func TestStorerErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("connection reset")
	storer := &fakeStorer{listErr: sentinel, createErr: sentinel}
	repo := newTestRepository(storer)

	if _, err := repo.List(context.Background(), "user-1"); !errors.Is(err, sentinel) {
		t.Errorf("List err %v does not wrap storer error", err)
	}
	if _, err := repo.Create(context.Background(), CreateTask{UserID: "user-1", Title: "x"}); !errors.Is(err, sentinel) {
		t.Errorf("Create err %v does not wrap storer error", err)
	}
}
