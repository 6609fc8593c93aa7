package workingset

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jrazmi/taskflow/client/taskapi"
	"github.com/jrazmi/taskflow/sdk/logger"
)

type fakeAPI struct {
	tasks []taskapi.Task

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int
	lastUpdate  taskapi.UpdateTaskInput
}

func (f *fakeAPI) List(ctx context.Context) ([]taskapi.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tasks, nil
}

func (f *fakeAPI) Create(ctx context.Context, input taskapi.CreateTaskInput) (taskapi.Task, error) {
	f.createCalls++
	if f.createErr != nil {
		return taskapi.Task{}, f.createErr
	}
	now := time.Now().UTC()
	task := taskapi.Task{
		ID:        "srv-1",
		UserID:    "user-1",
		Title:     input.Title,
		Priority:  input.Priority,
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return task, nil
}

func (f *fakeAPI) Update(ctx context.Context, taskID string, input taskapi.UpdateTaskInput) (taskapi.Task, error) {
	f.updateCalls++
	f.lastUpdate = input
	if f.updateErr != nil {
		return taskapi.Task{}, f.updateErr
	}
	return taskapi.Task{ID: taskID}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, taskID string) error {
	f.deleteCalls++
	return f.deleteErr
}

type fakeSnapshot struct {
	saved   []taskapi.Task
	stored  []taskapi.Task
	loadErr error
	saveErr error
}

func (f *fakeSnapshot) Save(tasks []taskapi.Task) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = tasks
	return nil
}

func (f *fakeSnapshot) Load() ([]taskapi.Task, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.stored, nil
}

func newTestSet(api *fakeAPI, snap *fakeSnapshot) *WorkingSet {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return New(log, api, snap)
}

func seedTasks() []taskapi.Task {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := base.AddDate(0, 0, -10)
	future := time.Now().UTC().AddDate(0, 1, 0)
	return []taskapi.Task{
		{ID: "t1", Title: "Ship release", Description: "cut the tag", Completed: false, Priority: "high", Category: "Work", DueDate: &past, CreatedAt: base},
		{ID: "t2", Title: "Grocery run", Description: "milk and eggs", Completed: true, Priority: "low", Category: "Personal", CreatedAt: base.Add(-time.Hour)},
		{ID: "t3", Title: "Review budget", Completed: false, Priority: "medium", Category: "Work", DueDate: &future, CreatedAt: base.Add(-2 * time.Hour)},
	}
}

func TestLoadFromService(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	snap := &fakeSnapshot{}
	ws := newTestSet(api, snap)

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(ws.All()); got != 3 {
		t.Fatalf("got %d tasks, want 3", got)
	}
	if len(snap.saved) != 3 {
		t.Errorf("snapshot after load holds %d tasks, want 3", len(snap.saved))
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("connection refused")}
	snap := &fakeSnapshot{stored: seedTasks()}
	ws := newTestSet(api, snap)

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(ws.All()); got != 3 {
		t.Fatalf("got %d tasks from snapshot, want 3", got)
	}
}

func TestLoadStartsEmptyWithoutServiceOrSnapshot(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("connection refused")}
	snap := &fakeSnapshot{loadErr: errors.New("no snapshot"), saveErr: errors.New("disk full")}
	ws := newTestSet(api, snap)

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(ws.All()); got != 0 {
		t.Fatalf("got %d tasks, want 0", got)
	}
}

func TestAddPrependsServerRecord(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	task := ws.Add(ctx, taskapi.CreateTaskInput{Title: "New task", Priority: "high", Category: "Work"})
	if task.ID != "srv-1" {
		t.Errorf("got id %q, want server id", task.ID)
	}

	all := ws.All()
	if len(all) != 4 || all[0].ID != "srv-1" {
		t.Fatalf("new task not at head of set: %+v", all)
	}
}

func TestAddSynthesizesWhenServiceUnreachable(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("connection refused")}
	snap := &fakeSnapshot{}
	ws := newTestSet(api, snap)
	ctx := context.Background()

	task := ws.Add(ctx, taskapi.CreateTaskInput{Title: "Offline task"})

	if task.ID == "" {
		t.Fatal("synthesized task has no id")
	}
	if task.Priority != "medium" || task.Category != "Personal" {
		t.Errorf("got priority %q category %q, want defaults", task.Priority, task.Category)
	}
	if task.Completed {
		t.Error("synthesized task should start pending")
	}
	if len(snap.saved) != 1 {
		t.Errorf("snapshot holds %d tasks, want 1", len(snap.saved))
	}
}

func TestUpdateAppliesLocallyWhenRemoteFails(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks(), updateErr: errors.New("gateway timeout")}
	ws := newTestSet(api, &fakeSnapshot{})
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	title := "Ship release v2"
	if !ws.Update(ctx, "t1", taskapi.UpdateTaskInput{Title: &title}) {
		t.Fatal("Update returned false for existing task")
	}
	if api.updateCalls != 1 {
		t.Errorf("remote update called %d times, want 1", api.updateCalls)
	}

	for _, task := range ws.All() {
		if task.ID == "t1" && task.Title != title {
			t.Errorf("local title %q, want %q", task.Title, title)
		}
	}
}

func TestUpdateUnknownTaskSkipsRemote(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	title := "nope"
	if ws.Update(ctx, "missing", taskapi.UpdateTaskInput{Title: &title}) {
		t.Fatal("Update returned true for unknown task")
	}
	if api.updateCalls != 0 {
		t.Errorf("remote update called %d times, want 0", api.updateCalls)
	}
}

func TestToggleFlipsCompletedAndStampsUpdate(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	before := time.Now().UTC().Add(-time.Second)
	if !ws.Toggle(ctx, "t1") {
		t.Fatal("Toggle returned false")
	}
	if api.lastUpdate.Completed == nil || !*api.lastUpdate.Completed {
		t.Error("remote update did not carry completed=true")
	}

	for _, task := range ws.All() {
		if task.ID != "t1" {
			continue
		}
		if !task.Completed {
			t.Error("task still pending after toggle")
		}
		if !task.UpdatedAt.After(before) {
			t.Errorf("updatedAt %v not advanced", task.UpdatedAt)
		}
	}
}

func TestDeleteRemovesLocallyWhenRemoteFails(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks(), deleteErr: errors.New("gateway timeout")}
	snap := &fakeSnapshot{}
	ws := newTestSet(api, snap)
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !ws.Delete(ctx, "t2") {
		t.Fatal("Delete returned false for existing task")
	}
	if api.deleteCalls != 1 {
		t.Errorf("remote delete called %d times, want 1", api.deleteCalls)
	}

	for _, task := range ws.All() {
		if task.ID == "t2" {
			t.Fatal("deleted task still in local set")
		}
	}
	if len(snap.saved) != 2 {
		t.Errorf("snapshot holds %d tasks, want 2", len(snap.saved))
	}
}

func TestFiltered(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})
	ctx := context.Background()

	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name     string
		query    string
		category string
		priority string
		wantIDs  []string
	}{
		{"no filters", "", FilterAll, FilterAll, []string{"t1", "t2", "t3"}},
		{"search title case-insensitive", "SHIP", FilterAll, FilterAll, []string{"t1"}},
		{"search description", "eggs", FilterAll, FilterAll, []string{"t2"}},
		{"category", "", "Work", FilterAll, []string{"t1", "t3"}},
		{"priority", "", FilterAll, "low", []string{"t2"}},
		{"combined", "review", "Work", "medium", []string{"t3"}},
		{"no match", "zzz", FilterAll, FilterAll, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws.SetSearch(tt.query)
			ws.SetCategory(tt.category)
			ws.SetPriority(tt.priority)

			got := ws.Filtered()
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("task[%d] = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := ws.Stats()
	want := Stats{Total: 3, Completed: 1, Pending: 2, Overdue: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCompletedTaskIsNeverOverdue(t *testing.T) {
	past := time.Now().UTC().Add(-48 * time.Hour)
	api := &fakeAPI{tasks: []taskapi.Task{
		{ID: "t1", Title: "Done late", Completed: true, DueDate: &past},
	}}
	ws := newTestSet(api, &fakeSnapshot{})

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := ws.Stats().Overdue; got != 0 {
		t.Errorf("overdue = %d, want 0", got)
	}
}

func TestCategories(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	ws := newTestSet(api, &fakeSnapshot{})

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := ws.Categories()
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Name != "Work" || got[0].Count != 2 {
		t.Errorf("first category %+v, want Work with count 2", got[0])
	}
	if got[1].Name != "Personal" || got[1].Count != 1 {
		t.Errorf("second category %+v, want Personal with count 1", got[1])
	}
	for _, c := range got {
		if c.Color == "" {
			t.Errorf("category %q has no color", c.Name)
		}
	}
}

func TestCategoryColorStable(t *testing.T) {
	first := CategoryColor("Work")
	for i := 0; i < 10; i++ {
		if got := CategoryColor("Work"); got != first {
			t.Fatalf("color changed between calls: %q vs %q", got, first)
		}
	}

	inPalette := false
	for _, c := range categoryPalette {
		if c == first {
			inPalette = true
		}
	}
	if !inPalette {
		t.Errorf("color %q not in palette", first)
	}
}
