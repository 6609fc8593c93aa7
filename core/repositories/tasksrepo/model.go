package tasksrepo

import "time"

// Priority labels. Free-form values are not rejected by the store, these
// are the ones the clients produce.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Defaults applied at creation when the caller omits the field.
const (
	DefaultPriority = PriorityMedium
	DefaultCategory = "Personal"
)

// Task is an owner-scoped task record. Only the owner may read, mutate or
// delete it.
type Task struct {
	TaskID      string     `db:"task_id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Completed   bool       `db:"completed"`
	Priority    string     `db:"priority"`
	Category    string     `db:"category"`
	DueDate     *time.Time `db:"due_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// CreateTask contains fields for creating a new task.
type CreateTask struct {
	UserID      string
	Title       string
	Description *string
	Priority    string
	Category    string
	DueDate     *time.Time
}

// UpdateTask contains fields for updating an existing task. All fields are
// optional pointers to support partial updates.
type UpdateTask struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Category    *string
	DueDate     *time.Time
}
