package tasksrepobridge

import (
	"fmt"
	"time"

	"github.com/jrazmi/taskflow/core/repositories/tasksrepo"
	"github.com/jrazmi/taskflow/sdk/validation"
)

// MarshalToBridge converts a core task to its wire representation.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.TaskID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: validation.GetStringOrEmpty(task.Description),
		Completed:   task.Completed,
		Priority:    task.Priority,
		Category:    task.Category,
		DueDate:     validation.FormatTimePtrToString(task.DueDate),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

// MarshalListToBridge converts a list of core tasks to wire models. The
// result is never nil so an empty list encodes as [].
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts create input to repository input for
// the given owner.
func MarshalCreateToRepository(userID string, input CreateTaskInput) (tasksrepo.CreateTask, error) {
	dueDate, err := validation.ParseTimePtr(input.DueDate)
	if err != nil {
		return tasksrepo.CreateTask{}, fmt.Errorf("invalid dueDate: %w", err)
	}

	return tasksrepo.CreateTask{
		UserID:      userID,
		Title:       input.Title,
		Description: validation.StringPtrIfNotEmpty(input.Description),
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     dueDate,
	}, nil
}

// MarshalUpdateToRepository converts partial update input to repository
// input.
func MarshalUpdateToRepository(input UpdateTaskInput) (tasksrepo.UpdateTask, error) {
	changes := tasksrepo.UpdateTask{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Priority:    input.Priority,
		Category:    input.Category,
	}

	if input.DueDate != nil {
		dueDate, err := validation.ParseTimePtr(*input.DueDate)
		if err != nil {
			return tasksrepo.UpdateTask{}, fmt.Errorf("invalid dueDate: %w", err)
		}
		changes.DueDate = dueDate
	}

	return changes, nil
}
