package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrazmi/taskflow/client/taskapi"
)

func formatTask(out io.Writer, i int, t taskapi.Task) {
	box := " "
	if t.Completed {
		box = "x"
	}

	due := ""
	if t.DueDate != nil {
		due = " due:" + t.DueDate.Format("2006-01-02")
	}

	fmt.Fprintf(out, "%3d. [%s] %s (%s, %s)%s  %s\n", i, box, t.Title, t.Category, t.Priority, due, shortID(t.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTask finds a task by unique id prefix, falling back to an exact
// case-insensitive title match.
func resolveTask(tasks []taskapi.Task, ref string) (taskapi.Task, error) {
	var byPrefix []taskapi.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return taskapi.Task{}, fmt.Errorf("ambiguous task ref %q", ref)
	}

	var byTitle []taskapi.Task
	for _, t := range tasks {
		if strings.EqualFold(t.Title, ref) {
			byTitle = append(byTitle, t)
		}
	}
	if len(byTitle) == 1 {
		return byTitle[0], nil
	}
	if len(byTitle) > 1 {
		return taskapi.Task{}, fmt.Errorf("ambiguous task ref %q", ref)
	}

	return taskapi.Task{}, fmt.Errorf("no task matches %q", ref)
}
