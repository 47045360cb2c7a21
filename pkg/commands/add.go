package commands

import (
	"fmt"

	"ips/pkg/task"
)

// AddOptions are the task fields accepted by --add
type AddOptions struct {
	Text     string
	Category string
	Priority string
	DueDate  string
	Subtasks string
}

// HandleAddTask processes the --add command
func HandleAddTask(app *App, opts AddOptions) error {
	t, err := app.Tasks.Add(task.Draft{
		Text:     opts.Text,
		Category: opts.Category,
		Priority: opts.Priority,
		DueDate:  opts.DueDate,
		Subtasks: opts.Subtasks,
	})
	if err != nil {
		return fmt.Errorf("error adding task: %w", err)
	}

	fmt.Fprintf(app.out(), "Task added: %s (%s, %s)\n", t.Text, t.Category, t.Priority)
	return nil
}
