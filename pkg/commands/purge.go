package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"ips/pkg/task"
)

var ErrConflictingFilters = errors.New("--done and --undone cannot be combined")

// HandlePurgeCommand processes --purge. Without skipConfirm the user must
// answer y on the input stream.
func HandlePurgeCommand(app *App, filter task.PurgeFilter, skipConfirm bool) error {
	if filter.Done && filter.Undone {
		return ErrConflictingFilters
	}

	if !skipConfirm {
		fmt.Fprintf(app.out(), "Are you sure you want to delete %s? (y/N): ", describePurge(filter))
		response, _ := bufio.NewReader(app.in()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(app.out(), "Operation cancelled.")
			return nil
		}
	}

	n, err := app.Tasks.Purge(filter)
	if err != nil {
		return fmt.Errorf("error purging tasks: %w", err)
	}

	fmt.Fprintf(app.out(), "Successfully deleted %d task(s)\n", n)
	return nil
}

func describePurge(f task.PurgeFilter) string {
	parts := []string{"all"}
	if f.Done {
		parts = append(parts, "done")
	} else if f.Undone {
		parts = append(parts, "undone")
	}
	if f.Category != "" && !strings.EqualFold(f.Category, task.All) {
		parts = append(parts, f.Category)
	}
	parts = append(parts, "tasks")
	if f.DueDate != "" {
		parts = append(parts, "due", f.DueDate)
	}
	return strings.Join(parts, " ")
}
