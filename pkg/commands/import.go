package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ips/pkg/task"
)

// HandleImportCommand processes --import commands. JSON files replace the
// whole collection; txt checklists are appended to it.
func HandleImportCommand(app *App, filename, importType string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	if importType == "" {
		importType = task.FormatJSON
		if strings.EqualFold(filepath.Ext(filename), ".txt") {
			importType = task.FormatText
		}
	}

	var n int
	switch importType {
	case task.FormatJSON:
		n, err = app.Tasks.Import(f)
	case task.FormatText:
		n, err = app.Tasks.ImportChecklist(f)
	default:
		return fmt.Errorf("unknown import type: %s", importType)
	}
	if err != nil {
		return fmt.Errorf("error importing %s: %w", filename, err)
	}

	fmt.Fprintf(app.out(), "Successfully imported %d task(s) from %s\n", n, filename)
	return nil
}
