package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"ips/pkg/task"
)

// HandleExportCommand processes --export commands
func HandleExportCommand(app *App, filename, exportType string) error {
	if exportType == "" {
		exportType = task.FormatJSON
	}
	if exportType != task.FormatJSON && exportType != task.FormatText {
		return fmt.Errorf("unknown export type: %s", exportType)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := app.Tasks.Export(f, exportType); err != nil {
		f.Close()
		return fmt.Errorf("error exporting tasks: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Fprintf(app.out(), "Successfully exported %d task(s) to %s\n", app.Tasks.Len(), filename)
	return nil
}
