package commands

import (
	"io"
	"os"

	"ips/pkg/alarm"
	"ips/pkg/task"
)

// App carries what the one-shot commands operate on
type App struct {
	Tasks  *task.Store
	Alarms *alarm.Scheduler
	Out    io.Writer
	In     io.Reader
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) in() io.Reader {
	if a.In == nil {
		return os.Stdin
	}
	return a.In
}
