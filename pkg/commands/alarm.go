package commands

import (
	"context"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"ips/pkg/alarm"
	"ips/pkg/utils"
)

// HandleAlarmCommand processes --alarm
func HandleAlarmCommand(app *App, value string) error {
	a, err := app.Alarms.Add(value, time.Now())
	if err != nil {
		return fmt.Errorf("error adding alarm %q: %w", value, err)
	}
	fmt.Fprintf(app.out(), "Alarm set for %s\n", a.Time.Format("2006-01-02 15:04"))
	return nil
}

// Watch rings alarms on the output until ctx is cancelled
func Watch(ctx context.Context, app *App, opts ...alarm.RunnerOption) error {
	out := app.out()
	app.Alarms.SetNotifier(alarm.NotifierFunc(func(a alarm.Alarm) {
		fmt.Fprintf(out, "\a[%s] ALARM %s\n", time.Now().Format("15:04:05"), a.Label())
	}))
	defer app.Alarms.SetNotifier(nil)

	fmt.Fprintf(out, "Watching %d alarm(s), press Ctrl+C to stop\n", len(app.Alarms.All()))
	return alarm.NewRunner(app.Alarms, opts...).Run(ctx)
}

// HandleWatchCommand processes --watch. It blocks until SIGINT/SIGTERM and
// returns the process exit code.
func HandleWatchCommand(app *App, shutdownTimeout time.Duration) int {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, app)
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"alarm-runner": func(ctx context.Context) error {
				utils.Log("Stopping alarm watcher")
				cancel()
				select {
				case err := <-done:
					return err
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	)

	return <-wait
}
