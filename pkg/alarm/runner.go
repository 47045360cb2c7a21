package alarm

import (
	"context"
	"time"

	"ips/pkg/utils"
)

// Runner drives a Scheduler from a single ticker that lives exactly as long
// as Run. Each tick reads the scheduler's current state; the ticker is never
// recreated when alarms change.
type Runner struct {
	scheduler *Scheduler
	interval  time.Duration
	now       func() time.Time
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithInterval changes the tick cadence (one second by default)
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTickClock makes the runner pass now() to Tick instead of the ticker time
func WithTickClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func NewRunner(s *Scheduler, opts ...RunnerOption) *Runner {
	r := &Runner{scheduler: s, interval: time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks until ctx is cancelled. A slow tick makes the ticker drop ticks;
// an alarm whose minute is skipped entirely does not ring late.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	utils.Log("Alarm runner started (every %s)", r.interval)
	for {
		select {
		case <-ctx.Done():
			utils.Log("Alarm runner stopped")
			return nil
		case t := <-ticker.C:
			if r.now != nil {
				t = r.now()
			}
			r.scheduler.Tick(t)
		}
	}
}
