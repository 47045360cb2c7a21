package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ips/pkg/alarm"
	"ips/pkg/database"
	"ips/pkg/task"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	kv := database.NewMemoryStore()
	var out bytes.Buffer
	return &App{
		Tasks:  task.NewStore(kv),
		Alarms: alarm.NewScheduler(kv),
		Out:    &out,
		In:     strings.NewReader(input),
	}, &out
}

func TestHandleAddTask(t *testing.T) {
	app, out := newTestApp(t, "")

	require.NoError(t, HandleAddTask(app, AddOptions{
		Text: "Give sadaqah", Category: "Charity", Priority: "medium", Subtasks: "cash, food",
	}))
	assert.Equal(t, "Task added: Give sadaqah (Charity, medium)\n", out.String())

	all := app.Tasks.All()
	require.Len(t, all, 1)
	assert.Len(t, all[0].Subtasks, 2)

	err := HandleAddTask(app, AddOptions{Text: "x", DueDate: "01/02/2026"})
	assert.ErrorIs(t, err, task.ErrInvalidDueDate)
	err = HandleAddTask(app, AddOptions{Text: "  "})
	assert.ErrorIs(t, err, task.ErrEmptyText)
	assert.Len(t, app.Tasks.All(), 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	app, _ := newTestApp(t, "")
	require.NoError(t, HandleAddTask(app, AddOptions{Text: "Pray Fajr", DueDate: "2026-03-01"}))
	require.NoError(t, HandleAddTask(app, AddOptions{Text: "Read Kahf", Category: "Quran Reading", Subtasks: "1-10, 11-20"}))

	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "out", "tasks.json")
	require.NoError(t, HandleExportCommand(app, jsonFile, "json"))
	txtFile := filepath.Join(dir, "tasks.txt")
	require.NoError(t, HandleExportCommand(app, txtFile, "txt"))
	assert.Error(t, HandleExportCommand(app, filepath.Join(dir, "tasks.xml"), "xml"))

	fresh, out := newTestApp(t, "")
	require.NoError(t, HandleImportCommand(fresh, jsonFile, ""))
	assert.Contains(t, out.String(), "Successfully imported 2 task(s)")
	assert.Equal(t, app.Tasks.All(), fresh.Tasks.All())

	// checklists are appended
	require.NoError(t, HandleImportCommand(fresh, txtFile, ""))
	assert.Len(t, fresh.Tasks.All(), 4)
}

func TestImportInvalidLeavesStoreUntouched(t *testing.T) {
	app, _ := newTestApp(t, "")
	require.NoError(t, HandleAddTask(app, AddOptions{Text: "keep me"}))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "an array"}`), 0644))

	assert.Error(t, HandleImportCommand(app, bad, ""))
	assert.Error(t, HandleImportCommand(app, filepath.Join(t.TempDir(), "missing.json"), ""))
	require.Len(t, app.Tasks.All(), 1)
	assert.Equal(t, "keep me", app.Tasks.All()[0].Text)
}

func TestHandlePurgeCommand(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		app, out := newTestApp(t, "n\n")
		require.NoError(t, HandleAddTask(app, AddOptions{Text: "a"}))

		require.NoError(t, HandlePurgeCommand(app, task.PurgeFilter{}, false))
		assert.Contains(t, out.String(), "delete all tasks?")
		assert.Contains(t, out.String(), "Operation cancelled.")
		assert.Len(t, app.Tasks.All(), 1)
	})

	t.Run("confirmed with filter", func(t *testing.T) {
		app, out := newTestApp(t, "yes\n")
		require.NoError(t, HandleAddTask(app, AddOptions{Text: "a", Category: "Work"}))
		require.NoError(t, HandleAddTask(app, AddOptions{Text: "b"}))
		done, err := app.Tasks.Add(task.Draft{Text: "c", Category: "Work"})
		require.NoError(t, err)
		_, err = app.Tasks.Toggle(done.ID)
		require.NoError(t, err)

		require.NoError(t, HandlePurgeCommand(app, task.PurgeFilter{Category: "Work", Done: true}, false))
		assert.Contains(t, out.String(), "delete all done Work tasks?")
		assert.Contains(t, out.String(), "Successfully deleted 1 task(s)")
		assert.Len(t, app.Tasks.All(), 2)
	})

	t.Run("conflicting flags", func(t *testing.T) {
		app, _ := newTestApp(t, "")
		err := HandlePurgeCommand(app, task.PurgeFilter{Done: true, Undone: true}, true)
		assert.ErrorIs(t, err, ErrConflictingFilters)
	})
}

func TestHandleAlarmCommand(t *testing.T) {
	app, out := newTestApp(t, "")
	require.NoError(t, HandleAlarmCommand(app, "07:30"))
	assert.Contains(t, out.String(), "07:30")
	assert.Len(t, app.Alarms.All(), 1)

	assert.ErrorIs(t, HandleAlarmCommand(app, "soon"), alarm.ErrInvalidTime)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	app, _ := newTestApp(t, "")
	out := &syncBuffer{}
	app.Out = out

	ringAt := time.Date(2026, 3, 1, 7, 30, 0, 0, time.Local)
	_, err := app.Alarms.Add("07:30", ringAt)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, app,
			alarm.WithInterval(5*time.Millisecond),
			alarm.WithTickClock(func() time.Time { return ringAt }))
	}()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ALARM 07:30")
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not return")
	}
	assert.Equal(t, 1, strings.Count(out.String(), "ALARM 07:30"))
	assert.Len(t, app.Alarms.Ringing(), 1)
}
