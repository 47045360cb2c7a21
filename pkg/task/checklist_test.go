package task

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecklist(t *testing.T) {
	input := `
02.03.2026:
- [x] Iftar (Fasting, low)
    - [ ] dates
    - [x] water
2026-03-04:
- [ ] Call mum (Personal, high)
- plain entry (Unknown, low)
this line is ignored

No due date:
- [ ] Someday
`
	tasks, err := ParseChecklist(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	assert.Equal(t, "Iftar", tasks[0].Text)
	assert.Equal(t, CategoryFasting, tasks[0].Category)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "2026-03-02", tasks[0].DueDate)
	assert.Equal(t, []Subtask{{Text: "dates"}, {Text: "water", Completed: true}}, tasks[0].Subtasks)

	assert.Equal(t, "Call mum", tasks[1].Text)
	assert.Equal(t, PriorityHigh, tasks[1].Priority)
	assert.Equal(t, "2026-03-04", tasks[1].DueDate)

	// unknown category keeps the suffix as text
	assert.Equal(t, "plain entry (Unknown, low)", tasks[2].Text)
	assert.Equal(t, CategoryPrayer, tasks[2].Category)

	assert.Equal(t, "Someday", tasks[3].Text)
	assert.Empty(t, tasks[3].DueDate)
}

func TestStore_ChecklistRoundTrip(t *testing.T) {
	src, _ := newTestStore(t)
	task, err := src.Add(Draft{Text: "Iftar", Category: "Fasting", Priority: "medium", DueDate: "2026-03-02", Subtasks: "dates, water"})
	require.NoError(t, err)
	_, err = src.ToggleSubtask(task.ID, 1)
	require.NoError(t, err)
	_, err = src.Add(Draft{Text: "Someday", Category: "Charity"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf, FormatText))

	dst, _ := newTestStore(t)
	_, err = dst.Add(Draft{Text: "already here"})
	require.NoError(t, err)

	n, err := dst.ImportChecklist(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all := dst.All()
	require.Len(t, all, 3)
	assert.Equal(t, "already here", all[0].Text)
	assert.Equal(t, "Iftar", all[1].Text)
	assert.Equal(t, PriorityMedium, all[1].Priority)
	assert.Equal(t, []Subtask{{Text: "dates"}, {Text: "water", Completed: true}}, all[1].Subtasks)
	assert.Equal(t, CategoryCharity, all[2].Category)
	assert.NotEqual(t, all[1].ID, all[2].ID)
}
