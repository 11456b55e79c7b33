package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProject_ColumnsAndSummary(t *testing.T) {
	today := Date{Year: 2024, Month: time.June, Day: 10}
	tasks := sampleTasks()
	tasks[0].DueDate = today.AddDays(3)
	tasks[1].DueDate = today.AddDays(-2)
	tasks[3].DueDate = today.AddDays(-1)

	board := Project(tasks, tasks, today)

	assert.Equal(t, today, board.Today)
	assert.Len(t, board.Columns[StatusTodo], 2)
	assert.Len(t, board.Columns[StatusInProgress], 1)
	assert.Len(t, board.Columns[StatusDone], 1)
	assert.Equal(t, 2, board.Counts[StatusTodo])

	assert.False(t, board.Columns[StatusTodo][0].Overdue)
	assert.True(t, board.Columns[StatusTodo][1].Overdue)
	assert.False(t, board.Columns[StatusDone][0].Overdue, "done is never overdue")

	assert.Equal(t, Summary{Total: 4, Completed: 1, InProgress: 1, Overdue: 1}, board.Summary)
}

func TestProject_SummaryIgnoresFilter(t *testing.T) {
	today := Date{Year: 2024, Month: time.June, Day: 10}
	tasks := sampleTasks()
	filtered := FilterTasks(tasks, TaskFilter{Category: CategoryHealth})

	board := Project(tasks, filtered, today)

	assert.Empty(t, board.Columns[StatusTodo])
	assert.NotNil(t, board.Columns[StatusTodo])
	assert.Len(t, board.Columns[StatusInProgress], 1)
	assert.Equal(t, 0, board.Counts[StatusDone])
	assert.Equal(t, 4, board.Summary.Total)
	assert.Equal(t, 1, board.Summary.Completed)
}

func TestProject_EmptyBoard(t *testing.T) {
	board := Project(nil, nil, Date{Year: 2024, Month: time.January, Day: 1})

	for _, s := range Statuses {
		assert.Contains(t, board.Columns, s)
		assert.Equal(t, 0, board.Counts[s])
	}
	assert.Equal(t, Summary{}, board.Summary)
}

func TestProject_OverdueFlipsWithToday(t *testing.T) {
	due := Date{Year: 2024, Month: time.June, Day: 10}
	tasks := []Task{{ID: 1, Title: "t", Priority: PriorityLow, Category: CategoryOther, Status: StatusInProgress, DueDate: due}}

	assert.Equal(t, 0, Project(tasks, tasks, due).Summary.Overdue)
	assert.Equal(t, 1, Project(tasks, tasks, due.AddDays(1)).Summary.Overdue)
}
