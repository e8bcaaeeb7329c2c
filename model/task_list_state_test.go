package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boolean-maybe/tock/task"
)

func TestTaskListState_Defaults(t *testing.T) {
	s := NewTaskListState()
	assert.Equal(t, task.FilterAll, s.Filter())
	assert.Equal(t, task.SortDateDesc, s.SortOrder())
	assert.Empty(t, s.SelectedID())
}

func TestTaskListState_Cycling(t *testing.T) {
	s := NewTaskListState()
	calls := 0
	s.AddListener(func() { calls++ })

	assert.Equal(t, task.FilterActive, s.CycleFilter())
	assert.Equal(t, task.FilterCompleted, s.CycleFilter())
	assert.Equal(t, task.FilterAll, s.CycleFilter())

	assert.Equal(t, task.SortDateAsc, s.CycleSortOrder())
	assert.Equal(t, task.SortNameAsc, s.CycleSortOrder())
	assert.Equal(t, task.SortNameDesc, s.CycleSortOrder())
	assert.Equal(t, task.SortDateDesc, s.CycleSortOrder())

	assert.Equal(t, 7, calls)
}

func TestTaskListState_SelectAndRemoveListener(t *testing.T) {
	s := NewTaskListState()
	calls := 0
	id := s.AddListener(func() { calls++ })

	s.Select("abc")
	assert.Equal(t, "abc", s.SelectedID())
	assert.Equal(t, 1, calls)

	s.RemoveListener(id)
	s.SetFilter(task.FilterCompleted)
	s.SetSortOrder(task.SortNameAsc)
	assert.Equal(t, 1, calls)
	assert.Equal(t, task.FilterCompleted, s.Filter())
	assert.Equal(t, task.SortNameAsc, s.SortOrder())
}
