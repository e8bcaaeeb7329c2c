package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boolean-maybe/tock/task"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	tasks := []*task.Task{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3"},
	}
	assert.Equal(t, Summary{Total: 3, Completed: 1, Active: 2, PercentComplete: 33}, Summarize(tasks))
}
