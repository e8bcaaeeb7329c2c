package stats

import (
	"math"

	"github.com/boolean-maybe/tock/task"
)

// Summary holds the live counters shown above the task list.
type Summary struct {
	Total           int
	Completed       int
	Active          int
	PercentComplete int
}

// Summarize counts tasks. An empty list is 0% complete.
func Summarize(tasks []*task.Task) Summary {
	var s Summary
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.PercentComplete = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}
