package view

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/task"
	"github.com/boolean-maybe/tock/timer"
)

// testNow is Wednesday 2025-01-15 10:30 local.
var testNow = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.Local)

type viewFixture struct {
	tasks     *controller.TaskController
	taskList  *controller.TaskListController
	timer     *controller.TimerController
	analytics *controller.AnalyticsController
	nav       *controller.NavigationController
	factory   *ViewFactory
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	kv := store.NewMemoryKV()
	taskStore, err := store.NewTaskStore(kv)
	require.NoError(t, err)
	engine := stats.NewEngine(kv, stats.DefaultGoals, func() time.Time { return testNow })

	n := 0
	tc := controller.NewTaskController(taskStore, engine, task.NewCategorizer(nil), func() time.Time { return testNow }, func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	})

	nav := controller.NewNavigationController(nil)
	nav.PushView(model.TaskListViewID, nil)

	f := &viewFixture{
		tasks:     tc,
		taskList:  controller.NewTaskListController(ctx, tc, model.NewTaskListState(), nav, nil),
		timer:     controller.NewTimerController(ctx, timer.NewRunner(25*time.Minute, 5*time.Minute)),
		analytics: controller.NewAnalyticsController(engine),
		nav:       nav,
	}
	f.factory = NewViewFactory(f.taskList, f.timer, f.analytics, nil)
	f.factory.SetClock(func() time.Time { return testNow })
	return f
}

func (f *viewFixture) add(t *testing.T, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, err := f.tasks.AddTask(text)
		require.NoError(t, err)
	}
}

// newTestScreen returns an initialized simulation screen of the given size.
func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

// screenRow returns the runes of row y as a string.
func screenRow(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	runes := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			runes = append(runes, ' ')
			continue
		}
		runes = append(runes, cell.Runes[0])
	}
	return string(runes)
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func actionIDs(r *controller.ActionRegistry) []controller.ActionID {
	var ids []controller.ActionID
	for _, a := range r.GetActions() {
		ids = append(ids, a.ID)
	}
	return ids
}
