package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutModel_StartsEmpty(t *testing.T) {
	lm := NewLayoutModel()
	assert.Empty(t, lm.GetContentViewID())
	assert.Nil(t, lm.GetContentParams())
	assert.Zero(t, lm.GetRevision())
}

func TestLayoutModel_SetContentBumpsRevision(t *testing.T) {
	lm := NewLayoutModel()

	lm.SetContent(TaskListViewID, nil)
	assert.Equal(t, TaskListViewID, lm.GetContentViewID())
	assert.Nil(t, lm.GetContentParams())
	assert.Equal(t, uint64(1), lm.GetRevision())

	lm.SetContent(AnalyticsViewID, map[string]any{ThemeParam: "light"})
	assert.Equal(t, AnalyticsViewID, lm.GetContentViewID())
	assert.Equal(t, map[string]any{ThemeParam: "light"}, lm.GetContentParams())
	assert.Equal(t, uint64(2), lm.GetRevision())
}

func TestLayoutModel_ParamsAreCopied(t *testing.T) {
	lm := NewLayoutModel()
	params := map[string]any{ThemeParam: "dark"}
	lm.SetContent(TimerViewID, params)

	params[ThemeParam] = "light"
	assert.Equal(t, "dark", lm.GetContentParams()[ThemeParam], "caller map is not retained")

	got := lm.GetContentParams()
	got[ThemeParam] = "light"
	assert.Equal(t, "dark", lm.GetContentParams()[ThemeParam], "returned map is a copy")
}

func TestLayoutModel_TouchKeepsContent(t *testing.T) {
	lm := NewLayoutModel()
	lm.SetContent(TimerViewID, map[string]any{ThemeParam: "dark"})
	rev := lm.GetRevision()

	lm.Touch()
	lm.Touch()

	assert.Equal(t, rev+2, lm.GetRevision())
	assert.Equal(t, TimerViewID, lm.GetContentViewID())
	assert.Equal(t, "dark", lm.GetContentParams()[ThemeParam])
}

func TestLayoutModel_Listeners(t *testing.T) {
	lm := NewLayoutModel()

	var first, second int
	id1 := lm.AddListener(func() { first++ })
	id2 := lm.AddListener(func() { second++ })
	require.NotEqual(t, id1, id2)
	assert.Positive(t, id1, "IDs start above the zero sentinel")

	lm.SetContent(TaskListViewID, nil)
	lm.Touch()
	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)

	lm.RemoveListener(id1)
	lm.RemoveListener(999)
	lm.SetContent(TimerViewID, nil)
	assert.Equal(t, 2, first)
	assert.Equal(t, 3, second)
}

func TestLayoutModel_ListenerMayReadModel(t *testing.T) {
	lm := NewLayoutModel()
	var seen ViewID
	lm.AddListener(func() { seen = lm.GetContentViewID() })

	lm.SetContent(RecurringViewID, nil)
	assert.Equal(t, RecurringViewID, seen)
}

func TestLayoutModel_ConcurrentAccess(t *testing.T) {
	lm := NewLayoutModel()
	lm.AddListener(func() { _ = lm.GetRevision() })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if j%2 == 0 {
					lm.SetContent(PageViewIDs[i%len(PageViewIDs)], nil)
				} else {
					lm.Touch()
				}
				_ = lm.GetContentParams()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(8*50), lm.GetRevision())
	assert.Contains(t, PageViewIDs, lm.GetContentViewID())
}
