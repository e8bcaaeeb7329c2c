package controller

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/model"
)

func TestViewStack_Empty(t *testing.T) {
	s := newViewStack()
	assert.Zero(t, s.depth())
	assert.Nil(t, s.currentView())
	assert.Nil(t, s.previousView())
	assert.Nil(t, s.baseView())
	assert.Empty(t, s.currentViewID())
	assert.False(t, s.canGoBack())
	assert.Nil(t, s.pop())
	assert.False(t, s.replaceTopView(model.TimerViewID, nil))
}

func TestViewStack_OverlayOnPage(t *testing.T) {
	s := newViewStack()
	s.push(model.TaskListViewID, nil)
	assert.False(t, s.canGoBack(), "a lone page has nowhere to go back to")

	s.push(model.RecurringViewID, nil)
	assert.Equal(t, 2, s.depth())
	assert.True(t, s.canGoBack())
	assert.Equal(t, model.RecurringViewID, s.currentViewID())
	assert.Equal(t, model.TaskListViewID, s.previousView().ViewID)
	assert.Equal(t, model.TaskListViewID, s.baseView().ViewID)

	top := s.pop()
	require.NotNil(t, top)
	assert.Equal(t, model.RecurringViewID, top.ViewID)
	assert.Equal(t, model.TaskListViewID, s.currentViewID())
	assert.Nil(t, s.previousView())
}

func TestViewStack_ReplaceTopKeepsDepth(t *testing.T) {
	s := newViewStack()
	s.push(model.TaskListViewID, nil)
	s.push(model.TimerViewID, nil)

	require.True(t, s.replaceTopView(model.AnalyticsViewID, map[string]interface{}{model.ThemeParam: "light"}))
	assert.Equal(t, 2, s.depth())
	cur := s.currentView()
	assert.Equal(t, model.AnalyticsViewID, cur.ViewID)
	assert.Equal(t, "light", cur.Params[model.ThemeParam])
	assert.Equal(t, model.TaskListViewID, s.baseView().ViewID)
}

func TestViewStack_ParamsAreCopied(t *testing.T) {
	s := newViewStack()
	params := map[string]interface{}{model.ThemeParam: "dark"}
	s.push(model.TimerViewID, params)

	params[model.ThemeParam] = "light"
	assert.Equal(t, "dark", s.currentView().Params[model.ThemeParam])

	// returned entries are copies
	s.currentView().ViewID = model.AnalyticsViewID
	assert.Equal(t, model.TimerViewID, s.currentViewID())

	assert.Nil(t, cloneParams(nil))
}

func TestViewStack_Clear(t *testing.T) {
	s := newViewStack()
	for _, id := range model.PageViewIDs {
		s.push(id, nil)
	}
	s.clear()
	assert.Zero(t, s.depth())
	assert.Nil(t, s.baseView())
}

func TestViewStack_ConcurrentAccess(t *testing.T) {
	s := newViewStack()
	s.push(model.TaskListViewID, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.push(model.RecurringViewID, nil)
				_ = s.currentView()
				_ = s.canGoBack()
				s.pop()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.depth())
	assert.Equal(t, model.TaskListViewID, s.currentViewID())
}
