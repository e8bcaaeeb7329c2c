package controller

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/boolean-maybe/tock/stats"
)

// AnalyticsController handles analytics page actions: choosing a goal and
// adjusting its target.
type AnalyticsController struct {
	mu       sync.RWMutex
	engine   *stats.Engine
	selected stats.Period
	registry *ActionRegistry
}

// NewAnalyticsController creates the analytics page controller with the
// daily goal selected.
func NewAnalyticsController(engine *stats.Engine) *AnalyticsController {
	return &AnalyticsController{
		engine:   engine,
		selected: stats.Daily,
		registry: AnalyticsViewActions(),
	}
}

// GetActionRegistry returns the actions for the analytics page
func (ac *AnalyticsController) GetActionRegistry() *ActionRegistry {
	return ac.registry
}

// Engine returns the stats engine the page renders
func (ac *AnalyticsController) Engine() *stats.Engine {
	return ac.engine
}

// SelectedGoal returns the period whose goal +/- adjusts
func (ac *AnalyticsController) SelectedGoal() stats.Period {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.selected
}

// HandleAction processes an analytics action
func (ac *AnalyticsController) HandleAction(actionID ActionID) bool {
	switch actionID {
	case ActionNextGoal:
		ac.mu.Lock()
		ac.selected = cycle(stats.Periods, ac.selected)
		ac.mu.Unlock()
		return true
	case ActionGoalIncrease:
		return ac.adjustGoal(1)
	case ActionGoalDecrease:
		return ac.adjustGoal(-1)
	default:
		return false
	}
}

func (ac *AnalyticsController) adjustGoal(delta int) bool {
	p := ac.SelectedGoal()
	next := ac.engine.Goals().Get(p) + delta
	if err := ac.engine.UpdateGoal(p, next); err != nil {
		if !errors.Is(err, stats.ErrInvalidGoal) {
			slog.Error("failed to update goal", "period", p, "value", next, "error", err)
		}
		return false
	}
	return true
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
