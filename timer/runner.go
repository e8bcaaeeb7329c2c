package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Observer is called after every state change with the new state.
type Observer func(State)

// Runner drives a countdown with one TICK per interval on its own goroutine.
// Pause and Reset cancel the pending schedule; the loop also stops when a
// phase completes.
type Runner struct {
	mu        sync.Mutex
	state     State
	interval  time.Duration
	cancel    context.CancelFunc
	gen       int
	observers []Observer
}

// NewRunner creates an idle runner.
func NewRunner(work, brk time.Duration) *Runner {
	return &Runner{
		state:    NewState(work, brk),
		interval: time.Second,
	}
}

// OnChange registers an observer. Observers run on the goroutine that caused
// the change and must not call back into the runner synchronously.
func (r *Runner) OnChange(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// State returns the current snapshot.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Running reports whether the countdown is ticking.
func (r *Runner) Running() bool {
	return r.State().Status == StatusRunning
}

// Start begins ticking. It is a no-op while already running. The loop ends
// when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	if r.state.Status == StatusRunning {
		r.mu.Unlock()
		return
	}
	r.stopLocked()
	r.state = Reduce(r.state, Action{Type: ActionStart})
	r.gen++
	gen := r.gen
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	interval := r.interval
	state := r.state
	r.mu.Unlock()

	slog.Debug("timer started", "time_left", state.TimeLeft, "break", state.IsBreak)
	r.notify(state)
	go r.loop(loopCtx, gen, interval)
}

// Pause stops ticking and keeps the remaining time.
func (r *Runner) Pause() {
	r.dispatch(Action{Type: ActionPause}, true)
}

// Reset stops ticking and restores the current phase length.
func (r *Runner) Reset() {
	r.dispatch(Action{Type: ActionReset}, true)
}

// Toggle starts a stopped timer or pauses a running one.
func (r *Runner) Toggle(ctx context.Context) {
	if r.Running() {
		r.Pause()
		return
	}
	r.Start(ctx)
}

// SetBreakMinutes changes the break length used by later break phases.
func (r *Runner) SetBreakMinutes(minutes int) error {
	a, err := SetBreakMinutes(minutes)
	if err != nil {
		return err
	}
	r.dispatch(a, false)
	return nil
}

func (r *Runner) dispatch(a Action, stop bool) {
	r.mu.Lock()
	if stop {
		r.stopLocked()
	}
	r.state = Reduce(r.state, a)
	state := r.state
	r.mu.Unlock()
	r.notify(state)
}

// stopLocked cancels the running loop. Caller must hold r.mu.
func (r *Runner) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}

func (r *Runner) loop(ctx context.Context, gen int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.tick(gen) {
				return
			}
		}
	}
}

// tick applies one TICK if gen is still current. It reports whether the loop
// should keep running.
func (r *Runner) tick(gen int) bool {
	r.mu.Lock()
	if gen != r.gen || r.state.Status != StatusRunning {
		r.mu.Unlock()
		return false
	}
	r.state = Reduce(r.state, Action{Type: ActionTick})
	state := r.state
	finished := state.Status != StatusRunning
	if finished {
		r.stopLocked()
	}
	r.mu.Unlock()

	if finished {
		slog.Info("timer phase finished", "next_phase", state.Phase())
	}
	r.notify(state)
	return !finished
}

func (r *Runner) notify(state State) {
	r.mu.Lock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
