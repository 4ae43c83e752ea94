package taskdock

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/todo"
)

// deleteState tracks where a keyed auto-delete timer sits in its lifecycle:
// scheduled (delay pending) or fading (cue sent, deletion pending). Absence
// from the timer map is the "none" state.
type deleteState int

const (
	stateScheduled deleteState = iota + 1
	stateFading
)

type deleteTimer struct {
	state deleteState
	timer *time.Timer
}

// RemoveFunc performs the actual deletion of a todo, bypassing the undo
// snapshot flow. Auto-delete is a background action, not a user-initiated
// destructive one, so it never arms an undo.
type RemoveFunc func(ctx context.Context, target todo.TodoTarget) error

// CueFunc notifies the UI that a todo is about to disappear, with the fade
// window it should animate over.
type CueFunc func(target todo.TodoTarget, fade time.Duration)

// Coordinator drives the delete-after-completion workflow. Each
// (scopeKey, todoID) pair owns at most one timer; rescheduling a key cancels
// its predecessor, and cancellation is valid from any state.
type Coordinator struct {
	cfg    func() *config.Config
	remove RemoveFunc
	cue    CueFunc
	log    zerolog.Logger

	mu     sync.Mutex
	timers map[string]*deleteTimer
	closed bool
}

// NewCoordinator creates a coordinator. cfg is re-read on every schedule so
// a config reload takes effect without restarting timers already running.
func NewCoordinator(cfg func() *config.Config, remove RemoveFunc, cue CueFunc, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		remove: remove,
		cue:    cue,
		log:    log.With().Str("cmp", "auto-delete").Logger(),
		timers: make(map[string]*deleteTimer),
	}
}

func timerKey(target todo.TodoTarget) string {
	return target.Key() + "\x00" + target.TodoID
}

// Schedule arms the delay timer for a completed todo. When auto-delete is
// disabled it behaves as Cancel, so a toggle under a freshly disabled config
// still clears stale timers.
func (c *Coordinator) Schedule(target todo.TodoTarget) {
	cfg := c.cfg()
	if !cfg.AutoDeleteCompleted {
		c.Cancel(target)
		return
	}

	key := timerKey(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.cancelLocked(key)

	c.timers[key] = &deleteTimer{
		state: stateScheduled,
		timer: time.AfterFunc(cfg.AutoDeleteDelay(), func() { c.startFade(key, target) }),
	}
}

// Cancel clears any pending delay or fade timer for the target. Idempotent.
func (c *Coordinator) Cancel(target todo.TodoTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked(timerKey(target))
}

// CancelScope cancels timers for every todo in the list. Used when a scope
// is cleared wholesale.
func (c *Coordinator) CancelScope(scope todo.ScopeTarget, todos []todo.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range todos {
		c.cancelLocked(timerKey(todo.TodoTarget{ScopeTarget: scope, TodoID: item.ID}))
	}
}

// Pending reports whether the target currently has an active timer.
func (c *Coordinator) Pending(target todo.TodoTarget) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[timerKey(target)]
	return ok
}

// Close cancels all outstanding timers. Callbacks that already fired no-op
// against the closed coordinator.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for key := range c.timers {
		c.cancelLocked(key)
	}
}

// cancelLocked is the single cancel-if-present primitive. Caller holds mu.
func (c *Coordinator) cancelLocked(key string) {
	if t, ok := c.timers[key]; ok {
		t.timer.Stop()
		delete(c.timers, key)
	}
}

// startFade transitions scheduled -> fading: sends the UI cue and arms the
// fade timer. Runs on the delay timer's goroutine.
func (c *Coordinator) startFade(key string, target todo.TodoTarget) {
	fade := c.cfg().AutoDeleteFade()

	c.mu.Lock()
	t, ok := c.timers[key]
	if c.closed || !ok {
		c.mu.Unlock()
		return
	}
	t.state = stateFading
	t.timer = time.AfterFunc(fade, func() { c.finish(key, target) })
	c.mu.Unlock()

	c.cue(target, fade)
}

// finish transitions fading -> none and performs the deletion. Errors are
// logged only: there is no user interaction to surface them to.
func (c *Coordinator) finish(key string, target todo.TodoTarget) {
	c.mu.Lock()
	if _, ok := c.timers[key]; c.closed || !ok {
		c.mu.Unlock()
		return
	}
	delete(c.timers, key)
	c.mu.Unlock()

	if err := c.remove(context.Background(), target); err != nil {
		c.log.Error().Err(err).
			Str("scope", target.Key()).
			Str("todo", target.TodoID).
			Msg("auto-delete failed")
	}
}
