package timer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var tickRate = time.Second

// Snapshot is a point-in-time copy of the engine for rendering.
type Snapshot struct {
	Config Config
	State  State
}

// Engine owns one Timer behind a single mutex and drives it from a Scheduler
// while it is running.
type Engine struct {
	mu        sync.Mutex
	timer     Timer
	scheduler Scheduler
	notifier  NotificationChannel
	l         *log.Logger

	parentCtx context.Context
	stopTicks context.CancelFunc
	wg        sync.WaitGroup

	onUpdate func(Snapshot)
}

type Option func(*Engine)

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

func WithNotifier(ch NotificationChannel) Option {
	return func(e *Engine) {
		e.notifier = ch
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.l = l
	}
}

func NewEngine(ctx context.Context, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		timer:     New(cfg),
		scheduler: Interval(tickRate),
		notifier:  Discard,
		l:         log.Default(),
		parentCtx: ctx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnUpdate registers a hook called outside the lock after every state change.
func (e *Engine) OnUpdate(handler func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUpdate = handler
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// SelectMode and AdjustDuration ignore modes outside Modes.
func (e *Engine) SelectMode(m Mode) Snapshot {
	if !m.Valid() {
		return e.Snapshot()
	}
	return e.apply(func(t Timer) Timer {
		return t.SelectMode(m)
	})
}

func (e *Engine) AdjustDuration(m Mode, deltaMinutes int) Snapshot {
	if !m.Valid() {
		return e.Snapshot()
	}
	return e.apply(func(t Timer) Timer {
		return t.AdjustDuration(m, deltaMinutes)
	})
}

func (e *Engine) ToggleRunning() Snapshot {
	return e.apply(func(t Timer) Timer {
		return t.ToggleRunning()
	})
}

// Tick advances the countdown by one second. Hosts that own their own clock
// call it directly; otherwise the scheduler does.
func (e *Engine) Tick() Snapshot {
	return e.tick(context.Background())
}

// Close stops the tick source and waits for in-flight ticks to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancelTicks()
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Engine) apply(transition func(Timer) Timer) Snapshot {
	e.mu.Lock()
	before := e.timer.State.Running
	e.timer = transition(e.timer)
	switch {
	case e.timer.State.Running && !before:
		e.startTicks()
	case !e.timer.State.Running:
		e.cancelTicks()
	}
	snap, hook := e.snapshot(), e.onUpdate
	e.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return snap
}

func (e *Engine) tick(ctx context.Context) Snapshot {
	e.mu.Lock()
	if ctx.Err() != nil {
		// tick from a source that was cancelled while it waited for the lock
		snap := e.snapshot()
		e.mu.Unlock()
		return snap
	}
	var completed bool
	e.timer, completed = e.timer.Tick()
	if completed {
		e.cancelTicks()
	}
	snap, hook, notifier := e.snapshot(), e.onUpdate, e.notifier
	e.mu.Unlock()

	if completed {
		e.l.Debug("timer completed", "mode", snap.State.Mode)
		e.notify(notifier, snap.State.Mode)
	}
	if hook != nil {
		hook(snap)
	}
	return snap
}

func (e *Engine) notify(ch NotificationChannel, m Mode) {
	sent, err := deliver(e.parentCtx, ch, m)
	if err != nil {
		e.l.Debug("skipped completion notification", "mode", m, "err", err)
		return
	}
	if !sent {
		e.l.Debug("notification permission not granted", "mode", m)
	}
}

// startTicks must be called with mu held.
func (e *Engine) startTicks() {
	e.cancelTicks()
	ctx, cancel := context.WithCancel(e.parentCtx)
	e.stopTicks = cancel
	e.wg.Go(func() {
		e.scheduler.Schedule(ctx, func() {
			e.tick(ctx)
		})
	})
}

// cancelTicks must be called with mu held.
func (e *Engine) cancelTicks() {
	if e.stopTicks != nil {
		e.stopTicks()
		e.stopTicks = nil
	}
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		Config: e.timer.Config,
		State:  e.timer.State,
	}
}
