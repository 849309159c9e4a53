package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go/timer"
)

// updateTickRate is how often a running timer's channel message is refreshed.
var updateTickRate = 20 * time.Second

type startTimerRequest struct {
	guildID, channelID, messageID string
	starterID                     string
	ticket                        string
	config                        timer.Config
}

// TimerSession is a channel's timer as seen by the message renderer.
type TimerSession struct {
	GuildID, ChannelID, MessageID string
	StarterID                     string
	Ticket                        string // number of the ticket being worked on, if any
	Snapshot                      timer.Snapshot
}

type TimerManager interface {
	HasTimer(channelID string) bool
	StartTimer(context.Context, startTimerRequest) (TimerSession, error)
	// Apply runs op against the channel's engine under the channel lock.
	Apply(channelID string, op func(*timer.Engine) timer.Snapshot) (TimerSession, error)
	StopTimer(channelID string) (TimerSession, error)

	OnTimerUpdate(func(context.Context, TimerSession))
	Shutdown() error
}

// NotifierFactory builds the completion notification channel for a new timer.
type NotifierFactory func(startTimerRequest) timer.NotificationChannel

type timerEntry struct {
	session TimerSession
	engine  *timer.Engine
}

func (e *timerEntry) current() TimerSession {
	return withSnapshot(e.session, e.engine.Snapshot())
}

type timerManager struct {
	cache      *timerCache
	wg         sync.WaitGroup
	parentCtx  context.Context
	notifiers  NotifierFactory
	engineOpts []timer.Option
	l          *log.Logger

	hookMu        sync.RWMutex
	onTimerUpdate func(context.Context, TimerSession)
}

func NewTimerManager(ctx context.Context, notifiers NotifierFactory, logger *log.Logger, engineOpts ...timer.Option) TimerManager {
	return &timerManager{
		cache: &timerCache{
			entries:     make(map[string]*timerEntry),
			locks:       make(map[string]*sync.Mutex),
			cancelFuncs: make(map[string]func()),
		},
		parentCtx:  ctx,
		notifiers:  notifiers,
		engineOpts: engineOpts,
		l:          logger,
	}
}

func (m *timerManager) HasTimer(channelID string) bool {
	return m.cache.Has(channelID)
}

func (m *timerManager) OnTimerUpdate(handler func(context.Context, TimerSession)) {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	m.onTimerUpdate = handler
}

func (m *timerManager) hook() func(context.Context, TimerSession) {
	m.hookMu.RLock()
	defer m.hookMu.RUnlock()
	return m.onTimerUpdate
}

func (m *timerManager) StartTimer(ctx context.Context, req startTimerRequest) (TimerSession, error) {
	if req.channelID == "" {
		return TimerSession{}, fmt.Errorf("startTimerRequest requires channelID")
	}
	if m.cache.Has(req.channelID) {
		return TimerSession{}, fmt.Errorf("timer already exists for channel %s", req.channelID)
	}
	if err := ctx.Err(); err != nil {
		return TimerSession{}, err
	}

	timerCtx, err := m.cache.Add(m.parentCtx, req.channelID, func(timerCtx context.Context) *timerEntry {
		opts := append([]timer.Option{
			timer.WithNotifier(m.notifiers(req)),
			timer.WithLogger(m.l.With("channelID", req.channelID)),
		}, m.engineOpts...)
		engine := timer.NewEngine(timerCtx, req.config, opts...)
		// completion refreshes the message right away instead of waiting for the update loop
		engine.OnUpdate(func(snap timer.Snapshot) {
			if snap.Completed() && !snap.State.Running {
				m.refresh(timerCtx, req.channelID)
			}
		})
		return &timerEntry{
			session: TimerSession{
				GuildID:   req.guildID,
				ChannelID: req.channelID,
				MessageID: req.messageID,
				StarterID: req.starterID,
				Ticket:    req.ticket,
			},
			engine: engine,
		}
	})
	if err != nil {
		return TimerSession{}, err
	}

	s, unlock := m.cache.Get(req.channelID)
	if s == nil {
		return TimerSession{}, fmt.Errorf("timer not found for channel %s", req.channelID)
	}
	defer unlock()

	m.l.Info("started timer", "channelID", req.channelID, "starterID", req.starterID)
	m.startUpdateLoop(timerCtx, req.channelID)
	return s.current(), nil
}

func (m *timerManager) Apply(channelID string, op func(*timer.Engine) timer.Snapshot) (TimerSession, error) {
	s, unlock := m.cache.Get(channelID)
	if s == nil {
		return TimerSession{}, fmt.Errorf("timer not found for channel %s", channelID)
	}
	defer unlock()

	snap := op(s.engine)
	return withSnapshot(s.session, snap), nil
}

func (m *timerManager) StopTimer(channelID string) (TimerSession, error) {
	s, unlock := m.cache.Get(channelID)
	if s == nil {
		return TimerSession{}, fmt.Errorf("timer not found for channel %s", channelID)
	}
	final := s.current()
	unlock()

	if e := m.cache.Remove(channelID); e != nil {
		e.engine.Close()
	}
	m.l.Info("stopped timer", "channelID", channelID)
	return final, nil
}

// refresh calls the update hook from the manager's goroutine pool.
func (m *timerManager) refresh(ctx context.Context, channelID string) {
	m.wg.Go(func() {
		s, unlock := m.cache.Get(channelID)
		if s == nil {
			return
		}
		curr := s.current()
		unlock()

		if hook := m.hook(); hook != nil && ctx.Err() == nil {
			hook(ctx, curr)
		}
	})
}

func (m *timerManager) startUpdateLoop(ctx context.Context, channelID string) {
	m.wg.Go(func() {
		var updateMu sync.Mutex
		ticker := time.NewTicker(updateTickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			s, unlock := m.cache.Get(channelID)
			if s == nil {
				m.l.Info("ending update loop - timer not found", "channelID", channelID)
				return
			}
			curr := s.current()
			unlock()

			hook := m.hook()
			if hook == nil || !curr.Snapshot.State.Running {
				continue
			}
			// a slow hook must not stack up calls - if still busy, skip this round
			if !updateMu.TryLock() {
				continue
			}
			m.wg.Go(func() {
				defer updateMu.Unlock()
				hook(ctx, curr)
			})
		}
	})
}

func (m *timerManager) Shutdown() error {
	for _, e := range m.cache.RemoveAll() {
		e.engine.Close()
	}

	// Wait for all update goroutines to exit
	m.wg.Wait()
	return nil
}

func withSnapshot(base TimerSession, snap timer.Snapshot) TimerSession {
	base.Snapshot = snap
	return base
}

// Cache

type timerCache struct {
	cacheMu     sync.RWMutex
	entries     map[string]*timerEntry
	locks       map[string]*sync.Mutex
	cancelFuncs map[string]func()
}

// Add creates the entry for key with a cancellable context derived from ctx.
func (c *timerCache) Add(ctx context.Context, key string, create func(context.Context) *timerEntry) (context.Context, error) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	if _, exists := c.locks[key]; exists {
		return nil, fmt.Errorf("timer already exists for channel %s", key)
	}
	timerCtx, cancel := context.WithCancel(ctx)
	c.locks[key] = &sync.Mutex{}
	c.entries[key] = create(timerCtx)
	c.cancelFuncs[key] = cancel
	return timerCtx, nil
}

// Remove cancels and forgets key, returning its entry. The key's lock is
// left held so late waiters never see a half-removed entry.
func (c *timerCache) Remove(key string) *timerEntry {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	l, exists := c.locks[key]
	if !exists {
		return nil
	}
	l.Lock()

	e := c.entries[key]
	c.cancelFuncs[key]()
	delete(c.cancelFuncs, key)
	delete(c.entries, key)
	delete(c.locks, key)
	return e
}

func (c *timerCache) RemoveAll() []*timerEntry {
	c.cacheMu.RLock()
	keys := make([]string, 0, len(c.locks))
	for k := range c.locks {
		keys = append(keys, k)
	}
	c.cacheMu.RUnlock()

	var removed []*timerEntry
	for _, k := range keys {
		if e := c.Remove(k); e != nil {
			removed = append(removed, e)
		}
	}
	return removed
}

func (c *timerCache) Get(key string) (*timerEntry, func()) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	l, exists := c.locks[key]
	if !exists {
		return nil, nil
	}
	l.Lock()
	return c.entries[key], l.Unlock
}

func (c *timerCache) Has(key string) bool {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()

	_, exists := c.locks[key]
	return exists
}
