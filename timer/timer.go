// Package timer implements the countdown timer: per-mode durations, a
// self-scheduling one-second tick and a one-shot completion notification.
package timer

import "fmt"

type Mode uint8

const (
	Focus Mode = iota
	ShortBreak
	LongBreak
)

var Modes = [...]Mode{Focus, ShortBreak, LongBreak}

func (m Mode) String() string {
	switch m {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		panic(fmt.Sprintf("no matching label for Mode: %d", uint8(m)))
	}
}

func (m Mode) Valid() bool {
	return m <= LongBreak
}

// ParseMode accepts the short names used by commands and button IDs.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "pomodoro":
		return Focus, nil
	case "short", "short_break", "shortBreak":
		return ShortBreak, nil
	case "long", "long_break", "longBreak":
		return LongBreak, nil
	}
	return 0, fmt.Errorf("unknown timer mode %q", s)
}

// Key is the inverse of ParseMode.
func (m Mode) Key() string {
	switch m {
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	default:
		return "focus"
	}
}

const MinDuration = 60

// Config holds the duration of every mode in seconds. Durations never drop below MinDuration.
type Config [len(Modes)]int

func DefaultConfig() Config {
	return Config{
		Focus:      25 * 60,
		ShortBreak: 5 * 60,
		LongBreak:  15 * 60,
	}
}

// ConfigFromMinutes builds a Config, clamping every mode to one minute.
func ConfigFromMinutes(focus, shortBreak, longBreak int) Config {
	return Config{
		Focus:      max(MinDuration, focus*60),
		ShortBreak: max(MinDuration, shortBreak*60),
		LongBreak:  max(MinDuration, longBreak*60),
	}
}

func (c Config) Minutes(m Mode) int {
	return c[m] / 60
}

// State is the live countdown.
type State struct {
	Mode      Mode
	Remaining int
	Running   bool
}

// Timer pairs the durations with the live countdown. Its methods are pure:
// each returns the next Timer and leaves the receiver untouched.
type Timer struct {
	Config Config
	State  State
}

func New(cfg Config) Timer {
	return Timer{
		Config: cfg,
		State: State{
			Mode:      Focus,
			Remaining: cfg[Focus],
		},
	}
}

// SelectMode always restarts the clock, even when m is already active. An
// unknown mode leaves t unchanged.
func (t Timer) SelectMode(m Mode) Timer {
	if !m.Valid() {
		return t
	}
	t.State = State{
		Mode:      m,
		Remaining: t.Config[m],
	}
	return t
}

// AdjustDuration shifts the duration of m by deltaMinutes. Adjusting the
// active mode interrupts the countdown. An unknown mode leaves t unchanged.
func (t Timer) AdjustDuration(m Mode, deltaMinutes int) Timer {
	if !m.Valid() {
		return t
	}
	t.Config[m] = max(MinDuration, t.Config[m]+deltaMinutes*60)
	if m == t.State.Mode {
		t.State.Remaining = t.Config[m]
		t.State.Running = false
	}
	return t
}

// ToggleRunning pauses a running timer or starts a stopped one. A finished
// countdown cannot be started.
func (t Timer) ToggleRunning() Timer {
	if t.State.Running {
		t.State.Running = false
		return t
	}
	if t.State.Remaining > 0 {
		t.State.Running = true
	}
	return t
}

// Tick advances a running countdown by one second and reports whether this
// tick completed it.
func (t Timer) Tick() (Timer, bool) {
	if !t.State.Running || t.State.Remaining <= 0 {
		return t, false
	}
	t.State.Remaining--
	if t.State.Remaining == 0 {
		t.State.Running = false
		return t, true
	}
	return t, false
}

func (t Timer) Completed() bool {
	return t.State.Remaining == 0
}
