package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/worklog-go/timer"
)

type keyMap struct {
	Toggle     key.Binding
	Focus      key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	Longer     key.Binding
	Shorter    key.Binding
	NextTarget key.Binding
	PrevTarget key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Longer, k.Shorter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Longer, k.Shorter},
		{k.Focus, k.ShortBreak, k.LongBreak},
		{k.NextTarget, k.PrevTarget},
		{k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
	Focus:      key.NewBinding(key.WithKeys("1", "f"), key.WithHelp("1/f", "focus")),
	ShortBreak: key.NewBinding(key.WithKeys("2", "s"), key.WithHelp("2/s", "short break")),
	LongBreak:  key.NewBinding(key.WithKeys("3", "l"), key.WithHelp("3/l", "long break")),
	Longer:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "1 min longer")),
	Shorter:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "1 min shorter")),
	NextTarget: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next duration")),
	PrevTarget: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous duration")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	clockStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")).Padding(1, 0)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(accent).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(hot)
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(1, 3)
	pausedStyle   = lipgloss.NewStyle().Foreground(muted)
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	minutesStyles = lipgloss.NewStyle().Foreground(muted)
	targetStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	ticketStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
)

// engineChangedMsg signals that the engine moved on its own, e.g. a tick.
type engineChangedMsg struct{}

type noticeMsg struct {
	title, body string
}

// wakeup is a one slot, latest wins channel used by the engine hook. The hook
// runs on the engine's tick goroutine and must never block on the UI loop.
type wakeup chan struct{}

func newWakeup() wakeup {
	return make(wakeup, 1)
}

func (s wakeup) raise() {
	select {
	case s <- struct{}{}:
	default:
	}
}

func (s wakeup) wait() tea.Cmd {
	return func() tea.Msg {
		<-s
		return engineChangedMsg{}
	}
}

// terminalNotifier surfaces completion notices inside the timer screen and
// rings the terminal bell.
type terminalNotifier struct {
	notices chan noticeMsg
}

func newTerminalNotifier() *terminalNotifier {
	return &terminalNotifier{notices: make(chan noticeMsg, 4)}
}

func (n *terminalNotifier) Permission() timer.Permission {
	return timer.PermissionGranted
}

func (n *terminalNotifier) RequestPermission(context.Context) (timer.Permission, error) {
	return timer.PermissionGranted, nil
}

func (n *terminalNotifier) Notify(_ context.Context, title, body string) error {
	select {
	case n.notices <- noticeMsg{title: title, body: body}:
	default:
	}
	return nil
}

func (n *terminalNotifier) wait() tea.Cmd {
	return func() tea.Msg {
		return <-n.notices
	}
}

type timerModel struct {
	engine   *timer.Engine
	changed  wakeup
	notifier *terminalNotifier

	snap timer.Snapshot
	// target is the mode whose duration +/- adjusts
	target    timer.Mode
	workingOn string
	banner    string
	keys     keyMap
	help     help.Model
	progress progress.Model
}

func newTimerModel(engine *timer.Engine, changed wakeup, notifier *terminalNotifier) timerModel {
	return timerModel{
		engine:   engine,
		changed:  changed,
		notifier: notifier,
		snap:     engine.Snapshot(),
		target:   engine.Snapshot().State.Mode,
		keys:     defaultKeys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

// withTicket shows the ticket number being worked on above the timer.
func (m timerModel) withTicket(number string) timerModel {
	m.workingOn = number
	return m
}

func (m timerModel) Init() tea.Cmd {
	return tea.Batch(m.changed.wait(), m.notifier.wait())
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineChangedMsg:
		m.snap = m.engine.Snapshot()
		return m, m.changed.wait()

	case noticeMsg:
		m.banner = msg.title + " " + msg.body
		return m, tea.Batch(tea.Println("\a"+bannerStyle.Render(m.banner)), m.notifier.wait())

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.snap = m.engine.ToggleRunning()
		case key.Matches(msg, m.keys.Focus):
			m.snap, m.target = m.engine.SelectMode(timer.Focus), timer.Focus
		case key.Matches(msg, m.keys.ShortBreak):
			m.snap, m.target = m.engine.SelectMode(timer.ShortBreak), timer.ShortBreak
		case key.Matches(msg, m.keys.LongBreak):
			m.snap, m.target = m.engine.SelectMode(timer.LongBreak), timer.LongBreak
		case key.Matches(msg, m.keys.NextTarget):
			m.target = (m.target + 1) % timer.Mode(len(timer.Modes))
			return m, nil
		case key.Matches(msg, m.keys.PrevTarget):
			m.target = (m.target + timer.Mode(len(timer.Modes)) - 1) % timer.Mode(len(timer.Modes))
			return m, nil
		case key.Matches(msg, m.keys.Longer):
			m.snap = m.engine.AdjustDuration(m.target, 1)
		case key.Matches(msg, m.keys.Shorter):
			m.snap = m.engine.AdjustDuration(m.target, -1)
		default:
			return m, nil
		}
		if m.snap.State.Running {
			m.banner = ""
		}
		return m, nil
	}
	return m, nil
}

func (m timerModel) View() string {
	label, clock, running := m.snap.Display()

	tabs := make([]string, 0, len(timer.Modes))
	for _, mode := range timer.Modes {
		style := inactiveTab
		if mode == m.snap.State.Mode {
			style = activeTab
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%s %dm", mode, m.snap.Minutes(mode))))
	}

	status := pausedStyle.Render("paused")
	if running {
		status = runningStyle.Render("running")
	} else if m.snap.Completed() {
		status = bannerStyle.Render("done")
	}

	var percent float64
	if total := m.snap.Config[m.snap.State.Mode]; total > 0 {
		percent = float64(m.snap.State.Remaining) / float64(total)
	}

	durations := make([]string, 0, len(timer.Modes))
	for _, mode := range timer.Modes {
		line := fmt.Sprintf("  %s: %d min", mode, m.snap.Minutes(mode))
		if mode == m.target {
			durations = append(durations, targetStyle.Render("> "+strings.TrimPrefix(line, "  ")+"  -/+"))
			continue
		}
		durations = append(durations, minutesStyles.Render(line))
	}

	var body []string
	if m.workingOn != "" {
		body = append(body, "Working on "+ticketStyle.Render(m.workingOn), "")
	}
	body = append(body,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		clockStyle.Render(clock) + "  " + status,
		m.progress.ViewAs(percent),
		minutesStyles.Render(label),
		"",
		strings.Join(durations, "\n"),
	)
	if m.banner != "" {
		body = append(body, "", bannerStyle.Render(m.banner))
	}

	return frameStyle.Render(strings.Join(body, "\n")) + "\n" + m.help.View(m.keys) + "\n"
}
