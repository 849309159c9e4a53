package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
	dg "github.com/benjamonnguyen/worklog-go/discordgo"
	"github.com/benjamonnguyen/worklog-go/timer"
)

func newTimerCmd(flags *globalFlags) *cobra.Command {
	var (
		minutes  worklog.TimerMinutes
		dm       bool
		ticketID string
	)
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the focus timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("focus") {
				cfg.Timer.Focus = minutes.Focus
			}
			if cmd.Flags().Changed("short-break") {
				cfg.Timer.ShortBreak = minutes.ShortBreak
			}
			if cmd.Flags().Changed("long-break") {
				cfg.Timer.LongBreak = minutes.LongBreak
			}

			var workingOn string
			if ticketID != "" {
				if workingOn, err = ticketNumber(cmd, flags, worklog.TicketID(ticketID)); err != nil {
					return err
				}
			}

			terminal := newTerminalNotifier()
			var notifier timer.NotificationChannel = terminal
			if dm {
				if err := cfg.RequireBot(); err != nil {
					return err
				}
				cl, err := discordgo.New("Bot " + cfg.BotToken)
				if err != nil {
					return err
				}
				notifier = timer.Multi(terminal, dg.NewDMNotifier(cl, cfg.DiscordUserID, logger))
			}

			engine := timer.NewEngine(cmd.Context(),
				timer.ConfigFromMinutes(cfg.Timer.Focus, cfg.Timer.ShortBreak, cfg.Timer.LongBreak),
				timer.WithNotifier(notifier),
				timer.WithLogger(logger),
			)
			defer engine.Close()

			changed := newWakeup()
			engine.OnUpdate(func(timer.Snapshot) {
				changed.raise()
			})

			p := tea.NewProgram(newTimerModel(engine, changed, terminal).withTicket(workingOn),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
	defaults := worklog.DefaultTimerMinutes()
	cmd.Flags().IntVar(&minutes.Focus, "focus", defaults.Focus, "focus minutes")
	cmd.Flags().IntVar(&minutes.ShortBreak, "short-break", defaults.ShortBreak, "short break minutes")
	cmd.Flags().IntVar(&minutes.LongBreak, "long-break", defaults.LongBreak, "long break minutes")
	cmd.Flags().StringVar(&ticketID, "ticket", "", "ticket id to show as the work in progress")
	cmd.Flags().BoolVar(&dm, "dm", false, "also send completion notices as Discord DMs to "+worklog.DiscordUserIDKey)
	return cmd
}

type ticketGetter interface {
	GetTicket(ctx context.Context, uid worklog.UserID, id worklog.TicketID) (worklog.ExistingTicketRecord, error)
}

// ticketNumber resolves the ticket the timer session is for. The db is only
// needed up front, so it is closed before the timer starts.
func ticketNumber(cmd *cobra.Command, flags *globalFlags, id worklog.TicketID) (string, error) {
	a, err := openApp(cmd, flags)
	if err != nil {
		return "", err
	}
	defer a.Close()

	number, err := resolveTicket(cmd.Context(), a.svc, a.userID, id)
	if err != nil {
		return "", err
	}
	a.l.Debug("timer linked to ticket", "id", id, "number", number)
	return number, nil
}

func resolveTicket(ctx context.Context, tickets ticketGetter, uid worklog.UserID, id worklog.TicketID) (string, error) {
	t, err := tickets.GetTicket(ctx, uid, id)
	if err != nil {
		return "", fmt.Errorf("failed to start timer: %w", err)
	}
	return t.Number, nil
}
