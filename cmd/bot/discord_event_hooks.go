package main

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go"
	dg "github.com/benjamonnguyen/worklog-go/discordgo"
	"github.com/benjamonnguyen/worklog-go/timer"
)

const (
	defaultErrorMsg = "Looks like something went wrong. Try again in a bit or reach out to support."
)

// timerConfig applies the /timer options over the configured defaults.
func timerConfig(defaults worklog.TimerMinutes, opts []*discordgo.ApplicationCommandInteractionDataOption) timer.Config {
	minutes := defaults
	for _, opt := range opts {
		val, ok := opt.Value.(float64)
		if !ok {
			continue
		}
		switch opt.Name {
		case worklog.FocusOption:
			minutes.Focus = int(val)
		case worklog.ShortBreakOption:
			minutes.ShortBreak = int(val)
		case worklog.LongBreakOption:
			minutes.LongBreak = int(val)
		}
	}
	return timer.ConfigFromMinutes(minutes.Focus, minutes.ShortBreak, minutes.LongBreak)
}

// ticketOption returns the trimmed /timer ticket option or "".
func ticketOption(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		if opt.Name != worklog.TicketOption {
			continue
		}
		if val, ok := opt.Value.(string); ok {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

func StartTimer(ctx context.Context, timerManager TimerManager, dm DiscordMessenger, defaults worklog.TimerMinutes, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}

	data := m.ApplicationCommandData()
	if data.Name != worklog.TimerCommand.Name {
		return false
	}

	if timerManager.HasTimer(m.ChannelID) {
		if err := dm.RespondEphemeral(m.Interaction, "This channel already has a timer."); err != nil {
			log.Error(err)
		}
		return true
	}

	cfg := timerConfig(defaults, data.Options)
	ticket := ticketOption(data.Options)
	var starterID string
	if u := GetUser(m.Interaction); u != nil {
		starterID = u.ID
	}

	// "real" timer is created by timerManager once the message exists
	preview := TimerSession{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		StarterID: starterID,
		Ticket:    ticket,
		Snapshot:  timer.Snapshot{Config: cfg, State: timer.New(cfg).State},
	}
	msg, err := dm.Respond(m.Interaction, true, TimerMessageComponents(preview)...)
	if err != nil {
		log.Error(err)
		return true
	}

	session, err := timerManager.StartTimer(ctx, startTimerRequest{
		guildID:   m.GuildID,
		channelID: m.ChannelID,
		messageID: msg.ID,
		starterID: starterID,
		ticket:    ticket,
		config:    cfg,
	})
	if err != nil {
		log.Error("failed to start timer", "channelID", m.ChannelID, "err", err)
		if _, err := dm.EditChannelMessage(m.ChannelID, msg.ID, dg.TextDisplay(defaultErrorMsg)); err != nil {
			log.Error(err)
		}
		return true
	}

	if err := dm.PinMessage(session.ChannelID, session.MessageID); err != nil {
		log.Error("failed to pin message", "err", err)
	}
	return true
}

// ControlTimer handles the mode, Start/Pause and minute buttons.
func ControlTimer(timerManager TimerManager, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionMessageComponent {
		return false
	}

	data := m.MessageComponentData()
	id, err := FromCustomID(data.CustomID)
	if err != nil {
		return false
	}
	op := timerOp(id.Type)
	if op == nil {
		return false
	}

	followup, err := dm.DeferMessageUpdate(m.Interaction)
	if err != nil {
		log.Error(err)
		return true
	}

	session, err := timerManager.Apply(id.ChannelID, op)
	if err != nil {
		log.Error("failed timer control", "type", id.Type, "channelID", id.ChannelID, "err", err)
		if _, err := followup(getEndMessage()); err != nil {
			log.Error(err)
		}
		return true
	}
	log.Debug("applied timer control", "type", id.Type, "channelID", id.ChannelID, "state", session.Snapshot.State)

	if _, err := followup(TimerMessageComponents(session)...); err != nil {
		log.Error(err)
	}
	return true
}

func timerOp(buttonType string) func(*timer.Engine) timer.Snapshot {
	if buttonType == toggleButton {
		return (*timer.Engine).ToggleRunning
	}
	if mode, delta, ok := parseAdjustButton(buttonType); ok {
		return func(e *timer.Engine) timer.Snapshot {
			return e.AdjustDuration(mode, delta)
		}
	}
	if mode, err := timer.ParseMode(buttonType); err == nil {
		return func(e *timer.Engine) timer.Snapshot {
			return e.SelectMode(mode)
		}
	}
	return nil
}

func StopTimer(timerManager TimerManager, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionMessageComponent {
		return false
	}

	data := m.MessageComponentData()
	id, err := FromCustomID(data.CustomID)
	if err != nil {
		return false
	}
	if id.Type != stopButton {
		return false
	}

	followup, err := dm.DeferMessageUpdate(m.Interaction)
	if err != nil {
		log.Error("failed StopTimer ack", "err", err)
		return true
	}

	session, err := timerManager.StopTimer(id.ChannelID)
	if err != nil {
		log.Debug("timer already stopped", "channelID", id.ChannelID, "err", err)
	}
	if _, err := followup(getEndMessage()); err != nil {
		log.Error(err)
	}
	if session.MessageID != "" {
		if err := dm.UnpinMessage(session.ChannelID, session.MessageID); err != nil {
			log.Error("failed to unpin message", "channelID", session.ChannelID, "err", err)
		}
	}
	return true
}
