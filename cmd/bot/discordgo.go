package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	dg "github.com/benjamonnguyen/worklog-go/discordgo"
	"github.com/benjamonnguyen/worklog-go/timer"
)

type DiscordMessenger interface {
	EditChannelMessage(channelID, messageID string, components ...discordgo.MessageComponent) (*discordgo.Message, error)
	Respond(it *discordgo.Interaction, wait bool, components ...discordgo.MessageComponent) (*discordgo.Message, error)
	RespondEphemeral(it *discordgo.Interaction, content string) error
	DeferMessageUpdate(it *discordgo.Interaction) (followup, error)
	PinMessage(channelID, messageID string) error
	UnpinMessage(channelID, messageID string) error
}

func NewDiscordMessenger(client *discordgo.Session) DiscordMessenger {
	return &messenger{
		client: client,
	}
}

type messenger struct {
	client *discordgo.Session
}

func (m *messenger) EditChannelMessage(channelID, messageID string, components ...discordgo.MessageComponent) (*discordgo.Message, error) {
	return m.client.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Flags:      discordgo.MessageFlagsIsComponentsV2,
		Components: &components,
	})
}

// Respond returns message only when wait == true
func (m *messenger) Respond(it *discordgo.Interaction, wait bool, components ...discordgo.MessageComponent) (*discordgo.Message, error) {
	if err := m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:      discordgo.MessageFlagsIsComponentsV2,
			Components: components,
		},
	}); err != nil {
		return nil, err
	}
	if wait {
		return m.client.InteractionResponse(it)
	}
	return nil, nil
}

func (m *messenger) RespondEphemeral(it *discordgo.Interaction, content string) error {
	return m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: content,
		},
	})
}

type followup func(components ...discordgo.MessageComponent) (*discordgo.Message, error)

func (m *messenger) DeferMessageUpdate(it *discordgo.Interaction) (followup, error) {
	if err := m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		return nil, err
	}
	return func(components ...discordgo.MessageComponent) (*discordgo.Message, error) {
		return m.client.FollowupMessageEdit(it, it.Message.ID, &discordgo.WebhookEdit{
			Components: &components,
		})
	}, nil
}

func (m *messenger) PinMessage(channelID, messageID string) error {
	return m.client.ChannelMessagePin(channelID, messageID)
}

func (m *messenger) UnpinMessage(channelID, messageID string) error {
	return m.client.ChannelMessageUnpin(channelID, messageID)
}

func GetUser(m *discordgo.Interaction) *discordgo.User {
	if m.Member != nil {
		return m.Member.User
	}
	return m.User
}

// Button types. Mode buttons use timer.Mode.Key() as their type and the
// per mode minute buttons use adjustButton.
const (
	toggleButton  = "toggle"
	longerButton  = "longer"
	shorterButton = "shorter"
	stopButton    = "stop"
)

// adjustButton names the minute button for mode, e.g. "longer-short_break".
func adjustButton(direction string, mode timer.Mode) string {
	return direction + "-" + mode.Key()
}

func parseAdjustButton(buttonType string) (timer.Mode, int, bool) {
	direction, key, ok := strings.Cut(buttonType, "-")
	if !ok {
		return 0, 0, false
	}
	var delta int
	switch direction {
	case longerButton:
		delta = 1
	case shorterButton:
		delta = -1
	default:
		return 0, 0, false
	}
	mode, err := timer.ParseMode(key)
	if err != nil {
		return 0, 0, false
	}
	return mode, delta, true
}

type InteractionID struct {
	Type      string
	ChannelID string
}

func FromCustomID(customID string) (InteractionID, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return InteractionID{}, fmt.Errorf("invalid customID: %s", customID)
	}
	return InteractionID{
		Type:      parts[0],
		ChannelID: parts[1],
	}, nil
}

func (id InteractionID) ToCustomID() string {
	return fmt.Sprintf("%s:%s", id.Type, id.ChannelID)
}

func TimerMessageComponents(s TimerSession) []discordgo.MessageComponent {
	snap := s.Snapshot
	label, clock, running := snap.Display()

	// settings
	var lines []string
	if s.Ticket != "" {
		lines = append(lines, "Working on **"+s.Ticket+"**")
	}
	lines = append(lines, "### "+label)
	switch {
	case snap.Completed():
		lines = append(lines, fmt.Sprintf("**%s** %s", clock, "Time's up!"))
	case running:
		lines = append(lines, fmt.Sprintf("**%s** remaining", clock))
	default:
		lines = append(lines, fmt.Sprintf("**%s** paused", clock))
	}
	lines = append(lines, snap.TimerBar(), "")
	for _, m := range timer.Modes {
		line := fmt.Sprintf("%s: %d min", m, snap.Minutes(m))
		if m == snap.State.Mode {
			line = "**" + line + "**"
		}
		lines = append(lines, line)
	}

	accentColor := dg.ColorLightGrey
	switch {
	case snap.Completed():
		accentColor = dg.ColorOrange
	case running:
		accentColor = dg.ColorGreen
	}
	settingsContainer := discordgo.Container{
		Components: []discordgo.MessageComponent{
			dg.TextDisplay(strings.Join(lines, "\n")),
		},
		AccentColor: accentColor.ToInt(),
	}

	components := []discordgo.MessageComponent{
		getStartMessage(s.StarterID),
		settingsContainer,
	}

	// one row per mode: select, shorter, longer
	for _, m := range timer.Modes {
		style := discordgo.SecondaryButton
		if m == snap.State.Mode {
			style = discordgo.PrimaryButton
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("%s (%d min)", m, snap.Minutes(m)),
					Style:    style,
					CustomID: InteractionID{Type: m.Key(), ChannelID: s.ChannelID}.ToCustomID(),
				},
				discordgo.Button{
					Label:    "-",
					Style:    discordgo.SecondaryButton,
					CustomID: InteractionID{Type: adjustButton(shorterButton, m), ChannelID: s.ChannelID}.ToCustomID(),
					Disabled: snap.Minutes(m) <= timer.MinDuration/60,
				},
				discordgo.Button{
					Label:    "+",
					Style:    discordgo.SecondaryButton,
					CustomID: InteractionID{Type: adjustButton(longerButton, m), ChannelID: s.ChannelID}.ToCustomID(),
				},
			},
		})
	}

	// controls
	toggle := discordgo.Button{
		Label:    "Start",
		Style:    discordgo.SuccessButton,
		CustomID: InteractionID{Type: toggleButton, ChannelID: s.ChannelID}.ToCustomID(),
		Disabled: snap.Completed(),
	}
	if running {
		toggle.Label = "Pause"
		toggle.Style = discordgo.SecondaryButton
	}
	controls := []discordgo.MessageComponent{
		toggle,
		discordgo.Button{
			Label:    "Stop",
			Style:    discordgo.DangerButton,
			CustomID: InteractionID{Type: stopButton, ChannelID: s.ChannelID}.ToCustomID(),
		},
	}

	return append(components, discordgo.ActionsRow{Components: controls})
}

func getStartMessage(starterID string) discordgo.MessageComponent {
	if starterID == "" {
		return dg.TextDisplay("It's productivity o'clock!")
	}
	return dg.TextDisplay(fmt.Sprintf("It's productivity o'clock, <@%s>!", starterID))
}

func getEndMessage() discordgo.MessageComponent {
	return dg.TextDisplay("Good stuff!")
}
