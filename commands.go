package worklog

import (
	"github.com/bwmarrin/discordgo"
)

const (
	FocusOption      = "focus"
	ShortBreakOption = "short_break"
	LongBreakOption  = "long_break"
	TicketOption     = "ticket"
)

func float64Ptr(f float64) *float64 {
	return &f
}

var TimerCommand = discordgo.ApplicationCommand{
	Name:        "timer",
	Description: "start a focus timer in this channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        FocusOption,
			Description: "focus duration in minutes (Default: 25)",
			MinValue:    float64Ptr(1),
			MaxValue:    240,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        ShortBreakOption,
			Description: "short break duration in minutes (Default: 5)",
			MinValue:    float64Ptr(1),
			MaxValue:    240,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        LongBreakOption,
			Description: "long break duration in minutes (Default: 15)",
			MinValue:    float64Ptr(1),
			MaxValue:    240,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        TicketOption,
			Description: "ticket number you are working on, e.g. TKT-123456",
			MaxLength:   32,
		},
	},
}
