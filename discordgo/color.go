package discordgo

import "github.com/bwmarrin/discordgo"

type Color int

const (
	ColorGreen     Color = 0x57f287
	ColorBlue      Color = 0x3498db
	ColorOrange    Color = 0xe67e22
	ColorRed       Color = 0xed4245
	ColorLightGrey Color = 0xbcc0c0
	ColorBlurple   Color = 0x5865f2
)

func (c Color) ToInt() *int {
	i := int(c)
	return &i
}

func TextDisplay(content string) discordgo.TextDisplay {
	return discordgo.TextDisplay{
		Content: content,
	}
}
