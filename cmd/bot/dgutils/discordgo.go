// Package dgutils contains utility wrappers around github.com/bwmarrin/discordgo
package dgutils

import (
	"github.com/bwmarrin/discordgo"
)

func GetUser(m *discordgo.Interaction) *discordgo.User {
	if m.Member != nil {
		return m.Member.User
	}
	return m.User
}

// OptionMap indexes slash command options by name.
func OptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

type Color int

const (
	ColorGreen     Color = 0x57f287
	ColorYellow    Color = 0xfee75c
	ColorRed       Color = 0xed4245
	ColorLightGrey Color = 0xbcc0c0
	ColorBlurple   Color = 0x5865f2
)
