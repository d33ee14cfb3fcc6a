package puttempo

import (
	"github.com/bwmarrin/discordgo"
)

const (
	BPMOption      = "bpm"
	BackOption     = "back"
	ForwardOption  = "forward"
	IntervalOption = "interval"
	SoundOption    = "sound"
	PresetOption   = "preset"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func soundChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Sounds))
	for _, s := range Sounds {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(s),
			Value: string(s),
		})
	}
	return choices
}

var TempoCommand = discordgo.ApplicationCommand{
	Name:        "tempo",
	Description: "start the putting metronome in your voice channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        PresetOption,
			Description: "preset id to start from (Default: default-standard)",
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        BPMOption,
			Description: "strokes per minute (Default: 85)",
			MinValue:    float64Ptr(MinBPM),
			MaxValue:    MaxBPM,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        BackOption,
			Description: "back stroke share of the ratio (Default: 2)",
			MinValue:    float64Ptr(MinRatio),
			MaxValue:    MaxRatio,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        ForwardOption,
			Description: "forward stroke share of the ratio (Default: 1)",
			MinValue:    float64Ptr(MinRatio),
			MaxValue:    MaxRatio,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        IntervalOption,
			Description: "rest in seconds between strokes (Default: 3)",
			MinValue:    float64Ptr(0),
			MaxValue:    MaxInterval,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        SoundOption,
			Description: "click sound (Default: click)",
			Choices:     soundChoices(),
		},
	},
}

var StopCommand = discordgo.ApplicationCommand{
	Name:        "stop",
	Description: "stop the metronome and save the practice session",
}

var StatsCommand = discordgo.ApplicationCommand{
	Name:        "stats",
	Description: "practice totals for the last 7 days",
}
