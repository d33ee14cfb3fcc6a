package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/cmd/bot/dgutils"
)

type DiscordMessenger interface {
	SendChannelMessage(cID string, content string, embeds ...*discordgo.MessageEmbed) (*discordgo.Message, error)
	Respond(it *discordgo.Interaction, ephemeral bool, content string, embeds ...*discordgo.MessageEmbed) error
	DeferResponse(it *discordgo.Interaction) (followup, error)
}

func NewDiscordMessenger(client *discordgo.Session) DiscordMessenger {
	return &messenger{
		client: client,
	}
}

type messenger struct {
	client *discordgo.Session
}

func (m *messenger) SendChannelMessage(cID string, content string, embeds ...*discordgo.MessageEmbed) (*discordgo.Message, error) {
	return m.client.ChannelMessageSendComplex(cID, &discordgo.MessageSend{
		Content: content,
		Embeds:  embeds,
	})
}

func (m *messenger) Respond(it *discordgo.Interaction, ephemeral bool, content string, embeds ...*discordgo.MessageEmbed) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	return m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Embeds:  embeds,
			Flags:   flags,
		},
	})
}

type followup func(content string, embeds ...*discordgo.MessageEmbed) (*discordgo.Message, error)

func (m *messenger) DeferResponse(it *discordgo.Interaction) (followup, error) {
	if err := m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return nil, err
	}
	return func(content string, embeds ...*discordgo.MessageEmbed) (*discordgo.Message, error) {
		return m.client.FollowupMessageCreate(it, true, &discordgo.WebhookParams{
			Content: content,
			Embeds:  embeds,
		})
	}, nil
}

const (
	ratioBarFilledChar = "⣶"
	ratioBarEmptyChar  = "⡀"
)

func SessionEmbed(s Session, updated bool) *discordgo.MessageEmbed {
	title := "Metronome started"
	if updated {
		title = "Metronome updated"
	}
	name := s.preset.Name
	if name == "" {
		name = "Custom"
	}

	var steps []string
	for _, step := range puttempo.Schedule(s.cfg) {
		steps = append(steps, fmt.Sprintf("%s %.2fs", step.Phase, step.Duration.Seconds()))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%s\n%s", ratioBar(s.cfg), strings.Join(steps, " · ")),
		Color:       int(dgutils.ColorGreen),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Preset", Value: name, Inline: true},
			{Name: "Tempo", Value: fmt.Sprintf("%g bpm", s.cfg.BPM), Inline: true},
			{Name: "Ratio", Value: fmt.Sprintf("%g:%g", s.cfg.BackRatio, s.cfg.ForwardRatio), Inline: true},
			{Name: "Interval", Value: fmt.Sprintf("%gs", s.cfg.IntervalSeconds), Inline: true},
			{Name: "Sound", Value: string(s.cfg.Sound), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "/stop to end and save your practice"},
	}
}

// ratioBar draws the back stroke as filled and the forward stroke as empty.
func ratioBar(cfg puttempo.TempoConfig) string {
	const length = 18
	filled := int(float64(length)*cfg.BackRatio/(cfg.BackRatio+cfg.ForwardRatio) + 0.5)
	return strings.Repeat(ratioBarFilledChar, filled) + strings.Repeat(ratioBarEmptyChar, length-filled)
}

func StatsEmbed(stats puttempo.PracticeStats) *discordgo.MessageEmbed {
	if stats.TotalSessions == 0 {
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Last %d days", stats.PeriodDays),
			Description: "No practice sessions yet. Start one with /tempo.",
			Color:       int(dgutils.ColorLightGrey),
		}
	}

	var daily []string
	for _, d := range stats.Daily {
		daily = append(daily, fmt.Sprintf("`%s` %s (%d)", d.Date, formatSeconds(d.DurationSeconds), d.SessionCount))
	}
	mostUsed := stats.MostUsedPreset
	if mostUsed == "" {
		mostUsed = "Custom"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Last %d days", stats.PeriodDays),
		Description: strings.Join(daily, "\n"),
		Color:       int(dgutils.ColorBlurple),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Sessions", Value: fmt.Sprint(stats.TotalSessions), Inline: true},
			{Name: "Total", Value: formatSeconds(stats.TotalDurationSeconds), Inline: true},
			{Name: "Average", Value: formatSeconds(int(stats.AverageDurationSeconds)), Inline: true},
			{Name: "Most used preset", Value: mostUsed, Inline: true},
		},
	}
}

func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %02ds", int(d.Minutes()), seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
