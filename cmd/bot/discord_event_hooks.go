package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/cmd/bot/dgutils"
	"github.com/benjamonnguyen/puttempo-go/practice"
	"github.com/benjamonnguyen/puttempo-go/presets"
)

const (
	defaultErrorMsg = "Looks like something went wrong. Try again in a bit or reach out to support."
)

type statsProvider interface {
	Stats(ctx context.Context, days int) (puttempo.PracticeStats, error)
}

func isCommand(m *discordgo.InteractionCreate, cmd discordgo.ApplicationCommand) bool {
	return m.Type == discordgo.InteractionApplicationCommand && m.ApplicationCommandData().Name == cmd.Name
}

func StartTempo(ctx context.Context, sessionManager SessionManager, presetList []presets.Preset, dm DiscordMessenger, s *discordgo.Session, m *discordgo.InteractionCreate) bool {
	if !isCommand(m, puttempo.TempoCommand) {
		return false
	}

	cfg, preset, err := parseTempoOptions(m.ApplicationCommandData().Options, presetList)
	if err != nil {
		if err := dm.Respond(m.Interaction, true, err.Error()); err != nil {
			log.Error(err)
		}
		return true
	}

	user := dgutils.GetUser(m.Interaction)
	vs, err := s.State.VoiceState(m.GuildID, user.ID)
	if err != nil {
		log.Debug("failed to get voice state", "userID", user.ID, "guildID", m.GuildID, "err", err)
		if err := dm.Respond(m.Interaction, true, "Join a voice channel first so the metronome has somewhere to play."); err != nil {
			log.Error(err)
		}
		return true
	}

	req := startSessionRequest{
		guildID:  m.GuildID,
		textCID:  m.ChannelID,
		voiceCID: vs.ChannelID,
		preset:   preset,
		cfg:      cfg,
	}
	if active, ok := sessionManager.ActiveSession(); ok && active.key() == req.key() {
		session, err := sessionManager.UpdateSession(ctx, req)
		if err != nil {
			log.Error("failed to update session", "err", err)
			if err := dm.Respond(m.Interaction, true, defaultErrorMsg); err != nil {
				log.Error(err)
			}
			return true
		}
		if err := dm.Respond(m.Interaction, false, "", SessionEmbed(session, true)); err != nil {
			log.Error(err)
		}
		return true
	}

	// joining voice can outlast the interaction deadline
	followup, err := dm.DeferResponse(m.Interaction)
	if err != nil {
		log.Error(err)
		return true
	}
	session, err := sessionManager.StartSession(ctx, req)
	if err != nil {
		msg := defaultErrorMsg
		if errors.Is(err, ErrSessionExists) {
			msg = "The metronome is already playing in another channel. Use /stop there first."
		} else {
			log.Error("failed to start session", "err", err)
		}
		if _, err := followup(msg); err != nil {
			log.Error(err)
		}
		return true
	}
	if _, err := followup("", SessionEmbed(session, false)); err != nil {
		log.Error(err)
	}
	return true
}

func StopTempo(ctx context.Context, sessionManager SessionManager, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if !isCommand(m, puttempo.StopCommand) {
		return false
	}

	_, record, err := sessionManager.EndSession(ctx)
	if err != nil {
		msg := defaultErrorMsg
		if errors.Is(err, ErrNoSession) {
			msg = "No metronome is running."
		} else {
			log.Error("failed to end session", "err", err)
		}
		if err := dm.Respond(m.Interaction, true, msg); err != nil {
			log.Error(err)
		}
		return true
	}

	if err := dm.Respond(m.Interaction, false, fmt.Sprintf("Stopped after %s.", formatSeconds(record.DurationSeconds))); err != nil {
		log.Error(err)
	}
	return true
}

func ShowStats(ctx context.Context, stats statsProvider, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if !isCommand(m, puttempo.StatsCommand) {
		return false
	}

	ps, err := stats.Stats(ctx, puttempo.StatsPeriodDays)
	if err != nil {
		log.Error("failed to load stats", "err", err)
		if err := dm.Respond(m.Interaction, true, defaultErrorMsg); err != nil {
			log.Error(err)
		}
		return true
	}
	if err := dm.Respond(m.Interaction, false, "", StatsEmbed(ps)); err != nil {
		log.Error(err)
	}
	return true
}

// parseTempoOptions starts from the chosen preset (or the default one) and
// applies any explicit overrides. Overriding tempo or ratio makes the session custom.
func parseTempoOptions(options []*discordgo.ApplicationCommandInteractionDataOption, presetList []presets.Preset) (puttempo.TempoConfig, puttempo.PresetRef, error) {
	opts := dgutils.OptionMap(options)

	presetID := presets.DefaultID
	if opt, ok := opts[puttempo.PresetOption]; ok {
		presetID = opt.StringValue()
	}
	preset, ok := presets.Find(presetList, presetID)
	if !ok {
		return puttempo.TempoConfig{}, puttempo.PresetRef{}, fmt.Errorf("unknown preset %q", presetID)
	}
	cfg := preset.Apply(puttempo.DefaultTempoConfig())
	ref := preset.Ref()

	if opt, ok := opts[puttempo.BPMOption]; ok {
		cfg.BPM = float64(opt.IntValue())
		ref = puttempo.PresetRef{}
	}
	if opt, ok := opts[puttempo.BackOption]; ok {
		cfg.BackRatio = float64(opt.IntValue())
		ref = puttempo.PresetRef{}
	}
	if opt, ok := opts[puttempo.ForwardOption]; ok {
		cfg.ForwardRatio = float64(opt.IntValue())
		ref = puttempo.PresetRef{}
	}
	if opt, ok := opts[puttempo.IntervalOption]; ok {
		cfg.IntervalSeconds = float64(opt.IntValue())
	}
	if opt, ok := opts[puttempo.SoundOption]; ok {
		cfg.Sound = puttempo.SoundID(opt.StringValue())
	}

	if err := cfg.Validate(); err != nil {
		return puttempo.TempoConfig{}, puttempo.PresetRef{}, err
	}
	return cfg, ref, nil
}

// SessionEndedMessage reports the outcome of saving a finished session.
func SessionEndedMessage(record puttempo.SessionRecord, saveErr error, minSeconds int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Practice saved",
		Description: fmt.Sprintf("%s at %g bpm (%g:%g)",
			formatSeconds(record.DurationSeconds), record.BPM, record.BackRatio, record.ForwardRatio),
		Color: int(dgutils.ColorGreen),
	}
	switch {
	case errors.Is(saveErr, practice.ErrTooShort):
		embed.Title = "Practice not saved"
		embed.Description = fmt.Sprintf("Sessions under %s are not recorded.", formatSeconds(minSeconds))
		embed.Color = int(dgutils.ColorYellow)
	case saveErr != nil:
		embed.Title = "Practice not saved"
		embed.Description = defaultErrorMsg
		embed.Color = int(dgutils.ColorRed)
	}
	return embed
}
