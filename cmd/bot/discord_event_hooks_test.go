package main

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/cmd/bot/dgutils"
	"github.com/benjamonnguyen/puttempo-go/practice"
	"github.com/benjamonnguyen/puttempo-go/presets"
)

func intOpt(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: v,
	}
}

func TestParseTempoOptions(t *testing.T) {
	standard := puttempo.PresetRef{ID: "default-standard", Name: "Standard"}
	tests := []struct {
		name       string
		options    []*discordgo.ApplicationCommandInteractionDataOption
		wantBPM    float64
		wantBack   float64
		wantPreset puttempo.PresetRef
	}{
		{
			name:       "no options uses the default preset",
			wantBPM:    85,
			wantBack:   2,
			wantPreset: standard,
		},
		{
			name:       "named preset",
			options:    []*discordgo.ApplicationCommandInteractionDataOption{stringOpt(puttempo.PresetOption, "default-slow")},
			wantBPM:    70,
			wantBack:   2,
			wantPreset: puttempo.PresetRef{ID: "default-slow", Name: "Slow"},
		},
		{
			name:     "bpm override is custom",
			options:  []*discordgo.ApplicationCommandInteractionDataOption{intOpt(puttempo.BPMOption, 92)},
			wantBPM:  92,
			wantBack: 2,
		},
		{
			name: "ratio override on a preset is custom",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				stringOpt(puttempo.PresetOption, "default-fast"),
				intOpt(puttempo.BackOption, 3),
			},
			wantBPM:  100,
			wantBack: 3,
		},
		{
			name: "interval and sound keep the preset",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				intOpt(puttempo.IntervalOption, 5),
				stringOpt(puttempo.SoundOption, string(puttempo.SoundWood)),
			},
			wantBPM:    85,
			wantBack:   2,
			wantPreset: standard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ref, err := parseTempoOptions(tt.options, presets.Defaults())

			require.NoError(t, err)
			assert.Equal(t, tt.wantBPM, cfg.BPM)
			assert.Equal(t, tt.wantBack, cfg.BackRatio)
			assert.Equal(t, tt.wantPreset, ref)
		})
	}
}

func TestParseTempoOptions_IntervalAndSound(t *testing.T) {
	cfg, _, err := parseTempoOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		intOpt(puttempo.IntervalOption, 0),
		stringOpt(puttempo.SoundOption, string(puttempo.SoundBell)),
	}, presets.Defaults())

	require.NoError(t, err)
	assert.Equal(t, float64(0), cfg.IntervalSeconds)
	assert.Equal(t, puttempo.SoundBell, cfg.Sound)
}

func TestParseTempoOptions_Errors(t *testing.T) {
	_, _, err := parseTempoOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(puttempo.PresetOption, "nope"),
	}, presets.Defaults())
	assert.EqualError(t, err, `unknown preset "nope"`)

	_, _, err = parseTempoOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		intOpt(puttempo.BPMOption, 250),
	}, presets.Defaults())
	assert.ErrorIs(t, err, puttempo.ErrInvalidTempo)
}

func TestSessionEndedMessage(t *testing.T) {
	record := puttempo.SessionRecord{BPM: 85, BackRatio: 2, ForwardRatio: 1, DurationSeconds: 192}
	tests := []struct {
		name      string
		saveErr   error
		wantTitle string
		wantDesc  string
		wantColor dgutils.Color
	}{
		{"saved", nil, "Practice saved", "3m 12s at 85 bpm (2:1)", dgutils.ColorGreen},
		{"too short", practice.ErrTooShort, "Practice not saved", "Sessions under 5s are not recorded.", dgutils.ColorYellow},
		{"db failure", errors.New("disk full"), "Practice not saved", defaultErrorMsg, dgutils.ColorRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := SessionEndedMessage(record, tt.saveErr, 5)

			assert.Equal(t, tt.wantTitle, embed.Title)
			assert.Equal(t, tt.wantDesc, embed.Description)
			assert.Equal(t, int(tt.wantColor), embed.Color)
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 00s"},
		{192, "3m 12s"},
		{3720, "1h 02m"},
		{7200, "2h 00m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.seconds))
	}
}

func TestRatioBar(t *testing.T) {
	cfg := puttempo.DefaultTempoConfig()
	cfg.BackRatio, cfg.ForwardRatio = 2, 1
	assert.Equal(t, "⣶⣶⣶⣶⣶⣶⣶⣶⣶⣶⣶⣶⡀⡀⡀⡀⡀⡀", ratioBar(cfg))

	cfg.BackRatio, cfg.ForwardRatio = 1, 1
	assert.Equal(t, "⣶⣶⣶⣶⣶⣶⣶⣶⣶⡀⡀⡀⡀⡀⡀⡀⡀⡀", ratioBar(cfg))
}

func TestStatsEmbed(t *testing.T) {
	empty := StatsEmbed(puttempo.PracticeStats{PeriodDays: 7})
	assert.Equal(t, "Last 7 days", empty.Title)
	assert.Empty(t, empty.Fields)

	embed := StatsEmbed(puttempo.PracticeStats{
		TotalSessions:          3,
		TotalDurationSeconds:   900,
		AverageDurationSeconds: 300,
		MostUsedPreset:         "Standard",
		PeriodDays:             7,
		Daily: []puttempo.DailyStat{
			{Date: "2026-06-01", DurationSeconds: 600, SessionCount: 2},
			{Date: "2026-06-03", DurationSeconds: 300, SessionCount: 1},
		},
	})
	assert.Equal(t, "`2026-06-01` 10m 00s (2)\n`2026-06-03` 5m 00s (1)", embed.Description)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "3", embed.Fields[0].Value)
	assert.Equal(t, "15m 00s", embed.Fields[1].Value)
	assert.Equal(t, "5m 00s", embed.Fields[2].Value)
	assert.Equal(t, "Standard", embed.Fields[3].Value)
}

func TestSessionEmbed(t *testing.T) {
	cfg := puttempo.DefaultTempoConfig()
	embed := SessionEmbed(Session{cfg: cfg}, true)

	assert.Equal(t, "Metronome updated", embed.Title)
	assert.Equal(t, "Custom", embed.Fields[0].Value)
	assert.Equal(t, "85 bpm", embed.Fields[1].Value)
}
