package puttempo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTempoConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TempoConfig)
		wantErr bool
	}{
		{"default", func(*TempoConfig) {}, false},
		{"min bpm", func(c *TempoConfig) { c.BPM = MinBPM }, false},
		{"max bpm", func(c *TempoConfig) { c.BPM = MaxBPM }, false},
		{"bpm too low", func(c *TempoConfig) { c.BPM = 29 }, true},
		{"bpm too high", func(c *TempoConfig) { c.BPM = 201 }, true},
		{"zero bpm", func(c *TempoConfig) { c.BPM = 0 }, true},
		{"zero back ratio", func(c *TempoConfig) { c.BackRatio = 0 }, true},
		{"forward ratio too high", func(c *TempoConfig) { c.ForwardRatio = 6 }, true},
		{"no interval", func(c *TempoConfig) { c.IntervalSeconds = 0 }, false},
		{"negative interval", func(c *TempoConfig) { c.IntervalSeconds = -1 }, true},
		{"interval too long", func(c *TempoConfig) { c.IntervalSeconds = 11 }, true},
		{"silent", func(c *TempoConfig) { c.Sound = SoundSilent }, false},
		{"unknown sound", func(c *TempoConfig) { c.Sound = "kazoo" }, true},
		{"unknown output", func(c *TempoConfig) { c.Output = "" }, true},
		{"simple model", func(c *TempoConfig) { c.Model = SimpleModel }, false},
		{"unknown model", func(c *TempoConfig) { c.Model = "triple" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTempoConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTempo)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputMode(t *testing.T) {
	assert.True(t, OutputSound.PlaysSound())
	assert.False(t, OutputSound.Vibrates())
	assert.False(t, OutputVibration.PlaysSound())
	assert.True(t, OutputVibration.Vibrates())
	assert.True(t, OutputBoth.PlaysSound())
	assert.True(t, OutputBoth.Vibrates())
}
