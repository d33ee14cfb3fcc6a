package puttempo

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL  string
	BotName      string
	BotToken     string
	SoundDir     string // WAV clips for local playback
	OpusSoundDir string // DCA opus clips for Discord voice
	PresetsPath  string
	LogLevel     string
	ListenAddr   string

	//
	MinSessionSeconds int
	MaxSessionSeconds int
}

// LoadConfig reads Config from the environment. Call LoadEnv first to pick up
// dotenv files.
func LoadConfig() (Config, error) {
	config := Config{
		DatabaseURL:       os.Getenv(DatabaseURLKey),
		BotName:           os.Getenv(BotNameKey),
		BotToken:          os.Getenv(BotTokenKey),
		SoundDir:          os.Getenv(SoundDirKey),
		OpusSoundDir:      os.Getenv(OpusSoundDirKey),
		PresetsPath:       os.Getenv(PresetsPathKey),
		LogLevel:          os.Getenv(LogLevelKey),
		ListenAddr:        os.Getenv(ListenAddrKey),
		MinSessionSeconds: MinSessionSeconds,
		MaxSessionSeconds: MaxSessionSeconds,
	}

	if config.DatabaseURL == "" {
		config.DatabaseURL = "puttempo.db"
	}
	if config.BotName == "" {
		config.BotName = "PuttTempo"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	var err error
	if config.MinSessionSeconds, err = intEnv(MinSessionSecondsKey, config.MinSessionSeconds); err != nil {
		return Config{}, err
	}
	if config.MaxSessionSeconds, err = intEnv(MaxSessionSecondsKey, config.MaxSessionSeconds); err != nil {
		return Config{}, err
	}
	if config.MinSessionSeconds > config.MaxSessionSeconds {
		return Config{}, fmt.Errorf("%s (%d) exceeds %s (%d)",
			MinSessionSecondsKey, config.MinSessionSeconds, MaxSessionSecondsKey, config.MaxSessionSeconds)
	}

	return config, nil
}

// RequireBotToken fails when the Discord token is unset.
func (c Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("required environment variable: %s", BotTokenKey)
	}
	return nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected non-negative integer", key, raw)
	}
	return v, nil
}
