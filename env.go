package puttempo

import (
	"github.com/joho/godotenv"
)

const (
	DatabaseURLKey       = "PUTTEMPO_DB_PATH"
	BotTokenKey          = "PUTTEMPO_BOT_TOKEN"
	BotNameKey           = "PUTTEMPO_BOT_NAME"
	SoundDirKey          = "PUTTEMPO_SOUND_DIR"
	OpusSoundDirKey      = "PUTTEMPO_OPUS_SOUND_DIR"
	PresetsPathKey       = "PUTTEMPO_PRESETS_PATH"
	LogLevelKey          = "PUTTEMPO_LOG_LEVEL"
	ListenAddrKey        = "PUTTEMPO_LISTEN_ADDR"
	MinSessionSecondsKey = "PUTTEMPO_MIN_SESSION_SECONDS"
	MaxSessionSecondsKey = "PUTTEMPO_MAX_SESSION_SECONDS"
)

// LoadEnv populates the process environment from .env in production or
// .env.dev otherwise. Missing files are ignored.
func LoadEnv(isProd bool) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}
}
