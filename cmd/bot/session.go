package main

import (
	"time"

	"github.com/benjamonnguyen/puttempo-go"
)

// Session describes the metronome the bot is playing into a voice channel.
type Session struct {
	guildID, textCID, voiceCID string
	preset                     puttempo.PresetRef
	cfg                        puttempo.TempoConfig
	startedAt                  time.Time
}

func (s Session) key() sessionKey {
	key := sessionKey{
		guildID:   s.guildID,
		channelID: s.voiceCID,
	}
	if err := key.validate(); err != nil {
		panic(err)
	}
	return key
}

func (s Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.startedAt)
}

func (s Session) VoiceChannelID() string {
	return s.voiceCID
}

func (s Session) TextChannelID() string {
	return s.textCID
}
