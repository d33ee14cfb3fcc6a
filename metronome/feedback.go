package metronome

import (
	"github.com/benjamonnguyen/puttempo-go"
)

// SoundEmitter plays a sound without blocking. Failures are handled by the
// emitter and never reported back.
type SoundEmitter interface {
	PlaySound(puttempo.SoundID)
}

// HapticEmitter fires a haptic pulse without blocking. Same contract as SoundEmitter.
type HapticEmitter interface {
	Vibrate(puttempo.Intensity)
}

type nopSound struct{}

func (nopSound) PlaySound(puttempo.SoundID) {}

type nopHaptics struct{}

func (nopHaptics) Vibrate(puttempo.Intensity) {}
