package puttempo

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinBPM      = 30
	MaxBPM      = 200
	MinRatio    = 1
	MaxRatio    = 5
	MaxInterval = 10 // seconds

	DefaultBPM          = 85
	DefaultBackRatio    = 2
	DefaultForwardRatio = 1
	DefaultInterval     = 3 // seconds
)

var ErrInvalidTempo = errors.New("invalid tempo config")

type SoundID string

const (
	SoundClick      SoundID = "click"
	SoundElectronic SoundID = "electronic"
	SoundWood       SoundID = "wood"
	SoundMetal      SoundID = "metal"
	SoundSoftBeep   SoundID = "soft_beep"
	SoundDrumStick  SoundID = "drum_stick"
	SoundWaterDrop  SoundID = "water_drop"
	SoundSpring     SoundID = "spring"
	SoundBell       SoundID = "bell"

	// SoundSilent disables sound output. Haptics still fire when enabled.
	SoundSilent SoundID = "silent"
)

// Sounds lists every playable sound in catalogue order.
var Sounds = []SoundID{
	SoundClick,
	SoundElectronic,
	SoundWood,
	SoundMetal,
	SoundSoftBeep,
	SoundDrumStick,
	SoundWaterDrop,
	SoundSpring,
	SoundBell,
}

func (id SoundID) Valid() bool {
	if id == SoundSilent {
		return true
	}
	for _, s := range Sounds {
		if s == id {
			return true
		}
	}
	return false
}

type OutputMode string

const (
	OutputSound     OutputMode = "sound"
	OutputVibration OutputMode = "vibration"
	OutputBoth      OutputMode = "both"
)

func (m OutputMode) PlaysSound() bool {
	return m == OutputSound || m == OutputBoth
}

func (m OutputMode) Vibrates() bool {
	return m == OutputVibration || m == OutputBoth
}

type PhaseModel string

const (
	// FullModel cycles address -> takeBack -> impact -> interval.
	FullModel PhaseModel = "full"
	// SimpleModel cycles back -> forward with no rest. Used for preset previews.
	SimpleModel PhaseModel = "simple"
)

// TempoConfig holds the user tunable parameters of one metronome cycle.
type TempoConfig struct {
	BPM             float64
	BackRatio       float64
	ForwardRatio    float64
	IntervalSeconds float64
	Sound           SoundID
	Output          OutputMode
	Model           PhaseModel
}

func DefaultTempoConfig() TempoConfig {
	return TempoConfig{
		BPM:             DefaultBPM,
		BackRatio:       DefaultBackRatio,
		ForwardRatio:    DefaultForwardRatio,
		IntervalSeconds: DefaultInterval,
		Sound:           SoundClick,
		Output:          OutputSound,
		Model:           FullModel,
	}
}

// CycleDuration is the length of the active (back + forward) part of a cycle.
func (c TempoConfig) CycleDuration() time.Duration {
	return time.Duration(float64(time.Minute) / c.BPM)
}

// Validate is the configuration boundary. The engine assumes validated input.
func (c TempoConfig) Validate() error {
	if c.BPM < MinBPM || c.BPM > MaxBPM {
		return fmt.Errorf("%w: bpm %v not in [%d, %d]", ErrInvalidTempo, c.BPM, MinBPM, MaxBPM)
	}
	if c.BackRatio < MinRatio || c.BackRatio > MaxRatio {
		return fmt.Errorf("%w: back ratio %v not in [%d, %d]", ErrInvalidTempo, c.BackRatio, MinRatio, MaxRatio)
	}
	if c.ForwardRatio < MinRatio || c.ForwardRatio > MaxRatio {
		return fmt.Errorf("%w: forward ratio %v not in [%d, %d]", ErrInvalidTempo, c.ForwardRatio, MinRatio, MaxRatio)
	}
	if c.IntervalSeconds < 0 || c.IntervalSeconds > MaxInterval {
		return fmt.Errorf("%w: interval %vs not in [0, %d]", ErrInvalidTempo, c.IntervalSeconds, MaxInterval)
	}
	if !c.Sound.Valid() {
		return fmt.Errorf("%w: unknown sound %q", ErrInvalidTempo, c.Sound)
	}
	switch c.Output {
	case OutputSound, OutputVibration, OutputBoth:
	default:
		return fmt.Errorf("%w: unknown output mode %q", ErrInvalidTempo, c.Output)
	}
	switch c.Model {
	case FullModel, SimpleModel:
	default:
		return fmt.Errorf("%w: unknown phase model %q", ErrInvalidTempo, c.Model)
	}
	return nil
}
