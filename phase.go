package puttempo

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAddress
	PhaseTakeBack
	PhaseImpact
	PhaseInterval
	PhaseBack
	PhaseForward
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAddress:
		return "address"
	case PhaseTakeBack:
		return "takeBack"
	case PhaseImpact:
		return "impact"
	case PhaseInterval:
		return "interval"
	case PhaseBack:
		return "back"
	case PhaseForward:
		return "forward"
	default:
		return "unknown"
	}
}

type Intensity uint8

const (
	_ Intensity = iota
	IntensityLight
	IntensityMedium
	IntensityHeavy
)

func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityMedium:
		return "medium"
	case IntensityHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// FeedbackProfile describes what fires when a phase is entered.
type FeedbackProfile struct {
	Sound     bool
	Haptic    bool
	Intensity Intensity
}

// Profile returns the feedback profile of p. Rest and idle phases are silent.
func (p Phase) Profile() FeedbackProfile {
	switch p {
	case PhaseAddress, PhaseTakeBack, PhaseBack:
		return FeedbackProfile{Sound: true, Haptic: true, Intensity: IntensityLight}
	case PhaseImpact, PhaseForward:
		return FeedbackProfile{Sound: true, Haptic: true, Intensity: IntensityMedium}
	default:
		return FeedbackProfile{}
	}
}
