package puttempo

import "time"

// AddressDuration is the fixed pre-shot pause before the take-back.
const AddressDuration = 1000 * time.Millisecond

type Step struct {
	Phase    Phase
	Duration time.Duration
}

// Schedule returns the phases of exactly one cycle of cfg in order.
// It holds no state; callers recompute whenever cfg changes.
func Schedule(cfg TempoConfig) []Step {
	cycle := float64(cfg.CycleDuration())
	total := cfg.BackRatio + cfg.ForwardRatio
	back := time.Duration(cycle * (cfg.BackRatio / total))
	forward := time.Duration(cycle * (cfg.ForwardRatio / total))

	if cfg.Model == SimpleModel {
		return []Step{
			{Phase: PhaseBack, Duration: back},
			{Phase: PhaseForward, Duration: forward},
		}
	}
	return []Step{
		{Phase: PhaseAddress, Duration: AddressDuration},
		{Phase: PhaseTakeBack, Duration: back},
		{Phase: PhaseImpact, Duration: forward},
		{Phase: PhaseInterval, Duration: time.Duration(cfg.IntervalSeconds * float64(time.Second))},
	}
}

// StepDuration returns how long p lasts under cfg, or 0 if p is not part of its cycle.
func StepDuration(cfg TempoConfig, p Phase) time.Duration {
	for _, s := range Schedule(cfg) {
		if s.Phase == p {
			return s.Duration
		}
	}
	return 0
}

func FirstPhase(model PhaseModel) Phase {
	if model == SimpleModel {
		return PhaseBack
	}
	return PhaseAddress
}

// NextPhase returns the successor of p within model's cycle. Phases outside the
// cycle (idle, or a phase of the other model) restart it.
func NextPhase(model PhaseModel, p Phase) Phase {
	if model == SimpleModel {
		if p == PhaseBack {
			return PhaseForward
		}
		return PhaseBack
	}
	switch p {
	case PhaseAddress:
		return PhaseTakeBack
	case PhaseTakeBack:
		return PhaseImpact
	case PhaseImpact:
		return PhaseInterval
	default:
		return PhaseAddress
	}
}
