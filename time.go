package ecs

import (
	"time"
)

// DefaultStepInterval is 1/64s, the same as bevy.
const DefaultStepInterval = time.Second / 64

// FixedStep accumulates real time and turns it into a number of fixed size steps.
//
// Use it to drive Engine.Update with a constant delta, independent of the
// frame rate of the host loop:
//
//	step.Advance(frameDelta, engine.Update)
type FixedStep struct {
	Elapsed time.Duration

	StepInterval time.Duration

	// MaxSteps limits the number of steps run by a single call to Advance.
	// Time exceeding the limit is dropped. Zero means no limit.
	MaxSteps int

	overstep time.Duration
}

func NewFixedStep(interval time.Duration) *FixedStep {
	if interval <= 0 {
		interval = DefaultStepInterval
	}

	return &FixedStep{StepInterval: interval}
}

// Advance adds delta to the accumulated time and calls step for every full step
// interval that fits into it. It returns the number of steps run.
// A StepInterval of zero or less is replaced by DefaultStepInterval.
func (f *FixedStep) Advance(delta time.Duration, step func(dt time.Duration)) int {
	if f.StepInterval <= 0 {
		f.StepInterval = DefaultStepInterval
	}

	f.overstep += delta

	var steps int
	for f.overstep >= f.StepInterval {
		if f.MaxSteps > 0 && steps >= f.MaxSteps {
			// we are falling behind, skip the remaining time
			f.overstep = 0
			break
		}

		f.overstep -= f.StepInterval
		f.Elapsed += f.StepInterval

		step(f.StepInterval)
		steps += 1
	}

	return steps
}

// Overstep returns the accumulated time that did not yet fill a full step.
func (f *FixedStep) Overstep() time.Duration {
	return f.overstep
}
