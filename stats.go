package ecs

import (
	"time"
)

type Timings struct {
	Count         int
	Latest        time.Duration
	MovingAverage time.Duration
	Min, Max      time.Duration
}

func (t Timings) Add(d time.Duration) Timings {
	t.Latest = d

	if t.Count == 0 {
		t.Min = d
		t.Max = d
		t.MovingAverage = d
	} else {
		t.Min = min(t.Min, d)
		t.Max = max(t.Max, d)
		t.MovingAverage = (95*t.MovingAverage + 5*d) / 100
	}

	t.Count += 1

	return t
}

// TimingStats collects the time spent in each system and in the frames of an Engine.
type TimingStats struct {
	Frames Timings

	BySystem    map[System]Timings
	SystemOrder []System
}

func NewTimingStats() *TimingStats {
	return &TimingStats{
		BySystem: map[System]Timings{},
	}
}

func (t *TimingStats) MeasureFrame() TimingStopwatch {
	startTime := time.Now()

	return TimingStopwatch{
		Stop: func() {
			t.Frames = t.Frames.Add(time.Since(startTime))
		},
	}
}

func (t *TimingStats) MeasureSystem(system System) TimingStopwatch {
	startTime := time.Now()

	if _, ok := t.BySystem[system]; !ok {
		t.SystemOrder = append(t.SystemOrder, system)
	}

	return TimingStopwatch{
		Stop: func() {
			duration := time.Since(startTime)
			t.BySystem[system] = t.BySystem[system].Add(duration)
		},
	}
}

type TimingStopwatch struct {
	Stop func()
}
