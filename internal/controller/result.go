package controller

import (
	"time"

	"github.com/markusressel/pidfan/internal/control_loop"
)

// ZoneResult is the averaged state of one zone during a cycle
type ZoneResult struct {
	Name     string  `json:"name"`
	Reading  float64 `json:"reading"`
	SetPoint float64 `json:"setPoint"`
}

// CycleResult describes a single, successful control cycle
type CycleResult struct {
	Time time.Time `json:"time"`

	// MeasuredDuty is the duty the fan reported before the cycle
	MeasuredDuty int          `json:"measuredDuty"`
	Zones        []ZoneResult `json:"zones"`

	// Temperature and SetPoint are the combined values fed into the control loop
	Temperature float64 `json:"temperature"`
	SetPoint    float64 `json:"setPoint"`

	PidOutput float64               `json:"pidOutput"`
	Terms     control_loop.PidTerms `json:"terms"`

	Duty      int `json:"duty"`
	TargetRpm int `json:"targetRpm"`
}

// CycleObserver is notified after every successful cycle.
// Observers are called on the control goroutine and must not block.
type CycleObserver interface {
	OnCycle(result CycleResult)
}

type CycleObserverFunc func(result CycleResult)

func (f CycleObserverFunc) OnCycle(result CycleResult) {
	f(result)
}
