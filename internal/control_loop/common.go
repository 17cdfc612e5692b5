package control_loop

import "time"

type ControlLoop interface {
	// Loop advances the control loop with a new measurement and returns the new output
	Loop(measured float64, setPoint float64) float64
}

// Clock is the time source of a control loop
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock uses the monotonic wall clock
var SystemClock Clock = systemClock{}
