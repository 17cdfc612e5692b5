package control_loop

import (
	"math"
	"sync"
	"time"

	"github.com/markusressel/pidfan/internal/util"
)

// InitialTimeDelta is used as the time delta (in seconds) of the very first loop,
// and whenever the clock did not advance between two loops.
const InitialTimeDelta = 1e-16

// PidTerms are the intermediate values of the last Loop call
type PidTerms struct {
	Error        float64 `json:"error"`
	Proportional float64 `json:"proportional"`
	Integral     float64 `json:"integral"`
	Derivative   float64 `json:"derivative"`
	Output       float64 `json:"output"`
	TimeDelta    float64 `json:"timeDelta"`
}

// PidControlLoop is a PID controller with a clamped integral (anti-windup) and clamped output.
// The error is defined as measured - setPoint, so a positive output means "more cooling".
type PidControlLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// Minimum output value
	outMin float64
	// Maximum output value
	outMax float64

	clock Clock

	mu sync.RWMutex
	// integral term from the previous loop, always within [outMin, outMax]
	integral float64
	// error of the previous loop
	previousError float64
	// last execution time of the loop, zero before the first loop
	lastTime time.Time
	terms    PidTerms
}

// NewPidControlLoop creates a PidControlLoop, requiring 0 <= outMin <= outMax.
func NewPidControlLoop(p, i, d, outMin, outMax float64) (*PidControlLoop, error) {
	return NewPidControlLoopWithClock(p, i, d, outMin, outMax, SystemClock)
}

// NewPidControlLoopWithClock creates a PidControlLoop measuring time deltas with the given clock.
func NewPidControlLoopWithClock(p, i, d, outMin, outMax float64, clock Clock) (*PidControlLoop, error) {
	if outMin < 0 {
		return nil, util.NewInvariantViolation("pid: outputMin must be >= 0, was: %v", outMin)
	}
	if outMax < outMin {
		return nil, util.NewInvariantViolation("pid: outputMin (%v) must be <= outputMax (%v)", outMin, outMax)
	}

	return &PidControlLoop{
		p:      p,
		i:      i,
		d:      d,
		outMin: outMin,
		outMax: outMax,
		clock:  clock,
	}, nil
}

// Loop advances the pid loop.
// Non-finite inputs leave the state untouched and return the previous output.
func (l *PidControlLoop) Loop(measured float64, setPoint float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !isFinite(measured) || !isFinite(setPoint) {
		return util.Clamp(l.terms.Output, l.outMin, l.outMax)
	}

	now := l.clock.Now()
	initialized := !l.lastTime.IsZero()

	dt := InitialTimeDelta
	if initialized {
		dt = now.Sub(l.lastTime).Seconds()
		if dt <= 0 {
			dt = InitialTimeDelta
		}
	}

	err := measured - setPoint

	proportional := l.p * err

	integral := util.Clamp(l.integral+l.i*err*dt, l.outMin, l.outMax)

	errorDelta := 0.0
	if initialized {
		errorDelta = err - l.previousError
	}
	derivative := l.d * errorDelta / dt

	output := proportional + integral + derivative
	if math.IsNaN(output) {
		// +Inf and -Inf terms cancelled out
		output = integral
	}
	output = util.Clamp(output, l.outMin, l.outMax)

	l.lastTime = now
	l.previousError = err
	l.integral = integral
	l.terms = PidTerms{
		Error:        err,
		Proportional: proportional,
		Integral:     integral,
		Derivative:   derivative,
		Output:       output,
		TimeDelta:    dt,
	}

	return output
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Terms returns the intermediate values of the last loop
func (l *PidControlLoop) Terms() PidTerms {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.terms
}

// Integral returns the current (clamped) integral term
func (l *PidControlLoop) Integral() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.integral
}
