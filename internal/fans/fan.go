package fans

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/markusressel/pidfan/internal/util"
)

// Fan is a single fan, driven by its actuator, with a known rpm range
type Fan struct {
	id       string
	minRpm   int
	maxRpm   int
	actuator ActuatorControl
	logger   ui.Logger

	mu          sync.RWMutex
	lastApplied int
	lastRead    int
}

// NewFan creates a fan, requiring 0 <= minRpm <= maxRpm
func NewFan(id string, minRpm int, maxRpm int, actuator ActuatorControl, logger ui.Logger) (*Fan, error) {
	if minRpm < 0 || maxRpm < 0 {
		return nil, util.NewInvariantViolation("fan %s: rpm values must be >= 0, got min %d, max %d", id, minRpm, maxRpm)
	}
	if maxRpm < minRpm {
		return nil, util.NewInvariantViolation("fan %s: maxRpm (%d) must be >= minRpm (%d)", id, maxRpm, minRpm)
	}

	return &Fan{
		id:          id,
		minRpm:      minRpm,
		maxRpm:      maxRpm,
		actuator:    actuator,
		logger:      logger,
		lastApplied: -1,
		lastRead:    -1,
	}, nil
}

// NewFanFromConfig creates the fan and its actuator described by config
func NewFanFromConfig(config configuration.FanConfig, commandTimeout time.Duration, logger ui.Logger) (*Fan, error) {
	actuator, err := NewActuator(config, commandTimeout)
	if err != nil {
		return nil, err
	}
	return NewFan(config.ID, config.MinRpm, config.MaxRpm, actuator, logger)
}

func (f *Fan) GetId() string {
	return f.id
}

func (f *Fan) MinRpm() int {
	return f.minRpm
}

func (f *Fan) MaxRpm() int {
	return f.maxRpm
}

// DutyToRpm linearly maps a duty percentage onto the rpm range of this fan.
// The percentage is not clamped, values outside [0..100] yield values outside the rpm range.
func (f *Fan) DutyToRpm(percent int) int {
	rpmRange := float64(f.maxRpm - f.minRpm)
	return int(math.Floor(float64(f.minRpm) + rpmRange*float64(percent)/100))
}

// CurrentDuty asks the actuator for the duty it currently drives the fan with
func (f *Fan) CurrentDuty(ctx context.Context) (int, error) {
	duty, err := f.actuator.GetDuty(ctx)
	if err != nil {
		return 0, &ActuatorError{Fan: f.id, Op: OpGetDuty, Err: err}
	}

	f.mu.Lock()
	f.lastRead = duty
	f.mu.Unlock()

	f.logger.Debug("Fan %s duty: %d%% (%d RPM)", f.id, duty, f.DutyToRpm(duty))
	return duty, nil
}

// ApplyDuty sets the fan to the given duty percentage.
// This is not transactional: on failure the hardware may still run at the previous duty.
func (f *Fan) ApplyDuty(ctx context.Context, percent int) error {
	if percent < MinDuty || percent > MaxDuty {
		return &ActuatorError{Fan: f.id, Op: OpSetDuty, Err: fmt.Errorf("duty %d%% out of range [%d..%d]", percent, MinDuty, MaxDuty)}
	}

	f.logger.Debug("Setting fan %s duty: %d%% (0x%02x)", f.id, percent, percent)
	err := f.actuator.SetDuty(ctx, percent)
	if err != nil {
		return &ActuatorError{Fan: f.id, Op: OpSetDuty, Err: err}
	}

	f.mu.Lock()
	f.lastApplied = percent
	f.mu.Unlock()
	return nil
}

// LastAppliedDuty returns the last successfully applied duty, -1 if none was applied yet
func (f *Fan) LastAppliedDuty() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastApplied
}

// LastReadDuty returns the duty reported by the last successful CurrentDuty call, -1 if none
func (f *Fan) LastReadDuty() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastRead
}
