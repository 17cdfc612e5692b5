package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/markusressel/pidfan/internal/control_loop"
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/markusressel/pidfan/internal/util"
	"github.com/qdm12/reprint"
)

// NormalizationFactor scales zone averages into a common range before they are combined
const NormalizationFactor = 100.0

// DutyWindowSize is the number of applied duties kept for statistics
const DutyWindowSize = 60

var ErrNoHeatSources = errors.New("no heat sources")

type FanController interface {
	GetFanId() string

	// Run executes cycles every sample interval until ctx is cancelled (returns nil) or a cycle fails
	Run(ctx context.Context) error
	// Cycle executes a single control cycle
	Cycle(ctx context.Context) (CycleResult, error)
	// FailSafe drives the fan to the fail-safe duty
	FailSafe(ctx context.Context) error

	AddObserver(observer CycleObserver)
	LastResult() (CycleResult, bool)
	Statistics() Statistics
}

// Statistics are counters over the lifetime of a controller
type Statistics struct {
	Cycles        int64         `json:"cycles"`
	FailedCycles  int64         `json:"failedCycles"`
	AvgDuty       float64       `json:"avgDuty"`
	MaxDuty       float64       `json:"maxDuty"`
	CycleDuration time.Duration `json:"cycleDuration"`
}

type pidFanController struct {
	fan            *fans.Fan
	heatSources    []*heatsources.HeatSource
	loop           control_loop.ControlLoop
	sampleInterval time.Duration
	failSafeDuty   int
	logger         ui.Logger

	mu         sync.RWMutex
	observers  []CycleObserver
	lastResult *CycleResult
	stats      Statistics
	dutyWindow *util.RollingWindow
}

func NewFanController(
	fan *fans.Fan,
	heatSources []*heatsources.HeatSource,
	loop control_loop.ControlLoop,
	sampleInterval time.Duration,
	failSafeDuty int,
	logger ui.Logger,
) FanController {
	return &pidFanController{
		fan:            fan,
		heatSources:    heatSources,
		loop:           loop,
		sampleInterval: sampleInterval,
		failSafeDuty:   failSafeDuty,
		logger:         logger,
		dutyWindow:     util.CreateRollingWindow(DutyWindowSize),
	}
}

func (c *pidFanController) Run(ctx context.Context) error {
	c.logger.Info("Starting controller loop for fan '%s' (%d heat sources, interval %v)", c.fan.GetId(), len(c.heatSources), c.sampleInterval)

	for {
		if ctx.Err() != nil {
			return nil
		}

		_, err := c.Cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// the cycle was interrupted by the shutdown
				return nil
			}
			return err
		}

		timer := time.NewTimer(c.sampleInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (c *pidFanController) Cycle(ctx context.Context) (CycleResult, error) {
	start := time.Now()
	result, err := c.cycle(ctx)

	c.mu.Lock()
	c.stats.CycleDuration = time.Since(start)
	if err != nil {
		c.stats.FailedCycles++
		c.mu.Unlock()
		return result, err
	}
	c.stats.Cycles++
	c.dutyWindow.Append(float64(result.Duty))
	c.lastResult = &result
	observers := append([]CycleObserver(nil), c.observers...)
	c.mu.Unlock()

	for _, observer := range observers {
		observer.OnCycle(result)
	}
	return result, nil
}

func (c *pidFanController) cycle(ctx context.Context) (CycleResult, error) {
	result := CycleResult{Time: time.Now()}

	measuredDuty, err := c.fan.CurrentDuty(ctx)
	if err != nil {
		return result, fmt.Errorf("reading current duty: %w", err)
	}
	result.MeasuredDuty = measuredDuty

	zones := heatsources.NewAggregateMap()
	for _, heatSource := range c.heatSources {
		reading, err := heatSource.Read(ctx)
		if err != nil {
			return result, fmt.Errorf("reading heat source %s: %w", heatSource.Name(), err)
		}
		zone := zones.GetOrCreate(heatSource.Name())
		zone.AddReading(reading)
		zone.AddSetPoint(heatSource.SetPoint())
	}

	temperature, setPoint, zoneResults, err := combineZones(zones)
	if err != nil {
		return result, err
	}
	result.Zones = zoneResults
	result.Temperature = temperature
	result.SetPoint = setPoint

	output := c.loop.Loop(temperature, setPoint)
	result.PidOutput = output
	if pidLoop, ok := c.loop.(*control_loop.PidControlLoop); ok {
		result.Terms = pidLoop.Terms()
	}

	duty := int(math.Floor(output))
	result.Duty = duty
	result.TargetRpm = c.fan.DutyToRpm(duty)

	c.logger.Debug("Fan %s: temperature %.2f, set point %.2f, output %.2f, duty %d%% (current %d%%), target %d RPM",
		c.fan.GetId(), temperature, setPoint, output, duty, measuredDuty, result.TargetRpm)

	err = c.fan.ApplyDuty(ctx, duty)
	if err != nil {
		return result, err
	}
	return result, nil
}

// combineZones averages every zone, scales the averages by NormalizationFactor,
// averages them across zones and scales the result back.
func combineZones(zones *heatsources.AggregateMap) (temperature float64, setPoint float64, results []ZoneResult, err error) {
	if zones.Len() <= 0 {
		return 0, 0, nil, ErrNoHeatSources
	}

	var readings []float64
	var setPoints []float64
	for _, zone := range zones.All() {
		avgReading, err := zone.AverageReading()
		if err != nil {
			return 0, 0, nil, fmt.Errorf("zone %s: %w", zone.Name, err)
		}
		avgSetPoint, err := zone.AverageSetPoint()
		if err != nil {
			return 0, 0, nil, fmt.Errorf("zone %s: %w", zone.Name, err)
		}
		results = append(results, ZoneResult{Name: zone.Name, Reading: avgReading, SetPoint: avgSetPoint})
		readings = append(readings, avgReading/NormalizationFactor)
		setPoints = append(setPoints, avgSetPoint/NormalizationFactor)
	}

	temperature = util.Avg(readings) * NormalizationFactor
	setPoint = util.Avg(setPoints) * NormalizationFactor
	return temperature, setPoint, results, nil
}

func (c *pidFanController) FailSafe(ctx context.Context) error {
	c.logger.Warning("Setting fan %s to fail-safe duty of %d%%", c.fan.GetId(), c.failSafeDuty)
	err := c.fan.ApplyDuty(ctx, c.failSafeDuty)
	if err != nil {
		c.logger.Error("Unable to apply fail-safe duty to fan %s, make sure it is running!", c.fan.GetId())
	}
	return err
}

func (c *pidFanController) GetFanId() string {
	return c.fan.GetId()
}

func (c *pidFanController) AddObserver(observer CycleObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

func (c *pidFanController) LastResult() (CycleResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastResult == nil {
		return CycleResult{}, false
	}
	result := *c.lastResult
	if len(result.Zones) > 0 {
		result.Zones = reprint.This(result.Zones).([]ZoneResult)
	}
	return result, true
}

func (c *pidFanController) Statistics() Statistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	if stats.Cycles > 0 {
		stats.AvgDuty = util.GetWindowAvg(c.dutyWindow)
		stats.MaxDuty = util.GetWindowMax(c.dutyWindow)
	}
	return stats
}
