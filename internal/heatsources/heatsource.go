package heatsources

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/sensors"
	"github.com/markusressel/pidfan/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	// HeatSourceMap holds all configured heat sources by name, for read-only observers
	HeatSourceMap = cmap.New[[]*HeatSource]()
)

// HeatSource is a single temperature probe and the temperature it should be held at
type HeatSource struct {
	name     string
	setPoint float64
	source   sensors.TemperatureSource
	logger   ui.Logger

	mu          sync.RWMutex
	lastReading float64
}

func NewHeatSource(name string, setPoint float64, source sensors.TemperatureSource, logger ui.Logger) *HeatSource {
	return &HeatSource{
		name:     name,
		setPoint: setPoint,
		source:   source,
		logger:   logger,
	}
}

// NewHeatSourceFromConfig creates the heat source and its temperature source described by config
func NewHeatSourceFromConfig(config configuration.HeatSourceConfig, commandTimeout time.Duration, logger ui.Logger) (*HeatSource, error) {
	source, err := sensors.NewTemperatureSource(config, commandTimeout)
	if err != nil {
		return nil, err
	}
	return NewHeatSource(config.Name, config.SetPoint, source, logger), nil
}

func (h *HeatSource) Name() string {
	return h.name
}

func (h *HeatSource) SetPoint() float64 {
	return h.setPoint
}

func (h *HeatSource) SourceId() string {
	return h.source.GetId()
}

// Read fetches a fresh value from the underlying temperature source
// and remembers it as the last reading. Failures are returned unmodified.
func (h *HeatSource) Read(ctx context.Context) (float64, error) {
	h.logger.Debug("Reading heat source %s (%s)", h.name, h.source.GetId())
	value, err := h.source.GetValue(ctx)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	h.lastReading = value
	h.mu.Unlock()

	return value, nil
}

// CachedReading returns the value of the last successful Read without touching hardware
func (h *HeatSource) CachedReading() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastReading
}

// Register adds the given heat sources to HeatSourceMap, grouped by name
func Register(list []*HeatSource) {
	for _, h := range list {
		HeatSourceMap.Upsert(h.Name(), []*HeatSource{h}, func(exist bool, valueInMap []*HeatSource, newValue []*HeatSource) []*HeatSource {
			if !exist {
				return newValue
			}
			return append(valueInMap, newValue...)
		})
	}
}
