package statistics

import (
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/prometheus/client_golang/prometheus"
)

const heatSourceSubsystem = "heatsource"

type HeatSourceCollector struct {
	heatSources []*heatsources.HeatSource
	value       *prometheus.Desc
	setPoint    *prometheus.Desc
}

func NewHeatSourceCollector(heatSources []*heatsources.HeatSource) *HeatSourceCollector {
	return &HeatSourceCollector{
		heatSources: heatSources,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, heatSourceSubsystem, "value"),
			"Last temperature reading of the heat source",
			[]string{"name", "source"}, nil,
		),
		setPoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, heatSourceSubsystem, "set_point"),
			"Temperature the heat source should be held at",
			[]string{"name", "source"}, nil,
		),
	}
}

func (collector *HeatSourceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.setPoint
}

// Collect implements required collect function for all prometheus collectors
func (collector *HeatSourceCollector) Collect(ch chan<- prometheus.Metric) {
	for _, heatSource := range collector.heatSources {
		name := heatSource.Name()
		source := heatSource.SourceId()
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, heatSource.CachedReading(), name, source)
		ch <- prometheus.MustNewConstMetric(collector.setPoint, prometheus.GaugeValue, heatSource.SetPoint(), name, source)
	}
}
