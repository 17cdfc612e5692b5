package statistics

import (
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	fan      *fans.Fan
	duty     *prometheus.Desc
	readDuty *prometheus.Desc
	rpm      *prometheus.Desc
}

func NewFanCollector(fan *fans.Fan) *FanCollector {
	return &FanCollector{
		fan: fan,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "duty"),
			"Last duty percentage applied to the fan",
			[]string{"id"}, nil,
		),
		readDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "reported_duty"),
			"Duty percentage last reported by the fan",
			[]string{"id"}, nil,
		),
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "target_rpm"),
			"RPM expected at the last applied duty",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
	ch <- collector.readDuty
	ch <- collector.rpm
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	fan := collector.fan
	fanId := fan.GetId()

	duty := fan.LastAppliedDuty()
	if duty >= 0 {
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(duty), fanId)
		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(fan.DutyToRpm(duty)), fanId)
	}
	if readDuty := fan.LastReadDuty(); readDuty >= 0 {
		ch <- prometheus.MustNewConstMetric(collector.readDuty, prometheus.GaugeValue, float64(readDuty), fanId)
	}
}
