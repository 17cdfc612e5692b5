package statistics

import (
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controller controller.FanController

	cycleCount       *prometheus.Desc
	failedCycleCount *prometheus.Desc
	avgDuty          *prometheus.Desc
	cycleDuration    *prometheus.Desc
	temperature      *prometheus.Desc
	setPoint         *prometheus.Desc
	pidTerm          *prometheus.Desc
}

func NewControllerCollector(controller controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		cycleCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycle_count"),
			"Number of successful control cycles",
			[]string{"id"}, nil,
		),
		failedCycleCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "failed_cycle_count"),
			"Number of failed control cycles",
			[]string{"id"}, nil,
		),
		avgDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "avg_duty"),
			"Average duty over the most recent cycles",
			[]string{"id"}, nil,
		),
		cycleDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycle_duration_seconds"),
			"Duration of the last control cycle",
			[]string{"id"}, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature"),
			"Combined temperature of all zones fed into the control loop",
			[]string{"id"}, nil,
		),
		setPoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "set_point"),
			"Combined set point of all zones fed into the control loop",
			[]string{"id"}, nil,
		),
		pidTerm: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "pid_term"),
			"Terms of the last PID computation",
			[]string{"id", "term"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycleCount
	ch <- collector.failedCycleCount
	ch <- collector.avgDuty
	ch <- collector.cycleDuration
	ch <- collector.temperature
	ch <- collector.setPoint
	ch <- collector.pidTerm
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	contr := collector.controller
	fanId := contr.GetFanId()
	stats := contr.Statistics()

	ch <- prometheus.MustNewConstMetric(collector.cycleCount, prometheus.CounterValue, float64(stats.Cycles), fanId)
	ch <- prometheus.MustNewConstMetric(collector.failedCycleCount, prometheus.CounterValue, float64(stats.FailedCycles), fanId)
	ch <- prometheus.MustNewConstMetric(collector.avgDuty, prometheus.GaugeValue, stats.AvgDuty, fanId)
	ch <- prometheus.MustNewConstMetric(collector.cycleDuration, prometheus.GaugeValue, stats.CycleDuration.Seconds(), fanId)

	result, ok := contr.LastResult()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, result.Temperature, fanId)
	ch <- prometheus.MustNewConstMetric(collector.setPoint, prometheus.GaugeValue, result.SetPoint, fanId)

	terms := map[string]float64{
		"error":        result.Terms.Error,
		"proportional": result.Terms.Proportional,
		"integral":     result.Terms.Integral,
		"derivative":   result.Terms.Derivative,
		"output":       result.PidOutput,
	}
	for term, value := range terms {
		ch <- prometheus.MustNewConstMetric(collector.pidTerm, prometheus.GaugeValue, value, fanId, term)
	}
}
