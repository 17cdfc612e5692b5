package heatsources

import (
	"errors"

	"github.com/markusressel/pidfan/internal/util"
)

var ErrEmptyAggregate = errors.New("aggregate contains no values")

// Aggregate collects the readings and set points of all probes of one zone
// during a single control cycle.
type Aggregate struct {
	Name      string
	readings  []float64
	setPoints []float64
}

func NewAggregate(name string) *Aggregate {
	return &Aggregate{Name: name}
}

func (a *Aggregate) AddReading(value float64) {
	a.readings = append(a.readings, value)
}

func (a *Aggregate) AddSetPoint(value float64) {
	a.setPoints = append(a.setPoints, value)
}

func (a *Aggregate) Readings() []float64 {
	return append([]float64(nil), a.readings...)
}

func (a *Aggregate) SetPoints() []float64 {
	return append([]float64(nil), a.setPoints...)
}

func (a *Aggregate) MinReading() (float64, error) {
	return statistic(a.readings, util.Min[float64])
}

func (a *Aggregate) MaxReading() (float64, error) {
	return statistic(a.readings, util.Max[float64])
}

func (a *Aggregate) AverageReading() (float64, error) {
	return statistic(a.readings, util.Avg)
}

func (a *Aggregate) MinSetPoint() (float64, error) {
	return statistic(a.setPoints, util.Min[float64])
}

func (a *Aggregate) MaxSetPoint() (float64, error) {
	return statistic(a.setPoints, util.Max[float64])
}

func (a *Aggregate) AverageSetPoint() (float64, error) {
	return statistic(a.setPoints, util.Avg)
}

func statistic(values []float64, f func([]float64) float64) (float64, error) {
	if len(values) <= 0 {
		return 0, ErrEmptyAggregate
	}
	return f(values), nil
}

// AggregateMap keeps one Aggregate per zone name, in the order the zones were first seen
type AggregateMap struct {
	order []string
	zones map[string]*Aggregate
}

func NewAggregateMap() *AggregateMap {
	return &AggregateMap{
		zones: map[string]*Aggregate{},
	}
}

// GetOrCreate returns the aggregate of the given zone, creating it if necessary
func (m *AggregateMap) GetOrCreate(name string) *Aggregate {
	aggregate, exists := m.zones[name]
	if !exists {
		aggregate = NewAggregate(name)
		m.zones[name] = aggregate
		m.order = append(m.order, name)
	}
	return aggregate
}

// All returns the aggregates in first-seen order
func (m *AggregateMap) All() []*Aggregate {
	result := make([]*Aggregate, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, m.zones[name])
	}
	return result
}

func (m *AggregateMap) Len() int {
	return len(m.order)
}
