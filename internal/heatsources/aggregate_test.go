package heatsources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_Statistics(t *testing.T) {
	// GIVEN
	aggregate := NewAggregate("zone")
	for _, r := range []float64{70, 80, 90} {
		aggregate.AddReading(r)
		aggregate.AddSetPoint(75)
	}

	// WHEN
	avgReading, err1 := aggregate.AverageReading()
	maxReading, err2 := aggregate.MaxReading()
	minReading, err3 := aggregate.MinReading()
	avgSetPoint, err4 := aggregate.AverageSetPoint()

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.NoError(t, err4)
	assert.Equal(t, 80.0, avgReading)
	assert.Equal(t, 90.0, maxReading)
	assert.Equal(t, 70.0, minReading)
	assert.Equal(t, 75.0, avgSetPoint)
}

func TestAggregate_SingleProbe(t *testing.T) {
	// GIVEN
	aggregate := NewAggregate("zone")
	aggregate.AddReading(42.5)
	aggregate.AddSetPoint(50)

	// THEN
	avg, _ := aggregate.AverageReading()
	assert.Equal(t, 42.5, avg)
	minSetPoint, _ := aggregate.MinSetPoint()
	maxSetPoint, _ := aggregate.MaxSetPoint()
	assert.Equal(t, 50.0, minSetPoint)
	assert.Equal(t, 50.0, maxSetPoint)
}

func TestAggregate_EmptyIsAnError(t *testing.T) {
	// GIVEN
	aggregate := NewAggregate("zone")

	// WHEN
	statistics := []func() (float64, error){
		aggregate.MinReading,
		aggregate.MaxReading,
		aggregate.AverageReading,
		aggregate.MinSetPoint,
		aggregate.MaxSetPoint,
		aggregate.AverageSetPoint,
	}

	// THEN
	for _, f := range statistics {
		_, err := f()
		assert.ErrorIs(t, err, ErrEmptyAggregate)
	}
}

func TestAggregate_SetPointsWithoutReadings(t *testing.T) {
	// GIVEN
	aggregate := NewAggregate("zone")
	aggregate.AddSetPoint(60)

	// WHEN
	_, readingErr := aggregate.AverageReading()
	setPoint, setPointErr := aggregate.AverageSetPoint()

	// THEN
	assert.ErrorIs(t, readingErr, ErrEmptyAggregate)
	assert.NoError(t, setPointErr)
	assert.Equal(t, 60.0, setPoint)
}

func TestAggregate_ReadingsAreCopied(t *testing.T) {
	// GIVEN
	aggregate := NewAggregate("zone")
	aggregate.AddReading(1)

	// WHEN
	readings := aggregate.Readings()
	readings[0] = 100

	// THEN
	assert.Equal(t, []float64{1}, aggregate.Readings())
}

func TestAggregateMap_KeepsFirstSeenOrder(t *testing.T) {
	// GIVEN
	aggregates := NewAggregateMap()

	// WHEN
	aggregates.GetOrCreate("disk").AddReading(40)
	aggregates.GetOrCreate("cpu").AddReading(60)
	aggregates.GetOrCreate("disk").AddReading(44)

	// THEN
	all := aggregates.All()
	assert.Equal(t, 2, aggregates.Len())
	assert.Equal(t, "disk", all[0].Name)
	assert.Equal(t, "cpu", all[1].Name)
	assert.Equal(t, []float64{40, 44}, all[0].Readings())
}
