package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(3)
	window.Append(2)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestGetWindowMax_NegativeValues(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(10)
	window.Append(-5)
	window.Append(-2)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, -2.0, maximum)
}

func TestGetWindowMax_Empty(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 0.0, maximum)
}

func TestGetWindowAvg_PartiallyFilled(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(60)
	window.Append(10)
	window.Append(30)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 20.0, avg)
	assert.Equal(t, 2, window.Len())
}

func TestGetWindowAvg_DropsOldValues(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(100)
	window.Append(10)
	window.Append(20)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 15.0, avg)
	assert.Equal(t, 2, window.Len())
}

func TestGetWindowAvg_Empty(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(5)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 0.0, avg)
}
