package util

import (
	"sync"

	"github.com/asecurityteam/rolling"
)

// RollingWindow keeps the most recent values appended to it
type RollingWindow struct {
	mu     sync.Mutex
	policy *rolling.PointPolicy
	size   int
	count  int
}

func CreateRollingWindow(size int) *RollingWindow {
	return &RollingWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
		size:   size,
	}
}

func (w *RollingWindow) Append(value float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.policy.Append(value)
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of values currently held
func (w *RollingWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Values returns the held values in bucket order
func (w *RollingWindow) Values() []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := w.count
	var values []float64
	w.policy.Reduce(func(window rolling.Window) float64 {
		// buckets are filled from index 0 onwards, unfilled ones hold no values
		for i := 0; i < n && i < len(window); i++ {
			values = append(values, window[i]...)
		}
		return 0
	})
	return values
}

// GetWindowAvg returns the average of all values in the given window, 0 if it is empty
func GetWindowAvg(window *RollingWindow) float64 {
	values := window.Values()
	if len(values) <= 0 {
		return 0
	}
	return Avg(values)
}

// GetWindowMax returns the largest value in the given window, 0 if it is empty
func GetWindowMax(window *RollingWindow) float64 {
	return Max(window.Values())
}
