package testingutils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var ErrHardware = errors.New("hardware not responding")

// FakeTemperatureSource returns the configured values one after another,
// repeating the last one once all are used up.
type FakeTemperatureSource struct {
	Id     string
	Values []float64
	Err    error

	Calls int
}

func NewFakeTemperatureSource(id string, values ...float64) *FakeTemperatureSource {
	return &FakeTemperatureSource{Id: id, Values: values}
}

func (s *FakeTemperatureSource) GetId() string {
	return s.Id
}

func (s *FakeTemperatureSource) GetValue(_ context.Context) (float64, error) {
	s.Calls++
	if s.Err != nil {
		return 0, s.Err
	}
	if len(s.Values) <= 0 {
		return 0, nil
	}
	idx := s.Calls - 1
	if idx >= len(s.Values) {
		idx = len(s.Values) - 1
	}
	return s.Values[idx], nil
}

// FakeActuator remembers every duty it was asked to apply
type FakeActuator struct {
	mu sync.Mutex

	Duty    int
	History []int

	GetErr error
	SetErr error
}

func (a *FakeActuator) GetId() string {
	return "fake"
}

func (a *FakeActuator) GetDuty(_ context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.GetErr != nil {
		return 0, a.GetErr
	}
	return a.Duty, nil
}

func (a *FakeActuator) SetDuty(_ context.Context, percent int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SetErr != nil {
		return a.SetErr
	}
	a.Duty = percent
	a.History = append(a.History, percent)
	return nil
}

func (a *FakeActuator) Applied() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.History...)
}

// RecordingLogger keeps all formatted messages, prefixed with their level
type RecordingLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *RecordingLogger) record(level string, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, a...))
}

func (l *RecordingLogger) Debug(format string, a ...interface{})   { l.record("DEBUG", format, a...) }
func (l *RecordingLogger) Info(format string, a ...interface{})    { l.record("INFO", format, a...) }
func (l *RecordingLogger) Warning(format string, a ...interface{}) { l.record("WARNING", format, a...) }
func (l *RecordingLogger) Error(format string, a ...interface{})   { l.record("ERROR", format, a...) }

// Contains reports whether any recorded message contains the given text
func (l *RecordingLogger) Contains(text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if strings.Contains(m, text) {
			return true
		}
	}
	return false
}

// FakeClock only advances when told to
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
