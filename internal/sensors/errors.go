package sensors

import "fmt"

// SensorError is returned whenever a temperature could not be read or parsed
type SensorError struct {
	Source string
	Err    error
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("sensor %s: %v", e.Source, e.Err)
}

func (e *SensorError) Unwrap() error {
	return e.Err
}
