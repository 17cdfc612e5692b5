package fans

import "fmt"

const (
	OpGetDuty = "get duty"
	OpSetDuty = "set duty"
)

// ActuatorError is returned whenever the duty of a fan could not be read, parsed or applied
type ActuatorError struct {
	Fan string
	Op  string
	Err error
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("fan %s: %s: %v", e.Fan, e.Op, e.Err)
}

func (e *ActuatorError) Unwrap() error {
	return e.Err
}
