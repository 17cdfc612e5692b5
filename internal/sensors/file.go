package sensors

import (
	"context"
	"fmt"
	"math"

	"github.com/markusressel/pidfan/internal/util"
)

// FileSource reads a temperature from a sysfs-style file
type FileSource struct {
	Path string `json:"path"`
	// Divisor scales the raw value, values <= 0 are treated as 1
	Divisor float64 `json:"divisor"`
}

func (s *FileSource) GetId() string {
	return "file:" + s.Path
}

func (s *FileSource) GetValue(_ context.Context) (float64, error) {
	return readScaled(s.GetId(), s.Path, s.Divisor)
}

func readScaled(id string, path string, divisor float64) (float64, error) {
	filePath, err := util.ExpandPath(path)
	if err != nil {
		return 0, &SensorError{Source: id, Err: err}
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, &SensorError{Source: id, Err: err}
	}

	if divisor > 0 {
		value = value / divisor
	}
	if math.IsInf(value, 0) {
		return 0, &SensorError{Source: id, Err: fmt.Errorf("scaled value of %s is out of range", path)}
	}
	return value, nil
}
