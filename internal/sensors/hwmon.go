package sensors

import (
	"context"
	"fmt"
)

// hwmon temp*_input files report millidegree celsius
const hwmonDivisor = 1000.0

// HwmonSource reads the temp input of a chip detected by lm-sensors
type HwmonSource struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`
	Input    string `json:"input"`
}

func (s *HwmonSource) GetId() string {
	return fmt.Sprintf("hwmon:%s/%d", s.Platform, s.Index)
}

func (s *HwmonSource) GetValue(_ context.Context) (float64, error) {
	return readScaled(s.GetId(), s.Input, hwmonDivisor)
}
