package fans

import (
	"context"
	"math"

	"github.com/markusressel/pidfan/internal/util"
)

// DefaultFileMaxValue is the full scale value of hwmon pwm files
const DefaultFileMaxValue = 255

// FileActuator drives a fan through a sysfs-style pwm file,
// scaling percentages to [0..MaxValue].
type FileActuator struct {
	Path     string `json:"path"`
	MaxValue int    `json:"maxValue"`
}

func (a *FileActuator) GetId() string {
	return "file:" + a.Path
}

func (a *FileActuator) GetDuty(_ context.Context) (int, error) {
	filePath, err := util.ExpandPath(a.Path)
	if err != nil {
		return 0, err
	}

	raw, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(raw) * MaxDuty / float64(a.MaxValue))), nil
}

func (a *FileActuator) SetDuty(_ context.Context, percent int) error {
	filePath, err := util.ExpandPath(a.Path)
	if err != nil {
		return err
	}

	raw := int(math.Round(float64(percent) * float64(a.MaxValue) / MaxDuty))
	return util.WriteIntToFile(raw, filePath)
}
