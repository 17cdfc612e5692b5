package configuration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		SampleInterval: 1 * time.Second,
		FailSafeDuty:   100,
		Pid: PidConfig{
			P:         1,
			OutputMin: 0,
			OutputMax: 100,
		},
		HeatSources: []HeatSourceConfig{
			{
				Name:     "cpu",
				SetPoint: 60,
				File: &FileSourceConfig{
					Path: "/sys/class/hwmon/hwmon0/temp1_input",
				},
			},
		},
		Fan: FanConfig{
			ID:     "fan",
			MinRpm: 500,
			MaxRpm: 2000,
			File: &FileFanConfig{
				Path:     "/sys/class/hwmon/hwmon0/pwm1",
				MaxValue: 255,
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateErrorsAreConfigErrors(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	var configError *ConfigError
	assert.True(t, errors.As(err, &configError))
	assert.EqualError(t, err, "no heat sources configured")
}

func TestValidateSampleIntervalMustBePositive(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.SampleInterval = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sampleInterval must be > 0, was: 0s")
}

func TestValidateNegativeCommandTimeout(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.CommandTimeout = -1 * time.Second

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "commandTimeout must be >= 0, was: -1s")
}

func TestValidatePidOutputBounds(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.OutputMin = 80
	config.Pid.OutputMax = 20

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pid: outputMin (80) must be <= outputMax (20)")
}

func TestValidatePidNegativeBounds(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.OutputMin = -10

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pid: output bounds must be >= 0")
}

func TestValidatePidOutputMaxAboveHundred(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.OutputMax = 255

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pid: outputMax (255) must be <= 100, the output is a duty percentage")
}

func TestValidatePidAllConstantsZeroIsAllowed(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Pid.P = 0
	config.Pid.I = 0
	config.Pid.D = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateFailSafeDuty(t *testing.T) {
	for _, duty := range []int{-1, 101} {
		// GIVEN
		config := createValidConfig()
		config.FailSafeDuty = duty

		// WHEN
		err := validateConfig(&config, "")

		// THEN
		assert.Error(t, err)
	}
}

func TestValidateHistoryMaxEntries(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.History.Enabled = true
	config.History.MaxEntries = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "history: maxEntries must be > 0")
}

func TestValidateHeatSourceMissingName(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources[0].Name = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "heat source #1: missing name")
}

func TestValidateHeatSourceSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources[0].File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "heat source cpu: sub-configuration for heat source is missing, use one of: cmd | file | hwmon")
}

func TestValidateHeatSourceMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources[0].Cmd = &CmdSourceConfig{Exec: "/usr/bin/echo"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "heat source cpu: only one source type can be used per heat source definition block")
}

func TestValidateHeatSourceCmdWithoutExec(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources[0].File = nil
	config.HeatSources[0].Cmd = &CmdSourceConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "heat source cpu: executable is missing")
}

func TestValidateHeatSourceHwMonIndex(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources[0].File = nil
	config.HeatSources[0].HwMon = &HwMonSourceConfig{Platform: "nct", Index: 0}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "heat source cpu: invalid index, must be >= 1")
}

func TestValidateZonesMayShareAName(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.HeatSources = append(config.HeatSources, HeatSourceConfig{
		Name:     "cpu",
		SetPoint: 65,
		File:     &FileSourceConfig{Path: "/sys/class/hwmon/hwmon0/temp2_input"},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateFanMinRpmAboveMaxRpm(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.MinRpm = 3000

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: minRpm (3000) must be <= maxRpm (2000)")
}

func TestValidateFanNegativeMinRpm(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.MinRpm = -1

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: minRpm must be >= 0")
}

func TestValidateFanSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: sub-configuration for fan is missing, use one of: cmd | file")
}

func TestValidateFanMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.Cmd = &CmdFanConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: only one fan type can be used per fan definition block")
}

func TestValidateFanCmdMissingSetDuty(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.File = nil
	config.Fan.Cmd = &CmdFanConfig{
		GetDuty: &ExecConfig{Exec: "/usr/bin/echo"},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: missing setDuty configuration")
}

func TestValidateFanCmdMissingGetDutyExec(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.File = nil
	config.Fan.Cmd = &CmdFanConfig{
		GetDuty: &ExecConfig{},
		SetDuty: &ExecConfig{Exec: "/usr/bin/echo"},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: getDuty executable is missing")
}

func TestValidateFanFileWithoutPath(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.File.Path = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: no file path provided")
}
