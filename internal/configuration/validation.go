package configuration

import (
	"github.com/markusressel/pidfan/internal/util"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateControl(config)
	if err != nil {
		return err
	}
	err = validateHeatSources(config)
	if err != nil {
		return err
	}
	err = validateFan(config)
	if err != nil {
		return err
	}

	if len(path) > 0 && containsCmdConfigs(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return newConfigError("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdConfigs(config *Configuration) bool {
	for _, heatSourceConfig := range config.HeatSources {
		if heatSourceConfig.Cmd != nil {
			return true
		}
	}
	return config.Fan.Cmd != nil
}

func validateControl(config *Configuration) error {
	if config.SampleInterval <= 0 {
		return newConfigError("sampleInterval must be > 0, was: %s", config.SampleInterval)
	}
	if config.CommandTimeout < 0 {
		return newConfigError("commandTimeout must be >= 0, was: %s", config.CommandTimeout)
	}

	pid := config.Pid
	if pid.OutputMin < 0 || pid.OutputMax < 0 {
		return newConfigError("pid: output bounds must be >= 0")
	}
	if pid.OutputMin > pid.OutputMax {
		return newConfigError("pid: outputMin (%v) must be <= outputMax (%v)", pid.OutputMin, pid.OutputMax)
	}
	if pid.OutputMax > 100 {
		return newConfigError("pid: outputMax (%v) must be <= 100, the output is a duty percentage", pid.OutputMax)
	}

	if config.FailSafeDuty < 0 || config.FailSafeDuty > 100 {
		return newConfigError("failSafeDuty must be in [0, 100], was: %d", config.FailSafeDuty)
	}

	if config.History.Enabled && config.History.MaxEntries <= 0 {
		return newConfigError("history: maxEntries must be > 0")
	}

	return nil
}

func validateHeatSources(config *Configuration) error {
	if len(config.HeatSources) <= 0 {
		return newConfigError("no heat sources configured")
	}

	for idx, heatSourceConfig := range config.HeatSources {
		if len(heatSourceConfig.Name) <= 0 {
			return newConfigError("heat source #%d: missing name", idx+1)
		}

		subConfigs := 0
		if heatSourceConfig.Cmd != nil {
			subConfigs++
		}
		if heatSourceConfig.File != nil {
			subConfigs++
		}
		if heatSourceConfig.HwMon != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return newConfigError("heat source %s: only one source type can be used per heat source definition block", heatSourceConfig.Name)
		}
		if subConfigs <= 0 {
			return newConfigError("heat source %s: sub-configuration for heat source is missing, use one of: cmd | file | hwmon", heatSourceConfig.Name)
		}

		if heatSourceConfig.Cmd != nil && len(heatSourceConfig.Cmd.Exec) <= 0 {
			return newConfigError("heat source %s: executable is missing", heatSourceConfig.Name)
		}
		if heatSourceConfig.File != nil {
			if len(heatSourceConfig.File.Path) <= 0 {
				return newConfigError("heat source %s: no file path provided", heatSourceConfig.Name)
			}
			if heatSourceConfig.File.Divisor < 0 {
				return newConfigError("heat source %s: divisor must be > 0", heatSourceConfig.Name)
			}
		}
		if heatSourceConfig.HwMon != nil && heatSourceConfig.HwMon.Index <= 0 {
			return newConfigError("heat source %s: invalid index, must be >= 1", heatSourceConfig.Name)
		}
	}

	return nil
}

func validateFan(config *Configuration) error {
	fanConfig := config.Fan

	if fanConfig.MinRpm < 0 {
		return newConfigError("fan %s: minRpm must be >= 0", fanConfig.ID)
	}
	if fanConfig.MinRpm > fanConfig.MaxRpm {
		return newConfigError("fan %s: minRpm (%d) must be <= maxRpm (%d)", fanConfig.ID, fanConfig.MinRpm, fanConfig.MaxRpm)
	}

	subConfigs := 0
	if fanConfig.Cmd != nil {
		subConfigs++
	}
	if fanConfig.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigError("fan %s: only one fan type can be used per fan definition block", fanConfig.ID)
	}
	if subConfigs <= 0 {
		return newConfigError("fan %s: sub-configuration for fan is missing, use one of: cmd | file", fanConfig.ID)
	}

	if fanConfig.File != nil {
		if len(fanConfig.File.Path) <= 0 {
			return newConfigError("fan %s: no file path provided", fanConfig.ID)
		}
		if fanConfig.File.MaxValue < 0 {
			return newConfigError("fan %s: maxValue must be > 0", fanConfig.ID)
		}
	}

	if fanConfig.Cmd != nil {
		cmdConfig := fanConfig.Cmd
		if cmdConfig.SetDuty == nil {
			return newConfigError("fan %s: missing setDuty configuration", fanConfig.ID)
		}
		if len(cmdConfig.SetDuty.Exec) <= 0 {
			return newConfigError("fan %s: setDuty executable is missing", fanConfig.ID)
		}

		if cmdConfig.GetDuty == nil {
			return newConfigError("fan %s: missing getDuty configuration", fanConfig.ID)
		}
		if len(cmdConfig.GetDuty.Exec) <= 0 {
			return newConfigError("fan %s: getDuty executable is missing", fanConfig.ID)
		}
	}

	return nil
}
