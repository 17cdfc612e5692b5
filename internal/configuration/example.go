package configuration

import (
	"bytes"
	"time"

	"gopkg.in/yaml.v3"
)

// ExampleConfig returns a complete configuration showing every source and actuator type
func ExampleConfig() Configuration {
	return Configuration{
		DbPath:         "/etc/pidfan/pidfan.db",
		SampleInterval: 5 * time.Second,
		CommandTimeout: 0,
		FailSafeDuty:   100,
		Pid: PidConfig{
			P:         5.0,
			I:         0.1,
			D:         0.5,
			OutputMin: 0,
			OutputMax: 100,
		},
		HeatSources: []HeatSourceConfig{
			{
				Name:     "cpu",
				SetPoint: 60,
				Cmd: &CmdSourceConfig{
					Exec: "/usr/local/bin/cpu-temp",
					Args: []string{},
				},
			},
			{
				Name:     "disk",
				SetPoint: 40,
				File: &FileSourceConfig{
					Path:    "/sys/class/hwmon/hwmon2/temp1_input",
					Divisor: 1000,
				},
			},
			{
				Name:     "board",
				SetPoint: 50,
				HwMon: &HwMonSourceConfig{
					Platform: "nct6798",
					Index:    1,
				},
			},
		},
		Fan: FanConfig{
			ID:     "case",
			MinRpm: 500,
			MaxRpm: 2000,
			Cmd: &CmdFanConfig{
				GetDuty: &ExecConfig{
					Exec: "/usr/local/bin/fan-duty",
				},
				SetDuty: &ExecConfig{
					Exec: "/usr/bin/ipmitool",
					Args: []string{"raw", "0x30", "0x70", "0x66", "0x01", "0x00", "%duty_hex%"},
				},
			},
		},
		Statistics: StatisticsConfig{
			Enabled: false,
			Port:    9000,
		},
		Api: ApiConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    9001,
		},
		History: HistoryConfig{
			Enabled:    false,
			MaxEntries: 10000,
		},
	}
}

// RenderYaml renders the given configuration in the format expected in pidfan.yaml
func RenderYaml(config Configuration) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(config); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
