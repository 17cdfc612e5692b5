package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfigFromString(t *testing.T, content string) Configuration {
	viper.Reset()
	t.Cleanup(viper.Reset)
	CurrentConfig = Configuration{}

	configPath := filepath.Join(t.TempDir(), "pidfan.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	require.NoError(t, InitConfig(configPath))
	path, err := DetectAndReadConfigFile()
	require.NoError(t, err)
	require.Equal(t, configPath, path)
	require.NoError(t, LoadConfig())
	return CurrentConfig
}

func TestLoadConfig(t *testing.T) {
	// GIVEN
	content := `
sampleInterval: 2s
pid:
  p: 1.5
  i: 0.2
  d: 0.01
heatSources:
  - name: cpu
    setPoint: 60
    cmd:
      exec: /usr/local/bin/cpu-temp
      args: ["--celsius"]
  - name: disk
    setPoint: 40
    file:
      path: /sys/class/hwmon/hwmon1/temp1_input
      divisor: 1000
fan:
  id: case
  minRpm: 500
  maxRpm: 2000
  cmd:
    getDuty:
      exec: /usr/local/bin/get-duty
    setDuty:
      exec: /usr/bin/ipmitool
      args: ["raw", "0x30", "%duty_hex%"]
`

	// WHEN
	config := loadConfigFromString(t, content)

	// THEN
	assert.Equal(t, 2*time.Second, config.SampleInterval)
	assert.Equal(t, 1.5, config.Pid.P)
	assert.Equal(t, 0.2, config.Pid.I)
	assert.Equal(t, 0.01, config.Pid.D)
	assert.Len(t, config.HeatSources, 2)
	assert.Equal(t, "cpu", config.HeatSources[0].Name)
	assert.Equal(t, []string{"--celsius"}, config.HeatSources[0].Cmd.Args)
	assert.Equal(t, 1000.0, config.HeatSources[1].File.Divisor)
	assert.Equal(t, "case", config.Fan.ID)
	assert.Equal(t, 2000, config.Fan.MaxRpm)
	assert.Equal(t, []string{"raw", "0x30", "%duty_hex%"}, config.Fan.Cmd.SetDuty.Args)
}

func TestLoadConfig_Defaults(t *testing.T) {
	// WHEN
	config := loadConfigFromString(t, "heatSources: []\n")

	// THEN
	assert.Equal(t, 5*time.Second, config.SampleInterval)
	assert.Equal(t, time.Duration(0), config.CommandTimeout)
	assert.Equal(t, 100, config.FailSafeDuty)
	assert.Equal(t, 0.0, config.Pid.OutputMin)
	assert.Equal(t, 100.0, config.Pid.OutputMax)
	assert.Equal(t, "/etc/pidfan/pidfan.db", config.DbPath)
	assert.Equal(t, 9000, config.Statistics.Port)
	assert.Equal(t, "localhost", config.Api.Host)
	assert.Equal(t, 9001, config.Api.Port)
	assert.Equal(t, 10000, config.History.MaxEntries)
}

func TestLoadConfig_NumericSampleIntervalIsSeconds(t *testing.T) {
	// WHEN
	config := loadConfigFromString(t, "sampleInterval: 2.5\ncommandTimeout: 3\n")

	// THEN
	assert.Equal(t, 2500*time.Millisecond, config.SampleInterval)
	assert.Equal(t, 3*time.Second, config.CommandTimeout)
}

func TestInitConfig_UsesEnvironment(t *testing.T) {
	// GIVEN
	viper.Reset()
	t.Cleanup(viper.Reset)
	configPath := filepath.Join(t.TempDir(), "from-env.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("failSafeDuty: 42\n"), 0o600))
	t.Setenv(EnvConfigFile, configPath)

	// WHEN
	require.NoError(t, InitConfig(""))
	path, err := DetectAndReadConfigFile()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.NoError(t, LoadConfig())
	assert.Equal(t, 42, CurrentConfig.FailSafeDuty)
}

func TestDetectAndReadConfigFile_Missing(t *testing.T) {
	// GIVEN
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, InitConfig(filepath.Join(t.TempDir(), "missing.yaml")))

	// WHEN
	_, err := DetectAndReadConfigFile()

	// THEN
	var configError *ConfigError
	assert.ErrorAs(t, err, &configError)
}
