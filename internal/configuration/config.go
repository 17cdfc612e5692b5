package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// EnvConfigFile can be used instead of the --config flag
	EnvConfigFile = "CONFIG_FILE"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	// SampleInterval is the time between two control cycles
	SampleInterval time.Duration `json:"sampleInterval" yaml:"sampleInterval"`
	// CommandTimeout limits the runtime of sensor and fan commands, 0 disables the limit
	CommandTimeout time.Duration `json:"commandTimeout" yaml:"commandTimeout"`
	// FailSafeDuty is applied to the fan on shutdown and after an unrecovered error
	FailSafeDuty int `json:"failSafeDuty" yaml:"failSafeDuty"`

	Pid         PidConfig          `json:"pid" yaml:"pid"`
	HeatSources []HeatSourceConfig `json:"heatSources" yaml:"heatSources"`
	Fan         FanConfig          `json:"fan" yaml:"fan"`

	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) error {
	viper.SetConfigName("pidfan")

	if cfgFile == "" {
		cfgFile = os.Getenv(EnvConfigFile)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return &ConfigError{Message: "couldn't detect home directory", Err: err}
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pidfan/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
	return nil
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/pidfan/pidfan.db")
	viper.SetDefault("sampleInterval", 5*time.Second)
	viper.SetDefault("commandTimeout", 0)
	viper.SetDefault("failSafeDuty", 100)

	viper.SetDefault("pid.outputMin", 0.0)
	viper.SetDefault("pid.outputMax", 100.0)

	viper.SetDefault("heatSources", []HeatSourceConfig{})

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.maxEntries", 10000)
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		return "", &ConfigError{Message: "error reading config file", Err: err}
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed(), nil
}

// LoadConfig decodes the values known to viper into CurrentConfig
func LoadConfig() error {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		return &ConfigError{Message: "unable to decode into struct", Err: err}
	}
	return nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
