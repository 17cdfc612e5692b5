package configuration

type FanConfig struct {
	ID     string `json:"id" yaml:"id"`
	MinRpm int    `json:"minRpm" yaml:"minRpm"`
	MaxRpm int    `json:"maxRpm" yaml:"maxRpm"`

	Cmd  *CmdFanConfig  `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	File *FileFanConfig `json:"file,omitempty" yaml:"file,omitempty"`
}

type CmdFanConfig struct {
	// GetDuty prints the currently applied duty in percent
	GetDuty *ExecConfig `json:"getDuty" yaml:"getDuty"`
	// SetDuty args may contain the placeholders %duty% and %duty_hex%
	SetDuty *ExecConfig `json:"setDuty" yaml:"setDuty"`
}

type ExecConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

type FileFanConfig struct {
	Path string `json:"path" yaml:"path"`
	// MaxValue is the raw value written for a duty of 100%, 255 for hwmon pwm files
	MaxValue int `json:"maxValue" yaml:"maxValue"`
}
