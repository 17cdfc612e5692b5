package configuration

type HeatSourceConfig struct {
	// Name of the zone this probe contributes to, multiple probes may share a name
	Name     string  `json:"name" yaml:"name"`
	SetPoint float64 `json:"setPoint" yaml:"setPoint"`

	Cmd   *CmdSourceConfig   `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	File  *FileSourceConfig  `json:"file,omitempty" yaml:"file,omitempty"`
	HwMon *HwMonSourceConfig `json:"hwmon,omitempty" yaml:"hwmon,omitempty"`
}

type CmdSourceConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}

type FileSourceConfig struct {
	Path string `json:"path" yaml:"path"`
	// Divisor applied to the raw file value, f.ex. 1000 for millidegree sysfs files
	Divisor float64 `json:"divisor,omitempty" yaml:"divisor,omitempty"`
}

type HwMonSourceConfig struct {
	Platform string `json:"platform" yaml:"platform"`
	Index    int    `json:"index" yaml:"index"`
	// TempInput is resolved at runtime
	TempInput string `json:"tempInput,omitempty" yaml:"-"`
}
