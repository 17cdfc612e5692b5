package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

// HistoryConfig controls the diagnostic cycle log kept in the database at DbPath
type HistoryConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	MaxEntries int  `json:"maxEntries" yaml:"maxEntries"`
}
