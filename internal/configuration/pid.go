package configuration

type PidConfig struct {
	P         float64 `json:"p" yaml:"p"`
	I         float64 `json:"i" yaml:"i"`
	D         float64 `json:"d" yaml:"d"`
	OutputMin float64 `json:"outputMin" yaml:"outputMin"`
	OutputMax float64 `json:"outputMax" yaml:"outputMax"`
}
