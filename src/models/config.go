package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Provider MProviderConfig `yaml:"provider"`
	Network  MNetworkConfig  `yaml:"network"`
	Stream   MStreamConfig   `yaml:"stream"`
}

type MProviderConfig struct {
	BaseURL     string `yaml:"base_url"`
	StreamURL   string `yaml:"stream_url"`
	Token       string `yaml:"token"`
	ProbeSymbol string `yaml:"probe_symbol"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

type MStreamConfig struct {
	BufferCapacity int `yaml:"buffer_capacity"`
}
