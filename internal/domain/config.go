package domain

import "time"

// Config represents the application configuration
type Config struct {
	Transport TransportConfig `mapstructure:"transport"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Output    OutputConfig    `mapstructure:"output"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TransportConfig contains libmms-related configuration
type TransportConfig struct {
	Bandwidth int `mapstructure:"bandwidth"`  // connect hint in bytes/s
	ChunkSize int `mapstructure:"chunk_size"` // bytes per read
}

// FetchConfig contains configuration for retrieving ASX playlists over HTTP
type FetchConfig struct {
	Method    string        `mapstructure:"method"` // http or wget
	WgetPath  string        `mapstructure:"wget_path"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

const (
	FetchMethodHTTP = "http"
	FetchMethodWget = "wget"
)

// OutputConfig contains destination-related configuration
type OutputConfig struct {
	DefaultName string `mapstructure:"default_name"`
}

// ProgressConfig contains status line configuration
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stderr or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Bandwidth: DefaultBandwidth,
			ChunkSize: 1000,
		},
		Fetch: FetchConfig{
			Method:    FetchMethodHTTP,
			WgetPath:  "wget",
			UserAgent: "mimms/" + Version,
			Timeout:   30 * time.Second,
		},
		Output: OutputConfig{
			DefaultName: "mimms.wmv",
		},
		Progress: ProgressConfig{
			Interval: 2500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// Version is the program version shown in the help text
const Version = "3.3.0"
