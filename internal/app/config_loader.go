package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/mimms/internal/domain"
)

// LoadConfig loads configuration from MIMMS_* environment variables on top
// of the defaults
func LoadConfig() (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("MIMMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only overrides keys viper already knows about.
	setDefaults(v, config)

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", domain.ErrConfig, err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, config *domain.Config) {
	v.SetDefault("transport.bandwidth", config.Transport.Bandwidth)
	v.SetDefault("transport.chunk_size", config.Transport.ChunkSize)
	v.SetDefault("fetch.method", config.Fetch.Method)
	v.SetDefault("fetch.wget_path", config.Fetch.WgetPath)
	v.SetDefault("fetch.user_agent", config.Fetch.UserAgent)
	v.SetDefault("fetch.timeout", config.Fetch.Timeout)
	v.SetDefault("output.default_name", config.Output.DefaultName)
	v.SetDefault("progress.interval", config.Progress.Interval)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Fetch.WgetPath = expandPath(config.Fetch.WgetPath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Transport.Bandwidth < 1 {
		return fmt.Errorf("transport bandwidth must be positive: %d", config.Transport.Bandwidth)
	}

	if config.Transport.ChunkSize < 1 {
		return fmt.Errorf("transport chunk size must be positive: %d", config.Transport.ChunkSize)
	}

	switch config.Fetch.Method {
	case domain.FetchMethodHTTP:
	case domain.FetchMethodWget:
		if config.Fetch.WgetPath == "" {
			return fmt.Errorf("wget path not configured")
		}
	default:
		return fmt.Errorf("unknown fetch method: %q", config.Fetch.Method)
	}

	if config.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch timeout cannot be negative")
	}

	if config.Output.DefaultName == "" {
		return fmt.Errorf("default output name not configured")
	}

	if config.Progress.Interval <= 0 {
		return fmt.Errorf("progress interval must be positive")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}

	return nil
}
