package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "LSPBRIDGE"

type ClientConfig struct {
	LogLevel    string            `mapstructure:"log_level"`
	Log         LogConfig         `mapstructure:"log"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Workers     WorkerConfig      `mapstructure:"workers"`
}

// LogConfig controls the optional rotating log file.
type LogConfig struct {
	// Log file path. Empty logs to stderr.
	File string `mapstructure:"file"`
	// Maximum size in megabytes before rotation.
	MaxSize int `mapstructure:"max_size"`
	// Rotated files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// Days to keep rotated files.
	MaxAge   int  `mapstructure:"max_age"`
	Compress bool `mapstructure:"compress"`
}

// DiagnosticsConfig bounds the diagnostics view.
type DiagnosticsConfig struct {
	// Maximum number of files shown.
	MaxFiles int `mapstructure:"max_files"`
	// Maximum number of items shown per file.
	MaxItemsPerFile int `mapstructure:"max_items_per_file"`
	// Ignore publishes for files that are not on disk.
	RequireExistingFile bool `mapstructure:"require_existing_file"`
}

// WorkerConfig sizes the background worker pool.
type WorkerConfig struct {
	// Concurrent background jobs.
	PoolSize int `mapstructure:"pool_size"`
	// Concurrent disk reads while building location previews.
	ReadConcurrency int `mapstructure:"read_concurrency"`
}

// Default returns the configuration used when no file is given.
func Default() *ClientConfig {
	return &ClientConfig{
		LogLevel: "info",
		Log: LogConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
		Diagnostics: DiagnosticsConfig{
			MaxFiles:            10,
			MaxItemsPerFile:     20,
			RequireExistingFile: true,
		},
		Workers: WorkerConfig{
			PoolSize:        4,
			ReadConcurrency: 8,
		},
	}
}

func LoadClientConfig(configPath string) (*ClientConfig, error) {
	v := viper.New()
	def := Default()

	// Set defaults
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.max_size", def.Log.MaxSize)
	v.SetDefault("log.max_backups", def.Log.MaxBackups)
	v.SetDefault("log.max_age", def.Log.MaxAge)
	v.SetDefault("log.compress", def.Log.Compress)

	// Diagnostics view limits
	v.SetDefault("diagnostics.max_files", def.Diagnostics.MaxFiles)
	v.SetDefault("diagnostics.max_items_per_file", def.Diagnostics.MaxItemsPerFile)
	v.SetDefault("diagnostics.require_existing_file", def.Diagnostics.RequireExistingFile)

	v.SetDefault("workers.pool_size", def.Workers.PoolSize)
	v.SetDefault("workers.read_concurrency", def.Workers.ReadConcurrency)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every limit is usable.
func (c *ClientConfig) Validate() error {
	checks := []struct {
		field string
		value int
	}{
		{"diagnostics.max_files", c.Diagnostics.MaxFiles},
		{"diagnostics.max_items_per_file", c.Diagnostics.MaxItemsPerFile},
		{"workers.pool_size", c.Workers.PoolSize},
		{"workers.read_concurrency", c.Workers.ReadConcurrency},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return &ValidationError{Field: check.field, Message: "must be positive"}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log_level", Message: "must be one of: debug, info, warn, error"}
	}

	return nil
}
