package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig holds the collection file configuration
type StoreConfig struct {
	Path     string      `mapstructure:"path"`
	Indent   bool        `mapstructure:"indent"`
	FileMode os.FileMode `mapstructure:"file_mode"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// Load loads configuration from defaults, .env, the environment and an
// optional config file. An empty configFile skips the file.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("store.path", "data/questions.json")
	v.SetDefault("store.indent", false)
	v.SetDefault("store.file_mode", 0o644)

	// Logger defaults
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.filename", "")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.textfile", "")
}

func bindEnvVars(v *viper.Viper) {
	// Store
	_ = v.BindEnv("store.path", "QA_STORE_PATH")
	_ = v.BindEnv("store.indent", "QA_STORE_INDENT")
	_ = v.BindEnv("store.file_mode", "QA_FILE_MODE")

	// Logger
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.format", "LOG_FORMAT")
	_ = v.BindEnv("logger.output", "LOG_OUTPUT")
	_ = v.BindEnv("logger.filename", "LOG_FILENAME")

	// Metrics
	_ = v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	_ = v.BindEnv("metrics.textfile", "METRICS_TEXTFILE")
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return fmt.Errorf("store path is required")
	}

	if cfg.Store.FileMode == 0 || cfg.Store.FileMode&^os.ModePerm != 0 {
		return fmt.Errorf("store file mode %o must be a non-zero permission mode", cfg.Store.FileMode)
	}

	switch cfg.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger format must be json or console, got %q", cfg.Logger.Format)
	}

	switch cfg.Logger.Output {
	case "stdout", "stderr":
	case "file":
		if cfg.Logger.Filename == "" {
			return fmt.Errorf("logger filename is required when output is file")
		}
	default:
		return fmt.Errorf("logger output must be stdout, stderr or file, got %q", cfg.Logger.Output)
	}

	return nil
}
