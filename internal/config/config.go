// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	HDX   HDXConfig   `yaml:"hdx" mapstructure:"hdx"`
	Check CheckConfig `yaml:"check" mapstructure:"check"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// HDXConfig configures the dataset catalog client.
type HDXConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// CheckConfig configures the location audit run.
type CheckConfig struct {
	Query        string `yaml:"query" mapstructure:"query"`
	TempDir      string `yaml:"temp_dir" mapstructure:"temp_dir"`
	ReportPath   string `yaml:"report_path" mapstructure:"report_path"`
	PcodesURL    string `yaml:"pcodes_url" mapstructure:"pcodes_url"`
	CountriesURL string `yaml:"countries_url" mapstructure:"countries_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PCODING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("hdx.base_url", "https://data.humdata.org")
	v.SetDefault("hdx.user_agent", "pcoding-investigating/1.0")
	v.SetDefault("hdx.timeout_secs", 60)
	// The empty default registers the key so env overrides resolve.
	v.SetDefault("check.query", "")
	v.SetDefault("check.temp_dir", "/tmp/pcoding")
	v.SetDefault("check.report_path", "datasets_location_status.csv")
	v.SetDefault("check.pcodes_url", "https://raw.githubusercontent.com/b-j-mills/hdx-global-pcodes/main/global_pcodes.csv")
	v.SetDefault("check.countries_url", "https://raw.githubusercontent.com/b-j-mills/hdx-global-pcodes/main/countries.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
