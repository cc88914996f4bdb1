package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// OBSOverrides are connection fields that, when set, win over the
// values in the persisted settings document. Zero values mean "no
// override".
type OBSOverrides struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// Config is the process-level configuration: where the settings
// document lives and how the tool itself behaves. The settings
// document is user data and stays out of here.
type Config struct {
	LogLevel      string       `mapstructure:"log_level"`
	SettingsPath  string       `mapstructure:"settings_path"`
	DashboardPort int          `mapstructure:"dashboard_port"`
	OBS           OBSOverrides `mapstructure:"obs"`
}

// Load reads linkcast.yaml if present, else runs on defaults and
// LINKCAST_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("linkcast")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetDefault("log_level", "info")
	v.SetDefault("settings_path", "settings.json")
	v.SetDefault("dashboard_port", 8090)
	v.SetDefault("obs.host", "")
	v.SetDefault("obs.port", 0)
	v.SetDefault("obs.password", "")

	v.SetEnvPrefix("LINKCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file is fine; defaults and env carry the day.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
