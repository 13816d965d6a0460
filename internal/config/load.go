package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ENV_PREFIX = "caec"

func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("port", 8080)
	v.SetDefault("http_log", false)
	v.SetDefault("simulation.tick_interval", 5*time.Second)
	v.SetDefault("dashboard.variant", "extended")
	v.SetDefault("dashboard.update_age_interval", time.Minute)
	v.SetDefault("dashboard.optimal.ph_min", 6.0)
	v.SetDefault("dashboard.optimal.ph_max", 7.5)
	v.SetDefault("dashboard.optimal.temperature_min", 18.0)
	v.SetDefault("dashboard.optimal.temperature_max", 26.0)
	v.SetDefault("harvest.date", "2025-12-20T18:00:00")
	v.SetDefault("login.mode", "server")
	v.SetDefault("login.require_auth", false)
	v.SetDefault("session.secret", "caec_secret_key_2024")
	v.SetDefault("sync.timeout", 10*time.Second)
	v.SetDefault("http.actor_timeout", 2*time.Second)
	v.SetDefault("mqtt.enable", false)
	v.SetDefault("mqtt.host", "localhost")
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.base_topic", "caec")
	v.SetDefault("mqtt.ha_discovery_enable", false)
	v.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
}

// Load reads defaults, CAEC_* environment variables and the optional
// CONFIG_FILE yaml into a validated Config.
func Load(v *viper.Viper) (*Config, error) {

	// alias PORT => CAEC_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("CAEC_PORT", port)
	}

	SetDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			v.SetConfigFile(cfgFile)

			err = v.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	// the sync target defaults to this same server on its configured port
	v.SetDefault("sync.base_url", fmt.Sprintf("http://localhost:%d", v.GetInt("port")))

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = ParseLogLevel(v.GetString("log_level"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "trace":
		return zap.DebugLevel
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "error":
		return zap.ErrorLevel
	case "warn":
		return zap.WarnLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
