package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel   zapcore.Level
	Port       uint             `mapstructure:"port"`
	HttpLog    bool             `mapstructure:"http_log"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
	Harvest    HarvestConfig    `mapstructure:"harvest"`
	Login      LoginConfig      `mapstructure:"login"`
	Session    SessionConfig    `mapstructure:"session"`
	Sync       SyncConfig       `mapstructure:"sync"`
	MQTT       MQTTConfig       `mapstructure:"mqtt"`
	HTTP       HTTPConfig       `mapstructure:"http"`
}

type SimulationConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type DashboardConfig struct {
	Variant string        `mapstructure:"variant"`
	Optimal OptimalConfig `mapstructure:"optimal"`
	// legacy "Hace N min" labels
	UpdateAgeInterval time.Duration `mapstructure:"update_age_interval"`
}

// OptimalConfig holds the display/alerting ranges, not the simulation clamps.
type OptimalConfig struct {
	PHMin          float64 `mapstructure:"ph_min"`
	PHMax          float64 `mapstructure:"ph_max"`
	TemperatureMin float64 `mapstructure:"temperature_min"`
	TemperatureMax float64 `mapstructure:"temperature_max"`
}

type HarvestConfig struct {
	Date string `mapstructure:"date"`
}

type LoginConfig struct {
	Mode        string `mapstructure:"mode"`
	RequireAuth bool   `mapstructure:"require_auth"`
}

type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

type SyncConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type HTTPConfig struct {
	ActorTimeout time.Duration `mapstructure:"actor_timeout"`
}

type MQTTConfig struct {
	Enable            bool
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

// SyncEnabled reports whether the sync stub has a target.
func (c SyncConfig) SyncEnabled() bool {
	return c.BaseURL != ""
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

// Validate checks bounds and normalizes topics in place.
func (cfg *Config) Validate() error {
	if cfg.Simulation.TickInterval < time.Second {
		return errors.New("config param simulation.tick_interval should be >= 1s")
	}
	if cfg.HTTP.ActorTimeout <= 0 {
		return errors.New("config param http.actor_timeout should be > 0")
	}
	if cfg.Dashboard.Optimal.PHMin >= cfg.Dashboard.Optimal.PHMax {
		return errors.New("config param dashboard.optimal.ph_min must be < dashboard.optimal.ph_max")
	}
	if cfg.Dashboard.Optimal.TemperatureMin >= cfg.Dashboard.Optimal.TemperatureMax {
		return errors.New("config param dashboard.optimal.temperature_min must be < dashboard.optimal.temperature_max")
	}
	if cfg.Sync.SyncEnabled() {
		u, err := url.Parse(cfg.Sync.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config param sync.base_url is not a valid url: %s", cfg.Sync.BaseURL)
		}
		cfg.Sync.BaseURL = strings.TrimSuffix(cfg.Sync.BaseURL, "/")
	}
	if cfg.Login.RequireAuth && cfg.Login.Mode == "local" {
		return errors.New("config param login.require_auth needs login.mode = server")
	}

	if cfg.MQTT.Enable {
		// check and fix base topic
		baseTopic, err := CheckMQTTTopic(cfg.MQTT.BaseTopic)
		if err != nil {
			return errors.New("invalid base topic. can only contain letters, numbers and underscores")
		}
		cfg.MQTT.BaseTopic = baseTopic

		// check and fix homeassistant discovery topic
		hadBaseTopic, err := CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
		if err != nil {
			return errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
		}
		cfg.MQTT.HADiscoveryTopic = hadBaseTopic
	}
	return nil
}

// Redacted returns a copy safe to log.
func (cfg Config) Redacted() Config {
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	cfg.Session.Secret = "*redacted*"
	return cfg
}
