package util

import (
	"time"

	"github.com/caec/caecdash/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Simulation: config.SimulationConfig{
			TickInterval: 5 * time.Second,
		},
		Dashboard: config.DashboardConfig{
			Variant:           "extended",
			UpdateAgeInterval: time.Minute,
			Optimal: config.OptimalConfig{
				PHMin:          6.0,
				PHMax:          7.5,
				TemperatureMin: 18,
				TemperatureMax: 26,
			},
		},
		Harvest: config.HarvestConfig{
			Date: "2025-12-20T18:00:00",
		},
		Login: config.LoginConfig{
			Mode: "server",
		},
		Session: config.SessionConfig{
			Secret: "test-secret",
		},
		Sync: config.SyncConfig{
			Timeout: 2 * time.Second,
		},
		HTTP: config.HTTPConfig{
			ActorTimeout: 2 * time.Second,
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "caec",
			HADiscoveryTopic: "homeassistant",
		},
		Port: 8080,
	}
}
