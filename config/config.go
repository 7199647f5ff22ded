// Package config loads runtime settings from .env and the environment.
package config

import (
	"log"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Export  ExportConfig
	State   StateConfig
	Preview PreviewConfig
}

type AppConfig struct {
	Name     string
	Location *time.Location
}

type ExportConfig struct {
	Dir string
}

type StateConfig struct {
	Key string
}

type PreviewConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// Load reads .env (when present) into the process environment and builds the
// config from environment variables with defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env file not found, using environment variables: %v", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "Orça Eletricista Pro")
	v.SetDefault("APP_LOCATION", "America/Sao_Paulo")
	v.SetDefault("EXPORT_DIR", "./pb_data/exports")
	v.SetDefault("STATE_KEY", "orca_eletricista_state")
	v.SetDefault("PREVIEW_TTL_MINUTES", 30)
	v.SetDefault("PREVIEW_SWEEP_SCHEDULE", "@every 5m")
	return v
}

// FromViper builds a Config from an already populated viper instance. An
// unknown APP_LOCATION falls back to UTC.
func FromViper(v *viper.Viper) *Config {
	locName := v.GetString("APP_LOCATION")
	loc, err := time.LoadLocation(locName)
	if err != nil {
		log.Printf("config: unknown APP_LOCATION %q, using UTC: %v", locName, err)
		loc = time.UTC
	}

	ttl := time.Duration(v.GetInt("PREVIEW_TTL_MINUTES")) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Location: loc,
		},
		Export: ExportConfig{
			Dir: v.GetString("EXPORT_DIR"),
		},
		State: StateConfig{
			Key: v.GetString("STATE_KEY"),
		},
		Preview: PreviewConfig{
			TTL:           ttl,
			SweepSchedule: v.GetString("PREVIEW_SWEEP_SCHEDULE"),
		},
	}
}
