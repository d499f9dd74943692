package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/session"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	GameMode          string
	PlayingTime       time.Duration
	StopCount         int
	PassengersPerStop int
	BusCount          int
	PassengersPerBus  int
	StartClock        string // HH:MM

	BackgroundBasic string
	BackgroundLarge string
}

func Load() *Config {
	return &Config{
		Port:      getEnvInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		GameMode:          getEnv("GAME_MODE", "time"),
		PlayingTime:       getEnvDuration("PLAYING_TIME", game.PlayingTime),
		StopCount:         getEnvInt("STOP_COUNT", 12),
		PassengersPerStop: getEnvInt("PASSENGERS_PER_STOP", 2),
		BusCount:          getEnvInt("BUS_COUNT", 8),
		PassengersPerBus:  getEnvInt("PASSENGERS_PER_BUS", 3),
		StartClock:        getEnv("START_CLOCK", "07:20"),

		BackgroundBasic: getEnv("BACKGROUND_BASIC", "offlinedata/kartta_pieni_500x500.png"),
		BackgroundLarge: getEnv("BACKGROUND_LARGE", "offlinedata/kartta_iso_1095x592.png"),
	}
}

// SessionSettings turns the config into the defaults every new session starts from.
func (c *Config) SessionSettings() session.Settings {
	clock, err := time.Parse("15:04", c.StartClock)
	if err != nil {
		clock = time.Date(0, 1, 1, 7, 20, 0, 0, time.UTC)
	}
	return session.Settings{
		Mode:        game.ParseGameMode(c.GameMode),
		PlayingTime: c.PlayingTime,
		StartClock:  clock,
		Basic:       game.MapImage{Name: c.BackgroundBasic, Width: 500, Height: 500},
		Large:       game.MapImage{Name: c.BackgroundLarge, Width: 1095, Height: 592},
		Population: game.Population{
			Stops:             c.StopCount,
			PassengersPerStop: c.PassengersPerStop,
			Buses:             c.BusCount,
			PassengersPerBus:  c.PassengersPerBus,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
