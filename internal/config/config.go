package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const appName = "dailychime"

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	SettingsPath  string
	PlayerBinary  string
	SoundFile     string
	LocalTimezone *time.Location
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	settingsPath := getenvDefault("DAILYCHIME_SETTINGS", DefaultSettingsPath())
	player := getenvDefault("DAILYCHIME_PLAYER", "ffplay")
	sound := getenvDefault("DAILYCHIME_SOUND", filepath.Join("sounds", "alarm.mp3"))
	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")

	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		SettingsPath:  settingsPath,
		PlayerBinary:  player,
		SoundFile:     sound,
		LocalTimezone: location,
	}
}

// DefaultSettingsPath returns the settings file location under the user's
// XDG config directory.
func DefaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "settings.json")
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}
