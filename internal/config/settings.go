package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by LoadSettings
const EnvPrefix = "ITAX_"

// Settings are process-wide defaults taken from the environment. Command-line
// flags override them.
type Settings struct {
	Format   string // ITAX_FORMAT
	Rules    string // ITAX_RULES, path to a rules YAML
	LogLevel string // ITAX_LOG_LEVEL
	Debug    bool   // ITAX_DEBUG
	SaveDir  string // ITAX_SAVE_DIR, where scenario snapshots are written
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Format:   "console",
		LogLevel: "warn",
		SaveDir:  "scenarios",
	}
}

// LoadSettings reads ITAX_* variables after loading an optional .env file
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(".env")
}

// LoadSettingsFrom is LoadSettings with an explicit dotenv path. A missing file is
// not an error; variables already set in the environment win over the file.
func LoadSettingsFrom(dotenv string) (Settings, error) {
	if dotenv != "" {
		_ = godotenv.Load(dotenv)
	}

	k := koanf.New(".")
	cb := func(s string) string { return strings.ToLower(strings.TrimPrefix(s, EnvPrefix)) }
	if err := k.Load(env.Provider(EnvPrefix, ".", cb), nil); err != nil {
		return Settings{}, fmt.Errorf("load env: %w", err)
	}

	def := DefaultSettings()
	s := Settings{
		Format:   strings.ToLower(valueOrDefault(k.String("format"), def.Format)),
		Rules:    strings.TrimSpace(k.String("rules")),
		LogLevel: strings.ToLower(valueOrDefault(k.String("log_level"), def.LogLevel)),
		Debug:    parseBool(k.String("debug")),
		SaveDir:  valueOrDefault(k.String("save_dir"), def.SaveDir),
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Settings{}, fmt.Errorf("%sLOG_LEVEL: unknown level %q", EnvPrefix, s.LogLevel)
	}
	return s, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
