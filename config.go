package worklog

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	DatabaseURLKey   = "WORKLOG_DB_PATH"
	UserIDKey        = "WORKLOG_USER_ID"
	LogLevelKey      = "WORKLOG_LOG_LEVEL"
	TimerConfigKey   = "WORKLOG_TIMER_CONFIG"
	BotNameKey       = "WORKLOG_BOT_NAME"
	BotTokenKey      = "WORKLOG_BOT_TOKEN"
	DiscordUserIDKey = "WORKLOG_DISCORD_USER_ID"
)

type Config struct {
	DatabaseURL   string
	UserID        UserID
	LogLevel      log.Level
	Timer         TimerMinutes
	BotName       string
	BotToken      string
	DiscordUserID string
}

// TimerMinutes holds the per-mode timer durations in whole minutes.
type TimerMinutes struct {
	Focus      int `yaml:"focus"`
	ShortBreak int `yaml:"short_break"`
	LongBreak  int `yaml:"long_break"`
}

func DefaultTimerMinutes() TimerMinutes {
	return TimerMinutes{
		Focus:      25,
		ShortBreak: 5,
		LongBreak:  15,
	}
}

func LoadConfig(isProd bool) (Config, error) {
	LoadEnv(isProd)

	config := Config{
		DatabaseURL:   os.Getenv(DatabaseURLKey),
		UserID:        UserID(os.Getenv(UserIDKey)),
		LogLevel:      log.InfoLevel,
		Timer:         DefaultTimerMinutes(),
		BotName:       os.Getenv(BotNameKey),
		BotToken:      os.Getenv(BotTokenKey),
		DiscordUserID: os.Getenv(DiscordUserIDKey),
	}

	if config.DatabaseURL == "" {
		config.DatabaseURL = "worklog.db"
	}

	if config.BotName == "" {
		config.BotName = "Worklog"
	}

	if lvl := os.Getenv(LogLevelKey); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
		}
		config.LogLevel = parsed
	}

	if path := os.Getenv(TimerConfigKey); path != "" {
		timer, err := LoadTimerMinutes(path)
		if err != nil {
			return Config{}, err
		}
		config.Timer = timer
	}

	return config, nil
}

// LoadTimerMinutes reads a YAML timer settings file. Modes left out keep their defaults.
func LoadTimerMinutes(path string) (TimerMinutes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TimerMinutes{}, fmt.Errorf("read timer config: %w", err)
	}
	return ParseTimerMinutes(data)
}

func ParseTimerMinutes(data []byte) (TimerMinutes, error) {
	minutes := DefaultTimerMinutes()
	if err := yaml.Unmarshal(data, &minutes); err != nil {
		return TimerMinutes{}, fmt.Errorf("parse timer config: %w", err)
	}
	return minutes, nil
}

func (c Config) RequireUser() error {
	if c.UserID == "" {
		return fmt.Errorf("required environment variable: %s", UserIDKey)
	}
	return nil
}

func (c Config) RequireBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("required environment variable: %s", BotTokenKey)
	}
	return nil
}
