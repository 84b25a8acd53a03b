// Package daemon manages the StudyFlow daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Data          DataConfig          `toml:"data"`
	AI            AIConfig            `toml:"ai"`
	Notifications NotificationsConfig `toml:"notifications"`
	Reminders     RemindersConfig     `toml:"reminders"`
	Logging       LoggingConfig       `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DataConfig controls where state lives on disk.
type DataConfig struct {
	Dir         string `toml:"dir"`
	CatalogFile string `toml:"catalog_file"` // optional extra achievement definitions
}

// AIConfig points at an OpenAI-compatible chat backend. All fields may also
// come from the environment (OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL).
type AIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// NotificationsConfig controls how often notifications are created.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"` // HH:MM
	QuietEnd   string `toml:"quiet_end"`   // HH:MM
}

// RemindersConfig controls the background reminder jobs. Hours are UTC.
type RemindersConfig struct {
	Enabled     bool `toml:"enabled"`
	StartHour   int  `toml:"start_hour"`
	EndHour     int  `toml:"end_hour"`
	SummaryHour int  `toml:"summary_hour"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := studyflowHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7600,
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			Dir: homeDir,
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  3,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Reminders: RemindersConfig{
			Enabled:     true,
			StartHour:   9,
			EndHour:     20,
			SummaryHour: 21,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "studyflow.log"),
		},
	}
}

// LoadConfig reads config from ~/.studyflow/config.toml, falling back to
// defaults. A .env file in the working directory is loaded first so that the
// AI credentials can stay out of the config file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	path := filepath.Join(studyflowHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = os.Getenv("OPENAI_MODEL")
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.studyflow/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(studyflowHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// studyflowHome returns the StudyFlow data directory.
func studyflowHome() string {
	if env := os.Getenv("STUDYFLOW_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".studyflow")
}

// Home is exported for use by other packages.
func Home() string {
	return studyflowHome()
}
