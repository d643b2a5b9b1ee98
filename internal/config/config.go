// Package config loads the application configuration from an optional
// YAML file plus environment variables, env taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full application configuration.
type Config struct {
	Env      string `yaml:"env" env:"CLUBDESK_ENV" env-default:"development"`
	DBPath   string `yaml:"db_path" env:"CLUBDESK_DB_PATH" env-default:"clubdesk.db"`
	ClubName string `yaml:"club_name" env:"CLUBDESK_CLUB_NAME" env-default:"ClubDesk"`

	Admin   Admin   `yaml:"admin"`
	Backup  Backup  `yaml:"backup"`
	Workers Workers `yaml:"workers"`
	Email   Email   `yaml:"email"`
}

// Admin configures the seeded administrator account.
type Admin struct {
	Username string `yaml:"username" env:"CLUBDESK_ADMIN_USERNAME" env-default:"admin"`
	Password string `yaml:"password" env:"CLUBDESK_ADMIN_PASSWORD" env-default:"changeme-now"`
}

// Backup configures snapshot retention.
type Backup struct {
	Dir        string        `yaml:"dir" env:"CLUBDESK_BACKUP_DIR" env-default:"backups"`
	Interval   time.Duration `yaml:"interval" env:"CLUBDESK_BACKUP_INTERVAL" env-default:"24h"`
	MaxCount   int           `yaml:"max_count" env:"CLUBDESK_BACKUP_MAX_COUNT" env-default:"14"`
	MaxAgeDays int           `yaml:"max_age_days" env:"CLUBDESK_BACKUP_MAX_AGE_DAYS" env-default:"90"`
}

// Workers configures the background sweep intervals.
type Workers struct {
	ExpirySweepInterval    time.Duration `yaml:"expiry_sweep_interval" env:"CLUBDESK_EXPIRY_SWEEP_INTERVAL" env-default:"1h"`
	ExpiryNotifyInterval   time.Duration `yaml:"expiry_notify_interval" env:"CLUBDESK_EXPIRY_NOTIFY_INTERVAL" env-default:"24h"`
	ExpiryNotificationsOff bool          `yaml:"expiry_notifications_off" env:"CLUBDESK_EXPIRY_NOTIFICATIONS_OFF"`
}

// Email configures the outbound mail provider. An empty API key selects
// the no-op sender.
type Email struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"CLUBDESK_RESEND_API_KEY"`
	From         string `yaml:"from" env:"CLUBDESK_EMAIL_FROM" env-default:"ClubDesk <noreply@clubdesk.local>"`
}

// Load reads the configuration. When path is empty or the file does not
// exist, environment variables and defaults alone apply.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config from env: %w", err)
	}
	return cfg, nil
}
