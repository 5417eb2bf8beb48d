// Package config loads the bot configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/yeabjr51-ship-it/eauf/internal/database"
)

// TelegramConfig holds Telegram transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level   string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format  string `yaml:"format" envconfig:"LOG_FORMAT"`
	Dir     string `yaml:"dir" envconfig:"LOG_DIR"`
	File    string `yaml:"file" envconfig:"LOG_FILE"`
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// BotConfig holds the confession-bot behaviour knobs.
type BotConfig struct {
	// ChannelID is the public channel confessions are posted to; 0 means
	// no channel is configured and confessions are saved locally only.
	ChannelID      int64  `yaml:"channel_id" envconfig:"CHANNEL_ID"`
	ConfessionName string `yaml:"confession_name" envconfig:"CONFESSION_NAME"`
	// ChannelLink is the public t.me link offered by the browse button.
	ChannelLink string `yaml:"channel_link" envconfig:"CHANNEL_LINK"`

	ConfessionCooldownSeconds int `yaml:"confession_cooldown_seconds" envconfig:"CONFESSION_COOLDOWN"`
	CommentCooldownSeconds    int `yaml:"comment_cooldown_seconds" envconfig:"COMMENT_COOLDOWN"`

	BadWords []string `yaml:"bad_words" envconfig:"BAD_WORDS"`
	PageSize int      `yaml:"page_size" envconfig:"PAGE_SIZE"`

	// FloodIntervalMS is the global minimum interval between updates from
	// one user, independent of the per-action cooldowns. 0 disables it.
	FloodIntervalMS int `yaml:"flood_interval_ms" envconfig:"FLOOD_INTERVAL_MS"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Config aggregates all configuration sections.
type Config struct {
	Telegram TelegramConfig  `yaml:"telegram"`
	Webhook  WebhookConfig   `yaml:"webhook"`
	Logging  LoggingConfig   `yaml:"logging"`
	Database database.Config `yaml:"database"`
	Bot      BotConfig       `yaml:"bot"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields
// and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Bot.ConfessionName) == "" {
		cfg.Bot.ConfessionName = "EAU Confession"
	}
	if cfg.Bot.ConfessionCooldownSeconds <= 0 {
		cfg.Bot.ConfessionCooldownSeconds = 30
	}
	if cfg.Bot.CommentCooldownSeconds <= 0 {
		cfg.Bot.CommentCooldownSeconds = 10
	}
	if cfg.Bot.PageSize <= 0 {
		cfg.Bot.PageSize = 4
	}
	if cfg.Bot.FloodIntervalMS < 0 {
		return fmt.Errorf("bot.flood_interval_ms must be >= 0")
	}

	words := cfg.Bot.BadWords[:0]
	for _, w := range cfg.Bot.BadWords {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	cfg.Bot.BadWords = words

	return nil
}
