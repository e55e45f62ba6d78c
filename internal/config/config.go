// Package config loads the relay configuration: an optional TOML file for
// non-secret knobs, environment variables for credentials and identifiers.
// The resulting Config is read-only after Load.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath  = "carbot.toml"
	DefaultChannelName = "line"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Discord DiscordConfig `toml:"discord"`
	Line    LineConfig    `toml:"line"`
	Relay   RelayConfig   `toml:"relay"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type DiscordConfig struct {
	// Bot token, env DISCORD_TOKEN.
	Token string `toml:"-" validate:"required"`
	// Mirror bot whose messages are never re-forwarded, env DISCORD_FRIEND_BOT_ID.
	FriendBotID string `toml:"friend_bot_id"`
}

type LineConfig struct {
	// Channel access token, env LINE_TOKEN.
	Token string `toml:"-" validate:"required"`
	// Channel secret, env LINE_CHANNEL_SECRET; unused for a push-only bot.
	ChannelSecret string `toml:"-"`
	// Destination group id, env LINE_TARGET_GROUP_ID.
	TargetGroupID string `toml:"-" validate:"required"`
}

type RelayConfig struct {
	// Display name of the shared channel watched in every guild.
	ChannelName string `toml:"channel_name"`
	// Messages per push call; capped at the API limit of 5.
	BatchSize int `toml:"batch_size"`
}

// Load reads path (DefaultConfigPath when empty; a missing file is fine),
// overlays environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Relay: RelayConfig{
			ChannelName: DefaultChannelName,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	applyEnv(&cfg)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays environment variables; a set variable always wins over
// the file.
func applyEnv(cfg *Config) {
	setIfPresent := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setIfPresent(&cfg.Discord.Token, "DISCORD_TOKEN")
	setIfPresent(&cfg.Discord.FriendBotID, "DISCORD_FRIEND_BOT_ID")
	setIfPresent(&cfg.Line.Token, "LINE_TOKEN")
	setIfPresent(&cfg.Line.ChannelSecret, "LINE_CHANNEL_SECRET")
	setIfPresent(&cfg.Line.TargetGroupID, "LINE_TARGET_GROUP_ID")
	setIfPresent(&cfg.Relay.ChannelName, "CARBOT_CHANNEL_NAME")
	setIfPresent(&cfg.Log.Level, "CARBOT_LOG_LEVEL")
	setIfPresent(&cfg.Log.Format, "CARBOT_LOG_FORMAT")
}
