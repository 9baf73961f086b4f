// Package config manages application configuration from a config.json file,
// BOT_* environment variables, and default values.
package config

import (
	"errors"
	"time"
)

var ErrNoUsableBots = errors.New("no usable bot entries in configuration")

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_RPC_ENDPOINT) or
// through config.json.
type Config struct {
	// Logging settings
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogJSON  bool   `mapstructure:"log_json"`

	// Solana RPC settings
	RPCEndpoint string `mapstructure:"rpc_endpoint" validate:"required,url"`

	// Refresh intervals for the per-bot scheduled tasks
	PresenceInterval time.Duration `mapstructure:"presence_interval" validate:"min=1s"`
	RenameInterval   time.Duration `mapstructure:"rename_interval"   validate:"min=1s"`

	// Bot entries, one per deployed identity
	Bots []BotConfig `mapstructure:"bots" validate:"required,min=1"`
}

// BotConfig holds the immutable metadata for one bot identity. One entry
// per configured bot; loaded once at startup and never mutated afterwards.
type BotConfig struct {
	TokenName          string `mapstructure:"token_name"           validate:"required"`
	TokenSymbol        string `mapstructure:"token_symbol"         validate:"required"`
	QuoteTokenSymbol   string `mapstructure:"quote_token_symbol"   validate:"required"`
	MarketAddress      string `mapstructure:"market_address"       validate:"required,solana_address"`
	GuildID            string `mapstructure:"guild_id"`
	PreferredChannelID string `mapstructure:"preferred_channel_id"`
	BotToken           string `mapstructure:"bot_token"            validate:"required"`
}
