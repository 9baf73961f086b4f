package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. config.json file
// 3. BOT_* environment variables
//
// Invalid bot entries are dropped with a warning so that one malformed entry
// never prevents the remaining bots from starting. Load fails only when the
// top-level configuration is invalid or no usable bot entry remains.
func Load(log *slog.Logger) (*Config, error) {
	setDefaults()

	if err := readConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Bots = filterBots(log, validate, cfg.Bots)
	if len(cfg.Bots) == 0 {
		return nil, ErrNoUsableBots
	}

	return cfg, nil
}

// newValidator builds the validator with the solana_address rule used by
// bot entries: the value must parse as a base58-encoded 32-byte public key.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()

	err := validate.RegisterValidation("solana_address", func(fl validator.FieldLevel) bool {
		_, err := solana.PublicKeyFromBase58(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("registering solana_address validation: %w", err)
	}

	return validate, nil
}

// readConfig initializes and loads the configuration using viper.
func readConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow missing config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_json", false)

	viper.SetDefault("rpc_endpoint", "https://api.mainnet-beta.solana.com")

	viper.SetDefault("presence_interval", "5s")
	viper.SetDefault("rename_interval", "5m")
}

// filterBots validates each bot entry individually and returns the valid
// ones, logging and dropping the rest.
func filterBots(log *slog.Logger, validate *validator.Validate, bots []BotConfig) []BotConfig {
	valid := make([]BotConfig, 0, len(bots))
	for i, b := range bots {
		if err := validate.Struct(b); err != nil {
			log.Warn("Dropping invalid bot entry",
				"index", i,
				"token_name", b.TokenName,
				"error", err)
			continue
		}
		valid = append(valid, b)
	}
	return valid
}
