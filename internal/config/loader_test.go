package config

import (
	"log/slog"
	"testing"
)

func validBot() BotConfig {
	return BotConfig{
		TokenName:        "Example Token",
		TokenSymbol:      "EXT",
		QuoteTokenSymbol: "$",
		MarketAddress:    "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT",
		BotToken:         "token",
	}
}

func TestFilterBots_DropsOnlyInvalidEntries(t *testing.T) {
	t.Parallel()

	missingSymbol := validBot()
	missingSymbol.TokenSymbol = ""

	badMarket := validBot()
	badMarket.MarketAddress = "not base58 0OIl"

	shortMarket := validBot()
	shortMarket.MarketAddress = "9xQeWvG816bUx9EPjHmaT2" // valid base58, not a 32-byte key

	bots := []BotConfig{validBot(), missingSymbol, badMarket, shortMarket, validBot()}

	validate, err := newValidator()
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}

	got := filterBots(slog.New(slog.DiscardHandler), validate, bots)

	if len(got) != 2 {
		t.Fatalf("filterBots kept %d entries, want 2", len(got))
	}
	for i, b := range got {
		if b.MarketAddress != validBot().MarketAddress {
			t.Errorf("entry %d: unexpected survivor %+v", i, b)
		}
	}
}

func TestFilterBots_AllValid(t *testing.T) {
	t.Parallel()

	validate, err := newValidator()
	if err != nil {
		t.Fatalf("newValidator: %v", err)
	}

	bots := []BotConfig{validBot(), validBot()}
	got := filterBots(slog.New(slog.DiscardHandler), validate, bots)

	if len(got) != len(bots) {
		t.Fatalf("filterBots kept %d entries, want %d", len(got), len(bots))
	}
}
