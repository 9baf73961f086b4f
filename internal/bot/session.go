// Package bot implements the Discord sessions, command routing, scheduled
// presence refresh, and lifecycle orchestration for the price bots.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/tokenfyi/serumbot/internal/config"
)

// PriceSource produces a best-bid quote for a market address. The shared
// Serum client satisfies this; tests substitute a fake.
type PriceSource interface {
	FetchBestBid(ctx context.Context, marketAddress string) (string, error)
}

// Session is one authenticated Discord connection for one configured bot
// identity. It owns its gateway connection exclusively and holds a
// non-owning reference to the shared price source. Sessions live for the
// process lifetime; a dropped gateway connection is not re-established.
type Session struct {
	meta  config.BotConfig
	dg    *discordgo.Session
	price PriceSource
	log   *slog.Logger
}

// NewSession authenticates one bot identity and wires its interaction
// handler. An error here means this identity could not log in; the caller
// decides whether other sessions continue.
func NewSession(meta config.BotConfig, price PriceSource, logger *slog.Logger) (*Session, error) {
	dg, err := discordgo.New("Bot " + meta.BotToken)
	if err != nil {
		return nil, fmt.Errorf("creating session for %s: %w", meta.TokenName, err)
	}

	s := &Session{
		meta:  meta,
		dg:    dg,
		price: price,
		log:   logger.With("component", "session", "token", meta.TokenSymbol),
	}

	// Handle gateway events synchronously so one invocation is fully
	// replied to before this session accepts the next.
	dg.SyncEvents = true
	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(s.onReady)
	dg.AddHandler(s.handleInteraction)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("authenticating %s: %w", meta.TokenName, err)
	}

	return s, nil
}

func (s *Session) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	s.log.Info("Bot live", "username", r.User.Username)
}

// Close shuts down the gateway connection.
func (s *Session) Close() error {
	return s.dg.Close()
}
