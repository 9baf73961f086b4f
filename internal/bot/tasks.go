package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tokenfyi/serumbot/internal/config"
)

// newPresenceTask creates the tick that refreshes the session's presence:
// status online, watching the token's display name. The payload is static,
// so a failed tick loses nothing that the next one does not restore.
func newPresenceTask(s *Session) TaskFunc {
	log := s.log.With("task", "presence")

	return func(ctx context.Context) error {
		err := s.dg.UpdateStatusComplex(discordgo.UpdateStatusData{
			Status: "online",
			Activities: []*discordgo.Activity{
				{
					Name: s.meta.TokenName,
					Type: discordgo.ActivityTypeWatching,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("presence update: %w", err)
		}

		log.Debug("Presence refreshed", "watching", s.meta.TokenName)
		return nil
	}
}

// newRenameTask creates the tick that renames the bot account to carry the
// current best bid. When the quote cannot be fetched the rename is skipped
// entirely rather than publishing a name without a price.
func newRenameTask(s *Session) TaskFunc {
	log := s.log.With("task", "rename")

	return func(ctx context.Context) error {
		quote, err := s.price.FetchBestBid(ctx, s.meta.MarketAddress)
		if err != nil {
			return fmt.Errorf("skipping rename, no quote for %s: %w", s.meta.MarketAddress, err)
		}

		name := displayName(s.meta, quote)
		if _, err := s.dg.UserUpdate(name, ""); err != nil {
			return fmt.Errorf("renaming to %q: %w", name, err)
		}

		log.Info("Display name updated", "name", name)
		return nil
	}
}

// displayName formats the price-bearing account name, e.g. "ABC ($1.24)".
func displayName(meta config.BotConfig, quote string) string {
	return fmt.Sprintf("%s (%s%s)", meta.TokenSymbol, meta.QuoteTokenSymbol, quote)
}
