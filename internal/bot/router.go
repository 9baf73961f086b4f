package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// moonReply is the fixed payload for the moon subcommand, identical on
// every invocation.
const moonReply = "Soon https://tenor.com/view/stonks-up-stongs-meme-stocks-gif-15715298"

// invocation is the transient payload of one inbound command event.
type invocation struct {
	subcommand string
	channelID  string
}

// handleInteraction routes one inbound slash-command invocation: validate,
// dispatch, send exactly one reply attempt. Dropped invocations (wrong
// channel, no subcommand, unknown subcommand) produce no reply and no error.
func (s *Session) handleInteraction(ds *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := ic.ApplicationCommandData()
	inv := invocation{channelID: ic.ChannelID}
	if len(data.Options) > 0 {
		inv.subcommand = data.Options[0].Name
	}

	if !s.accepts(inv) {
		return
	}

	s.log.Info("Handling command",
		"command", data.Name,
		"subcommand", inv.subcommand,
		"channel_id", inv.channelID)

	reply, ok := s.replyFor(context.Background(), inv.subcommand)
	if !ok {
		return
	}

	err := ds.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: reply},
	})
	if err != nil {
		s.log.Error("Failed to send reply", "subcommand", inv.subcommand, "error", err)
	}
}

// accepts reports whether an invocation should be answered: it must carry a
// subcommand, and when a preferred channel is configured it must originate
// there. Invocations from other channels are dropped silently.
func (s *Session) accepts(inv invocation) bool {
	if inv.subcommand == "" {
		return false
	}
	if s.meta.PreferredChannelID != "" && s.meta.PreferredChannelID != inv.channelID {
		return false
	}
	return true
}

// replyFor resolves the reply text for a subcommand. ok is false for
// unrecognized subcommands, which are a no-op.
func (s *Session) replyFor(ctx context.Context, subcommand string) (reply string, ok bool) {
	switch subcommand {
	case "price":
		quote, err := s.price.FetchBestBid(ctx, s.meta.MarketAddress)
		if err != nil {
			s.log.Error("Price fetch failed", "market", s.meta.MarketAddress, "error", err)
			return fmt.Sprintf("%s: price unavailable", s.meta.TokenSymbol), true
		}
		return fmt.Sprintf("%s: $%s", s.meta.TokenSymbol, quote), true
	case "moon":
		return moonReply, true
	default:
		return "", false
	}
}
