package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// slugify turns a token display name into a slash-command name: lowercase
// with spaces replaced by hyphens.
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// RegisterCommands declares this session's slash command: one command named
// after the token with the two subcommands "price" and "moon". When a guild
// is configured the command is scoped to it, otherwise it registers
// globally. Registration is issued unconditionally once per startup;
// re-registering an identical shape is a no-op on the platform side.
func (s *Session) RegisterCommands() error {
	name := slugify(s.meta.TokenName)

	cmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: fmt.Sprintf("%s (%s) price bot", s.meta.TokenName, s.meta.TokenSymbol),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "price",
				Description: fmt.Sprintf("Get the current %s (%s) price", s.meta.TokenName, s.meta.TokenSymbol),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "moon",
				Description: "Indicate when moonings",
			},
		},
	}

	if _, err := s.dg.ApplicationCommandCreate(s.dg.State.User.ID, s.meta.GuildID, cmd); err != nil {
		return fmt.Errorf("registering command %q: %w", name, err)
	}

	scope := "global"
	if s.meta.GuildID != "" {
		scope = s.meta.GuildID
	}
	s.log.Info("Registered command", "command", name, "scope", scope)

	return nil
}
