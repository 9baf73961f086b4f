package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tokenfyi/serumbot/internal/config"
)

// Bot orchestrates every configured session: it authenticates them,
// registers their commands, schedules their periodic tasks against the one
// shared price source, and manages shutdown.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	sessions  []*Session
	scheduler *Scheduler
}

// NewBot builds all sessions from configuration. A session that fails to
// authenticate is logged and skipped so one bad token never prevents the
// other bots from starting; failed command registration leaves that session
// running without command capability. NewBot fails only when no session at
// all could be started.
func NewBot(logger *slog.Logger, cfg *config.Config, price PriceSource) (*Bot, error) {
	log := logger.With("component", "orchestrator")

	scheduler, err := NewScheduler(logger)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		logger:    log,
		cfg:       cfg,
		scheduler: scheduler,
	}

	for _, meta := range cfg.Bots {
		sess, err := NewSession(meta, price, logger)
		if err != nil {
			log.Error("Skipping bot, session could not be started",
				"token_name", meta.TokenName,
				"error", err)
			continue
		}

		if err := sess.RegisterCommands(); err != nil {
			sess.log.Error("Command registration failed, continuing without commands", "error", err)
		}

		slug := slugify(meta.TokenName)
		if err := scheduler.AddTask("presence:"+slug, cfg.PresenceInterval, newPresenceTask(sess)); err != nil {
			sess.log.Error("Failed to schedule presence task", "error", err)
		}
		if err := scheduler.AddTask("rename:"+slug, cfg.RenameInterval, newRenameTask(sess)); err != nil {
			sess.log.Error("Failed to schedule rename task", "error", err)
		}

		b.sessions = append(b.sessions, sess)
	}

	if len(b.sessions) == 0 {
		return nil, errors.New("no bot session could be started")
	}

	log.Info("Sessions ready", "count", len(b.sessions), "configured", len(cfg.Bots))
	return b, nil
}

// Run starts the scheduler and blocks until the context is cancelled, then
// shuts the scheduler down and closes every session. Inbound interactions
// are event-driven on each session's own gateway connection and need no
// loop here.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	err := g.Wait()

	for _, sess := range b.sessions {
		if closeErr := sess.Close(); closeErr != nil {
			sess.log.Error("Error closing session", "error", closeErr)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
