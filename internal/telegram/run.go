// Package telegram runs the bot: transport setup, update routing, and
// the handler set mapping Telegram updates onto the service pipelines.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/yeabjr51-ship-it/eauf/internal/channel"
	"github.com/yeabjr51-ship-it/eauf/internal/config"
	"github.com/yeabjr51-ship-it/eauf/internal/logger"
	"github.com/yeabjr51-ship-it/eauf/internal/profanity"
	"github.com/yeabjr51-ship-it/eauf/internal/ratelimit"
	"github.com/yeabjr51-ship-it/eauf/internal/render"
	"github.com/yeabjr51-ship-it/eauf/internal/service"
	"github.com/yeabjr51-ship-it/eauf/internal/session"
	"github.com/yeabjr51-ship-it/eauf/internal/storage"
)

// Run composes and runs the bot until the provided context is done.
func Run(ctx context.Context, cfg *config.Config, db *sqlx.DB) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return fmt.Errorf("telegram: nil config provided")
	}

	poller := buildPoller(cfg)

	buildStart := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: buildHTTPClient(),
		OnError: func(err error, c tele.Context) {
			logger.Error(buildContext(c), "tg", "handler.error",
				slog.String("err", err.Error()),
			)
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.Info("webhook mode",
			slog.String("event", "mode"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	default:
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
		if err := deleteWebhook(cfg.Telegram.Token); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("err", err.Error()),
			)
		}
	}

	confessions := storage.NewConfessionStore(db)
	comments := storage.NewCommentStore(db)

	renderer := render.New(cfg.Bot.ConfessionName, bot.Me.Username, cfg.Bot.PageSize)
	publisher := channel.New(bot, cfg.Bot.ChannelID, renderer, confessions, comments)

	limiter := ratelimit.New(map[ratelimit.Kind]time.Duration{
		ratelimit.KindConfession: time.Duration(cfg.Bot.ConfessionCooldownSeconds) * time.Second,
		ratelimit.KindComment:    time.Duration(cfg.Bot.CommentCooldownSeconds) * time.Second,
	})
	filter := profanity.New(cfg.Bot.BadWords)
	sessions := session.NewStore()

	handlers := NewBot(
		service.NewConfessions(confessions, limiter, filter, publisher),
		service.NewComments(comments, sessions, limiter, filter, publisher),
		service.NewPages(confessions, comments, renderer),
		sessions,
		cfg.Bot.ConfessionName,
		cfg.Bot.ChannelLink,
	)

	reg := NewRegistry()
	reg.RegisterCommand("/start", Command{Handler: handlers.onStart, Description: "Start the bot"})
	reg.RegisterCommand("/help", Command{Handler: handlers.onHelp, Description: "How to use the bot"})
	reg.RegisterCallback(render.PageCallback, handlers.onPageCallback)

	if cfg.Bot.FloodIntervalMS > 0 {
		bot.Use(floodMiddleware(time.Duration(cfg.Bot.FloodIntervalMS) * time.Millisecond))
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return recoverMiddleware(loggerMiddleware(h))
	}

	for name, cmd := range reg.Commands() {
		bot.Handle(name, wrap(cmd.Handler))
	}
	bot.Handle(tele.OnText, wrap(handlers.onText))
	bot.Handle(tele.OnMedia, wrap(handlers.onMedia))
	bot.Handle(tele.OnCallback, wrap(func(c tele.Context) error {
		key, _ := parseCallback(c.Callback())
		return reg.Callback(key)(c)
	}))

	if err := bot.SetCommands(reg.MenuCommands()); err != nil {
		logger.TG.Warn("failed to set command menu",
			slog.String("event", "set_commands"),
			slog.String("err", err.Error()),
		)
	}

	logger.TG.Info("bot started",
		slog.String("event", "start"),
		slog.String("username", bot.Me.Username),
		slog.Bool("channel_configured", publisher.Configured()),
	)

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
		return nil
	}
}

// deleteWebhook clears a leftover webhook registration so long polling
// can receive updates.
func deleteWebhook(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("drop_pending_updates=false"))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
