package main

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/carbothq/carbot/internal/config"
	"github.com/carbothq/carbot/internal/discord"
	"github.com/carbothq/carbot/internal/line"
	"github.com/carbothq/carbot/internal/logger"
	"github.com/carbothq/carbot/internal/relay"
)

func runServe(configPath string) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() (config.Config, error) {
				return config.Load(configPath)
			},
			func(cfg config.Config) *slog.Logger {
				return logger.New(cfg.Log)
			},
			func(cfg config.Config, log *slog.Logger) (*line.Client, error) {
				return line.NewClient(log, cfg.Line.ChannelSecret, cfg.Line.Token)
			},
			func(cfg config.Config, log *slog.Logger) (*discord.Bot, error) {
				return discord.New(log, cfg.Discord.Token, cfg.Discord.FriendBotID, cfg.Relay.ChannelName)
			},
			func(cfg config.Config, log *slog.Logger, client *line.Client) *relay.Forwarder {
				return relay.NewForwarder(log, client, cfg.Line.TargetGroupID, cfg.Relay.BatchSize)
			},
			func(cfg config.Config, log *slog.Logger, bot *discord.Bot) *relay.Gatherer {
				return relay.NewGatherer(log, bot, bot, bot, cfg.Relay.ChannelName)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, bot *discord.Bot, fwd *relay.Forwarder, g *relay.Gatherer, log *slog.Logger) {
			bot.Bind(fwd, g)
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					log.Info("starting relay")
					// Event handling outlives the startup context.
					return bot.Open(context.Background())
				},
				OnStop: func(context.Context) error {
					return bot.Close()
				},
			})
		}),
	)

	app.Run()
	return nil
}
