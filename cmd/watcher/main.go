package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"olgwatch/internal/config"
	"olgwatch/internal/dal"
	"olgwatch/internal/notify"
	"olgwatch/internal/providers"
	"olgwatch/internal/service"
	"olgwatch/pkg/clock"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.New(ctx)
	if err != nil {
		slog.Error("Failed to process configuration", "error", err)
		os.Exit(1)
	}

	log := mustLogger(conf.Dev)

	store := dal.NewFileStore(conf.HashFile)
	provider := providers.NewOLGHammProvider(conf.PageURL)

	channels, err := notify.BuildChannels(ctx, conf, clock.New(), log)
	if err != nil {
		log.Error("Failed to build notification channels", "error", err)
		os.Exit(1)
	}
	if len(channels) == 0 {
		log.Warn("No notification channels configured; changes will only be logged")
	} else {
		names := make([]string, 0, len(channels))
		for _, ch := range channels {
			names = append(names, ch.Name())
		}
		log.Info("Notification channels configured", "channels", names)
	}

	notifier := notify.New(channels, log)
	watcher := service.NewWatcher(provider, store, notifier, conf.CheckInterval, log)

	log.Info("Starting OLG Hamm watcher",
		"url", conf.PageURL,
		"interval", conf.CheckInterval,
		"stateFile", conf.HashFile)

	watcher.Run(ctx)

	log.Info("Stopped watcher")
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
