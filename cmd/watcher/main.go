package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"cruisewatch/config"
	"cruisewatch/internal/ncl/fetch"
	"cruisewatch/internal/ncl/notify"
	"cruisewatch/internal/ncl/snapshot"
	"cruisewatch/internal/ncl/watcher"
	"cruisewatch/logger"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// Missing credentials are the one fatal condition; everything after
	// this point is retried cycle by cycle.
	token, chatID := cfg.Telegram.Resolve(cfg.Environment)
	if token == "" || chatID == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")
	}

	notifier, err := notify.NewTelegram(token, chatID, tgbotapi.APIEndpoint)
	if err != nil {
		log.Fatal("failed to init telegram notifier", zap.Error(err))
	}

	fetcher := fetch.New(cfg.Watch.FetchTimeout, cfg.Watch.FetchRetries)
	store := snapshot.New(cfg.Watch.SnapshotFile, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("starting price watcher",
		zap.String("url", cfg.Watch.TargetURL),
		zap.Int("interval_min", cfg.Watch.IntervalMin),
		zap.String("snapshot_file", cfg.Watch.SnapshotFile))

	watcher.New(cfg.Watch, fetcher, store, notifier, log).Run(ctx)

	log.Info("watcher stopped")
}
