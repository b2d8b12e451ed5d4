// Package watcher drives the fetch → extract → compare → notify cycle on
// a fixed interval.
package watcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cruisewatch/config"
	"cruisewatch/internal/ncl/fetch"
	"cruisewatch/internal/ncl/htmlprice"
	"cruisewatch/internal/ncl/snapshot"
	"cruisewatch/pkg/price"
)

// Notifier delivers one alert message.
type Notifier interface {
	Send(text string) error
}

// Watcher runs the monitoring loop. One cycle failing never stops it;
// the failure is logged and the next tick retries from scratch.
type Watcher struct {
	cfg      config.WatchConfig
	fetcher  *fetch.Fetcher
	store    *snapshot.Store
	notifier Notifier
	logger   *zap.Logger
}

func New(cfg config.WatchConfig, f *fetch.Fetcher, st *snapshot.Store, n Notifier, logger *zap.Logger) *Watcher {
	return &Watcher{
		cfg:      cfg,
		fetcher:  f,
		store:    st,
		notifier: n,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. The interval wait starts after a
// cycle completes, so a slow fetch stretches the gap rather than
// overlapping the next check.
func (w *Watcher) Run(ctx context.Context) {
	interval := time.Duration(w.cfg.IntervalMin) * time.Minute

	for {
		if err := w.RunCycle(ctx); err != nil {
			w.logger.Error("price check failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// RunCycle performs one full check: fetch the page, extract the figures,
// compare against the stored quote, and on a change notify then persist.
// Exported so tests can drive single cycles without the interval wait.
func (w *Watcher) RunCycle(ctx context.Context) error {
	body, err := w.fetcher.Fetch(ctx, w.cfg.TargetURL)
	if err != nil {
		return err
	}

	current, err := htmlprice.Extract(body)
	if err != nil {
		return err
	}

	w.logger.Info("price check",
		zap.String("base", price.FormatUSD(current.BaseFare, 0)),
		zap.String("taxes", price.FormatUSD(current.TaxesFees, 2)),
		zap.String("total", price.FormatUSD(current.Total(), 2)))

	previous := w.store.Load()
	if !price.Changed(current, previous) {
		return nil
	}

	if err := w.notifier.Send(w.message(current)); err != nil {
		// Not saving here means the next cycle sees the same change and
		// retries the notification.
		return err
	}
	w.store.Save(current)
	return nil
}

func (w *Watcher) message(q price.Quote) string {
	return fmt.Sprintf("%s price update🚢 \n\nBase fare: %s\nTaxes/fees: %s\nTotal: %s\n\n%s",
		w.cfg.Label,
		price.FormatUSD(q.BaseFare, 0),
		price.FormatUSD(q.TaxesFees, 2),
		price.FormatUSD(q.Total(), 2),
		w.cfg.TargetURL)
}
