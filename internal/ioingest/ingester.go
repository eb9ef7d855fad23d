// Package ioingest implements Ingester interface that loads per-station
// observation files into a store.
// This is an impure I/O package that reads files and writes to the store.
package ioingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnweather/internal/iometrics"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/gnames/gnweather/pkg/lifecycle"
	"github.com/gnames/gnweather/pkg/store"
	"golang.org/x/sync/errgroup"
)

// ingester implements the lifecycle.Ingester interface.
type ingester struct {
	cfg     *config.Config
	st      store.Store
	metrics *iometrics.Metrics

	// mu serializes runs of one ingester.
	mu sync.Mutex
}

// Option configures optional parts of the ingester.
type Option func(*ingester)

// OptMetrics records every run in the given metrics.
func OptMetrics(m *iometrics.Metrics) Option {
	return func(in *ingester) {
		in.metrics = m
	}
}

// New creates a new Ingester.
func New(
	cfg *config.Config,
	st store.Store,
	opts ...Option,
) lifecycle.Ingester {
	res := &ingester{cfg: cfg, st: st}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// item is a unit of work passed from the reader to the writer.
// An item without observation starts a new station.
type item struct {
	stationID string
	obs       *store.Observation
}

// Ingest loads all station files of dataDir in one transaction.
func (in *ingester) Ingest(ctx context.Context, dataDir string) (int, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	start := time.Now()
	slog.Info("Starting ingestion", "data_dir", dataDir)

	count, err := in.ingest(ctx, dataDir)
	duration := time.Since(start)
	in.observe(ctx, err, count, duration)

	if err != nil {
		slog.Error("Ingestion failed", "data_dir", dataDir, "error", err)
		return 0, err
	}

	slog.Info("Ingestion complete",
		"records", humanize.Comma(int64(count)),
		"started", start.Format(time.RFC3339),
		"finished", start.Add(duration).Format(time.RFC3339),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	return count, nil
}

func (in *ingester) ingest(ctx context.Context, dataDir string) (int, error) {
	if in.st == nil {
		return 0, NoStoreError()
	}

	files, err := stationFiles(dataDir)
	if err != nil {
		return 0, err
	}

	if len(files) == 0 {
		slog.Warn("No station files found", "data_dir", dataDir)
		return 0, nil
	}
	slog.Info("Found station files", "count", len(files))

	var count int
	err = in.st.Update(ctx, func(tx store.Tx) error {
		var err error
		count, err = in.load(ctx, tx, files)
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, CancelledError(ctxErr)
		}
		return 0, err
	}

	return count, nil
}

// load streams observations from the reader goroutine to the writer
// goroutine. The first error of either side cancels the other one.
func (in *ingester) load(
	ctx context.Context,
	tx store.Tx,
	files []stationFile,
) (int, error) {
	chItems := make(chan item, in.channelSize())
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chItems)
		return in.readFiles(gCtx, files, chItems)
	})

	var count int
	g.Go(func() error {
		var err error
		count, err = writeItems(gCtx, tx, chItems)
		return err
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return count, nil
}

func writeItems(
	ctx context.Context,
	tx store.Tx,
	chItems <-chan item,
) (int, error) {
	var count int
	for it := range chItems {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if it.obs == nil {
			if err := tx.EnsureStation(ctx, it.stationID); err != nil {
				return 0, err
			}
			continue
		}

		if err := tx.UpsertObservation(ctx, *it.obs); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (in *ingester) channelSize() int {
	if in.cfg != nil && in.cfg.Database.BatchSize > 0 {
		return in.cfg.Database.BatchSize
	}
	return 1_000
}

func (in *ingester) observe(
	ctx context.Context,
	err error,
	count int,
	d time.Duration,
) {
	if in.metrics == nil {
		return
	}

	result := "ok"
	switch {
	case err != nil && ctx.Err() != nil:
		result = "cancelled"
	case err != nil:
		result = "error"
	}
	in.metrics.IngestRuns.WithLabelValues(result).Inc()
	in.metrics.IngestRecords.Add(float64(count))
	in.metrics.IngestDuration.Observe(d.Seconds())
}
