package stats

import (
	"context"
	"time"

	"checkroute/internal/domain/resolution"
	"checkroute/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Worker folds freshly recorded resolutions into per-merchant widget
// usage counters. It polls the resolutions table rather than listening
// on a queue so that a restart never loses a decision.
type Worker struct {
	repo      repositories.ResolutionRepository
	pollEvery time.Duration
	batch     int
}

// NewWorker creates a stats worker with default polling settings
func NewWorker(repo repositories.ResolutionRepository) *Worker {
	return &Worker{repo: repo, pollEvery: 2 * time.Second, batch: 50}
}

// Run blocks until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	log.Info().Msg("stats worker: started")
	t := time.NewTicker(w.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stats worker: stopping")
			return
		case <-t.C:
			w.Tick(ctx)
		}
	}
}

// Tick processes one batch of unprocessed resolutions
func (w *Worker) Tick(ctx context.Context) {
	resolutions, err := w.repo.FindUnprocessed(ctx, w.batch)
	if err != nil {
		log.Error().Err(err).Msg("stats worker: fetch resolutions failed")
		return
	}
	if len(resolutions) == 0 {
		return
	}

	for _, res := range resolutions {
		if err := w.handleOne(ctx, res); err != nil {
			log.Error().Err(err).Int64("resolution_id", res.ID).Msg("stats worker: processing failed")
			// Leave the row pending so the next tick retries it.
		}
	}
}

func (w *Worker) handleOne(ctx context.Context, res *resolution.Resolution) error {
	// Unmatched descriptors count under their own bucket so merchants
	// can see how often routing comes up empty.
	kind := res.WidgetKind
	if !res.Matched {
		kind = "none"
	}

	if err := w.repo.UpsertUsage(ctx, res.MerchantID, kind, 1); err != nil {
		return err
	}

	return w.repo.MarkProcessed(ctx, res.ID, resolution.ProcessingCompleted)
}
