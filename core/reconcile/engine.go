package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Engine wires the feed parser, matcher and batcher into one
// reconciliation pass. All collaborators are injected, so the engine
// carries no global state and runs against fakes in tests.
type Engine struct {
	source   FeedSource
	store    CatalogStore
	archiver Archiver
	matcher  *Matcher
	batcher  *Batcher
	logger   *zap.Logger
}

// NewEngine creates a reconciliation engine. The archiver may be nil,
// which disables feed snapshot archiving.
func NewEngine(source FeedSource, store CatalogStore, archiver Archiver, logger *zap.Logger, cfg Config) *Engine {
	return &Engine{
		source:   source,
		store:    store,
		archiver: archiver,
		matcher:  NewMatcher(cfg),
		batcher:  NewBatcher(store, logger, cfg),
		logger:   logger,
	}
}

// Run executes one reconciliation pass: fetch, parse, index, match,
// batch-apply. Fetch and parse failures are fatal and short-circuit
// before any catalog access; chunk persistence failures are non-fatal
// and enumerated in the summary.
//
// Two overlapping runs never observe each other's in-flight writes: the
// catalog snapshot is read once at the start, and the id-keyed upserts
// make last-writer-wins at the storage layer safe.
func (e *Engine) Run(ctx context.Context, feedURL string) Summary {
	e.logger.Info("Reconciliation started", zap.String("feed_url", feedURL))

	raw, err := e.source.Fetch(ctx, feedURL)
	if err != nil {
		e.logger.Error("Feed fetch failed", zap.Error(err))
		return Summary{Success: false, Error: err.Error()}
	}

	offers, dropped, err := e.source.Parse(raw)
	if err != nil {
		e.logger.Error("Feed parse failed", zap.Error(err))
		return Summary{Success: false, Error: err.Error()}
	}
	e.logger.Info("Feed parsed", zap.Int("offers", len(offers)), zap.Int("dropped", dropped))

	// Snapshot archiving is best-effort auditing; a failure must not
	// block the price update.
	if e.archiver != nil {
		if err := e.archiver.ArchiveSnapshot(ctx, raw); err != nil {
			e.logger.Warn("Feed snapshot archive failed", zap.Error(err))
		}
	}

	records, err := e.store.ListCatalog(ctx)
	if err != nil {
		e.logger.Error("Catalog snapshot failed", zap.Error(err))
		return Summary{Success: false, Error: err.Error()}
	}
	e.logger.Info("Catalog snapshot loaded", zap.Int("records", len(records)))

	index := BuildIndex(records)

	results, stats := e.matcher.Match(offers, index)
	stats.Dropped = dropped

	batch, err := e.batcher.Apply(ctx, results)
	stats.Updated = batch.Updated
	stats.HistoryWritten = batch.HistoryWritten
	if err != nil {
		// Cancelled between chunks; report what was applied.
		e.logger.Warn("Reconciliation cancelled", zap.Error(err), zap.Int("updated", stats.Updated))
		return Summary{Success: false, Stats: stats, ChunkErrors: batch.ChunkErrors, Error: err.Error()}
	}

	e.logger.Info("Reconciliation complete",
		zap.Int("matched_by_code", stats.MatchedByCode),
		zap.Int("matched_by_article", stats.MatchedByArticle),
		zap.Int("matched_by_fuzzy", stats.MatchedByFuzzy),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("updated", stats.Updated),
		zap.Int("chunk_errors", len(batch.ChunkErrors)),
	)

	return Summary{Success: true, Stats: stats, ChunkErrors: batch.ChunkErrors}
}
