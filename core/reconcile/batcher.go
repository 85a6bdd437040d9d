package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Batcher applies matched price updates to the catalog store in
// fixed-size chunks, tolerating per-chunk failures.
type Batcher struct {
	store     CatalogStore
	logger    *zap.Logger
	chunkSize int
}

// NewBatcher creates a batcher writing through the given store.
func NewBatcher(store CatalogStore, logger *zap.Logger, cfg Config) *Batcher {
	return &Batcher{
		store:     store,
		logger:    logger,
		chunkSize: cfg.BatchChunkSize(),
	}
}

// BatchResult aggregates the outcome of one Apply pass.
type BatchResult struct {
	// Updated counts records whose price upsert succeeded.
	Updated int

	// HistoryWritten counts history rows appended.
	HistoryWritten int

	// ChunkErrors enumerates failed chunks by starting index.
	ChunkErrors []ChunkError
}

// Apply splits results into chunks, preserving feed order, and applies
// each chunk as one upsert followed by a best-effort history append.
//
// A failed upsert is recorded and processing continues with the next
// chunk; one bad chunk never aborts the run. History failures do not
// roll back the prices they describe, since history is an audit trail,
// not a transactional ledger.
//
// The context is checked at chunk boundaries, so cancellation aborts
// between chunks without leaving a chunk half-applied. In that case the
// partial result is returned together with the context error.
func (b *Batcher) Apply(ctx context.Context, results []MatchResult) (BatchResult, error) {
	var out BatchResult

	for start := 0; start < len(results); start += b.chunkSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		end := start + b.chunkSize
		if end > len(results) {
			end = len(results)
		}
		chunk := results[start:end]

		now := time.Now().UTC()
		rows := make([]UpsertRow, len(chunk))
		history := make([]HistoryEntry, len(chunk))
		for i, match := range chunk {
			rows[i] = UpsertRow{
				ID:        match.Record.ID,
				Article:   match.Record.Article,
				Code:      match.Record.Code,
				Name:      match.Record.Name,
				Price:     match.Offer.Price,
				UpdatedAt: now,
			}
			history[i] = HistoryEntry{
				RecordID:  match.Record.ID,
				Price:     match.Offer.Price,
				Source:    SourceXML,
				CreatedAt: now,
			}
		}

		if err := b.store.UpsertPrices(ctx, rows); err != nil {
			b.logger.Error("Chunk upsert failed",
				zap.Int("chunk_start", start),
				zap.Int("chunk_len", len(chunk)),
				zap.Error(err),
			)
			out.ChunkErrors = append(out.ChunkErrors, ChunkError{Index: start, Message: err.Error()})
			continue
		}
		out.Updated += len(chunk)

		if err := b.store.AppendHistory(ctx, history); err != nil {
			// Prices stand; the gap is surfaced instead of swallowed.
			b.logger.Warn("History append failed",
				zap.Int("chunk_start", start),
				zap.Error(err),
			)
			out.ChunkErrors = append(out.ChunkErrors, ChunkError{Index: start, Message: "history append: " + err.Error()})
			continue
		}
		out.HistoryWritten += len(history)
	}

	return out, nil
}
