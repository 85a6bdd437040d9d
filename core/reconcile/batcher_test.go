package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory CatalogStore with scriptable failures.
type fakeStore struct {
	records []CatalogRecord

	prices  map[string]decimal.Decimal
	history []HistoryEntry

	upsertCalls  [][]UpsertRow
	historyCalls [][]HistoryEntry

	listErr error
	// failUpsertCall fails the Nth UpsertPrices call (1-based); 0 disables.
	failUpsertCall int
	// failHistory fails every AppendHistory call.
	failHistory bool

	// onUpsert runs after each successful upsert, for cancellation tests.
	onUpsert func()
}

func newFakeStore(records ...CatalogRecord) *fakeStore {
	return &fakeStore{
		records: records,
		prices:  make(map[string]decimal.Decimal),
	}
}

func (s *fakeStore) ListCatalog(ctx context.Context) ([]CatalogRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *fakeStore) UpsertPrices(ctx context.Context, rows []UpsertRow) error {
	s.upsertCalls = append(s.upsertCalls, rows)
	if s.failUpsertCall == len(s.upsertCalls) {
		return fmt.Errorf("upsert rejected")
	}
	for _, row := range rows {
		s.prices[row.ID] = row.Price
	}
	if s.onUpsert != nil {
		s.onUpsert()
	}
	return nil
}

func (s *fakeStore) AppendHistory(ctx context.Context, rows []HistoryEntry) error {
	s.historyCalls = append(s.historyCalls, rows)
	if s.failHistory {
		return fmt.Errorf("history unavailable")
	}
	s.history = append(s.history, rows...)
	return nil
}

func makeResults(n int) []MatchResult {
	results := make([]MatchResult, n)
	for i := range results {
		id := fmt.Sprintf("rec-%d", i)
		results[i] = MatchResult{
			Offer:  offer(fmt.Sprintf("sku-%d", i), int64(i+1), ""),
			Record: CatalogRecord{ID: id, Code: fmt.Sprintf("sku-%d", i), Name: fmt.Sprintf("Product %d", i)},
			Type:   MatchCode,
			Score:  100,
		}
	}
	return results
}

func TestApply_FullSuccess(t *testing.T) {
	store := newFakeStore()
	b := NewBatcher(store, zap.NewNop(), Config{ChunkSize: 100})

	out, err := b.Apply(context.Background(), makeResults(250))
	require.NoError(t, err)

	assert.Equal(t, 250, out.Updated)
	assert.Equal(t, 250, out.HistoryWritten)
	assert.Empty(t, out.ChunkErrors)

	// 3 chunks: 100 + 100 + 50, feed order preserved
	require.Len(t, store.upsertCalls, 3)
	assert.Len(t, store.upsertCalls[0], 100)
	assert.Len(t, store.upsertCalls[2], 50)
	assert.Equal(t, "rec-0", store.upsertCalls[0][0].ID)
	assert.Equal(t, "rec-100", store.upsertCalls[1][0].ID)
}

func TestApply_ChunkIsolation(t *testing.T) {
	// Second chunk fails; first and third still apply.
	store := newFakeStore()
	store.failUpsertCall = 2
	b := NewBatcher(store, zap.NewNop(), Config{ChunkSize: 100})

	out, err := b.Apply(context.Background(), makeResults(250))
	require.NoError(t, err)

	assert.Equal(t, 150, out.Updated)
	assert.Equal(t, 150, out.HistoryWritten)
	require.Len(t, out.ChunkErrors, 1)
	assert.Equal(t, 100, out.ChunkErrors[0].Index)
	assert.Contains(t, out.ChunkErrors[0].Message, "upsert rejected")

	// No history rows for the failed chunk
	_, ok := store.prices["rec-150"]
	assert.False(t, ok)
	_, ok = store.prices["rec-0"]
	assert.True(t, ok)
	_, ok = store.prices["rec-249"]
	assert.True(t, ok)
}

func TestApply_HistoryFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	store.failHistory = true
	b := NewBatcher(store, zap.NewNop(), Config{ChunkSize: 10})

	out, err := b.Apply(context.Background(), makeResults(10))
	require.NoError(t, err)

	// Prices stand even though no history was written
	assert.Equal(t, 10, out.Updated)
	assert.Zero(t, out.HistoryWritten)
	require.Len(t, out.ChunkErrors, 1)
	assert.Contains(t, out.ChunkErrors[0].Message, "history append")
	assert.Len(t, store.prices, 10)
}

func TestApply_UpsertCarriesExistingFields(t *testing.T) {
	store := newFakeStore()
	b := NewBatcher(store, zap.NewNop(), Config{})

	results := []MatchResult{{
		Offer:  offer("109226388", 4990, ""),
		Record: CatalogRecord{ID: "p1", Article: "ART-1", Code: "109226388", Name: "Widget"},
		Type:   MatchCode,
		Score:  100,
	}}

	_, err := b.Apply(context.Background(), results)
	require.NoError(t, err)

	require.Len(t, store.upsertCalls, 1)
	row := store.upsertCalls[0][0]
	assert.Equal(t, "p1", row.ID)
	assert.Equal(t, "ART-1", row.Article)
	assert.Equal(t, "109226388", row.Code)
	assert.Equal(t, "Widget", row.Name)
	assert.True(t, row.Price.Equal(decimal.NewFromInt(4990)))
	assert.False(t, row.UpdatedAt.IsZero())

	require.Len(t, store.history, 1)
	assert.Equal(t, "p1", store.history[0].RecordID)
	assert.Equal(t, SourceXML, store.history[0].Source)
	assert.True(t, store.history[0].Price.Equal(decimal.NewFromInt(4990)))
}

func TestApply_CancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	store := newFakeStore()
	store.onUpsert = cancel // cancel as soon as the first chunk lands

	b := NewBatcher(store, zap.NewNop(), Config{ChunkSize: 100})

	out, err := b.Apply(ctx, makeResults(250))
	require.ErrorIs(t, err, context.Canceled)

	// Exactly one chunk applied, nothing half-done
	assert.Equal(t, 100, out.Updated)
	assert.Len(t, store.upsertCalls, 1)
}

func TestApply_Empty(t *testing.T) {
	store := newFakeStore()
	b := NewBatcher(store, zap.NewNop(), Config{})

	out, err := b.Apply(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, out.Updated)
	assert.Empty(t, store.upsertCalls)
}
