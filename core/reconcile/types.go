package reconcile

import (
	"context"
	"time"

	"price-manager/core/feed"

	"github.com/shopspring/decimal"
)

// CatalogRecord is the engine's view of one catalog product. The record
// is owned by the external inventory importer; this engine only reads it
// and writes back the current price.
type CatalogRecord struct {
	// ID is the opaque primary key of the product.
	ID string `json:"id"`

	// Article is the internal article number, may be empty.
	Article string `json:"article"`

	// Code is the marketplace product code, may be empty.
	Code string `json:"code"`

	// Name is the display name of the product.
	Name string `json:"name"`

	// CurrentPrice is the authoritative price last written.
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// MatchType identifies which tier resolved an offer to a record.
type MatchType string

const (
	// MatchCode is an exact match on the record's marketplace code.
	MatchCode MatchType = "code"
	// MatchArticle is an exact match on the record's article number.
	MatchArticle MatchType = "article"
	// MatchFuzzy is an approximate match on the product name.
	MatchFuzzy MatchType = "fuzzy"
)

// MatchResult pairs one feed offer with the catalog record it resolved
// to. An offer yields at most one MatchResult.
type MatchResult struct {
	// Offer is the feed line item.
	Offer feed.Offer `json:"offer"`

	// Record is the catalog product the offer resolved to.
	Record CatalogRecord `json:"record"`

	// Type is the tier that produced the match.
	Type MatchType `json:"type"`

	// Score is the similarity score (100 for exact tiers).
	Score float64 `json:"score"`
}

// Stats holds per-run counters for observability.
type Stats struct {
	// MatchedByCode counts exact matches on the marketplace code.
	MatchedByCode int `json:"matched_by_code"`

	// MatchedByArticle counts exact matches on the article number.
	MatchedByArticle int `json:"matched_by_article"`

	// MatchedByFuzzy counts accepted fuzzy name matches.
	MatchedByFuzzy int `json:"matched_by_fuzzy"`

	// Unmatched counts offers that resolved to no record.
	Unmatched int `json:"unmatched"`

	// Dropped counts feed nodes rejected before matching
	// (missing SKU or non-positive price).
	Dropped int `json:"dropped"`

	// Updated counts catalog records whose price was written.
	Updated int `json:"updated"`

	// HistoryWritten counts price history rows appended.
	HistoryWritten int `json:"history_written"`
}

// ChunkError records a non-fatal persistence failure for one chunk.
type ChunkError struct {
	// Index is the offset of the chunk's first result in the batch.
	Index int `json:"index"`

	// Message is the underlying error text.
	Message string `json:"error"`
}

// Summary is the result of one reconciliation run.
type Summary struct {
	// Success is false only for fatal failures (fetch, schema, catalog
	// snapshot). Partial chunk failures still count as success.
	Success bool `json:"success"`

	// Stats holds the per-run counters.
	Stats Stats `json:"stats"`

	// ChunkErrors enumerates non-fatal chunk persistence failures.
	ChunkErrors []ChunkError `json:"chunk_errors,omitempty"`

	// Error is the fatal error text, set only when Success is false.
	Error string `json:"error,omitempty"`
}

// UpsertRow is one price update destined for the catalog store. The
// existing article/code/name are carried through unchanged because the
// persistence layer enforces non-null constraints on upserted rows.
type UpsertRow struct {
	ID        string
	Article   string
	Code      string
	Name      string
	Price     decimal.Decimal
	UpdatedAt time.Time
}

// History sources for price changes.
const (
	SourceXML    = "xml"
	SourceOrder  = "order"
	SourceManual = "manual"
)

// HistoryEntry is one append-only price history row.
type HistoryEntry struct {
	RecordID  string
	Price     decimal.Decimal
	Source    string
	CreatedAt time.Time
}

// CatalogStore is the narrow persistence interface the engine consumes.
// Implementations live outside this package (see feature/pricing) so
// the engine can be tested with an in-memory fake.
type CatalogStore interface {
	// ListCatalog returns a snapshot of all catalog records.
	ListCatalog(ctx context.Context) ([]CatalogRecord, error)

	// UpsertPrices applies one chunk of price updates keyed by record
	// ID. Repeated calls with identical rows must be idempotent apart
	// from the updated timestamp.
	UpsertPrices(ctx context.Context, rows []UpsertRow) error

	// AppendHistory appends price history rows. Never mutates or
	// deletes existing rows.
	AppendHistory(ctx context.Context, rows []HistoryEntry) error
}

// FeedSource abstracts the feed parser so engine tests can inject
// canned documents.
type FeedSource interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Parse(data []byte) ([]feed.Offer, int, error)
}

// Archiver stores the raw feed document of a run for auditing. A nil
// Archiver disables archiving; failures are logged, never fatal.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, raw []byte) error
}
