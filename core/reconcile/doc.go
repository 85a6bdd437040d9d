// Package reconcile implements the feed reconciliation engine: resolving
// marketplace price feed offers against the product catalog and applying
// the resulting price updates as an idempotent, partially-failure-tolerant
// batch operation with a persisted change history.
//
// # Architecture
//
// The engine is composed of three parts, wired by Engine:
//
//  1. Index: in-memory lookup structures (by code, by article, full list)
//     built from one catalog snapshot.
//
//  2. Matcher: resolves each offer to zero-or-one record through strict
//     tiers. Exact matches on code, then article, take priority; a fuzzy
//     name match is attempted only when no exact match exists and the
//     offer carries a display name, and is accepted only at or above the
//     configured similarity threshold.
//
//  3. Batcher: applies matched updates in fixed-size chunks. Each chunk
//     is one id-keyed upsert followed by a best-effort history append.
//     A failed chunk is recorded and skipped, never aborting the run.
//
// # Failure model
//
// Fetch and schema failures are fatal and occur before any catalog
// access, so a failed run touches nothing. Chunk persistence failures
// are non-fatal and enumerated in the summary, distinguishing "nothing
// was fetched" from "most prices updated, a few chunks failed". The
// engine performs no retries of its own; repeated runs are safe because
// the id-keyed upsert makes the whole pass idempotent.
//
// # Collaborators
//
// Persistence is consumed through the narrow CatalogStore interface and
// the feed through FeedSource, both injected via NewEngine. The gorm
// implementation lives in feature/pricing; tests use in-memory fakes.
package reconcile
