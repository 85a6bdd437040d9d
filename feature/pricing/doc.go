// Package pricing exposes the feed reconciliation engine as an
// application feature: the gorm-backed catalog store, the feed snapshot
// archiver, an HTTP trigger endpoint and a price history endpoint.
//
// # Routes
//
//   - POST /pricing/reconcile: run one reconciliation pass against the
//     configured feed and return the run summary.
//   - GET  /pricing/history/:id: recent price changes for one product.
//
// Concurrent reconcile triggers are collapsed into a single run via
// singleflight; overlapping runs would be safe anyway (id-keyed
// upserts), but there is no point doing the same work twice.
package pricing
