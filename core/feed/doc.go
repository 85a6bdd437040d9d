// Package feed downloads and decodes marketplace XML price feeds.
//
// Two document shapes are recognized:
//
//	<vendor_catalog><offers><offer sku="...">...</offer></offers></vendor_catalog>
//	<shop_catalog><shop><offers><offer id="...">...</offer></offers></shop></shop_catalog>
//
// Any other top-level shape is rejected with a SchemaError that carries
// the root element name for diagnostics.
//
// # Validation
//
// Offer nodes without a usable SKU or with a non-positive price are
// dropped during parsing. They never reach the matcher and are not
// counted as unmatched; the parser reports them separately so runs can
// log feed quality.
//
// # Errors
//
// Fetch failures (network, timeout, non-2xx status) surface as
// *FetchError, parse failures as *SchemaError. Both are fatal for a
// reconciliation run.
package feed
