package reconcile

// Index holds in-memory lookup structures over one catalog snapshot.
type Index struct {
	// ByCode maps the record's marketplace code to the record.
	ByCode map[string]CatalogRecord

	// ByArticle maps the record's article number to the record.
	ByArticle map[string]CatalogRecord

	// All preserves the snapshot in its original order for fuzzy
	// scanning. A coarse name pre-filter could be added here later
	// without changing observable match results.
	All []CatalogRecord
}

// BuildIndex builds exact-lookup maps and keeps the full record list.
//
// Keys are taken verbatim; exact-tier matching is intentionally strict,
// so no normalization happens here. When two records share a code or
// article, the later record wins deterministically. Whether duplicate
// identifiers are a data-quality problem upstream is the importer's
// concern, not this engine's.
func BuildIndex(records []CatalogRecord) *Index {
	index := &Index{
		ByCode:    make(map[string]CatalogRecord, len(records)),
		ByArticle: make(map[string]CatalogRecord, len(records)),
		All:       records,
	}

	for _, record := range records {
		if record.Code != "" {
			index.ByCode[record.Code] = record
		}
		if record.Article != "" {
			index.ByArticle[record.Article] = record
		}
	}

	return index
}
