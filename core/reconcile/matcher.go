package reconcile

import (
	"price-manager/core/feed"
	"price-manager/core/similarity"
)

// ScoreFunc computes a similarity percentage between two names.
type ScoreFunc func(a, b string) float64

// Matcher resolves feed offers to catalog records through a tiered
// exact/fuzzy strategy.
type Matcher struct {
	score     ScoreFunc
	threshold float64
}

// NewMatcher creates a matcher using the similarity scorer and the
// configured acceptance threshold.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{
		score:     similarity.Score,
		threshold: cfg.FuzzyThreshold(),
	}
}

// Match resolves each offer to zero-or-one catalog record. Tiers are
// tried in strict order:
//
//  1. exact match on the record's marketplace code
//  2. exact match on the record's article number
//  3. fuzzy name match, only when the offer carries a display name
//
// A fuzzy candidate is accepted when the best score over the full
// catalog meets the threshold; the first record achieving the maximum
// wins (stable snapshot order). Offers that resolve nowhere are counted
// in Stats.Unmatched.
//
// The fuzzy tier scans the whole catalog per offer, so the worst case
// is O(offers x catalog). That is a known scaling limit, accepted for
// the catalog sizes this service handles.
func (m *Matcher) Match(offers []feed.Offer, index *Index) ([]MatchResult, Stats) {
	results := make([]MatchResult, 0, len(offers))
	var stats Stats

	for _, offer := range offers {
		if record, ok := index.ByCode[offer.ExternalSKU]; ok {
			stats.MatchedByCode++
			results = append(results, MatchResult{Offer: offer, Record: record, Type: MatchCode, Score: 100})
			continue
		}

		if record, ok := index.ByArticle[offer.ExternalSKU]; ok {
			stats.MatchedByArticle++
			results = append(results, MatchResult{Offer: offer, Record: record, Type: MatchArticle, Score: 100})
			continue
		}

		if offer.DisplayName != "" {
			if record, score, ok := m.bestFuzzy(offer.DisplayName, index.All); ok {
				stats.MatchedByFuzzy++
				results = append(results, MatchResult{Offer: offer, Record: record, Type: MatchFuzzy, Score: score})
				continue
			}
		}

		stats.Unmatched++
	}

	return results, stats
}

// bestFuzzy scans the full catalog for the highest-scoring name match.
func (m *Matcher) bestFuzzy(name string, records []CatalogRecord) (CatalogRecord, float64, bool) {
	var best CatalogRecord
	bestScore := 0.0

	for _, record := range records {
		score := m.score(name, record.Name)
		if score > bestScore {
			bestScore = score
			best = record
		}
	}

	if bestScore < m.threshold {
		return CatalogRecord{}, 0, false
	}
	return best, bestScore, true
}
