// Package similarity provides fuzzy string scoring for product name matching.
//
// The marketplace feed often carries free-text model names that differ
// slightly from the catalog's product names (extra punctuation, casing,
// suffixes like "Pro"). The scorer normalizes both sides and converts
// their Levenshtein distance into a percentage, which the matcher
// compares against the configured acceptance threshold.
//
// Scoring is a pure function with no I/O, which makes it cheap to test
// exhaustively and safe to call from tight loops.
package similarity
