package reconcile

// DefaultThreshold is the fuzzy-match acceptance threshold (percent).
const DefaultThreshold = 80

// DefaultChunkSize is the number of matched updates applied per upsert.
const DefaultChunkSize = 100

// Config holds tuning knobs for the reconciliation engine.
type Config struct {
	// Threshold is the minimum similarity score (0-100) for a fuzzy
	// match to be accepted.
	Threshold float64 `mapstructure:"threshold" default:"80"`
	// ChunkSize is the number of matched updates applied per upsert.
	ChunkSize int `mapstructure:"chunk_size" default:"100"`
}

// FuzzyThreshold returns the configured threshold, falling back to the
// default for zero or negative values.
func (c Config) FuzzyThreshold() float64 {
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

// BatchChunkSize returns the configured chunk size, falling back to the
// default for zero or negative values.
func (c Config) BatchChunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}
