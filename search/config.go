package search

// Default tunables for the hybrid ranker.
const (
	// DefaultBaseThreshold caps the adaptive semantic acceptance threshold.
	DefaultBaseThreshold = 0.6

	// DefaultMinMatchRatio is the fraction of significant query words that
	// must match exactly for an article to qualify on match count alone.
	DefaultMinMatchRatio = 0.5

	// DefaultBoostWeight scales the keyword boost applied to semantic scores.
	DefaultBoostWeight = 0.1

	// keywordScoreFloor is the raw keyword score at which an article
	// qualifies regardless of exact match count.
	keywordScoreFloor = 0.4
)

// Config holds the ranking tunables. The zero value is not usable; construct
// with DefaultRankConfig and adjust.
type Config struct {
	// BaseThreshold is the ceiling for the adaptive semantic threshold,
	// in [0,1].
	BaseThreshold float32

	// MinMatchRatio is the minimum fraction of significant query words that
	// must match exactly for keyword qualification, in [0,1].
	MinMatchRatio float64

	// BoostWeight scales how strongly a keyword match boosts an article's
	// semantic score, in [0,1].
	BoostWeight float64
}

// DefaultRankConfig returns the default ranking configuration.
func DefaultRankConfig() Config {
	return Config{
		BaseThreshold: DefaultBaseThreshold,
		MinMatchRatio: DefaultMinMatchRatio,
		BoostWeight:   DefaultBoostWeight,
	}
}

// clamp normalizes out-of-range values into [0,1] rather than erroring, so a
// bad tunable degrades ranking quality instead of breaking search.
func (c Config) clamp() Config {
	c.BaseThreshold = clamp32(c.BaseThreshold)
	c.MinMatchRatio = clamp64(c.MinMatchRatio)
	c.BoostWeight = clamp64(c.BoostWeight)
	return c
}

func clamp32(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp64(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// adaptiveThreshold picks the semantic acceptance threshold for a query with
// the given number of significant words. Short queries produce less
// discriminative embeddings, so they get looser acceptance; the caller's base
// threshold is always an upper bound.
func (c Config) adaptiveThreshold(significantWords int) float32 {
	var bucket float32
	switch {
	case significantWords == 0:
		bucket = 0.25
	case significantWords <= 2:
		bucket = 0.30
	case significantWords <= 5:
		bucket = 0.45
	default:
		bucket = 0.60
	}
	if bucket > c.BaseThreshold {
		return c.BaseThreshold
	}
	return bucket
}
