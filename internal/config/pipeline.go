package config

import "time"

type Pipeline struct {
	MinDiscount   int     `env:"MIN_DISCOUNT" envDefault:"15"`
	MinRating     float64 `env:"MIN_RATING" envDefault:"4.0"`
	MaxDailyDeals int     `env:"MAX_DAILY_DEALS" envDefault:"15"`

	CycleInterval        time.Duration `env:"CYCLE_INTERVAL" envDefault:"1m"`
	CycleTimeout         time.Duration `env:"CYCLE_TIMEOUT" envDefault:"10m"`
	QueriesPerCycle      int           `env:"QUERIES_PER_CYCLE" envDefault:"3"`
	MaxConcurrentFetches int           `env:"MAX_CONCURRENT_FETCHES" envDefault:"2"`

	Keywords         []string `env:"KEYWORDS" envSeparator:","`
	NegativeKeywords []string `env:"NEGATIVE_KEYWORDS" envSeparator:","`
	BrandTokens      []string `env:"BRAND_TOKENS" envSeparator:","`

	// SamplerSeed fixes keyword sampling for reproducible runs, 0 seeds
	// from the clock.
	SamplerSeed int64 `env:"SAMPLER_SEED" envDefault:"0"`
}
