package model

import "time"

// Config holds all tunable settings for the Q&A assistant.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	OCR        OCRConfig        `yaml:"ocr" mapstructure:"ocr"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
}

// ExtractionConfig controls local keyword extraction and hybrid routing.
type ExtractionConfig struct {
	// MaxKeywords caps a single local extraction pass.
	MaxKeywords int `yaml:"max_keywords" mapstructure:"max_keywords"`

	// ConfidenceThreshold is the minimum local confidence that avoids an
	// external-model call (0..1).
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
}

// SearchConfig controls the retrieval scorer.
type SearchConfig struct {
	MaxResults    int     `yaml:"max_results" mapstructure:"max_results"`
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"`
}

// LLMConfig configures the external keyword-extraction capability.
type LLMConfig struct {
	// APIKey for the OpenAI-compatible endpoint. Usually taken from the
	// OPENAI_API_KEY environment variable.
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the endpoint for OpenAI-compatible local servers.
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	Model string `yaml:"model" mapstructure:"model"`

	// Timeout bounds a single request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RequestsPerSecond rate-limits outgoing API calls.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// OCRConfig configures the image-to-text capability and its result cache.
type OCRConfig struct {
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// CacheTTL bounds how long an OCR result is reused for an identical
	// image; CacheCleanup is the eviction sweep interval.
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheCleanup time.Duration `yaml:"cache_cleanup" mapstructure:"cache_cleanup"`
}

// BatchConfig controls concurrent batch extraction.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// StoreConfig locates the record store.
type StoreConfig struct {
	// Path to the JSON record file.
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns the built-in defaults. They match the reference
// deployment: local-first extraction, three results, 15% score floor.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			MaxKeywords:         20,
			ConfidenceThreshold: 0.7,
		},
		Search: SearchConfig{
			MaxResults:    3,
			MinSimilarity: 0.15,
		},
		LLM: LLMConfig{
			Model:             "gpt-4o-mini",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
		},
		OCR: OCRConfig{
			Model:        "gpt-4o-mini",
			Timeout:      60 * time.Second,
			CacheTTL:     15 * time.Minute,
			CacheCleanup: 5 * time.Minute,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Store: StoreConfig{
			Path: "data/qna-database.json",
		},
	}
}
