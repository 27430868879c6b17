// Package config provides engine configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all engine configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// DetectionMaxInputBytes caps the bytes scanned per text; longer input is truncated.
	DetectionMaxInputBytes int
	// DetectionCacheSize is the number of detection results kept in the LRU cache. Zero disables it.
	DetectionCacheSize int

	// DefaultContext is the detection context applied to requests without one.
	DefaultContext string
	// DefaultStrategy overrides the context profile strategy when set.
	DefaultStrategy string
	// FallbackStrategy is applied when the token store is exhausted. Empty disables it.
	FallbackStrategy string

	// MaskChar is the character used by the mask strategies.
	MaskChar string
	// FullMaskLength fixes the full mask length. Zero masks proportionally.
	FullMaskLength int

	// HashAlgorithm is the HashReplace digest (sha256, sha512, blake2b, hmac-sha256).
	HashAlgorithm string
	// HashWidth is the number of hex characters kept from the digest.
	HashWidth int
	// HashKey is the base64 encoded key for hmac-sha256. Empty derives it from the store key.
	HashKey string

	// TokenPrefix is the prefix of minted tokens.
	TokenPrefix string
	// TokenTTL is the default token lifetime.
	TokenTTL time.Duration
	// TokenStoreCapacity bounds the live records in the token store. Zero is unbounded.
	TokenStoreCapacity int
	// TokenCleanupInterval is the janitor cadence.
	TokenCleanupInterval time.Duration
	// TokenStoreAlgorithm is the AEAD protecting stored values (aes-gcm, chacha20-poly1305).
	TokenStoreAlgorithm string
	// TokenStoreKey is the base64 encoded 32-byte store key, or its KMS-wrapped form
	// when TokenStoreKeyURI is set.
	TokenStoreKey string
	// TokenStoreKeyURI is the gocloud.dev secrets keeper URI that unwraps TokenStoreKey.
	TokenStoreKeyURI string

	// DetokenizeRateLimitEnabled indicates whether detokenize calls are throttled.
	DetokenizeRateLimitEnabled bool
	// DetokenizeRateLimitPerSec is the sustained detokenize rate.
	DetokenizeRateLimitPerSec float64
	// DetokenizeRateLimitBurst is the detokenize burst size.
	DetokenizeRateLimitBurst int

	// ScrubBatchConcurrency bounds the requests scrubbed in parallel by a batch.
	ScrubBatchConcurrency int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the engine metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Detection
		DetectionMaxInputBytes: env.GetInt("DETECTION_MAX_INPUT_BYTES", 1<<20),
		DetectionCacheSize:     env.GetInt("DETECTION_CACHE_SIZE", 256),

		// Strategy selection
		DefaultContext:   env.GetString("DEFAULT_CONTEXT", "general"),
		DefaultStrategy:  env.GetString("DEFAULT_STRATEGY", ""),
		FallbackStrategy: env.GetString("FALLBACK_STRATEGY", ""),

		// Masking
		MaskChar:       env.GetString("MASK_CHAR", "*"),
		FullMaskLength: env.GetInt("FULL_MASK_LENGTH", 0),
		HashAlgorithm:  env.GetString("HASH_ALGORITHM", "sha256"),
		HashWidth:      env.GetInt("HASH_WIDTH", 16),
		HashKey:        env.GetString("HASH_KEY", ""),

		// Token store
		TokenPrefix:          env.GetString("TOKEN_PREFIX", "TKN"),
		TokenTTL:             env.GetDuration("TOKEN_TTL_MINUTES", 1440, time.Minute),
		TokenStoreCapacity:   env.GetInt("TOKEN_STORE_CAPACITY", 0),
		TokenCleanupInterval: env.GetDuration("TOKEN_CLEANUP_INTERVAL_SECONDS", 60, time.Second),
		TokenStoreAlgorithm:  env.GetString("TOKEN_STORE_ALGORITHM", "aes-gcm"),
		TokenStoreKey:        env.GetString("TOKEN_STORE_KEY", ""),
		TokenStoreKeyURI:     env.GetString("TOKEN_STORE_KEY_URI", ""),

		// Detokenize throttle
		DetokenizeRateLimitEnabled: env.GetBool("DETOKENIZE_RATE_LIMIT_ENABLED", false),
		DetokenizeRateLimitPerSec:  env.GetFloat64("DETOKENIZE_RATE_LIMIT_PER_SEC", 10.0),
		DetokenizeRateLimitBurst:   env.GetInt("DETOKENIZE_RATE_LIMIT_BURST", 20),

		// Batch
		ScrubBatchConcurrency: env.GetInt("SCRUB_BATCH_CONCURRENCY", 4),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "piiguard"),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
