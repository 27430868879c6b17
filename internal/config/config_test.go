package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 1<<20, cfg.DetectionMaxInputBytes)
				assert.Equal(t, 256, cfg.DetectionCacheSize)
				assert.Equal(t, "general", cfg.DefaultContext)
				assert.Empty(t, cfg.DefaultStrategy)
				assert.Empty(t, cfg.FallbackStrategy)
				assert.Equal(t, "*", cfg.MaskChar)
				assert.Zero(t, cfg.FullMaskLength)
				assert.Equal(t, "sha256", cfg.HashAlgorithm)
				assert.Equal(t, 16, cfg.HashWidth)
				assert.Empty(t, cfg.HashKey)
				assert.Equal(t, "TKN", cfg.TokenPrefix)
				assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
				assert.Zero(t, cfg.TokenStoreCapacity)
				assert.Equal(t, time.Minute, cfg.TokenCleanupInterval)
				assert.Equal(t, "aes-gcm", cfg.TokenStoreAlgorithm)
				assert.Empty(t, cfg.TokenStoreKey)
				assert.Empty(t, cfg.TokenStoreKeyURI)
				assert.False(t, cfg.DetokenizeRateLimitEnabled)
				assert.Equal(t, 10.0, cfg.DetokenizeRateLimitPerSec)
				assert.Equal(t, 20, cfg.DetokenizeRateLimitBurst)
				assert.Equal(t, 4, cfg.ScrubBatchConcurrency)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "piiguard", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom detection configuration",
			envVars: map[string]string{
				"DETECTION_MAX_INPUT_BYTES": "4096",
				"DETECTION_CACHE_SIZE":      "0",
				"DEFAULT_CONTEXT":           "healthcare",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4096, cfg.DetectionMaxInputBytes)
				assert.Zero(t, cfg.DetectionCacheSize)
				assert.Equal(t, "healthcare", cfg.DefaultContext)
			},
		},
		{
			name: "load custom masking configuration",
			envVars: map[string]string{
				"DEFAULT_STRATEGY":  "hash",
				"FALLBACK_STRATEGY": "full_mask",
				"MASK_CHAR":         "#",
				"FULL_MASK_LENGTH":  "8",
				"HASH_ALGORITHM":    "blake2b",
				"HASH_WIDTH":        "24",
				"HASH_KEY":          "a2V5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "hash", cfg.DefaultStrategy)
				assert.Equal(t, "full_mask", cfg.FallbackStrategy)
				assert.Equal(t, "#", cfg.MaskChar)
				assert.Equal(t, 8, cfg.FullMaskLength)
				assert.Equal(t, "blake2b", cfg.HashAlgorithm)
				assert.Equal(t, 24, cfg.HashWidth)
				assert.Equal(t, "a2V5", cfg.HashKey)
			},
		},
		{
			name: "load custom token store configuration",
			envVars: map[string]string{
				"TOKEN_PREFIX":                   "PII",
				"TOKEN_TTL_MINUTES":              "30",
				"TOKEN_STORE_CAPACITY":           "1000",
				"TOKEN_CLEANUP_INTERVAL_SECONDS": "5",
				"TOKEN_STORE_ALGORITHM":          "chacha20-poly1305",
				"TOKEN_STORE_KEY":                "c2VjcmV0",
				"TOKEN_STORE_KEY_URI":            "hashivault://piiguard",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "PII", cfg.TokenPrefix)
				assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
				assert.Equal(t, 1000, cfg.TokenStoreCapacity)
				assert.Equal(t, 5*time.Second, cfg.TokenCleanupInterval)
				assert.Equal(t, "chacha20-poly1305", cfg.TokenStoreAlgorithm)
				assert.Equal(t, "c2VjcmV0", cfg.TokenStoreKey)
				assert.Equal(t, "hashivault://piiguard", cfg.TokenStoreKeyURI)
			},
		},
		{
			name: "load custom detokenize rate limit configuration",
			envVars: map[string]string{
				"DETOKENIZE_RATE_LIMIT_ENABLED": "true",
				"DETOKENIZE_RATE_LIMIT_PER_SEC": "2.5",
				"DETOKENIZE_RATE_LIMIT_BURST":   "3",
				"SCRUB_BATCH_CONCURRENCY":       "16",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DetokenizeRateLimitEnabled)
				assert.Equal(t, 2.5, cfg.DetokenizeRateLimitPerSec)
				assert.Equal(t, 3, cfg.DetokenizeRateLimitBurst)
				assert.Equal(t, 16, cfg.ScrubBatchConcurrency)
			},
		},
		{
			name: "load custom log level and metrics",
			envVars: map[string]string{
				"LOG_LEVEL":         "debug",
				"METRICS_ENABLED":   "false",
				"METRICS_NAMESPACE": "scrubber",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "scrubber", cfg.MetricsNamespace)
			},
		},
		{
			name: "invalid numbers fall back to defaults",
			envVars: map[string]string{
				"DETECTION_MAX_INPUT_BYTES": "lots",
				"HASH_WIDTH":                "wide",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1<<20, cfg.DetectionMaxInputBytes)
				assert.Equal(t, 16, cfg.HashWidth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			// Load configuration
			cfg := Load()

			// Validate
			tt.validate(t, cfg)
		})
	}
}
