package app

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
	"github.com/allisson/piiguard/internal/pii/catalog"
	"github.com/allisson/piiguard/internal/pii/detection"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	"github.com/allisson/piiguard/internal/pii/masking"
)

// Catalog returns the built-in pattern catalog.
func (c *Container) Catalog() *catalog.Catalog {
	c.catalogInit.Do(func() {
		c.catalog = catalog.Default(c.Logger())
	})
	return c.catalog
}

// DetectionCache returns the detection result cache, or nil when DETECTION_CACHE_SIZE is zero.
func (c *Container) DetectionCache() (*detection.Cache, error) {
	var err error
	c.detectionCacheInit.Do(func() {
		c.detectionCache, err = detection.NewCache(c.config.DetectionCacheSize)
		if err != nil {
			err = fmt.Errorf("failed to create detection cache: %w", err)
			c.initErrors["detectionCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["detectionCache"]; exists {
		return nil, storedErr
	}
	return c.detectionCache, nil
}

// DetectionEngine returns the detection engine.
func (c *Container) DetectionEngine() (*detection.Engine, error) {
	var err error
	c.detectionEngineInit.Do(func() {
		c.detectionEngine, err = c.initDetectionEngine()
		if err != nil {
			c.initErrors["detectionEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["detectionEngine"]; exists {
		return nil, storedErr
	}
	return c.detectionEngine, nil
}

// MaskingEngine returns the masking engine backed by the token store.
func (c *Container) MaskingEngine() (*masking.Engine, error) {
	var err error
	c.maskingEngineInit.Do(func() {
		c.maskingEngine, err = c.initMaskingEngine()
		if err != nil {
			c.initErrors["maskingEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["maskingEngine"]; exists {
		return nil, storedErr
	}
	return c.maskingEngine, nil
}

// StrategyDefaults returns the strategy parameters from configuration. Invalid
// values fall back to package defaults with a warning.
func (c *Container) StrategyDefaults() piiDomain.StrategyDefaults {
	logger := c.Logger()

	maskChar := piiDomain.DefaultMaskChar
	if c.config.MaskChar != "" {
		r, _ := utf8.DecodeRuneInString(c.config.MaskChar)
		if r == utf8.RuneError {
			logger.Warn("invalid MASK_CHAR, using default")
		} else {
			maskChar = r
		}
	}

	algorithm := piiDomain.HashAlgorithm(c.config.HashAlgorithm)
	switch algorithm {
	case piiDomain.HashSHA256, piiDomain.HashSHA512, piiDomain.HashBLAKE2b, piiDomain.HashHMACSHA256:
	default:
		logger.Warn("invalid HASH_ALGORITHM, using sha256", slog.String("hash_algorithm", c.config.HashAlgorithm))
		algorithm = piiDomain.HashSHA256
	}

	return piiDomain.StrategyDefaults{
		MaskChar:       maskChar,
		FullMaskLength: max(c.config.FullMaskLength, 0),
		HashAlgorithm:  algorithm,
		HashWidth:      c.config.HashWidth,
		TokenPrefix:    c.config.TokenPrefix,
		TokenTTL:       c.config.TokenTTL,
	}
}

// DefaultContext returns the configured default detection context, or general
// when DEFAULT_CONTEXT is unknown.
func (c *Container) DefaultContext() piiDomain.Context {
	ctx, err := piiDomain.ParseContext(c.config.DefaultContext)
	if err != nil {
		c.Logger().Warn("invalid DEFAULT_CONTEXT, using general",
			slog.String("default_context", c.config.DefaultContext))
		return piiDomain.ContextGeneral
	}
	return ctx
}

// initDetectionEngine creates the detection engine over the catalog and cache.
func (c *Container) initDetectionEngine() (*detection.Engine, error) {
	cache, err := c.DetectionCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get detection cache for detection engine: %w", err)
	}
	return detection.NewEngine(c.Catalog(), detection.Config{MaxInputLength: c.config.DetectionMaxInputBytes}, cache), nil
}

// initMaskingEngine creates the masking engine with the token store and hash key.
func (c *Container) initMaskingEngine() (*masking.Engine, error) {
	store, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for masking engine: %w", err)
	}

	hashKey, err := c.HashKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get hash key for masking engine: %w", err)
	}

	engine := masking.NewEngine(c.Catalog(), store, nil, masking.Config{HashKey: hashKey})

	if len(hashKey) < cryptoDomain.KeySize {
		c.Logger().Warn("HASH_KEY is shorter than 32 bytes", slog.Int("length", len(hashKey)))
	}
	return engine, nil
}
