package app

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
	scrubUsecase "github.com/allisson/piiguard/internal/scrub/usecase"
)

// AuditSink returns the audit sink. Events are written to the engine logger.
func (c *Container) AuditSink() scrubDomain.AuditSink {
	c.auditSinkInit.Do(func() {
		c.auditSink = scrubUsecase.NewLogAuditSink(c.Logger())
	})
	return c.auditSink
}

// Coordinator returns the scrub coordinator, wrapped with metrics when enabled.
func (c *Container) Coordinator() (scrubUsecase.Coordinator, error) {
	var err error
	c.coordinatorInit.Do(func() {
		c.coordinator, err = c.initCoordinator()
		if err != nil {
			c.initErrors["coordinator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["coordinator"]; exists {
		return nil, storedErr
	}
	return c.coordinator, nil
}

// optionalStrategy parses a configured strategy name. Empty or invalid names
// yield nil; invalid ones are logged.
func (c *Container) optionalStrategy(key, name string, defaults piiDomain.StrategyDefaults) piiDomain.Strategy {
	if name == "" {
		return nil
	}
	strategy, err := piiDomain.ParseStrategy(name, defaults)
	if err != nil {
		c.Logger().Warn("ignoring invalid strategy", slog.String("key", key), slog.String("value", name))
		return nil
	}
	return strategy
}

// initCoordinator creates the scrub coordinator with all its dependencies.
func (c *Container) initCoordinator() (scrubUsecase.Coordinator, error) {
	detector, err := c.DetectionEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get detection engine for coordinator: %w", err)
	}

	masker, err := c.MaskingEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get masking engine for coordinator: %w", err)
	}

	store, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for coordinator: %w", err)
	}

	defaults := c.StrategyDefaults()
	cfg := scrubUsecase.Config{
		DefaultContext:   c.DefaultContext(),
		StrategyDefaults: defaults,
		Fallback:         c.optionalStrategy("FALLBACK_STRATEGY", c.config.FallbackStrategy, defaults),
	}
	if strategy := c.optionalStrategy("DEFAULT_STRATEGY", c.config.DefaultStrategy, defaults); strategy != nil {
		cfg.DefaultStrategy = strategy.Kind()
	}
	if cfg.Fallback != nil && cfg.Fallback.Kind() == piiDomain.StrategyTokenize {
		c.Logger().Warn("FALLBACK_STRATEGY cannot be tokenize, fallback disabled")
		cfg.Fallback = nil
	}

	var limiter *rate.Limiter
	if c.config.DetokenizeRateLimitEnabled {
		limiter = rate.NewLimiter(rate.Limit(c.config.DetokenizeRateLimitPerSec), c.config.DetokenizeRateLimitBurst)
	}

	baseCoordinator := scrubUsecase.NewCoordinator(
		detector,
		masker,
		c.Catalog(),
		store,
		c.AuditSink(),
		limiter,
		cfg,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for coordinator: %w", err)
		}
		return scrubUsecase.NewCoordinatorWithMetrics(baseCoordinator, businessMetrics), nil
	}

	return baseCoordinator, nil
}
