package app

import (
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
	tokenstoreUsecase "github.com/allisson/piiguard/internal/tokenstore/usecase"
)

// TokenStore returns the secure token store, wrapped with metrics when enabled.
func (c *Container) TokenStore() (tokenstoreUsecase.TokenStore, error) {
	var err error
	c.tokenStoreInit.Do(func() {
		c.tokenStore, err = c.initTokenStore()
		if err != nil {
			c.initErrors["tokenStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenStore"]; exists {
		return nil, storedErr
	}
	return c.tokenStore, nil
}

// Janitor returns the background cleaner of expired tokens. The caller starts it.
func (c *Container) Janitor() (*tokenstoreUsecase.Janitor, error) {
	var err error
	c.janitorInit.Do(func() {
		c.janitor, err = c.initJanitor()
		if err != nil {
			c.initErrors["janitor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["janitor"]; exists {
		return nil, storedErr
	}
	return c.janitor, nil
}

// initTokenStore creates the token store from the resolved store key.
func (c *Container) initTokenStore() (tokenstoreUsecase.TokenStore, error) {
	logger := c.Logger()

	storeKey, err := c.StoreKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get store key for token store: %w", err)
	}

	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.TokenStoreAlgorithm)
	if err != nil {
		logger.Warn("invalid TOKEN_STORE_ALGORITHM, using aes-gcm",
			slog.String("token_store_algorithm", c.config.TokenStoreAlgorithm))
		algorithm = cryptoDomain.AESGCM
	}

	baseStore, err := tokenstoreUsecase.NewTokenStoreFromKey(
		storeKey,
		algorithm,
		c.AEADManager(),
		tokenstoreUsecase.Config{
			DefaultTTL: c.config.TokenTTL,
			Capacity:   max(c.config.TokenStoreCapacity, 0),
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token store: %w", err)
		}
		return tokenstoreUsecase.NewTokenStoreWithMetrics(baseStore, businessMetrics), nil
	}

	return baseStore, nil
}

// initJanitor creates the janitor over the token store.
func (c *Container) initJanitor() (*tokenstoreUsecase.Janitor, error) {
	store, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for janitor: %w", err)
	}
	return tokenstoreUsecase.NewJanitor(store, c.config.TokenCleanupInterval, c.Logger()), nil
}
