package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/piiguard/internal/crypto/service"
	appValidation "github.com/allisson/piiguard/internal/validation"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper opened from TOKEN_STORE_KEY_URI.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// StoreKey returns the 32-byte token store key. It is unwrapped through the KMS
// keeper when TOKEN_STORE_KEY_URI is set, decoded from TOKEN_STORE_KEY otherwise,
// and generated randomly when neither is configured.
func (c *Container) StoreKey() ([]byte, error) {
	var err error
	c.storeKeyInit.Do(func() {
		c.storeKey, err = c.initStoreKey()
		if err != nil {
			c.initErrors["storeKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["storeKey"]; exists {
		return nil, storedErr
	}
	return c.storeKey, nil
}

// HashKey returns the hmac-sha256 key for HashReplace. HASH_KEY takes precedence;
// otherwise the key is derived from the store key.
func (c *Container) HashKey() ([]byte, error) {
	var err error
	c.hashKeyInit.Do(func() {
		c.hashKey, err = c.initHashKey()
		if err != nil {
			c.initErrors["hashKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hashKey"]; exists {
		return nil, storedErr
	}
	return c.hashKey, nil
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initKMSService creates the KMS service for unwrapping the store key.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initKMSKeeper opens the keeper configured by TOKEN_STORE_KEY_URI.
func (c *Container) initKMSKeeper() (cryptoDomain.KMSKeeper, error) {
	if c.config.TokenStoreKeyURI == "" {
		return nil, fmt.Errorf("TOKEN_STORE_KEY_URI is not configured")
	}
	return c.KMSService().OpenKeeper(context.Background(), c.config.TokenStoreKeyURI)
}

// initStoreKey resolves the token store key.
func (c *Container) initStoreKey() ([]byte, error) {
	logger := c.Logger()

	if c.config.TokenStoreKeyURI != "" {
		if c.config.TokenStoreKey == "" {
			return nil, fmt.Errorf("TOKEN_STORE_KEY_URI requires a wrapped TOKEN_STORE_KEY")
		}
		keeper, err := c.KMSKeeper()
		if err != nil {
			return nil, fmt.Errorf("failed to get kms keeper for store key: %w", err)
		}
		key, err := c.KMSService().UnwrapKey(context.Background(), keeper, c.config.TokenStoreKey)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap token store key: %w", err)
		}
		logger.Info("token store key unwrapped with kms keeper")
		return key, nil
	}

	if c.config.TokenStoreKey != "" {
		err := validation.Validate(c.config.TokenStoreKey, appValidation.Base64Key(cryptoDomain.KeySize))
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_STORE_KEY: %w", appValidation.WrapValidationError(err))
		}
		key, err := base64.StdEncoding.DecodeString(c.config.TokenStoreKey)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_STORE_KEY: %w", err)
		}
		return key, nil
	}

	key, err := cryptoService.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral store key: %w", err)
	}
	logger.Warn("no token store key configured, using an ephemeral key; tokens will not survive a restart")
	return key, nil
}

// initHashKey resolves the hmac-sha256 key.
func (c *Container) initHashKey() ([]byte, error) {
	if c.config.HashKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.config.HashKey)
		if err != nil {
			return nil, fmt.Errorf("invalid HASH_KEY: %w", err)
		}
		if len(key) == 0 {
			return nil, fmt.Errorf("invalid HASH_KEY: empty key")
		}
		return key, nil
	}

	storeKey, err := c.StoreKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get store key for hash key: %w", err)
	}
	key, err := cryptoService.DeriveKey(storeKey, cryptoService.InfoHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive hash key: %w", err)
	}
	c.Logger().Debug("hash key derived from store key", slog.Int("length", len(key)))
	return key, nil
}
