package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/piiguard/internal/crypto/service"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
	tokenstoreDomain "github.com/allisson/piiguard/internal/tokenstore/domain"
	tokenstoreService "github.com/allisson/piiguard/internal/tokenstore/service"
)

// DefaultMaxGenerateAttempts bounds how many candidates StoreOrReuse asks for.
const DefaultMaxGenerateAttempts = 8

// Config holds token store configuration.
type Config struct {
	DefaultTTL          time.Duration
	Capacity            int // zero means unbounded
	MaxGenerateAttempts int
	Clock               func() time.Time
}

// memoryTokenStore is the in-memory TokenStore. A single RWMutex guards all
// state: lookups share the read lock, anything that mutates takes the write lock.
type memoryTokenStore struct {
	mu         sync.RWMutex
	records    map[string]*tokenstoreDomain.TokenRecord
	index      map[string]string
	tombstones map[string]struct{}

	cipher cryptoService.AEAD
	hasher tokenstoreService.ValueHasher
	config Config
	logger *slog.Logger
}

// NewTokenStore creates an in-memory token store sealing values with cipher and
// indexing them with hasher.
func NewTokenStore(
	cipher cryptoService.AEAD,
	hasher tokenstoreService.ValueHasher,
	config Config,
	logger *slog.Logger,
) TokenStore {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = piiDomain.DefaultTokenTTL
	}
	if config.MaxGenerateAttempts <= 0 {
		config.MaxGenerateAttempts = DefaultMaxGenerateAttempts
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &memoryTokenStore{
		records:    make(map[string]*tokenstoreDomain.TokenRecord),
		index:      make(map[string]string),
		tombstones: make(map[string]struct{}),
		cipher:     cipher,
		hasher:     hasher,
		config:     config,
		logger:     logger,
	}
}

// NewTokenStoreFromKey derives the encryption and index keys from storeKey with
// HKDF and builds a store using the given algorithm. Derived key buffers are zeroed
// before returning.
func NewTokenStoreFromKey(
	storeKey []byte,
	alg cryptoDomain.Algorithm,
	aeadManager cryptoService.AEADManager,
	config Config,
	logger *slog.Logger,
) (TokenStore, error) {
	encKey, err := cryptoService.DeriveKey(storeKey, cryptoService.InfoEncryptionKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(encKey)

	indexKey, err := cryptoService.DeriveKey(storeKey, cryptoService.InfoIndexKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(indexKey)

	cipher, err := aeadManager.CreateCipher(encKey, alg)
	if err != nil {
		return nil, err
	}

	return NewTokenStore(cipher, tokenstoreService.NewHMACValueHasher(indexKey), config, logger), nil
}

func (s *memoryTokenStore) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.config.DefaultTTL
	}
	return ttl
}

// Store encrypts value under an explicit token.
func (s *memoryTokenStore) Store(
	ctx context.Context,
	token string,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
) (*tokenstoreDomain.StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, tokenstoreDomain.ErrInvalidToken
	}

	valueHash := s.hasher.Hash([]byte(value))

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Clock()
	if err := s.checkAvailableLocked(token, now); err != nil {
		return nil, err
	}
	if err := s.ensureCapacityLocked(now); err != nil {
		return nil, err
	}

	record, err := s.insertLocked(token, value, valueHash, category, ttl, now)
	if err != nil {
		return nil, err
	}
	return resultFor(record, false), nil
}

// StoreOrReuse returns the indexed live token or stores value under a new one.
func (s *memoryTokenStore) StoreOrReuse(
	ctx context.Context,
	value string,
	category piiDomain.Category,
	ttl time.Duration,
	generate GenerateFunc,
) (*tokenstoreDomain.StoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	valueHash := s.hasher.Hash([]byte(value))

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Clock()
	if token, ok := s.index[valueHash]; ok {
		record, live := s.records[token]
		if live && !record.IsExpired(now) {
			return resultFor(record, true), nil
		}
		if live {
			s.deleteLocked(record)
		}
	}

	if err := s.ensureCapacityLocked(now); err != nil {
		return nil, err
	}

	var token string
	for attempt := 0; ; attempt++ {
		if attempt == s.config.MaxGenerateAttempts {
			return nil, tokenstoreDomain.ErrTokenGenerationFailed
		}
		candidate, err := generate()
		if err != nil {
			return nil, err
		}
		if candidate == "" {
			continue
		}
		if s.checkAvailableLocked(candidate, now) == nil {
			token = candidate
			break
		}
	}

	record, err := s.insertLocked(token, value, valueHash, category, ttl, now)
	if err != nil {
		return nil, err
	}
	return resultFor(record, false), nil
}

// Retrieve decrypts the value behind token. Expired records are purged on access.
func (s *memoryTokenStore) Retrieve(ctx context.Context, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	record, ok := s.records[token]
	if !ok {
		s.mu.RUnlock()
		return "", tokenstoreDomain.ErrTokenNotFound
	}
	if record.IsExpired(s.config.Clock()) {
		s.mu.RUnlock()
		s.purgeIfExpired(token)
		return "", tokenstoreDomain.ErrTokenExpired
	}
	plaintext, err := s.cipher.Decrypt(record.Ciphertext, record.Nonce, []byte(record.Token))
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}

	value := string(plaintext)
	cryptoDomain.Zero(plaintext)
	return value, nil
}

// FindTokenFor returns the live token indexed for value.
func (s *memoryTokenStore) FindTokenFor(ctx context.Context, value string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	valueHash := s.hasher.Hash([]byte(value))

	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.index[valueHash]
	if !ok {
		return "", tokenstoreDomain.ErrTokenNotFound
	}
	record, ok := s.records[token]
	if !ok {
		return "", tokenstoreDomain.ErrTokenNotFound
	}
	if record.IsExpired(s.config.Clock()) {
		return "", tokenstoreDomain.ErrTokenExpired
	}
	return token, nil
}

// Erase removes token and tombstones it. Erasing an already erased token is a no-op.
func (s *memoryTokenStore) Erase(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, erased := s.tombstones[token]; erased {
		return nil
	}
	record, ok := s.records[token]
	if !ok {
		return tokenstoreDomain.ErrTokenNotFound
	}

	s.deleteLocked(record)
	s.tombstones[token] = struct{}{}
	return nil
}

// EraseValue erases every record holding value, live or expired.
func (s *memoryTokenStore) EraseValue(ctx context.Context, value string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	valueHash := s.hasher.Hash([]byte(value))

	s.mu.Lock()
	defer s.mu.Unlock()

	erased := 0
	for token, record := range s.records {
		if record.ValueHash != valueHash {
			continue
		}
		s.deleteLocked(record)
		s.tombstones[token] = struct{}{}
		erased++
	}
	delete(s.index, valueHash)
	return erased, nil
}

// CleanupExpired purges every expired record.
func (s *memoryTokenStore) CleanupExpired(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.purgeExpiredLocked(s.config.Clock()), nil
}

// Stats returns a snapshot of the store.
func (s *memoryTokenStore) Stats(ctx context.Context) (*tokenstoreDomain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.config.Clock()
	stats := &tokenstoreDomain.Stats{
		Erased:     len(s.tombstones),
		IndexSize:  len(s.index),
		Capacity:   s.config.Capacity,
		ByCategory: make(map[piiDomain.Category]int),
	}
	for _, record := range s.records {
		if record.IsExpired(now) {
			stats.Expired++
			continue
		}
		stats.Active++
		stats.ByCategory[record.Category]++
	}
	return stats, nil
}

func (s *memoryTokenStore) purgeIfExpired(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.records[token]; ok && record.IsExpired(s.config.Clock()) {
		s.deleteLocked(record)
	}
}

func (s *memoryTokenStore) checkAvailableLocked(token string, now time.Time) error {
	if _, erased := s.tombstones[token]; erased {
		return tokenstoreDomain.ErrTokenErased
	}
	if record, ok := s.records[token]; ok {
		if !record.IsExpired(now) {
			return tokenstoreDomain.ErrTokenAlreadyExists
		}
		s.deleteLocked(record)
	}
	return nil
}

func (s *memoryTokenStore) ensureCapacityLocked(now time.Time) error {
	if s.config.Capacity <= 0 || len(s.records) < s.config.Capacity {
		return nil
	}
	if purged := s.purgeExpiredLocked(now); purged > 0 {
		s.logger.Debug("purged expired tokens to make room", slog.Int("count", purged))
	}
	if len(s.records) >= s.config.Capacity {
		s.logger.Warn("token store exhausted", slog.Int("capacity", s.config.Capacity))
		return tokenstoreDomain.ErrStoreExhausted
	}
	return nil
}

func (s *memoryTokenStore) insertLocked(
	token string,
	value string,
	valueHash string,
	category piiDomain.Category,
	ttl time.Duration,
	now time.Time,
) (*tokenstoreDomain.TokenRecord, error) {
	plaintext := []byte(value)
	defer cryptoDomain.Zero(plaintext)

	ciphertext, nonce, err := s.cipher.Encrypt(plaintext, []byte(token))
	if err != nil {
		return nil, err
	}

	record := &tokenstoreDomain.TokenRecord{
		Token:      token,
		Category:   category,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		ValueHash:  valueHash,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttlOrDefault(ttl)),
	}
	s.records[token] = record
	if !s.indexedLiveLocked(valueHash, now) {
		s.index[valueHash] = token
	}
	return record, nil
}

// indexedLiveLocked reports whether valueHash already points at a live record.
// An explicit Store must not steal the entry from it.
func (s *memoryTokenStore) indexedLiveLocked(valueHash string, now time.Time) bool {
	current, ok := s.index[valueHash]
	if !ok {
		return false
	}
	record, ok := s.records[current]
	return ok && !record.IsExpired(now)
}

func (s *memoryTokenStore) deleteLocked(record *tokenstoreDomain.TokenRecord) {
	delete(s.records, record.Token)
	if s.index[record.ValueHash] == record.Token {
		delete(s.index, record.ValueHash)
	}
	cryptoDomain.Zero(record.Ciphertext, record.Nonce)
}

func (s *memoryTokenStore) purgeExpiredLocked(now time.Time) int {
	purged := 0
	for _, record := range s.records {
		if record.IsExpired(now) {
			s.deleteLocked(record)
			purged++
		}
	}
	return purged
}

func resultFor(record *tokenstoreDomain.TokenRecord, reused bool) *tokenstoreDomain.StoreResult {
	return &tokenstoreDomain.StoreResult{
		Token:     record.Token,
		Category:  record.Category,
		Reused:    reused,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}
}
