package keystore

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// SharedSecretCache is a bounded LRU of derived shared secrets keyed by participant pair.
//
// Callers always receive a copy of the secret. Copies are taken under mu and
// eviction zeroes only while mu is held exclusively, so a copy never observes a
// half-zeroed key.
type SharedSecretCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[cryptoDomain.ParticipantPair, *cryptoDomain.SharedSecret]
	group singleflight.Group
}

// NewSharedSecretCache creates a cache holding at most size secrets.
func NewSharedSecretCache(size int) (*SharedSecretCache, error) {
	cache, err := lru.NewWithEvict(size, func(_ cryptoDomain.ParticipantPair, secret *cryptoDomain.SharedSecret) {
		cryptoDomain.Zero(secret.Key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shared secret cache: %w", err)
	}
	return &SharedSecretCache{cache: cache}, nil
}

// Get returns a copy of the cached secret for pair.
func (c *SharedSecretCache) Get(pair cryptoDomain.ParticipantPair) (*cryptoDomain.SharedSecret, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	secret, ok := c.cache.Get(pair)
	if !ok {
		return nil, false
	}
	return cloneSecret(secret), true
}

// GetOrCreate returns the cached secret for pair or stores the one built by derive.
// Concurrent callers for the same pair share a single derive call.
func (c *SharedSecretCache) GetOrCreate(
	pair cryptoDomain.ParticipantPair,
	derive func() (*cryptoDomain.SharedSecret, error),
) (*cryptoDomain.SharedSecret, error) {
	if secret, ok := c.Get(pair); ok {
		return secret, nil
	}

	v, err, _ := c.group.Do(pair.Key(), func() (any, error) {
		if secret, ok := c.Get(pair); ok {
			return secret, nil
		}

		secret, err := derive()
		if err != nil {
			return nil, err
		}
		shared := cloneSecret(secret)
		c.add(pair, secret)
		return shared, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneSecret(v.(*cryptoDomain.SharedSecret)), nil
}

// Len returns the number of cached secrets.
func (c *SharedSecretCache) Len() int {
	return c.cache.Len()
}

// Purge zeroes and drops every cached secret.
func (c *SharedSecretCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

// add stores secret; the eviction callback runs inside Add, under the write lock.
func (c *SharedSecretCache) add(pair cryptoDomain.ParticipantPair, secret *cryptoDomain.SharedSecret) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(pair, secret)
}

func cloneSecret(secret *cryptoDomain.SharedSecret) *cryptoDomain.SharedSecret {
	key := make([]byte, len(secret.Key))
	copy(key, secret.Key)
	return &cryptoDomain.SharedSecret{
		Pair:      secret.Pair,
		Key:       key,
		CreatedAt: secret.CreatedAt,
	}
}
