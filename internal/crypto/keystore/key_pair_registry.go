package keystore

import (
	"sync"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// KeyPairRegistry is a bounded, non-evicting map of user ID to key pair.
// Callers receive copies; the stored pair is never handed out.
type KeyPairRegistry struct {
	mu       sync.RWMutex
	pairs    map[string]*cryptoDomain.KeyPair
	capacity int
	group    singleflight.Group
}

// NewKeyPairRegistry creates a registry holding at most capacity pairs.
// A capacity of zero or less means unbounded.
func NewKeyPairRegistry(capacity int) *KeyPairRegistry {
	return &KeyPairRegistry{
		pairs:    make(map[string]*cryptoDomain.KeyPair),
		capacity: capacity,
	}
}

// Get returns the key pair for userID if one exists.
func (r *KeyPairRegistry) Get(userID string) (*cryptoDomain.KeyPair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keyPair, ok := r.pairs[userID]
	if !ok {
		return nil, false
	}
	return cloneKeyPair(keyPair), true
}

// GetOrCreate returns the existing pair for userID or stores the one built by create.
// Concurrent callers for the same user share a single create call. When the registry
// is full, ErrKeyPairCapacityReached is returned and create is not called.
func (r *KeyPairRegistry) GetOrCreate(
	userID string,
	create func() (*cryptoDomain.KeyPair, error),
) (*cryptoDomain.KeyPair, error) {
	if keyPair, ok := r.Get(userID); ok {
		return keyPair, nil
	}

	v, err, _ := r.group.Do(userID, func() (any, error) {
		if keyPair, ok := r.Get(userID); ok {
			return keyPair, nil
		}
		if r.full() {
			return nil, cryptoDomain.ErrKeyPairCapacityReached
		}

		keyPair, err := create()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.capacity > 0 && len(r.pairs) >= r.capacity {
			return nil, cryptoDomain.ErrKeyPairCapacityReached
		}
		r.pairs[userID] = cloneKeyPair(keyPair)
		return keyPair, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneKeyPair(v.(*cryptoDomain.KeyPair)), nil
}

// Len returns the number of stored pairs.
func (r *KeyPairRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pairs)
}

func (r *KeyPairRegistry) full() bool {
	if r.capacity <= 0 {
		return false
	}
	return r.Len() >= r.capacity
}

func cloneKeyPair(keyPair *cryptoDomain.KeyPair) *cryptoDomain.KeyPair {
	clone := *keyPair
	clone.PublicKey = append([]byte(nil), keyPair.PublicKey...)
	clone.PrivateKey = append([]byte(nil), keyPair.PrivateKey...)
	if keyPair.ExpiresAt != nil {
		expiresAt := *keyPair.ExpiresAt
		clone.ExpiresAt = &expiresAt
	}
	return &clone
}
