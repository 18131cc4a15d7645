package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/crypto/keystore"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
	apperrors "github.com/allisson/chatcrypt/internal/errors"
)

// countingAgreement wraps a real KeyAgreement and counts derivations.
type countingAgreement struct {
	cryptoService.KeyAgreement
	mu          sync.Mutex
	derivations int
}

func (c *countingAgreement) DeriveSharedSecret(
	own *cryptoDomain.KeyPair,
	peerPublicKey []byte,
	pair cryptoDomain.ParticipantPair,
) ([]byte, error) {
	c.mu.Lock()
	c.derivations++
	c.mu.Unlock()
	return c.KeyAgreement.DeriveSharedSecret(own, peerPublicKey, pair)
}

func (c *countingAgreement) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.derivations
}

// gatedAgreement blocks key generation for one user until release is closed.
type gatedAgreement struct {
	cryptoService.KeyAgreement
	userID  string
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedAgreement) GenerateKeyPair(userID string) (*cryptoDomain.KeyPair, error) {
	if userID == g.userID {
		g.once.Do(func() { close(g.started) })
		<-g.release
	}
	return g.KeyAgreement.GenerateKeyPair(userID)
}

func newTestKeyAgreementUseCase(t *testing.T, kdf cryptoDomain.KDF, keyPairCapacity int) (KeyAgreementUseCase, *countingAgreement) {
	t.Helper()
	agreement, err := cryptoService.NewECDHKeyAgreement(kdf)
	require.NoError(t, err)
	secrets, err := keystore.NewSharedSecretCache(100)
	require.NoError(t, err)

	counting := &countingAgreement{KeyAgreement: agreement}
	return NewKeyAgreementUseCase(counting, keystore.NewKeyPairRegistry(keyPairCapacity), secrets), counting
}

func TestKeyAgreementUseCase_GetOrCreateKeyPair(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

	t.Run("Success_StableAcrossCalls", func(t *testing.T) {
		first, err := uc.GetOrCreateKeyPair(ctx, "alice")
		require.NoError(t, err)
		second, err := uc.GetOrCreateKeyPair(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, first.PublicKey, second.PublicKey)
	})

	t.Run("Success_DistinctUsers", func(t *testing.T) {
		alice, err := uc.GetOrCreateKeyPair(ctx, "alice")
		require.NoError(t, err)
		bob, err := uc.GetOrCreateKeyPair(ctx, "bob")
		require.NoError(t, err)
		assert.NotEqual(t, alice.PublicKey, bob.PublicKey)
	})

	t.Run("Error_EmptyUserID", func(t *testing.T) {
		_, err := uc.GetOrCreateKeyPair(ctx, "")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidUserID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := uc.GetOrCreateKeyPair(cancelled, "carol")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestKeyAgreementUseCase_GetKeyPair(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

	_, err := uc.GetKeyPair(ctx, "alice")
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyPairNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	created, err := uc.GetOrCreateKeyPair(ctx, "alice")
	require.NoError(t, err)

	found, err := uc.GetKeyPair(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.PublicKey, found.PublicKey)

	_, err = uc.GetKeyPair(ctx, " ")
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidUserID)
}

func TestKeyAgreementUseCase_GetOrCreateSharedKey(t *testing.T) {
	ctx := context.Background()

	for _, kdf := range []cryptoDomain.KDF{cryptoDomain.KDFNone, cryptoDomain.KDFHKDFSHA256} {
		t.Run("Success_Symmetric_"+string(kdf), func(t *testing.T) {
			uc, counting := newTestKeyAgreementUseCase(t, kdf, 10)

			ab, err := uc.GetOrCreateSharedKey(ctx, "alice", "bob")
			require.NoError(t, err)
			ba, err := uc.GetOrCreateSharedKey(ctx, "bob", "alice")
			require.NoError(t, err)

			assert.Len(t, ab.Key, cryptoDomain.KeySize)
			assert.Equal(t, ab.Key, ba.Key)
			assert.Equal(t, cryptoDomain.NewParticipantPair("alice", "bob"), ab.Pair)
			assert.Equal(t, 1, counting.count())
		})
	}

	t.Run("Success_CreatesMissingKeyPairs", func(t *testing.T) {
		uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

		_, err := uc.GetOrCreateSharedKey(ctx, "alice", "bob")
		require.NoError(t, err)

		_, err = uc.GetKeyPair(ctx, "alice")
		assert.NoError(t, err)
		_, err = uc.GetKeyPair(ctx, "bob")
		assert.NoError(t, err)
	})

	t.Run("Success_SelfPair", func(t *testing.T) {
		uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

		secret, err := uc.GetOrCreateSharedKey(ctx, "alice", "alice")
		require.NoError(t, err)
		assert.Len(t, secret.Key, cryptoDomain.KeySize)
	})

	t.Run("Success_DistinctPairsDistinctSecrets", func(t *testing.T) {
		uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

		ab, err := uc.GetOrCreateSharedKey(ctx, "alice", "bob")
		require.NoError(t, err)
		ac, err := uc.GetOrCreateSharedKey(ctx, "alice", "carol")
		require.NoError(t, err)
		assert.NotEqual(t, ab.Key, ac.Key)
	})

	t.Run("Success_ConcurrentFirstAccessDerivesOnce", func(t *testing.T) {
		uc, counting := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

		var wg sync.WaitGroup
		keys := make([][]byte, 32)
		for i := range keys {
			wg.Add(1)
			go func() {
				defer wg.Done()
				from, to := "alice", "bob"
				if i%2 == 1 {
					from, to = to, from
				}
				secret, err := uc.GetOrCreateSharedKey(ctx, from, to)
				assert.NoError(t, err)
				if secret != nil {
					keys[i] = secret.Key
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, counting.count())
		for _, key := range keys {
			assert.Equal(t, keys[0], key)
		}
	})

	t.Run("Success_WaiterSurvivesFirstCallerCancellation", func(t *testing.T) {
		agreement, err := cryptoService.NewECDHKeyAgreement(cryptoDomain.KDFNone)
		require.NoError(t, err)
		secrets, err := keystore.NewSharedSecretCache(10)
		require.NoError(t, err)
		gated := &gatedAgreement{
			KeyAgreement: agreement,
			userID:       "alice",
			started:      make(chan struct{}),
			release:      make(chan struct{}),
		}
		uc := NewKeyAgreementUseCase(gated, keystore.NewKeyPairRegistry(10), secrets)

		firstCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = uc.GetOrCreateSharedKey(firstCtx, "alice", "bob")
		}()
		<-gated.started

		var waiterSecret *cryptoDomain.SharedSecret
		var waiterErr error
		go func() {
			defer wg.Done()
			waiterSecret, waiterErr = uc.GetOrCreateSharedKey(ctx, "bob", "alice")
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()
		close(gated.release)
		wg.Wait()

		require.NoError(t, waiterErr)
		assert.Len(t, waiterSecret.Key, cryptoDomain.KeySize)
	})

	t.Run("Error_EmptyRecipient", func(t *testing.T) {
		uc, counting := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 10)

		_, err := uc.GetOrCreateSharedKey(ctx, "alice", "")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidUserID)
		assert.Equal(t, 0, counting.count())
	})

	t.Run("Error_CapacityReached", func(t *testing.T) {
		uc, _ := newTestKeyAgreementUseCase(t, cryptoDomain.KDFNone, 1)

		_, err := uc.GetOrCreateSharedKey(ctx, "alice", "bob")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyPairCapacityReached)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}
