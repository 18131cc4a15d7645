package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/crypto/keystore"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
)

type keyAgreementUseCase struct {
	agreement cryptoService.KeyAgreement
	keyPairs  *keystore.KeyPairRegistry
	secrets   *keystore.SharedSecretCache
}

// NewKeyAgreementUseCase creates a KeyAgreementUseCase backed by the given stores.
func NewKeyAgreementUseCase(
	agreement cryptoService.KeyAgreement,
	keyPairs *keystore.KeyPairRegistry,
	secrets *keystore.SharedSecretCache,
) KeyAgreementUseCase {
	return &keyAgreementUseCase{
		agreement: agreement,
		keyPairs:  keyPairs,
		secrets:   secrets,
	}
}

func (k *keyAgreementUseCase) GetOrCreateKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cryptoDomain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	return k.keyPairs.GetOrCreate(userID, func() (*cryptoDomain.KeyPair, error) {
		return k.agreement.GenerateKeyPair(userID)
	})
}

func (k *keyAgreementUseCase) GetKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cryptoDomain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	keyPair, ok := k.keyPairs.Get(userID)
	if !ok {
		return nil, cryptoDomain.ErrKeyPairNotFound
	}
	return keyPair, nil
}

func (k *keyAgreementUseCase) GetOrCreateSharedKey(
	ctx context.Context,
	userID, recipientID string,
) (*cryptoDomain.SharedSecret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cryptoDomain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := cryptoDomain.ValidateUserID(recipientID); err != nil {
		return nil, err
	}

	pair := cryptoDomain.NewParticipantPair(userID, recipientID)
	// The derivation is shared with concurrent callers for the same pair, so one
	// caller's cancellation must not fail the others.
	sharedCtx := context.WithoutCancel(ctx)
	return k.secrets.GetOrCreate(pair, func() (*cryptoDomain.SharedSecret, error) {
		own, err := k.GetOrCreateKeyPair(sharedCtx, userID)
		if err != nil {
			return nil, err
		}
		peer, err := k.GetOrCreateKeyPair(sharedCtx, recipientID)
		if err != nil {
			return nil, err
		}

		key, err := k.agreement.DeriveSharedSecret(own, peer.PublicKey, pair)
		if err != nil {
			return nil, err
		}

		return &cryptoDomain.SharedSecret{
			Pair:      pair,
			Key:       key,
			CreatedAt: time.Now().UTC(),
		}, nil
	})
}
