package app

import (
	"fmt"
	"sync"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/chatcrypt/internal/crypto/http"
	"github.com/allisson/chatcrypt/internal/crypto/keystore"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
	"github.com/allisson/chatcrypt/internal/metrics"
)

type cryptoComponents struct {
	aeadManager         cryptoService.AEADManager
	keyAgreement        cryptoService.KeyAgreement
	keyPairs            *keystore.KeyPairRegistry
	sharedSecrets       *keystore.SharedSecretCache
	keeper              cryptoDomain.KMSKeeper
	keyAgreementUseCase cryptoUseCase.KeyAgreementUseCase
	messageUseCase      cryptoUseCase.MessageUseCase
	fileUseCase         cryptoUseCase.FileUseCase
	keyHandler          *cryptoHTTP.KeyHandler
	messageHandler      *cryptoHTTP.MessageHandler
	fileHandler         *cryptoHTTP.FileHandler

	aeadManagerInit         sync.Once
	keyAgreementInit        sync.Once
	keyPairsInit            sync.Once
	sharedSecretsInit       sync.Once
	keeperInit              sync.Once
	keyAgreementUseCaseInit sync.Once
	messageUseCaseInit      sync.Once
	fileUseCaseInit         sync.Once
	keyHandlerInit          sync.Once
	messageHandlerInit      sync.Once
	fileHandlerInit         sync.Once
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.crypto.aeadManagerInit.Do(func() {
		c.crypto.aeadManager = cryptoService.NewAEADManager()
	})
	return c.crypto.aeadManager
}

// KeyAgreement returns the ECDH key agreement service using SHARED_SECRET_KDF.
func (c *Container) KeyAgreement() (cryptoService.KeyAgreement, error) {
	return resolve(c, &c.crypto.keyAgreementInit, "keyAgreement", &c.crypto.keyAgreement,
		func() (cryptoService.KeyAgreement, error) {
			agreement, err := cryptoService.NewECDHKeyAgreement(cryptoDomain.KDF(c.config.SharedSecretKDF))
			if err != nil {
				return nil, fmt.Errorf("failed to create key agreement: %w", err)
			}
			return agreement, nil
		})
}

// KeyPairRegistry returns the in-memory key pair registry.
func (c *Container) KeyPairRegistry() *keystore.KeyPairRegistry {
	c.crypto.keyPairsInit.Do(func() {
		c.crypto.keyPairs = keystore.NewKeyPairRegistry(c.config.KeyPairCacheSize)
	})
	return c.crypto.keyPairs
}

// SharedSecretCache returns the shared secret LRU.
func (c *Container) SharedSecretCache() (*keystore.SharedSecretCache, error) {
	return resolve(c, &c.crypto.sharedSecretsInit, "sharedSecretCache", &c.crypto.sharedSecrets,
		func() (*keystore.SharedSecretCache, error) {
			cache, err := keystore.NewSharedSecretCache(c.config.SharedSecretCacheSize)
			if err != nil {
				return nil, fmt.Errorf("failed to create shared secret cache: %w", err)
			}
			return cache, nil
		})
}

// KMSKeeper returns the keeper used to wrap file keys, or nil when KMS_KEY_URI is empty.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	return resolve(c, &c.crypto.keeperInit, "kmsKeeper", &c.crypto.keeper,
		func() (cryptoDomain.KMSKeeper, error) {
			if c.config.KMSKeyURI == "" {
				return nil, nil
			}
			keeper, err := cryptoService.NewKMSService().OpenKeeper(c.shutdownCtx, c.config.KMSKeyURI)
			if err != nil {
				return nil, err
			}
			return keeper, nil
		})
}

// KeyAgreementUseCase returns the key agreement use case, instrumented when metrics are enabled.
func (c *Container) KeyAgreementUseCase() (cryptoUseCase.KeyAgreementUseCase, error) {
	return resolve(c, &c.crypto.keyAgreementUseCaseInit, "keyAgreementUseCase",
		&c.crypto.keyAgreementUseCase, c.initKeyAgreementUseCase)
}

// MessageUseCase returns the message encryption use case.
func (c *Container) MessageUseCase() (cryptoUseCase.MessageUseCase, error) {
	return resolve(c, &c.crypto.messageUseCaseInit, "messageUseCase",
		&c.crypto.messageUseCase, c.initMessageUseCase)
}

// FileUseCase returns the file encryption use case.
func (c *Container) FileUseCase() (cryptoUseCase.FileUseCase, error) {
	return resolve(c, &c.crypto.fileUseCaseInit, "fileUseCase", &c.crypto.fileUseCase, c.initFileUseCase)
}

// KeyHandler returns the key pair HTTP handler.
func (c *Container) KeyHandler() (*cryptoHTTP.KeyHandler, error) {
	return resolve(c, &c.crypto.keyHandlerInit, "keyHandler", &c.crypto.keyHandler,
		func() (*cryptoHTTP.KeyHandler, error) {
			useCase, err := c.KeyAgreementUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get key agreement use case for key handler: %w", err)
			}
			return cryptoHTTP.NewKeyHandler(useCase, c.Logger()), nil
		})
}

// CryptoMessageHandler returns the stateless message encrypt/decrypt handler.
func (c *Container) CryptoMessageHandler() (*cryptoHTTP.MessageHandler, error) {
	return resolve(c, &c.crypto.messageHandlerInit, "cryptoMessageHandler", &c.crypto.messageHandler,
		func() (*cryptoHTTP.MessageHandler, error) {
			useCase, err := c.MessageUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get message use case for message handler: %w", err)
			}
			return cryptoHTTP.NewMessageHandler(useCase, c.config.MaxMessageSize, c.Logger()), nil
		})
}

// FileHandler returns the file key and chunk HTTP handler.
func (c *Container) FileHandler() (*cryptoHTTP.FileHandler, error) {
	return resolve(c, &c.crypto.fileHandlerInit, "fileHandler", &c.crypto.fileHandler,
		func() (*cryptoHTTP.FileHandler, error) {
			useCase, err := c.FileUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get file use case for file handler: %w", err)
			}
			return cryptoHTTP.NewFileHandler(useCase, c.config.FileChunkSize, c.Logger()), nil
		})
}

func (c *Container) initKeyAgreementUseCase() (cryptoUseCase.KeyAgreementUseCase, error) {
	agreement, err := c.KeyAgreement()
	if err != nil {
		return nil, err
	}
	sharedSecrets, err := c.SharedSecretCache()
	if err != nil {
		return nil, err
	}
	keyPairs := c.KeyPairRegistry()

	useCase := cryptoUseCase.NewKeyAgreementUseCase(agreement, keyPairs, sharedSecrets)
	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if err := metrics.RegisterGauge(provider.MeterProvider(), c.config.MetricsNamespace,
		"key_pairs", "Number of user key pairs held in memory",
		func() int64 { return int64(keyPairs.Len()) },
	); err != nil {
		return nil, fmt.Errorf("failed to register key pair gauge: %w", err)
	}
	if err := metrics.RegisterGauge(provider.MeterProvider(), c.config.MetricsNamespace,
		"shared_secrets", "Number of cached shared secrets",
		func() int64 { return int64(sharedSecrets.Len()) },
	); err != nil {
		return nil, fmt.Errorf("failed to register shared secret gauge: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}
	return cryptoUseCase.NewKeyAgreementUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initMessageUseCase() (cryptoUseCase.MessageUseCase, error) {
	keyAgreement, err := c.KeyAgreementUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key agreement use case for message use case: %w", err)
	}
	useCase := cryptoUseCase.NewMessageUseCase(keyAgreement, cryptoService.NewMessageCipher(c.AEADManager()))
	return withMetrics(c, useCase, cryptoUseCase.NewMessageUseCaseWithMetrics)
}

func (c *Container) initFileUseCase() (cryptoUseCase.FileUseCase, error) {
	alg, err := cryptoService.ParseAlgorithm(c.config.FileCipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid file cipher algorithm %q: %w", c.config.FileCipherAlgorithm, err)
	}
	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, err
	}
	useCase := cryptoUseCase.NewFileUseCase(
		cryptoService.NewFileCipher(c.AEADManager(), alg), keeper, c.config.FileChunkSize,
	)
	return withMetrics(c, useCase, cryptoUseCase.NewFileUseCaseWithMetrics)
}

// withMetrics wraps useCase with decorate when metrics are enabled.
func withMetrics[T any](c *Container, useCase T, decorate func(T, metrics.BusinessMetrics) T) (T, error) {
	if !c.config.MetricsEnabled {
		return useCase, nil
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		var zero T
		return zero, err
	}
	return decorate(useCase, businessMetrics), nil
}
