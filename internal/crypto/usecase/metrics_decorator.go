package usecase

import (
	"context"
	"io"
	"time"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/metrics"
)

const metricsDomain = "crypto"

func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	metrics.Observe(ctx, m, metricsDomain, operation, start, err)
}

// keyAgreementUseCaseWithMetrics decorates KeyAgreementUseCase with metrics instrumentation.
type keyAgreementUseCaseWithMetrics struct {
	next    KeyAgreementUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyAgreementUseCaseWithMetrics wraps a KeyAgreementUseCase with metrics recording.
func NewKeyAgreementUseCaseWithMetrics(useCase KeyAgreementUseCase, m metrics.BusinessMetrics) KeyAgreementUseCase {
	return &keyAgreementUseCaseWithMetrics{next: useCase, metrics: m}
}

func (k *keyAgreementUseCaseWithMetrics) GetOrCreateKeyPair(
	ctx context.Context,
	userID string,
) (*cryptoDomain.KeyPair, error) {
	start := time.Now()
	keyPair, err := k.next.GetOrCreateKeyPair(ctx, userID)
	recordMetrics(ctx, k.metrics, "key_pair_get_or_create", start, err)
	return keyPair, err
}

func (k *keyAgreementUseCaseWithMetrics) GetKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error) {
	start := time.Now()
	keyPair, err := k.next.GetKeyPair(ctx, userID)
	recordMetrics(ctx, k.metrics, "key_pair_get", start, err)
	return keyPair, err
}

func (k *keyAgreementUseCaseWithMetrics) GetOrCreateSharedKey(
	ctx context.Context,
	userID, recipientID string,
) (*cryptoDomain.SharedSecret, error) {
	start := time.Now()
	secret, err := k.next.GetOrCreateSharedKey(ctx, userID, recipientID)
	recordMetrics(ctx, k.metrics, "shared_key_get_or_create", start, err)
	return secret, err
}

// messageUseCaseWithMetrics decorates MessageUseCase with metrics instrumentation.
type messageUseCaseWithMetrics struct {
	next    MessageUseCase
	metrics metrics.BusinessMetrics
}

// NewMessageUseCaseWithMetrics wraps a MessageUseCase with metrics recording.
func NewMessageUseCaseWithMetrics(useCase MessageUseCase, m metrics.BusinessMetrics) MessageUseCase {
	return &messageUseCaseWithMetrics{next: useCase, metrics: m}
}

func (m *messageUseCaseWithMetrics) Encrypt(ctx context.Context, senderID, recipientID, plaintext string) (string, error) {
	start := time.Now()
	ciphertext, err := m.next.Encrypt(ctx, senderID, recipientID, plaintext)
	recordMetrics(ctx, m.metrics, "message_encrypt", start, err)
	return ciphertext, err
}

func (m *messageUseCaseWithMetrics) Decrypt(ctx context.Context, senderID, recipientID, ciphertext string) (string, error) {
	start := time.Now()
	plaintext, err := m.next.Decrypt(ctx, senderID, recipientID, ciphertext)
	recordMetrics(ctx, m.metrics, "message_decrypt", start, err)
	return plaintext, err
}

// fileUseCaseWithMetrics decorates FileUseCase with metrics instrumentation.
type fileUseCaseWithMetrics struct {
	next    FileUseCase
	metrics metrics.BusinessMetrics
}

// NewFileUseCaseWithMetrics wraps a FileUseCase with metrics recording.
func NewFileUseCaseWithMetrics(useCase FileUseCase, m metrics.BusinessMetrics) FileUseCase {
	return &fileUseCaseWithMetrics{next: useCase, metrics: m}
}

func (f *fileUseCaseWithMetrics) GenerateFileKey(ctx context.Context) (*FileKeyMaterial, error) {
	start := time.Now()
	material, err := f.next.GenerateFileKey(ctx)
	recordMetrics(ctx, f.metrics, "file_key_generate", start, err)
	return material, err
}

func (f *fileUseCaseWithMetrics) WrapFileKey(ctx context.Context, fileKey cryptoDomain.FileKey) ([]byte, error) {
	start := time.Now()
	wrapped, err := f.next.WrapFileKey(ctx, fileKey)
	recordMetrics(ctx, f.metrics, "file_key_wrap", start, err)
	return wrapped, err
}

func (f *fileUseCaseWithMetrics) UnwrapFileKey(ctx context.Context, wrapped []byte) (cryptoDomain.FileKey, error) {
	start := time.Now()
	fileKey, err := f.next.UnwrapFileKey(ctx, wrapped)
	recordMetrics(ctx, f.metrics, "file_key_unwrap", start, err)
	return fileKey, err
}

func (f *fileUseCaseWithMetrics) EncryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	start := time.Now()
	encrypted, err := f.next.EncryptChunk(ctx, chunk, fileKey, index)
	recordMetrics(ctx, f.metrics, "file_chunk_encrypt", start, err)
	return encrypted, err
}

func (f *fileUseCaseWithMetrics) DecryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	start := time.Now()
	decrypted, err := f.next.DecryptChunk(ctx, chunk, fileKey, index)
	recordMetrics(ctx, f.metrics, "file_chunk_decrypt", start, err)
	return decrypted, err
}

func (f *fileUseCaseWithMetrics) EncryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	fileKey cryptoDomain.FileKey,
) error {
	start := time.Now()
	err := f.next.EncryptStream(ctx, r, w, fileKey)
	recordMetrics(ctx, f.metrics, "file_stream_encrypt", start, err)
	return err
}

func (f *fileUseCaseWithMetrics) DecryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	fileKey cryptoDomain.FileKey,
) error {
	start := time.Now()
	err := f.next.DecryptStream(ctx, r, w, fileKey)
	recordMetrics(ctx, f.metrics, "file_stream_decrypt", start, err)
	return err
}
