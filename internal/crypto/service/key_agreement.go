package service

import (
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/errors"
)

var hkdfInfo = []byte("chatcrypt shared secret v1")

// ECDHKeyAgreement implements KeyAgreement over NIST P-256.
//
// With KDFNone the 32-byte ECDH output (the X coordinate of the shared point) is
// the AES-256 key. With KDFHKDFSHA256 that output is expanded by HKDF-SHA256 using
// a salt bound to the participant pair, so the same key pairs always yield the same
// secret in both directions.
type ECDHKeyAgreement struct {
	kdf      cryptoDomain.KDF
	generate func() (*ecdh.PrivateKey, error)
	now      func() time.Time
}

func generateP256() (*ecdh.PrivateKey, error) {
	return ecdh.P256().GenerateKey(rand.Reader)
}

// NewECDHKeyAgreement creates a key agreement service using the given KDF mode.
// Returns ErrUnsupportedAlgorithm for unknown modes.
func NewECDHKeyAgreement(kdf cryptoDomain.KDF) (*ECDHKeyAgreement, error) {
	switch kdf {
	case cryptoDomain.KDFNone, cryptoDomain.KDFHKDFSHA256:
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return &ECDHKeyAgreement{
		kdf:      kdf,
		generate: generateP256,
		now:      time.Now,
	}, nil
}

// GenerateKeyPair creates a fresh P-256 key pair for userID.
func (k *ECDHKeyAgreement) GenerateKeyPair(userID string) (*cryptoDomain.KeyPair, error) {
	privateKey, err := k.generate()
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyGenerationFailed, err.Error())
	}

	return &cryptoDomain.KeyPair{
		UserID:     userID,
		PublicKey:  privateKey.PublicKey().Bytes(),
		PrivateKey: privateKey.Bytes(),
		CreatedAt:  k.now().UTC(),
	}, nil
}

// DeriveSharedSecret computes the shared secret between own and the holder of peerPublicKey.
// Invalid key material returns ErrAgreementFailed.
func (k *ECDHKeyAgreement) DeriveSharedSecret(
	own *cryptoDomain.KeyPair,
	peerPublicKey []byte,
	pair cryptoDomain.ParticipantPair,
) ([]byte, error) {
	if own == nil {
		return nil, cryptoDomain.ErrAgreementFailed
	}

	curve := ecdh.P256()
	privateKey, err := curve.NewPrivateKey(own.PrivateKey)
	if err != nil {
		return nil, cryptoDomain.ErrAgreementFailed
	}
	publicKey, err := curve.NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, cryptoDomain.ErrAgreementFailed
	}

	raw, err := privateKey.ECDH(publicKey)
	if err != nil {
		return nil, cryptoDomain.ErrAgreementFailed
	}

	if k.kdf == cryptoDomain.KDFNone {
		return raw, nil
	}
	defer cryptoDomain.Zero(raw)

	salt := sha256.Sum256([]byte(pair.Key()))
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, raw, salt[:], hkdfInfo), key); err != nil {
		return nil, cryptoDomain.ErrAgreementFailed
	}
	return key, nil
}
