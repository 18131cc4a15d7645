package domain

// Algorithm represents the AEAD algorithm used for file chunk encryption.
//
// Both algorithms use a 256-bit key, a 12-byte nonce, and a 16-byte tag, so the
// chunk wire layout is identical regardless of the selected algorithm. Messages
// always use AESGCM.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Fastest on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred on hardware without AES acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KDF selects how the raw ECDH output becomes a shared secret.
type KDF string

const (
	// KDFNone uses the 32-byte ECDH X coordinate directly as the AES-256 key.
	KDFNone KDF = "none"

	// KDFHKDFSHA256 runs the ECDH output through HKDF-SHA256 bound to the participant pair.
	KDFHKDFSHA256 KDF = "hkdf-sha256"
)

// Sizes in bytes.
const (
	KeySize   = 32
	NonceSize = 12
	TagSize   = 16
	SaltSize  = 16
)
