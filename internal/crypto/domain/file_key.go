package domain

import (
	"encoding/binary"
)

// FileKey is the per-file symmetric key material.
// IV is the base nonce; each chunk derives its own nonce from it with ChunkNonce.
type FileKey struct {
	Key []byte
	IV  []byte
}

// Validate checks key and IV lengths.
func (k FileKey) Validate() error {
	if len(k.Key) != KeySize || len(k.IV) != NonceSize {
		return ErrInvalidKeySize
	}
	return nil
}

// Bytes returns key ‖ iv, the form wrapped by the KMS keeper.
func (k FileKey) Bytes() []byte {
	buf := make([]byte, 0, KeySize+NonceSize)
	buf = append(buf, k.Key...)
	buf = append(buf, k.IV...)
	return buf
}

// Zero clears the key material.
func (k FileKey) Zero() {
	Zero(k.Key)
	Zero(k.IV)
}

// FileKeyFromBytes splits key ‖ iv back into a FileKey.
func FileKeyFromBytes(b []byte) (FileKey, error) {
	if len(b) != KeySize+NonceSize {
		return FileKey{}, ErrInvalidKeySize
	}
	key := make([]byte, KeySize)
	iv := make([]byte, NonceSize)
	copy(key, b[:KeySize])
	copy(iv, b[KeySize:])
	return FileKey{Key: key, IV: iv}, nil
}

// ChunkNonce derives the nonce for chunk index from the base IV: the last 8 bytes
// of the IV are XORed with the big-endian index. Index 0 yields the base IV.
func ChunkNonce(iv []byte, index uint64) []byte {
	nonce := make([]byte, len(iv))
	copy(nonce, iv)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], index)
	off := len(nonce) - len(ctr)
	for i := range ctr {
		nonce[off+i] ^= ctr[i]
	}
	return nonce
}

// ChunkAAD returns the associated data binding a chunk to its position.
func ChunkAAD(index uint64) []byte {
	aad := make([]byte, 8)
	binary.BigEndian.PutUint64(aad, index)
	return aad
}

// ChunkFinalAAD returns the associated data for a stream trailer sealed at index.
// The extra marker byte keeps a trailer from verifying as a data chunk.
func ChunkFinalAAD(index uint64) []byte {
	return append(ChunkAAD(index), 0x01)
}
