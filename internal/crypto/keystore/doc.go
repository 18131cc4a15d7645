// Package keystore holds the in-memory key material for pairwise key agreement.
//
// KeyPairRegistry keeps one P-256 key pair per user for the life of the process and
// never evicts, because dropping a pair would silently change that user's identity.
// SharedSecretCache keeps derived secrets in a bounded LRU; evicted secrets are zeroed
// and re-derived on next use, which is safe because ECDH is deterministic for fixed
// key pairs.
//
// Both stores deduplicate concurrent first-time creation with singleflight, so at
// most one generation or derivation runs per key at a time.
package keystore
