package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Empty(t, cfg.AuthTokenHashes)
				assert.Equal(t, "chatcrypt", cfg.MetricsNamespace)
				assert.Equal(t, 100000, cfg.KeyPairCacheSize)
				assert.Equal(t, 100000, cfg.SharedSecretCacheSize)
				assert.Equal(t, "none", cfg.SharedSecretKDF)
				assert.Equal(t, "aes-gcm", cfg.FileCipherAlgorithm)
				assert.Equal(t, 64*1024, cfg.FileChunkSize)
				assert.Equal(t, 5*time.Second, cfg.OutboxInterval)
				assert.Equal(t, time.Minute, cfg.OutboxRetryInterval)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":            "mysql",
				"DB_CONNECTION_STRING": "user:password@tcp(localhost:3306)/chatcrypt",
				"DB_CONN_MAX_LIFETIME": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/chatcrypt", cfg.DBConnectionString)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load auth token hashes",
			envVars: map[string]string{
				"AUTH_TOKEN_HASHES": " $argon2id$first , $argon2id$second,,",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"$argon2id$first", "$argon2id$second"}, cfg.AuthTokenHashes)
			},
		},
		{
			name: "load key agreement configuration",
			envVars: map[string]string{
				"KEY_PAIR_CACHE_SIZE":      "10",
				"SHARED_SECRET_CACHE_SIZE": "20",
				"SHARED_SECRET_KDF":        "hkdf-sha256",
				"FILE_CIPHER_ALGORITHM":    "chacha20-poly1305",
				"FILE_CHUNK_SIZE":          "1024",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.KeyPairCacheSize)
				assert.Equal(t, 20, cfg.SharedSecretCacheSize)
				assert.Equal(t, "hkdf-sha256", cfg.SharedSecretKDF)
				assert.Equal(t, "chacha20-poly1305", cfg.FileCipherAlgorithm)
				assert.Equal(t, 1024, cfg.FileChunkSize)
			},
		},
		{
			name: "load rate limit and kms configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":          "false",
				"RATE_LIMIT_REQUESTS_PER_SEC": "2.5",
				"KMS_KEY_URI":                 "base64key://abc",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, "base64key://abc", cfg.KMSKeyURI)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:              "postgres",
			ServerPort:            8080,
			MetricsPort:           8081,
			SharedSecretCacheSize: 10,
			SharedSecretKDF:       "none",
			FileCipherAlgorithm:   "aes-gcm",
			FileChunkSize:         1024,
			MaxMessageSize:        1024,
			OutboxBatchSize:       10,
		}
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("invalid kdf", func(t *testing.T) {
		cfg := valid()
		cfg.SharedSecretKDF = "pbkdf2"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid file cipher", func(t *testing.T) {
		cfg := valid()
		cfg.FileCipherAlgorithm = "aes-cbc"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid driver", func(t *testing.T) {
		cfg := valid()
		cfg.DBDriver = "sqlite"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero chunk size", func(t *testing.T) {
		cfg := valid()
		cfg.FileChunkSize = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
