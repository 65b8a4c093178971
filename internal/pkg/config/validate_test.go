package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateAntifraud_Defaults(t *testing.T) {
	cfg := loadConfigFromEnv().Antifraud
	assert.NoError(t, ValidateAntifraud(cfg))

	cfg.LockBackend = "redis"
	assert.NoError(t, ValidateAntifraud(cfg))
}

func TestValidateAntifraud_LockTTLMustCoverStoreCalls(t *testing.T) {
	cfg := loadConfigFromEnv().Antifraud
	cfg.LockBackend = "redis"

	tests := []struct {
		name    string
		ttl     time.Duration
		timeout time.Duration
		wantErr bool
	}{
		{"ttl above budget", 10 * time.Second, 2 * time.Second, false},
		{"ttl equal to budget", 12 * time.Second, 3 * time.Second, true},
		{"ttl below budget", 10 * time.Second, 3 * time.Second, true},
		{"no store timeout", 10 * time.Second, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.LockTTL = tt.ttl
			cfg.StoreTimeout = tt.timeout
			err := ValidateAntifraud(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAntifraud_LocalIgnoresTTL(t *testing.T) {
	cfg := loadConfigFromEnv().Antifraud
	cfg.LockTTL = time.Second
	cfg.StoreTimeout = 3 * time.Second

	assert.NoError(t, ValidateAntifraud(cfg))
}

func TestValidateAntifraud_Rejects(t *testing.T) {
	base := loadConfigFromEnv().Antifraud

	cfg := base
	cfg.LockBackend = "etcd"
	assert.Error(t, ValidateAntifraud(cfg))

	cfg = base
	cfg.MaxTransactionsPerWindow = 0
	assert.Error(t, ValidateAntifraud(cfg))
}
