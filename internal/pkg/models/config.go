package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents application configuration
type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	NSQ            NSQConfig
	NATS           NATSConfig
	Events         EventsConfig
	Logger         LoggerConfig
	APIKey         APIKeyConfig
	Antifraud      AntifraudConfig
	CircuitBreaker CircuitBreakerConfig
	Metrics        MetricsConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	IdleConns   int
	AutoMigrate bool
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ daemon and lookupd addresses
type NSQConfig struct {
	Address          string
	LookupdAddresses []string
	ChargebackTopic  string
	Channel          string
	MaxInFlight      int

	// backoff for chargebacks that hit a transient store failure
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// EventsConfig selects where decision events are published.
// Broker is one of "nats", "nsq" or "none".
type EventsConfig struct {
	Broker string
	Topic  string
}

// LoggerConfig contains logger output and rotation settings
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// APIKeyConfig holds the keys accepted on internal endpoints
type APIKeyConfig struct {
	ChargebackFeed string
	Operator       string
}

// AntifraudConfig holds the rule thresholds and the engine's resource limits
type AntifraudConfig struct {
	MaxTransactionsPerWindow int
	VelocityWindow           time.Duration
	MaxAmountPerWindow       decimal.Decimal
	AmountWindow             time.Duration
	MaxTransactionAmount     decimal.Decimal
	StoreTimeout             time.Duration
	LockBackend              string
	LockTTL                  time.Duration
	LockWait                 time.Duration
	CardHashKey              string
}

// CircuitBreakerConfig configures the breaker around store calls
type CircuitBreakerConfig struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}
