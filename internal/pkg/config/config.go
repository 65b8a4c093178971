package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/constants"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "antifraud-service")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "1.0.0")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "0.0.0.0")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8000)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 10)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "antifraud")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 20)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)
	configs.Database.AutoMigrate = GetEnvAsBool("DB_AUTO_MIGRATE", true)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")
	configs.NSQ.LookupdAddresses = GetEnvAsSlice("NSQ_LOOKUPD_ADDRESSES", nil)
	configs.NSQ.ChargebackTopic = GetEnv("NSQ_CHARGEBACK_TOPIC", constants.TopicChargebacks)
	configs.NSQ.Channel = GetEnv("NSQ_CHANNEL", constants.ChannelAntifraud)
	configs.NSQ.MaxInFlight = GetEnvAsInt("NSQ_MAX_IN_FLIGHT", 8)
	configs.NSQ.RetryAttempts = GetEnvAsInt("CHARGEBACK_RETRY_ATTEMPTS", 4)
	configs.NSQ.RetryBaseDelay = GetEnvAsDuration("CHARGEBACK_RETRY_BASE_DELAY", 100*time.Millisecond)
	configs.NSQ.RetryMaxDelay = GetEnvAsDuration("CHARGEBACK_RETRY_MAX_DELAY", 5*time.Second)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// Decision events
	configs.Events.Broker = GetEnv("EVENTS_BROKER", "none")
	configs.Events.Topic = GetEnv("EVENTS_TOPIC", constants.SubjectDecisions)

	// API keys
	configs.APIKey.ChargebackFeed = GetEnv("CHARGEBACK_FEED_API_KEY", "")
	configs.APIKey.Operator = GetEnv("OPERATOR_API_KEY", "")

	// Antifraud rules
	configs.Antifraud.MaxTransactionsPerWindow = GetEnvAsInt("MAX_TRANSACTIONS_PER_WINDOW", 3)
	configs.Antifraud.VelocityWindow = GetEnvAsDuration("VELOCITY_WINDOW", 2*time.Minute)
	configs.Antifraud.MaxAmountPerWindow = GetEnvAsDecimal("MAX_AMOUNT_PER_DAY", decimal.NewFromInt(1000))
	configs.Antifraud.AmountWindow = GetEnvAsDuration("AMOUNT_WINDOW", 24*time.Hour)
	configs.Antifraud.MaxTransactionAmount = GetEnvAsDecimal("MAX_TRANSACTION_AMOUNT", decimal.NewFromInt(1000000))
	configs.Antifraud.StoreTimeout = GetEnvAsDuration("STORE_TIMEOUT", 2*time.Second)
	configs.Antifraud.LockBackend = GetEnv("LOCK_BACKEND", "local")
	configs.Antifraud.LockTTL = GetEnvAsDuration("LOCK_TTL", 10*time.Second)
	configs.Antifraud.LockWait = GetEnvAsDuration("LOCK_WAIT", 2*time.Second)
	configs.Antifraud.CardHashKey = GetEnv("CARD_HASH_KEY", "")

	// Circuit breaker around the store
	configs.CircuitBreaker.Enabled = GetEnvAsBool("CB_ENABLED", true)
	configs.CircuitBreaker.MaxRequests = uint32(GetEnvAsInt("CB_MAX_REQUESTS", 1))
	configs.CircuitBreaker.Interval = GetEnvAsDuration("CB_INTERVAL", 30*time.Second)
	configs.CircuitBreaker.Timeout = GetEnvAsDuration("CB_TIMEOUT", 15*time.Second)
	configs.CircuitBreaker.FailureRatio = GetEnvAsFloat("CB_FAILURE_RATIO", 0.5)
	configs.CircuitBreaker.MinRequests = uint32(GetEnvAsInt("CB_MIN_REQUESTS", 10))

	// Metrics
	configs.Metrics.Enabled = GetEnvAsBool("METRICS_ENABLED", true)
	configs.Metrics.Path = GetEnv("METRICS_PATH", "/metrics")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/antifraud.log")
	configs.Logger.MaxSize = GetEnvAsInt64("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)
	configs.Logger.Type = GetEnv("LOG_TYPE", "file")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go duration strings such as "2m" or "24h"
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDecimal parses an exact decimal amount such as "1000.00"
func GetEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid decimal value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsSlice splits a comma separated list, dropping empty entries
func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	return values
}
