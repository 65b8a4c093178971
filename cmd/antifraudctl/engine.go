package main

import (
	"context"
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/cardhash"
	"github.com/efkobus/antifraud-system/internal/pkg/config"
	appctx "github.com/efkobus/antifraud-system/internal/pkg/context"
	"github.com/efkobus/antifraud-system/internal/pkg/database"
	"github.com/efkobus/antifraud-system/internal/pkg/keylock"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud/repository"
	"github.com/efkobus/antifraud-system/services/antifraud/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// env holds what every subcommand needs; close releases it
type env struct {
	configs  *models.Config
	logger   *logger.ZapLogger
	postgres *database.PostgresClient
	closers  []func()
}

func newEnv() (*env, error) {
	configs := config.InitConfig(viper.GetString("config"))
	configs.Logger.Level = viper.GetString("log-level")
	configs.Logger.Type = viper.GetString("log-type")
	if backend := viper.GetString("lock-backend"); backend != "" {
		configs.Antifraud.LockBackend = backend
	}
	if err := config.ValidateAntifraud(configs.Antifraud); err != nil {
		return nil, err
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	e := &env{configs: configs, logger: zapLogger.Named("antifraudctl")}
	e.closers = append(e.closers, func() { _ = zapLogger.Close() })

	e.postgres, err = database.NewPostgresClient(configs.Database)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	e.closers = append(e.closers, func() { _ = e.postgres.Close() })

	return e, nil
}

// engine builds the same use case the service runs, without events or breaker
func (e *env) engine(ctx context.Context) (*usecase.AntifraudUC, error) {
	if e.configs.Database.AutoMigrate {
		if err := database.Migrate(ctx, e.postgres.GetDB()); err != nil {
			return nil, err
		}
	}

	var locker keylock.Locker = keylock.NewLocal()
	if e.configs.Antifraud.LockBackend == "redis" {
		redisClient, err := database.NewRedisClient(e.configs.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		e.closers = append(e.closers, func() { _ = redisClient.Close() })
		locker = keylock.NewRedis(redisClient.GetClient(), e.configs.Antifraud.LockTTL, e.configs.Antifraud.LockWait, e.logger)
	}

	hasher, err := cardhash.New(e.configs.Antifraud.CardHashKey)
	if err != nil {
		return nil, err
	}

	repo := repository.NewAntifraudRepository(e.configs, e.postgres.GetDB())
	return usecase.NewAntifraudUC(e.configs.Antifraud, repo, locker, hasher, e.logger), nil
}

// cliContext tags work started from the command line
func cliContext(cmd *cobra.Command) context.Context {
	return appctx.WithSource(appctx.WithRequestID(cmd.Context(), ""), "cli")
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}
