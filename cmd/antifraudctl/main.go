package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "antifraudctl",
		Short:         "Operator tooling for the antifraud service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// every flag can also come from ANTIFRAUD_<FLAG>, dashes as underscores
	viper.SetEnvPrefix("ANTIFRAUD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("config", "config/antifraud.env", "env file read when APP_ENV=local")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-type", "console", "log output (console, file, hybrid)")
	flags.String("lock-backend", "", "override LOCK_BACKEND (local, redis)")
	_ = viper.BindPFlags(flags)

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(chargebackCmd())

	return rootCmd
}
