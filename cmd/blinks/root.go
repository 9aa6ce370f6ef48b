package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/blinks"
	"github.com/aretw0/blinks/internal/logging"
	"github.com/aretw0/blinks/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "blinks",
	Short: "Blinks exposes DeFi actions as typed tools backed by Dialect Blinks",
	Long: `Blinks turns Solana DeFi actions (swaps, perpetuals, lending, liquidity, staking
and DAO votes) into validated calls that return unsigned transactions.

The client key is read from BLINK_CLIENT_KEY. Transactions are never signed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
}

// loadConfig reads the --config file (if any) and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, cfg.Log.Format)
	slog.SetDefault(logger)
	return logger, nil
}

// bootstrap loads configuration and builds a client wired with the given hooks.
func bootstrap(cmd *cobra.Command, opts ...blinks.Option) (*blinks.Client, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := blinks.New(cfg, append([]blinks.Option{blinks.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}
