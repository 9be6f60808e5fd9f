package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagBatchSize int
	flagDebug     int
	flagVerbose   int
	flagRedis     bool
	flagRedisAddr string
	flagMetrics   bool

	loadedConfig *cliConfig
)

var rootCmd = &cobra.Command{
	Use:   "piper",
	Short: "Drive an in-process batched data-flow pipeline",
	Long: `piper is a reference CLI around the piper engine: a small demo
pipeline (double, then format) that items are pushed through in
configurable batch sizes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = flagBatchSize
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = flagDebug
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = flagVerbose
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis.Enabled = flagRedis
		}
		if cmd.Flags().Changed("redis-addr") {
			cfg.Redis.Addr = flagRedisAddr
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Metrics.Enabled = flagMetrics
		}
		loadedConfig = cfg
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to piper.yaml (defaults to piper.yaml in . or /etc/piper)")
	rootCmd.PersistentFlags().IntVar(&flagBatchSize, "batch-size", 0, "Override the default batch size")
	rootCmd.PersistentFlags().IntVar(&flagDebug, "debug", 0, "Debug verbosity for the demo pipeline's root segment")
	rootCmd.PersistentFlags().IntVar(&flagVerbose, "verbose", 0, "Verbose level for the default verbosity")
	rootCmd.PersistentFlags().BoolVar(&flagRedis, "redis", false, "Use a Redis-backed queue instead of the in-memory default")
	rootCmd.PersistentFlags().StringVar(&flagRedisAddr, "redis-addr", "", "Redis address, when --redis is set")
	rootCmd.PersistentFlags().BoolVar(&flagMetrics, "metrics", false, "Register Prometheus metrics for the demo pipeline")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(treeCmd)
}
