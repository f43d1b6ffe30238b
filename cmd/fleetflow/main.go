package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fleetflow/internal/batch"
	"fleetflow/internal/config"
	"fleetflow/internal/flow"
	"fleetflow/internal/inputs"
	"fleetflow/internal/logging"
	"fleetflow/internal/stats"
)

var (
	configPath string
	dataDir    string
	seed       int64
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fleetflow",
	Short: "fleetflow drives batches of accounts through a remote task flow",
	Long: `fleetflow processes a batch of independent accounts, each with its own
credential and network egress path, through a configurable sequence of
remote tasks. Pipelines run under a global concurrency cap with bounded
retries and randomized human-like pacing; per-account outcomes land in
append-only success/failure ledgers.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every selected account through the configured task flow",
	RunE:  runBatch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML configuration")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "data", "directory holding input files and outcome ledgers")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.File, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	secrets, err := inputs.ReadLines(logger, "secrets", filepath.Join(dataDir, "secrets.txt"))
	if err != nil {
		return err
	}
	proxies, err := inputs.ReadLines(logger, "proxies", filepath.Join(dataDir, "proxies.txt"))
	if err != nil {
		return err
	}
	tokens := inputs.ReadOptional(logger, "tokens", filepath.Join(dataDir, "tokens.txt"))
	emails := inputs.ReadOptional(logger, "emails", filepath.Join(dataDir, "emails.txt"))

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Run seeded", zap.Int64("seed", seed))
	rng := batch.NewRand(seed)

	collector := stats.NewCollector()
	registry := flow.NewRegistry(
		&flow.Probe{Log: logger},
		&flow.AccountStats{Collector: collector, Log: logger},
		&flow.Sweep{Amount: cfg.SweepAmount(), Rand: rng, Log: logger},
	)
	if err := registry.Validate(cfg.Flow.Tasks); err != nil {
		return fmt.Errorf("invalid task plan: %w", err)
	}
	runner := flow.NewRunner(registry, cfg.Flow.Tasks, cfg.Pacing().BetweenTasks, rng, batch.SleepContext, logger)

	orch := batch.New(batch.Options{
		Threads: cfg.Settings.Threads,
		Select:  cfg.SelectOptions(),
		Retry:   cfg.RetryPolicy(),
		Pacing:  cfg.Pacing(),
		Ops: func(acct batch.AccountInput) (batch.Initializer, batch.FlowRunner) {
			d := flow.NewDriver(acct, cfg.Service.BaseURL, cfg.ServiceTimeout(), runner, logger)
			return d.Initialize, d.Flow
		},
		Reporter: batch.NewReporter(filepath.Join(dataDir, "outcomes"), logger),
		Summary: func() {
			fmt.Println(stats.Render(collector.Rows()))
		},
		Rand:   rng,
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return orch.RunBatch(ctx, secrets, proxies, tokens, emails)
}
