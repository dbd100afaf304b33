package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/timeclock/internal/accrual"
	"github.com/frahmantamala/timeclock/internal/auth"
	authRepo "github.com/frahmantamala/timeclock/internal/auth/postgres"
	"github.com/frahmantamala/timeclock/internal/leavebalance"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run background jobs",
	Long:  `Run background jobs such as the monthly leave accrual and the expired session purge.`,
}

var accrueWorkerCmd = &cobra.Command{
	Use:   "accrue",
	Short: "Accrue leave for every active employee",
	Long:  `Sign in with the configured HR account and accrue leave for every active employee through a worker pool`,
	Run: func(cmd *cobra.Command, args []string) {
		startAccrualWorker()
	},
}

var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Purge expired portal sessions",
	Long:  `Delete expired portal sessions once, or repeatedly when --interval is set`,
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

var (
	maxWorkers      int
	jobQueueSize    int
	purgeInterval   time.Duration
	accrualUsername string
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func startAccrualWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Env, config.Logging.Level)
	lg := logger.LoggerWrapper()

	// Use command line flags if provided, otherwise use config values
	accrualConfig := config.Accrual
	accrualConfig.Username = getStringFlag(accrualUsername, accrualConfig.Username)
	accrualConfig.MaxWorkers = getIntFlag(maxWorkers, accrualConfig.MaxWorkers)
	accrualConfig.JobQueueSize = getIntFlag(jobQueueSize, accrualConfig.JobQueueSize)

	client, err := newUpstreamClient(config, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create upstream client: %v\n", err)
		os.Exit(1)
	}

	bus := newEventBus(lg)
	balances := leavebalance.NewService(client, bus, lg)
	runner := accrual.NewRunner(client, balances, accrualConfig, lg)

	lg.Info("starting leave accrual",
		"max_workers", accrualConfig.MaxWorkers,
		"job_queue_size", accrualConfig.JobQueueSize,
		"upstream", config.Upstream.BaseURL)

	ctx, stop := signalContext()
	defer stop()

	summary, err := runner.Run(ctx)

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if derr := bus.Drain(drainCtx); derr != nil {
		lg.Warn("accrual events not fully delivered", "error", derr)
	}
	cancel()

	if err != nil {
		lg.Error("leave accrual failed", "error", err)
		os.Exit(1)
	}
	for _, failure := range summary.Failures {
		lg.Warn("employee not accrued", "user_id", failure.UserID, "error", failure.Err)
	}
	if len(summary.Failures) > 0 {
		os.Exit(2)
	}
}

func startSessionWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Env, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions := auth.NewService(authRepo.NewSessionRepository(gormDB), nil, config.Security, lg)

	purge := func(ctx context.Context) {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			lg.Error("failed to purge sessions", "error", err)
			return
		}
		lg.Info("expired sessions purged", "count", n)
	}

	ctx, stop := signalContext()
	defer stop()

	purge(ctx)
	if purgeInterval <= 0 {
		return
	}

	lg.Info("session worker is running. Press Ctrl+C to stop.", "interval", purgeInterval)
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			purge(ctx)
		case <-ctx.Done():
			lg.Info("session worker stopped")
			return
		}
	}
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	accrueWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	accrueWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	accrueWorkerCmd.Flags().StringVar(&accrualUsername, "username", "", "HR username to sign in with (overrides config)")
	sessionWorkerCmd.Flags().DurationVar(&purgeInterval, "interval", 0, "Repeat the purge at this interval; zero runs once")

	workerCmd.AddCommand(accrueWorkerCmd)
	workerCmd.AddCommand(sessionWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
