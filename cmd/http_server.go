package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/adjustment"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/auth"
	authRepo "github.com/frahmantamala/timeclock/internal/auth/postgres"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/internal/dashboard"
	"github.com/frahmantamala/timeclock/internal/leavebalance"
	"github.com/frahmantamala/timeclock/internal/timeoff"
	"github.com/frahmantamala/timeclock/internal/timetracking"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/rest"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/internal/user"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the portal pages`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Upstream *apiclient.Client
	Bus      *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "upstream", deps.Config.Upstream.BaseURL)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.Bus.Drain(ctx); err != nil {
			deps.Logger.Warn("Event handlers did not finish", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func newUpstreamClient(cfg *internal.Config, lg *slog.Logger) (*apiclient.Client, error) {
	return apiclient.NewClient(apiclient.Config{
		BaseURL:           cfg.Upstream.BaseURL,
		Timeout:           cfg.Upstream.Timeout,
		ValidateResponses: cfg.Upstream.ValidateResponses,
	}, lg)
}

func newEventBus(lg *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(lg)
	events.RegisterAuditLog(bus, lg)
	return bus
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Env, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client, err := newUpstreamClient(config, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize upstream client: %w", err)
	}

	loc := config.App.Location()
	renderer, err := web.NewRenderer(loc)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	bus := newEventBus(lg)
	pageSize := config.App.PageSize

	// Services
	authService := auth.NewService(authRepo.NewSessionRepository(gormDB), client, config.Security, lg)
	clockService := timetracking.NewService(client, loc, lg)
	adjustmentService := adjustment.NewService(client, bus, loc, lg)
	timeOffService := timeoff.NewService(client, bus, lg)
	balanceService := leavebalance.NewService(client, bus, lg)
	userService := user.NewService(client, authService, bus, lg)

	// Handlers
	base := transport.NewBaseHandler(lg, renderer)
	authHandler := auth.NewHandler(base, authService, auth.CookieConfig{
		Name:   config.Security.SessionCookieName,
		Secure: config.Security.SecureCookies,
	})
	base.OnUnauthorized = authHandler.EndSession

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Base:          base,
		Auth:          authHandler,
		Dashboard:     dashboard.NewHandler(base, clockService, balanceService, adjustmentService, timeOffService),
		TimeTracking:  timetracking.NewHandler(base, clockService, pageSize),
		Adjustments:   adjustment.NewHandler(base, adjustmentService, clockService, pageSize),
		TimeOff:       timeoff.NewHandler(base, timeOffService, pageSize),
		LeaveBalances: leavebalance.NewHandler(base, balanceService, client, pageSize),
		Users:         user.NewHandler(base, userService, pageSize),
		Health:        rest.NewHealthHandler(db, client),
	}, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Upstream: client,
		Bus:      bus,
		Logger:   lg,
	}, nil
}
