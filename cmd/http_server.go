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

	"github.com/alphagrips/academy-backend/internal"
	"github.com/alphagrips/academy-backend/internal/academy"
	academyPostgres "github.com/alphagrips/academy-backend/internal/academy/postgres"
	"github.com/alphagrips/academy-backend/internal/auth"
	authPostgres "github.com/alphagrips/academy-backend/internal/auth/postgres"
	"github.com/alphagrips/academy-backend/internal/category"
	categoryPostgres "github.com/alphagrips/academy-backend/internal/category/postgres"
	"github.com/alphagrips/academy-backend/internal/core/events"
	"github.com/alphagrips/academy-backend/internal/finance"
	financePostgres "github.com/alphagrips/academy-backend/internal/finance/postgres"
	"github.com/alphagrips/academy-backend/internal/match"
	matchPostgres "github.com/alphagrips/academy-backend/internal/match/postgres"
	"github.com/alphagrips/academy-backend/internal/payment"
	paymentPostgres "github.com/alphagrips/academy-backend/internal/payment/postgres"
	"github.com/alphagrips/academy-backend/internal/paymentgateway"
	"github.com/alphagrips/academy-backend/internal/player"
	playerPostgres "github.com/alphagrips/academy-backend/internal/player/postgres"
	"github.com/alphagrips/academy-backend/internal/transport/rest"
	"github.com/alphagrips/academy-backend/internal/user"
	userPostgres "github.com/alphagrips/academy-backend/internal/user/postgres"
	"github.com/alphagrips/academy-backend/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	DB             *sqlx.DB
	Handler        http.Handler
	PaymentService *payment.Service
	Logger         *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Handler,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	go runPendingOrderReaper(reaperCtx, deps.PaymentService, deps.Config.Finance.PendingOrderTTL, deps.Logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		stopReaper()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopReaper()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// runPendingOrderReaper periodically voids gateway orders that never received
// a confirmation, releasing their (player, month) reservation. A TTL of zero
// disables the sweep.
func runPendingOrderReaper(ctx context.Context, svc *payment.Service, ttl time.Duration, log *slog.Logger) {
	if ttl <= 0 {
		log.Info("pending order expiry disabled")
		return
	}

	interval := ttl / 4
	if interval > time.Hour {
		interval = time.Hour
	}
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("pending order reaper started", "ttl", ttl, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if expired, err := svc.ExpireStalePendingOrders(ctx, ttl); err == nil && expired > 0 {
				log.Info("expired stale pending orders", "count", expired)
			}
		}
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"),
		config.Observability.Logging.Level,
		config.Observability.Logging.Format)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	registerEventSubscribers(eventBus, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokenGen)
	rbac := auth.NewRBACAuthorization(log)

	academyService := academy.NewService(academyPostgres.NewAcademyRepository(gormDB), log)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gormDB), log)
	playerService := player.NewService(playerPostgres.NewPlayerRepository(gormDB), log)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), log)
	matchService := match.NewService(matchPostgres.NewMatchRepository(gormDB), log)
	financeService := finance.NewService(financePostgres.NewFinanceRepository(gormDB), eventBus, log)

	gatewayClient := paymentgateway.NewClient(
		config.Gateway.BaseURL,
		config.Gateway.KeyID,
		config.Gateway.KeySecret,
		config.Gateway.RequestTimeout,
		config.Gateway.MaxRetries,
		log,
	)
	paymentService := payment.NewService(
		paymentPostgres.NewPaymentRepository(gormDB),
		financeService,
		gatewayClient,
		eventBus,
		config.Finance.Currency,
		log,
	)

	handlers := &rest.Handlers{
		Auth:     auth.NewHandler(authService),
		RBAC:     rbac,
		Academy:  academy.NewHandler(academyService),
		Category: category.NewHandler(categoryService),
		Player:   player.NewHandler(playerService),
		User:     user.NewHandler(userService),
		Match:    match.NewHandler(matchService),
		Finance:  finance.NewHandler(financeService),
		Payment:  payment.NewHandler(paymentService),
		Webhook:  payment.NewWebhookHandler(paymentService),
	}

	return &Dependencies{
		Config:         config,
		Logger:         log,
		DB:             db,
		Handler:        rest.NewRouter(handlers, db.DB),
		PaymentService: paymentService,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
