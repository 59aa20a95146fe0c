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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/announcement"
	announcementpg "github.com/o1-spec/techservices-portal/internal/announcement/postgres"
	"github.com/o1-spec/techservices-portal/internal/auth"
	authpg "github.com/o1-spec/techservices-portal/internal/auth/postgres"
	companypg "github.com/o1-spec/techservices-portal/internal/company/postgres"
	"github.com/o1-spec/techservices-portal/internal/core/events"
	"github.com/o1-spec/techservices-portal/internal/dashboard"
	dashboardpg "github.com/o1-spec/techservices-portal/internal/dashboard/postgres"
	"github.com/o1-spec/techservices-portal/internal/employee"
	employeepg "github.com/o1-spec/techservices-portal/internal/employee/postgres"
	"github.com/o1-spec/techservices-portal/internal/project"
	projectpg "github.com/o1-spec/techservices-portal/internal/project/postgres"
	"github.com/o1-spec/techservices-portal/internal/task"
	taskpg "github.com/o1-spec/techservices-portal/internal/task/postgres"
	"github.com/o1-spec/techservices-portal/internal/transport/middleware"
	"github.com/o1-spec/techservices-portal/internal/transport/rest"
	"github.com/o1-spec/techservices-portal/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Policy   *auth.Policy
	TokenGen auth.TokenGeneratorAPI
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	cleanup := rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Config, deps.Handlers, deps.Policy, deps.TokenGen, deps.Logger)
	defer cleanup()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Environment)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if config.Observability.Metrics.Enabled {
		middleware.InitMetrics()
	}

	policy := auth.NewPolicy()
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	bus := events.NewEventBus(log)
	notifier := &announcement.NotificationSubscriber{Logger: log}
	notifier.Register(bus)

	authRepo := authpg.NewRepository(gormDB)
	companyRepo := companypg.NewRepository(gormDB)
	employeeRepo := employeepg.NewRepository(gormDB)
	projectRepo := projectpg.NewRepository(gormDB)
	taskRepo := taskpg.NewRepository(gormDB)
	announcementRepo := announcementpg.NewRepository(gormDB)
	dashboardRepo := dashboardpg.NewRepository(gormDB)

	mailer := &auth.LogMailer{Logger: log}
	authService := auth.NewService(authRepo, companyRepo, tokenGen, mailer, config.Security.BCryptCost, log)
	employeeService := employee.NewService(employeeRepo, policy, config.Security.BCryptCost, log)
	projectService := project.NewService(projectRepo, employeeRepo, policy, log)
	taskService := task.NewService(taskRepo, projectRepo, employeeRepo, policy, log)
	announcementService := announcement.NewService(announcementRepo, policy, bus, log)
	dashboardService := dashboard.NewService(dashboardRepo, policy, log)

	authHandler := auth.NewHandler(
		authService,
		tokenGen,
		config.Server.IsProduction(),
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	handlers := rest.Handlers{
		Auth:         authHandler,
		Employee:     employee.NewHandler(employeeService),
		Project:      project.NewHandler(projectService),
		Task:         task.NewHandler(taskService),
		Announcement: announcement.NewHandler(announcementService),
		Dashboard:    dashboard.NewHandler(dashboardService),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Policy:   policy,
		TokenGen: tokenGen,
		Logger:   log,
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
