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

	"github.com/docuvault/docuvault/internal"
	"github.com/docuvault/docuvault/internal/auth"
	authPostgres "github.com/docuvault/docuvault/internal/auth/postgres"
	"github.com/docuvault/docuvault/internal/comment"
	commentPostgres "github.com/docuvault/docuvault/internal/comment/postgres"
	"github.com/docuvault/docuvault/internal/department"
	departmentPostgres "github.com/docuvault/docuvault/internal/department/postgres"
	"github.com/docuvault/docuvault/internal/file"
	filePostgres "github.com/docuvault/docuvault/internal/file/postgres"
	"github.com/docuvault/docuvault/internal/stats"
	statsPostgres "github.com/docuvault/docuvault/internal/stats/postgres"
	"github.com/docuvault/docuvault/internal/storage"
	appMiddleware "github.com/docuvault/docuvault/internal/transport/middleware"
	"github.com/docuvault/docuvault/internal/transport/rest"
	"github.com/docuvault/docuvault/internal/user"
	userPostgres "github.com/docuvault/docuvault/internal/user/postgres"
	"github.com/docuvault/docuvault/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler       *auth.Handler
	FileHandler       *file.Handler
	DepartmentHandler *department.Handler
	CommentHandler    *comment.Handler
	StatsHandler      *stats.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	deps.Router.Use(appMiddleware.RequestID)
	deps.Router.Use(appMiddleware.LoggingMiddleware(deps.Logger))
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.FileHandler,
		deps.DepartmentHandler,
		deps.CommentHandler,
		deps.StatsHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	blobs, err := initStorage(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	policy := auth.NewPolicy()

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo)

	sessionRepo := authPostgres.NewSessionRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userService, sessionRepo, tokenGen, config.Security.BCryptCost, log)
	authHandler := auth.NewHandler(authService)

	departmentRepo := departmentPostgres.NewDepartmentRepository(gormDB)
	departmentService := department.NewService(departmentRepo, policy, log)
	departmentHandler := department.NewHandler(departmentService)

	fileRepo := filePostgres.NewFileRepository(gormDB)
	fileService := file.NewService(fileRepo, departmentService, blobs, policy, log)
	fileHandler := file.NewHandler(fileService)

	commentRepo := commentPostgres.NewCommentRepository(gormDB)
	commentService := comment.NewService(commentRepo, fileService, policy, log)
	commentHandler := comment.NewHandler(commentService)

	statsRepo := statsPostgres.NewStatsRepository(gormDB)
	statsService := stats.NewService(statsRepo, policy, log)
	statsHandler := stats.NewHandler(statsService)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: log,

		AuthHandler:       authHandler,
		FileHandler:       fileHandler,
		DepartmentHandler: departmentHandler,
		CommentHandler:    commentHandler,
		StatsHandler:      statsHandler,
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx connection pool so both
// handles share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}

// initStorage picks the blob store backend from config
func initStorage(cfg internal.StorageConfig) (storage.BlobStore, error) {
	switch cfg.Driver {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	default:
		return storage.NewDiskStore(cfg.Disk.Path)
	}
}
