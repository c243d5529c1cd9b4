package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/shell"
	"bookcatalog/internal/storage"
	"bookcatalog/internal/storage/ch"
	"bookcatalog/internal/storage/file"
	"bookcatalog/internal/storage/stubs"
)

// App represents the application
type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      storage.Storage
	catalog *catalog.Catalog
	shell   *shell.Shell
}

// New creates and initializes a new application instance reading commands
// from in and writing results to out
func New(in io.Reader, out io.Writer) (*App, error) {
	// Load .env file if it exists; a missing file is fine
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return NewWithConfig(cfg, in, out)
}

// NewWithConfig creates an application from an already loaded configuration
func NewWithConfig(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting book catalog", zap.String("backend", cfg.Backend))

	// Initialize database
	if err := app.initDatabase(); err != nil {
		_ = logger.Sync()
		return nil, err
	}

	// Load the catalog, a malformed store is fatal
	app.catalog = catalog.New(app.db, logger)
	if err := app.catalog.Load(context.Background()); err != nil {
		_ = app.db.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("Catalog loaded", zap.Int("count", app.catalog.Len()))

	app.shell = shell.New(app.catalog, in, out, logger)
	return app, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	if cfg.LogFile != "" {
		zapConfig.OutputPaths = []string{cfg.LogFile}
	}
	return zapConfig.Build()
}

// initDatabase initializes the storage backend
func (a *App) initDatabase() error {
	var db storage.Storage
	switch a.config.Backend {
	case config.BackendMemory:
		a.logger.Info("Using in-memory storage")
		db = stubs.NewMockDB()
	case config.BackendClickHouse:
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.String("user", a.config.ClickHouseUser),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseDB, err := ch.NewClickHouseDB(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		db = clickhouseDB
	default:
		a.logger.Info("Using catalog file", zap.String("path", a.config.CatalogFile))
		fileDB, err := file.NewFileDB(a.config.CatalogFile)
		if err != nil {
			return fmt.Errorf("failed to open catalog file: %w", err)
		}
		db = fileDB
	}

	if err := db.Initialize(context.Background()); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.logger.Debug("Database initialized successfully")

	a.db = db
	return nil
}

// Run starts the interactive shell and blocks until the user exits,
// the input ends or the process is interrupted
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The shell blocks on input, so it runs apart from the signal wait
	errChan := make(chan error, 1)
	go func() {
		errChan <- a.shell.Run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	case runErr = <-errChan:
		if runErr != nil {
			a.logger.Error("Shell stopped with error", zap.Error(runErr))
		}
	}

	if err := a.Shutdown(); err != nil {
		return err
	}
	return runErr
}

// Catalog returns the record store
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Shutdown closes the storage backend
func (a *App) Shutdown() error {
	defer func() { _ = a.logger.Sync() }()

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
